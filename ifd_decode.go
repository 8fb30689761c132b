package tiff

import "encoding/binary"

// recognizedTags is the closed set of tags this library understands (§6).
// An entry whose tag is outside this set surfaces as a non-fatal
// UnknownFieldTag field error rather than aborting the decode.
var recognizedTags = map[uint16]bool{
	tNewSubFileType:            true,
	tImageWidth:                true,
	tImageLength:               true,
	tBitsPerSample:             true,
	tCompression:               true,
	tPhotometricInterpretation: true,
	tStripOffsets:              true,
	tSamplesPerPixel:           true,
	tRowsPerStrip:              true,
	tStripByteCounts:           true,
	tXResolution:               true,
	tYResolution:               true,
	tPlanarConfiguration:       true,
	tResolutionUnit:            true,
	tColorMap:                  true,
	tTileWidth:                 true,
	tTileLength:                true,
	tTileOffsets:               true,
	tTileByteCounts:            true,
	tJPEGProc:                  true,
	tJPEGQTables:               true,
	tJPEGDCTables:              true,
	tJPEGACTables:              true,
}

// parseHeader reads the 8-byte TIFF header: the endianness sentinel, the
// magic short (42), and the offset of the first IFD.
func parseHeader(data []byte) (order binary.ByteOrder, firstIFDOffset int, err error) {
	if len(data) < 8 {
		return nil, 0, FormatError("file shorter than the 8-byte header")
	}
	switch string(data[0:4]) {
	case leHeader:
		order = binary.LittleEndian
	case beHeader:
		order = binary.BigEndian
	default:
		return nil, 0, FormatError("bad endianness sentinel or magic number")
	}
	firstIFDOffset = int(order.Uint32(data[4:8]))
	return order, firstIFDOffset, nil
}

// directory is one decoded Image File Directory: its entries keyed by tag,
// plus the offset of the next directory in the chain (0 if terminal).
type directory struct {
	entries    map[uint16]Value
	nextOffset int
}

func (d *directory) value(tag uint16) (Value, bool) {
	v, ok := d.entries[tag]
	return v, ok
}

// firstUint returns the first element of tag's Shorts/Longs value, or 0 if
// the tag is absent. Used for required single-valued tags.
func (d *directory) firstUint(tag uint16) uint {
	return d.entries[tag].firstUint()
}

// readDirectory parses the IFD at offset: its entry count, every 12-byte
// entry record (materializing inline or spilled values per spec.md §4.3),
// and the trailing next-IFD offset. Per-entry failures (unknown tag,
// unknown type, multi-string ASCII value, truncated value region) are
// collected in errs rather than
// aborting; a structural failure (the directory itself doesn't fit in the
// buffer) returns a non-nil error.
func readDirectory(data []byte, order binary.ByteOrder, offset int) (dir *directory, errs []error, err error) {
	if offset < 0 || offset+2 > len(data) {
		return nil, nil, InvalidImageFieldDirectoryError{Offset: offset}
	}
	n := int(order.Uint16(data[offset : offset+2]))
	entriesStart := offset + 2
	entriesEnd := entriesStart + n*ifdEntryLen
	if entriesEnd+4 > len(data) {
		return nil, nil, InvalidImageFieldDirectoryError{Offset: offset}
	}

	dir = &directory{entries: make(map[uint16]Value, n)}

	for i := 0; i < n; i++ {
		rec := data[entriesStart+i*ifdEntryLen : entriesStart+(i+1)*ifdEntryLen]
		tag := order.Uint16(rec[0:2])
		typ := order.Uint16(rec[2:4])
		count := order.Uint32(rec[4:8])
		slot := rec[8:12]

		if !recognizedTags[tag] {
			errs = append(errs, FieldError{Kind: UnknownFieldTag, Tag: tag})
			continue
		}
		if typ < dtByte || typ > dtRational {
			errs = append(errs, FieldError{Kind: UnknownFieldType, Tag: tag})
			continue
		}

		value, ferr := readFieldValue(data, order, int(typ), count, slot)
		if ferr != nil {
			errs = append(errs, FieldError{Kind: CantReadField, Tag: tag})
			continue
		}
		if typ == dtASCII && uint32(len(value.ascii))+1 < count {
			// A NUL before the last counted byte means the value holds
			// more than one string, which is not supported.
			errs = append(errs, FieldError{Kind: UnknownFieldType, Tag: tag})
			continue
		}
		dir.entries[tag] = value
	}

	dir.nextOffset = int(order.Uint32(data[entriesEnd : entriesEnd+4]))
	return dir, errs, nil
}

// readFieldValue materializes one entry's typed value, resolving the
// inline-vs-offset placement rule in reverse: if the value's total byte
// length fits in the 4-byte slot it is read directly from the slot,
// otherwise the slot is interpreted as an offset into data.
func readFieldValue(data []byte, order binary.ByteOrder, typ int, count uint32, slot []byte) (Value, error) {
	datalen := lengths[typ] * count

	var raw []byte
	if datalen <= 4 {
		raw = slot[:datalen]
	} else {
		off := int(order.Uint32(slot))
		if off < 0 || off+int(datalen) > len(data) {
			return Value{}, CantReadImageError("field value runs past end of buffer")
		}
		raw = data[off : off+int(datalen)]
	}

	switch typ {
	case dtByte:
		out := make([]byte, len(raw))
		copy(out, raw)
		return Bytes(out), nil
	case dtASCII:
		end := len(raw)
		for i, b := range raw {
			if b == 0 {
				end = i
				break
			}
		}
		return ASCII(string(raw[:end])), nil
	case dtShort:
		out := make([]uint16, count)
		for i := range out {
			out[i] = order.Uint16(raw[2*i : 2*i+2])
		}
		return Shorts(out), nil
	case dtLong:
		out := make([]uint32, count)
		for i := range out {
			out[i] = order.Uint32(raw[4*i : 4*i+4])
		}
		return Longs(out), nil
	case dtRational:
		out := make([]URational, count)
		for i := range out {
			out[i] = URational{
				Numerator:   order.Uint32(raw[8*i : 8*i+4]),
				Denominator: order.Uint32(raw[8*i+4 : 8*i+8]),
			}
		}
		return Rationals(out), nil
	default:
		return Value{}, UnsupportedError("data type")
	}
}
