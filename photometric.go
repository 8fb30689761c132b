package tiff

// commonEntries builds the IFD entry list every photometric variant
// shares (spec.md §6 "Required per IFD"): dimensions, compression,
// photometric interpretation, the single strip's offset/byte count/row
// span, and the two resolution tags (defaulted to 1/1, carried through
// uninterpreted per spec.md §1).
func commonEntries(width, height int, photometric, compression uint16, stripOffset, stripByteCount, rowsPerStrip int) []ifdEntry {
	return []ifdEntry{
		{tImageWidth, Longs([]uint32{uint32(width)})},
		{tImageLength, Longs([]uint32{uint32(height)})},
		{tCompression, Shorts([]uint16{compression})},
		{tPhotometricInterpretation, Shorts([]uint16{photometric})},
		{tStripOffsets, Shorts([]uint16{uint16(stripOffset)})},
		{tRowsPerStrip, Shorts([]uint16{uint16(rowsPerStrip)})},
		{tStripByteCounts, Longs([]uint32{uint32(stripByteCount)})},
		{tXResolution, Rationals([]URational{{Numerator: 1, Denominator: 1}})},
		{tYResolution, Rationals([]URational{{Numerator: 1, Denominator: 1}})},
	}
}

// writeStrip appends data, compressed through codec, at the buffer's next
// even-aligned position and reports where it landed.
func writeStrip(buf *encodeBuffer, codec compressor, data []byte) (offset, byteCount int) {
	offset = buf.align()
	codec.encode(buf, data)
	byteCount = buf.len() - offset
	return offset, byteCount
}

// readStrip validates that dir describes exactly one strip spanning the
// whole image height, then decompresses and returns its sample bytes
// (spec.md §4.6 "Strip geometry invariant").
func readStrip(data []byte, dir *directory, codec compressor, height int) ([]byte, error) {
	offsetsV, ok := dir.value(tStripOffsets)
	if !ok {
		return nil, MissingRequiredFieldError{Tag: tStripOffsets}
	}
	countsV, ok := dir.value(tStripByteCounts)
	if !ok {
		return nil, MissingRequiredFieldError{Tag: tStripByteCounts}
	}
	offsets := offsetsV.uints()
	counts := countsV.uints()
	if len(offsets) != 1 || len(counts) != 1 {
		return nil, CantReadImageError("multi-strip images are not supported")
	}

	rowsPerStrip := int(dir.firstUint(tRowsPerStrip))
	if rowsPerStrip == 0 {
		rowsPerStrip = height
	}
	if rowsPerStrip != height {
		return nil, CantReadImageError("strip geometry does not cover image height")
	}

	off, n := int(offsets[0]), int(counts[0])
	if off < 0 || n < 0 || off+n > len(data) {
		return nil, CantReadImageError("strip runs past end of buffer")
	}
	return codec.decode(data[off : off+n])
}

// requireTag fetches tag's value from dir or reports it missing.
func requireTag(dir *directory, tag uint16) (Value, error) {
	v, ok := dir.value(tag)
	if !ok {
		return Value{}, MissingRequiredFieldError{Tag: tag}
	}
	return v, nil
}

// decodeCompression resolves dir's Compression tag to a codec, defaulting
// to NoCompression when the tag is absent (spec.md §9 "global default
// values... carried as explicit defaults on the dispatch").
func decodeCompression(dir *directory) (compressor, error) {
	v, ok := dir.value(tCompression)
	if !ok {
		return identityCompressor{}, nil
	}
	return codecFor(v.firstUint())
}

// packRowsBool packs a row-major boolean sample matrix into bytes, each
// row starting its own byte boundary (spec.md §4.6 step 2: per-row
// packing, not a single flattened bitstream).
func packRowsBool(width, height int, samples []bool) []byte {
	stride := (width + 7) / 8
	out := make([]byte, 0, height*stride)
	for row := 0; row < height; row++ {
		out = append(out, packBits(samples[row*width:(row+1)*width])...)
	}
	return out
}

// unpackRowsBool inverts packRowsBool given the per-row byte stride
// implied by width.
func unpackRowsBool(data []byte, width, height int) ([]bool, error) {
	stride := (width + 7) / 8
	if len(data) < stride*height {
		return nil, CantReadImageError("strip shorter than declared image dimensions")
	}
	out := make([]bool, width*height)
	for row := 0; row < height; row++ {
		rowBytes := data[row*stride : (row+1)*stride]
		for col := 0; col < width; col++ {
			b := rowBytes[col/8]
			bit := (b >> (7 - uint(col%8))) & 1
			out[row*width+col] = bit == 1
		}
	}
	return out, nil
}

// packRowsNibble packs a row-major nibble sample matrix into bytes, each
// row starting its own byte boundary, high nibble first.
func packRowsNibble(width, height int, samples []uint8) []byte {
	stride := (width + 1) / 2
	out := make([]byte, 0, height*stride)
	for row := 0; row < height; row++ {
		out = append(out, packNibbles(samples[row*width:(row+1)*width])...)
	}
	return out
}

// unpackRowsNibble inverts packRowsNibble.
func unpackRowsNibble(data []byte, width, height int) ([]uint8, error) {
	stride := (width + 1) / 2
	if len(data) < stride*height {
		return nil, CantReadImageError("strip shorter than declared image dimensions")
	}
	out := make([]uint8, width*height)
	for row := 0; row < height; row++ {
		rowBytes := data[row*stride : (row+1)*stride]
		for col := 0; col < width; col++ {
			b := rowBytes[col/2]
			if col%2 == 0 {
				out[row*width+col] = b >> 4
			} else {
				out[row*width+col] = b & 0x0F
			}
		}
	}
	return out, nil
}
