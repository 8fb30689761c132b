package tiff

import (
	"encoding/binary"
	"sort"
)

// ifdEntry pairs a tag with its typed value, the unit the IFD assembler
// consumes (spec.md §3 "IFD Entry").
type ifdEntry struct {
	tag   uint16
	value Value
}

// byTag sorts ifdEntry slices into the strictly-ascending tag order every
// emitted IFD must have (spec.md §3 IFD invariant, testable property 5).
type byTag []ifdEntry

func (d byTag) Len() int           { return len(d) }
func (d byTag) Less(i, j int) bool { return d[i].tag < d[j].tag }
func (d byTag) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }

// ifdInfo records where an emitted directory's entry-count field begins and
// how many entries it holds, so a caller can later locate and patch its
// next-IFD offset slot.
type ifdInfo struct {
	offset     int // Start of the directory (the entry-count field).
	entryCount int
}

// nextIFDOffsetPos returns the absolute position of the 4-byte next-IFD
// offset field that follows this directory's entry table.
func (i ifdInfo) nextIFDOffsetPos() int {
	return i.offset + 2 + i.entryCount*ifdEntryLen
}

// writeIFD sorts entries by tag and emits, at the buffer's current
// even-aligned position, the directory header, the 12-byte entry records
// (with inline-or-offset value placement per spec.md §4.3), a zeroed
// next-IFD offset slot, and finally the spilled value data for every entry
// that didn't fit inline.
func writeIFD(buf *encodeBuffer, entries []ifdEntry) ifdInfo {
	sort.Sort(byTag(entries))

	ifdOffset := buf.align()
	n := len(entries)
	buf.appendShort(uint16(n))

	pstart := ifdOffset + 2 + n*ifdEntryLen + 4
	var spill []byte

	for _, e := range entries {
		slot := placeValue(buf.order, e.value, pstart, &spill)
		buf.appendShort(e.tag)
		buf.appendShort(uint16(e.value.Type))
		buf.appendLong(e.value.count())
		buf.appendBytes(slot[:])
	}

	buf.appendLong(0) // Next-IFD offset, patched later by the caller if needed.
	buf.appendBytes(spill)

	return ifdInfo{offset: ifdOffset, entryCount: n}
}

// placeValue decides whether value fits in the entry's 4-byte slot or must
// spill to the region starting at pstart, appending to *spill in the
// latter case. It returns the 4 bytes to write into the entry record.
func placeValue(order binary.ByteOrder, value Value, pstart int, spill *[]byte) (slot [4]byte) {
	switch value.Type {
	case dtByte:
		if len(value.bytes) <= 4 {
			copy(slot[:], value.bytes)
			return
		}
	case dtASCII:
		total := len(value.ascii) + 1
		if total <= 4 {
			copy(slot[:], value.ascii)
			// slot[len(value.ascii)] is already zero (the NUL terminator).
			return
		}
	case dtShort:
		switch len(value.shorts) {
		case 0:
			return
		case 1:
			order.PutUint16(slot[0:2], value.shorts[0])
			return
		case 2:
			order.PutUint16(slot[0:2], value.shorts[0])
			order.PutUint16(slot[2:4], value.shorts[1])
			return
		}
	case dtLong:
		switch len(value.longs) {
		case 0:
			return
		case 1:
			order.PutUint32(slot[:], value.longs[0])
			return
		}
	}

	// Every remaining case (including Rationals, which always spill)
	// writes to the appended region and records its offset.
	if len(*spill)%2 != 0 {
		*spill = append(*spill, 0)
	}
	offset := uint32(pstart + len(*spill))
	order.PutUint32(slot[:], offset)

	switch value.Type {
	case dtByte:
		*spill = append(*spill, value.bytes...)
	case dtASCII:
		*spill = append(*spill, value.ascii...)
		*spill = append(*spill, 0)
	case dtShort:
		for _, s := range value.shorts {
			var tmp [2]byte
			order.PutUint16(tmp[:], s)
			*spill = append(*spill, tmp[:]...)
		}
	case dtLong:
		for _, l := range value.longs {
			var tmp [4]byte
			order.PutUint32(tmp[:], l)
			*spill = append(*spill, tmp[:]...)
		}
	case dtRational:
		for _, r := range value.rats {
			var tmp [8]byte
			order.PutUint32(tmp[0:4], r.Numerator)
			order.PutUint32(tmp[4:8], r.Denominator)
			*spill = append(*spill, tmp[:]...)
		}
	}
	return
}
