package tiff

import (
	"encoding/binary"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteIFDTagOrder checks testable property 5: entries in an emitted
// IFD are strictly ascending by tag regardless of input order.
func TestWriteIFDTagOrder(t *testing.T) {
	buf := newEncodeBuffer(binary.LittleEndian)
	entries := []ifdEntry{
		{tStripOffsets, Longs([]uint32{1})},
		{tImageWidth, Longs([]uint32{2})},
		{tPhotometricInterpretation, Shorts([]uint16{1})},
		{tImageLength, Longs([]uint32{2})},
	}
	info := writeIFD(buf, entries)

	dir, fieldErrs, err := readDirectory(buf.bytes, binary.LittleEndian, info.offset)
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	require.Len(t, dir.entries, 4)

	n := int(binary.LittleEndian.Uint16(buf.bytes[info.offset : info.offset+2]))
	tags := make([]int, n)
	for i := 0; i < n; i++ {
		rec := buf.bytes[info.offset+2+i*ifdEntryLen : info.offset+2+(i+1)*ifdEntryLen]
		tags[i] = int(binary.LittleEndian.Uint16(rec[0:2]))
	}
	assert.True(t, sort.IntsAreSorted(tags))
}

// TestPlaceValueInlineVsSpill checks testable property 4: values that fit
// in 4 bytes stay inline, larger ones spill to an even offset that
// dereferences to the exact bytes.
func TestPlaceValueInlineVsSpill(t *testing.T) {
	order := binary.LittleEndian

	t.Run("short pair inline", func(t *testing.T) {
		var spill []byte
		slot := placeValue(order, Shorts([]uint16{8, 8}), 100, &spill)
		assert.Empty(t, spill)
		assert.Equal(t, uint16(8), order.Uint16(slot[0:2]))
		assert.Equal(t, uint16(8), order.Uint16(slot[2:4]))
	})

	t.Run("single long inline", func(t *testing.T) {
		var spill []byte
		slot := placeValue(order, Longs([]uint32{1234}), 100, &spill)
		assert.Empty(t, spill)
		assert.Equal(t, uint32(1234), order.Uint32(slot[:]))
	})

	t.Run("three longs spill", func(t *testing.T) {
		var spill []byte
		slot := placeValue(order, Longs([]uint32{1, 2, 3}), 100, &spill)
		off := int(order.Uint32(slot[:]))
		assert.Equal(t, 100, off)
		require.Len(t, spill, 12)
		assert.Equal(t, uint32(1), order.Uint32(spill[0:4]))
		assert.Equal(t, uint32(2), order.Uint32(spill[4:8]))
		assert.Equal(t, uint32(3), order.Uint32(spill[8:12]))
	})

	t.Run("rational always spills", func(t *testing.T) {
		var spill []byte
		slot := placeValue(order, Rationals([]URational{{Numerator: 1, Denominator: 2}}), 100, &spill)
		off := int(order.Uint32(slot[:]))
		assert.Equal(t, 100, off)
		require.Len(t, spill, 8)
	})

	t.Run("ascii over 4 bytes spills at even offset", func(t *testing.T) {
		var spill []byte
		placeValue(order, Bytes([]byte{1, 2, 3, 4, 5}), 100, &spill) // Spills 5 bytes, leaving spill odd-length.
		require.Len(t, spill, 5)

		slot := placeValue(order, ASCII("hello"), 100, &spill)
		off := int(order.Uint32(slot[:]))
		assert.Equal(t, 0, off%2)
		assert.Equal(t, "hello\x00", string(spill[off-100:]))
	})
}

func TestReadFieldValueInlineSmallerThanFourBytes(t *testing.T) {
	order := binary.LittleEndian
	var slot [4]byte
	order.PutUint16(slot[0:2], 7)
	// The remaining 2 bytes of the slot are not part of the value and must
	// be ignored, not misread as an offset (the bug this library's decode
	// path deliberately avoids, unlike a naive "slot is always an offset"
	// implementation).
	slot[2], slot[3] = 0xFF, 0xFF

	v, err := readFieldValue(nil, order, dtShort, 1, slot[:])
	require.NoError(t, err)
	assert.Equal(t, []uint16{7}, v.ShortValues())
}

func TestReadFieldValueOffsetWhenTooLargeForSlot(t *testing.T) {
	order := binary.LittleEndian
	data := make([]byte, 20)
	order.PutUint32(data[12:16], 42)
	order.PutUint32(data[16:20], 1)

	var slot [4]byte
	order.PutUint32(slot[:], 12)

	v, err := readFieldValue(data, order, dtRational, 1, slot[:])
	require.NoError(t, err)
	require.Len(t, v.RationalValues(), 1)
	assert.Equal(t, URational{Numerator: 42, Denominator: 1}, v.RationalValues()[0])
}

func TestParseHeaderRejectsBadSentinel(t *testing.T) {
	_, _, err := parseHeader([]byte("XXaa\x08\x00\x00\x00"))
	assert.Error(t, err)
}

func TestParseHeaderRoundTrip(t *testing.T) {
	buf := newEncodeBuffer(binary.BigEndian)
	order, offset, err := parseHeader(buf.bytes)
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, order)
	assert.Equal(t, 8, offset)
}
