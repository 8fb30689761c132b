package tiff

import "encoding/binary"

// encodeBuffer is a growable byte vector tagged with an endianness, used to
// assemble one encoded TIFF file. It seeds itself with the 8-byte header
// (sentinel + magic + a placeholder first-IFD offset) on construction, as
// spec.md §4.1 requires.
type encodeBuffer struct {
	bytes []byte
	order binary.ByteOrder
}

// newEncodeBuffer returns a buffer seeded with the header for the given
// endianness. The first-IFD offset starts at 8 (the header length) and is
// patched once the real offset of the first directory is known.
func newEncodeBuffer(order binary.ByteOrder) *encodeBuffer {
	b := &encodeBuffer{order: order}
	if order == binary.LittleEndian {
		b.bytes = append(b.bytes, 'I', 'I')
	} else {
		b.bytes = append(b.bytes, 'M', 'M')
	}
	b.appendShort(42)
	b.appendLong(8)
	return b
}

func (b *encodeBuffer) len() int { return len(b.bytes) }

func (b *encodeBuffer) isAligned() bool { return len(b.bytes)%2 == 0 }

// align appends a single zero pad byte if the buffer's length is currently
// odd, and returns the (now even) length. Applying it twice in a row is a
// no-op the second time (testable property 6).
func (b *encodeBuffer) align() int {
	if !b.isAligned() {
		b.bytes = append(b.bytes, 0)
	}
	return len(b.bytes)
}

func (b *encodeBuffer) appendByte(v byte) {
	b.bytes = append(b.bytes, v)
}

func (b *encodeBuffer) appendBytes(v []byte) {
	b.bytes = append(b.bytes, v...)
}

func (b *encodeBuffer) appendShort(v uint16) {
	var tmp [2]byte
	b.order.PutUint16(tmp[:], v)
	b.bytes = append(b.bytes, tmp[:]...)
}

func (b *encodeBuffer) appendLong(v uint32) {
	var tmp [4]byte
	b.order.PutUint32(tmp[:], v)
	b.bytes = append(b.bytes, tmp[:]...)
}

func (b *encodeBuffer) appendURational(v URational) {
	b.appendLong(v.Numerator)
	b.appendLong(v.Denominator)
}

// setLong overwrites the 4 bytes at offset with v, used to patch the
// header's first-IFD offset and an IFD's next-IFD offset once the real
// value is known.
func (b *encodeBuffer) setLong(offset int, v uint32) {
	b.order.PutUint32(b.bytes[offset:offset+4], v)
}

// byteAt returns the byte at index i, used by the PackBits encoder to
// mutate a previously-written literal-run count byte in place.
func (b *encodeBuffer) byteAt(i int) byte { return b.bytes[i] }

func (b *encodeBuffer) setByteAt(i int, v byte) { b.bytes[i] = v }
