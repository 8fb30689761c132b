package tiff

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	txlzw "golang.org/x/image/tiff/lzw"
)

// compressor is implemented by every supported compression scheme. A single
// interface exposes both directions (spec.md §9 Design Notes: "sealed
// capability traits... become a single interface exposing both encode and
// decode"); a scheme that genuinely cannot go one direction would signal
// that through the error return rather than existing as a distinct type —
// in practice all three baseline schemes implement both.
type compressor interface {
	tag() uint16
	encode(buf *encodeBuffer, data []byte)
	decode(data []byte) ([]byte, error)
}

// codecFor returns the compressor registered for a Compression tag value,
// or an error for anything this library doesn't implement (spec.md §7
// UnsupportedCompressionType).
func codecFor(value uint) (compressor, error) {
	switch value {
	case cNone, 0: // 0 (EncodeOptions' zero value) also selects no compression.
		return identityCompressor{}, nil
	case cPackBits:
		return packBitsCompressor{}, nil
	case cLZW:
		return lzwCompressor{}, nil
	default:
		return nil, UnsupportedCompressionTypeError{Value: value}
	}
}

// identityCompressor is the uncompressed scheme: encode copies the bytes
// through unchanged, decode yields them back.
type identityCompressor struct{}

func (identityCompressor) tag() uint16 { return cNone }

func (identityCompressor) encode(buf *encodeBuffer, data []byte) {
	buf.appendBytes(data)
}

func (identityCompressor) decode(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// packBitsCompressor implements byte-run-length PackBits compression
// (spec.md §4.4, TIFF spec section 9).
type packBitsCompressor struct{}

func (packBitsCompressor) tag() uint16 { return cPackBits }

func (packBitsCompressor) encode(buf *encodeBuffer, data []byte) {
	packBitsEncode(buf, data)
}

func (packBitsCompressor) decode(data []byte) ([]byte, error) {
	return packBitsDecode(data)
}

// lzwCompressor implements the TIFF flavor of LZW: variable 9-12 bit
// codes, MSB-first bit packing, explicit Clear (256) and EOI (257) codes.
type lzwCompressor struct{}

func (lzwCompressor) tag() uint16 { return cLZW }

func (lzwCompressor) encode(buf *encodeBuffer, data []byte) {
	lzwEncode(buf, data)
}

func (lzwCompressor) decode(data []byte) ([]byte, error) {
	return lzwDecode(data)
}

//------------------------------------------------------------------------
// PackBits
//------------------------------------------------------------------------

// packBitsRun tracks the byte value and length (1..128) of the run
// currently being accumulated by packBitsEncode.
type packBitsRun struct {
	b byte
	n int
}

// packBitsEncode implements the state machine of spec.md §4.4: a current
// run plus the index of the most recently opened literal run's count byte
// (noOpenLiteral when the last emission was a replicate run).
func packBitsEncode(buf *encodeBuffer, data []byte) {
	const noOpenLiteral = -1
	const maxEncodedLiteral = 127 // Encoded count-1 ceiling (actual length 128).

	openLiteral := noOpenLiteral
	var current *packBitsRun

	emitReplicate := func(r packBitsRun) {
		buf.appendByte(byte(int8(-(r.n - 1))))
		buf.appendByte(r.b)
	}

	startLiteral := func(b byte) int {
		idx := buf.len()
		buf.appendByte(0)
		buf.appendByte(b)
		return idx
	}

	// emitRun writes out a completed run and returns the (possibly new)
	// index of the open literal run, or noOpenLiteral if the run was
	// written as a replicate.
	emitRun := func(r packBitsRun, openLiteral int) int {
		switch {
		case r.n == 1:
			if openLiteral != noOpenLiteral {
				if cnt := buf.byteAt(openLiteral); cnt <= maxEncodedLiteral-1 {
					buf.setByteAt(openLiteral, cnt+1)
					buf.appendByte(r.b)
					return openLiteral
				}
			}
			return startLiteral(r.b)
		case r.n == 2:
			if openLiteral != noOpenLiteral {
				cnt := buf.byteAt(openLiteral)
				if cnt <= maxEncodedLiteral-2 {
					buf.setByteAt(openLiteral, cnt+2)
					buf.appendByte(r.b)
					buf.appendByte(r.b)
					return openLiteral
				}
				if cnt == maxEncodedLiteral-1 {
					buf.setByteAt(openLiteral, cnt+1)
					buf.appendByte(r.b)
					return startLiteral(r.b)
				}
			}
			emitReplicate(r)
			return noOpenLiteral
		default: // n >= 3
			emitReplicate(r)
			return noOpenLiteral
		}
	}

	for _, b := range data {
		switch {
		case current == nil:
			current = &packBitsRun{b: b, n: 1}
		case b == current.b:
			if current.n < 128 {
				current.n++
			} else {
				emitReplicate(*current)
				openLiteral = noOpenLiteral
				current.n = 1
			}
		default:
			openLiteral = emitRun(*current, openLiteral)
			current = &packBitsRun{b: b, n: 1}
		}
	}
	if current != nil {
		emitRun(*current, openLiteral)
	}
}

// packBitsDecode inverts packBitsEncode: a signed count byte n selects
// between a literal run (0..127: copy n+1 bytes), a replicate run
// (-127..-1: repeat the next byte -n+1 times), or a no-op (-128).
func packBitsDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		n := int8(data[i])
		i++
		switch {
		case n >= 0:
			count := int(n) + 1
			if i+count > len(data) {
				return nil, CantReadImageError("truncated packbits literal run")
			}
			out = append(out, data[i:i+count]...)
			i += count
		case n == -128:
			// No-op per spec.
		default:
			if i >= len(data) {
				return nil, CantReadImageError("truncated packbits replicate run")
			}
			b := data[i]
			i++
			count := -int(n) + 1
			for j := 0; j < count; j++ {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

//------------------------------------------------------------------------
// LZW
//------------------------------------------------------------------------

const (
	lzwClearCode = 256
	lzwEOICode   = 257
	lzwFirstCode = 258
	lzwMaxCode   = 4094
)

// lzwBitWriter packs MSB-first variable-width codes into an encodeBuffer.
type lzwBitWriter struct {
	buf   *encodeBuffer
	acc   uint32
	nbits uint
}

func (w *lzwBitWriter) writeCode(code uint16, width uint8) {
	w.acc = (w.acc << width) | uint32(code)
	w.nbits += uint(width)
	for w.nbits >= 8 {
		w.nbits -= 8
		w.buf.appendByte(byte(w.acc >> w.nbits))
	}
}

func (w *lzwBitWriter) flush() {
	if w.nbits > 0 {
		w.buf.appendByte(byte(w.acc << (8 - w.nbits)))
		w.nbits = 0
	}
}

// lzwCodeWidth returns the bit width codes are currently written at, based
// on the next code about to be assigned: 9 bits below 512, 10 below 1024,
// 11 below 2048, 12 otherwise. This is TIFF's "early change" seen from the
// encoder side: golang.org/x/image/tiff/lzw's decoder builds its table one
// entry behind the encoder and widens once its own next entry reaches
// 511/1023/2047, which is the encoder's 512/1024/2048. The encoder must
// match it exactly or the bitstream desyncs once the dictionary grows
// past the first width's code space.
func lzwCodeWidth(nextCode uint16) uint8 {
	switch {
	case nextCode < 512:
		return 9
	case nextCode < 1024:
		return 10
	case nextCode < 2048:
		return 11
	default:
		return 12
	}
}

// lzwEncode implements the TIFF-flavor LZW encoder: a growing dictionary
// mapping byte-strings to codes 258..4093, codes 0..255 implicitly
// representing single bytes. Grounded on
// original_source/src/encode/compression.rs's `lzw` function; there is no
// ecosystem LZW encoder for this exact variant to wire instead (see
// DESIGN.md).
func lzwEncode(buf *encodeBuffer, data []byte) {
	w := &lzwBitWriter{buf: buf}
	w.writeCode(lzwClearCode, 9)

	if len(data) == 0 {
		w.writeCode(lzwEOICode, 9)
		w.flush()
		return
	}

	dict := make(map[string]uint16)
	nextCode := uint16(lzwFirstCode)

	getCode := func(s string) uint16 {
		if len(s) == 1 {
			return uint16(s[0])
		}
		return dict[s]
	}

	addEntry := func(s string) {
		dict[s] = nextCode
		nextCode++
		if nextCode == lzwMaxCode {
			w.writeCode(lzwClearCode, 12)
			dict = make(map[string]uint16)
			nextCode = lzwFirstCode
		}
	}

	curr := []byte{data[0]}
	for _, b := range data[1:] {
		curr = append(curr, b)
		if _, ok := dict[string(curr)]; !ok {
			code := getCode(string(curr[:len(curr)-1]))
			w.writeCode(code, lzwCodeWidth(nextCode))
			addEntry(string(curr))
			curr = []byte{b}
		}
	}

	width := lzwCodeWidth(nextCode)
	w.writeCode(getCode(string(curr)), width)
	// The decoder advances its table once more on reading the final code,
	// so EOI goes out at the width of the code after nextCode.
	w.writeCode(lzwEOICode, lzwCodeWidth(nextCode+1))
	w.flush()
}

// lzwDecode decompresses TIFF-flavor LZW data. Wired to
// golang.org/x/image/tiff/lzw, exactly as the teacher library's decoder
// does for its cLZW case: that package exposes a decoder but no encoder,
// which is why lzwEncode above is hand-written instead (see DESIGN.md).
func lzwDecode(data []byte) ([]byte, error) {
	r := txlzw.NewReader(bytes.NewReader(data), txlzw.MSB, 8)
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "lzw decode")
	}
	return out, nil
}

//------------------------------------------------------------------------
// Pixel packers
//------------------------------------------------------------------------

// packBits packs a boolean stream into bytes, the first boolean occupying
// bit 7 (MSB) of the first byte. An incomplete trailing group pads with
// zeros. Grounded on original_source/src/encode/compression.rs's
// BitPacker.
func packBits(bits []bool) []byte {
	out := make([]byte, 0, (len(bits)+7)/8)
	for i := 0; i < len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b <<= 1
			if i+j < len(bits) && bits[i+j] {
				b |= 1
			}
		}
		out = append(out, b)
	}
	return out
}

// packNibbles packs a nibble stream (values 0..15) into bytes, the first
// nibble occupying the high 4 bits. An odd trailing nibble pads with zero.
// Grounded on original_source/src/encode/compression.rs's HalfBytePacker.
func packNibbles(nibbles []byte) []byte {
	out := make([]byte, 0, (len(nibbles)+1)/2)
	for i := 0; i < len(nibbles); i += 2 {
		hi := nibbles[i]
		var lo byte
		if i+1 < len(nibbles) {
			lo = nibbles[i+1]
		}
		out = append(out, (hi<<4)|lo)
	}
	return out
}
