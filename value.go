package tiff

// Value is a tagged union over the five pre-TIFF-6.0 field value shapes: a
// byte array, a single NUL-terminated ASCII string, a short array, a long
// array, or an array of unsigned rationals. Exactly one of the typed slices
// is meaningful, selected by Type.
//
// Go has no tagged-union type, so Value is a discriminated struct instead
// (mirroring how the teacher library's own `tag` struct already carries a
// datatype alongside its values).
type Value struct {
	Type   int
	bytes  []byte
	ascii  string
	shorts []uint16
	longs  []uint32
	rats   []URational
}

// URational is an unsigned rational: numerator/denominator, each a 32-bit
// unsigned integer. Resolution tags are carried through as these without
// further interpretation (spec.md §1).
type URational struct {
	Numerator, Denominator uint32
}

// Bytes constructs a Value holding a byte array.
func Bytes(v []byte) Value { return Value{Type: dtByte, bytes: v} }

// ASCII constructs a Value holding a single NUL-terminated string. Per the
// spec, storing more than one string in one ASCII value is unsupported.
func ASCII(v string) Value { return Value{Type: dtASCII, ascii: v} }

// Shorts constructs a Value holding an array of 16-bit unsigned integers.
func Shorts(v []uint16) Value { return Value{Type: dtShort, shorts: v} }

// Longs constructs a Value holding an array of 32-bit unsigned integers.
func Longs(v []uint32) Value { return Value{Type: dtLong, longs: v} }

// Rationals constructs a Value holding an array of unsigned rationals.
func Rationals(v []URational) Value { return Value{Type: dtRational, rats: v} }

// ByteValues returns the underlying byte array. Only meaningful when
// Type == dtByte.
func (v Value) ByteValues() []byte { return v.bytes }

// ASCIIValue returns the underlying string. Only meaningful when
// Type == dtASCII.
func (v Value) ASCIIValue() string { return v.ascii }

// ShortValues returns the underlying short array. Only meaningful when
// Type == dtShort.
func (v Value) ShortValues() []uint16 { return v.shorts }

// LongValues returns the underlying long array. Only meaningful when
// Type == dtLong.
func (v Value) LongValues() []uint32 { return v.longs }

// RationalValues returns the underlying rational array. Only meaningful
// when Type == dtRational.
func (v Value) RationalValues() []URational { return v.rats }

// count returns the on-disk element count for this value: the slice length
// for every type except ASCII, where it is the string length plus the NUL
// terminator.
func (v Value) count() uint32 {
	switch v.Type {
	case dtByte:
		return uint32(len(v.bytes))
	case dtASCII:
		return uint32(len(v.ascii)) + 1
	case dtShort:
		return uint32(len(v.shorts))
	case dtLong:
		return uint32(len(v.longs))
	case dtRational:
		return uint32(len(v.rats))
	default:
		return 0
	}
}

// byteLen returns the total on-disk byte length of the value's data,
// excluding the 12-byte entry record itself.
func (v Value) byteLen() uint32 {
	return v.count() * lengths[v.Type]
}

// firstUint returns the first element of a Shorts or Longs value as a
// plain uint, or 0 if the value is empty or not of one of those types. It
// is the decode-side convenience the IFD walker uses to pull out
// single-valued required tags (ImageWidth, Compression, ...).
func (v Value) firstUint() uint {
	switch v.Type {
	case dtShort:
		if len(v.shorts) == 0 {
			return 0
		}
		return uint(v.shorts[0])
	case dtLong:
		if len(v.longs) == 0 {
			return 0
		}
		return uint(v.longs[0])
	default:
		return 0
	}
}

// uints returns every element of a Shorts or Longs value widened to uint,
// used for tags such as StripOffsets/StripByteCounts whose full array
// matters, not just the first element.
func (v Value) uints() []uint {
	switch v.Type {
	case dtShort:
		out := make([]uint, len(v.shorts))
		for i, s := range v.shorts {
			out[i] = uint(s)
		}
		return out
	case dtLong:
		out := make([]uint, len(v.longs))
		for i, l := range v.longs {
			out[i] = uint(l)
		}
		return out
	default:
		return nil
	}
}
