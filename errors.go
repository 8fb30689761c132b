package tiff

import "fmt"

// A FormatError reports that the input is not a valid TIFF container: a bad
// header sentinel/magic number or a directory that cannot be located.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("tiff: invalid format: %s", string(e))
}

// An UnsupportedError reports that the input uses a valid but unimplemented
// feature (a compression scheme, field type or sub-format this library
// deliberately does not decode).
type UnsupportedError string

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("tiff: unsupported feature: %s", string(e))
}

// An InternalError reports that an invariant the encoder or decoder relies
// on internally was violated.
type InternalError string

func (e InternalError) Error() string {
	return fmt.Sprintf("tiff: internal error: %s", string(e))
}

// FieldError reports a problem with a single IFD entry. Field errors are
// non-fatal: a decoder collects them and continues decoding the rest of the
// file (see DecodeResult).
type FieldError struct {
	// Kind names which of the per-entry failure modes occurred.
	Kind FieldErrorKind
	// Tag is the numeric tag of the offending entry, when known.
	Tag uint16
}

// FieldErrorKind enumerates the per-entry failure modes an IFD walk can
// encounter without aborting the whole decode.
type FieldErrorKind int

const (
	// UnknownFieldTag means the entry's tag is not one this library
	// recognizes (§6 Recognized tags).
	UnknownFieldTag FieldErrorKind = iota
	// UnknownFieldType means the entry's type id is not one of the five
	// pre-TIFF-6.0 types this library supports, or that an ASCII value
	// holds more than one string.
	UnknownFieldType
	// CantReadField means the value region (inline or spilled) could not
	// be read: it would run past the end of the buffer.
	CantReadField
	// InvalidTagValueCount means a recognized tag was present with a
	// value count that does not match its expected arity (e.g.
	// PhotometricInterpretation with more than one value).
	InvalidTagValueCount
	// InvalidTagValues means a recognized tag held an out-of-range or
	// otherwise nonsensical code (e.g. an unrecognized
	// PhotometricInterpretation value).
	InvalidTagValues
)

func (k FieldErrorKind) String() string {
	switch k {
	case UnknownFieldTag:
		return "unknown field tag"
	case UnknownFieldType:
		return "unknown field type"
	case CantReadField:
		return "can't read field"
	case InvalidTagValueCount:
		return "invalid tag value count"
	case InvalidTagValues:
		return "invalid tag values"
	default:
		return "unknown field error"
	}
}

func (e FieldError) Error() string {
	return fmt.Sprintf("tiff: field %d: %s", e.Tag, e.Kind)
}

// MissingRequiredFieldError reports that an IFD lacked a tag that is
// mandatory for the photometric variant it declares (§6 Required per IFD).
type MissingRequiredFieldError struct {
	Tag uint16
}

func (e MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("tiff: missing required field %d", e.Tag)
}

// InvalidImageFieldDirectoryError reports that the IFD at the given file
// offset could not even be parsed as a directory (truncated entry count or
// entry table).
type InvalidImageFieldDirectoryError struct {
	Offset int
}

func (e InvalidImageFieldDirectoryError) Error() string {
	return fmt.Sprintf("tiff: invalid image file directory at offset %d", e.Offset)
}

// LoopingIfdIndicesError reports that the IFD chain revisits an offset
// already seen, which would decode forever. This is a structural, fatal
// error: decoding of the whole file is abandoned (any images already
// decoded are still returned, see DecodeResult).
type LoopingIfdIndicesError struct {
	Offset int
}

func (e LoopingIfdIndicesError) Error() string {
	return fmt.Sprintf("tiff: looping ifd chain revisits offset %d", e.Offset)
}

// UnsupportedCompressionTypeError reports a Compression tag value this
// library does not implement a codec for.
type UnsupportedCompressionTypeError struct {
	Value uint
}

func (e UnsupportedCompressionTypeError) Error() string {
	return fmt.Sprintf("tiff: unsupported compression type %d", e.Value)
}

// CantReadImageError reports that the declared strip geometry does not
// cover the image, or that a strip failed to decompress.
type CantReadImageError string

func (e CantReadImageError) Error() string {
	return fmt.Sprintf("tiff: can't read image: %s", string(e))
}

// ImageCreateError reports that an Image could not be constructed from the
// given pixels/dimensions.
type ImageCreateError struct {
	Kind          ImageCreateErrorKind
	Width, Height int
	PixelCount    int
}

// ImageCreateErrorKind enumerates why Image construction was refused.
type ImageCreateErrorKind int

const (
	// DimensionMismatch means width*height != len(pixels).
	DimensionMismatch ImageCreateErrorKind = iota
	// NoPixels means the pixel vector was empty.
	NoPixels
)

func (e ImageCreateError) Error() string {
	switch e.Kind {
	case NoPixels:
		return "tiff: image can not be 0x0 pixels"
	default:
		return fmt.Sprintf(
			"tiff: expected %d*%d (%d) pixels but got %d",
			e.Width, e.Height, e.Width*e.Height, e.PixelCount,
		)
	}
}

// ErrTooManyColors is returned by ColorMap.Add when a 257th distinct color
// is inserted; the map is left unchanged beyond the first 256 entries.
type ErrTooManyColors struct{}

func (ErrTooManyColors) Error() string {
	return "tiff: color map already holds the maximum of 256 colors"
}

// PaletteIndexOutOfRangeError reports that a PaletteImage pixel indexes a
// color not present in its palette.
type PaletteIndexOutOfRangeError struct {
	Index      int
	PaletteLen int
}

func (e PaletteIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("tiff: palette index %d out of range for a %d-color map", e.Index, e.PaletteLen)
}
