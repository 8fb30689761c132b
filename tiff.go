package tiff

import "encoding/binary"

// Image is implemented by every concrete image type this library can
// encode or produce from a decode: *BilevelImage, *Grayscale4Image,
// *Grayscale8Image, *RGBImage, *PaletteImage. Go has no closed sum type,
// so isImage is a private marker method restricting the set of
// implementers to this package (spec.md §9: the photometric dispatch is
// data-driven, not a type hierarchy, but callers still need one type to
// hold "any decodable image").
type Image interface {
	isImage()
}

func (*BilevelImage) isImage()    {}
func (*Grayscale4Image) isImage() {}
func (*Grayscale8Image) isImage() {}
func (*RGBImage) isImage()        {}
func (*PaletteImage) isImage()    {}

// EncodeOptions configures how one image is written into a container.
type EncodeOptions struct {
	// Compression selects the codec: cNone (or zero) for uncompressed,
	// cPackBits, or cLZW.
	Compression uint16
	// WhiteIsZero chooses the photometric interpretation for
	// Bilevel/Grayscale4Bit/Grayscale8Bit images; ignored for RGB and
	// palette images, which always encode BlackIsZero-equivalent /
	// PaletteColor semantics.
	WhiteIsZero bool
}

// Encode writes images as a chain of IFDs in a single TIFF container
// under order, applying opts[i] to images[i] (a short or nil opts slice
// falls back to EncodeOptions{} — uncompressed, BlackIsZero). The first
// image's IFD is linked from the header; each subsequent image's IFD is
// linked from the previous one's next-offset slot (spec.md §4.6 "Multi-
// image containers").
func Encode(order binary.ByteOrder, images []Image, opts []EncodeOptions) ([]byte, error) {
	if len(images) == 0 {
		return nil, InternalError("Encode requires at least one image")
	}

	buf := newEncodeBuffer(order)
	var prevIFD *ifdInfo

	for i, img := range images {
		var opt EncodeOptions
		if i < len(opts) {
			opt = opts[i]
		}
		codec, err := codecFor(uint(opt.Compression))
		if err != nil {
			return nil, err
		}

		var info ifdInfo
		switch v := img.(type) {
		case *BilevelImage:
			info = encodeBilevelImage(buf, v, opt.WhiteIsZero, codec)
		case *Grayscale4Image:
			info = encodeGrayscale4Image(buf, v, opt.WhiteIsZero, codec)
		case *Grayscale8Image:
			info = encodeGrayscale8Image(buf, v, opt.WhiteIsZero, codec)
		case *RGBImage:
			info = encodeRGBImage(buf, v, codec)
		case *PaletteImage:
			info = encodePaletteImage(buf, v, codec)
		default:
			return nil, InternalError("unrecognized image type")
		}

		if prevIFD == nil {
			buf.setLong(4, uint32(info.offset))
		} else {
			buf.setLong(prevIFD.nextIFDOffsetPos(), uint32(info.offset))
		}
		infoCopy := info
		prevIFD = &infoCopy
	}

	return buf.bytes, nil
}

// DecodeResult holds every image successfully decoded from a container
// plus every non-fatal error encountered along the way (per-entry field
// errors, and any missing-required-field or strip-geometry failure that
// caused one whole IFD to be skipped). Mirrors
// original_source/src/decode/mod.rs's DecodeResult{images, errors} shape
// (spec.md §3).
type DecodeResult struct {
	Images []Image
	Errors []error
}

// Decode walks the IFD chain in data, decoding each image in turn.
// Per-entry and per-IFD failures are collected in the result's Errors
// and do not stop decoding of later images. Two conditions end the walk
// early: a looping IFD chain, and a directory that cannot be parsed at
// all (its next-IFD offset is then unknown). Either is recorded in Errors,
// and the result still holds the images decoded before it (spec.md §9
// Open Question 4). Decode returns a non-nil error only for a bad header.
func Decode(data []byte) (*DecodeResult, error) {
	order, firstOffset, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	result := &DecodeResult{}
	visited := make(map[int]bool)
	offset := firstOffset

	for offset != 0 {
		if visited[offset] {
			result.Errors = append(result.Errors, LoopingIfdIndicesError{Offset: offset})
			return result, nil
		}
		visited[offset] = true

		dir, fieldErrs, err := readDirectory(data, order, offset)
		if err != nil {
			result.Errors = append(result.Errors, err)
			return result, nil
		}
		result.Errors = append(result.Errors, fieldErrs...)

		img, err := decodeOneImage(data, dir)
		if err != nil {
			result.Errors = append(result.Errors, err)
		} else {
			result.Images = append(result.Images, img)
		}

		offset = dir.nextOffset
	}

	return result, nil
}

// decodeOneImage dispatches by (PhotometricInterpretation, BitsPerSample)
// per spec.md §4.6's state machine.
func decodeOneImage(data []byte, dir *directory) (Image, error) {
	photoV, err := requireTag(dir, tPhotometricInterpretation)
	if err != nil {
		return nil, err
	}

	switch photoV.firstUint() {
	case pRGB:
		return decodeRGBImage(data, dir)
	case pPaletted:
		return decodePaletteImage(data, dir)
	case pWhiteIsZero, pBlackIsZero:
		bps := uint(1)
		if v, ok := dir.value(tBitsPerSample); ok {
			bps = v.firstUint()
		}
		switch bps {
		case 1:
			return decodeBilevelImage(data, dir)
		case 4:
			return decodeGrayscale4Image(data, dir)
		case 8:
			return decodeGrayscale8Image(data, dir)
		default:
			return nil, FieldError{Kind: InvalidTagValues, Tag: tBitsPerSample}
		}
	default:
		return nil, FieldError{Kind: InvalidTagValues, Tag: tPhotometricInterpretation}
	}
}
