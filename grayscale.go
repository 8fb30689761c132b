package tiff

// encodeGrayscale4Image writes img as a single-strip 4-bit grayscale IFD,
// two samples packed per byte (high nibble first).
func encodeGrayscale4Image(buf *encodeBuffer, img *Grayscale4Image, whiteIsZero bool, codec compressor) ifdInfo {
	photometric := uint16(pBlackIsZero)
	samples := make([]uint8, len(img.Pixels))
	for i, v := range img.Pixels {
		if whiteIsZero {
			samples[i] = 15 - v
		} else {
			samples[i] = v
		}
	}
	if whiteIsZero {
		photometric = pWhiteIsZero
	}

	data := packRowsNibble(img.Width, img.Height, samples)
	stripOffset, stripByteCount := writeStrip(buf, codec, data)

	entries := commonEntries(img.Width, img.Height, photometric, codec.tag(), stripOffset, stripByteCount, img.Height)
	entries = append(entries, ifdEntry{tBitsPerSample, Shorts([]uint16{4})})
	return writeIFD(buf, entries)
}

// decodeGrayscale4Image reassembles a Grayscale4Image from an
// already-parsed directory known to declare 4 bits per sample.
func decodeGrayscale4Image(data []byte, dir *directory) (*Grayscale4Image, error) {
	widthV, err := requireTag(dir, tImageWidth)
	if err != nil {
		return nil, err
	}
	heightV, err := requireTag(dir, tImageLength)
	if err != nil {
		return nil, err
	}
	photoV, err := requireTag(dir, tPhotometricInterpretation)
	if err != nil {
		return nil, err
	}
	width, height := int(widthV.firstUint()), int(heightV.firstUint())

	codec, err := decodeCompression(dir)
	if err != nil {
		return nil, err
	}
	stripData, err := readStrip(data, dir, codec, height)
	if err != nil {
		return nil, err
	}

	samples, err := unpackRowsNibble(stripData, width, height)
	if err != nil {
		return nil, err
	}

	whiteIsZero := photoV.firstUint() == pWhiteIsZero
	pixels := make([]uint8, len(samples))
	for i, s := range samples {
		if whiteIsZero {
			pixels[i] = 15 - s
		} else {
			pixels[i] = s
		}
	}
	return NewGrayscale4Image(width, height, pixels)
}

// encodeGrayscale8Image writes img as a single-strip 8-bit grayscale IFD,
// one byte per sample.
func encodeGrayscale8Image(buf *encodeBuffer, img *Grayscale8Image, whiteIsZero bool, codec compressor) ifdInfo {
	photometric := uint16(pBlackIsZero)
	data := make([]byte, len(img.Pixels))
	for i, v := range img.Pixels {
		if whiteIsZero {
			data[i] = 255 - v
		} else {
			data[i] = v
		}
	}
	if whiteIsZero {
		photometric = pWhiteIsZero
	}

	stripOffset, stripByteCount := writeStrip(buf, codec, data)

	entries := commonEntries(img.Width, img.Height, photometric, codec.tag(), stripOffset, stripByteCount, img.Height)
	entries = append(entries, ifdEntry{tBitsPerSample, Shorts([]uint16{8})})
	return writeIFD(buf, entries)
}

// decodeGrayscale8Image reassembles a Grayscale8Image from an
// already-parsed directory known to declare 8 bits per sample.
func decodeGrayscale8Image(data []byte, dir *directory) (*Grayscale8Image, error) {
	widthV, err := requireTag(dir, tImageWidth)
	if err != nil {
		return nil, err
	}
	heightV, err := requireTag(dir, tImageLength)
	if err != nil {
		return nil, err
	}
	photoV, err := requireTag(dir, tPhotometricInterpretation)
	if err != nil {
		return nil, err
	}
	width, height := int(widthV.firstUint()), int(heightV.firstUint())

	codec, err := decodeCompression(dir)
	if err != nil {
		return nil, err
	}
	stripData, err := readStrip(data, dir, codec, height)
	if err != nil {
		return nil, err
	}
	if len(stripData) != width*height {
		return nil, CantReadImageError("strip length does not match image dimensions")
	}

	whiteIsZero := photoV.firstUint() == pWhiteIsZero
	pixels := make([]uint8, len(stripData))
	for i, b := range stripData {
		if whiteIsZero {
			pixels[i] = 255 - b
		} else {
			pixels[i] = b
		}
	}
	return NewGrayscale8Image(width, height, pixels)
}
