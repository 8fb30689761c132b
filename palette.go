package tiff

// encodePaletteImage writes img as a single-strip palette-indexed IFD,
// packed at 4 bits per sample when the palette holds 16 colors or fewer,
// 8 bits per sample otherwise.
func encodePaletteImage(buf *encodeBuffer, img *PaletteImage, codec compressor) ifdInfo {
	bps := img.Palette.bitsPerSample()

	var data []byte
	if bps == 4 {
		data = packRowsNibble(img.Width, img.Height, img.Pixels)
	} else {
		data = make([]byte, len(img.Pixels))
		copy(data, img.Pixels)
	}

	stripOffset, stripByteCount := writeStrip(buf, codec, data)

	entries := commonEntries(img.Width, img.Height, pPaletted, codec.tag(), stripOffset, stripByteCount, img.Height)
	entries = append(entries,
		ifdEntry{tBitsPerSample, Shorts([]uint16{uint16(bps)})},
		ifdEntry{tColorMap, Shorts(img.Palette.entries())},
	)
	return writeIFD(buf, entries)
}

// decodePaletteImage reassembles a PaletteImage from an already-parsed
// directory known to declare PhotometricInterpretation PaletteColor.
func decodePaletteImage(data []byte, dir *directory) (*PaletteImage, error) {
	widthV, err := requireTag(dir, tImageWidth)
	if err != nil {
		return nil, err
	}
	heightV, err := requireTag(dir, tImageLength)
	if err != nil {
		return nil, err
	}
	bpsV, err := requireTag(dir, tBitsPerSample)
	if err != nil {
		return nil, err
	}
	cmapV, err := requireTag(dir, tColorMap)
	if err != nil {
		return nil, err
	}
	width, height := int(widthV.firstUint()), int(heightV.firstUint())
	bps := int(bpsV.firstUint())

	codec, err := decodeCompression(dir)
	if err != nil {
		return nil, err
	}
	stripData, err := readStrip(data, dir, codec, height)
	if err != nil {
		return nil, err
	}

	var pixels []uint8
	switch bps {
	case 4:
		pixels, err = unpackRowsNibble(stripData, width, height)
	case 8:
		if len(stripData) != width*height {
			return nil, CantReadImageError("strip length does not match image dimensions")
		}
		pixels = make([]uint8, len(stripData))
		copy(pixels, stripData)
	default:
		return nil, FieldError{Kind: InvalidTagValues, Tag: tBitsPerSample}
	}
	if err != nil {
		return nil, err
	}

	palette := colorMapFromEntries(cmapV.ShortValues())
	return NewPaletteImage(width, height, pixels, palette)
}
