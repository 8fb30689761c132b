package tiff

// encodeRGBImage writes img as a single-strip 24-bit RGB IFD, channels
// interleaved R,G,B per pixel.
func encodeRGBImage(buf *encodeBuffer, img *RGBImage, codec compressor) ifdInfo {
	data := make([]byte, 0, len(img.Pixels)*3)
	for _, p := range img.Pixels {
		data = append(data, p.R, p.G, p.B)
	}

	stripOffset, stripByteCount := writeStrip(buf, codec, data)

	entries := commonEntries(img.Width, img.Height, pRGB, codec.tag(), stripOffset, stripByteCount, img.Height)
	entries = append(entries,
		ifdEntry{tSamplesPerPixel, Shorts([]uint16{3})},
		ifdEntry{tBitsPerSample, Shorts([]uint16{8, 8, 8})},
	)
	return writeIFD(buf, entries)
}

// decodeRGBImage reassembles an RGBImage from an already-parsed directory
// known to declare PhotometricInterpretation RGB.
func decodeRGBImage(data []byte, dir *directory) (*RGBImage, error) {
	widthV, err := requireTag(dir, tImageWidth)
	if err != nil {
		return nil, err
	}
	heightV, err := requireTag(dir, tImageLength)
	if err != nil {
		return nil, err
	}
	if _, err := requireTag(dir, tSamplesPerPixel); err != nil {
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
	if len(stripData) != width*height*3 {
		return nil, CantReadImageError("strip length does not match image dimensions")
	}

	pixels := make([]RGB, width*height)
	for i := range pixels {
		pixels[i] = RGB{R: stripData[3*i], G: stripData[3*i+1], B: stripData[3*i+2]}
	}
	return NewRGBImage(width, height, pixels)
}
