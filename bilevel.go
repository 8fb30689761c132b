package tiff

// encodeBilevelImage writes img as a single-strip bilevel IFD. whiteIsZero
// selects which PhotometricInterpretation the 1-bit samples are written
// under; Pixels[i]==true always means "white" regardless of the chosen
// interpretation, so encoding the same image both ways (scenarios B1, B2)
// only flips which sample value represents white.
func encodeBilevelImage(buf *encodeBuffer, img *BilevelImage, whiteIsZero bool, codec compressor) ifdInfo {
	photometric := uint16(pBlackIsZero)
	samples := make([]bool, len(img.Pixels))
	for i, white := range img.Pixels {
		if whiteIsZero {
			samples[i] = !white // WhiteIsZero: sample 0 means white, so set bit means black.
		} else {
			samples[i] = white // BlackIsZero: sample 1 means white.
		}
	}
	if whiteIsZero {
		photometric = pWhiteIsZero
	}

	data := packRowsBool(img.Width, img.Height, samples)
	stripOffset, stripByteCount := writeStrip(buf, codec, data)

	entries := commonEntries(img.Width, img.Height, photometric, codec.tag(), stripOffset, stripByteCount, img.Height)
	return writeIFD(buf, entries)
}

// decodeBilevelImage reassembles a BilevelImage from an already-parsed
// directory known to declare 1 bit per sample.
func decodeBilevelImage(data []byte, dir *directory) (*BilevelImage, error) {
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

	samples, err := unpackRowsBool(stripData, width, height)
	if err != nil {
		return nil, err
	}

	whiteIsZero := photoV.firstUint() == pWhiteIsZero
	pixels := make([]bool, len(samples))
	for i, set := range samples {
		if whiteIsZero {
			pixels[i] = !set
		} else {
			pixels[i] = set
		}
	}
	return NewBilevelImage(width, height, pixels)
}
