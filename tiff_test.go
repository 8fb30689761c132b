package tiff_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tiff "github.com/mdouchement/baselinetiff"
)

// TestScenarioB1 is the B1 scenario from spec §8: a 2x2 bilevel image,
// little-endian, uncompressed, BlackIsZero.
func TestScenarioB1(t *testing.T) {
	img, err := tiff.NewBilevelImage(2, 2, []bool{false, true, true, false})
	require.NoError(t, err)

	out, err := tiff.Encode(binary.LittleEndian, []tiff.Image{img}, nil)
	require.NoError(t, err)

	assert.Equal(t, []byte{0x49, 0x49, 0x2A, 0x00, 0x0A, 0x00, 0x00, 0x00}, out[0:8])
	assert.Equal(t, []byte{0x40, 0x80}, out[8:10])

	result, err := tiff.Decode(out)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Images, 1)
	assert.Equal(t, img, result.Images[0])
}

// TestScenarioB2 is the same image with WhiteIsZero.
func TestScenarioB2(t *testing.T) {
	img, err := tiff.NewBilevelImage(2, 2, []bool{false, true, true, false})
	require.NoError(t, err)

	out, err := tiff.Encode(binary.LittleEndian, []tiff.Image{img}, []tiff.EncodeOptions{{WhiteIsZero: true}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x40}, out[8:10])

	result, err := tiff.Decode(out)
	require.NoError(t, err)
	require.Len(t, result.Images, 1)
	assert.Equal(t, img, result.Images[0])
}

// TestScenarioG8 is the G8 scenario: 1x4 8-bit grayscale, BlackIsZero,
// big-endian, uncompressed.
func TestScenarioG8(t *testing.T) {
	img, err := tiff.NewGrayscale8Image(1, 4, []uint8{0, 85, 170, 255})
	require.NoError(t, err)

	out, err := tiff.Encode(binary.BigEndian, []tiff.Image{img}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x55, 0xAA, 0xFF}, out[8:12])

	result, err := tiff.Decode(out)
	require.NoError(t, err)
	require.Len(t, result.Images, 1)
	assert.Equal(t, img, result.Images[0])
}

// TestScenarioP4 is the P4 scenario: 2x1 palette-indexed image with a
// 2-color map, 4 bits per sample.
func TestScenarioP4(t *testing.T) {
	cm := tiff.NewColorMap()
	_, err := cm.Add(tiff.RGB{R: 255, G: 0, B: 0})
	require.NoError(t, err)
	_, err = cm.Add(tiff.RGB{R: 0, G: 255, B: 0})
	require.NoError(t, err)

	img, err := tiff.NewPaletteImage(2, 1, []uint8{0, 1}, cm)
	require.NoError(t, err)

	out, err := tiff.Encode(binary.LittleEndian, []tiff.Image{img}, nil)
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), out[8])

	// The ColorMap tag's entries must carry each channel as its raw 8-bit
	// value (255, 0, ...), never scaled to the 16-bit range: the first
	// red entry is 255 and the first green is 0, little-endian.
	idx := bytesIndex(out, []byte{0xFF, 0x00, 0x00, 0x00})
	require.GreaterOrEqual(t, idx, 0, "expected to find ColorMap red entries 255,0 in the output")

	result, err := tiff.Decode(out)
	require.NoError(t, err)
	require.Len(t, result.Images, 1)

	decoded, ok := result.Images[0].(*tiff.PaletteImage)
	require.True(t, ok)
	assert.Equal(t, []uint8{0, 1}, decoded.Pixels)
	assert.Equal(t, 16, decoded.Palette.Len())
	assert.Equal(t, tiff.RGB{R: 255, G: 0, B: 0}, decoded.Palette.At(0))
	assert.Equal(t, tiff.RGB{R: 0, G: 255, B: 0}, decoded.Palette.At(1))
}

// bytesIndex returns the index of the first occurrence of sub within b, or
// -1 if not present.
func bytesIndex(b, sub []byte) int {
	for i := 0; i+len(sub) <= len(b); i++ {
		match := true
		for j := range sub {
			if b[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// TestScenarioChain is the CHAIN scenario: two bilevel images in one
// file, decoded back in order.
func TestScenarioChain(t *testing.T) {
	img1, err := tiff.NewBilevelImage(1, 1, []bool{true})
	require.NoError(t, err)
	img2, err := tiff.NewBilevelImage(1, 1, []bool{false})
	require.NoError(t, err)

	out, err := tiff.Encode(binary.LittleEndian, []tiff.Image{img1, img2}, nil)
	require.NoError(t, err)

	result, err := tiff.Decode(out)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Images, 2)
	assert.Equal(t, img1, result.Images[0])
	assert.Equal(t, img2, result.Images[1])
}

// TestLoopingIfdChainStopsButKeepsDecodedImages exercises Open Question 4's
// resolution: a looping chain aborts decoding but the result still carries
// whatever decoded successfully first.
func TestLoopingIfdChainStopsButKeepsDecodedImages(t *testing.T) {
	img, err := tiff.NewBilevelImage(1, 1, []bool{true})
	require.NoError(t, err)

	out, err := tiff.Encode(binary.LittleEndian, []tiff.Image{img}, nil)
	require.NoError(t, err)

	// Patch the one IFD's next-offset slot to point back at itself.
	firstIFDOffset := binary.LittleEndian.Uint32(out[4:8])
	n := binary.LittleEndian.Uint16(out[firstIFDOffset : firstIFDOffset+2])
	nextOffsetPos := firstIFDOffset + 2 + uint32(n)*12
	binary.LittleEndian.PutUint32(out[nextOffsetPos:nextOffsetPos+4], firstIFDOffset)

	result, err := tiff.Decode(out)
	require.NoError(t, err)
	require.Len(t, result.Images, 1)
	require.Len(t, result.Errors, 1)
	assert.IsType(t, tiff.LoopingIfdIndicesError{}, result.Errors[0])
}

// TestRoundTripEveryVariantEveryCompressionEveryEndianness checks
// universal property 1 across the matrix of (photometric, compression,
// endianness) combinations.
func TestRoundTripEveryVariantEveryCompressionEveryEndianness(t *testing.T) {
	compressions := []uint16{0, 32773, 5} // NoCompression(default), PackBits, LZW.
	orders := []binary.ByteOrder{binary.LittleEndian, binary.BigEndian}

	bilevel, err := tiff.NewBilevelImage(4, 3, []bool{
		true, false, true, false,
		false, true, false, true,
		true, true, false, false,
	})
	require.NoError(t, err)

	gray4, err := tiff.NewGrayscale4Image(3, 2, []uint8{0, 5, 15, 3, 8, 12})
	require.NoError(t, err)

	gray8, err := tiff.NewGrayscale8Image(3, 2, []uint8{0, 128, 255, 1, 254, 90})
	require.NoError(t, err)

	rgb, err := tiff.NewRGBImage(2, 2, []tiff.RGB{
		{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255}, {R: 10, G: 20, B: 30},
	})
	require.NoError(t, err)

	cm := tiff.NewColorMap()
	for _, c := range []tiff.RGB{{R: 1, G: 2, B: 3}, {R: 4, G: 5, B: 6}, {R: 7, G: 8, B: 9}} {
		_, err := cm.Add(c)
		require.NoError(t, err)
	}
	palette, err := tiff.NewPaletteImage(3, 1, []uint8{0, 1, 2}, cm)
	require.NoError(t, err)

	images := []tiff.Image{bilevel, gray4, gray8, rgb, palette}

	for _, order := range orders {
		for _, compression := range compressions {
			for _, img := range images {
				out, err := tiff.Encode(order, []tiff.Image{img}, []tiff.EncodeOptions{{Compression: compression}})
				require.NoError(t, err)

				result, err := tiff.Decode(out)
				require.NoError(t, err)
				require.Empty(t, result.Errors)
				require.Len(t, result.Images, 1)
				assertImageRoundTrips(t, img, result.Images[0])
			}
		}
	}
}

// assertImageRoundTrips compares a decoded image against the one
// originally encoded. Palette images are compared by pixel indices and
// the colors those indices resolve to, not by raw struct equality: the
// decoded ColorMap is padded to 2^BitsPerSample entries (per the
// on-disk ColorMap layout, spec.md §6), so it legitimately has more
// entries than a sparser original palette.
func assertImageRoundTrips(t *testing.T, want, got tiff.Image) {
	t.Helper()

	wantPalette, ok := want.(*tiff.PaletteImage)
	if !ok {
		assert.Equal(t, want, got)
		return
	}

	gotPalette, ok := got.(*tiff.PaletteImage)
	require.True(t, ok)
	assert.Equal(t, wantPalette.Width, gotPalette.Width)
	assert.Equal(t, wantPalette.Height, gotPalette.Height)
	assert.Equal(t, wantPalette.Pixels, gotPalette.Pixels)
	for i := 0; i < wantPalette.Palette.Len(); i++ {
		assert.Equal(t, wantPalette.Palette.At(i), gotPalette.Palette.At(i))
	}
}

func TestEncodeRejectsEmptyImageList(t *testing.T) {
	_, err := tiff.Encode(binary.LittleEndian, nil, nil)
	assert.Error(t, err)
}

func TestImageConstructorsRejectBadDimensions(t *testing.T) {
	_, err := tiff.NewBilevelImage(2, 2, []bool{true})
	assert.Error(t, err)

	_, err = tiff.NewGrayscale8Image(0, 0, nil)
	assert.Error(t, err)
	assert.IsType(t, tiff.ImageCreateError{}, err)
}
