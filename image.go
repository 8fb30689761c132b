package tiff

// RGB is a 24-bit true color pixel: one 8-bit sample per channel.
type RGB struct {
	R, G, B uint8
}

// validateDimensions enforces the one invariant every image constructor
// shares: the pixel vector must be non-empty and its length must equal
// width*height. Grounded on original_source/src/lib.rs's
// `Image::try_new`.
func validateDimensions(width, height, pixelCount int) error {
	if pixelCount == 0 {
		return ImageCreateError{Kind: NoPixels}
	}
	if width*height != pixelCount {
		return ImageCreateError{
			Kind:       DimensionMismatch,
			Width:      width,
			Height:     height,
			PixelCount: pixelCount,
		}
	}
	return nil
}

// BilevelImage is a 1-bit-per-pixel image. Each pixel is either set or
// clear; which of WhiteIsZero/BlackIsZero a set bit means is chosen at
// encode time, not stored on the image itself (scenarios B1/B2 of this
// library's test suite encode the same BilevelImage both ways).
type BilevelImage struct {
	Width, Height int
	Pixels        []bool
}

// NewBilevelImage validates pixels against width*height and returns a
// ready-to-encode image.
func NewBilevelImage(width, height int, pixels []bool) (*BilevelImage, error) {
	if err := validateDimensions(width, height, len(pixels)); err != nil {
		return nil, err
	}
	return &BilevelImage{Width: width, Height: height, Pixels: pixels}, nil
}

// Grayscale4Image is a 4-bit-per-pixel grayscale image. Pixel values are
// expected in 0..15; it is written under BlackIsZero or WhiteIsZero, as
// EncodeOptions.WhiteIsZero selects.
type Grayscale4Image struct {
	Width, Height int
	Pixels        []uint8
}

func NewGrayscale4Image(width, height int, pixels []uint8) (*Grayscale4Image, error) {
	if err := validateDimensions(width, height, len(pixels)); err != nil {
		return nil, err
	}
	return &Grayscale4Image{Width: width, Height: height, Pixels: pixels}, nil
}

// Grayscale8Image is an 8-bit-per-pixel grayscale image.
type Grayscale8Image struct {
	Width, Height int
	Pixels        []uint8
}

func NewGrayscale8Image(width, height int, pixels []uint8) (*Grayscale8Image, error) {
	if err := validateDimensions(width, height, len(pixels)); err != nil {
		return nil, err
	}
	return &Grayscale8Image{Width: width, Height: height, Pixels: pixels}, nil
}

// RGBImage is a 24-bit true color image, 8 bits per sample, 3 samples
// per pixel.
type RGBImage struct {
	Width, Height int
	Pixels        []RGB
}

func NewRGBImage(width, height int, pixels []RGB) (*RGBImage, error) {
	if err := validateDimensions(width, height, len(pixels)); err != nil {
		return nil, err
	}
	return &RGBImage{Width: width, Height: height, Pixels: pixels}, nil
}

// PaletteImage is a palette-indexed image: each pixel is an index into
// Palette, stored at 4 or 8 bits per sample depending on the palette's
// size (ColorMap.bitsPerSample).
type PaletteImage struct {
	Width, Height int
	Pixels        []uint8
	Palette       *ColorMap
}

// NewPaletteImage validates pixels against width*height and that every
// pixel indexes an entry actually present in palette.
func NewPaletteImage(width, height int, pixels []uint8, palette *ColorMap) (*PaletteImage, error) {
	if err := validateDimensions(width, height, len(pixels)); err != nil {
		return nil, err
	}
	for _, p := range pixels {
		if int(p) >= palette.Len() {
			return nil, PaletteIndexOutOfRangeError{Index: int(p), PaletteLen: palette.Len()}
		}
	}
	return &PaletteImage{Width: width, Height: height, Pixels: pixels, Palette: palette}, nil
}

// ColorMap is an ordered palette of up to 256 RGB colors, built up one
// color at a time via Add. Grounded on original_source/src/colors.rs's
// ColorMap, with one deliberate deviation: entries() here pads only to
// 2^bitsPerSample entries rather than always to 256 (see DESIGN.md).
type ColorMap struct {
	colors []RGB
}

// NewColorMap returns an empty palette.
func NewColorMap() *ColorMap {
	return &ColorMap{}
}

// Add inserts col if it is not already present and returns its index.
// A color already in the map returns its existing index without growing
// the map. Inserting a 257th distinct color returns ErrTooManyColors
// and leaves the map unchanged.
func (c *ColorMap) Add(col RGB) (uint8, error) {
	for i, existing := range c.colors {
		if existing == col {
			return uint8(i), nil
		}
	}
	if len(c.colors) >= 256 {
		return 0, ErrTooManyColors{}
	}
	c.colors = append(c.colors, col)
	return uint8(len(c.colors) - 1), nil
}

// Len returns the number of distinct colors currently in the map.
func (c *ColorMap) Len() int {
	return len(c.colors)
}

// At returns the color stored at index i, or the zero RGB if i is beyond
// the colors actually inserted but still within the map's padded
// capacity.
func (c *ColorMap) At(i int) RGB {
	if i < len(c.colors) {
		return c.colors[i]
	}
	return RGB{}
}

// bitsPerSample returns the sample width a palette image indexing this
// map must use: 4 bits for up to 16 colors, 8 bits otherwise.
func (c *ColorMap) bitsPerSample() int {
	if len(c.colors) <= 16 {
		return 4
	}
	return 8
}

// entries returns this palette's ColorMap tag value: 3*2^bitsPerSample
// 16-bit entries, holding every red value then every green value then
// every blue value, trailing slots beyond Len() colors zero-filled. Each
// channel is carried through as its raw 8-bit value, not scaled to the
// 16-bit range (matching original_source/src/colors.rs's
// `color.r as Short`, which simply widens the byte).
func (c *ColorMap) entries() []uint16 {
	bps := c.bitsPerSample()
	n := 1 << bps
	out := make([]uint16, 3*n)
	for i := 0; i < n; i++ {
		var col RGB
		if i < len(c.colors) {
			col = c.colors[i]
		}
		out[i] = uint16(col.R)
		out[n+i] = uint16(col.G)
		out[2*n+i] = uint16(col.B)
	}
	return out
}

// colorMapFromEntries rebuilds a ColorMap from a decoded ColorMap tag
// value: n = len(entries)/3 colors, each 16-bit channel narrowed back to
// 8-bit by truncation (the inverse of entries' widening).
func colorMapFromEntries(entries []uint16) *ColorMap {
	n := len(entries) / 3
	cm := &ColorMap{colors: make([]RGB, n)}
	for i := 0; i < n; i++ {
		cm.colors[i] = RGB{
			R: uint8(entries[i]),
			G: uint8(entries[n+i]),
			B: uint8(entries[2*n+i]),
		}
	}
	return cm
}
