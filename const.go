package tiff

// Header and IFD layout constants (see TIFF 6.0 spec p. 13-16).
const (
	leHeader = "II\x2A\x00" // Header for little-endian files.
	beHeader = "MM\x00\x2A" // Header for big-endian files.

	ifdEntryLen = 12 // Length in bytes of one IFD entry record.
)

// Field data types (p. 14-16 of the spec). Only the pre-TIFF-6.0 types are
// supported; the signed and floating-point types added in 6.0 are an
// explicit non-goal.
const (
	dtByte     = 1
	dtASCII    = 2
	dtShort    = 3
	dtLong     = 4
	dtRational = 5
)

// lengths holds the size in bytes of one instance of each data type above,
// indexed by the type tag. Index 0 is unused.
var lengths = [...]uint32{0, 1, 1, 2, 4, 8}

// Tags (see p. 28-41 of the spec).
const (
	tNewSubFileType            = 254
	tImageWidth                = 256
	tImageLength               = 257
	tBitsPerSample             = 258
	tCompression               = 259
	tPhotometricInterpretation = 262

	tStripOffsets    = 273
	tSamplesPerPixel = 277
	tRowsPerStrip    = 278
	tStripByteCounts = 279

	tXResolution         = 282
	tYResolution         = 283
	tPlanarConfiguration = 284
	tResolutionUnit      = 296

	tColorMap = 320

	tTileWidth      = 322
	tTileLength     = 323
	tTileOffsets    = 324
	tTileByteCounts = 325

	tJPEGProc      = 512
	tJPEGQTables   = 519
	tJPEGDCTables  = 520
	tJPEGACTables  = 521
)

// Compression types (defined in various places in the spec and supplements).
// Only cNone, cPackBits and cLZW are implemented; the rest exist purely so
// an unrecognized-but-named compression value can be reported precisely
// instead of folding into a generic "unknown tag value" error.
const (
	cNone     = 1
	cCCITT    = 2
	cLZW      = 5
	cJPEGOld  = 6
	cJPEG     = 7
	cDeflate  = 8
	cPackBits = 32773
)

// Photometric interpretation values (p. 37 of the spec).
const (
	pWhiteIsZero = 0
	pBlackIsZero = 1
	pRGB         = 2
	pPaletted    = 3
)

// Values for the tResolutionUnit tag (p. 18).
const (
	resNone    = 1
	resPerInch = 2
	resPerCM   = 3
)

// photometricMode identifies which pixel pipeline an IFD decodes through,
// derived from (PhotometricInterpretation, BitsPerSample).
type photometricMode int

const (
	modeBilevel photometricMode = iota
	modeGray4
	modeGray8
	modeRGB
	modePalette
)
