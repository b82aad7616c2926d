package codec

// Compressed stream format constants.
const (
	// HeaderSize is the size of the little-endian decompressed-size header.
	HeaderSize = 2
	// MaxInputSize is the largest payload the 16-bit size header can describe.
	MaxInputSize = 0xFFFF
	// OpenBusByte fills copy reads that land before the start of output,
	// mirroring the console reading open bus.
	OpenBusByte = 0xFF

	minMatch      = 3    // shorter runs never beat literal encoding overhead
	maxMatch      = 263  // largest length any copy form can express (ExtCopy)
	maxOffset     = 4095 // largest distance any copy form can express (ExtCopy)
	maxLiteralRun = 16   // largest ShortLiteral payload
)
