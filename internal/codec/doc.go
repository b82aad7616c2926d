/*
Package codec implements the byte-oriented compression format used for the
graphics and palette assets of Hong Kong 97.

Stream layout: a 2-byte little-endian decompressed-size header followed by an
opcode stream. The top two bits of each command byte select the instruction
form; 0xC0..0xFF is further split on bits 5 and 4:

	0x00-0x3F  ShortCopy     length (cmd&3)+3, offset cmd>>2            (0 extra bytes)
	0x40-0x7F  MedCopy       length (cmd&3)+3, offset 12 bit            (1 extra byte)
	0x80-0xBF  LongCopy      length ((cmd>>2)&0xF)+7, offset 10 bit     (1 extra byte)
	0xC0-0xDF  ExtCopy       length 9 bit +7, offset 12 bit             (2 extra bytes)
	0xE0-0xEF  ShortLiteral  length (cmd&0xF)+1 raw bytes follow
	0xF0-0xFF  LongLiteral   length ((cmd&3)<<8)+extra+0x11 raw bytes follow

A copy replays bytes already written to the output at distance offset+1. The
hardware reads open bus for distances reaching before the start of output, so
the decoder emits 0xFF for those positions instead of failing. Copies may
overlap their own destination (RLE-style runs).

Use Decompress(src) to expand one asset; it also reports how many input bytes
the stream occupied, which callers need for in-place reinjection bounds checks.
Use Compress(data) to produce a stream the game's decoder accepts:

	stream, err := codec.Compress(data)
	if err != nil {
		return err
	}
	out, consumed, err := codec.Decompress(stream)
	if err != nil {
		return err
	}
	// out equals data, consumed equals len(stream)

The compressor is a greedy longest-match encoder. It is written to agree with
the game's decoder byte for byte, not to compete with general-purpose
compressors.
*/
package codec
