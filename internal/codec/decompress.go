package codec

import (
	"encoding/binary"
)

// Decompress expands one compressed block from the start of src.
// It returns the output buffer, always exactly as long as the declared size
// in the header, and the number of input bytes consumed including the header.
// The consumed count is the compressed size of the asset as stored in the
// ROM; callers overwriting an asset in place need it for bounds checks.
//
// The stream may end at an instruction boundary before the declared size is
// reached; the remaining output stays zero. A stream ending in the middle of
// an instruction returns ErrTruncatedStream.
func Decompress(src []byte) ([]byte, int, error) {
	if len(src) < HeaderSize {
		return nil, 0, ErrHeaderTooShort
	}

	outLen := int(binary.LittleEndian.Uint16(src))
	out := make([]byte, outLen)
	if outLen == 0 {
		return out, HeaderSize, nil
	}

	stream := src[HeaderSize:]
	inPos := 0
	outPos := 0

	for outPos < outLen {
		if inPos >= len(stream) {
			// Input exhausted at an instruction boundary: tolerated.
			break
		}

		ins, err := decodeInstruction(stream[inPos:])
		if err != nil {
			return nil, 0, err
		}
		inPos += ins.size

		if ins.kind.isCopy() {
			copySrc := outPos - (ins.offset + 1)
			n := ins.length
			if rem := outLen - outPos; n > rem {
				n = rem
			}
			// Byte-by-byte so a copy overlapping its own destination replays
			// the bytes it just produced.
			for ; n > 0; n-- {
				if copySrc < 0 {
					out[outPos] = OpenBusByte
				} else {
					out[outPos] = out[copySrc]
				}
				outPos++
				copySrc++
			}
			continue
		}

		// Literal run: raw bytes follow the command, clamped to what the
		// input and the declared size still allow.
		n := ins.length
		if rem := outLen - outPos; n > rem {
			n = rem
		}
		if rem := len(stream) - inPos; n > rem {
			n = rem
		}
		copy(out[outPos:outPos+n], stream[inPos:inPos+n])
		outPos += n
		inPos += n
	}

	return out, HeaderSize + inPos, nil
}
