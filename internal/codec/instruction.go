package codec

type instructionKind uint8

// Instruction forms of the opcode stream.
const (
	shortCopy instructionKind = iota
	medCopy
	longCopy
	extCopy
	shortLiteral
	longLiteral
)

// instruction is one decoded command.
type instruction struct {
	kind   instructionKind
	length int // output bytes produced by this instruction
	offset int // backward distance minus one (copy forms only)
	size   int // encoded size including the command byte, excluding literal data
}

func (k instructionKind) isCopy() bool {
	return k <= extCopy
}

// decodeInstruction classifies the command byte at src[0] and extracts its
// operand fields from the following bytes. Every command byte value maps to
// one of the six forms; the selector space has no holes. Returns
// ErrTruncatedStream when the form requires operand bytes that src does not
// contain.
func decodeInstruction(src []byte) (instruction, error) {
	cmd := int(src[0])

	switch {
	case cmd < 0x40:
		return instruction{
			kind:   shortCopy,
			length: cmd&0x03 + 3,
			offset: cmd >> 2,
			size:   1,
		}, nil

	case cmd < 0x80:
		if len(src) < 2 {
			return instruction{}, ErrTruncatedStream
		}
		return instruction{
			kind:   medCopy,
			length: cmd&0x03 + 3,
			offset: (cmd>>2&0x0F)<<8 | int(src[1]),
			size:   2,
		}, nil

	case cmd < 0xC0:
		if len(src) < 2 {
			return instruction{}, ErrTruncatedStream
		}
		return instruction{
			kind:   longCopy,
			length: cmd>>2&0x0F + 7,
			offset: (cmd&0x03)<<8 | int(src[1]),
			size:   2,
		}, nil

	case cmd < 0xE0:
		if len(src) < 3 {
			return instruction{}, ErrTruncatedStream
		}
		// 9-bit length field: bit 8 lives in the command byte, bits 7..4 in
		// the high nibble of the first operand byte, bits 3..0 in the command.
		length := (cmd>>4&0x01)<<8 | int(src[1]>>4)<<4 | cmd&0x0F
		return instruction{
			kind:   extCopy,
			length: length + 7,
			offset: int(src[1]&0x0F)<<8 | int(src[2]),
			size:   3,
		}, nil

	case cmd < 0xF0:
		return instruction{
			kind:   shortLiteral,
			length: cmd&0x0F + 1,
			size:   1,
		}, nil

	default:
		if len(src) < 2 {
			return instruction{}, ErrTruncatedStream
		}
		// The original decoder adds 0x11 with an 8-bit carry into the top
		// bits taken from cmd; that reduces to plain addition.
		return instruction{
			kind:   longLiteral,
			length: (cmd&0x03)<<8 + int(src[1]) + 0x11,
			size:   2,
		}, nil
	}
}
