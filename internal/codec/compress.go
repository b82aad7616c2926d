package codec

import (
	"encoding/binary"
	"fmt"
)

// Compress packs src into a compressed stream the game's decoder accepts.
// The encoder is greedy: at every position it takes the longest admissible
// back-reference and otherwise buffers the byte as a literal. Empty input
// yields just the 2-byte zero header.
func Compress(src []byte) ([]byte, error) {
	if len(src) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(src))
	}

	// Worst case is all literals: one command byte per 16 payload bytes.
	out := make([]byte, HeaderSize, HeaderSize+len(src)+(len(src)+maxLiteralRun-1)/maxLiteralRun)
	binary.LittleEndian.PutUint16(out, uint16(len(src)))

	// history mirrors what the decoder will have produced; match offsets are
	// measured against it.
	history := make([]byte, 0, len(src))
	var pending []byte // buffered literal bytes, at most maxLiteralRun

	flush := func() {
		if len(pending) == 0 {
			return
		}
		out = append(out, 0xE0|byte(len(pending)-1))
		out = append(out, pending...)
		history = append(history, pending...)
		pending = pending[:0]
	}

	pos := 0
	for pos < len(src) {
		matchPos, matchLen := findMatch(src, pos, history)
		if matchLen >= minMatch {
			// The decoder sees the pending literals flushed before the copy,
			// so admissibility is judged against the post-flush offset.
			offset := len(history) + len(pending) - matchPos - 1
			if fitsCopyForm(matchLen, offset) {
				flush()
				out = appendCopy(out, matchLen, offset)
				// Grow the shadow one byte at a time: the run may extend into
				// bytes this same instruction produces.
				from := len(history) - (offset + 1)
				for i := 0; i < matchLen; i++ {
					history = append(history, history[from+i])
				}
				pos += matchLen
				continue
			}
		}

		pending = append(pending, src[pos])
		pos++
		if len(pending) == maxLiteralRun {
			flush()
		}
	}
	flush()

	return out, nil
}

// appendCopy encodes one back-reference, choosing the smallest form that can
// express the (length, offset) pair. The caller guarantees the pair passed
// fitsCopyForm.
func appendCopy(dst []byte, length, offset int) []byte {
	switch {
	case length <= 6 && offset <= 15:
		return append(dst, byte(offset<<2|(length-3)))

	case length <= 6:
		cmd := 0x40 | (offset>>8&0x0F)<<2 | (length - 3)
		return append(dst, byte(cmd), byte(offset))

	case length <= 22 && offset <= 1023:
		cmd := 0x80 | (length-7)<<2 | offset>>8&0x03
		return append(dst, byte(cmd), byte(offset))

	default:
		lengthVal := length - 7
		cmd := 0xC0 | lengthVal&0x0F
		if lengthVal >= 0x100 {
			cmd |= 0x10
		}
		return append(dst, byte(cmd), byte(lengthVal&0xF0|offset>>8&0x0F), byte(offset))
	}
}
