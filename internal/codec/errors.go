package codec

import (
	"errors"
	"fmt"
)

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrHeaderTooShort  = errors.New("compressed data too short for a size header")
	ErrTruncatedStream = errors.New("unexpected end of stream inside an instruction")
	ErrInputTooLarge   = errors.New("input does not fit the 16-bit size header")
)

// MismatchError reports a failed round trip between original data and the
// decoded form of its compressed stream.
type MismatchError struct {
	OriginalLen int
	DecodedLen  int
	Offset      int  // first differing output position
	Want        byte // original byte at Offset
	Got         byte // decoded byte at Offset
	Count       int  // total differing positions over the compared range
}

func (e *MismatchError) Error() string {
	if e.OriginalLen != e.DecodedLen {
		return fmt.Sprintf("round trip length mismatch: original %d bytes, decoded %d bytes",
			e.OriginalLen, e.DecodedLen)
	}
	return fmt.Sprintf("round trip mismatch at offset 0x%X: want 0x%02X got 0x%02X (%d offsets differ)",
		e.Offset, e.Want, e.Got, e.Count)
}
