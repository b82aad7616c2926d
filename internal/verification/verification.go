// Package verification checks that compressed streams reproduce their
// source data exactly before they are trusted or written back to a ROM.
package verification

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/tilderain/hongkong97graphicstools/internal/codec"
)

// CompressVerified compresses data and proves the stream decodes back byte
// for byte before returning it. Mismatch details are logged so a codec
// regression points straight at the failing offset.
func CompressVerified(logger *log.Logger, name string, data []byte) ([]byte, error) {
	stream, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compressing %s: %w", name, err)
	}

	if err := Verify(logger, name, data, stream); err != nil {
		return nil, err
	}
	return stream, nil
}

// Verify round-trips stream against original and logs the first mismatch.
func Verify(logger *log.Logger, name string, original, stream []byte) error {
	err := codec.VerifyRoundTrip(original, stream)
	if err == nil {
		return nil
	}

	var mismatch *codec.MismatchError
	if errors.As(err, &mismatch) {
		if mismatch.OriginalLen != mismatch.DecodedLen {
			logger.Error("Length mismatch",
				log.String("asset", name),
				log.Int("expected", mismatch.OriginalLen),
				log.Int("got", mismatch.DecodedLen))
		} else {
			logger.Error("Offset mismatch",
				log.String("asset", name),
				log.Hex("offset", mismatch.Offset),
				log.Hex("expected", mismatch.Want),
				log.Hex("got", mismatch.Got),
				log.Int("total", mismatch.Count))
		}
	}
	return fmt.Errorf("verifying %s: %w", name, err)
}
