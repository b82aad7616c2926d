package codec

import "fmt"

// VerifyRoundTrip decompresses compressed and compares the result byte for
// byte against original. It returns nil when the stream reproduces original
// exactly and a *MismatchError describing the first difference otherwise.
func VerifyRoundTrip(original, compressed []byte) error {
	decoded, _, err := Decompress(compressed)
	if err != nil {
		return fmt.Errorf("decompressing candidate stream: %w", err)
	}

	n := len(original)
	if len(decoded) < n {
		n = len(decoded)
	}

	mismatch := &MismatchError{
		OriginalLen: len(original),
		DecodedLen:  len(decoded),
		Offset:      -1,
	}
	for i := 0; i < n; i++ {
		if original[i] == decoded[i] {
			continue
		}
		if mismatch.Count == 0 {
			mismatch.Offset = i
			mismatch.Want = original[i]
			mismatch.Got = decoded[i]
		}
		mismatch.Count++
	}

	if mismatch.Count > 0 || len(original) != len(decoded) {
		return mismatch
	}
	return nil
}
