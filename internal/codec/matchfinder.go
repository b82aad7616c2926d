package codec

// findMatch searches history, the reconstruction of the decoder's output so
// far, for the longest run equal to the bytes at src[pos:]. Only the last
// maxOffset bytes of history are candidates and a run never extends past the
// end of history. Candidates are visited newest first and only a strictly
// longer run replaces the current best, so equal-length matches resolve to
// the smallest offset. Returns (-1, 0) when no run of at least minMatch
// bytes exists.
func findMatch(src []byte, pos int, history []byte) (matchPos, matchLen int) {
	matchPos = -1
	if len(history) < minMatch || pos+minMatch > len(src) {
		return matchPos, 0
	}

	windowStart := len(history) - maxOffset
	if windowStart < 0 {
		windowStart = 0
	}

	limit := maxMatch
	if rem := len(src) - pos; rem < limit {
		limit = rem
	}

	first := src[pos]
	for cand := len(history) - minMatch; cand >= windowStart; cand-- {
		if history[cand] != first {
			continue
		}

		maxLen := limit
		if rem := len(history) - cand; rem < maxLen {
			maxLen = rem
		}

		n := 1
		for n < maxLen && history[cand+n] == src[pos+n] {
			n++
		}
		if n > matchLen {
			matchLen = n
			matchPos = cand
			if matchLen == maxMatch {
				break
			}
		}
	}

	if matchLen < minMatch {
		return -1, 0
	}
	return matchPos, matchLen
}

// fitsCopyForm reports whether a match of the given length at the given
// decoder-visible offset is expressible by any copy instruction form.
func fitsCopyForm(length, offset int) bool {
	switch {
	case length <= 6:
		// ShortCopy or MedCopy; both top out at offset 1023.
		return offset <= 1023
	case length <= maxMatch:
		// LongCopy up to offset 1023, ExtCopy up to maxOffset.
		return offset <= maxOffset
	default:
		return false
	}
}
