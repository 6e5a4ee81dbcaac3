package beanid

// Less implements natural-order comparison of dotted IDs: compare
// segment-by-segment; within a segment, collate runs of decimal digits
// numerically and runs of non-digit characters lexicographically; ties
// broken by shorter prefix first, so "3" sorts before "3.1".
func Less(a, b string) bool {
	c := Compare(a, b)
	return c < 0
}

// Compare returns -1, 0, or 1 following the natural order described by
// Less. It is exported separately so callers building a sort.Slice don't
// need to re-derive a comparator from a boolean predicate.
func Compare(a, b string) int {
	if a == b {
		return 0
	}
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ac, bc := a[ai], b[bi]
		if ac == '.' && bc == '.' {
			ai++
			bi++
			continue
		}
		if ac == '.' {
			return -1 // shorter prefix ("3") sorts before longer ("3.1")
		}
		if bc == '.' {
			return 1
		}
		aDigit, bDigit := isDigit(ac), isDigit(bc)
		if aDigit && bDigit {
			aNum, aEnd := scanDigits(a, ai)
			bNum, bEnd := scanDigits(b, bi)
			if aNum != bNum {
				if aNum < bNum {
					return -1
				}
				return 1
			}
			ai, bi = aEnd, bEnd
			continue
		}
		if aDigit != bDigit {
			// Within a segment, digit runs and non-digit runs are compared
			// positionally; a digit byte and a non-digit byte at the same
			// position fall back to byte order so mixed segments like
			// "v2" vs "vx" still resolve deterministically.
			if ac < bc {
				return -1
			}
			return 1
		}
		if ac != bc {
			if ac < bc {
				return -1
			}
			return 1
		}
		ai++
		bi++
	}
	switch {
	case ai < len(a):
		return 1
	case bi < len(b):
		return -1
	default:
		return 0
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanDigits reads a run of decimal digits starting at i and returns its
// numeric value and the index just past the run. Values are accumulated
// as uint64 without overflow checking: bean IDs are not expected to carry
// segments anywhere near 2^64, and plain arithmetic is both faster and
// clearer than strconv on this hot comparison path.
func scanDigits(s string, i int) (uint64, int) {
	var n uint64
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + uint64(s[i]-'0')
		i++
	}
	return n, i
}
