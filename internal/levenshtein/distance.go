// Package levenshtein implements edit distance with an early-exit
// bounded variant for matching against a fixed candidate list.
package levenshtein

// Distance computes the Levenshtein edit distance between two strings.
// The implementation uses O(min(m,n)) memory.
func Distance(s, t string) int {
	d, _ := DistanceAtMost(s, t, -1)
	return d
}

// DistanceAtMost computes the edit distance between s and t, giving up
// as soon as the distance provably exceeds max. It reports the distance
// and whether it stayed within the bound; on a bailed computation the
// returned value is a lower bound on the true distance. A negative max
// disables the bound.
func DistanceAtMost(s, t string, max int) (int, bool) {
	sr := []rune(s)
	tr := []rune(t)

	// If either is empty, the distance is the length of the other
	if len(sr) == 0 {
		return within(len(tr), max)
	}
	if len(tr) == 0 {
		return within(len(sr), max)
	}

	// Shorter string should be the "column"
	if len(sr) > len(tr) {
		sr, tr = tr, sr
	}

	// The length gap is a floor on the distance
	if gap := len(tr) - len(sr); max >= 0 && gap > max {
		return gap, false
	}

	// Two rows suffice
	prev := make([]int, len(sr)+1)
	curr := make([]int, len(sr)+1)

	for i := range prev {
		prev[i] = i
	}

	for j, tc := range tr {
		curr[0] = j + 1
		rowMin := curr[0]
		for i, sc := range sr {
			cost := 1
			if sc == tc {
				cost = 0
			}
			curr[i+1] = min(
				curr[i]+1,    // deletion
				prev[i+1]+1,  // insertion
				prev[i]+cost, // substitution
			)
			if curr[i+1] < rowMin {
				rowMin = curr[i+1]
			}
		}
		// Every continuation can only grow from here
		if max >= 0 && rowMin > max {
			return rowMin, false
		}
		prev, curr = curr, prev
	}

	return within(prev[len(sr)], max)
}

func within(d, max int) (int, bool) {
	return d, max < 0 || d <= max
}
