package places

import "strings"

// PositionalSimilarity compares two strings character-by-character over
// their shared leading positions and returns the matching fraction relative
// to len(a), in [0,1]. This is a deliberately crude business-name heuristic:
// "joes pizza" vs "joe's pizza" diverges after the apostrophe, while
// "The Coffee House" vs "The Coffee House Ltd" matches fully.
func PositionalSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if len(a) == 0 {
		return 0
	}

	matching := 0
	for i := 0; i < min(len(a), len(b)); i++ {
		if a[i] == b[i] {
			matching++
		}
	}

	sim := float64(matching) / float64(len(a))
	if sim > 1 {
		sim = 1
	}
	return sim
}

// IsCloseMatch reports whether check plausibly names the same business as
// input: at least half of input's characters match by position, and both
// strings are at least 3 characters long.
func IsCloseMatch(input, check string) bool {
	if min(len(input), len(check)) < 3 {
		return false
	}
	return PositionalSimilarity(input, check) >= 0.5
}

// FindClosestMatch picks the option sharing the longest case-insensitive
// common prefix with input, or "" when nothing matches at all.
func FindClosestMatch(input string, options []string) string {
	normalized := strings.ToLower(input)

	best := ""
	bestLen := 0
	for _, opt := range options {
		lower := strings.ToLower(opt)
		n := 0
		for i := 0; i < min(len(normalized), len(lower)); i++ {
			if normalized[i] != lower[i] {
				break
			}
			n++
		}
		if n > bestLen {
			bestLen = n
			best = opt
		}
	}
	return best
}
