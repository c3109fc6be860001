package matching

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns the normalized Levenshtein similarity of a and b in [0, 1]:
//
//	(max(len a, len b) - distance) / max(len a, len b)
//
// Lengths are counted in runes. Two empty strings are identical (1.0).
// The comparison is case-sensitive; callers fold case if they need to.
func Similarity(a, b string) float64 {
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return float64(longest-distance) / float64(longest)
}
