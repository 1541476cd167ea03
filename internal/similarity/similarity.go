// Package similarity scores how close two strings are, normalized to [0,1].
package similarity

import "github.com/lithammer/fuzzysearch/fuzzy"

// Score returns the normalized Levenshtein similarity of a and b.
//
// The result is (longer - editDistance) / longer where longer is the rune
// length of the longer string. Two empty strings score 1. The result is
// symmetric and deterministic.
func Score(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	longer := la
	if lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 1
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return float64(longer-distance) / float64(longer)
}

// Percent returns Score rounded to a whole percentage.
func Percent(a, b string) int {
	return ToPercent(Score(a, b))
}

// ToPercent rounds an already-computed score to a whole percentage.
func ToPercent(score float64) int {
	return int(score*100 + 0.5)
}
