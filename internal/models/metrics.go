package models

import "strings"

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TokenEstimate approximates the LLM token count of text as ceil(len/4).
func TokenEstimate(text string) int {
	return (len(text) + 3) / 4
}

// Complexity derives a 1-5 score from a record's size and metadata.
// Base 1, plus one point each for: word count over 100, word count over 200,
// notes longer than 50 characters, any attachments, and three or more tags.
func Complexity(r *Record) int {
	score := 1
	words := WordCount(r.Content)
	if words > 100 {
		score++
	}
	if words > 200 {
		score++
	}
	if len(r.Notes) > 50 {
		score++
	}
	if len(r.Attachments) > 0 {
		score++
	}
	if len(r.Tags) >= 3 {
		score++
	}
	if score > 5 {
		score = 5
	}
	return score
}
