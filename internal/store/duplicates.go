package store

import (
	"github.com/dpshade/prompt-vault/internal/models"
	"github.com/dpshade/prompt-vault/internal/similarity"
)

// DefaultDuplicateThreshold is the similarity above which two records are
// reported as near-duplicates.
const DefaultDuplicateThreshold = 0.7

// DuplicatePair reports two records whose content similarity strictly
// exceeds the detection threshold.
type DuplicatePair struct {
	A             *models.Record
	B             *models.Record
	SimilarityPct int
}

// FindDuplicates compares every unordered pair of records by content
// similarity and reports pairs scoring strictly above threshold. A
// threshold of 0 or less selects the default. Quadratic in record count,
// which is acceptable at personal-library scale; callers needing more
// should pre-bucket by a cheap fingerprint first.
func (s *Store) FindDuplicates(threshold float64) []DuplicatePair {
	if threshold <= 0 {
		threshold = DefaultDuplicateThreshold
	}
	var pairs []DuplicatePair
	for i := 0; i < len(s.records); i++ {
		for j := i + 1; j < len(s.records); j++ {
			score := similarity.Score(s.records[i].Content, s.records[j].Content)
			if score > threshold {
				pairs = append(pairs, DuplicatePair{
					A:             s.records[i],
					B:             s.records[j],
					SimilarityPct: similarity.ToPercent(score),
				})
			}
		}
	}
	return pairs
}
