// Package view derives filtered, sorted, paginated result sets from the
// record store. The pipeline only reads store state; all writes go through
// the store's mutation API.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/dpshade/prompt-vault/internal/models"
)

// recentWindow is how far back the "recent" filter reaches.
const recentWindow = 7 * 24 * time.Hour

// Source is the read-only slice of the record store the pipeline needs.
type Source interface {
	Records() []*models.Record
	IsFavorite(id string) bool
	Search(term string) []string
}

// Result is a resolved page. TotalCount is the filtered size before
// pagination, so callers can compute page counts.
type Result struct {
	Items      []*models.Record
	TotalCount int
}

// Pipeline resolves view queries against a source.
type Pipeline struct {
	source Source
	now    func() time.Time
}

// NewPipeline creates a pipeline reading from source.
func NewPipeline(source Source) *Pipeline {
	return &Pipeline{source: source, now: time.Now}
}

// Resolve runs the filter, sort, and paginate stages for q. A page past the
// end yields empty items with the correct TotalCount; pagination UIs clamp.
func (p *Pipeline) Resolve(q models.ViewQuery) Result {
	items := p.filter(q)
	p.sortRecords(items, q.SortKey)

	total := len(items)
	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = total
		if size == 0 {
			size = 1
		}
	}
	start := (page - 1) * size
	if start >= total {
		return Result{Items: []*models.Record{}, TotalCount: total}
	}
	end := start + size
	if end > total {
		end = total
	}
	return Result{Items: items[start:end], TotalCount: total}
}

func (p *Pipeline) filter(q models.ViewQuery) []*models.Record {
	records := p.source.Records()
	cutoff := p.now().Add(-recentWindow)

	var searched map[string]bool
	if strings.TrimSpace(q.SearchTerm) != "" {
		ids := p.source.Search(q.SearchTerm)
		searched = make(map[string]bool, len(ids))
		for _, id := range ids {
			searched[id] = true
		}
	}

	out := make([]*models.Record, 0, len(records))
	for _, r := range records {
		switch q.Filter {
		case models.FilterFavorites:
			if !p.source.IsFavorite(r.ID) {
				continue
			}
		case models.FilterCategory:
			// Exact path match: a parent category's view does not include
			// its children's records.
			if r.Category != q.CategoryPath {
				continue
			}
		case models.FilterRecent:
			if r.CreatedAt.Before(cutoff) {
				continue
			}
		case models.FilterWithAttachments:
			if len(r.Attachments) == 0 {
				continue
			}
		}
		if searched != nil && !searched[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortRecords orders items in place. Sorting is stable so records that
// compare equal keep their collection order.
func (p *Pipeline) sortRecords(items []*models.Record, key models.SortKey) {
	switch key {
	case models.SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	case models.SortTitle:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
		})
	case models.SortRating:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Rating > items[j].Rating
		})
	case models.SortComplexity:
		sort.SliceStable(items, func(i, j int) bool {
			return models.Complexity(items[i]) > models.Complexity(items[j])
		})
	default: // SortNewest
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}
