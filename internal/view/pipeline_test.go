package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/prompt-vault/internal/models"
)

// fakeSource is a hand-rolled Source with canned search results.
type fakeSource struct {
	records   []*models.Record
	favorites map[string]bool
	searchHit map[string][]string
}

func (f *fakeSource) Records() []*models.Record { return f.records }
func (f *fakeSource) IsFavorite(id string) bool { return f.favorites[id] }
func (f *fakeSource) Search(term string) []string {
	return f.searchHit[strings.ToLower(strings.TrimSpace(term))]
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestPipeline() (*Pipeline, *fakeSource) {
	src := &fakeSource{
		records: []*models.Record{
			{
				ID:        "r1",
				Title:     "zebra",
				Content:   "newest record",
				Rating:    2,
				CreatedAt: testNow.Add(-1 * time.Hour),
			},
			{
				ID:          "r2",
				Title:       "Apple",
				Content:     "three days old",
				Rating:      5,
				CreatedAt:   testNow.Add(-3 * 24 * time.Hour),
				Category:    "art",
				Attachments: []models.Attachment{{Kind: models.AttachmentInput, Data: "img"}},
			},
			{
				ID:        "r3",
				Title:     "mango",
				Content:   "two weeks old",
				Rating:    5,
				CreatedAt: testNow.Add(-14 * 24 * time.Hour),
				Category:  "art/landscape",
			},
			{
				ID:        "r4",
				Title:     "Banana",
				Content:   "a month old",
				CreatedAt: testNow.Add(-30 * 24 * time.Hour),
				Category:  "art",
			},
		},
		favorites: map[string]bool{"r2": true, "r4": true},
		searchHit: map[string][]string{"old": {"r2", "r3", "r4"}},
	}
	p := NewPipeline(src)
	p.now = func() time.Time { return testNow }
	return p, src
}

func ids(items []*models.Record) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestResolveFilterAll(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{Filter: models.FilterAll})
	assert.Equal(t, 4, res.TotalCount)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids(res.Items), "default sort is newest first")
}

func TestResolveFilterFavorites(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{Filter: models.FilterFavorites})
	assert.Equal(t, []string{"r2", "r4"}, ids(res.Items))
}

func TestResolveFilterCategoryExactMatch(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{Filter: models.FilterCategory, CategoryPath: "art"})
	// r3 lives in the child path "art/landscape" and is excluded.
	assert.Equal(t, []string{"r2", "r4"}, ids(res.Items))
}

func TestResolveFilterRecent(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{Filter: models.FilterRecent})
	assert.Equal(t, []string{"r1", "r2"}, ids(res.Items), "only records created within seven days")
}

func TestResolveFilterWithAttachments(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{Filter: models.FilterWithAttachments})
	assert.Equal(t, []string{"r2"}, ids(res.Items))
}

func TestResolveSearchIntersectsFilter(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{
		Filter:     models.FilterFavorites,
		SearchTerm: "old",
	})
	assert.Equal(t, []string{"r2", "r4"}, ids(res.Items))

	res = p.Resolve(models.ViewQuery{
		Filter:     models.FilterRecent,
		SearchTerm: "old",
	})
	assert.Equal(t, []string{"r2"}, ids(res.Items), "r1 is recent but not a search hit")
}

func TestResolveSearchNoHits(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{SearchTerm: "nothing matches this"})
	assert.Equal(t, 0, res.TotalCount)
	assert.Empty(t, res.Items)
}

func TestResolveSortTitle(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{SortKey: models.SortTitle})
	assert.Equal(t, []string{"r2", "r4", "r3", "r1"}, ids(res.Items), "case-insensitive title order")
}

func TestResolveSortOldest(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{SortKey: models.SortOldest})
	assert.Equal(t, []string{"r4", "r3", "r2", "r1"}, ids(res.Items))
}

func TestResolveSortRatingStable(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{SortKey: models.SortRating})
	// r2 and r3 tie at rating 5 and keep collection order.
	assert.Equal(t, []string{"r2", "r3", "r1", "r4"}, ids(res.Items))
}

func TestResolveSortComplexity(t *testing.T) {
	p, src := newTestPipeline()
	src.records[3].Content = strings.Repeat("word ", 250)
	res := p.Resolve(models.ViewQuery{SortKey: models.SortComplexity})
	assert.Equal(t, "r4", res.Items[0].ID)
}

func TestResolvePagination(t *testing.T) {
	p, _ := newTestPipeline()

	page1 := p.Resolve(models.ViewQuery{Page: 1, PageSize: 3})
	page2 := p.Resolve(models.ViewQuery{Page: 2, PageSize: 3})
	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(page1.Items))
	assert.Equal(t, []string{"r4"}, ids(page2.Items))
	assert.Equal(t, 4, page1.TotalCount)
	assert.Equal(t, page1.TotalCount, len(page1.Items)+len(page2.Items))
}

func TestResolvePageBeyondEnd(t *testing.T) {
	p, _ := newTestPipeline()
	res := p.Resolve(models.ViewQuery{Page: 9, PageSize: 3})
	require.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 4, res.TotalCount, "total survives an out-of-range page")
}

func TestResolveZeroValuesNormalized(t *testing.T) {
	p, _ := newTestPipeline()
	// Page 0 and size 0 mean first page, everything.
	res := p.Resolve(models.ViewQuery{})
	assert.Len(t, res.Items, 4)

	res = p.Resolve(models.ViewQuery{Page: -2, PageSize: -5})
	assert.Len(t, res.Items, 4)
}
