// Package search provides substring search, autocomplete suggestions, and a
// ranked fuzzy search mode over the record collection. Results for the exact
// substring search are memoized per normalized query; the record store
// invalidates the cache wholesale on every mutation.
//
// The index is synchronous and has no notion of timing: interactive callers
// are expected to debounce their own keystrokes before invoking it.
package search

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sahilm/fuzzy"

	"github.com/dpshade/prompt-vault/internal/models"
)

const (
	// DefaultCacheSize bounds the memoized query set.
	DefaultCacheSize = 128
	// DefaultSuggestionLimit caps autocomplete results.
	DefaultSuggestionLimit = 6
	// minSuggestTermLen is the shortest term that yields suggestions.
	minSuggestTermLen = 2
	// fragmentWindow is how much matching content a suggestion shows.
	fragmentWindow = 40
)

// Index serves search and suggestions over records supplied by the caller.
type Index struct {
	cache           *lru.Cache[string, []string]
	suggestionLimit int
}

// NewIndex creates an index with the given cache size and suggestion limit;
// zero values select the defaults.
func NewIndex(cacheSize, suggestionLimit int) *Index {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if suggestionLimit <= 0 {
		suggestionLimit = DefaultSuggestionLimit
	}
	cache, _ := lru.New[string, []string](cacheSize)
	return &Index{cache: cache, suggestionLimit: suggestionLimit}
}

// Normalize trims and lower-cases a query term. Cache entries are keyed by
// the normalized form, so "  Art " and "art" share one entry.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Search returns the IDs of records matching term, in collection order.
// Matching is case-insensitive substring containment against title, content,
// tags, and notes (OR across fields). An empty term matches every record.
func (ix *Index) Search(records []*models.Record, term string) []string {
	key := Normalize(term)
	if ids, ok := ix.cache.Get(key); ok {
		return ids
	}
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if key == "" || matches(r, key) {
			ids = append(ids, r.ID)
		}
	}
	ix.cache.Add(key, ids)
	return ids
}

// Suggest returns up to the configured number of distinct autocomplete
// suggestions for term: matching titles, tag names prefixed "Tag:", and
// matching content fragments. Terms shorter than two characters yield
// nothing. Order follows first encounter in the collection, not relevance.
func (ix *Index) Suggest(records []*models.Record, term string) []string {
	key := Normalize(term)
	if len([]rune(key)) < minSuggestTermLen {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	add := func(s string) bool {
		if s == "" || seen[s] {
			return len(out) < ix.suggestionLimit
		}
		seen[s] = true
		out = append(out, s)
		return len(out) < ix.suggestionLimit
	}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Title), key) {
			if !add(r.Title) {
				return out
			}
		}
		for _, tag := range r.Tags {
			if strings.Contains(strings.ToLower(tag), key) {
				if !add(fmt.Sprintf("Tag:%s", tag)) {
					return out
				}
			}
		}
		if frag := contentFragment(r.Content, key); frag != "" {
			if !add(frag) {
				return out
			}
		}
	}
	return out
}

// SearchFuzzy ranks records against term using fuzzy matching over title,
// tags, and content. Unlike Search, results are relevance-ordered and not
// cached. An empty term returns the records unchanged.
func (ix *Index) SearchFuzzy(records []*models.Record, term string) []*models.Record {
	term = strings.TrimSpace(term)
	if term == "" {
		return records
	}
	haystack := make([]string, len(records))
	for i, r := range records {
		haystack[i] = fmt.Sprintf("%s %s %s", r.Title, strings.Join(r.Tags, " "), r.Content)
	}
	matches := fuzzy.Find(term, haystack)
	results := make([]*models.Record, 0, len(matches))
	for _, m := range matches {
		results = append(results, records[m.Index])
	}
	return results
}

// Invalidate clears every memoized query result.
func (ix *Index) Invalidate() {
	ix.cache.Purge()
}

func matches(r *models.Record, key string) bool {
	if strings.Contains(strings.ToLower(r.Title), key) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Content), key) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Notes), key) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), key) {
			return true
		}
	}
	return false
}

// contentFragment extracts a short window of content around the first match
// of key, or "" when the content does not match.
func contentFragment(content, key string) string {
	idx := strings.Index(strings.ToLower(content), key)
	if idx < 0 {
		return ""
	}
	end := idx + fragmentWindow
	if end > len(content) {
		end = len(content)
	}
	frag := strings.TrimSpace(content[idx:end])
	if end < len(content) {
		frag += "..."
	}
	return frag
}
