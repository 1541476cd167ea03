package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/prompt-vault/internal/models"
)

func TestMarkdownRoundTrip(t *testing.T) {
	rec := &models.Record{
		ID:        "id-1",
		Title:     "Fantasy Landscape",
		Category:  "art",
		Tags:      []string{"fantasy", "art"},
		Content:   "A sweeping fantasy landscape\nwith mountains and rivers",
		Notes:     "use seed 42",
		Rating:    4,
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := SerializeMarkdown(rec)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\n"))

	parsed, err := ParseMarkdown(data)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, parsed.ID)
	assert.Equal(t, rec.Title, parsed.Title)
	assert.Equal(t, rec.Category, parsed.Category)
	assert.Equal(t, rec.Tags, parsed.Tags)
	assert.Equal(t, rec.Content, parsed.Content)
	assert.Equal(t, rec.Notes, parsed.Notes)
	assert.Equal(t, rec.Rating, parsed.Rating)
}

func TestSerializeMarkdownKeepsContentOutOfFrontmatter(t *testing.T) {
	rec := &models.Record{Title: "t", Content: "the prompt body"}
	data, err := SerializeMarkdown(rec)
	require.NoError(t, err)

	parts := strings.SplitN(string(data), "---\n", 3)
	require.Len(t, parts, 3)
	assert.NotContains(t, parts[1], "the prompt body")
	assert.Contains(t, parts[2], "the prompt body")
}

func TestParseMarkdownErrors(t *testing.T) {
	cases := []string{
		"no frontmatter here",
		"---\ntitle: unterminated\n",
		"",
	}
	for _, in := range cases {
		_, err := ParseMarkdown([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseMarkdownEmptyContent(t *testing.T) {
	rec, err := ParseMarkdown([]byte("---\ntitle: bare\n---\n"))
	require.NoError(t, err)
	assert.Equal(t, "bare", rec.Title)
	assert.Equal(t, "", rec.Content)
}
