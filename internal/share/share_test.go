package share

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/prompt-vault/internal/errors"
	"github.com/dpshade/prompt-vault/internal/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := &models.Record{
		ID:       "id-1",
		Title:    "Fantasy Landscape",
		Category: "art",
		Tags:     []string{"fantasy", "art"},
		Content:  "A sweeping fantasy landscape",
		Notes:    "works best with seed 42",
		Rating:   4,
	}

	token, err := Encode(rec)
	require.NoError(t, err)

	payload, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, rec.Title, payload.Title)
	assert.Equal(t, rec.Category, payload.Category)
	assert.Equal(t, rec.Tags, payload.Tags)
	assert.Equal(t, rec.Content, payload.Content)
	assert.Equal(t, rec.Notes, payload.Notes)
	assert.Equal(t, rec.Rating, payload.Rating)
}

func TestTokenIsURLSafe(t *testing.T) {
	rec := &models.Record{
		Title:   "a?&=b",
		Content: "content with spaces, symbols: /+=?&",
	}
	token, err := Encode(rec)
	require.NoError(t, err)
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "/")
	assert.NotContains(t, token, " ")
}

func TestDecodeMalformedToken(t *testing.T) {
	cases := []string{
		"not base64 at all!!!",
		base64.URLEncoding.EncodeToString([]byte("not json")),
		base64.URLEncoding.EncodeToString([]byte(`{"title":"","content":""}`)),
		base64.URLEncoding.EncodeToString([]byte(`{"title":"only a title"}`)),
	}
	for _, token := range cases {
		payload, err := Decode(token)
		assert.Nil(t, payload)
		assert.True(t, errors.HasCode(err, errors.ErrCodeDecode), "token %q", token)
	}
}

func TestPayloadExcludesIdentity(t *testing.T) {
	rec := &models.Record{ID: "id-1", Title: "t", Content: "c"}
	token, err := Encode(rec)
	require.NoError(t, err)

	raw, err := base64.URLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "id-1")
}
