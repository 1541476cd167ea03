// Package share encodes a record's shareable subset as an opaque text
// token suitable for a URL query parameter, and decodes it back.
package share

import (
	"encoding/base64"
	"encoding/json"

	"github.com/dpshade/prompt-vault/internal/errors"
	"github.com/dpshade/prompt-vault/internal/models"
)

// Payload is the shareable subset of a record. Identity and timestamps are
// deliberately excluded: the receiver files the prompt as a new record.
type Payload struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Content  string   `json:"content"`
	Notes    string   `json:"notes,omitempty"`
	Rating   int      `json:"rating,omitempty"`
}

// Encode returns the record's shareable subset as a URL-safe base64 token.
func Encode(rec *models.Record) (string, error) {
	payload := Payload{
		Title:    rec.Title,
		Category: rec.Category,
		Tags:     rec.Tags,
		Content:  rec.Content,
		Notes:    rec.Notes,
		Rating:   rec.Rating,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal share payload")
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode parses a token produced by Encode. Malformed tokens fail with a
// recoverable DecodeError rather than crashing the caller.
func Decode(token string) (*Payload, error) {
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.DecodeError(err)
	}
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.DecodeError(err)
	}
	if payload.Title == "" || payload.Content == "" {
		return nil, errors.DecodeError(errors.New(errors.ErrCodeDecode, "share payload missing title or content"))
	}
	return &payload, nil
}
