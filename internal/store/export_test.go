package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/prompt-vault/internal/errors"
	"github.com/dpshade/prompt-vault/internal/storage"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore()
	_, err := src.CreateCategory("", "Art")
	require.NoError(t, err)
	_, err = src.CreateRecord(Draft{Title: "a", Content: "ca", Category: "art", Tags: []string{"x"}})
	require.NoError(t, err)
	_, err = src.CreateRecord(Draft{Title: "b", Content: "cb", Rating: 3})
	require.NoError(t, err)

	data, err := src.Export()
	require.NoError(t, err)

	dst := newTestStore()
	count, err := dst.Import(data, ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Equal(t, src.Len(), dst.Len())
	for _, want := range src.Records() {
		got, err := dst.Get(want.ID)
		require.NoError(t, err, "ids are preserved across export/import")
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Content, got.Content)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.CreatedAt, got.CreatedAt)
	}
	assert.True(t, dst.CategoryExists("art"))
}

func TestImportMergePreservesExisting(t *testing.T) {
	s := newTestStore()
	existing := mustCreate(t, s, "mine", "original content")

	payload := map[string]interface{}{
		"records": []map[string]interface{}{
			{"id": existing.ID, "title": "theirs", "content": "replacement"},
			{"id": "new-1", "title": "new", "content": "fresh"},
		},
		"version": ExportVersion,
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	count, err := s.Import(data, ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "only the non-colliding record is applied")

	kept, err := s.Get(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", kept.Title)

	added, err := s.Get("new-1")
	require.NoError(t, err)
	assert.Equal(t, "new", added.Title)
}

func TestImportReplaceOverwritesExisting(t *testing.T) {
	s := newTestStore()
	existing := mustCreate(t, s, "mine", "original content")

	payload := map[string]interface{}{
		"records": []map[string]interface{}{
			{"id": existing.ID, "title": "theirs", "content": "replacement"},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	count, err := s.Import(data, ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := s.Get(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "theirs", got.Title)
}

func TestImportDefaultsOptionalFields(t *testing.T) {
	s := newTestStore()
	data := []byte(`{"records":[{"id":"r1","title":"t","content":"c"},{"id":"r2","title":"t","content":"c","rating":9}]}`)

	_, err := s.Import(data, ImportReplace)
	require.NoError(t, err)

	rec, err := s.Get("r1")
	require.NoError(t, err)
	assert.NotNil(t, rec.Tags)
	assert.Empty(t, rec.Tags)
	assert.Equal(t, "", rec.Notes)
	assert.Equal(t, 0, rec.Rating)
	assert.False(t, rec.CreatedAt.IsZero())

	clamped, err := s.Get("r2")
	require.NoError(t, err)
	assert.Equal(t, 0, clamped.Rating, "out-of-range ratings reset to unrated")
}

func TestImportMalformedPayload(t *testing.T) {
	s := newTestStore()
	mustCreate(t, s, "keep", "content")

	cases := [][]byte{
		[]byte(`not json at all`),
		[]byte(`{"records":[{"title":"missing id","content":"c"}]}`),
		[]byte(`{"records":[{"id":"r1","title":"t","content":"c"},{"id":"r1","title":"t2","content":"c2"}]}`),
		[]byte(`{"records":[{"id":"r1","title":"   ","content":"c"}]}`),
		[]byte(`{"records":[{"id":"r1","title":"t","content":" "}]}`),
		[]byte(`{"records":[{"id":"r1","title":"t","content":"c","attachments":[{"kind":"input","data":"a"},{"kind":"input","data":"b"}]}]}`),
		[]byte(`{"records":[{"id":"r1","title":"t","content":"c","attachments":[{"kind":"banner","data":"a"}]}]}`),
	}
	for _, data := range cases {
		_, err := s.Import(data, ImportReplace)
		assert.True(t, errors.HasCode(err, errors.ErrCodeImportFormat), "payload: %s", data)
	}
	assert.Equal(t, 1, s.Len(), "failed imports must not mutate the collection")
}

func TestImportIsUndoable(t *testing.T) {
	s := newTestStore()
	data := []byte(`{"records":[{"id":"r1","title":"t","content":"c"}]}`)
	_, err := s.Import(data, ImportReplace)
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	assert.True(t, s.Undo())
	assert.Equal(t, 0, s.Len())
}

func TestPersistRestore(t *testing.T) {
	ds := storage.NewMemStore()

	src := newTestStore()
	_, err := src.CreateCategory("", "Art")
	require.NoError(t, err)
	rec, err := src.CreateRecord(Draft{Title: "a", Content: "c", Category: "art"})
	require.NoError(t, err)
	_, err = src.ToggleFavorite(rec.ID)
	require.NoError(t, err)
	require.NoError(t, src.Persist(ds, LibraryKey))

	dst := newTestStore()
	require.NoError(t, dst.Restore(ds, LibraryKey))

	assert.Equal(t, 1, dst.Len())
	got, err := dst.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "art", got.Category)
	assert.True(t, dst.IsFavorite(rec.ID), "favorites survive persistence")
	assert.False(t, dst.Undo(), "a freshly restored library has no history")
}

func TestRestoreMissingKeyLeavesStoreEmpty(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Restore(storage.NewMemStore(), LibraryKey))
	assert.Equal(t, 0, s.Len())
}
