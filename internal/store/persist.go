package store

import (
	"encoding/json"
	"time"

	"github.com/dpshade/prompt-vault/internal/errors"
	"github.com/dpshade/prompt-vault/internal/models"
	"github.com/dpshade/prompt-vault/internal/storage"
)

// LibraryKey is the durable-store key the full library state is saved under.
const LibraryKey = "library"

// libraryState is the persisted form of the store. Unlike the export
// document it also carries the favorites set, which is store state but not
// part of the interchange format.
type libraryState struct {
	Records    []*models.Record   `json:"records"`
	Categories []exportedCategory `json:"categories"`
	Favorites  []string           `json:"favorites,omitempty"`
	SavedAt    time.Time          `json:"saved_at"`
	Version    string             `json:"version"`
}

// Persist writes the full library state to the durable store under key.
func (s *Store) Persist(ds storage.DurableStore, key string) error {
	state := libraryState{
		Records:    s.records,
		Categories: s.exportedCategories(),
		Favorites:  s.Favorites(),
		SavedAt:    s.now(),
		Version:    ExportVersion,
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal library state")
	}
	if err := ds.Save(key, data); err != nil {
		return errors.StorageError("save "+key, err)
	}
	return nil
}

// Restore replaces the store's state with what was persisted under key.
// A key that has never been saved is not an error; the store stays empty.
// Undo history is not restored: a freshly loaded library has nothing to
// undo.
func (s *Store) Restore(ds storage.DurableStore, key string) error {
	data, ok, err := ds.Load(key)
	if err != nil {
		return errors.StorageError("load "+key, err)
	}
	if !ok {
		return nil
	}
	var state libraryState
	if err := json.Unmarshal(data, &state); err != nil {
		return errors.ImportFormatError(err)
	}

	s.records = nil
	for _, cat := range state.Categories {
		s.categories.EnsurePath(cat.Path, cat.DisplayName)
	}
	for _, rec := range state.Records {
		if rec == nil || rec.ID == "" {
			continue
		}
		dup := rec.Clone()
		dup.Category = s.categories.ResolveOrDefault(dup.Category)
		s.records = append(s.records, dup)
	}
	s.favorites = make(map[string]bool)
	for _, id := range state.Favorites {
		if s.indexOf(id) >= 0 {
			s.favorites[id] = true
		}
	}
	s.selection = make(map[string]bool)
	s.history = newHistory(s.history.capacity)
	s.index.Invalidate()
	s.notify(Event{Type: EventRestored})
	return nil
}
