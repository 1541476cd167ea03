package store

import (
	"github.com/dpshade/prompt-vault/internal/category"
)

// Category operations cascade to affected records but sit outside undo
// history, mirroring the scope of record undo/redo: only record contents
// are snapshotted.

// CreateCategory adds a category node under parentPath (empty for a root)
// and returns its full path.
func (s *Store) CreateCategory(parentPath, displayName string) (string, error) {
	path, err := s.categories.Create(parentPath, displayName)
	if err != nil {
		return "", err
	}
	s.notify(Event{Type: EventCategoryChanged})
	return path, nil
}

// RenameCategory renames the node at path and rewrites the category of
// every record filed under it or any descendant by prefix substitution.
// The tree validates before applying, and the record rewrite cannot fail,
// so the cascade is atomic.
func (s *Store) RenameCategory(path, newDisplayName string) (string, error) {
	newPath, moved, err := s.categories.Rename(path, newDisplayName)
	if err != nil {
		return "", err
	}
	for _, r := range s.records {
		if to, ok := moved[r.Category]; ok {
			r.Category = to
		}
	}
	s.index.Invalidate()
	s.notify(Event{Type: EventCategoryChanged})
	return newPath, nil
}

// DeleteCategory removes the node at path and all descendants, reassigning
// every affected record to the reserved "other" category.
func (s *Store) DeleteCategory(path string) error {
	removed, err := s.categories.Delete(path)
	if err != nil {
		return err
	}
	gone := make(map[string]bool, len(removed))
	for _, p := range removed {
		gone[p] = true
	}
	for _, r := range s.records {
		if gone[r.Category] {
			r.Category = category.ReservedOther
		}
	}
	s.index.Invalidate()
	s.notify(Event{Type: EventCategoryChanged})
	return nil
}

// CategoryPaths returns every category path in sorted order.
func (s *Store) CategoryPaths() []string {
	return s.categories.Paths()
}

// CategoryExists reports whether a category node exists at path.
func (s *Store) CategoryExists(path string) bool {
	return s.categories.Exists(path)
}

// ResolveCategory returns path when a node exists there, else "other".
func (s *Store) ResolveCategory(path string) string {
	return s.categories.ResolveOrDefault(path)
}
