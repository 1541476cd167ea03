// Package category owns the hierarchical taxonomy that records are filed
// under. Paths are slash-delimited normalized keys ("art/landscape"). Two
// reserved roots exist: "favorites" is a virtual filter and "other" is the
// catch-all that records fall back to when their category disappears.
package category

import (
	"sort"
	"strings"

	"github.com/dpshade/prompt-vault/internal/errors"
)

const (
	// ReservedFavorites is a virtual filter node, never a real category.
	ReservedFavorites = "favorites"
	// ReservedOther is the default catch-all category.
	ReservedOther = "other"
)

// Node is a single taxonomy entry addressed by its full path.
type Node struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	ParentPath  string `json:"parent_path,omitempty"` // empty for roots
}

// Tree maps full paths to nodes. Cycles are impossible by construction: a
// node's parent must already exist when the node is created or renamed.
type Tree struct {
	nodes map[string]*Node
}

// NewTree creates a tree seeded with the two reserved roots.
func NewTree() *Tree {
	t := &Tree{nodes: make(map[string]*Node)}
	t.nodes[ReservedFavorites] = &Node{Key: ReservedFavorites, DisplayName: "Favorites"}
	t.nodes[ReservedOther] = &Node{Key: ReservedOther, DisplayName: "Other"}
	return t
}

// NormalizeKey converts a display name into a path segment: trimmed,
// lower-cased, with whitespace collapsed to hyphens. Slashes are stripped
// because they delimit path segments.
func NormalizeKey(displayName string) string {
	key := strings.ToLower(strings.TrimSpace(displayName))
	key = strings.ReplaceAll(key, "/", "-")
	return strings.Join(strings.Fields(key), "-")
}

// Exists reports whether a node exists at path.
func (t *Tree) Exists(path string) bool {
	_, ok := t.nodes[path]
	return ok
}

// Get returns the node at path, or nil.
func (t *Tree) Get(path string) *Node {
	return t.nodes[path]
}

// ResolveOrDefault returns path when a node exists there, else ReservedOther.
func (t *Tree) ResolveOrDefault(path string) string {
	if t.Exists(path) {
		return path
	}
	return ReservedOther
}

// Paths returns every node path in sorted order.
func (t *Tree) Paths() []string {
	paths := make([]string, 0, len(t.nodes))
	for p := range t.nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create adds a node under parentPath (empty for a root node) and returns
// its full path. Fails with InvalidParent when the parent does not exist,
// InvalidInput when the display name normalizes to nothing, and
// DuplicateCategory when the resulting path is taken.
func (t *Tree) Create(parentPath, displayName string) (string, error) {
	key := NormalizeKey(displayName)
	if key == "" {
		return "", errors.InvalidInputError("category name must not be empty")
	}
	if parentPath != "" && !t.Exists(parentPath) {
		return "", errors.InvalidParentError(parentPath)
	}
	path := key
	if parentPath != "" {
		path = parentPath + "/" + key
	}
	if t.Exists(path) {
		return "", errors.DuplicateCategoryError(path)
	}
	t.nodes[path] = &Node{Key: key, DisplayName: strings.TrimSpace(displayName), ParentPath: parentPath}
	return path, nil
}

// Rename recomputes the node's key from newDisplayName and rewrites the
// node and every descendant path by prefix substitution. It returns the new
// path plus the full old-path to new-path mapping so the record store can
// rewrite affected records in the same transaction. The validate-then-apply
// split keeps the operation atomic: nothing is touched until every check
// has passed.
func (t *Tree) Rename(path, newDisplayName string) (string, map[string]string, error) {
	if isReserved(path) {
		return "", nil, errors.ProtectedCategoryError(path)
	}
	node, ok := t.nodes[path]
	if !ok {
		return "", nil, errors.NotFoundError("category", path)
	}
	newKey := NormalizeKey(newDisplayName)
	if newKey == "" {
		return "", nil, errors.InvalidInputError("category name must not be empty")
	}
	newPath := newKey
	if node.ParentPath != "" {
		newPath = node.ParentPath + "/" + newKey
	}
	if newPath != path && t.Exists(newPath) {
		return "", nil, errors.DuplicateCategoryError(newPath)
	}

	moved := map[string]string{path: newPath}
	for p := range t.nodes {
		if strings.HasPrefix(p, path+"/") {
			moved[p] = newPath + strings.TrimPrefix(p, path)
		}
	}

	for oldP, newP := range moved {
		n := t.nodes[oldP]
		delete(t.nodes, oldP)
		t.nodes[newP] = n
	}
	renamed := t.nodes[newPath]
	renamed.Key = newKey
	renamed.DisplayName = strings.TrimSpace(newDisplayName)
	// Recompute parent paths after the move.
	for _, newP := range moved {
		n := t.nodes[newP]
		if idx := strings.LastIndex(newP, "/"); idx >= 0 {
			n.ParentPath = newP[:idx]
		} else {
			n.ParentPath = ""
		}
	}
	return newPath, moved, nil
}

// Delete removes the node at path and every descendant, returning the
// removed paths so the record store can reassign affected records to
// ReservedOther. Reserved nodes cannot be deleted.
func (t *Tree) Delete(path string) ([]string, error) {
	if isReserved(path) {
		return nil, errors.ProtectedCategoryError(path)
	}
	if !t.Exists(path) {
		return nil, errors.NotFoundError("category", path)
	}
	removed := []string{path}
	for p := range t.nodes {
		if strings.HasPrefix(p, path+"/") {
			removed = append(removed, p)
		}
	}
	for _, p := range removed {
		delete(t.nodes, p)
	}
	sort.Strings(removed)
	return removed, nil
}

// EnsurePath creates any missing nodes along path and returns the
// normalized full path of the leaf. Intermediate nodes use their key as
// display name; displayName, when non-empty, labels the leaf. An empty or
// all-separator path resolves to ReservedOther. Used by import, where the
// payload supplies exact paths rather than display names.
func (t *Tree) EnsurePath(path, displayName string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	cur := ""
	for i, seg := range segments {
		key := NormalizeKey(seg)
		if key == "" {
			continue
		}
		full := key
		if cur != "" {
			full = cur + "/" + key
		}
		if !t.Exists(full) {
			name := seg
			if i == len(segments)-1 && displayName != "" {
				name = displayName
			}
			t.nodes[full] = &Node{Key: key, DisplayName: strings.TrimSpace(name), ParentPath: cur}
		}
		cur = full
	}
	if cur == "" {
		return ReservedOther
	}
	return cur
}

func isReserved(path string) bool {
	return path == ReservedFavorites || path == ReservedOther
}
