// Package storage defines the injected durable-store collaborator and its
// file-backed and in-memory implementations. The core only requires
// last-write-wins key/value semantics with no partial writes visible to
// readers; whether the bytes land in files, browser storage, or a database
// is the embedder's choice.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DurableStore is the persistence interface the core depends on. Load
// reports ok=false when the key has never been saved.
type DurableStore interface {
	Load(key string) (data []byte, ok bool, err error)
	Save(key string, data []byte) error
}

// FileStore persists each key as a JSON file under a base directory.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a file-backed durable store rooted at baseDir,
// defaulting to ~/.prompt-vault when baseDir is empty.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(homeDir, ".prompt-vault")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// BaseDir returns the root directory of the store.
func (fs *FileStore) BaseDir() string {
	return fs.baseDir
}

// Load reads the bytes saved under key, reporting ok=false when absent.
func (fs *FileStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Save writes data under key. The write goes through a temp file and a
// rename so readers never observe a partial document.
func (fs *FileStore) Save(key string, data []byte) error {
	target := fs.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

func (fs *FileStore) path(key string) string {
	// Keys are simple names; keep them from escaping the base directory.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(fs.baseDir, key+".json")
}

// MemStore is an in-memory DurableStore for tests.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (ms *MemStore) Load(key string) ([]byte, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	data, ok := ms.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (ms *MemStore) Save(key string, data []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	ms.data[key] = stored
	return nil
}

// Compile-time interface checks
var (
	_ DurableStore = (*FileStore)(nil)
	_ DurableStore = (*MemStore)(nil)
)
