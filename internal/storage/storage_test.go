package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSaveLoad(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := fs.Load("library")
	require.NoError(t, err)
	assert.False(t, ok, "unsaved key reports absent, not an error")

	require.NoError(t, fs.Save("library", []byte(`{"records":[]}`)))

	data, ok, err := fs.Load("library")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"records":[]}`, string(data))
}

func TestFileStoreOverwrite(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Save("k", []byte("first")))
	require.NoError(t, fs.Save("k", []byte("second")))

	data, ok, err := fs.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", string(data))

	// The temp file from the atomic write must not linger.
	_, err = os.Stat(filepath.Join(fs.BaseDir(), "k.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreKeySanitization(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Save("../escape", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), string(os.PathSeparator))

	data, ok, err := fs.Load("../escape")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(data))
}

func TestMemStore(t *testing.T) {
	ms := NewMemStore()

	_, ok, err := ms.Load("k")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte("hello")
	require.NoError(t, ms.Save("k", payload))

	// Mutating the caller's slice after Save must not leak into the store.
	payload[0] = 'x'
	data, ok, err := ms.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))

	// Nor does mutating a loaded slice corrupt the stored copy.
	data[0] = 'y'
	again, _, _ := ms.Load("k")
	assert.Equal(t, "hello", string(again))
}
