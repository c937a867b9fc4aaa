package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestFileStore returns a file store whose data lives in a temporary folder.
func newTestFileStore(t *testing.T) *fileMovieStorage {
	t.Helper()
	fls, err := NewFileMovieStorage(zap.NewNop(), &FileConfig{
		Path:        filepath.Join(t.TempDir(), "database", "filmes.json"),
		LockTimeout: 200 * time.Millisecond,
	})
	require.NoError(t, err, "failed in creating a test file store")
	t.Cleanup(func() { fls.Close() })
	return fls
}

// Ensure a missing or empty file reads as an empty collection.
func TestFileStore_LoadEmpty(t *testing.T) {
	fls := newTestFileStore(t)

	movies, err := fls.Load(context.TODO())
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)

	require.NoError(t, os.WriteFile(fls.path, []byte("  \n"), 0o644))
	movies, err = fls.Load(context.TODO())
	require.NoError(t, err)
	assert.Empty(t, movies)
}

// Ensure a corrupted file is reported instead of being treated as empty.
func TestFileStore_LoadMalformed(t *testing.T) {
	fls := newTestFileStore(t)
	require.NoError(t, os.WriteFile(fls.path, []byte(`[{"id":`), 0o644))
	_, err := fls.Load(context.TODO())
	assert.Error(t, err)
}

// Ensure saved collections are read back in the same order.
func TestFileStore_SaveAndLoad(t *testing.T) {
	fls := newTestFileStore(t)
	require.NoError(t, fls.Save(context.TODO(), testMovies))

	movies, err := fls.Load(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, testMovies, movies)

	data, err := os.ReadFile(fls.path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"id\": \"m-0\""), string(data))

	_, err = os.Stat(fls.path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed")

	require.NoError(t, fls.Save(context.TODO(), nil))
	data, err = os.ReadFile(fls.path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

// Ensure the lock excludes other holders of the same lock file.
func TestFileStore_Lock(t *testing.T) {
	fls := newTestFileStore(t)

	unlock, err := fls.Lock(context.TODO())
	require.NoError(t, err)

	other := flock.New(fls.path + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, unlock())
	locked, err = other.TryLock()
	require.NoError(t, err)
	assert.True(t, locked)

	_, err = fls.Lock(context.TODO())
	assert.Error(t, err, "lock should time out while held elsewhere")
	require.NoError(t, other.Unlock())
}

// Ensure the memory store never shares its slice with callers.
func TestMemoryStore_Copies(t *testing.T) {
	ms := NewMemoryMovieStorage(testMovies...)
	movies, err := ms.Load(context.TODO())
	require.NoError(t, err)
	movies[0].Title = "changed"

	again, err := ms.Load(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, testMovies, again)
}
