package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndList(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	err = store.Put(context.Background(), "1700000000000-ab12cd34.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "1700000000000-ab12cd34.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), written)

	objects, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "1700000000000-ab12cd34.png", objects[0].Key)
	assert.Equal(t, int64(len("png-bytes")), objects[0].Size)
	require.NotNil(t, objects[0].LastModified)
}

func TestLocalStoreRejectsPathTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.png", "nested/name.png"} {
		err := store.Put(context.Background(), name, "image/png", []byte("x"))
		require.Error(t, err, "name %q must be rejected", name)
	}
}

func TestLocalStoreCreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	_, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
