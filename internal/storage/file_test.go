package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/wealthflow/internal/interfaces"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "state")
	fs, err := NewFileStore(testLogger(), dir)
	require.NoError(t, err)
	return fs, dir
}

func TestFileStore_GetMissing(t *testing.T) {
	fs, _ := newTestFileStore(t)
	_, err := fs.Get(context.Background(), "wealthflow_state")
	assert.True(t, errors.Is(err, interfaces.ErrNotFound))
}

func TestFileStore_EmptyFileIsNotFound(t *testing.T) {
	fs, dir := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.json"), nil, 0644))

	_, err := fs.Get(context.Background(), "k")
	assert.True(t, errors.Is(err, interfaces.ErrNotFound))
}

func TestFileStore_SetGet(t *testing.T) {
	fs, dir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Set(ctx, "wealthflow_state", []byte(`{"a":1}`)))
	require.NoError(t, fs.Set(ctx, "wealthflow_state", []byte(`{"a":2}`)))

	got, err := fs.Get(ctx, "wealthflow_state")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "wealthflow_state.json", entries[0].Name())
}

func TestFileStore_KeyIsSanitized(t *testing.T) {
	fs, dir := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Set(ctx, "../escape/key", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, "_escape_key.json"))
	assert.NoError(t, err)

	got, err := fs.Get(ctx, "../escape/key")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}
