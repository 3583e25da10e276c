package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kvContract runs the same behaviour checks against every KV implementation.
func kvContract(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, kv.Put(ctx, "lumina_theme", []byte(`"kanagawa"`)))
	got, err := kv.Get(ctx, "lumina_theme")
	require.NoError(t, err)
	assert.Equal(t, `"kanagawa"`, string(got))

	// Whole-value replacement.
	require.NoError(t, kv.Put(ctx, "lumina_theme", []byte(`"default"`)))
	got, err = kv.Get(ctx, "lumina_theme")
	require.NoError(t, err)
	assert.Equal(t, `"default"`, string(got))

	require.NoError(t, kv.Put(ctx, "lumina_drafts", []byte(`[]`)))
	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lumina_drafts", "lumina_theme"}, keys)

	require.NoError(t, kv.Delete(ctx, "lumina_drafts"))
	err = kv.Delete(ctx, "lumina_drafts")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_Contract(t *testing.T) {
	kv := NewMemoryStore()
	defer func() { _ = kv.Close() }()
	kvContract(t, kv)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", buf))
	buf[0] = 'z'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestSQLiteStore_Contract(t *testing.T) {
	kv, err := NewSQLiteStore(filepath.Join(t.TempDir(), "lumina.db"), nil)
	require.NoError(t, err)
	defer func() { _ = kv.Close() }()
	kvContract(t, kv)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "lumina.db")

	kv, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "lumina_followed_tags", []byte(`["#zit"]`)))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(ctx, "lumina_followed_tags")
	require.NoError(t, err)
	assert.Equal(t, `["#zit"]`, string(got))
}
