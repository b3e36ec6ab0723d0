package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/storage"
)

func setupStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mixcheck.db")
	s := NewStore(path)
	require.NoError(t, s.Init())
	t.Cleanup(func() { s.Close() })

	return s, path
}

func TestStore_ItemRoundTrip(t *testing.T) {
	s, _ := setupStore(t)

	_, found, err := s.GetItem("history:v1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SetItem("history:v1", `[{"id":"1"}]`))
	require.NoError(t, s.SetItem("history:v1", `[]`))

	value, found, err := s.GetItem("history:v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, value)

	require.NoError(t, s.RemoveItem("history:v1"))
	require.NoError(t, s.RemoveItem("history:v1"))

	_, found, err = s.GetItem("history:v1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	s, path := setupStore(t)
	require.NoError(t, s.SetItem("settings:v1", `{"units":"imperial"}`))
	require.NoError(t, s.Close())

	reopened := NewStore(path)
	require.NoError(t, reopened.Load())
	defer reopened.Close()

	value, found, err := reopened.GetItem("settings:v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"units":"imperial"}`, value)
}

func TestStore_InitIsIdempotent(t *testing.T) {
	s, _ := setupStore(t)
	require.NoError(t, s.SetItem("k", "v"))
	require.NoError(t, s.Init())

	value, _, err := s.GetItem("k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}

func TestStore_LoadUninitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorIs(t, s.Load(), storage.ErrNotInitialized)
}

func TestStore_NotLoaded(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "x.db"))

	_, _, err := s.GetItem("k")
	assert.ErrorIs(t, err, storage.ErrNotLoaded)
	assert.ErrorIs(t, s.SetItem("k", "v"), storage.ErrNotLoaded)
	assert.ErrorIs(t, s.RemoveItem("k"), storage.ErrNotLoaded)
}

func TestStore_SchemaVersions(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "mixcheck.db"))

	_, _, err := s.SchemaVersions()
	assert.ErrorIs(t, err, storage.ErrNotLoaded)

	require.NoError(t, s.Init())
	defer s.Close()

	current, latest, err := s.SchemaVersions()
	require.NoError(t, err)
	assert.Equal(t, latest, current)
	assert.GreaterOrEqual(t, latest, 1)

	var _ storage.SchemaStore = s
}
