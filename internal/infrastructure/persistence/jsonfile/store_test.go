package jsonfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/newtab/internal/infrastructure/persistence/jsonfile"
)

func TestStore_RoundTripAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "storage.json")

	s := jsonfile.NewStore(path)
	_, found, err := s.Get(ctx, "betterfox-shortcuts")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "betterfox-shortcuts", `[]`))
	require.NoError(t, s.Set(ctx, "betterfox-settings", `{}`))

	reopened := jsonfile.NewStore(path)
	v, found, err := reopened.Get(ctx, "betterfox-shortcuts")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)

	keys, err := reopened.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"betterfox-settings", "betterfox-shortcuts"}, keys)

	require.NoError(t, reopened.Delete(ctx, "betterfox-settings"))
	_, found, err = jsonfile.NewStore(path).Get(ctx, "betterfox-settings")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))

	_, _, err := jsonfile.NewStore(path).Get(context.Background(), "k")
	require.Error(t, err)
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := jsonfile.NewStore(filepath.Join(dir, "storage.json"))
	require.NoError(t, s.Set(context.Background(), "k", "v"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "storage.json", entries[0].Name())
}
