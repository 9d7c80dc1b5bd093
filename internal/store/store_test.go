package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "profiles.toml")
}

func TestLoad(t *testing.T) {
	t.Run("missing file is created empty", func(t *testing.T) {
		path := storePath(t)

		profiles, err := store.Load(path)
		require.NoError(t, err)
		assert.Empty(t, profiles)

		_, err = os.Stat(path)
		assert.NoError(t, err, "load should create the backing file")
	})

	t.Run("blank file is an empty store", func(t *testing.T) {
		path := storePath(t)
		require.NoError(t, os.WriteFile(path, []byte("  \n\n"), 0644))

		profiles, err := store.Load(path)
		require.NoError(t, err)
		assert.Empty(t, profiles)
	})

	t.Run("round trip", func(t *testing.T) {
		path := storePath(t)
		original := store.Profiles{
			"alice": {Credential: "tok-a", Address: "local"},
			"bob":   {Credential: "tok-b", Address: "https://x.example/spacetime"},
		}
		require.NoError(t, store.Save(path, original))

		loaded, err := store.Load(path)
		require.NoError(t, err)
		assert.Equal(t, original, loaded)
	})

	t.Run("corrupt file reports both parse failures", func(t *testing.T) {
		path := storePath(t)
		require.NoError(t, os.WriteFile(path, []byte("alice = 42\n"), 0644))

		_, err := store.Load(path)
		require.Error(t, err)

		var corrupt *store.CorruptError
		require.True(t, errors.As(err, &corrupt))
		assert.Equal(t, path, corrupt.Path)
		assert.Error(t, corrupt.Current)
		assert.Error(t, corrupt.Legacy)

		// The file must be left untouched.
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "alice = 42\n", string(data))
	})
}

func TestLegacyMigration(t *testing.T) {
	path := storePath(t)
	legacy := "alice = \"tok123\"\nbob = \"tok456\"\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	profiles, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, store.Profiles{
		"alice": {Credential: "tok123", Address: "local"},
		"bob":   {Credential: "tok456", Address: "local"},
	}, profiles)

	// The upgraded schema must be persisted back immediately, so a
	// second load parses the current schema without migrating again.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, legacy, string(data))

	reloaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, profiles, reloaded)
}

func TestNamesSorted(t *testing.T) {
	profiles := store.Profiles{
		"zeta":  {Credential: "z", Address: "local"},
		"alpha": {Credential: "a", Address: "local"},
		"mid":   {Credential: "m", Address: "local"},
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, profiles.Names())
}
