package clidoc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty input is a valid empty document", func(t *testing.T) {
		doc, err := clidoc.Parse(nil)
		require.NoError(t, err)
		_, ok := doc.Scalar("anything")
		assert.False(t, ok)
		assert.Equal(t, 0, doc.ServerCount())
	})

	t.Run("non-mapping top level is rejected", func(t *testing.T) {
		_, err := clidoc.Parse([]byte("- just\n- a\n- list\n"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml is rejected", func(t *testing.T) {
		_, err := clidoc.Parse([]byte("{{{"))
		assert.Error(t, err)
	})
}

func TestScalars(t *testing.T) {
	doc, err := clidoc.Parse([]byte("default_host: local\n"))
	require.NoError(t, err)

	host, ok := doc.Scalar("default_host")
	require.True(t, ok)
	assert.Equal(t, "local", host)

	_, ok = doc.Scalar("spacetimedb_token")
	assert.False(t, ok)

	doc.SetScalar("spacetimedb_token", "tok-1")
	tok, ok := doc.Scalar("spacetimedb_token")
	require.True(t, ok)
	assert.Equal(t, "tok-1", tok)

	doc.SetScalar("default_host", "https://x.example")
	host, ok = doc.Scalar("default_host")
	require.True(t, ok)
	assert.Equal(t, "https://x.example", host)
}

func TestUpsertServer(t *testing.T) {
	t.Run("appends when registry is absent", func(t *testing.T) {
		doc := clidoc.New()
		doc.UpsertServer("dev", "127.0.0.1:3000", "http")

		entry, ok := doc.FindServer("dev")
		require.True(t, ok)
		assert.Equal(t, "127.0.0.1:3000", entry.Host)
		assert.Equal(t, "http", entry.Protocol)
		assert.Equal(t, 1, doc.ServerCount())
	})

	t.Run("updates in place and keeps other row fields", func(t *testing.T) {
		input := []byte(`server_configs:
    - nickname: dev
      host: old.example
      protocol: http
      pinned: true
`)
		doc, err := clidoc.Parse(input)
		require.NoError(t, err)

		doc.UpsertServer("dev", "new.example", "https")

		entry, ok := doc.FindServer("dev")
		require.True(t, ok)
		assert.Equal(t, "new.example", entry.Host)
		assert.Equal(t, "https", entry.Protocol)
		assert.Equal(t, 1, doc.ServerCount())

		out, err := doc.Marshal()
		require.NoError(t, err)
		assert.Contains(t, string(out), "pinned: true")
	})

	t.Run("matches nickname by exact string", func(t *testing.T) {
		doc := clidoc.New()
		doc.UpsertServer("dev", "a.example", "http")
		doc.UpsertServer("Dev", "b.example", "https")

		assert.Equal(t, 2, doc.ServerCount())
		entry, ok := doc.FindServer("dev")
		require.True(t, ok)
		assert.Equal(t, "a.example", entry.Host)
	})
}

func TestRoundTripPreservesForeignContent(t *testing.T) {
	input := []byte(`# managed by the spacetime CLI
default_host: local
telemetry: enabled # do not touch
web_session_token: abc123
server_configs:
    - nickname: prod
      host: prod.example
      protocol: https
`)
	doc, err := clidoc.Parse(input)
	require.NoError(t, err)

	doc.SetScalar("spacetimedb_token", "tok-9")
	doc.UpsertServer("dev", "127.0.0.1:3000", "http")

	out, err := doc.Marshal()
	require.NoError(t, err)
	text := string(out)

	// Keys and comments this tool never interprets must survive.
	assert.Contains(t, text, "# managed by the spacetime CLI")
	assert.Contains(t, text, "telemetry: enabled")
	assert.Contains(t, text, "# do not touch")
	assert.Contains(t, text, "web_session_token: abc123")
	assert.Contains(t, text, "prod.example")

	// And the edits landed.
	assert.Contains(t, text, "spacetimedb_token: tok-9")
	assert.Contains(t, text, "127.0.0.1:3000")
}

func TestLoadAndSave(t *testing.T) {
	t.Run("load fails on a missing file", func(t *testing.T) {
		_, err := clidoc.Load(filepath.Join(t.TempDir(), "cli.yaml"))
		assert.Error(t, err)
	})

	t.Run("load or init returns an empty document and creates parents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "cli.yaml")

		doc, err := clidoc.LoadOrInit(path)
		require.NoError(t, err)

		doc.SetScalar("default_host", "local")
		require.NoError(t, doc.Save(path))

		loaded, err := clidoc.Load(path)
		require.NoError(t, err)
		host, ok := loaded.Scalar("default_host")
		require.True(t, ok)
		assert.Equal(t, "local", host)
	})

	t.Run("save then load round-trips the registry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cli.yaml")
		doc := clidoc.New()
		doc.UpsertServer("dev", "127.0.0.1:3000", "http")
		require.NoError(t, doc.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "server_configs")

		loaded, err := clidoc.Load(path)
		require.NoError(t, err)
		entry, ok := loaded.FindServer("dev")
		require.True(t, ok)
		assert.Equal(t, "http", entry.Protocol)
	})
}
