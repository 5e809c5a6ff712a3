package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/newtab/internal/cli"
)

// isolate points every XDG directory at a temp dir and selects the JSON
// backend.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir+"/config")
	t.Setenv("XDG_DATA_HOME", dir+"/data")
	t.Setenv("XDG_STATE_HOME", dir+"/state")
	t.Setenv("NEWTAB_STORAGE_BACKEND", "json")
	t.Setenv("NEWTAB_LOG_LEVEL", "error")
}

// resetFlags restores every flag of the tree to its default between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

// run executes the CLI with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	require.NoError(t, closeApp())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestAbout(t *testing.T) {
	isolate(t)

	out := mustRun(t, "about")

	assert.Contains(t, out, "Storage")
	assert.Contains(t, out, "newtab.json")
	assert.Contains(t, out, "127.0.0.1:8787")
	assert.Contains(t, out, "0 keys")

	mustRun(t, "shortcuts", "list")
	assert.Contains(t, mustRun(t, "about"), "1 keys")
}

func TestShortcuts_AddListDelete(t *testing.T) {
	isolate(t)

	out := mustRun(t, "shortcuts", "list")
	assert.Contains(t, out, "GitHub")

	out = mustRun(t, "shortcuts", "add", "Go", "go.dev")
	assert.Contains(t, out, "https://go.dev")

	out = mustRun(t, "shortcuts", "list")
	assert.Contains(t, out, "GitHub")
	assert.Contains(t, out, "https://go.dev")

	mustRun(t, "shortcuts", "update", "github", "--name", "Code")
	out = mustRun(t, "shortcuts", "list")
	assert.Contains(t, out, "Code")
	assert.Contains(t, out, "https://github.com")

	mustRun(t, "shortcuts", "delete", "github", "--yes")
	out = mustRun(t, "shortcuts", "list")
	assert.NotContains(t, out, "https://github.com")

	_, err := run(t, "shortcuts", "delete", "missing", "--yes")
	assert.Error(t, err)

	out = mustRun(t, "shortcuts", "reset", "--yes")
	assert.Contains(t, out, "Restored 1 default shortcut(s)")
	out = mustRun(t, "shortcuts", "list")
	assert.Contains(t, out, "https://github.com")
	assert.NotContains(t, out, "https://go.dev")
}

func TestSettings_SetGetReset(t *testing.T) {
	isolate(t)

	assert.Equal(t, "dark\n", mustRun(t, "settings", "get", "theme.mode"))

	mustRun(t, "settings", "set", "theme.mode", "light")
	assert.Equal(t, "light\n", mustRun(t, "settings", "get", "theme.mode"))

	mustRun(t, "settings", "set", "clock.showSeconds", "true")
	assert.Equal(t, "true\n", mustRun(t, "settings", "get", "clock.showSeconds"))

	_, err := run(t, "settings", "set", "clock.dateFormat", "bogus")
	assert.Error(t, err)
	_, err = run(t, "settings", "set", "theme.nope", "1")
	assert.Error(t, err)
	_, err = run(t, "settings", "get", "notes.id")
	assert.Error(t, err)

	out := mustRun(t, "settings", "show")
	assert.Contains(t, out, "widgetVisibility")
	assert.Contains(t, out, "showSeconds")

	mustRun(t, "settings", "reset", "--yes")
	assert.Equal(t, "dark\n", mustRun(t, "settings", "get", "theme.mode"))
}

func TestNotes_AddShowUpdateDelete(t *testing.T) {
	isolate(t)

	out := mustRun(t, "notes", "list")
	assert.Contains(t, out, "No notes")

	mustRun(t, "notes", "add", "--title", "Groceries", "milk and eggs")
	mustRun(t, "notes", "add", "plain")

	out = mustRun(t, "notes", "list")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "Untitled Note")

	id := noteID(t, "Groceries")
	assert.Equal(t, "milk and eggs\n", mustRun(t, "notes", "show", id, "--raw"))

	mustRun(t, "notes", "update", id, "--content", "bread")
	assert.Equal(t, "bread\n", mustRun(t, "notes", "show", id, "--raw"))
	assert.Contains(t, mustRun(t, "notes", "show", id), "bread")

	mustRun(t, "notes", "delete", id, "--yes")
	_, err := run(t, "notes", "show", id)
	assert.Error(t, err)
}

// noteID reads the id of the note titled title from the settings document.
func noteID(t *testing.T, title string) string {
	t.Helper()
	a, err := cli.NewApp(cli.Options{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	for _, n := range a.Notes().List() {
		if n.Title == title {
			return n.ID
		}
	}
	t.Fatalf("no note titled %q", title)
	return ""
}

func TestSearch_DryRun(t *testing.T) {
	isolate(t)

	out := mustRun(t, "search", "--dry-run", "golang", "generics")
	assert.Contains(t, out, "https://google.com/search?q=golang+generics (search, current_tab)")

	out = mustRun(t, "search", "--dry-run", "github.com")
	assert.Contains(t, out, "https://github.com (address, current_tab)")

	mustRun(t, "settings", "set", "search.openInNewTab", "true")
	out = mustRun(t, "search", "--dry-run", "weather")
	assert.Contains(t, out, "new_tab")
}

func TestSuggest_InProcess(t *testing.T) {
	isolate(t)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "golang", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`["golang",["golang tutorial","golang generics"]]`))
	}))
	t.Cleanup(upstream.Close)
	t.Setenv("NEWTAB_SUGGESTIONS_PROVIDER_URL", upstream.URL)

	out := mustRun(t, "suggest", "--json", "golang")
	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"golang tutorial", "golang generics"}, got)

	out = mustRun(t, "suggest", "g")
	assert.Empty(t, out)
}

func TestConfig_SetGetSchema(t *testing.T) {
	isolate(t)

	out := mustRun(t, "config", "path")
	assert.Contains(t, out, "config.toml")

	mustRun(t, "config", "set", "search.debounce_ms", "150")
	assert.Equal(t, "150\n", mustRun(t, "config", "get", "search.debounce_ms"))

	_, err := run(t, "config", "set", "search.debounce_ms", "99999")
	assert.Error(t, err)
	assert.Equal(t, "150\n", mustRun(t, "config", "get", "search.debounce_ms"))

	_, err = run(t, "config", "get", "nope.key")
	assert.Error(t, err)

	out = mustRun(t, "config", "list")
	assert.Contains(t, out, "debounce_ms")
	assert.Contains(t, out, "provider_url")

	out = mustRun(t, "config", "schema")
	assert.Contains(t, out, "Config Schema Reference")
}
