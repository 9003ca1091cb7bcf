package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe"
	"github.com/aretw0/scribe/pkg/adapters/memory"
)

// resetFlags restores every flag to its default so commands can run
// several times in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI against dir with an isolated config path.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(""))

	base := []string{"--data", filepath.Join(dir, "data"), "--config", filepath.Join(dir, scribe.ConfigFileName)}
	rootCmd.SetArgs(append(args, base...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func listJSONNotes(t *testing.T, dir string, args ...string) []noteJSON {
	t.Helper()
	out, err := run(t, dir, append([]string{"list", "--json"}, args...)...)
	require.NoError(t, err)
	var docs []noteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	return docs
}

func TestCLI_NewListEditRemove(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "new", "--title", "Groceries", "--content", "milk and eggs", "--tag", "home")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	_, err = run(t, dir, "new", "--title", "Work plan")
	require.NoError(t, err)

	docs := listJSONNotes(t, dir)
	require.Len(t, docs, 2)
	assert.Equal(t, "Work plan", docs[0].Title, "most recently updated first")
	assert.Equal(t, []string{"home"}, docs[1].Tags)

	_, err = run(t, dir, "edit", id, "--content", "just milk")
	require.NoError(t, err)

	out, err = run(t, dir, "show", id, "--json")
	require.NoError(t, err)
	var shown noteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "Groceries", shown.Title)
	assert.Equal(t, "just milk", shown.Content)
	assert.True(t, shown.UpdatedAt.After(shown.CreatedAt))

	out, err = run(t, dir, "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")
	assert.Len(t, listJSONNotes(t, dir), 1)

	_, err = run(t, dir, "rm", id)
	assert.Error(t, err)
	_, err = run(t, dir, "edit", id, "--title", "x")
	assert.Error(t, err)
	_, err = run(t, dir, "edit", "whatever")
	assert.Error(t, err, "edit without flags")
}

func TestCLI_SearchAndSort(t *testing.T) {
	dir := t.TempDir()
	for _, title := range []string{"banana bread", "Apple pie", "cherry tart"} {
		_, err := run(t, dir, "new", "--title", title)
		require.NoError(t, err)
	}

	docs := listJSONNotes(t, dir, "--sort", "title", "--dir", "asc")
	require.Len(t, docs, 3)
	assert.Equal(t, []string{"Apple pie", "banana bread", "cherry tart"}, []string{docs[0].Title, docs[1].Title, docs[2].Title})

	// The sort choice is saved.
	docs = listJSONNotes(t, dir)
	assert.Equal(t, "Apple pie", docs[0].Title)

	docs = listJSONNotes(t, dir, "--search", "PIE")
	require.Len(t, docs, 1)
	assert.Equal(t, "Apple pie", docs[0].Title)

	_, err := run(t, dir, "list", "--sort", "size")
	assert.Error(t, err)
}

func TestCLI_PlainOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes yet")

	_, err = run(t, dir, "new", "--title", "Hello", "--content", "world")
	require.NoError(t, err)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "world")
}

func TestCLI_InitAndConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"init", "--backend", "sqlite"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Initialized")

	cfg, err := scribe.LoadConfig(filepath.Join(dir, scribe.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, scribe.BackendSQLite, cfg.Backend)
	_, err = os.Stat(filepath.Join(dir, "data", "scribe.db"))
	require.NoError(t, err)

	// A second init refuses to overwrite the config.
	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"init"})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}

func TestCLI_Version(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "scribe version "+strings.TrimSpace(scribe.Version)+"\n", out)
}

func TestShell(t *testing.T) {
	ctx := context.Background()
	nb, err := scribe.Open(ctx, "", scribe.WithBackend(scribe.BackendMemory))
	require.NoError(t, err)
	defer nb.Close(ctx)

	var out bytes.Buffer
	sh := newShell(ctx, nb, &out)
	script := strings.Join([]string{
		"new Groceries",
		"write milk",
		"tag home errands",
		"new Work",
		"ls",
		"search milk",
		"ls",
		"search",
		"sort title asc",
		"rm",
		"show",
		"select nope",
		"show",
		"bogus",
		"quit",
		"new never-run",
	}, "\n")
	require.NoError(t, sh.run(ctx, strings.NewReader(script)))

	st := nb.Store.Current()
	require.Len(t, st.Notes, 1)
	assert.Equal(t, "Groceries", st.Notes[0].Title)
	assert.Equal(t, "milk", st.Notes[0].Content)
	assert.Equal(t, []string{"home", "errands"}, st.Notes[0].Tags)
	assert.Equal(t, "", st.SearchQuery)
	assert.Equal(t, "nope", st.ActiveNoteID)

	text := out.String()
	assert.Contains(t, text, "note nope not found")
	assert.Contains(t, text, "No note selected.")
	assert.Contains(t, text, `unknown command "bogus"`)
}

func TestShell_ReportsSaveFailureImmediately(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	nb, err := scribe.Open(ctx, "", scribe.WithKV(kv))
	require.NoError(t, err)
	defer nb.Close(ctx)

	kv.FailWrites(true)

	var out bytes.Buffer
	sh := newShell(ctx, nb, &out)
	quit, err := sh.exec(ctx, "new Groceries")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "warning:")
	assert.Len(t, nb.Store.Current().Notes, 1, "in-memory state is kept")
}
