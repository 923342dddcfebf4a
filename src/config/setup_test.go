package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmark-backup/src/config"
)

func prompter(input string) (*config.Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return config.NewPrompter(strings.NewReader(input), &out), &out
}

func TestSelectUser_PicksFromList(t *testing.T) {
	p, out := prompter("2\n")
	user, err := config.SelectUser(p, []string{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user)
	assert.Contains(t, out.String(), "1. alice")
	assert.Contains(t, out.String(), "2. bob")
}

func TestSelectUser_RetriesOnInvalidInput(t *testing.T) {
	p, out := prompter("0\nnope\n1\n")
	user, err := config.SelectUser(p, []string{"alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Contains(t, out.String(), "Invalid selection")
}

func TestSelectUser_NoAccounts(t *testing.T) {
	p, _ := prompter("")
	_, err := config.SelectUser(p, nil)
	assert.Error(t, err)
}

func TestSelectBrowser_Catalog(t *testing.T) {
	p, out := prompter("1\n")
	sel, err := config.SelectBrowser(p)
	require.NoError(t, err)
	assert.Equal(t, "chrome", sel.Key)
	assert.False(t, sel.IsCustom())
	assert.Contains(t, out.String(), "Google Chrome")
}

func TestSelectBrowser_CustomPath(t *testing.T) {
	p, _ := prompter("4\n/opt/some-browser/data\n")
	sel, err := config.SelectBrowser(p)
	require.NoError(t, err)
	assert.True(t, sel.IsCustom())
	assert.Equal(t, "/opt/some-browser/data", sel.CustomPath)
}

func TestSelectBrowser_CancelledOnEOF(t *testing.T) {
	p, _ := prompter("")
	_, err := config.SelectBrowser(p)
	assert.ErrorIs(t, err, config.ErrCancelled)
}

func TestPromptBackupDir_AcceptsSuggested(t *testing.T) {
	suggested := filepath.Join(t.TempDir(), "bookmarks")
	p, _ := prompter("y\n")
	dir, err := config.PromptBackupDir(p, suggested)
	require.NoError(t, err)
	assert.Equal(t, suggested, dir)
}

func TestPromptBackupDir_CustomPath(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom-dest")
	p, _ := prompter("n\n" + custom + "\n")
	dir, err := config.PromptBackupDir(p, "/tmp/suggested")
	require.NoError(t, err)
	assert.Equal(t, custom, dir)
}

func TestPromptBackupDir_RepromptsOnUnwritable(t *testing.T) {
	base := t.TempDir()
	blocked := filepath.Join(base, "file")
	require.NoError(t, writeFile(blocked, "x"))
	good := filepath.Join(base, "ok")

	// First answer points under a regular file and must be rejected.
	p, out := prompter("n\n" + filepath.Join(blocked, "dest") + "\nn\n" + good + "\n")
	dir, err := config.PromptBackupDir(p, "/tmp/suggested")
	require.NoError(t, err)
	assert.Equal(t, good, dir)
	assert.Contains(t, out.String(), "Cannot use directory")
}

func TestPromptRetention_Presets(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"1\n", 1},
		{"2\n", 5},
		{"3\n", 10},
		{"4\n", 30},
		{"5\n7\n", 7},
	}
	for _, c := range cases {
		p, _ := prompter(c.input)
		got, err := config.PromptRetention(p)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "input %q", c.input)
	}
}

func TestPromptRetention_RejectsNonPositive(t *testing.T) {
	p, out := prompter("5\n0\n5\n-3\n5\n2\n")
	got, err := config.PromptRetention(p)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Contains(t, out.String(), "valid positive number")
}

func TestRunSetup_PopulatesEverything(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "dest")
	input := strings.Join([]string{
		"2",  // Microsoft Edge
		"1",  // first user
		"n",  // not the suggested dir
		dest, // custom dir
		"3",  // keep 10
	}, "\n") + "\n"
	p, _ := prompter(input)

	cfg, err := config.RunSetup(p, []string{"alice", "bob"}, "/tmp/suggested")
	require.NoError(t, err)
	assert.Equal(t, "edge", cfg.Browser.Key)
	assert.Equal(t, "alice", cfg.WindowsUser)
	assert.Equal(t, dest, cfg.BackupPath)
	assert.Equal(t, 10, cfg.MaxBackups)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestSuggestedBackupDir(t *testing.T) {
	assert.Equal(t, "", config.SuggestedBackupDir("/mnt/c/Users", nil))
	assert.Equal(t,
		"/mnt/c/Users/alice/OneDrive/bookmarks",
		config.SuggestedBackupDir("/mnt/c/Users", []string{"alice", "bob"}))
}
