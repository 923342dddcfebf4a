package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmark-backup/src/browser"
	"bookmark-backup/src/config"
)

func TestLoad_MissingFile(t *testing.T) {
	_, found := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	assert.False(t, found)
}

func TestLoad_MalformedFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not: [valid: yaml"), 0o644))

	_, found := config.Load(path)
	assert.False(t, found)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := config.Config{
		Browser:     browser.Selection{Key: "chrome"},
		WindowsUser: "alice",
		BackupPath:  "/mnt/c/Users/alice/OneDrive/bookmarks",
		MaxBackups:  10,
	}
	require.NoError(t, config.Save(path, want))

	got, found := config.Load(path)
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.Save(path, config.Config{WindowsUser: "bob"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}

func TestSave_PartialUpdatePreservesOtherFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Config{
		Browser:     browser.Selection{Key: "edge"},
		WindowsUser: "carol",
		BackupPath:  "/tmp/backups",
	}
	require.NoError(t, config.Save(path, cfg))

	cfg, found := config.Load(path)
	require.True(t, found)
	cfg.BackupPath = "/tmp/other"
	require.NoError(t, config.Save(path, cfg))

	got, found := config.Load(path)
	require.True(t, found)
	assert.Equal(t, "carol", got.WindowsUser)
	assert.Equal(t, "edge", got.Browser.Key)
	assert.Equal(t, "/tmp/other", got.BackupPath)
}

func TestLoad_UnknownFieldsTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := strings.Join([]string{
		"windows_user: dave",
		"backup_path: /tmp/backups",
		"some_future_setting: true",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	got, found := config.Load(path)
	require.True(t, found)
	assert.Equal(t, "dave", got.WindowsUser)
	assert.Equal(t, "/tmp/backups", got.BackupPath)
}

func TestRetention_DefaultsWhenUnset(t *testing.T) {
	assert.Equal(t, config.DefaultMaxBackups, config.Config{}.Retention())
	assert.Equal(t, 5, config.Config{MaxBackups: 5}.Retention())
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", config.Path())
}

func TestEnsureWritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new", "dest")
	require.NoError(t, config.EnsureWritableDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file should be removed")
}

func TestEnsureWritableDir_FileInTheWay(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	assert.Error(t, config.EnsureWritableDir(filepath.Join(blocked, "dest")))
}
