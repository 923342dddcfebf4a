package bookmarks_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmark-backup/src/bookmarks"
)

const sampleBookmarks = `{
  "checksum": "abc",
  "roots": {
    "bookmark_bar": {
      "type": "folder",
      "children": [
        {"type": "url", "name": "Go", "url": "https://go.dev"},
        {
          "type": "folder",
          "name": "News",
          "children": [
            {"type": "url", "name": "LWN", "url": "https://lwn.net"},
            {"type": "url", "name": "HN", "url": "https://news.ycombinator.com"}
          ]
        }
      ]
    },
    "other": {
      "type": "folder",
      "children": [{"type": "url", "name": "Docs", "url": "https://pkg.go.dev"}]
    },
    "synced": {"type": "folder", "children": []}
  },
  "version": 1
}`

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Bookmarks")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValid(t *testing.T) {
	assert.True(t, bookmarks.Valid(write(t, sampleBookmarks)))
	assert.False(t, bookmarks.Valid(write(t, "")), "empty file")
	assert.False(t, bookmarks.Valid(write(t, "{truncated")), "malformed JSON")
	assert.False(t, bookmarks.Valid(filepath.Join(t.TempDir(), "missing")))
}

func TestCount(t *testing.T) {
	n, err := bookmarks.Count(write(t, sampleBookmarks))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCount_EmptyRoots(t *testing.T) {
	n, err := bookmarks.Count(write(t, `{"roots":{"bookmark_bar":{"type":"folder","children":[]}}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCount_Malformed(t *testing.T) {
	_, err := bookmarks.Count(write(t, "nope{"))
	assert.Error(t, err)
}
