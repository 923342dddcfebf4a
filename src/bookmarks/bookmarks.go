package bookmarks

import (
	"encoding/json"
	"os"
)

// Valid reports whether path is a non-empty, parseable bookmarks file.
// Backups are pass-through copies; this only guards against copying a
// truncated or mid-write file.
func Valid(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var doc any
	return json.Unmarshal(data, &doc) == nil
}

// Count parses a bookmarks file and counts its url entries across all
// bookmark roots (bar, other, synced).
func Count(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, err
	}
	return countNodes(doc), nil
}

func countNodes(node any) int {
	switch v := node.(type) {
	case map[string]any:
		if v["type"] == "url" {
			return 1
		}
		total := 0
		for _, child := range v {
			total += countNodes(child)
		}
		return total
	case []any:
		total := 0
		for _, child := range v {
			total += countNodes(child)
		}
		return total
	default:
		return 0
	}
}
