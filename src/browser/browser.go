package browser

import (
	"fmt"
	"sort"
	"strings"
)

// Info describes one supported Chromium-family browser and where its data
// directory lives relative to the per-OS application-data root.
type Info struct {
	Key  string
	Name string
	// Relative data paths, tried in order. On Windows each is probed under
	// both AppData/Local and AppData/Roaming.
	WindowsPaths []string
	DarwinPaths  []string
	LinuxPaths   []string
}

// Catalog lists the browsers the tool knows how to locate.
var Catalog = []Info{
	{
		Key:          "chrome",
		Name:         "Google Chrome",
		WindowsPaths: []string{"Google/Chrome"},
		DarwinPaths:  []string{"Google/Chrome"},
		LinuxPaths:   []string{"google-chrome"},
	},
	{
		Key:          "edge",
		Name:         "Microsoft Edge",
		WindowsPaths: []string{"Microsoft/Edge"},
		DarwinPaths:  []string{"Microsoft Edge"},
		LinuxPaths:   []string{"microsoft-edge"},
	},
	{
		Key:          "brave",
		Name:         "Brave Browser",
		WindowsPaths: []string{"BraveSoftware/Brave-Browser"},
		DarwinPaths:  []string{"BraveSoftware/Brave-Browser"},
		LinuxPaths:   []string{"BraveSoftware/Brave-Browser"},
	},
}

// Lookup returns the catalog entry for key.
func Lookup(key string) (Info, bool) {
	for _, b := range Catalog {
		if b.Key == key {
			return b, true
		}
	}
	return Info{}, false
}

// Keys returns the catalog keys in a stable order.
func Keys() []string {
	keys := make([]string, 0, len(Catalog))
	for _, b := range Catalog {
		keys = append(keys, b.Key)
	}
	sort.Strings(keys)
	return keys
}

// Selection is either a catalog browser (Key set) or a custom data
// directory (CustomPath set). Exactly one side is populated.
type Selection struct {
	Key        string `yaml:"key,omitempty"`
	CustomPath string `yaml:"custom_path,omitempty"`
}

// IsZero reports whether no browser has been selected yet.
func (s Selection) IsZero() bool {
	return s.Key == "" && s.CustomPath == ""
}

// IsCustom reports whether the selection is a custom data directory.
func (s Selection) IsCustom() bool {
	return s.CustomPath != ""
}

// FileLabel returns the browser token used in backup file names.
func (s Selection) FileLabel() string {
	if s.IsCustom() {
		return "custom"
	}
	if s.Key == "" {
		return "browser"
	}
	return s.Key
}

// String returns a human-readable description of the selection.
func (s Selection) String() string {
	if s.IsCustom() {
		return fmt.Sprintf("Custom (%s)", s.CustomPath)
	}
	if b, ok := Lookup(s.Key); ok {
		return b.Name
	}
	if s.Key != "" {
		return s.Key
	}
	return "Not configured"
}

// Validate checks that the selection refers to a known browser or a
// non-empty custom path.
func (s Selection) Validate() error {
	if s.IsZero() {
		return fmt.Errorf("no browser selected")
	}
	if s.IsCustom() {
		if strings.TrimSpace(s.CustomPath) == "" {
			return fmt.Errorf("custom browser path must not be empty")
		}
		return nil
	}
	if _, ok := Lookup(s.Key); !ok {
		return fmt.Errorf("unknown browser %q (expected one of %s)", s.Key, strings.Join(Keys(), ", "))
	}
	return nil
}
