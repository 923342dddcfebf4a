package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"bookmark-backup/src/browser"
)

// DefaultMaxBackups is the retention count used when none is configured.
const DefaultMaxBackups = 30

// EnvConfigPath overrides the configuration file location when set.
const EnvConfigPath = "BOOKMARK_BACKUP_CONFIG"

// Config holds the persisted settings. Every field is optional; missing
// fields fall back to interactive prompting.
type Config struct {
	Browser     browser.Selection `yaml:"browser,omitempty"`
	WindowsUser string            `yaml:"windows_user,omitempty"`
	BackupPath  string            `yaml:"backup_path,omitempty"`
	MaxBackups  int               `yaml:"max_backups,omitempty"`
}

// Retention returns the configured retention count, falling back to the
// default when unset.
func (c Config) Retention() int {
	if c.MaxBackups > 0 {
		return c.MaxBackups
	}
	return DefaultMaxBackups
}

// Complete reports whether all settings required for a backup run are set.
func (c Config) Complete() bool {
	return !c.Browser.IsZero() && c.WindowsUser != "" && c.BackupPath != ""
}

// Path returns the configuration file location, honoring the env override.
func Path() string {
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return custom
	}
	return filepath.Join(xdg.ConfigHome, "bookmark-backup", "config.yaml")
}

// Load reads the configuration at path. A missing or malformed file counts
// as absent (found == false), never as a fatal error: the caller proceeds
// to first-run setup. Unknown fields are ignored.
func Load(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	return cfg, true
}

// Save writes the full configuration atomically: a temp file in the target
// directory, then rename, so a crash mid-write cannot corrupt the file.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
