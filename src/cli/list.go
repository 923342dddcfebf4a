package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookmark-backup/src/bookmarks"
	"bookmark-backup/src/config"
	"bookmark-backup/src/discover"
)

// runList enumerates discoverable profiles and exits without copying.
// Zero profiles is a valid outcome here, not a failure.
func runList(cmd *cobra.Command, opts options) error {
	stdout := cmd.OutOrStdout()
	usersRoot := discover.UsersRoot()

	cfg, err := ensureSourceConfig(cmd, usersRoot)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Configured browser: %s\n", cfg.Browser)
	fmt.Fprintf(stdout, "Windows user: %s\n", orUnset(cfg.WindowsUser))

	profiles := discover.FindProfiles(usersRoot, cfg.WindowsUser, cfg.Browser)
	fmt.Fprintln(stdout, "\nFound browser profiles:")
	if len(profiles) == 0 {
		fmt.Fprintln(stdout, "  No profiles found")
		fmt.Fprintln(stdout, "  Try --configure-browser or --configure-user to adjust the source settings.")
		return nil
	}
	for i, p := range profiles {
		count := "unknown"
		if bookmarks.Valid(p.BookmarksPath) {
			if n, err := bookmarks.Count(p.BookmarksPath); err == nil {
				count = fmt.Sprintf("%d", n)
			}
		}
		fmt.Fprintf(stdout, "  %d. %s - %s bookmarks\n", i+1, p.Name, count)
		fmt.Fprintf(stdout, "     Path: %s\n", p.BookmarksPath)
	}
	return nil
}

// ensureSourceConfig loads the configuration and prompts for any missing
// source settings (browser, Windows user), persisting what was answered.
// The destination directory is not required here.
func ensureSourceConfig(cmd *cobra.Command, usersRoot string) (config.Config, error) {
	cfgPath := config.Path()
	cfg, _ := config.Load(cfgPath)
	if !cfg.Browser.IsZero() && cfg.WindowsUser != "" {
		if err := cfg.Browser.Validate(); err != nil {
			return cfg, fatalf("%w (run --configure-browser to fix)", err)
		}
		return cfg, nil
	}

	p := config.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if cfg.Browser.IsZero() {
		sel, err := config.SelectBrowser(p)
		if err != nil {
			return cfg, fatalf("%w", err)
		}
		cfg.Browser = sel
	}
	if cfg.WindowsUser == "" {
		users := discover.ListUsers(usersRoot)
		user, err := config.SelectUser(p, users)
		if err != nil {
			return cfg, fatalf("%w", err)
		}
		cfg.WindowsUser = user
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return cfg, fmt.Errorf("save configuration: %w", err)
	}
	return cfg, nil
}
