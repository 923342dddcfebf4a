package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"bookmark-backup/src/backup"
	"bookmark-backup/src/bookmarks"
	"bookmark-backup/src/config"
	"bookmark-backup/src/discover"
	"bookmark-backup/src/logging"
)

// runBackup is the normal (and dry-run) flow: load or prompt configuration,
// locate profiles, plan, preview, execute, report.
func runBackup(cmd *cobra.Command, opts options, args []string) error {
	log := logging.GetLogger("cli")
	usersRoot := discover.UsersRoot()
	cfgPath := config.Path()
	stdout := cmd.OutOrStdout()

	cfg, found := config.Load(cfgPath)
	if !found || !cfg.Complete() {
		fmt.Fprintln(stdout, "=== First Time Setup ===")
		users := discover.ListUsers(usersRoot)
		p := config.NewPrompter(cmd.InOrStdin(), stdout)
		full, err := config.RunSetup(p, users, config.SuggestedBackupDir(usersRoot, users))
		if err != nil {
			return fatalf("%w", err)
		}
		cfg = full
		if err := config.Save(cfgPath, cfg); err != nil {
			log.Warn().Err(err).Str("path", cfgPath).Msg("could not save configuration")
		} else {
			fmt.Fprintf(stdout, "Configuration saved to %s\n", cfgPath)
		}
	}

	if err := cfg.Browser.Validate(); err != nil {
		return fatalf("%w (run --configure-browser to fix)", err)
	}

	destDir := cfg.BackupPath
	if len(args) == 1 && args[0] != "" {
		// One-off override, never persisted.
		destDir = args[0]
	}
	keep := cfg.Retention()
	if cmd.Flags().Changed("max-backups") {
		keep = opts.maxBackups
	}
	if keep < 1 {
		return fatalf("--max-backups must be >= 1")
	}

	profiles := usableProfiles(cmd, opts, usersRoot, cfg)
	if len(profiles) == 0 {
		fmt.Fprintln(stdout, "No browser bookmark files found.")
		fmt.Fprintf(stdout, "Current browser: %s\n", cfg.Browser)
		fmt.Fprintf(stdout, "Current user: %s\n", orUnset(cfg.WindowsUser))
		fmt.Fprintln(stdout, "Try --configure-browser or --configure-user to adjust the source settings.")
		return failf("no profiles found")
	}

	if !opts.test {
		// Copy and rotation both need a writable destination; check once,
		// up front, before any copy attempt.
		if err := config.EnsureWritableDir(destDir); err != nil {
			return fatalf("backup destination %s: %w", destDir, err)
		}
	}

	plan := backup.BuildPlan(profiles, destDir, keep, time.Now())
	if opts.test || opts.verbose > 0 {
		renderPlan(stdout, plan)
	}
	if opts.test {
		fmt.Fprintln(stdout, "\nTEST MODE - no files were backed up")
		fmt.Fprintf(stdout, "Backup destination: %s\n", destDir)
		fmt.Fprintf(stdout, "Max backups to keep: %d\n", keep)
		return nil
	}

	res := backup.Execute(plan)
	// Deletions are reported unconditionally; they are the destructive
	// half of the run.
	for _, path := range res.Pruned {
		fmt.Fprintf(stdout, "Removed old backup: %s\n", path)
	}
	if res.Failed() {
		fmt.Fprintf(stdout, "\n%d action(s) failed:\n", len(res.Failures))
		for _, f := range res.Failures {
			fmt.Fprintf(stdout, "  %s\n", f)
		}
	}
	if len(res.Copied) == 0 {
		return failf("no bookmark files were successfully backed up")
	}
	fmt.Fprintf(stdout, "Successfully backed up %d bookmark file(s) to %s\n", len(res.Copied), destDir)
	if res.Failed() {
		return failf("%d action(s) failed", len(res.Failures))
	}
	return nil
}

// usableProfiles discovers profiles for the configured account and filters
// out bookmark files that fail structural validation.
func usableProfiles(cmd *cobra.Command, opts options, usersRoot string, cfg config.Config) []discover.Profile {
	found := discover.FindProfiles(usersRoot, cfg.WindowsUser, cfg.Browser)
	usable := found[:0]
	for _, p := range found {
		if !bookmarks.Valid(p.BookmarksPath) {
			if opts.verbose > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipping invalid bookmark file: %s\n", p.BookmarksPath)
			}
			continue
		}
		usable = append(usable, p)
	}
	return usable
}

// renderPlan previews every intended action, exactly as a real run would
// perform them.
func renderPlan(w io.Writer, plan backup.Plan) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tPROFILE\tUSER\tFILE")
	for _, c := range plan.Copies {
		fmt.Fprintf(tw, "copy\t%s\t%s\t%s\n", c.Profile.Name, c.Profile.User, c.Dest)
	}
	for _, p := range plan.Prunes {
		fmt.Fprintf(tw, "delete\t%s\t\t%s\n", p.ProfileLabel, p.Path)
	}
	tw.Flush()
}

func orUnset(s string) string {
	if s == "" {
		return "Not configured"
	}
	return s
}
