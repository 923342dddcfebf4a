package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bookmark-backup/src/logging"
	"bookmark-backup/src/version"
)

// Exit codes. Per-file failures and empty discovery exit 1; unrecoverable
// configuration problems (unwritable destination, aborted setup) exit 2.
const (
	exitOK      = 0
	exitFailure = 1
	exitFatal   = 2
)

// codedError carries a specific process exit code out of a command.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func fatalf(format string, args ...any) error {
	return &codedError{code: exitFatal, err: fmt.Errorf(format, args...)}
}

func failf(format string, args ...any) error {
	return &codedError{code: exitFailure, err: fmt.Errorf(format, args...)}
}

type options struct {
	verbose            int
	list               bool
	test               bool
	maxBackups         int
	setup              bool
	showConfig         bool
	configure          bool
	configureUser      bool
	configureBrowser   bool
	configureBackup    bool
	configureRetention bool
}

// NewRootCmd returns the root command for the bookmark-backup CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "bookmark-backup [backup_path]",
		Short: "Back up browser bookmarks from a Windows filesystem to a destination directory",
		Long: "Backs up Chromium-family browser bookmark files (Chrome, Edge, Brave, or a custom\n" +
			"data directory) from the Windows users mount to a configured destination, with\n" +
			"timestamped names and per-profile retention rotation. Prompts for configuration\n" +
			"on first run. The optional backup_path argument overrides the destination for\n" +
			"this run only and is not persisted.",
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(opts.verbose, cmd.ErrOrStderr())
			return run(cmd, opts, args)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.CountVarP(&opts.verbose, "verbose", "v", "Verbose output (repeat for more detail)")
	flags.BoolVarP(&opts.list, "list", "l", false, "List available profiles and exit")
	flags.BoolVarP(&opts.test, "test", "t", false, "Test mode - show what would be backed up without writing")
	flags.IntVarP(&opts.maxBackups, "max-backups", "m", 0, "Maximum number of backups to keep (overrides config)")
	flags.BoolVar(&opts.setup, "setup", false, "Run initial setup (configure all settings)")
	flags.BoolVar(&opts.configure, "configure", false, "Configure browser, Windows user and backup directory")
	flags.BoolVar(&opts.configureBrowser, "configure-browser", false, "Configure browser selection only")
	flags.BoolVar(&opts.configureUser, "configure-user", false, "Configure Windows user selection only")
	flags.BoolVar(&opts.configureBackup, "configure-backup", false, "Configure backup directory only")
	flags.BoolVar(&opts.configureRetention, "configure-retention", false, "Configure backup retention only")
	flags.BoolVar(&opts.showConfig, "show-config", false, "Show current configuration")

	return cmd
}

// run dispatches between the configuration commands, listing, and the
// backup flow proper.
func run(cmd *cobra.Command, opts options, args []string) error {
	switch {
	case opts.showConfig:
		return showConfig(cmd)
	case opts.setup || opts.configure:
		return runFullSetup(cmd)
	case opts.configureBrowser:
		return configureBrowser(cmd)
	case opts.configureUser:
		return configureUser(cmd)
	case opts.configureBackup:
		return configureBackupDir(cmd)
	case opts.configureRetention:
		return configureRetention(cmd)
	case opts.list:
		return runList(cmd, opts)
	default:
		return runBackup(cmd, opts, args)
	}
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	root.SetIn(os.Stdin)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var coded *codedError
		if errors.As(err, &coded) {
			return coded.code
		}
		return exitFailure
	}
	return exitOK
}
