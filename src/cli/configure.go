package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookmark-backup/src/config"
	"bookmark-backup/src/discover"
)

// runFullSetup reconfigures every setting from scratch (--setup and
// --configure).
func runFullSetup(cmd *cobra.Command) error {
	stdout := cmd.OutOrStdout()
	usersRoot := discover.UsersRoot()
	fmt.Fprintln(stdout, "=== Browser Bookmark Backup Setup ===")

	users := discover.ListUsers(usersRoot)
	p := config.NewPrompter(cmd.InOrStdin(), stdout)
	cfg, err := config.RunSetup(p, users, config.SuggestedBackupDir(usersRoot, users))
	if err != nil {
		return fatalf("%w", err)
	}
	if err := config.Save(config.Path(), cfg); err != nil {
		return fatalf("save configuration: %w", err)
	}
	fmt.Fprintln(stdout, "\nSetup complete! You can now run backups.")
	return nil
}

func configureBrowser(cmd *cobra.Command) error {
	return updateConfig(cmd, func(p *config.Prompter, cfg *config.Config) error {
		sel, err := config.SelectBrowser(p)
		if err != nil {
			return err
		}
		cfg.Browser = sel
		fmt.Fprintf(cmd.OutOrStdout(), "Browser configured for backups: %s\n", sel)
		return nil
	})
}

func configureUser(cmd *cobra.Command) error {
	return updateConfig(cmd, func(p *config.Prompter, cfg *config.Config) error {
		users := discover.ListUsers(discover.UsersRoot())
		user, err := config.SelectUser(p, users)
		if err != nil {
			return err
		}
		cfg.WindowsUser = user
		fmt.Fprintf(cmd.OutOrStdout(), "User %q configured for backups.\n", user)
		return nil
	})
}

func configureBackupDir(cmd *cobra.Command) error {
	return updateConfig(cmd, func(p *config.Prompter, cfg *config.Config) error {
		usersRoot := discover.UsersRoot()
		suggested := cfg.BackupPath
		if suggested == "" {
			suggested = config.SuggestedBackupDir(usersRoot, discover.ListUsers(usersRoot))
		}
		dir, err := config.PromptBackupDir(p, suggested)
		if err != nil {
			return err
		}
		cfg.BackupPath = dir
		fmt.Fprintf(cmd.OutOrStdout(), "Backup directory updated to: %s\n", dir)
		return nil
	})
}

func configureRetention(cmd *cobra.Command) error {
	return updateConfig(cmd, func(p *config.Prompter, cfg *config.Config) error {
		keep, err := config.PromptRetention(p)
		if err != nil {
			return err
		}
		cfg.MaxBackups = keep
		fmt.Fprintf(cmd.OutOrStdout(), "Backup retention updated to: %d backups\n", keep)
		return nil
	})
}

// updateConfig loads the current configuration, applies one interactive
// change, and saves the result. Untouched fields carry over unchanged.
func updateConfig(cmd *cobra.Command, change func(*config.Prompter, *config.Config) error) error {
	cfgPath := config.Path()
	cfg, _ := config.Load(cfgPath)
	p := config.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if err := change(p, &cfg); err != nil {
		return fatalf("%w", err)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fatalf("save configuration: %w", err)
	}
	return nil
}

// showConfig prints the persisted configuration (--show-config).
func showConfig(cmd *cobra.Command) error {
	stdout := cmd.OutOrStdout()
	cfgPath := config.Path()
	cfg, _ := config.Load(cfgPath)

	fmt.Fprintln(stdout, "Current configuration:")
	fmt.Fprintf(stdout, "  Config file: %s\n", cfgPath)
	fmt.Fprintf(stdout, "  Browser: %s\n", cfg.Browser)
	fmt.Fprintf(stdout, "  Windows user: %s\n", orUnset(cfg.WindowsUser))
	fmt.Fprintf(stdout, "  Backup directory: %s\n", orUnset(cfg.BackupPath))
	fmt.Fprintf(stdout, "  Backup retention: %d backups\n", cfg.Retention())
	if cfg.BackupPath != "" {
		if _, err := os.Stat(cfg.BackupPath); err == nil {
			fmt.Fprintln(stdout, "  Backup directory exists")
		} else {
			fmt.Fprintln(stdout, "  Backup directory does not exist")
		}
	}
	return nil
}
