package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bookmark-backup/src/browser"
)

// ErrCancelled is returned when the user aborts an interactive prompt
// (EOF on stdin).
var ErrCancelled = errors.New("setup cancelled")

// Prompter runs question/answer prompts over an injected reader and
// writer so setup logic is testable without a terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s", question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		return "", ErrCancelled
	}
	return strings.TrimSpace(line), nil
}

// SelectUser prompts for a Windows account from the enumerated list.
func SelectUser(p *Prompter, users []string) (string, error) {
	if len(users) == 0 {
		return "", errors.New("no accessible Windows user accounts found")
	}
	fmt.Fprintln(p.out, "\n=== Windows User Selection ===")
	fmt.Fprintln(p.out, "Available Windows user accounts:")
	for i, u := range users {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, u)
	}
	for {
		ans, err := p.ask(fmt.Sprintf("\nSelect user account (1-%d): ", len(users)))
		if err != nil {
			return "", err
		}
		idx, err := strconv.Atoi(ans)
		if err == nil && idx >= 1 && idx <= len(users) {
			return users[idx-1], nil
		}
		fmt.Fprintln(p.out, "Invalid selection. Please try again.")
	}
}

// SelectBrowser prompts for a catalog browser or a custom data directory.
func SelectBrowser(p *Prompter) (browser.Selection, error) {
	fmt.Fprintln(p.out, "\n=== Browser Selection ===")
	fmt.Fprintln(p.out, "Select the browser you want to backup:")
	for i, b := range browser.Catalog {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, b.Name)
	}
	customIdx := len(browser.Catalog) + 1
	fmt.Fprintf(p.out, "  %d. Custom browser (specify path)\n", customIdx)
	for {
		ans, err := p.ask(fmt.Sprintf("\nSelect browser (1-%d): ", customIdx))
		if err != nil {
			return browser.Selection{}, err
		}
		idx, err := strconv.Atoi(ans)
		if err != nil || idx < 1 || idx > customIdx {
			fmt.Fprintln(p.out, "Invalid selection. Please try again.")
			continue
		}
		if idx < customIdx {
			return browser.Selection{Key: browser.Catalog[idx-1].Key}, nil
		}
		path, err := p.ask("Enter custom browser data directory path: ")
		if err != nil {
			return browser.Selection{}, err
		}
		if path == "" {
			fmt.Fprintln(p.out, "Please enter a valid path.")
			continue
		}
		return browser.Selection{CustomPath: path}, nil
	}
}

// PromptBackupDir prompts for the destination directory, suggesting a
// default. Unwritable paths are reported and re-prompted, never accepted.
func PromptBackupDir(p *Prompter, suggested string) (string, error) {
	fmt.Fprintln(p.out, "\n=== Backup Directory Setup ===")
	fmt.Fprintln(p.out, "Please specify where to store your bookmark backups.")
	if suggested != "" {
		fmt.Fprintf(p.out, "Suggested location: %s\n", suggested)
	}
	fmt.Fprintln(p.out, "\nExamples:")
	fmt.Fprintln(p.out, "  - OneDrive: /mnt/c/Users/username/OneDrive/bookmarks")
	fmt.Fprintln(p.out, "  - Network drive: /mnt/networkdrive/backups")
	fmt.Fprintln(p.out, "  - Local folder: /home/username/bookmarks")
	for {
		var dir string
		if suggested != "" {
			ans, err := p.ask("\nUse suggested location? (y/n): ")
			if err != nil {
				return "", err
			}
			switch strings.ToLower(ans) {
			case "y", "yes", "":
				dir = suggested
			case "n", "no":
			default:
				fmt.Fprintln(p.out, "Please enter 'y' for yes or 'n' for no.")
				continue
			}
		}
		if dir == "" {
			ans, err := p.ask("Enter backup directory path: ")
			if err != nil {
				return "", err
			}
			if ans == "" {
				fmt.Fprintln(p.out, "Please enter a valid path.")
				continue
			}
			dir = ans
		}
		if err := EnsureWritableDir(dir); err != nil {
			fmt.Fprintf(p.out, "Cannot use directory %s: %v\n", dir, err)
			continue
		}
		fmt.Fprintf(p.out, "Backup directory set to: %s\n", dir)
		return dir, nil
	}
}

// PromptRetention prompts for the number of backups to keep per profile.
func PromptRetention(p *Prompter) (int, error) {
	fmt.Fprintln(p.out, "\n=== Backup Retention Setup ===")
	fmt.Fprintln(p.out, "How many backup files should be kept?")
	fmt.Fprintln(p.out, "  1. Keep 1 backup (only most recent)")
	fmt.Fprintln(p.out, "  2. Keep 5 backups")
	fmt.Fprintln(p.out, "  3. Keep 10 backups")
	fmt.Fprintln(p.out, "  4. Keep 30 backups (recommended)")
	fmt.Fprintln(p.out, "  5. Custom number")
	presets := map[string]int{"1": 1, "2": 5, "3": 10, "4": DefaultMaxBackups}
	for {
		ans, err := p.ask("\nSelect retention option (1-5): ")
		if err != nil {
			return 0, err
		}
		if n, ok := presets[ans]; ok {
			return n, nil
		}
		if ans != "5" {
			fmt.Fprintln(p.out, "Invalid selection. Please choose 1-5.")
			continue
		}
		custom, err := p.ask("Enter custom number of backups to keep: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(custom)
		if err != nil || n <= 0 {
			fmt.Fprintln(p.out, "Please enter a valid positive number.")
			continue
		}
		return n, nil
	}
}

// EnsureWritableDir creates dir if needed and verifies it accepts writes
// by creating and removing a probe file.
func EnsureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return fmt.Errorf("directory is not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// RunSetup walks through every setting in order and returns a fully
// populated configuration. users is the list of discoverable Windows
// accounts; suggestedDir seeds the destination prompt and may be empty.
func RunSetup(p *Prompter, users []string, suggestedDir string) (Config, error) {
	var cfg Config
	sel, err := SelectBrowser(p)
	if err != nil {
		return cfg, err
	}
	cfg.Browser = sel

	user, err := SelectUser(p, users)
	if err != nil {
		return cfg, err
	}
	cfg.WindowsUser = user

	dir, err := PromptBackupDir(p, suggestedDir)
	if err != nil {
		return cfg, err
	}
	cfg.BackupPath = dir

	keep, err := PromptRetention(p)
	if err != nil {
		return cfg, err
	}
	cfg.MaxBackups = keep
	return cfg, nil
}

// SuggestedBackupDir derives a conventional OneDrive destination under the
// first discoverable account. Empty when no accounts are visible.
func SuggestedBackupDir(usersRoot string, users []string) string {
	if len(users) == 0 {
		return ""
	}
	return filepath.Join(usersRoot, users[0], "OneDrive", "bookmarks")
}
