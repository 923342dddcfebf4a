package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"bookmark-backup/src/discover"
)

const timestampLayout = "20060102_150405"

// Copy is one planned backup of a profile's bookmarks file.
type Copy struct {
	Profile discover.Profile
	Dest    string
}

// Prune is one planned deletion of a surplus backup file.
type Prune struct {
	ProfileLabel string
	Path         string
	Timestamp    string
}

// Plan is the full set of actions one run would perform. Building a plan
// reads the destination directory but never writes to it, so a plan can be
// rendered verbatim in dry-run mode.
type Plan struct {
	Copies []Copy
	Prunes []Prune
}

// BuildPlan computes the copies and per-profile rotation deletes for one
// run. keep is the retention count; surviving backups per profile are the
// keep most recent by embedded timestamp, counting the planned copies.
func BuildPlan(profiles []discover.Profile, destDir string, keep int, now time.Time) Plan {
	var plan Plan
	planned := map[string]bool{}
	newPerPrefix := map[string]int{}
	ts := now.Format(timestampLayout)

	for _, p := range profiles {
		prefix := backupPrefix(p.Browser, p.Name)
		name := prefix + ts + ".json"
		// Same-second repeat runs must not overwrite: disambiguate with a
		// numeric suffix instead.
		for n := 1; planned[name] || exists(filepath.Join(destDir, name)); n++ {
			name = fmt.Sprintf("%s%s-%d.json", prefix, ts, n)
		}
		planned[name] = true
		newPerPrefix[prefix]++
		plan.Copies = append(plan.Copies, Copy{Profile: p, Dest: filepath.Join(destDir, name)})
	}

	for prefix, added := range newPerPrefix {
		existing := listBackups(destDir, prefix)
		surplus := len(existing) + added - keep
		if surplus <= 0 {
			continue
		}
		if surplus > len(existing) {
			surplus = len(existing)
		}
		label := strings.TrimSuffix(prefix, "_")
		for _, old := range existing[:surplus] {
			plan.Prunes = append(plan.Prunes, Prune{
				ProfileLabel: label,
				Path:         filepath.Join(destDir, old.name),
				Timestamp:    old.timestamp,
			})
		}
	}

	sort.Slice(plan.Prunes, func(i, j int) bool { return plan.Prunes[i].Path < plan.Prunes[j].Path })
	return plan
}

func backupPrefix(browserLabel, profileName string) string {
	token := strings.ReplaceAll(strings.ToLower(profileName), " ", "_")
	return fmt.Sprintf("%s_bookmarks_%s_", browserLabel, token)
}

type backupFile struct {
	name      string
	timestamp string
	suffix    int
}

// listBackups returns the existing backups for one profile prefix, oldest
// first by embedded timestamp (numeric suffix breaks same-second ties).
func listBackups(destDir, prefix string) []backupFile {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return nil
	}
	var files []backupFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, suffix, ok := parseBackupName(e.Name(), prefix)
		if !ok {
			continue
		}
		files = append(files, backupFile{name: e.Name(), timestamp: ts, suffix: suffix})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].timestamp != files[j].timestamp {
			return files[i].timestamp < files[j].timestamp
		}
		return files[i].suffix < files[j].suffix
	})
	return files
}

// parseBackupName extracts the embedded timestamp and collision suffix from
// a backup file name of the form <prefix>YYYYMMDD_HHMMSS[-n].json.
func parseBackupName(name, prefix string) (string, int, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
		return "", 0, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json")
	ts := rest
	suffix := 0
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		ts = rest[:i]
		n, err := strconv.Atoi(rest[i+1:])
		if err != nil || n < 1 {
			return "", 0, false
		}
		suffix = n
	}
	if _, err := time.Parse(timestampLayout, ts); err != nil {
		return "", 0, false
	}
	return ts, suffix, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
