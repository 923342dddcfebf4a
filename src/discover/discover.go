package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"bookmark-backup/src/browser"
	"bookmark-backup/src/logging"
)

// DefaultUsersRoot is the WSL mount point for Windows user directories.
const DefaultUsersRoot = "/mnt/c/Users"

// EnvUsersRoot overrides the Windows users mount point when set. Useful on
// non-standard WSL mounts and in tests.
const EnvUsersRoot = "BOOKMARK_BACKUP_USERS_ROOT"

// UsersRoot returns the Windows users mount point, honoring the env
// override.
func UsersRoot() string {
	if custom := os.Getenv(EnvUsersRoot); custom != "" {
		return custom
	}
	return DefaultUsersRoot
}

// BookmarksFileName is the bookmark file Chromium-family browsers keep in
// each profile directory.
const BookmarksFileName = "Bookmarks"

// Profile is one discovered browser profile containing a bookmarks file.
// Discovered fresh each run, never persisted.
type Profile struct {
	User          string
	Browser       string
	Name          string
	BookmarksPath string
}

// ListUsers returns the account directory names visible under the Windows
// users mount. Hidden directories and directories the current user cannot
// read are skipped; an empty result is a valid outcome.
func ListUsers(usersRoot string) []string {
	log := logging.GetLogger("discover")
	entries, err := os.ReadDir(usersRoot)
	if err != nil {
		log.Debug().Err(err).Str("root", usersRoot).Msg("users mount not readable")
		return nil
	}
	var users []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		// Probe readability so inaccessible accounts are skipped up front.
		if _, err := os.ReadDir(filepath.Join(usersRoot, e.Name())); err != nil {
			log.Debug().Err(err).Str("user", e.Name()).Msg("skipping inaccessible account")
			continue
		}
		users = append(users, e.Name())
	}
	sort.Strings(users)
	return users
}

// basePaths returns the candidate browser data directories for one account.
// Catalog browsers are probed under both AppData roots; a custom selection
// is either an absolute mount path or a path relative to the account dir.
func basePaths(usersRoot, user string, sel browser.Selection) []string {
	userPath := filepath.Join(usersRoot, user)
	if sel.IsCustom() {
		p := strings.ReplaceAll(sel.CustomPath, `\`, "/")
		if filepath.IsAbs(p) {
			return []string{filepath.Clean(p)}
		}
		return []string{filepath.Join(userPath, p)}
	}
	b, ok := browser.Lookup(sel.Key)
	if !ok {
		return nil
	}
	var paths []string
	for _, rel := range b.WindowsPaths {
		paths = append(paths,
			filepath.Join(userPath, "AppData", "Local", rel),
			filepath.Join(userPath, "AppData", "Roaming", rel),
		)
	}
	return paths
}

// FindProfiles scans one account for browser profile directories containing
// a bookmarks file. A permission failure on one candidate path skips that
// path only; it never aborts the rest of the scan.
func FindProfiles(usersRoot, user string, sel browser.Selection) []Profile {
	log := logging.GetLogger("discover")
	var profiles []Profile
	for _, base := range basePaths(usersRoot, user, sel) {
		if _, err := os.Stat(base); err != nil {
			continue
		}
		// Chromium keeps profiles under "User Data"; custom layouts may
		// keep them directly in the data directory.
		for _, dataDir := range []string{filepath.Join(base, "User Data"), base} {
			found := profilesIn(dataDir, user, sel, log)
			if len(found) > 0 {
				profiles = append(profiles, found...)
				break
			}
		}
	}
	return profiles
}

func profilesIn(dataDir, user string, sel browser.Selection, log zerolog.Logger) []Profile {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Str("path", dataDir).Msg("skipping unreadable data directory")
		}
		return nil
	}
	var profiles []Profile
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, "Default") && !strings.HasPrefix(name, "Profile") {
			continue
		}
		bookmarks := filepath.Join(dataDir, name, BookmarksFileName)
		if info, err := os.Stat(bookmarks); err != nil || info.IsDir() {
			continue
		}
		profiles = append(profiles, Profile{
			User:          user,
			Browser:       sel.FileLabel(),
			Name:          name,
			BookmarksPath: bookmarks,
		})
	}
	return profiles
}
