package backup

import (
	"fmt"
	"io"
	"os"

	"bookmark-backup/src/logging"
)

// Failure records one non-fatal per-file error. Failures never abort the
// remaining work; they accumulate into the end-of-run summary.
type Failure struct {
	Op   string // "copy" or "prune"
	Path string
	Err  error
}

func (f Failure) String() string {
	return fmt.Sprintf("%s %s: %v", f.Op, f.Path, f.Err)
}

// Result summarizes one executed plan.
type Result struct {
	Copied   []string
	Pruned   []string
	Failures []Failure
}

// Failed reports whether any per-file action failed.
func (r Result) Failed() bool {
	return len(r.Failures) > 0
}

// Execute applies a plan: copies first, then rotation deletes. A failure on
// one file is recorded and the rest proceed.
func Execute(plan Plan) Result {
	log := logging.GetLogger("backup")
	var res Result
	for _, c := range plan.Copies {
		if err := copyFile(c.Profile.BookmarksPath, c.Dest); err != nil {
			log.Warn().Err(err).Str("source", c.Profile.BookmarksPath).Msg("backup copy failed")
			res.Failures = append(res.Failures, Failure{Op: "copy", Path: c.Profile.BookmarksPath, Err: err})
			continue
		}
		log.Info().Str("profile", c.Profile.Name).Str("dest", c.Dest).Msg("backed up bookmarks")
		res.Copied = append(res.Copied, c.Dest)
	}
	for _, p := range plan.Prunes {
		if err := os.Remove(p.Path); err != nil {
			log.Warn().Err(err).Str("path", p.Path).Msg("could not remove old backup")
			res.Failures = append(res.Failures, Failure{Op: "prune", Path: p.Path, Err: err})
			continue
		}
		log.Info().Str("path", p.Path).Msg("removed old backup")
		res.Pruned = append(res.Pruned, p.Path)
	}
	return res
}

// copyFile copies src to dst verbatim. dst is created exclusively so a
// collision can never silently overwrite an earlier backup.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}
