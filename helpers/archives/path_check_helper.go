package archives

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var errOutsideDirectory = errors.New("path resolves outside of the extraction directory")

// isPathInsideDirectory reports whether path is dir itself or one of its
// descendants. Both are expected to be cleaned.
func isPathInsideDirectory(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EntryName turns an archive entry name into a path relative to the
// extraction directory, refusing names that would escape it.
func EntryName(name string) (string, error) {
	rel := filepath.Join(".", filepath.FromSlash(name))
	if filepath.IsAbs(rel) || !isPathInsideDirectory(".", rel) {
		return "", &os.PathError{Op: "extract", Path: name, Err: errOutsideDirectory}
	}

	return rel, nil
}

// symlinkTargetInside checks that a link created at path pointing to target
// doesn't lead outside of dir.
func symlinkTargetInside(dir, path, target string) error {
	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(filepath.Dir(path), target)
	}

	if !isPathInsideDirectory(filepath.Clean(dir), filepath.Clean(resolved)) {
		return &os.PathError{Op: "symlink", Path: path, Err: errOutsideDirectory}
	}

	return nil
}

// resolvesOutside follows the links already on disk for dir/rel and reports
// whether they lead outside of dir. Only the deepest existing part of the
// path is resolved.
func resolvesOutside(dir, rel string) bool {
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return false
	}

	for path := filepath.Join(dir, rel); isPathInsideDirectory(filepath.Clean(dir), path); path = filepath.Dir(path) {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			return !isPathInsideDirectory(realDir, resolved)
		}
	}

	return false
}

// RootError marks err as an escape from dir when the links on disk for rel
// point outside of it. os.Root refuses such operations, this makes them
// recognizable as skipped entries rather than failures.
func RootError(dir, rel string, err error) error {
	if err == nil || IsOutsideDirectory(err) || !resolvesOutside(dir, rel) {
		return err
	}

	return &os.PathError{Op: "extract", Path: filepath.ToSlash(rel), Err: errOutsideDirectory}
}

// pathErrorTracker decides which entry errors are worth logging. The same
// operation failing with the same cause is only reported once.
type pathErrorTracker struct {
	seen map[string]struct{}
}

func newPathErrorTracker() *pathErrorTracker {
	return &pathErrorTracker{seen: make(map[string]struct{})}
}

func (t *pathErrorTracker) actionable(err error) bool {
	if err == nil {
		return false
	}

	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		return true
	}

	key := pathErr.Op + ": " + pathErr.Err.Error()
	if _, ok := t.seen[key]; ok {
		return false
	}
	t.seen[key] = struct{}{}

	return true
}

// IsOutsideDirectory reports whether err comes from an entry that would have
// been written outside of the extraction directory.
func IsOutsideDirectory(err error) bool {
	return errors.Is(err, errOutsideDirectory)
}
