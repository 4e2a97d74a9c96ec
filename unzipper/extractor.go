package unzipper

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/archive"
	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/archive/ziplegacy"
	"gitlab.com/gitlab-org/bulk-unzipper/helpers/archives"
)

// NestedSuffix is the case-sensitive name suffix that marks an entry as an
// archive to unpack in turn.
const NestedSuffix = ".zip"

// Stats describes what a single top-level Extract call did.
type Stats struct {
	// Entries is the number of entries in the top-level archive.
	Entries int
	// Size of the top-level archive in bytes.
	Size int64

	Nested       int
	NestedFailed int
	// NestedSkipped counts archives left on disk because of MaxDepth or
	// because the batch was interrupted.
	NestedSkipped int
}

// Extractor unpacks a zip file and every zip file nested in it into one
// destination directory.
type Extractor struct {
	// MaxDepth is the deepest level of nesting that gets unpacked, the
	// top-level archive being level 0. Zero means no limit.
	MaxDepth int

	// NewExtractor overrides the backend registered for archive.Zip.
	NewExtractor archive.NewExtractorFunc

	Metrics *Metrics
}

// Extract reports whether zipPath could be opened and fully extracted into
// destDir. Failures are logged, never returned. Failures of nested archives
// don't affect the result.
func (e *Extractor) Extract(ctx context.Context, zipPath, destDir string) bool {
	_, err := e.ExtractWithStats(ctx, zipPath, destDir)
	return err == nil
}

// ExtractWithStats is Extract returning the counters of the call. The error
// is the reason Extract would have returned false; it has been logged
// already.
func (e *Extractor) ExtractWithStats(ctx context.Context, zipPath, destDir string) (Stats, error) {
	var stats Stats

	open := func() (*os.File, error) { return os.Open(zipPath) }

	err := e.extract(ctx, open, destDir, 0, &stats)
	if err != nil {
		logrus.WithField("archive", zipPath).WithError(err).Errorln("Extraction failed")
	}

	return stats, err
}

func (e *Extractor) extract(ctx context.Context, open func() (*os.File, error), destDir string, depth int, stats *Stats) error {
	f, err := open()
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	zr, err := ziplegacy.NewReader(f, fi.Size())
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	if depth == 0 {
		stats.Entries = len(zr.File)
		stats.Size = fi.Size()
	}

	extractor, err := e.newExtractor(f, fi.Size(), destDir)
	if err != nil {
		return err
	}

	if err := extractor.Extract(ctx); err != nil {
		return fmt.Errorf("extracting archive: %w", err)
	}

	for _, file := range zr.File {
		if !strings.HasSuffix(file.Name, NestedSuffix) {
			continue
		}

		e.extractNested(ctx, file, destDir, depth+1, stats)
	}

	return nil
}

func (e *Extractor) newExtractor(r io.ReaderAt, size int64, dir string) (archive.Extractor, error) {
	if e.NewExtractor != nil {
		return e.NewExtractor(r, size, dir)
	}

	return archive.NewExtractor(archive.Zip, r, size, dir)
}

// extractNested stages file next to the rest of the extracted content,
// unpacks it into the same destDir and removes the staged copy again.
// Failures are logged only.
func (e *Extractor) extractNested(ctx context.Context, file *zip.File, destDir string, depth int, stats *Stats) {
	logger := logrus.WithFields(logrus.Fields{
		"archive": file.Name,
		"depth":   depth,
	})

	if e.MaxDepth > 0 && depth > e.MaxDepth {
		logger.Warningf("Nested archive exceeds the maximum depth of %d, leaving it as a file", e.MaxDepth)
		stats.NestedSkipped++
		e.Metrics.observeNested(statusSkipped)
		return
	}

	if ctx.Err() != nil {
		logger.Warningln("Interrupted, leaving nested archive as a file")
		stats.NestedSkipped++
		e.Metrics.observeNested(statusSkipped)
		return
	}

	rel, err := archives.EntryName(file.Name)
	if err != nil {
		logger.WithError(err).Warningln("Skipping nested archive")
		stats.NestedFailed++
		e.Metrics.observeNested(statusFailure)
		return
	}

	logger.Debugln("Found nested archive")

	err = e.extractStaged(ctx, file, destDir, rel, depth, stats)
	if err != nil {
		logger.WithError(err).Warningln("Nested archive extraction failed")
		stats.NestedFailed++
		e.Metrics.observeNested(statusFailure)
		return
	}

	stats.Nested++
	e.Metrics.observeNested(statusSuccess)
}

// extractStaged works below an os.Root on destDir, so that links extracted
// from the archive can't redirect the staged copy outside of it.
func (e *Extractor) extractStaged(ctx context.Context, file *zip.File, destDir, rel string, depth int, stats *Stats) error {
	root, err := os.OpenRoot(destDir)
	if err != nil {
		return fmt.Errorf("staging nested archive: %w", err)
	}
	defer func() { _ = root.Close() }()

	err = withWritableParent(root, rel, func() error { return stage(root, file, rel) })
	if err == nil {
		open := func() (*os.File, error) { return root.Open(rel) }
		err = e.extract(ctx, open, destDir, depth, stats)
	}

	rmErr := withWritableParent(root, rel, func() error { return root.Remove(rel) })
	if rmErr != nil && !os.IsNotExist(rmErr) {
		logrus.WithField("archive", file.Name).WithError(rmErr).Warningln("Removing staged archive")
	}

	return archives.RootError(destDir, rel, err)
}

// stage writes the raw content of file, read from the parent archive, to rel.
func stage(root *os.Root, file *zip.File, rel string) error {
	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("staging nested archive: %w", err)
	}
	defer func() { _ = in.Close() }()

	if err := root.MkdirAll(filepath.Dir(rel), 0o777); err != nil {
		return fmt.Errorf("staging nested archive: %w", err)
	}

	// the bulk extraction might have left a read-only copy at rel
	_ = root.Remove(rel)
	out, err := root.OpenFile(rel, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("staging nested archive: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("staging nested archive: %w", err)
	}

	return out.Close()
}

// withWritableParent runs fn and, when the directory holding rel refuses it,
// retries with owner write access granted on that directory for the
// duration of the call. Backends that restore directory modes from the
// archive can leave a read-only directory behind.
func withWritableParent(root *os.Root, rel string, fn func() error) error {
	err := fn()
	if !errors.Is(err, fs.ErrPermission) {
		return err
	}

	parent := filepath.Dir(rel)
	fi, statErr := root.Stat(parent)
	if statErr != nil || fi.Mode().Perm()&0o700 == 0o700 {
		return err
	}

	if chErr := root.Chmod(parent, fi.Mode().Perm()|0o700); chErr != nil {
		return err
	}
	defer func() { _ = root.Chmod(parent, fi.Mode().Perm()) }()

	return fn()
}
