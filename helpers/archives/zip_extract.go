package archives

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// zipExtraction writes entries below dir. Every file system operation goes
// through root, so links created by earlier entries can't redirect later
// ones outside of dir.
type zipExtraction struct {
	root *os.Root
	dir  string
}

type extractedEntry struct {
	file *zip.File
	rel  string
}

func (x *zipExtraction) directoryEntry(rel string) error {
	err := x.root.Mkdir(rel, 0o777)

	// The error that directory does exists is not a error for us
	if os.IsExist(err) {
		err = nil
	}
	return err
}

func (x *zipExtraction) symlinkEntry(file *zip.File, rel string) error {
	in, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	target := string(data)
	if err := symlinkTargetInside(x.dir, filepath.Join(x.dir, rel), target); err != nil {
		return err
	}

	// Remove symlink before creating a new one, otherwise we can error that file does exist
	_ = x.root.Remove(rel)
	if err := x.root.Symlink(target, rel); err != nil {
		return err
	}

	// the target text may only look harmless through links made earlier
	if resolvesOutside(x.dir, rel) {
		_ = x.root.Remove(rel)
		return &os.PathError{Op: "symlink", Path: filepath.Join(x.dir, rel), Err: errOutsideDirectory}
	}

	return nil
}

func (x *zipExtraction) fileEntry(file *zip.File, rel string) error {
	in, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	// Remove file before creating a new one, the old one might be read-only
	_ = x.root.Remove(rel)
	out, err := x.root.OpenFile(rel, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

func (x *zipExtraction) entry(file *zip.File, rel string) (bool, error) {
	// Create all parents to extract the file
	if err := x.root.MkdirAll(filepath.Dir(rel), 0o777); err != nil {
		return false, err
	}

	switch file.Mode() & os.ModeType {
	case os.ModeDir:
		return true, x.directoryEntry(rel)

	case os.ModeSymlink:
		return true, x.symlinkEntry(file, rel)

	case os.ModeNamedPipe, os.ModeSocket, os.ModeDevice:
		// Ignore the files that of these types
		logrus.Warningf("File ignored: %q", file.Name)
		return false, nil
	}

	return true, x.fileEntry(file, rel)
}

// updateMetadata restores modification times and file modes. Links are left
// alone and directories keep their default mode, so that later writes into
// them, nested archives included, aren't refused.
func (x *zipExtraction) updateMetadata(entry extractedEntry) error {
	mode := entry.file.Mode()
	if mode&os.ModeSymlink != 0 {
		return nil
	}

	if !entry.file.Modified.IsZero() {
		if err := x.root.Chtimes(entry.rel, time.Now(), entry.file.Modified); err != nil {
			return err
		}
	}

	if mode.IsDir() {
		return nil
	}

	return x.root.Chmod(entry.rel, mode.Perm())
}

// ExtractZipArchive extracts every entry of archive below dir, recreating the
// directory structure stored in the archive. Entries that would end up
// outside of dir, directly or through links on disk, are skipped with a
// warning. Failing entries don't stop the extraction of the remaining ones,
// but are returned as a combined error.
func ExtractZipArchive(archive *zip.Reader, dir string) error {
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return err
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return err
	}
	defer func() { _ = root.Close() }()

	x := &zipExtraction{root: root, dir: dir}
	tracker := newPathErrorTracker()
	extracted := make([]extractedEntry, 0, len(archive.File))

	var result *multierror.Error

	for _, file := range archive.File {
		rel, err := EntryName(file.Name)
		if err != nil {
			if tracker.actionable(err) {
				logrus.Warningf("%s: %s (suppressing repeats)", file.Name, err)
			}
			continue
		}

		ok, err := x.entry(file, rel)
		if err != nil {
			err = RootError(dir, rel, err)
			if tracker.actionable(err) {
				logrus.Warningf("%s: %s (suppressing repeats)", file.Name, err)
			}
			if !os.IsExist(err) && !IsOutsideDirectory(err) {
				result = multierror.Append(result, err)
			}
			continue
		}

		if ok {
			extracted = append(extracted, extractedEntry{file: file, rel: rel})
		}
	}

	for _, entry := range extracted {
		if err := x.updateMetadata(entry); tracker.actionable(err) {
			logrus.Warningf("%s: %s (suppressing repeats)", entry.file.Name, err)
		}
	}

	return result.ErrorOrNil()
}

func ExtractZipFile(fileName, dir string) error {
	archive, err := zip.OpenReader(fileName)
	if err != nil {
		return err
	}
	defer func() { _ = archive.Close() }()

	return ExtractZipArchive(&archive.Reader, dir)
}
