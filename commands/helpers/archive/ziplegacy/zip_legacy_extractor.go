package ziplegacy

import (
	"archive/zip"
	"context"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"

	"gitlab.com/gitlab-org/bulk-unzipper/commands/helpers/archive"
	"gitlab.com/gitlab-org/bulk-unzipper/helpers/archives"
)

const Backend = "legacy"

func init() {
	archive.Register(archive.Zip, NewExtractor)
	archive.RegisterBackend(Backend, NewExtractor)
}

// extractor is a zip stream extractor.
type extractor struct {
	r    io.ReaderAt
	size int64
	dir  string
}

// NewExtractor returns a new Zip Extractor.
func NewExtractor(r io.ReaderAt, size int64, dir string) (archive.Extractor, error) {
	return &extractor{r: r, size: size, dir: dir}, nil
}

// NewReader opens a zip reader that, on top of the methods archive/zip
// understands, decodes zstd compressed entries and uses a faster deflate
// implementation.
func NewReader(r io.ReaderAt, size int64) (*zip.Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	zr.RegisterDecompressor(zip.Deflate, flate.NewReader)
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	return zr, nil
}

// Extract extracts files from the reader to the directory passed to
// NewExtractor.
func (e *extractor) Extract(ctx context.Context) error {
	zr, err := NewReader(e.r, e.size)
	if err != nil {
		return err
	}

	return archives.ExtractZipArchive(zr, e.dir)
}
