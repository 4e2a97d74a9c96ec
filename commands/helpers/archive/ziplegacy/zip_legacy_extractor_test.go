//go:build !integration

package ziplegacy

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, method uint16, files map[string]string) *bytes.Reader {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for name, content := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return bytes.NewReader(buf.Bytes())
}

func TestExtract(t *testing.T) {
	tests := map[string]uint16{
		"store":   zip.Store,
		"deflate": zip.Deflate,
		"zstd":    zstd.ZipMethodWinZip,
	}

	for tn, method := range tests {
		t.Run(tn, func(t *testing.T) {
			r := writeZip(t, method, map[string]string{
				"a.txt":     "alpha",
				"dir/b.txt": "bravo",
			})
			dir := t.TempDir()

			extractor, err := NewExtractor(r, r.Size(), dir)
			require.NoError(t, err)
			require.NoError(t, extractor.Extract(context.Background()))

			data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
			require.NoError(t, err)
			assert.Equal(t, "alpha", string(data))

			data, err = os.ReadFile(filepath.Join(dir, "dir", "b.txt"))
			require.NoError(t, err)
			assert.Equal(t, "bravo", string(data))
		})
	}
}

func TestExtractNotAZip(t *testing.T) {
	r := bytes.NewReader([]byte("not a zip"))

	extractor, err := NewExtractor(r, r.Size(), t.TempDir())
	require.NoError(t, err)
	assert.ErrorIs(t, extractor.Extract(context.Background()), zip.ErrFormat)
}
