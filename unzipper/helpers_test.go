//go:build !integration

package unzipper

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	name string
	data []byte
	mode os.FileMode
}

func zipBytes(t *testing.T, entries ...entry) []byte {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, e := range entries {
		fh := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if e.mode != 0 {
			fh.SetMode(e.mode)
		}

		w, err := zw.CreateHeader(fh)
		require.NoError(t, err)
		if e.data != nil {
			_, err = w.Write(e.data)
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

func writeZip(t *testing.T, path string, entries ...entry) string {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o777))
	require.NoError(t, os.WriteFile(path, zipBytes(t, entries...), 0o600))

	return path
}

func assertFile(t *testing.T, path string, expected []byte) {
	t.Helper()

	data, err := os.ReadFile(path)
	if assert.NoError(t, err) {
		assert.Equal(t, expected, data)
	}
}
