package unzipper

import "errors"

var (
	// ErrMissingDirectory is returned by Run when either the source or the
	// destination directory is not set.
	ErrMissingDirectory = errors.New("source and destination directories are required")

	// ErrEmptyBatch is returned by Run when the source directory holds no
	// zip files.
	ErrEmptyBatch = errors.New("no zip files found in the source directory")
)
