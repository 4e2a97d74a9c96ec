package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

var (
	// ErrUnsupportedArchiveFormat is returned if an extractor format or
	// backend requested has not been registered.
	ErrUnsupportedArchiveFormat = errors.New("unsupported archive format")
)

// Format type for specifying format.
type Format string

// Formats that can be extracted.
const (
	Zip Format = "zip"
)

var (
	mu         sync.RWMutex
	extractors = make(map[Format]NewExtractorFunc)
	backends   = make(map[string]NewExtractorFunc)
)

// Extractor is an interface for the Extract method.
//
//go:generate mockery --name=Extractor --inpackage
type Extractor interface {
	Extract(ctx context.Context) error
}

// NewExtractorFunc is a function that can be registered (with Register()) and
// used to instantiate a new extractor (with NewExtractor()).
type NewExtractorFunc func(r io.ReaderAt, size int64, dir string) (Extractor, error)

// Register registers a new extractor, overriding the extractor for the
// format provided. The previous extractor is returned.
func Register(format Format, extractor NewExtractorFunc) (prevExtractor NewExtractorFunc) {
	mu.Lock()
	defer mu.Unlock()

	prevExtractor = extractors[format]
	if extractor != nil {
		extractors[format] = extractor
	}
	return
}

// RegisterBackend makes an extractor implementation selectable by name with
// UseBackend.
func RegisterBackend(name string, extractor NewExtractorFunc) {
	mu.Lock()
	defer mu.Unlock()

	backends[name] = extractor
}

// UseBackend registers the backend called name as the extractor of format.
func UseBackend(format Format, name string) error {
	mu.RLock()
	fn := backends[name]
	mu.RUnlock()

	if fn == nil {
		return fmt.Errorf("%q backend (options: %v): %w", name, Backends(), ErrUnsupportedArchiveFormat)
	}

	Register(format, fn)
	return nil
}

// Backends returns the sorted names of the registered backends.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// NewExtractor returns a new Extractor of the specified format.
//
// The extractor will extract files to the directory provided.
func NewExtractor(format Format, r io.ReaderAt, size int64, dir string) (Extractor, error) {
	mu.RLock()
	fn := extractors[format]
	mu.RUnlock()

	if fn == nil {
		return nil, fmt.Errorf("%q format: %w", format, ErrUnsupportedArchiveFormat)
	}

	return fn(r, size, dir)
}
