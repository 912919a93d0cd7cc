// Package loader provides the SourceLoader capability the resolver uses to
// read the primary document and its includes. Passing this in as a value,
// rather than reaching for the filesystem directly, lets callers substitute
// an in-memory fixture in tests and keeps synchronous and asynchronous
// hosts (local files vs. HTTP includes) behind one interface.
package loader

import (
	"context"
	"fmt"
	"os"
)

// SourceLoader resolves a canonical path or URL to file bytes. Load must be
// safe for concurrent use by multiple goroutines against the same loader.
type SourceLoader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileLoader reads from the local filesystem. It is the default loader used
// when parsing from a file path.
type FileLoader struct{}

func NewFileLoader() *FileLoader { return &FileLoader{} }

func (FileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return data, nil
}

// MapLoader serves fixed, in-memory content keyed by path — for tests that
// need includes without touching a real filesystem.
type MapLoader map[string][]byte

func (m MapLoader) Load(_ context.Context, path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("loader: no content registered for %q", path)
	}
	return data, nil
}
