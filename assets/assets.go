// Package assets resolves named binary assets such as logos and shape
// icons. A missing asset is reported as ErrNotFound so callers can fall
// back instead of failing.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a resolver has no asset under a name.
var ErrNotFound = errors.New("asset not found")

// Resolver looks up asset bytes by name.
type Resolver interface {
	Resolve(ctx context.Context, name string) ([]byte, error)
}

// DirResolver reads assets from the local file system. Relative names are
// resolved against Root; absolute names are read as given.
type DirResolver struct {
	Root string
}

// Resolve reads the named file.
func (d DirResolver) Resolve(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(d.Root, filepath.FromSlash(name))
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", name, err)
	}
	return data, nil
}

// MapResolver serves assets from memory.
type MapResolver map[string][]byte

// Resolve returns the asset stored under name.
func (m MapResolver) Resolve(_ context.Context, name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

// Chain tries each resolver in order and returns the first hit. Errors
// other than ErrNotFound stop the search.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(ctx context.Context, name string) ([]byte, error) {
	for _, r := range c {
		if r == nil {
			continue
		}
		data, err := r.Resolve(ctx, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
