// Package storage persists generated decks. LocalStore writes atomically
// to a directory; S3Store uploads to an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store saves a finished deck under key and returns where it ended up.
type Store interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// LocalStore writes files below Dir.
type LocalStore struct {
	Dir string
}

// NewLocalStore returns a store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

// Save writes data to Dir/key. The file appears only once it is complete.
func (s *LocalStore) Save(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := WriteFileAtomic(target, data, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

func (s *LocalStore) path(key string) (string, error) {
	if filepath.IsAbs(key) {
		return filepath.Clean(key), nil
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid output key %q", key)
	}
	return filepath.Join(s.Dir, clean), nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place. On failure no file is left at path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
