// Package disk implements storage.Storage over the local filesystem.
package disk

import (
	"context"
	"io"
	"os"

	"github.com/splitstream/lzindex/storage"
)

// Storage reads and writes files on the local filesystem. Paths are used
// as given; relative paths resolve against the process working directory.
type Storage struct{}

// Interface compliance.
var _ storage.Storage = (*Storage)(nil)

// New returns a local-filesystem storage.
func New() *Storage {
	return &Storage{}
}

// Exists reports whether a file exists at path.
func (s *Storage) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Length returns the size in bytes of the file at path.
func (s *Storage) Length(_ context.Context, path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Open opens the file at path for reading.
func (s *Storage) Open(_ context.Context, path string) (storage.File, error) {
	return os.Open(path)
}

// Create creates or truncates the file at path for writing.
func (s *Storage) Create(_ context.Context, path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Rename moves src to dst, replacing dst if it exists.
func (s *Storage) Rename(_ context.Context, src, dst string) error {
	return os.Rename(src, dst)
}

// Remove deletes the file at path.
func (s *Storage) Remove(_ context.Context, path string) error {
	return os.Remove(path)
}
