// Package storage defines the filesystem abstraction consumed by index
// building and loading.
//
// Implementations may be backed by a local disk or a remote filesystem.
// Every call blocks until the underlying operation completes; cancellation
// and timeouts are the implementation's responsibility via the provided
// context.
package storage

import (
	"context"
	"io"
)

// File is a readable, seekable handle to a stored object.
type File interface {
	io.Reader
	io.Seeker
	io.Closer
}

// Storage is the filesystem consumed by index building and loading. Any
// failure surfaces as an error to the caller; no retries happen at this
// layer.
type Storage interface {
	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Length returns the size in bytes of the file at path.
	Length(ctx context.Context, path string) (int64, error)

	// Open opens the file at path for reading.
	Open(ctx context.Context, path string) (File, error)

	// Create creates or truncates the file at path for writing.
	Create(ctx context.Context, path string) (io.WriteCloser, error)

	// Rename moves src to dst, replacing dst if it exists. The move must
	// be atomic with respect to concurrent readers of dst.
	Rename(ctx context.Context, src, dst string) error

	// Remove deletes the file at path.
	Remove(ctx context.Context, path string) error
}
