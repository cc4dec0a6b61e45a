package lzindex

import "errors"

// Sentinel errors for index operations.
var (
	// ErrFormat is returned when the builder reads a malformed block-size
	// field from the source stream.
	ErrFormat = errors.New("lzindex: malformed block stream")

	// ErrCorruptIndex is returned when a persisted index file's length is
	// not a multiple of the 8-byte entry size.
	ErrCorruptIndex = errors.New("lzindex: corrupt index file")
)
