package lzindex

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/splitstream/lzindex/storage"
)

// Load reads the block index for the compressed file at sourcePath.
//
// A missing index file is not an error: Load returns an empty index and
// the caller should treat the file as a single unsplittable slice. A
// present but misaligned index file, whose length is not a multiple of 8,
// fails with ErrCorruptIndex. Any storage failure is returned as-is; it is
// never silently treated as "no index".
func Load(ctx context.Context, st storage.Storage, sourcePath string) (*Index, error) {
	indexPath := sourcePath + IndexSuffix

	ok, err := st.Exists(ctx, indexPath)
	if err != nil {
		return nil, fmt.Errorf("lzindex: stat index: %w", err)
	}
	if !ok {
		return NewIndex(0), nil
	}

	length, err := st.Length(ctx, indexPath)
	if err != nil {
		return nil, fmt.Errorf("lzindex: index length: %w", err)
	}
	if length%8 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 8", ErrCorruptIndex, length)
	}

	f, err := st.Open(ctx, indexPath)
	if err != nil {
		return nil, fmt.Errorf("lzindex: open index: %w", err)
	}
	defer f.Close()

	blocks := int(length / 8)
	idx := NewIndex(blocks)
	var buf [8]byte
	for i := range blocks {
		if _, err := io.ReadFull(f, buf[:]); err != nil {
			return nil, fmt.Errorf("lzindex: read index entry %d: %w", i, err)
		}
		idx.Set(i, int64(binary.BigEndian.Uint64(buf[:])))
	}
	return idx, nil
}
