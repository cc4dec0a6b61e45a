package lzindex

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/splitstream/lzindex/codec"
	"github.com/splitstream/lzindex/storage"
)

// Build scans the compressed file at sourcePath and writes its block index
// to sourcePath + IndexSuffix.
//
// The scan walks the stream's size-header pairs, recording the byte
// position of each pair and skipping payload and checksum bytes unread.
// Offsets are written to a uniquely named temporary file that is renamed
// into place only after the whole scan succeeds, so readers never observe
// a partial index; an aborted build leaves no index behind.
//
// The checksum count reported by the codec is trusted. If it does not
// match the stream, every offset after the first mismatch silently points
// at the wrong byte.
//
// Callers must not run two builds of the same source file concurrently.
func Build(ctx context.Context, st storage.Storage, c codec.Codec, sourcePath string) error {
	src, err := st.Open(ctx, sourcePath)
	if err != nil {
		return fmt.Errorf("lzindex: open source: %w", err)
	}
	defer src.Close()

	hdr, err := c.ReadHeader(src)
	if err != nil {
		return fmt.Errorf("lzindex: parse header: %w", err)
	}
	pos, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("lzindex: position after header: %w", err)
	}

	indexPath := sourcePath + IndexSuffix
	tmpPath := fmt.Sprintf("%s.%s.tmp", indexPath, uuid.NewString())
	out, err := st.Create(ctx, tmpPath)
	if err != nil {
		return fmt.Errorf("lzindex: create temp index: %w", err)
	}

	if err := scanBlocks(src, out, pos, hdr.Checksums); err != nil {
		out.Close()
		_ = st.Remove(ctx, tmpPath)
		return err
	}
	if err := out.Close(); err != nil {
		_ = st.Remove(ctx, tmpPath)
		return fmt.Errorf("lzindex: close temp index: %w", err)
	}
	if err := st.Rename(ctx, tmpPath, indexPath); err != nil {
		_ = st.Remove(ctx, tmpPath)
		return fmt.Errorf("lzindex: commit index: %w", err)
	}
	return nil
}

// scanBlocks walks size-header pairs from pos until the end-of-stream
// marker, writing each pair's position to out as an 8-byte big-endian
// integer.
func scanBlocks(src storage.File, out io.Writer, pos int64, checksums int) error {
	var buf [8]byte
	for {
		uncompressed, err := readInt32(src, buf[:4])
		if err != nil {
			return fmt.Errorf("read uncompressed block size at offset %d: %w", pos, err)
		}
		if uncompressed == 0 {
			// end-of-stream marker
			return nil
		}
		if uncompressed < 0 {
			return fmt.Errorf("%w: negative uncompressed block size at offset %d", ErrFormat, pos)
		}

		compressed, err := readInt32(src, buf[4:8])
		if err != nil {
			return fmt.Errorf("read compressed block size at offset %d: %w", pos, err)
		}
		if compressed <= 0 {
			return fmt.Errorf("%w: could not read compressed block size at offset %d", ErrFormat, pos)
		}

		binary.BigEndian.PutUint64(buf[:], uint64(pos))
		if _, err := out.Write(buf[:]); err != nil {
			return fmt.Errorf("lzindex: write index entry: %w", err)
		}

		// Skip the payload and its checksum trailer to land on the next
		// block's size fields.
		next := pos + 8 + int64(compressed) + 4*int64(checksums)
		if _, err := src.Seek(next, io.SeekStart); err != nil {
			return fmt.Errorf("lzindex: seek to next block: %w", err)
		}
		pos = next
	}
}

// readInt32 reads a 4-byte big-endian signed integer. A truncated stream
// is a format violation: well-formed streams end with an explicit zero
// size, never at EOF.
func readInt32(r io.Reader, buf []byte) (int32, error) {
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: truncated stream", ErrFormat)
		}
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf)), nil
}
