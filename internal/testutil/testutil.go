// Package testutil builds synthetic block-compressed streams for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"hash/adler32"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/snappy"
)

// StreamBuilder assembles a synthetic block stream and records where each
// block's size-header pair lands, so tests can compare built indexes
// against ground truth.
type StreamBuilder struct {
	buf       bytes.Buffer
	checksums int
	offsets   []int64
}

// NewStreamBuilder returns a builder for a stream whose blocks carry the
// given number of 4-byte checksum words.
func NewStreamBuilder(checksums int) *StreamBuilder {
	return &StreamBuilder{checksums: checksums}
}

// Header appends raw file-header bytes ahead of the first block.
func (b *StreamBuilder) Header(p []byte) *StreamBuilder {
	b.buf.Write(p)
	return b
}

// Add appends one block: the size-header pair, the payload verbatim, and
// the configured number of checksum words. The scanner never reads payload
// or checksum bytes, so the checksum words carry the payload's crc32 only
// for realism.
func (b *StreamBuilder) Add(uncompressedSize int, payload []byte) *StreamBuilder {
	b.offsets = append(b.offsets, int64(b.buf.Len()))
	b.u32(uint32(uncompressedSize))
	b.u32(uint32(len(payload)))
	b.buf.Write(payload)
	for range b.checksums {
		b.u32(crc32.ChecksumIEEE(payload))
	}
	return b
}

// AddSnappy compresses chunk with snappy and appends it as a block.
func (b *StreamBuilder) AddSnappy(chunk []byte) *StreamBuilder {
	return b.Add(len(chunk), snappy.Encode(nil, chunk))
}

// RawSizes appends an arbitrary size-header pair with no payload, for
// malformed-stream cases.
func (b *StreamBuilder) RawSizes(uncompressed, compressed int32) *StreamBuilder {
	b.offsets = append(b.offsets, int64(b.buf.Len()))
	b.u32(uint32(uncompressed))
	b.u32(uint32(compressed))
	return b
}

// Finish appends the end-of-stream marker and returns the stream bytes.
func (b *StreamBuilder) Finish() []byte {
	b.u32(0)
	return b.buf.Bytes()
}

// Bytes returns the stream bytes without an end-of-stream marker, for
// truncation cases.
func (b *StreamBuilder) Bytes() []byte {
	return b.buf.Bytes()
}

// Offsets returns the recorded block start offsets, relative to the start
// of the stream.
func (b *StreamBuilder) Offsets() []int64 {
	return b.offsets
}

func (b *StreamBuilder) u32(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.buf.Write(buf[:])
}

// lzop header layout constants, mirrored from codec/lzop.
var lzopMagic = []byte{0x89, 'L', 'Z', 'O', 0x00, 0x0d, 0x0a, 0x1a, 0x0a}

const lzopFlagHeaderCRC32 uint32 = 0x00001000

// LzopHeader serializes a minimal valid lzop file header with the given
// flags and an empty file name.
func LzopHeader(tb testing.TB, flags uint32) []byte {
	tb.Helper()

	var body bytes.Buffer
	u16 := func(v uint16) { _ = binary.Write(&body, binary.BigEndian, v) }
	u32 := func(v uint32) { _ = binary.Write(&body, binary.BigEndian, v) }

	u16(0x1040)        // lzop version
	u16(0x2080)        // lzo library version
	u16(0x0940)        // version needed to extract
	body.WriteByte(1)  // method: LZO1X-1
	body.WriteByte(5)  // level
	u32(flags)         // flags
	u32(0o644)         // mode
	u32(1_700_000_000) // mtime low
	u32(0)             // mtime high
	body.WriteByte(0)  // file name length

	sum := adler32.Checksum(body.Bytes())
	if flags&lzopFlagHeaderCRC32 != 0 {
		sum = crc32.ChecksumIEEE(body.Bytes())
	}

	var buf bytes.Buffer
	buf.Write(lzopMagic)
	buf.Write(body.Bytes())
	_ = binary.Write(&buf, binary.BigEndian, sum)
	return buf.Bytes()
}

// WriteFile writes data to a file under dir and returns its path.
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}
	return path
}
