package lzop

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitstream/lzindex/internal/testutil"
)

func TestReadHeader(t *testing.T) {
	t.Parallel()

	raw := testutil.LzopHeader(t, FlagAdler32D|FlagAdler32C)
	r := bytes.NewReader(raw)

	h, err := ReadHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1040), h.Version)
	assert.Equal(t, MethodLZO1X1, h.Method)
	assert.Equal(t, FlagAdler32D|FlagAdler32C, h.Flags)
	assert.Equal(t, uint32(0o644), h.Mode)
	assert.Equal(t, int64(1_700_000_000), h.ModTime.Unix())
	assert.Empty(t, h.Name)
	assert.Zero(t, r.Len(), "header parsing must consume exactly the header bytes")
}

func TestChecksumCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags uint32
		want  int
	}{
		{name: "none", flags: 0, want: 0},
		{name: "decompressed adler only", flags: FlagAdler32D, want: 1},
		{name: "both adler", flags: FlagAdler32D | FlagAdler32C, want: 2},
		{name: "adler and crc mixed", flags: FlagAdler32D | FlagCRC32C, want: 2},
		{name: "everything", flags: FlagAdler32D | FlagAdler32C | FlagCRC32D | FlagCRC32C, want: 4},
		{name: "unrelated flags ignored", flags: FlagNameDefault | FlagDosish, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := &Header{Flags: tt.flags}
			assert.Equal(t, tt.want, h.ChecksumCount())
		})
	}
}

func TestCodecReadHeader(t *testing.T) {
	t.Parallel()

	raw := testutil.LzopHeader(t, FlagAdler32D|FlagCRC32C)
	hdr, err := New().ReadHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, hdr.Checksums)
}

func TestReadHeaderCRC32(t *testing.T) {
	t.Parallel()

	// F_H_CRC32 switches the header checksum from adler32 to crc32.
	raw := testutil.LzopHeader(t, FlagAdler32D|FlagHeaderCRC32)
	h, err := ReadHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, h.ChecksumCount())
}

func TestReadHeaderBadMagic(t *testing.T) {
	t.Parallel()

	raw := testutil.LzopHeader(t, 0)
	raw[0] ^= 0xff
	_, err := ReadHeader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrMagic)
}

func TestReadHeaderChecksumMismatch(t *testing.T) {
	t.Parallel()

	raw := testutil.LzopHeader(t, FlagAdler32D)
	raw[len(raw)-1] ^= 0xff
	_, err := ReadHeader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestReadHeaderCorruptField(t *testing.T) {
	t.Parallel()

	// Flipping a covered byte must fail the header checksum.
	raw := testutil.LzopHeader(t, FlagAdler32D)
	raw[len(Magic)+4] ^= 0xff
	_, err := ReadHeader(bytes.NewReader(raw))
	assert.Error(t, err)
}

func TestReadHeaderMultipartRejected(t *testing.T) {
	t.Parallel()

	raw := testutil.LzopHeader(t, FlagMultipart)
	_, err := ReadHeader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestReadHeaderFilterRejected(t *testing.T) {
	t.Parallel()

	raw := testutil.LzopHeader(t, FlagFilter)
	_, err := ReadHeader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestReadHeaderTruncated(t *testing.T) {
	t.Parallel()

	raw := testutil.LzopHeader(t, 0)
	_, err := ReadHeader(bytes.NewReader(raw[:len(raw)-6]))
	assert.Error(t, err)
}
