// Package lzop parses lzop file headers.
//
// An lzop file begins with a magic sequence and a header carrying version
// numbers, the compression method, flags, file metadata, and a checksum of
// the header itself. The flags determine how many 4-byte checksum words
// follow each compressed block, which is all the index builder needs to
// skip from one block's size fields to the next.
package lzop

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"hash/adler32"
	"hash/crc32"
	"io"
	"time"

	"github.com/splitstream/lzindex/codec"
)

// Magic identifies an lzop file.
var Magic = []byte{0x89, 'L', 'Z', 'O', 0x00, 0x0d, 0x0a, 0x1a, 0x0a}

// Header flags, as written by lzop.
const (
	FlagAdler32D    uint32 = 0x00000001 // adler32 of each decompressed block
	FlagAdler32C    uint32 = 0x00000002 // adler32 of each compressed block
	FlagStdin       uint32 = 0x00000004
	FlagStdout      uint32 = 0x00000008
	FlagNameDefault uint32 = 0x00000010
	FlagDosish      uint32 = 0x00000020
	FlagExtra       uint32 = 0x00000040
	FlagGmtDiff     uint32 = 0x00000080
	FlagCRC32D      uint32 = 0x00000100 // crc32 of each decompressed block
	FlagCRC32C      uint32 = 0x00000200 // crc32 of each compressed block
	FlagMultipart   uint32 = 0x00000400
	FlagFilter      uint32 = 0x00000800
	FlagHeaderCRC32 uint32 = 0x00001000 // header checksum is crc32, not adler32
)

// Compression methods.
const (
	MethodLZO1X1   byte = 1
	MethodLZO1X115 byte = 2
	MethodLZO1X999 byte = 3
)

const (
	// maxVersion is the newest lzop version this package accepts files
	// from.
	maxVersion = 0x1040
	// minVersion is the oldest header layout this package understands.
	minVersion = 0x0900
)

// Sentinel errors for header parsing.
var (
	// ErrMagic is returned when the stream does not start with the lzop
	// magic sequence.
	ErrMagic = errors.New("lzop: bad magic")

	// ErrVersion is returned when the file requires a newer or predates
	// the oldest supported lzop version.
	ErrVersion = errors.New("lzop: unsupported version")

	// ErrMethod is returned for compression methods other than the LZO1X
	// family.
	ErrMethod = errors.New("lzop: unsupported compression method")

	// ErrUnsupported is returned for multipart archives and filtered
	// streams.
	ErrUnsupported = errors.New("lzop: unsupported feature")

	// ErrChecksum is returned when the header checksum does not match.
	ErrChecksum = errors.New("lzop: header checksum mismatch")
)

// Header is a parsed lzop file header.
type Header struct {
	Version    uint16
	LibVersion uint16
	Method     byte
	Level      byte
	Flags      uint32
	Mode       uint32
	ModTime    time.Time
	Name       string
}

// ChecksumCount returns how many 4-byte checksum words follow each
// compressed block, as configured by the header flags.
func (h *Header) ChecksumCount() int {
	n := 0
	for _, f := range []uint32{FlagAdler32D, FlagAdler32C, FlagCRC32D, FlagCRC32C} {
		if h.Flags&f != 0 {
			n++
		}
	}
	return n
}

// Codec adapts lzop header parsing to the codec.Codec interface.
type Codec struct{}

// Interface compliance.
var _ codec.Codec = (*Codec)(nil)

// New returns an lzop codec.
func New() *Codec {
	return &Codec{}
}

// ReadHeader parses the lzop header at the start of r.
func (*Codec) ReadHeader(r io.Reader) (codec.Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return codec.Header{}, err
	}
	return codec.Header{Checksums: h.ChecksumCount()}, nil
}

// ReadHeader reads and validates an lzop file header, consuming exactly
// the header bytes and leaving r positioned at the first block.
func ReadHeader(r io.Reader) (*Header, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("lzop: read magic: %w", err)
	}
	if !bytes.Equal(magic, Magic) {
		return nil, ErrMagic
	}

	// The header checksum covers every field after the magic and before
	// the checksum itself. Both digests run until the flags reveal which
	// one the file uses.
	hr := &headerReader{r: r, adler: adler32.New(), crc: crc32.NewIEEE()}

	h := &Header{}
	var err error
	if h.Version, err = hr.u16(); err != nil {
		return nil, err
	}
	if h.Version < minVersion {
		return nil, fmt.Errorf("%w: 0x%04x", ErrVersion, h.Version)
	}
	if h.LibVersion, err = hr.u16(); err != nil {
		return nil, err
	}
	if h.Version >= 0x0940 {
		verNeeded, err := hr.u16()
		if err != nil {
			return nil, err
		}
		if verNeeded > maxVersion {
			return nil, fmt.Errorf("%w: requires 0x%04x", ErrVersion, verNeeded)
		}
	}
	if h.Method, err = hr.u8(); err != nil {
		return nil, err
	}
	if h.Method < MethodLZO1X1 || h.Method > MethodLZO1X999 {
		return nil, fmt.Errorf("%w: %d", ErrMethod, h.Method)
	}
	if h.Version >= 0x0940 {
		if h.Level, err = hr.u8(); err != nil {
			return nil, err
		}
	}
	if h.Flags, err = hr.u32(); err != nil {
		return nil, err
	}
	if h.Flags&FlagMultipart != 0 {
		return nil, fmt.Errorf("%w: multipart archive", ErrUnsupported)
	}
	if h.Flags&FlagFilter != 0 {
		return nil, fmt.Errorf("%w: filtered stream", ErrUnsupported)
	}
	if h.Mode, err = hr.u32(); err != nil {
		return nil, err
	}
	mtimeLow, err := hr.u32()
	if err != nil {
		return nil, err
	}
	var mtimeHigh uint32
	if h.Version >= 0x0400 {
		if mtimeHigh, err = hr.u32(); err != nil {
			return nil, err
		}
	}
	h.ModTime = time.Unix(int64(mtimeHigh)<<32|int64(mtimeLow), 0)

	nameLen, err := hr.u8()
	if err != nil {
		return nil, err
	}
	if nameLen > 0 {
		name, err := hr.read(int(nameLen))
		if err != nil {
			return nil, err
		}
		h.Name = string(name)
	}

	want := hr.adler.Sum32()
	if h.Flags&FlagHeaderCRC32 != 0 {
		want = hr.crc.Sum32()
	}
	var sum [4]byte
	if _, err := io.ReadFull(r, sum[:]); err != nil {
		return nil, fmt.Errorf("lzop: read header checksum: %w", err)
	}
	if binary.BigEndian.Uint32(sum[:]) != want {
		return nil, ErrChecksum
	}
	return h, nil
}

// headerReader reads header fields while feeding both checksum digests.
type headerReader struct {
	r     io.Reader
	adler hash.Hash32
	crc   hash.Hash32
}

func (hr *headerReader) read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(hr.r, buf); err != nil {
		return nil, fmt.Errorf("lzop: read header: %w", err)
	}
	hr.adler.Write(buf)
	hr.crc.Write(buf)
	return buf, nil
}

func (hr *headerReader) u8() (byte, error) {
	buf, err := hr.read(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (hr *headerReader) u16() (uint16, error) {
	buf, err := hr.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

func (hr *headerReader) u32() (uint32, error) {
	buf, err := hr.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}
