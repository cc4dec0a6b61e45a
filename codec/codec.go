// Package codec defines the header-parsing capability the index builder
// needs from a compression format.
//
// The builder never decompresses block payloads; it only needs to know how
// many checksum words trail each block so the scan can skip them. Header
// parsing is therefore modeled as its own capability, separate from
// decompression.
package codec

import "io"

// Header describes the per-block framing declared by a format's file
// header.
type Header struct {
	// Checksums is the number of 4-byte checksum words that follow each
	// block's compressed payload.
	Checksums int
}

// Codec parses a format's file-level header from the start of a raw
// stream.
//
// ReadHeader must consume exactly the header bytes, leaving the reader
// positioned at the first block's size fields.
type Codec interface {
	ReadHeader(r io.Reader) (Header, error)
}

// Fixed returns a Codec for headerless streams with a known checksum
// configuration, such as Hadoop's generic block-codec framing. It consumes
// nothing from the reader.
func Fixed(checksums int) Codec {
	return fixed(checksums)
}

type fixed int

func (f fixed) ReadHeader(io.Reader) (Header, error) {
	return Header{Checksums: int(f)}, nil
}
