// Package lzindex locates block boundaries in block-compressed files so
// that separate workers can decompress disjoint byte ranges in parallel.
//
// Block-compressed formats such as lzop interleave fixed-size length
// headers between compressed blocks, so block boundaries are unevenly
// spaced and cannot be computed without scanning the file. This package
// builds, once per file, a persisted sorted list of block-start offsets
// (the index), and snaps arbitrary candidate split boundaries to the
// nearest legal block boundary.
//
// # Building
//
// [Build] scans a compressed file's size headers and writes the index next
// to it:
//
//	st := disk.New()
//	err := lzindex.Build(ctx, st, lzop.New(), "logs/events.lzo")
//
// The index is a flat file of 8-byte big-endian offsets at the source path
// plus [IndexSuffix]. It is committed by atomic rename, so a crashed build
// never leaves a partial index behind. [BuildAll] indexes many files with
// bounded concurrency.
//
// # Splitting
//
// [Load] reads the index back; a missing index file yields an empty
// [Index], meaning the file must be treated as a single unsplittable
// slice. Candidate split boundaries are corrected with
// [Index.AlignSliceStart] and [Index.AlignSliceEnd] so that every slice
// begins exactly at a block's size header and no block straddles two
// slices.
//
// This package only locates boundaries. Decompressing blocks, verifying
// checksums, and deciding the initial candidate splits are the caller's
// concern.
package lzindex
