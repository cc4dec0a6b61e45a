package lzindex

import (
	"iter"
	"sort"
)

// IndexSuffix is appended to a source file's path to locate its block
// index.
const IndexSuffix = ".index"

// NotFound is returned by offset lookups that have no answer. It is never
// a valid block offset; offsets are always >= 0.
const NotFound int64 = -1

// Index is a sorted list of block-start byte offsets for one compressed
// file. Each offset is the position of the size-header pair that begins a
// compressed block.
//
// An Index is populated slot by slot during building or loading and is
// read-only afterwards. A fully populated Index is safe for concurrent
// lookups from any number of goroutines.
type Index struct {
	positions []int64
}

// NewIndex creates an index with room for blocks offsets. The slots are
// undefined until written with Set.
func NewIndex(blocks int) *Index {
	return &Index{positions: make([]int64, blocks)}
}

// Set stores the offset for block i. It panics if i is outside the range
// the index was created with.
func (x *Index) Set(i int, pos int64) {
	x.positions[i] = pos
}

// Len returns the number of blocks in the index.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.positions)
}

// IsEmpty reports whether the index has no blocks. An empty index means no
// index file exists for the source; callers should treat the file as a
// single unsplittable slice.
func (x *Index) IsEmpty() bool {
	return x.Len() == 0
}

// FindNextPosition returns the smallest recorded offset that is >= pos,
// or NotFound if every recorded offset is smaller. A pos that exactly
// matches a recorded offset returns that offset.
func (x *Index) FindNextPosition(pos int64) int64 {
	i := sort.Search(len(x.positions), func(i int) bool {
		return x.positions[i] >= pos
	})
	if i == len(x.positions) {
		return NotFound
	}
	return x.positions[i]
}

// Positions returns an iterator over the recorded block offsets in
// ascending order.
func (x *Index) Positions() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for _, pos := range x.positions {
			if !yield(pos) {
				return
			}
		}
	}
}
