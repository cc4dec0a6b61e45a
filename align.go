package lzindex

// AlignSliceStart nudges a candidate slice start to the nearest block
// start no earlier than start. Byte 0 is always a legal boundary.
//
// It returns NotFound when no block starts inside [start, end): the
// candidate slice contains no complete block and the caller should discard
// it or merge it with a neighboring slice.
func (x *Index) AlignSliceStart(start, end int64) int64 {
	if start == 0 {
		return 0
	}
	newStart := x.FindNextPosition(start)
	if newStart == NotFound || newStart >= end {
		return NotFound
	}
	return newStart
}

// AlignSliceEnd nudges a candidate slice end forward to the next block
// start, so that no block straddles two slices. When no block starts at or
// after end, the slice runs to the physical end of the file and fileSize
// is returned.
//
// Aligning both edges guarantees a worker can begin decompressing at its
// slice start without any state from the preceding slice.
func (x *Index) AlignSliceEnd(end, fileSize int64) int64 {
	newEnd := x.FindNextPosition(end)
	if newEnd == NotFound {
		return fileSize
	}
	return newEnd
}
