package lzindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildIndex creates an index populated with the given offsets.
func buildIndex(tb testing.TB, offsets ...int64) *Index {
	tb.Helper()
	idx := NewIndex(len(offsets))
	for i, pos := range offsets {
		idx.Set(i, pos)
	}
	return idx
}

func TestIndexIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, NewIndex(0).IsEmpty())
	assert.False(t, NewIndex(1).IsEmpty(), "a one-block index is not empty")
	assert.False(t, buildIndex(t, 0).IsEmpty())
}

func TestIndexSetOutOfRange(t *testing.T) {
	t.Parallel()

	idx := NewIndex(2)
	assert.Panics(t, func() { idx.Set(2, 10) })
	assert.Panics(t, func() { idx.Set(-1, 10) })
}

func TestFindNextPosition(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t, 0, 108, 316, 474)

	tests := []struct {
		name string
		pos  int64
		want int64
	}{
		{name: "before first", pos: -5, want: 0},
		{name: "exact hit on first", pos: 0, want: 0},
		{name: "between blocks", pos: 1, want: 108},
		{name: "exact hit in middle", pos: 316, want: 316},
		{name: "just before last", pos: 473, want: 474},
		{name: "exact hit on last", pos: 474, want: 474},
		{name: "past last", pos: 475, want: NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, idx.FindNextPosition(tt.pos))
		})
	}
}

func TestFindNextPositionEmpty(t *testing.T) {
	t.Parallel()

	idx := NewIndex(0)
	assert.Equal(t, NotFound, idx.FindNextPosition(0))
}

func TestFindNextPositionIsLowerBound(t *testing.T) {
	t.Parallel()

	offsets := []int64{3, 17, 42, 100, 101, 5000}
	idx := buildIndex(t, offsets...)

	// FindNextPosition(p) must return min{o : o >= p} for every probe.
	for p := int64(0); p <= 5001; p++ {
		want := NotFound
		for _, o := range offsets {
			if o >= p {
				want = o
				break
			}
		}
		require.Equal(t, want, idx.FindNextPosition(p), "probe %d", p)
	}
}

func TestIndexPositions(t *testing.T) {
	t.Parallel()

	idx := buildIndex(t, 0, 108, 316)

	var got []int64
	for pos := range idx.Positions() {
		got = append(got, pos)
	}
	assert.Equal(t, []int64{0, 108, 316}, got)
	assert.Equal(t, 3, idx.Len())
}
