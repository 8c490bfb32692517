package simd

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func toSet(ids []uint32) map[uint32]bool {
	set := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func sorted(ids []uint32) []uint32 {
	out := append([]uint32(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// S1
func TestScanBlocked_S1(t *testing.T) {
	lists := []List{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}

	assert.Equal(t, []uint32{2, 3, 4}, sorted(ScanBlocked(lists, 1)))
	assert.Equal(t, []uint32{3}, sorted(ScanBlocked(lists, 2)))
}

// S2: id crossing a tile boundary must not be double-counted.
func TestScanBlocked_S2(t *testing.T) {
	lists := []List{{0, 100000}, {100000, 200000}}
	got := scanBlocked(lists, 0, TileSizeScalar)
	assert.ElementsMatch(t, []uint32{0, 100000, 200000}, got)
}

// S3: exercises the tile boundary in the increment path with a tiny R.
func TestScanBlocked_S3(t *testing.T) {
	const r = 16
	lists := []List{{r - 1, r}, {r - 1, r}}
	got := scanBlocked(lists, 1, r)
	assert.ElementsMatch(t, []uint32{r - 1, r}, got)
}

// S4: one list named twice counts every id twice, so every id is a
// hit for t < 2 and none is for t >= 2.
func TestScanBlocked_S4(t *testing.T) {
	l := make(List, 100)
	for i := range l {
		l[i] = uint32(i)
	}
	lists := []List{l, l}

	want := make([]uint32, 100)
	for i := range want {
		want[i] = uint32(i)
	}
	assert.ElementsMatch(t, want, ScanBlocked(lists, 1))
	assert.Empty(t, ScanBlocked(lists, 2))

	assert.ElementsMatch(t, want, ScanBlocked(lists, 0))
}

// S5
func TestScanBlocked_S5(t *testing.T) {
	lists := make([]List, 100)
	for i := range lists {
		lists[i] = List{42}
	}

	assert.Equal(t, []uint32{42}, ScanBlocked(lists, 50))
	assert.Empty(t, ScanBlocked(lists, 100))
}

func TestScanBlocked_EmptyQueryVacuity(t *testing.T) {
	assert.Empty(t, ScanBlocked(nil, 0))
	assert.Empty(t, ScanBlocked([]List{}, 5))
}

func TestScanBlocked_SingleListIdentity(t *testing.T) {
	l := List{1, 5, 9, 100}
	got := ScanBlocked([]List{l}, 0)
	assert.ElementsMatch(t, []uint32(l), got)
}

func TestScanBlocked_ThresholdMonotonicity(t *testing.T) {
	lists := []List{{1, 2, 3, 4}, {2, 3, 4, 5}, {3, 4, 5, 6}}
	low := toSet(ScanBlocked(lists, 0))
	high := toSet(ScanBlocked(lists, 1))
	for id := range high {
		assert.True(t, low[id], "hits(t2) must be a subset of hits(t1) for t1<t2")
	}
}

func TestScanBlocked_TileBoundaryIds(t *testing.T) {
	const r = 32
	lists := []List{{r - 1, r, r + 1}, {r - 1, r, r + 1}}
	got := toSet(scanBlocked(lists, 1, r))
	assert.True(t, got[r-1])
	assert.True(t, got[r])
	assert.True(t, got[r+1])
}
