package simd

import (
	"math/rand"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dedupedSortedList draws n ids uniformly from [0, universe) and
// returns them deduplicated and sorted, exactly as the synthetic
// benchmark (spec §6) is specified to generate each posting list.
func dedupedSortedList(rng *rand.Rand, n, universe int) List {
	bm := roaring.New()
	for i := 0; i < n; i++ {
		bm.Add(uint32(rng.Intn(universe)))
	}
	arr := bm.ToArray()
	return List(arr)
}

// S6, scaled down for test runtime: every variant must agree with the
// oracle as a set, for every threshold from 0 up to the list count.
func TestOracleEquivalence_S6(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	lists := make([]List, 12)
	for i := range lists {
		lists[i] = dedupedSortedList(rng, 500, 20000)
	}

	ends, err := BuildAll(lists, 64)
	require.NoError(t, err)

	for threshold := 0; threshold < len(lists); threshold++ {
		want := toSet(ScanReference(lists, threshold))

		scalarGot := toSet(ScanBlocked(lists, threshold))
		assert.Equal(t, want, scalarGot, "scalar mismatch at threshold %d", threshold)

		avx2Got := toSet(ScanBlocked256(lists, threshold))
		assert.Equal(t, want, avx2Got, "avx2 mismatch at threshold %d", threshold)

		avx512Got, err := ScanBlocked512(64, lists, ends, threshold)
		require.NoError(t, err)
		assert.Equal(t, want, toSet(avx512Got), "avx512 mismatch at threshold %d", threshold)
	}
}

func TestOracleEquivalence_TileBoundaryStress(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	const r = 128
	lists := make([]List, 6)
	for i := range lists {
		lists[i] = dedupedSortedList(rng, 40, r*6)
	}

	want := toSet(ScanReference(lists, 2))
	got := toSet(scanBlocked(lists, 2, r))
	assert.Equal(t, want, got)

	got256 := toSet(scanBlocked256(lists, 2, r))
	assert.Equal(t, want, got256)
}

func TestCursorMonotonicity(t *testing.T) {
	lists := []List{{1, 50000, 100000}, {2, 3, 99999}}
	cursors := make([]Cursor, len(lists))

	max := maxID(lists)
	r := TileSizeScalar
	tile := make([]byte, r)

	var prev []Cursor
	for start := int64(0); start <= max; start += int64(r) {
		for i := range tile {
			tile[i] = 0
		}
		for k, l := range lists {
			it := cursors[k]
			if it >= len(l) {
				continue
			}
			i := it
			for i < len(l) && int64(l[i]) < start+int64(r) {
				tile[int64(l[i])-start]++
				i++
			}
			cursors[k] = i
		}
		if prev != nil {
			for k := range cursors {
				assert.GreaterOrEqual(t, cursors[k], prev[k])
			}
		}
		prev = append([]Cursor(nil), cursors...)
	}

	for k, l := range lists {
		assert.Equal(t, len(l), cursors[k])
	}
}
