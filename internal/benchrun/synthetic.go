// Package benchrun drives the synthetic benchmark and correctness
// self-check the CLI runs when no --postings/--queries/--threshold
// arguments are given (spec §6), plus the per-query farm-out a caller
// uses to run independent queries concurrently (spec §5: "different
// queries may be farmed out externally").
package benchrun

import (
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/nkurz/scancount/internal/simd"
)

// SyntheticSpec describes one synthetic benchmark run, matching
// counters.cpp's demo_random(N, length, array_count, threshold):
// array_count lists of length ids drawn uniformly from [0, universe),
// deduplicated and sorted.
type SyntheticSpec struct {
	Universe int
	Length   int
	NumLists int
}

// DefaultSyntheticSpec is the no-argument CLI mode's shape from spec
// §6: "100 lists of 50000 random ids in [0, 20_000_000), deduplicated
// and sorted".
var DefaultSyntheticSpec = SyntheticSpec{
	Universe: 20_000_000,
	Length:   50_000,
	NumLists: 100,
}

// GenerateLists draws spec.NumLists independent lists of spec.Length
// ids uniformly from [0, spec.Universe), each deduplicated and sorted
// via a Roaring bitmap — the idiomatic dedup-and-order primitive for a
// sparse id space this large, exactly the shape the oracle and blocked
// kernels require as input.
func GenerateLists(rng *rand.Rand, spec SyntheticSpec) []simd.List {
	lists := make([]simd.List, spec.NumLists)
	for i := range lists {
		bm := roaring.New()
		for j := 0; j < spec.Length; j++ {
			bm.Add(uint32(rng.Intn(spec.Universe)))
		}
		lists[i] = simd.List(bm.ToArray())
	}
	return lists
}
