// Package simd implements the cache-blocked, SIMD-accelerated multi-list
// threshold counter: scalar, AVX2, and AVX-512 blocked scan variants plus
// a non-blocked oracle, all operating on strictly-ascending, duplicate-free
// uint32 posting lists.
package simd

import "github.com/nkurz/scancount/internal/errors"

// TileSizeScalar is the tile width in bytes used by the scalar and the
// 256-bit blocked counters. Chosen to fit comfortably in L1D.
const TileSizeScalar = 32768

// TileSize512 is the tile width in bytes used by the 512-bit blocked
// counter. Must be a multiple of 64 (post-pass width) and 16 (update
// width).
const TileSize512 = 40000

// List is a strictly-ascending, duplicate-free sequence of 32-bit ids.
// Ownership: borrowed by every kernel in this package; never mutated.
type List []uint32

// Cursor is a per-list index recording the first element not yet
// consumed in prior tiles. Monotonically non-decreasing, reaches len(L)
// when the list is exhausted.
type Cursor = int

// maxID returns the maximum last element across all non-empty lists, or
// -1 if every list is empty.
func maxID(lists []List) int64 {
	max := int64(-1)
	for _, l := range lists {
		if len(l) == 0 {
			continue
		}
		if v := int64(l[len(l)-1]); v > max {
			max = v
		}
	}
	return max
}

// growOutput grows out by 4*r when fewer than r slots of spare capacity
// remain, reproducing fastscancount.h's amortized growth heuristic.
func growOutput(out []uint32, r int) []uint32 {
	if cap(out)-len(out) >= r {
		return out
	}
	grown := make([]uint32, len(out), len(out)+4*r)
	copy(grown, out)
	return grown
}

// validateTileSize rejects a zero or negative range size. The kernel
// cannot verify the |Q| <= 255 overflow precondition, but it can at
// least assert the caller picked a sane R.
func validateTileSize(r int, operation string) error {
	if r <= 0 {
		return errors.BadRangeSize(operation)
	}
	return nil
}
