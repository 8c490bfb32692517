package simd

import "github.com/nkurz/scancount/internal/errors"

// RangeEnds is a per-tile exclusive upper-bound cursor for one list: the
// count of elements of L whose value is <= the tile's last id.
type RangeEnds []int

// BuildRangeEnds walks L with a non-decreasing end cursor and records,
// for each tile start s in [0, maxID] step r, how far into L the tile
// extends. The result has exactly ceil((maxID+1)/r) entries and is
// non-decreasing, ending at len(L) (spec §8 property 6).
func BuildRangeEnds(maxID int64, r int, l List) (RangeEnds, error) {
	if err := validateTileSize(r, "BuildRangeEnds"); err != nil {
		return nil, err
	}

	n := int((maxID + int64(r)) / int64(r))
	if maxID < 0 {
		n = 0
	}
	ends := make(RangeEnds, n)

	end := 0
	for i := 0; i < n; i++ {
		tileLast := int64(i)*int64(r) + int64(r) - 1
		for end < len(l) && int64(l[end]) <= tileLast {
			end++
		}
		ends[i] = end
	}
	return ends, nil
}

// BuildAll applies BuildRangeEnds across every list in lists using one
// shared global maxID, so every resulting RangeEnds has identical
// length — the invariant the 512-wide kernel requires.
func BuildAll(lists []List, r int) ([]RangeEnds, error) {
	if err := validateTileSize(r, "BuildAll"); err != nil {
		return nil, err
	}

	global := maxID(lists)
	all := make([]RangeEnds, len(lists))
	for k, l := range lists {
		ends, err := BuildRangeEnds(global, r, l)
		if err != nil {
			return nil, err
		}
		all[k] = ends
	}
	return all, nil
}

// validateRangeEnds enforces the §4.3 precondition that every list's
// range-end index has the same, non-zero length, failing with
// BadRangeEnds otherwise.
func validateRangeEnds(lists []List, ends []RangeEnds, operation string) error {
	if len(ends) != len(lists) {
		return errors.BadRangeEnds(operation, "range_ends count does not match list count")
	}
	if len(ends) == 0 {
		return nil
	}
	want := len(ends[0])
	if want == 0 {
		return errors.BadRangeEnds(operation, "range_ends entries are empty")
	}
	for _, e := range ends {
		if len(e) != want {
			return errors.BadRangeEnds(operation, "range_ends entries have mismatched length")
		}
	}
	return nil
}
