package simd

import "github.com/nkurz/scancount/internal/errors"

// ScanBlocked512 is the 512-bit blocked threshold counter (spec §4.3,
// C5). It requires a precomputed RangeEnds per list (see BuildAll) so
// the update phase never needs a per-element boundary test, and a tile
// size divisible by 64 (post-pass width) and 16 (update width).
//
// Preconditions: r is a positive multiple of 64; rangeEnds has exactly
// len(lists) entries, all of identical length; no list is empty.
func ScanBlocked512(r int, lists []List, rangeEnds []RangeEnds, threshold int) ([]uint32, error) {
	if err := validateTileSize(r, "ScanBlocked512"); err != nil {
		return nil, err
	}
	if r%64 != 0 {
		return nil, errors.BadRangeEnds("ScanBlocked512", "R must be a multiple of 64")
	}
	for k, l := range lists {
		if len(l) == 0 {
			return nil, errors.New(errors.KindValidation, "ScanBlocked512", "empty list not permitted").
				WithContext("list", k)
		}
	}
	if err := validateRangeEnds(lists, rangeEnds, "ScanBlocked512"); err != nil {
		return nil, err
	}

	if len(rangeEnds) == 0 || len(rangeEnds[0]) == 0 {
		return nil, nil
	}
	numTiles := len(rangeEnds[0])

	cursors := make([]Cursor, len(lists))
	tile := make([]byte, r)
	out := make([]uint32, 0, r)

	for tileIdx := 0; tileIdx < numTiles; tileIdx++ {
		start := int64(tileIdx) * int64(r)
		for i := range tile {
			tile[i] = 0
		}

		for k, l := range lists {
			end := rangeEnds[k][tileIdx]
			it := cursors[k]
			if it > end {
				return nil, errors.CursorOverrun("ScanBlocked512", k, it, len(l))
			}

			i := it
			vblocks := (end - it) / 16
			for b := 0; b < vblocks; b++ {
				updateBlock16(tile, l[i:i+16], start)
				i += 16
			}
			for ; i < end; i++ {
				tile[int64(l[i])-start]++
			}
			cursors[k] = end
		}

		out = growOutput(out, r)
		out = postPass512(tile, threshold, start, out)
	}

	return out, nil
}

// updateBlock16 applies the gather-increment-blend-scatter update for
// exactly 16 ids drawn from one list's unconsumed slice, dispatching to
// the AVX-512 kernel when available.
//
// Critical precondition (spec §4.3, §9): strict ascension within a
// single list guarantees no two of these 16 ids fall in the same tile
// byte, so the increment can never be lost to a same-word scatter
// collision.
func updateBlock16(tile []byte, ids []uint32, start int64) {
	if implementation == "avx512" {
		updateBlock16AVX512(tile, ids, start)
		return
	}
	updateBlock16Generic(tile, ids, start)
}

// updateBlock16Generic increments 16 tile bytes one at a time. It is
// observably identical to the gather-increment-blend-scatter sequence
// because the precondition above rules out intra-block collisions.
func updateBlock16Generic(tile []byte, ids []uint32, start int64) {
	for _, id := range ids {
		tile[int64(id)-start]++
	}
}

// postPass512 dispatches the ascending-order hit scan for one tile to
// the AVX-512 kernel when available, falling back to a portable scan.
func postPass512(tile []byte, threshold int, start int64, out []uint32) []uint32 {
	if implementation == "avx512" {
		return postPass512AVX512(tile, threshold, start, out)
	}
	return postPass512Generic(tile, threshold, start, out)
}

// postPass512Generic scans every byte in order, exactly like
// postPass256Generic but named separately so the 512-wide path can
// diverge (different tile size, different caller) without coupling the
// two packages of kernels together.
func postPass512Generic(tile []byte, threshold int, start int64, out []uint32) []uint32 {
	for i, c := range tile {
		if int(c) > threshold {
			out = append(out, uint32(start)+uint32(i))
		}
	}
	return out
}
