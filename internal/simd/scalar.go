package simd

// ScanBlocked is the scalar cache-blocked threshold counter (spec §4.1,
// C3). It sweeps tiles of TileSizeScalar bytes over the union of lists,
// incrementing a dense byte counter per id and emitting an id the
// instant its counter transitions from threshold to threshold+1.
//
// Preconditions: every list in lists is strictly ascending and
// duplicate-free; threshold plus the number of lists that can contain
// any one id must fit in a byte (the kernel does not check this).
func ScanBlocked(lists []List, threshold int) []uint32 {
	return scanBlocked(lists, threshold, TileSizeScalar)
}

// scanBlocked is ScanBlocked parameterized by tile size, split out so
// tests can exercise tile-boundary behavior at sizes other than the
// production constant.
func scanBlocked(lists []List, threshold int, r int) []uint32 {
	max := maxID(lists)
	if max < 0 {
		return nil
	}

	cursors := make([]Cursor, len(lists))
	tile := make([]byte, r)
	out := make([]uint32, 0, r)

	for start := int64(0); start <= max; start += int64(r) {
		for i := range tile {
			tile[i] = 0
		}

		for k, l := range lists {
			it := cursors[k]
			if it >= len(l) {
				continue
			}

			lastVal := int64(l[len(l)-1])
			if lastVal < start+int64(r) {
				// final-check: the remainder of this list fits entirely
				// in this tile.
				for i := it; i < len(l); i++ {
					out = growOutput(out, r)
					off := int64(l[i]) - start
					tile[off]++
					if tile[off] == byte(threshold+1) {
						out = append(out, l[i])
					}
				}
				cursors[k] = len(l)
				continue
			}

			// main-check: advance while still inside this tile.
			i := it
			for i < len(l) && int64(l[i]) < start+int64(r) {
				out = growOutput(out, r)
				off := int64(l[i]) - start
				tile[off]++
				if tile[off] == byte(threshold+1) {
					out = append(out, l[i])
				}
				i++
			}
			cursors[k] = i
		}
	}

	return out
}
