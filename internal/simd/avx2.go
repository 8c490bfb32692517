package simd

// ScanBlocked256 is the 256-bit blocked threshold counter (spec §4.2,
// C4). Counter increments are scalar, exactly like ScanBlocked; after
// every list has updated a tile, a post-pass scans the tile 32 bytes at
// a time with a vectorized byte compare-greater-than, emitting ids in
// ascending order within the tile. The emitted set is identical to
// ScanBlocked; only the intra-tile emission order differs.
func ScanBlocked256(lists []List, threshold int) []uint32 {
	return scanBlocked256(lists, threshold, TileSizeScalar)
}

func scanBlocked256(lists []List, threshold int, r int) []uint32 {
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
				for i := it; i < len(l); i++ {
					tile[int64(l[i])-start]++
				}
				cursors[k] = len(l)
				continue
			}

			i := it
			for i < len(l) && int64(l[i]) < start+int64(r) {
				tile[int64(l[i])-start]++
				i++
			}
			cursors[k] = i
		}

		out = growOutput(out, r)
		out = postPass256(tile, threshold, start, out)
	}

	return out
}

// postPass256 dispatches the ascending-order hit scan for one tile to
// the AVX2 kernel when the detected CPU supports it, falling back to a
// portable byte-by-byte scan otherwise.
func postPass256(tile []byte, threshold int, start int64, out []uint32) []uint32 {
	if implementation == "avx2" || implementation == "avx512" {
		return postPass256AVX2(tile, threshold, start, out)
	}
	return postPass256Generic(tile, threshold, start, out)
}

// postPass256Generic is the portable fallback: scan every byte in
// order and emit ids whose counter exceeds threshold. Used on any CPU
// without AVX2, and as the non-amd64 build's only implementation.
func postPass256Generic(tile []byte, threshold int, start int64, out []uint32) []uint32 {
	for i, c := range tile {
		if int(c) > threshold {
			out = append(out, uint32(start)+uint32(i))
		}
	}
	return out
}
