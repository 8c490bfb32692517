package simd

// ScanReference is the non-blocked oracle counter (spec §4.5, C6): one
// counter byte per id in [0, maxID], incremented linearly, then scanned
// linearly for ids whose count exceeds threshold. Always produces
// ascending output. Used only for correctness verification and as a
// wall-clock baseline — it is never the fast path.
func ScanReference(lists []List, threshold int) []uint32 {
	max := maxID(lists)
	if max < 0 {
		return nil
	}

	counters := make([]byte, max+1)
	for _, l := range lists {
		for _, id := range l {
			counters[id]++
		}
	}

	out := make([]uint32, 0)
	for i, c := range counters {
		if int(c) > threshold {
			out = append(out, uint32(i))
		}
	}
	return out
}
