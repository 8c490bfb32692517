//go:build amd64

package simd

import "math/bits"

// maskGreaterAVX2 compares 32 tile bytes against a 32-byte broadcast
// threshold vector using the unsigned-compare-via-xor-0x80 bias trick
// (AVX2 has no unsigned byte compare-greater instruction) and returns a
// 32-bit mask with bit i set iff tile[i] > threshold. Implemented in
// avx2_amd64.s, generated from internal/simd/asm/generate.go.
//
//go:noescape
func maskGreaterAVX2(tile, thresholdVec *byte) uint32

// postPass256AVX2 is the AVX2-backed half of postPass256: 32-byte
// chunks go through maskGreaterAVX2, set bits are extracted by
// trailing-zero-count; any tail shorter than 32 bytes is scanned
// scalar-style.
func postPass256AVX2(tile []byte, threshold int, start int64, out []uint32) []uint32 {
	biased := byte(threshold) ^ 0x80
	var thresholdVec [32]byte
	for i := range thresholdVec {
		thresholdVec[i] = biased
	}

	n := len(tile)
	chunks := n / 32
	for c := 0; c < chunks; c++ {
		mask := maskGreaterAVX2(&tile[c*32], &thresholdVec[0])
		base := uint32(start) + uint32(c*32)
		for mask != 0 {
			bit := bits.TrailingZeros32(mask)
			out = append(out, base+uint32(bit))
			mask &= mask - 1
		}
	}
	for i := chunks * 32; i < n; i++ {
		if int(tile[i]) > threshold {
			out = append(out, uint32(start)+uint32(i))
		}
	}
	return out
}
