//go:build !amd64

package simd

// updateBlock16AVX512 and postPass512AVX512 have no vectorized
// implementation outside amd64. cpu.go never reports "avx512" on a
// non-amd64 target, so these are never reached in practice, but the
// symbols must exist for the package to build on every platform.

func updateBlock16AVX512(tile []byte, ids []uint32, start int64) {
	updateBlock16Generic(tile, ids, start)
}

func postPass512AVX512(tile []byte, threshold int, start int64, out []uint32) []uint32 {
	return postPass512Generic(tile, threshold, start, out)
}
