//go:build !amd64

package simd

// postPass256AVX2 has no vectorized implementation outside amd64; the
// dispatcher in avx2.go only reaches here if cpu.go's detection somehow
// reported avx2 on a non-amd64 target, which it never does, but the
// symbol must exist for the package to build on every platform.
func postPass256AVX2(tile []byte, threshold int, start int64, out []uint32) []uint32 {
	return postPass256Generic(tile, threshold, start, out)
}
