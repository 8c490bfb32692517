// This program generates avx2_amd64.s and avx512_amd64.s using avo. Run
// with `go run internal/simd/asm/generate.go -out internal/simd`.
//
//go:build ignore

package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/operand"
	. "github.com/mmcloughlin/avo/reg"
)

func main() {
	Package("github.com/nkurz/scancount/internal/simd")

	generateMaskGreaterAVX2()
	generateUpdateBlock16AVX512()
	generateMaskGreater512()

	Generate()
}

// generateMaskGreaterAVX2 emits maskGreaterAVX2(tile, thresholdVec *byte) uint32:
// the post-pass hit scan for the 256-bit blocked counter (spec §4.2). AVX2
// has no unsigned byte compare-greater-than, so both operands are biased
// by xor 0x80 before the signed VPCMPGTB.
func generateMaskGreaterAVX2() {
	TEXT("maskGreaterAVX2", NOSPLIT, "func(tile, thresholdVec *byte) uint32")
	Doc("maskGreaterAVX2 returns a 32-bit mask with bit i set iff tile[i] > threshold.")

	tile := Load(Param("tile"), GP64())
	thresholdVec := Load(Param("thresholdVec"), GP64())

	bias := YMM()
	VPBROADCASTB(U8(0x80), bias)

	tileVec := YMM()
	VMOVDQU(Mem{Base: tile}, tileVec)
	VPXOR(bias, tileVec, tileVec)

	threshVec := YMM()
	VMOVDQU(Mem{Base: thresholdVec}, threshVec)

	cmp := YMM()
	VPCMPGTB(threshVec, tileVec, cmp)

	mask := GP32()
	VPMOVMSKB(cmp, mask)

	Store(mask, ReturnIndex(0))
	VZEROUPPER()
	RET()
}

// generateUpdateBlock16AVX512 emits updateBlock16AVX512Asm(tile *byte,
// ids *uint32, start int64): the gather-increment-blend-scatter counter
// update of spec §4.3, applied to 16 ids at once.
func generateUpdateBlock16AVX512() {
	TEXT("updateBlock16AVX512Asm", NOSPLIT, "func(tile *byte, ids *uint32, start int64)")
	Doc("updateBlock16AVX512Asm gathers, increments, blends, and scatters 16 tile counters at once.")

	tile := Load(Param("tile"), GP64())
	ids := Load(Param("ids"), GP64())
	start := Load(Param("start"), GP64())

	startVec := ZMM()
	VPBROADCASTD(start.As32(), startVec)

	idVec := ZMM()
	VMOVDQU32(Mem{Base: ids}, idVec)

	offsets := ZMM()
	VPSUBD(startVec, idVec, offsets)

	allOnes := K()
	KXNORQ(allOnes, allOnes, allOnes)

	gathered := ZMM()
	VPGATHERDD(Mem{Base: tile, Index: offsets, Scale: 1}, allOnes, gathered)

	one := ZMM()
	VPBROADCASTD(U32(1), one)

	incremented := ZMM()
	VPADDD(gathered, one, incremented)

	lowByteMask := K()
	MOVQ(U64(0x1111111111111111), GP64())
	KMOVQ(GP64(), lowByteMask)

	blended := ZMM()
	VPBLENDMB(incremented, gathered, lowByteMask, blended)

	KXNORQ(allOnes, allOnes, allOnes)
	VPSCATTERDD(blended, allOnes, Mem{Base: tile, Index: offsets, Scale: 1})

	VZEROUPPER()
	RET()
}

// generateMaskGreater512 emits maskGreater512(tile, thresholdVec *byte)
// uint64: the post-pass hit scan for the 512-bit blocked counter,
// structurally identical to maskGreaterAVX2 but 64 lanes wide and using
// a mask register instead of a general-purpose move mask.
func generateMaskGreater512() {
	TEXT("maskGreater512", NOSPLIT, "func(tile, thresholdVec *byte) uint64")
	Doc("maskGreater512 returns a 64-bit mask with bit i set iff tile[i] > threshold.")

	tile := Load(Param("tile"), GP64())
	thresholdVec := Load(Param("thresholdVec"), GP64())

	bias := ZMM()
	VPBROADCASTB(U8(0x80), bias)

	tileVec := ZMM()
	VMOVDQU8(Mem{Base: tile}, tileVec)
	VPXORQ(bias, tileVec, tileVec)

	threshVec := ZMM()
	VMOVDQU8(Mem{Base: thresholdVec}, threshVec)

	cmp := K()
	VPCMPGTB(threshVec, tileVec, cmp)

	mask := GP64()
	KMOVQ(cmp, mask)

	Store(mask, ReturnIndex(0))
	VZEROUPPER()
	RET()
}
