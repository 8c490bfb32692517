package simd

import (
	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

// CPUFeatures contains the detected CPU capabilities relevant to the
// scan kernels.
type CPUFeatures struct {
	Vendor    string
	HasAVX2   bool
	HasAVX512 bool
}

// Global CPU detection state, set once at package init.
var (
	features       CPUFeatures
	implementation string
)

func init() {
	detectCPU()
}

// detectCPU probes CPU capabilities with cpuid.v2 and cross-checks the
// AVX2 result against golang.org/x/sys/cpu, then picks the best kernel
// variant with a one-tier-at-a-time fallback: avx512 -> avx2 -> scalar.
func detectCPU() {
	hasAVX512 := cpuid.CPU.Supports(cpuid.AVX512F) &&
		cpuid.CPU.Supports(cpuid.AVX512DQ) &&
		cpuid.CPU.Supports(cpuid.AVX512BW) &&
		cpuid.CPU.Supports(cpuid.AVX512VL)

	hasAVX2 := cpuid.CPU.Supports(cpuid.AVX2) && cpu.X86.HasAVX2

	features = CPUFeatures{
		Vendor:    cpuid.CPU.VendorString,
		HasAVX2:   hasAVX2,
		HasAVX512: hasAVX512,
	}

	switch {
	case features.HasAVX512:
		implementation = "avx512"
	case features.HasAVX2:
		implementation = "avx2"
	default:
		implementation = "scalar"
	}
}

// GetCPUFeatures returns the detected CPU capabilities.
func GetCPUFeatures() CPUFeatures {
	return features
}

// GetImplementation returns the name of the kernel variant selected at
// startup ("avx512", "avx2", or "scalar").
func GetImplementation() string {
	return implementation
}
