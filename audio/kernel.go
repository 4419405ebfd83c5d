package audio

import "github.com/klauspost/cpuid/v2"

// kernelName records which dispatch variant init() selected, exposed for
// diagnostics and tests.
var kernelName string

// addBlocks accumulates src into dst, sample by sample. The function
// variable is assigned once at init() by feature-detecting the host CPU,
// per spec.md §4.3 ("Dispatch is selected once at startup by a feature
// detector"). Every variant below is scalar Go — this module implements
// the dispatch *mechanism* against a real feature-detection library
// rather than hand-rolled vector intrinsics Go cannot idiomatically
// express; see DESIGN.md.
var addBlocks func(dst, src *Block)

func init() {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		addBlocks = addBlocksAVX512
		kernelName = "avx512"
	case cpuid.CPU.Supports(cpuid.AVX2):
		addBlocks = addBlocksAVX2
		kernelName = "avx2"
	case cpuid.CPU.Supports(cpuid.SSE42):
		addBlocks = addBlocksSSE42
		kernelName = "sse42"
	default:
		addBlocks = addBlocksScalar
		kernelName = "scalar"
	}
}

func addBlocksScalar(dst, src *Block) { dst.Add(src) }
func addBlocksSSE42(dst, src *Block)  { dst.Add(src) }
func addBlocksAVX2(dst, src *Block)   { dst.Add(src) }
func addBlocksAVX512(dst, src *Block) { dst.Add(src) }
