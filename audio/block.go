// Package audio implements the engine's block-rate audio render graph:
// a compile-time tree of Source, Effect, and Bus nodes driven at a fixed
// block size, an event-routing sidechannel that lets the world thread
// mutate live nodes without locking the render path, and a ring-buffered
// interleaved sink a platform audio callback pulls from.
//
// Package audio is provided as part of the Dawn/Yage2 engine core,
// generalized from a single OpenAL binding into a full render-graph
// architecture of sources, effects, and busses.
package audio

const (
	// BlockSize is the number of sample frames processed per graph render
	// call.
	BlockSize = 128
	// Channels is the fixed planar channel count (stereo).
	Channels = 2
)

// Block is one planar frame of audio: Channels independent sample runs of
// BlockSize samples each. It is a fixed-size array so graph nodes can pass
// it by value on the stack with no heap allocation on the render path.
type Block [Channels][BlockSize]float32

// Clear zeroes every sample in b.
func (b *Block) Clear() {
	for c := range b {
		for i := range b[c] {
			b[c][i] = 0
		}
	}
}

// Add accumulates src into b, sample by sample.
func (b *Block) Add(src *Block) {
	for c := range b {
		for i := range b[c] {
			b[c][i] += src[c][i]
		}
	}
}

// Scale multiplies every sample in b by gain.
func (b *Block) Scale(gain float32) {
	for c := range b {
		for i := range b[c] {
			b[c][i] *= gain
		}
	}
}

// BlockInfo threads per-block timing state top-down through a render
// call: the sample index at the start of the block and the device's
// sample rate.
type BlockInfo struct {
	SampleIndex uint64
	SampleRate  uint32
}

// Advance returns the BlockInfo for the block immediately following this
// one.
func (info BlockInfo) Advance() BlockInfo {
	return BlockInfo{SampleIndex: info.SampleIndex + BlockSize, SampleRate: info.SampleRate}
}

// InterleavedBlock is one block's worth of interleaved samples, the
// layout a platform audio callback expects: BlockSize*Channels floats,
// channel-minor.
type InterleavedBlock []float32

// NewInterleavedBlock allocates an InterleavedBlock sized for one Block.
func NewInterleavedBlock() InterleavedBlock {
	return make(InterleavedBlock, BlockSize*Channels)
}

// Interleave writes b's planar samples into dst in channel-minor order.
// dst must have length BlockSize*Channels.
func Interleave(dst InterleavedBlock, b *Block) {
	for i := 0; i < BlockSize; i++ {
		for c := 0; c < Channels; c++ {
			dst[i*Channels+c] = b[c][i]
		}
	}
}
