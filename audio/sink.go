package audio

import "github.com/dawnengine/yage2/dawnerr"

// RingCapacityBlocks bounds Ring's backing store, expressed in whole
// Blocks. Must be a power of two so index wraparound is a mask, not a
// modulo.
const RingCapacityBlocks = 64

// Ring is a power-of-two-capacity circular buffer of interleaved sample
// frames. It is written and read from the same goroutine (the platform
// callback, via Sink.Pull) so it needs no atomics of its own; it exists
// to decouple "how much was rendered" from "how much the callback asked
// for" across calls.
type Ring struct {
	frames     []float32 // interleaved, Channels per frame
	capacity   int        // in frames
	write      int        // frame index, mod capacity
	read       int
	occupied   int
}

// NewRing returns an empty Ring sized for RingCapacityBlocks blocks.
func NewRing() *Ring {
	capacity := RingCapacityBlocks * BlockSize
	dawnerr.Assert(capacity&(capacity-1) == 0, "audio: ring capacity %d is not a power of two", capacity)
	return &Ring{frames: make([]float32, capacity*Channels), capacity: capacity}
}

// Occupied reports how many frames are currently buffered.
func (r *Ring) Occupied() int { return r.occupied }

// mask returns idx modulo r.capacity, relying on capacity being a power
// of two.
func (r *Ring) mask(idx int) int { return idx & (r.capacity - 1) }

// Push appends one Block's worth of frames (BlockSize), interleaving it
// in the process. It never allocates.
func (r *Ring) Push(b *Block) {
	for i := 0; i < BlockSize; i++ {
		base := r.mask(r.write) * Channels
		for c := 0; c < Channels; c++ {
			r.frames[base+c] = b[c][i]
		}
		r.write++
	}
	r.occupied += BlockSize
}

// Pop copies exactly frameCount frames (frameCount*Channels floats) into
// dst and advances the read cursor. Callers must ensure Occupied() >=
// frameCount first.
func (r *Ring) Pop(dst []float32, frameCount int) {
	for i := 0; i < frameCount; i++ {
		base := r.mask(r.read) * Channels
		copy(dst[i*Channels:i*Channels+Channels], r.frames[base:base+Channels])
		r.read++
	}
	r.occupied -= frameCount
}

// Sink drives the graph's master Bus at block rate and buffers the
// interleaved result for the platform callback to Pull from.
type Sink struct {
	master *Bus
	router *Router
	queue  *Queue
	ring   *Ring
	info   BlockInfo
}

// NewSink returns a Sink rendering master at sampleRate, routing events
// from queue through router before each Pull.
func NewSink(master *Bus, router *Router, queue *Queue, sampleRate uint32) *Sink {
	return &Sink{
		master: master,
		router: router,
		queue:  queue,
		ring:   NewRing(),
		info:   BlockInfo{SampleRate: sampleRate},
	}
}

// Pull fills buf (a frameCount*Channels-length interleaved slice) with
// the next frameCount frames, rendering additional blocks from master as
// needed. This is the method a platform audio callback calls once per
// period; it is the engine's only audio-thread suspension-free hot path.
//
// Algorithm (spec.md §4.3):
//
//	while occupied(ring) < K:
//	    master.frame_start()
//	    block = master.render(info); info.sample_index += BLOCK
//	    interleave(block) -> ring
//	pop K frames -> output
func (s *Sink) Pull(buf []float32, frameCount int) {
	s.queue.Drain(s.router)
	for s.ring.Occupied() < frameCount {
		s.master.FrameStart()
		block := s.master.Render(s.info)
		s.info = s.info.Advance()
		s.ring.Push(&block)
	}
	s.ring.Pop(buf, frameCount)
}
