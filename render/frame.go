package render

import (
	"sync/atomic"

	"github.com/dawnengine/yage2/math/lin"
)

// Renderable is one draw-ready instance: a Model plus the world
// transform and primitive count the world loop computed for it this
// tick. A Pass never mutates a Renderable; it only reads it.
type Renderable struct {
	Model      Model
	Transform  *lin.M4
	Primitives int // triangle (or line) count, folded into RenderResult.
}

// DataStreamFrame is the complete, immutable-once-published snapshot the
// world loop hands to the renderer thread once per tick: every
// Renderable plus the camera transform to draw them with. A Chain reads
// it start to finish and never writes it.
type DataStreamFrame struct {
	ViewProj    *lin.M4
	Renderables []Renderable
}

// FrameBuffer is the lock-free, double-buffered handoff from the world
// thread (the sole writer, via Publish) to the render thread (the sole
// reader, via Latest). Sequence lets a reader detect whether it picked
// up a new frame since its last Latest call without comparing pointers
// directly against a value it may have already freed.
type FrameBuffer struct {
	current  atomic.Pointer[DataStreamFrame]
	sequence atomic.Uint64
}

// NewFrameBuffer returns an empty FrameBuffer; Latest returns nil until
// the first Publish.
func NewFrameBuffer() *FrameBuffer { return &FrameBuffer{} }

// Publish makes frame the one Latest returns, bumping Sequence. Called
// once per world tick, from the world thread only.
func (b *FrameBuffer) Publish(frame *DataStreamFrame) {
	b.current.Store(frame)
	b.sequence.Add(1)
}

// Latest returns the most recently published frame and its sequence
// number. Safe to call concurrently with Publish; never blocks.
func (b *FrameBuffer) Latest() (*DataStreamFrame, uint64) {
	return b.current.Load(), b.sequence.Load()
}
