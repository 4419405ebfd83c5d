package render

import (
	"fmt"
	"time"
)

// MaxPasses bounds a Chain's length; construction above this limit panics.
const MaxPasses = 32

// Pass is one stage of the render pipeline: a shadow pass, an opaque
// geometry pass, a 2D overlay pass, and so on. A Chain runs every Pass
// in order, once per frame.
type Pass interface {
	Name() string
	// Targets reports the PassEventTargets this Pass owns, so an
	// EventRouter can be built once at construction time.
	Targets() []PassEventTarget
	Begin(backend Backend, frame *DataStreamFrame)
	OnRenderable(backend Backend, r *Renderable)
	End(backend Backend)
	Dispatch(event any)
}

// Chain is a fixed-capacity, ordered list of Passes run once per frame.
// The compile-time heterogeneous-list shape spec.md describes
// (Cons(Head, Tail) terminated by Nil) collapses to a Go slice here: a
// slice of the Pass interface is the idiomatic equivalent, since Go has
// no const-generic type-level list to build the cons-cell chain with.
type Chain struct {
	passes []Pass
}

// NewChain builds a Chain from passes, in the order they will run.
// Panics if more than MaxPasses are given.
func NewChain(passes ...Pass) *Chain {
	if len(passes) > MaxPasses {
		panic(fmt.Sprintf("render: chain of %d passes exceeds the %d pass maximum", len(passes), MaxPasses))
	}
	return &Chain{passes: append([]Pass(nil), passes...)}
}

// Len reports how many passes are in the chain.
func (c *Chain) Len() int { return len(c.passes) }

// Run executes every pass in order for one frame, returning a
// RenderResult accumulated across all passes and per-pass wall time.
func (c *Chain) Run(backend Backend, frame *DataStreamFrame) (RenderResult, Durations) {
	var result RenderResult
	var durations Durations
	for i, pass := range c.passes {
		start := time.Now()
		pass.Begin(backend, frame)
		for ri := range frame.Renderables {
			pass.OnRenderable(backend, &frame.Renderables[ri])
			result.DrawCalls++
			result.Primitives += frame.Renderables[ri].Primitives
		}
		pass.End(backend)
		durations[i] = time.Since(start)
	}
	return result, durations
}

// RenderResult accumulates per-frame statistics across every pass in a Chain.
type RenderResult struct {
	DrawCalls  int
	Primitives int
}

// Durations holds one wall-clock measurement per pass slot in a Chain,
// indexed the same way the passes were given to NewChain.
type Durations [MaxPasses]time.Duration
