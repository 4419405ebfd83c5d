// Package dawn assembles the engine's three independently-clocked
// subsystems — the asset hub, the audio graph, and the render pipeline —
// around a single world.Loop, and owns the goroutines and rendezvous
// barriers that keep the world thread and the renderer thread in lock
// step.
package dawn

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/audio"
	"github.com/dawnengine/yage2/render"
	"github.com/dawnengine/yage2/world"
)

// BuildFrame turns one world tick into the snapshot the renderer consumes.
// The caller supplies this: the engine core has no scene graph of its
// own, only the plumbing to get a frame from the world thread to the
// render thread once per tick.
type BuildFrame func(tick world.TickEvent) *render.DataStreamFrame

// Config assembles an Engine's subsystems. Every field is required unless
// documented otherwise.
type Config struct {
	Source    asset.Source // the asset hub's decode seam
	IOWorkers int          // hub I/O worker goroutines; defaults to 1

	AudioMaster *audio.Bus
	AudioRouter *audio.Router
	AudioQueue  *audio.Queue
	SampleRate  uint32

	Backend render.Backend // nil runs the engine headless, with no renderer goroutine
	Chain   *render.Chain

	TicksPerSecond float64 // > 0 selects fixed-rate pacing when Backend is nil; ignored otherwise
	Monitored      bool    // publish world.MonitorEvent samples

	BuildFrame BuildFrame
}

// Engine owns the world loop's goroutine, the renderer's goroutine, the
// asset Hub, and the audio Sink, and coordinates their shutdown.
type Engine struct {
	Bus  *world.Bus
	Hub  *asset.Hub
	Sink *audio.Sink

	backend render.Backend
	chain   *render.Chain
	frames  *render.FrameBuffer
	events  *render.EventQueue
	router  *render.EventRouter

	buildFrame BuildFrame

	worldBefore *world.Rendezvous
	worldAfter  *world.Rendezvous
	proxy       *world.LoopProxy

	rendererStop atomic.Bool
	rendererDone chan struct{}

	stopOnce sync.Once
}

// New builds an Engine from cfg and starts the world loop's goroutine;
// the renderer goroutine (if cfg.Backend is set) starts with Start.
func New(cfg Config) *Engine {
	ioWorkers := cfg.IOWorkers
	if ioWorkers < 1 {
		ioWorkers = 1
	}

	hub := asset.NewHub(cfg.Source, ioWorkers)
	if cfg.Backend != nil {
		for _, factory := range render.Factories(cfg.Backend) {
			hub.RegisterFactory(factory, 64)
		}
	}

	e := &Engine{
		Bus:          world.NewBus(),
		Hub:          hub,
		Sink:         audio.NewSink(cfg.AudioMaster, cfg.AudioRouter, cfg.AudioQueue, cfg.SampleRate),
		backend:      cfg.Backend,
		chain:        cfg.Chain,
		frames:       render.NewFrameBuffer(),
		events:       render.NewEventQueue(64),
		router:       render.NewEventRouter(),
		buildFrame:   cfg.BuildFrame,
		worldBefore:  world.NewRendezvous(2),
		worldAfter:   world.NewRendezvous(2),
		rendererDone: make(chan struct{}),
	}

	world.Subscribe(e.Bus, func(tick world.TickEvent) {
		e.Hub.Poll()
		if e.buildFrame != nil {
			e.frames.Publish(e.buildFrame(tick))
		}
	})

	// A renderer thread must stay in lock step with the world thread, so
	// any time a Backend is present the world loop paces against the
	// rendezvous barriers regardless of TicksPerSecond. Headless (no
	// Backend) engines have nothing to rendezvous with, so they pace
	// themselves: fixed-rate if requested, otherwise unsynchronized.
	var loop *world.Loop
	switch {
	case cfg.Backend != nil:
		loop = world.NewRendezvousLoop(e.Bus, e.worldBefore, e.worldAfter, cfg.Monitored)
	case cfg.TicksPerSecond > 0:
		loop = world.NewFixedRateLoop(e.Bus, cfg.TicksPerSecond, cfg.Monitored)
	default:
		loop = world.NewUnsynchronizedLoop(e.Bus, cfg.Monitored)
	}
	e.proxy = world.Spawn(loop)

	return e
}

// Start launches the renderer goroutine (when the Engine was built with
// a Backend) and arranges for Stop to run once ctx is cancelled. Start
// returns immediately; the caller owns ctx's lifetime.
func (e *Engine) Start(ctx context.Context) {
	if e.backend != nil {
		go e.runRenderer()
	}
	go func() {
		<-ctx.Done()
		e.Stop()
	}()
}

// runRenderer waits for each world tick via the before-frame barrier,
// drains any queued pass events, runs the render chain against the
// latest published frame, then releases the after-frame barrier with how
// long that took.
func (e *Engine) runRenderer() {
	defer close(e.rendererDone)
	if err := e.backend.Init(); err != nil {
		return
	}
	for {
		if e.rendererStop.Load() {
			return
		}
		e.worldBefore.Wait(0)
		start := time.Now()

		e.events.Drain(e.router)
		e.backend.Before()
		if frame, _ := e.frames.Latest(); frame != nil && e.chain != nil {
			e.chain.Run(e.backend, frame)
		}
		e.backend.After()

		e.worldAfter.Wait(time.Since(start))
	}
}

// SendEvent queues a pass-owned mutation for the next frame the render
// thread draws. Safe to call from any goroutine; never blocks.
func (e *Engine) SendEvent(ev render.Event) bool { return e.events.Send(ev) }

// RegisterPassTarget binds a PassEventTarget to its Dispatcher, making it
// reachable by SendEvent. Call during setup, before Start.
func (e *Engine) RegisterPassTarget(id render.PassEventTarget, dispatch render.Dispatcher) {
	e.router.Register(id, dispatch)
}

// Stop requests the world loop and, if running, the renderer goroutine
// to exit, and blocks until both have and the asset hub has drained.
// Idempotent: safe to call more than once, or concurrently with Start's
// ctx-triggered shutdown.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.rendererStop.Store(true)
		e.worldBefore.Unlock()
		e.worldAfter.Unlock()
		e.proxy.Stop()
		if e.backend != nil {
			<-e.rendererDone
		}
		e.Hub.Shutdown()
	})
}
