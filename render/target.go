package render

import (
	"sync/atomic"

	"github.com/dawnengine/yage2/dawnerr"
)

// MaxPassTargets bounds a pipeline's fixed-capacity event dispatch
// table. A pipeline with more mutable pass-owned targets than this
// cannot be built; EventRouter.Register panics rather than growing,
// mirroring the audio graph's audio.Router.
const MaxPassTargets = 64

var nextPassEventTarget atomic.Uint32

// PassEventTarget is a dense integer identifying one mutable pass-owned
// node (a uniform, a viewport, a render target) for event routing. IDs
// are assigned once, at pipeline construction time, by NewPassEventTarget.
type PassEventTarget uint32

// NewPassEventTarget returns the next unused PassEventTarget.
// Construction-time only: never call this from the render path.
func NewPassEventTarget() PassEventTarget {
	id := nextPassEventTarget.Add(1)
	dawnerr.Assert(id < MaxPassTargets, "render: pass event target %d exceeds MaxPassTargets %d", id, MaxPassTargets)
	return PassEventTarget(id)
}

// Dispatcher applies an event payload to the pass-owned node it was
// registered for. It runs on the render thread immediately before the
// frame it affects; it must not block.
type Dispatcher func(payload any)

type passRow struct {
	id       PassEventTarget
	dispatch Dispatcher
}

// EventRouter is a pipeline's fixed-capacity event dispatch table,
// indexed by PassEventTarget. It is built once per Chain and walked
// only on the render thread.
type EventRouter struct {
	rows [MaxPassTargets]*passRow
}

// NewEventRouter returns an empty EventRouter.
func NewEventRouter() *EventRouter { return &EventRouter{} }

// Register binds id to dispatch. Re-registering the same id overwrites
// the prior binding.
func (r *EventRouter) Register(id PassEventTarget, dispatch Dispatcher) {
	r.rows[id] = &passRow{id: id, dispatch: dispatch}
}

// Dispatch routes payload to id's registered Dispatcher. In debug
// builds it panics if id was never registered; release builds silently
// drop the event.
func (r *EventRouter) Dispatch(id PassEventTarget, payload any) {
	row := r.rows[id]
	dawnerr.Assert(row != nil, "render: dispatch to unregistered pass target %d", id)
	if row != nil {
		row.dispatch(payload)
	}
}

// Event is one routed mutation: a pass-owned target plus an opaque,
// node-specific payload (e.g. a viewport resize, a clear colour change).
type Event struct {
	Target  PassEventTarget
	Payload any
}

// EventQueue is the bounded SPSC channel carrying Events from the world
// thread to the render thread's EventRouter. Send never blocks: a full
// queue silently drops the event, matching the audio graph's Queue.
type EventQueue struct {
	events chan Event
}

// NewEventQueue returns an EventQueue with the given bounded capacity.
func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{events: make(chan Event, capacity)}
}

// Send enqueues ev, reporting false if the queue was full and the event
// was dropped.
func (q *EventQueue) Send(ev Event) bool {
	select {
	case q.events <- ev:
		return true
	default:
		return false
	}
}

// Drain applies every currently queued Event to router, in arrival
// order. Called once per frame, before Chain.Run, on the render thread.
func (q *EventQueue) Drain(router *EventRouter) {
	for {
		select {
		case ev := <-q.events:
			router.Dispatch(ev.Target, ev.Payload)
		default:
			return
		}
	}
}
