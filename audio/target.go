package audio

import (
	"sync/atomic"

	"github.com/dawnengine/yage2/dawnerr"
)

// MaxTargets bounds the router's fixed-capacity dispatch table. A graph
// with more mutable nodes than this cannot be built; Router.Register
// panics rather than growing, keeping the table's memory layout fixed
// for the lifetime of the sink.
const MaxTargets = 1024

var nextTargetID atomic.Uint32

// TargetID is a dense integer identifying one mutable graph node for
// event routing. IDs are assigned once, at graph construction time, by
// NewTargetID.
type TargetID uint32

// NewTargetID returns the next unused TargetID. Construction-time only:
// never call this from the render path.
func NewTargetID() TargetID {
	id := nextTargetID.Add(1)
	dawnerr.Assert(id < MaxTargets, "audio: target id %d exceeds MaxTargets %d", id, MaxTargets)
	return TargetID(id)
}

// Dispatcher applies an event payload to the node it was registered for.
// It runs on the audio thread, immediately before the block it affects;
// it must not allocate or block.
type Dispatcher func(payload any)

// target is one row of the Router's fixed dispatch table.
type target struct {
	id       TargetID
	dispatch Dispatcher
}

// Router is the sink's fixed-capacity event dispatch table, indexed by
// TargetID. It is built once per graph and walked only on the audio
// thread.
type Router struct {
	rows [MaxTargets]*target
}

// NewRouter returns an empty Router.
func NewRouter() *Router { return &Router{} }

// Register binds id to dispatch. Re-registering the same id overwrites
// the prior binding (used when a node is rebuilt without reassigning
// IDs).
func (r *Router) Register(id TargetID, dispatch Dispatcher) {
	r.rows[id] = &target{id: id, dispatch: dispatch}
}

// Dispatch routes payload to id's registered Dispatcher. In debug builds
// it panics if id was never registered; release builds silently drop the
// event, matching spec.md §4.3 ("Debug builds panic on unregistered IDs;
// release builds elide the check").
func (r *Router) Dispatch(id TargetID, payload any) {
	row := r.rows[id]
	dawnerr.Assert(row != nil, "audio: dispatch to unregistered target %d", id)
	if row != nil {
		row.dispatch(payload)
	}
}

// Event is one routed mutation: a target plus an opaque, node-specific
// payload (e.g. a waveform frequency change, a bus gain change).
type Event struct {
	Target  TargetID
	Payload any
}

// Queue is the bounded SPSC channel carrying Events from the world
// thread to the audio thread's Router. Send never blocks: a full queue
// silently drops the event, per spec.md §7 ("drop event silently, never
// block") — the audio thread must never stall waiting on a producer.
type Queue struct {
	events chan Event
}

// NewQueue returns a Queue with the given bounded capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{events: make(chan Event, capacity)}
}

// Send enqueues ev, reporting false if the queue was full and the event
// was dropped.
func (q *Queue) Send(ev Event) bool {
	select {
	case q.events <- ev:
		return true
	default:
		return false
	}
}

// Drain applies every currently queued Event to router, in arrival
// order. Sink.Pull calls it once per call, on the audio thread, before
// rendering any block.
func (q *Queue) Drain(router *Router) {
	for {
		select {
		case ev := <-q.events:
			router.Dispatch(ev.Target, ev.Payload)
		default:
			return
		}
	}
}

// Targeted is implemented by any graph node that owns or aggregates
// TargetIDs for event routing. Composite nodes flatten their children's
// Targets() into their own, so the root bus exposes every mutable node
// in the tree as one flat list.
type Targeted interface {
	Targets() []TargetID
}
