// Package world implements the tick generator and inter-thread
// synchronization points that pace the engine: a typed event bus, a
// fixed-rate or rendezvous-synchronized loop, and the proxy that owns
// the loop's goroutine from the outside.
package world

import "reflect"

// TickEvent is published once per loop iteration. Frame is monotonic and
// never resets for the lifetime of a Loop.
type TickEvent struct {
	Frame uint64
	Delta float32 // seconds since the previous tick
	Total float32 // seconds since the loop started
}

// ExitEvent requests that the loop stop after the current tick. A
// handler typically publishes this in response to a window-close or
// quit command; the loop itself only ever reads the flag it sets.
type ExitEvent struct{}

// InterSyncEvent is published after every tick's handlers have run,
// signalling that frame's data is safe for another thread to consume.
type InterSyncEvent struct {
	Frame uint64
}

// Sample holds the min/avg/max of a monitored quantity over a window.
type Sample struct {
	Min float64
	Avg float64
	Max float64
}

// MonitorEvent reports loop health once per monitoring window. Load is
// dimensionless: cycle_time * ticks_per_second.
type MonitorEvent struct {
	CycleTime Sample // seconds
	TPS       Sample
	Load      Sample
}

// Bus is a typed publish/subscribe event bus. Handlers are dispatched in
// registration order for a given event type; an event published during
// a Tick is delivered to every handler already registered for that
// type, synchronously, before Publish returns.
//
// Every subscription, including one made while a Publish is in flight
// (e.g. a handler that itself subscribes), is held back and only takes
// effect starting with the bus's next BeginFrame call, matching the "handlers added mid-frame
// take effect at N+1" ordering guarantee.
type Bus struct {
	handlers map[reflect.Type][]func(any)
	pending  []pendingSubscription
}

type pendingSubscription struct {
	typ reflect.Type
	fn  func(any)
}

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]func(any))}
}

// Subscribe queues handler for events of type E; it receives every
// publish made after the bus's next BeginFrame. It is generic so callers never type-assert at the call site.
func Subscribe[E any](b *Bus, handler func(E)) {
	var zero E
	typ := reflect.TypeOf(zero)
	wrapped := func(event any) { handler(event.(E)) }
	b.pending = append(b.pending, pendingSubscription{typ: typ, fn: wrapped})
}

// BeginFrame promotes subscriptions queued since the last BeginFrame so
// they become visible to the next Publish. The Loop calls this once per
// tick, before dispatching TickEvent.
func (b *Bus) BeginFrame() {
	if len(b.pending) == 0 {
		return
	}
	for _, p := range b.pending {
		b.handlers[p.typ] = append(b.handlers[p.typ], p.fn)
	}
	b.pending = b.pending[:0]
}

// Publish dispatches event to every handler subscribed to its dynamic
// type, in registration order.
func (b *Bus) Publish(event any) {
	typ := reflect.TypeOf(event)
	for _, fn := range b.handlers[typ] {
		fn(event)
	}
}
