package asset

import (
	"fmt"
	"sync/atomic"
)

// Handle is a shared, reference-counted smart pointer to a live runtime
// asset object. It carries an opaque (kind, pointer) pair and is safe to
// share across goroutines: the registry mutates state only from the hub
// goroutine, while other goroutines hold stable Handle values whose
// underlying pointer never moves for the handle's lifetime.
//
// Dropping the last Handle does not free the object directly — it
// signals the owning Hub (via strong count observation), which schedules
// a Free task; the factory that built the object performs the actual
// teardown once that task runs.
type Handle struct {
	id     ID
	kind   Kind
	ptr    any // concrete *T produced by a factory; cast via Cast/Typed
	strong *atomic.Int64
	onDrop func(ID) // invoked when a Drop brings the strong count down to 1
}

// newHandle wraps ptr (expected to be a non-nil pointer to a factory's
// runtime object) behind a Handle with an initial strong count of 1 —
// the hub's own registry entry counts as one reference.
func newHandle(id ID, kind Kind, ptr any, onDrop func(ID)) *Handle {
	h := &Handle{id: id, kind: kind, ptr: ptr, strong: new(atomic.Int64), onDrop: onDrop}
	h.strong.Store(1)
	return h
}

// ID returns the asset ID this handle refers to.
func (h *Handle) ID() ID { return h.id }

// Kind returns the asset's type tag.
func (h *Handle) Kind() Kind { return h.kind }

// StrongCount returns the current reference count. Exposed for tests and
// for the hub's free-scan; not meant to drive application logic, since it
// is inherently racy against concurrent Clone/Drop.
func (h *Handle) StrongCount() int64 { return h.strong.Load() }

// Clone increments the strong count and returns a new Handle value
// sharing the same underlying object. Each returned Handle must be
// dropped exactly once.
func (h *Handle) Clone() *Handle {
	h.strong.Add(1)
	return &Handle{id: h.id, kind: h.kind, ptr: h.ptr, strong: h.strong, onDrop: h.onDrop}
}

// Drop releases this reference. When the strong count reaches 1 (only
// the hub's own registry entry remains), the registered onDrop callback
// fires exactly once to schedule the asset's Free task.
func (h *Handle) Drop() {
	if h.strong.Add(-1) == 1 && h.onDrop != nil {
		h.onDrop(h.id)
	}
}

// Cast returns the underlying object as type T, panicking on a type tag
// mismatch. Production builds are expected to have already validated the
// Kind via Typed[T]; Cast is the unchecked escape hatch used internally
// by factories that already know the concrete type.
func Cast[T any](h *Handle) *T {
	v, ok := h.ptr.(*T)
	if !ok {
		panic(fmt.Sprintf("asset: handle %s type mismatch: held %T, requested %T", h.id, h.ptr, (*T)(nil)))
	}
	return v
}

// Typed is a thin wrapper asserting, at construction, that a Handle holds
// a *T. Cloning a Typed[T] clones the underlying Handle and so shares its
// reference count.
type Typed[T any] struct {
	inner *Handle
}

// NewTyped asserts h holds a *T and returns a Typed[T] wrapper. It panics
// on mismatch, matching the source engine's debug-assertion behavior —
// callers that cannot tolerate a panic should check h.Kind() first.
func NewTyped[T any](h *Handle) Typed[T] {
	_ = Cast[T](h) // panics on mismatch
	return Typed[T]{inner: h}
}

// Get returns the underlying *T.
func (t Typed[T]) Get() *T { return Cast[T](t.inner) }

// Handle returns the untyped Handle backing this Typed[T].
func (t Typed[T]) Handle() *Handle { return t.inner }

// Clone increments the reference count and returns a new Typed[T] sharing
// the same object.
func (t Typed[T]) Clone() Typed[T] { return Typed[T]{inner: t.inner.Clone()} }

// Drop releases this reference.
func (t Typed[T]) Drop() { t.inner.Drop() }
