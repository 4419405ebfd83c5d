package asset

import (
	"fmt"

	"github.com/dawnengine/yage2/dawnerr"
	"golang.org/x/sync/errgroup"
)

// Source reads a decoded IR body for id. It is the hub's seam onto the
// package codec layer (dac.Reader plus a per-Kind decoder); the hub
// itself never parses container bytes.
type Source interface {
	ReadIR(id ID, header Header) (IR, error)
}

// Event reports an asynchronous outcome of the hub's scheduling loop.
type Event struct {
	RequestCompleted *RequestID
	RequestFailed    *RequestFailure
}

// RequestFailure names a failed request and why.
type RequestFailure struct {
	Request RequestID
	Err     error
}

// ioJob is one Read command dispatched to an I/O worker goroutine.
type ioJob struct {
	task   TaskID
	id     ID
	header Header
}

type ioResult struct {
	task TaskID
	id   ID
	ir   IR
	err  error
}

// Hub owns the Registry and TaskPool and is the only goroutine that
// mutates either. It drives factories and I/O workers over bounded
// channels and reports request outcomes on its Events channel.
//
// Hub is the Go-channel analogue of the source engine's hub: one owning
// goroutine, lock-free bounded SPSC queues to each factory, no mutex ever
// held across a factory call or a wait.
type Hub struct {
	registry  *Registry
	pool      *TaskPool
	source    Source
	factories map[Kind]*FactoryBinding

	ioJobs    chan ioJob
	ioResults chan ioResult
	ioStop    chan struct{}
	ioGroup   *errgroup.Group

	events chan Event
}

// NewHub creates a Hub with ioWorkers background goroutines servicing
// Read tasks via source.
func NewHub(source Source, ioWorkers int) *Hub {
	h := &Hub{
		registry:  NewRegistry(),
		pool:      NewTaskPool(),
		source:    source,
		factories: make(map[Kind]*FactoryBinding),
		ioJobs:    make(chan ioJob, 64),
		ioResults: make(chan ioResult, 64),
		ioStop:    make(chan struct{}),
		events:    make(chan Event, 64),
	}
	if ioWorkers < 1 {
		ioWorkers = 1
	}
	h.ioGroup = new(errgroup.Group)
	for i := 0; i < ioWorkers; i++ {
		h.ioGroup.Go(h.ioWorker)
	}
	return h
}

// ioWorker services Read jobs until ioStop is closed. It returns nil
// unconditionally; the errgroup.Group is used for its coordinated
// shutdown (Shutdown's Wait blocks until every worker has observed
// ioStop), not for error propagation — a Read failure travels back as
// an ioResult, not a goroutine error.
func (h *Hub) ioWorker() error {
	for {
		select {
		case <-h.ioStop:
			return nil
		case job := <-h.ioJobs:
			ir, err := h.source.ReadIR(job.id, job.header)
			h.ioResults <- ioResult{task: job.task, id: job.id, ir: ir, err: err}
		}
	}
}

// Registry exposes the underlying Registry for read-only inspection
// (tests, monitoring). Only the hub goroutine may mutate it.
func (h *Hub) Registry() *Registry { return h.registry }

// Events returns the channel Request outcomes are reported on.
func (h *Hub) Events() <-chan Event { return h.events }

// RegisterFactory binds a Factory to the hub for its asset Kind.
func (h *Hub) RegisterFactory(f Factory, queueCapacity int) {
	h.factories[f.Kind()] = NewFactoryBinding(f, queueCapacity)
}

// RegisterHeader adds a known asset's header to the registry in the
// Empty state, making it requestable.
func (h *Hub) RegisterHeader(header Header) error {
	return h.registry.Put(header)
}

// RequestLoad decomposes and enqueues a load for aid.
func (h *Hub) RequestLoad(aid ID) (RequestID, error) {
	return h.pool.RequestLoad(aid, h.registry)
}

// RequestLoadAll decomposes and enqueues a load for every registered asset.
func (h *Hub) RequestLoadAll() (RequestID, error) {
	qid, err := h.pool.RequestLoadAll(h.registry)
	if err != nil {
		return 0, err
	}
	if !h.pool.Pending(qid) {
		// Nothing to do: report completion immediately, per spec.md §8
		// "Request with no assets succeeds immediately".
		h.events <- Event{RequestCompleted: &qid}
	}
	return qid, nil
}

// Poll drives one scheduling pass: drain factory/IO results, dispatch
// every currently-schedulable task, and scan for assets ready to free.
// It is expected to be called once per hub tick (e.g. from the world
// loop's tick handler). It never waits for a factory or I/O result, but
// it does block while the I/O job queue or the Events channel is full.
func (h *Hub) Poll() {
	h.drainFactories()
	h.drainIO()
	h.dispatchReady()
	h.scanFree()
}

func (h *Hub) dispatchReady() {
	for {
		task, ok := h.pool.PeekTask()
		if !ok {
			return
		}
		switch task.Command.Kind {
		case CommandRead:
			h.dispatchRead(task)
		case CommandLoad:
			h.dispatchLoad(task)
		case CommandFree:
			h.dispatchFree(task)
		}
	}
}

func (h *Hub) dispatchRead(task Task) {
	header, err := h.registry.Header(task.Command.ID)
	if err != nil {
		h.failRequest(task.ID, err)
		return
	}
	if ir, ok := h.registry.RecallIR(task.Command.ID); ok {
		h.onIRReady(task.ID, task.Command.ID, ir)
		return
	}
	// Read dispatch blocks on a full io queue rather than dropping the
	// task: unlike factory Send, there is no caller to retry a lost Read.
	h.ioJobs <- ioJob{task: task.ID, id: task.Command.ID, header: header}
}

func (h *Hub) onIRReady(taskID TaskID, id ID, ir IR) {
	if err := h.registry.SetState(id, FromIR(ir)); err != nil {
		h.failRequest(taskID, err)
		return
	}
	h.completeTask(taskID)
}

func (h *Hub) dispatchLoad(task Task) {
	id := task.Command.ID
	state, err := h.registry.State(id)
	if err != nil {
		h.failRequest(task.ID, err)
		return
	}
	if state.Kind != StateIR {
		h.failRequest(task.ID, fmt.Errorf("%w: load dispatched for %s in state %s", dawnerr.New(dawnerr.Scheduling, "Hub.dispatchLoad", nil), id, state.Kind))
		return
	}
	header, err := h.registry.Header(id)
	if err != nil {
		h.failRequest(task.ID, err)
		return
	}
	binding, ok := h.factories[header.Kind]
	if !ok {
		h.failRequest(task.ID, fmt.Errorf("no factory registered for kind %s", header.Kind))
		return
	}

	depends := make(map[ID]*Handle, len(header.Dependencies))
	for dep := range header.Dependencies {
		depState, err := h.registry.State(dep)
		if err != nil || depState.Kind != StateLoaded {
			h.failRequest(task.ID, fmt.Errorf("%w: %s missing dependency %s", ErrDependenciesMissing, id, dep))
			return
		}
		depends[dep] = depState.Asset
	}

	if !binding.Send(ToFactoryMessage{Task: task.ID, ID: id, Header: header, IR: state.Body, Depends: depends}) {
		// Full factory queue: fail the request so its caller can retry.
		h.failRequest(task.ID, dawnerr.New(dawnerr.Backpressure, "Hub.dispatchLoad", fmt.Errorf("factory queue full for %s", id)))
	}
}

func (h *Hub) dispatchFree(task Task) {
	id := task.Command.ID
	state, err := h.registry.State(id)
	if err != nil {
		h.failRequest(task.ID, err)
		return
	}
	if state.Kind != StateLoaded {
		// Nothing to free: treat as immediately done.
		h.completeTask(task.ID)
		return
	}
	header, _ := h.registry.Header(id)
	binding, ok := h.factories[header.Kind]
	if !ok {
		h.completeTask(task.ID)
		return
	}
	if !binding.Send(ToFactoryMessage{Task: task.ID, ID: id, Free: true, Obj: rawObj(state.Asset)}) {
		// Full factory queue: drop this free request; the asset is still
		// Loaded, so the next free scan queues it again.
		h.failRequest(task.ID, dawnerr.New(dawnerr.Backpressure, "Hub.dispatchFree", fmt.Errorf("factory queue full for %s", id)))
	}
}

// rawObj extracts the raw pointer a Handle wraps, for handing back to
// the factory's Free call.
func rawObj(h *Handle) any { return h.ptr }

func (h *Hub) drainFactories() {
	for _, binding := range h.factories {
		for {
			msg, ok := binding.Poll()
			if !ok {
				break
			}
			h.handleFactoryMessage(msg)
		}
	}
}

func (h *Hub) handleFactoryMessage(msg FromFactoryMessage) {
	if msg.Freed {
		prev, _ := h.registry.State(msg.ID)
		if err := h.registry.SetState(msg.ID, Empty()); err == nil {
			h.registry.rememberFreed(msg.ID, prev.Body)
		}
		h.completeTask(msg.Task)
		return
	}
	if msg.Err != nil {
		h.failRequest(msg.Task, msg.Err)
		return
	}
	header, err := h.registry.Header(msg.ID)
	if err != nil {
		h.failRequest(msg.Task, err)
		return
	}
	handle := newHandle(msg.ID, header.Kind, msg.Obj, h.onHandleLastDrop)
	loaded := FromLoaded(handle, msg.Usage)
	if prev, err := h.registry.State(msg.ID); err == nil {
		loaded.Body = prev.Body // kept so a later free can cache it
	}
	if err := h.registry.SetState(msg.ID, loaded); err != nil {
		h.failRequest(msg.Task, err)
		return
	}
	h.completeTask(msg.Task)
}

func (h *Hub) drainIO() {
	for {
		select {
		case res := <-h.ioResults:
			if res.err != nil {
				h.failRequest(res.task, res.err)
				continue
			}
			h.onIRReady(res.task, res.id, res.ir)
		default:
			return
		}
	}
}

func (h *Hub) completeTask(id TaskID) {
	result := h.pool.TaskDone(id)
	if result.RequestCompleted != nil {
		req := *result.RequestCompleted
		h.events <- Event{RequestCompleted: &req}
	}
}

func (h *Hub) failRequest(id TaskID, err error) {
	h.pool.TaskFailed(id)
	h.events <- Event{RequestFailed: &RequestFailure{Request: id.Request, Err: err}}
}

// scanFree queues a Free task for every Loaded asset whose strong count
// has dropped to 1 (only the registry's own reference remains).
func (h *Hub) scanFree() {
	for _, id := range h.registry.LoadedWithSingleRef() {
		h.pool.RequestFree(id)
	}
}

// onHandleLastDrop is invoked (from an arbitrary caller goroutine, via
// Handle.Drop) once a Handle's strong count drops to 1. It does nothing
// itself: the next Poll's free scan finds the asset and queues its Free
// task from the hub's own goroutine, preserving single-writer ownership
// of the Registry.
func (h *Hub) onHandleLastDrop(id ID) {}

// Shutdown drains every factory (sending a synthetic Free for each
// Loaded asset), stops the I/O workers, and closes the factory queues.
func (h *Hub) Shutdown() {
	for id, e := range h.registry.entries {
		if e.state.Kind == StateLoaded {
			h.pool.RequestFree(id)
		}
	}
	for {
		task, ok := h.pool.PeekTask()
		if !ok {
			break
		}
		if task.Command.Kind == CommandFree {
			h.dispatchFree(task)
		}
	}
	close(h.ioStop)
	h.ioGroup.Wait()
	for _, binding := range h.factories {
		binding.Stop()
	}
}
