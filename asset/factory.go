package asset

import (
	"fmt"

	"github.com/dawnengine/yage2/dawnerr"
)

// ToFactoryMessage is sent from the hub to a factory's in-queue.
type ToFactoryMessage struct {
	Task    TaskID
	ID      ID
	Free    bool // false: Load, true: Free
	Header  Header
	IR      IR
	Depends map[ID]*Handle // resolved dependency handles, for Load
	Obj     any            // runtime object to release, for Free
}

// FromFactoryMessage is sent from a factory back to the hub.
type FromFactoryMessage struct {
	Task  TaskID
	ID    ID
	Freed bool
	Usage MemoryUsage
	Obj   any   // concrete *T moved to the heap, for a successful Load
	Err   error // non-nil on LoadFailed
}

// Factory is a single-threaded worker owning typed storage for one asset
// kind. It never touches the Registry directly — only the hub does.
type Factory interface {
	// Kind reports which asset kind this factory builds.
	Kind() Kind
	// Parse turns a decoded IR into a live runtime object, given the
	// already-resolved handles of its dependencies.
	Parse(header Header, ir IR, depends map[ID]*Handle) (obj any, usage MemoryUsage, err error)
	// Free releases a runtime object previously returned by Parse.
	Free(obj any)
}

// FactoryBinding pairs a Factory with its bounded to/from message queues.
// Queue capacity bounds backpressure: a full to-queue returns false from
// Send instead of blocking, per spec.md §7 ("a bounded queue is full; the
// caller retries").
type FactoryBinding struct {
	factory    Factory
	toFactory  chan ToFactoryMessage
	fromHub    chan FromFactoryMessage
	stop       chan struct{}
	stoppedAck chan struct{}
}

// NewFactoryBinding starts factory's single worker goroutine, bound to
// queues of the given capacity.
func NewFactoryBinding(factory Factory, queueCapacity int) *FactoryBinding {
	b := &FactoryBinding{
		factory:    factory,
		toFactory:  make(chan ToFactoryMessage, queueCapacity),
		fromHub:    make(chan FromFactoryMessage, queueCapacity),
		stop:       make(chan struct{}),
		stoppedAck: make(chan struct{}),
	}
	go b.run()
	return b
}

// Send enqueues msg for the factory. It reports false (Backpressure)
// instead of blocking when the queue is full.
func (b *FactoryBinding) Send(msg ToFactoryMessage) bool {
	select {
	case b.toFactory <- msg:
		return true
	default:
		return false
	}
}

// Poll drains at most one FromFactoryMessage, returning false if none is
// currently available.
func (b *FactoryBinding) Poll() (FromFactoryMessage, bool) {
	select {
	case msg := <-b.fromHub:
		return msg, true
	default:
		return FromFactoryMessage{}, false
	}
}

// Stop signals the factory goroutine to exit and waits for it to drain.
func (b *FactoryBinding) Stop() {
	close(b.stop)
	<-b.stoppedAck
}

func (b *FactoryBinding) run() {
	defer close(b.stoppedAck)
	for {
		select {
		case <-b.stop:
			return
		case msg := <-b.toFactory:
			b.process(msg)
		}
	}
}

func (b *FactoryBinding) process(msg ToFactoryMessage) {
	if msg.Free {
		b.factory.Free(msg.Obj)
		b.fromHub <- FromFactoryMessage{Task: msg.Task, ID: msg.ID, Freed: true}
		return
	}
	obj, usage, err := b.factory.Parse(msg.Header, msg.IR, msg.Depends)
	if err != nil {
		b.fromHub <- FromFactoryMessage{
			Task: msg.Task,
			ID:   msg.ID,
			Err:  dawnerr.New(dawnerr.Runtime, "Factory.Parse", fmt.Errorf("%s: %w", msg.ID, err)),
		}
		return
	}
	b.fromHub <- FromFactoryMessage{Task: msg.Task, ID: msg.ID, Obj: obj, Usage: usage}
}
