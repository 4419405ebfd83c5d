package world

import (
	"log"
	"sync"
	"time"
)

// Rendezvous is an N-way reusable barrier: every participant's Wait
// blocks until all N have arrived, then all N are released together and
// the barrier rearms for the next round.
//
// Unlock forces a one-shot release of whoever is currently blocked (or
// about to call Wait) without waiting for the full N to arrive. The
// barrier stays in this force-released state — every Wait returns
// immediately — until N participants have each called Wait once,
// counting as a silent rearm. This is the mechanism a Loop uses to free
// a sibling thread blocked on the barrier during shutdown, grounded on
// threading.rs's "unlock() on both barriers" exit path.
type Rendezvous struct {
	mu           sync.Mutex
	cond         *sync.Cond
	participants int
	arrived      int
	generation   uint64
	forced       bool
	rearmed      int
}

// NewRendezvous returns a barrier for the given number of participants.
func NewRendezvous(participants int) *Rendezvous {
	r := &Rendezvous{participants: participants}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Wait blocks until every participant has called Wait for the current
// generation, or until the barrier is force-released. elapsed is unused
// here; it exists so Rendezvous satisfies Synchronizer alongside
// FixedRate, which does use it.
func (r *Rendezvous) Wait(elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.forced {
		r.rearmed++
		if r.rearmed >= r.participants {
			r.forced = false
			r.rearmed = 0
		}
		return
	}

	gen := r.generation
	r.arrived++
	if r.arrived == r.participants {
		r.arrived = 0
		r.generation++
		r.cond.Broadcast()
		return
	}
	for gen == r.generation && !r.forced {
		r.cond.Wait()
	}
	if r.forced && gen == r.generation {
		// Released without the round completing: back out this
		// participant's arrival so the next real round starts clean.
		r.arrived--
		log.Printf("world: rendezvous released early, participant arrived late")
	}
}

// Unlock force-releases the barrier once, per the "one-shot" semantics
// documented on Rendezvous.
func (r *Rendezvous) Unlock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forced = true
	r.rearmed = 0
	r.cond.Broadcast()
}
