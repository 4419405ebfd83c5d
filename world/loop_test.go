package world

import (
	"testing"
	"time"
)

// TestWorldLoopExitsAfterExitEvent implements spec.md §8 scenario 4:
// an unsynchronized loop at 60 tps, publishing ExitEvent after 10
// TickEvents. The loop must stop on its own (the test allows two
// seconds) after exactly 10 TickEvents, with its frame counter on 10 or 11.
func TestWorldLoopExitsAfterExitEvent(t *testing.T) {
	bus := NewBus()
	var ticks int
	Subscribe(bus, func(TickEvent) {
		ticks++
		if ticks == 10 {
			bus.Publish(ExitEvent{})
		}
	})

	loop := NewFixedRateLoop(bus, 60, false)
	proxy := Spawn(loop)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case <-proxy.done:
			goto stopped
		case <-deadline:
			t.Fatalf("expected the loop to stop on its own after ExitEvent, ticks=%d", ticks)
		default:
			time.Sleep(time.Millisecond)
		}
	}
stopped:
	if ticks != 10 {
		t.Fatalf("expected exactly 10 TickEvents to have been dispatched, got %d", ticks)
	}
	frame := proxy.Frame()
	if frame != 10 && frame != 11 {
		t.Fatalf("expected the frame counter to land on 10 or 11 at exit, got %d", frame)
	}
}

func TestTickDeliversMonotonicFrameNumbers(t *testing.T) {
	bus := NewBus()
	loop := NewUnsynchronizedLoop(bus, false)
	var frames []uint64
	Subscribe(bus, func(e TickEvent) { frames = append(frames, e.Frame) })
	bus.BeginFrame()

	for i := 0; i < 5; i++ {
		if loop.Tick() != Continue {
			t.Fatalf("expected Continue before ExitEvent is published")
		}
	}

	for i, f := range frames {
		if f != uint64(i) {
			t.Fatalf("expected frame %d at index %d, got %d", i, i, f)
		}
	}
}

func TestRendezvousLoopWaitsOnBothBarriers(t *testing.T) {
	bus := NewBus()
	before := NewRendezvous(2)
	after := NewRendezvous(2)
	loop := NewRendezvousLoop(bus, before, after, false)

	done := make(chan struct{})
	go func() {
		loop.Tick()
		close(done)
	}()

	// Stand in for a renderer thread participating in both barriers.
	before.Wait(0)
	after.Wait(0)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected the loop's Tick to complete once its sibling reached both barriers")
	}
}
