package world

import "testing"

func TestSubscribeDispatchesOnlyMatchingEventType(t *testing.T) {
	bus := NewBus()
	var ticks, exits int
	Subscribe(bus, func(TickEvent) { ticks++ })
	Subscribe(bus, func(ExitEvent) { exits++ })
	bus.BeginFrame()

	bus.Publish(TickEvent{Frame: 1})
	bus.Publish(TickEvent{Frame: 2})
	bus.Publish(ExitEvent{})

	if ticks != 2 || exits != 1 {
		t.Fatalf("expected 2 ticks and 1 exit, got ticks=%d exits=%d", ticks, exits)
	}
}

func TestSubscribeDuringPublishTakesEffectNextFrame(t *testing.T) {
	bus := NewBus()
	var lateFires int
	Subscribe(bus, func(TickEvent) {
		Subscribe(bus, func(TickEvent) { lateFires++ })
	})
	bus.BeginFrame()

	bus.Publish(TickEvent{Frame: 0})
	if lateFires != 0 {
		t.Fatalf("a handler subscribed mid-frame must not fire in the same frame, got %d", lateFires)
	}

	bus.BeginFrame()
	bus.Publish(TickEvent{Frame: 1})
	if lateFires != 1 {
		t.Fatalf("expected the mid-frame subscription to fire starting next frame, got %d", lateFires)
	}
}

func TestHandlersFireInRegistrationOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	Subscribe(bus, func(TickEvent) { order = append(order, 1) })
	Subscribe(bus, func(TickEvent) { order = append(order, 2) })
	Subscribe(bus, func(TickEvent) { order = append(order, 3) })
	bus.BeginFrame()

	bus.Publish(TickEvent{})
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected handlers to fire in registration order, got %v", order)
	}
}
