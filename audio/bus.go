package audio

// BusSetGain is the event.Payload shape that changes a Bus's gain,
// clamped to [0, 4] (allowing modest boost above unity).
type BusSetGain struct{ Gain float32 }

// BusSetPan is the event.Payload shape that changes a Bus's stereo pan,
// clamped to [-1, 1] (-1 full left, +1 full right).
type BusSetPan struct{ Pan float32 }

// Bus renders a Source, passes the result through an Effect, and applies
// a per-channel gain/pan. It is the composite node used to build the
// graph's interior: a Bus is itself a Source, so buses nest.
type Bus struct {
	target TargetID
	Effect Effect
	Source Source
	gain   float32
	pan    float32

	cached     Block
	cacheValid bool
}

// NewBus returns a Bus registered on router at unity gain and centered
// pan.
func NewBus(router *Router, source Source, effect Effect) *Bus {
	b := &Bus{target: NewTargetID(), Effect: effect, Source: source, gain: 1}
	router.Register(b.target, b.dispatch)
	return b
}

func (b *Bus) Targets() []TargetID {
	ids := []TargetID{b.target}
	ids = append(ids, b.Source.Targets()...)
	ids = append(ids, b.Effect.Targets()...)
	return ids
}

func (b *Bus) FrameStart() {
	b.cacheValid = false
	b.Source.FrameStart()
	b.Effect.FrameStart()
}

func (b *Bus) dispatch(payload any) {
	switch p := payload.(type) {
	case BusSetGain:
		g := p.Gain
		if g < 0 {
			g = 0
		}
		if g > 4 {
			g = 4
		}
		b.gain = g
	case BusSetPan:
		pan := p.Pan
		if pan < -1 {
			pan = -1
		}
		if pan > 1 {
			pan = 1
		}
		b.pan = pan
	}
}

// Render satisfies Source: a Bus is composable as another Bus's child.
func (b *Bus) Render(info BlockInfo) Block {
	if b.cacheValid {
		return b.cached
	}
	in := b.Source.Render(info)
	var processed Block
	b.Effect.Render(&in, &processed, info)

	left := 1 - max32(0, b.pan)
	right := 1 - max32(0, -b.pan)
	var out Block
	for i := 0; i < BlockSize; i++ {
		out[0][i] = processed[0][i] * b.gain * left
		out[1][i] = processed[1][i] * b.gain * right
	}
	b.cached = out
	b.cacheValid = true
	return out
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
