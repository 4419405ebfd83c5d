package audio

import "math"

// Vec3 is a plain 3-component position, avoiding a dependency from audio
// onto math/lin (which is render-pipeline facing) for what is here just
// an attenuation input.
type Vec3 struct{ X, Y, Z float32 }

func (v Vec3) distance(o Vec3) float32 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

// voice is one playing instance within an Actor mixer.
type voice struct {
	id       uint32
	samples  []float32 // mono, decoded PCM
	cursor   int
	pos      Vec3
	gain     float32
	looping  bool
}

// ActorAdd is the event.Payload shape that starts a new voice.
type ActorAdd struct {
	ID      uint32
	Samples []float32
	Pos     Vec3
	Gain    float32
	Loop    bool
}

// ActorRemove is the event.Payload shape that stops a voice.
type ActorRemove struct{ ID uint32 }

// ActorMove is the event.Payload shape that repositions a voice.
type ActorMove struct {
	ID  uint32
	Pos Vec3
}

// ActorSetListener is the event.Payload shape that moves the listener.
type ActorSetListener struct{ Pos Vec3 }

// Actor is a Source that spatially mixes an arbitrary number of playing
// voices against a single listener position, attenuating each voice by
// inverse distance.
type Actor struct {
	target   TargetID
	listener Vec3
	voices   []*voice

	cached     Block
	cacheValid bool
}

// NewActor returns an Actor registered on router.
func NewActor(router *Router) *Actor {
	a := &Actor{target: NewTargetID()}
	router.Register(a.target, a.dispatch)
	return a
}

func (a *Actor) Targets() []TargetID { return []TargetID{a.target} }

func (a *Actor) FrameStart() { a.cacheValid = false }

func (a *Actor) dispatch(payload any) {
	switch p := payload.(type) {
	case ActorAdd:
		a.voices = append(a.voices, &voice{id: p.ID, samples: p.Samples, pos: p.Pos, gain: p.Gain, looping: p.Loop})
	case ActorRemove:
		kept := a.voices[:0]
		for _, v := range a.voices {
			if v.id != p.ID {
				kept = append(kept, v)
			}
		}
		a.voices = kept
	case ActorMove:
		for _, v := range a.voices {
			if v.id == p.ID {
				v.pos = p.Pos
			}
		}
	case ActorSetListener:
		a.listener = p.Pos
	}
}

func (a *Actor) Render(info BlockInfo) Block {
	if a.cacheValid {
		return a.cached
	}
	var block Block
	live := a.voices[:0]
	for _, v := range a.voices {
		atten := v.gain / (1 + a.listener.distance(v.pos))
		done := false
		for i := 0; i < BlockSize; i++ {
			if v.cursor >= len(v.samples) {
				if v.looping && len(v.samples) > 0 {
					v.cursor = 0
				} else {
					done = true
					break
				}
			}
			sample := v.samples[v.cursor] * atten
			v.cursor++
			block[0][i] += sample
			block[1][i] += sample
		}
		if !done {
			live = append(live, v)
		}
	}
	a.voices = live
	a.cached = block
	a.cacheValid = true
	return block
}
