package audio

// comb is one Schroeder comb filter: a delay line with feedback and a
// one-pole damping lowpass in the feedback path.
type comb struct {
	buf    []float32
	cursor int
	feedback,
	damp float32
	filterStore float32
}

func newComb(length int, feedback, damp float32) *comb {
	if length < 1 {
		length = 1
	}
	return &comb{buf: make([]float32, length), feedback: feedback, damp: damp}
}

func (c *comb) process(in float32) float32 {
	out := c.buf[c.cursor]
	c.filterStore = out*(1-c.damp) + c.filterStore*c.damp
	c.buf[c.cursor] = in + c.filterStore*c.feedback
	c.cursor++
	if c.cursor >= len(c.buf) {
		c.cursor = 0
	}
	return out
}

// allpass is a Schroeder allpass filter.
type allpass struct {
	buf    []float32
	cursor int
	gain   float32
}

func newAllpass(length int, gain float32) *allpass {
	if length < 1 {
		length = 1
	}
	return &allpass{buf: make([]float32, length), gain: gain}
}

func (a *allpass) process(in float32) float32 {
	bufout := a.buf[a.cursor]
	out := -in + bufout
	a.buf[a.cursor] = in + bufout*a.gain
	a.cursor++
	if a.cursor >= len(a.buf) {
		a.cursor = 0
	}
	return out
}

// combTuningMs and allpassTuningMs are Freeverb's canonical tap lengths
// expressed in milliseconds so they scale with the device sample rate
// instead of assuming 44.1kHz.
var combTuningMs = [4]float32{35.3, 36.7, 33.8, 32.2}
var allpassTuningMs = [2]float32{5.1, 12.6}

// FreeverbSetRoomSize is the event.Payload shape setting comb feedback,
// clamped to [0, 0.98].
type FreeverbSetRoomSize struct{ RoomSize float32 }

// FreeverbSetDamp is the event.Payload shape setting the comb feedback
// lowpass coefficient, clamped to [0, 1].
type FreeverbSetDamp struct{ Damp float32 }

// FreeverbSetWet is the event.Payload shape setting the wet/dry mix,
// clamped to [0, 1].
type FreeverbSetWet struct{ Wet float32 }

// channelVerb is one channel's bank of parallel combs feeding two series
// allpass filters.
type channelVerb struct {
	combs    [4]*comb
	allpasss [2]*allpass
}

// Freeverb is a Schroeder comb/allpass reverb Effect, tuned per channel
// independently (no stereo cross-feed, keeping the render path free of
// cross-channel data dependencies).
type Freeverb struct {
	target   TargetID
	channels [Channels]*channelVerb
	roomSize float32
	damp     float32
	wet      float32
}

// NewFreeverb returns a Freeverb registered on router, initialized at
// sampleRate (used to scale the canonical millisecond tunings into
// sample counts).
func NewFreeverb(router *Router, sampleRate uint32) *Freeverb {
	if sampleRate == 0 {
		sampleRate = 44100
	}
	f := &Freeverb{target: NewTargetID(), roomSize: 0.5, damp: 0.5, wet: 0.3}
	for c := 0; c < Channels; c++ {
		cv := &channelVerb{}
		for i, ms := range combTuningMs {
			length := int(ms * float32(sampleRate) / 1000)
			cv.combs[i] = newComb(length, f.roomSize, f.damp)
		}
		for i, ms := range allpassTuningMs {
			length := int(ms * float32(sampleRate) / 1000)
			cv.allpasss[i] = newAllpass(length, 0.5)
		}
		f.channels[c] = cv
	}
	router.Register(f.target, f.dispatch)
	return f
}

func (f *Freeverb) Targets() []TargetID { return []TargetID{f.target} }
func (f *Freeverb) FrameStart()         {}

func (f *Freeverb) dispatch(payload any) {
	switch p := payload.(type) {
	case FreeverbSetRoomSize:
		f.roomSize = clamp01(p.RoomSize, 0.98)
		f.applyCombParams()
	case FreeverbSetDamp:
		f.damp = clamp01(p.Damp, 1)
		f.applyCombParams()
	case FreeverbSetWet:
		f.wet = clamp01(p.Wet, 1)
	}
}

func (f *Freeverb) applyCombParams() {
	for _, cv := range f.channels {
		for _, c := range cv.combs {
			c.feedback = f.roomSize
			c.damp = f.damp
		}
	}
}

func clamp01(v, max float32) float32 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func (f *Freeverb) Render(in *Block, out *Block, info BlockInfo) {
	for c := 0; c < Channels; c++ {
		cv := f.channels[c]
		for i := 0; i < BlockSize; i++ {
			dry := in[c][i]
			var wetSum float32
			for _, comb := range cv.combs {
				wetSum += comb.process(dry)
			}
			for _, ap := range cv.allpasss {
				wetSum = ap.process(wetSum)
			}
			out[c][i] = dry*(1-f.wet) + wetSum*f.wet
		}
	}
}
