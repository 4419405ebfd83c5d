package audio

import (
	"math"
	"math/rand"
)

// WaveformType selects a Waveform source's generator function.
type WaveformType uint8

const (
	WaveformSine WaveformType = iota
	WaveformSquare
	WaveformTriangle
	WaveformSaw
	WaveformNoise
	WaveformDisabled
)

// WaveformSetType is the event.Payload shape that changes a Waveform's
// generator and frequency.
type WaveformSetType struct {
	Type      WaveformType
	Frequency float32
}

// WaveformEnvelope is the event.Payload shape that sets a Waveform's
// attack/release times, in milliseconds. Only AttackMS shapes the output;
// ReleaseMS is stored but not applied (see stepEnvelope).
type WaveformEnvelope struct {
	AttackMS  float32
	ReleaseMS float32
}

// Waveform is a single-oscillator Source: sine, square, triangle, saw, or
// white noise, with a linear attack envelope and a disabled state that
// renders silence without evaluating the oscillator. There is no release
// ramp: disabling the waveform drops the envelope straight to 0.
type Waveform struct {
	target TargetID

	typ       WaveformType
	frequency float32
	phase     float64 // radians, carried across blocks

	attackMS  float32
	releaseMS float32
	envelope  float32 // current envelope level, 0..1
	rng       *rand.Rand

	cached     Block
	cacheValid bool
}

// NewWaveform returns a Waveform registered on router at a freshly
// allocated TargetID.
func NewWaveform(router *Router, typ WaveformType, frequency float32) *Waveform {
	w := &Waveform{
		target:    NewTargetID(),
		typ:       typ,
		frequency: frequency,
		rng:       rand.New(rand.NewSource(1)),
	}
	router.Register(w.target, w.dispatch)
	return w
}

func (w *Waveform) Targets() []TargetID { return []TargetID{w.target} }

func (w *Waveform) FrameStart() { w.cacheValid = false }

func (w *Waveform) dispatch(payload any) {
	switch p := payload.(type) {
	case WaveformSetType:
		w.typ = p.Type
		w.frequency = p.Frequency
	case WaveformEnvelope:
		w.attackMS = p.AttackMS
		w.releaseMS = p.ReleaseMS
	}
}

func (w *Waveform) Render(info BlockInfo) Block {
	if w.cacheValid {
		return w.cached
	}
	var block Block
	if w.typ != WaveformDisabled && info.SampleRate > 0 {
		step := 2 * math.Pi * float64(w.frequency) / float64(info.SampleRate)
		for i := 0; i < BlockSize; i++ {
			sample := float32(w.oscillate(w.phase))
			w.phase += step
			if w.phase >= 2*math.Pi {
				w.phase -= 2 * math.Pi
			}
			w.stepEnvelope(info.SampleRate)
			sample *= w.envelope
			block[0][i] = sample
			block[1][i] = sample
		}
	} else {
		w.envelope = 0
	}
	w.cached = block
	w.cacheValid = true
	return block
}

func (w *Waveform) oscillate(phase float64) float64 {
	switch w.typ {
	case WaveformSine:
		return math.Sin(phase)
	case WaveformSquare:
		if math.Sin(phase) >= 0 {
			return 1
		}
		return -1
	case WaveformTriangle:
		return 2 / math.Pi * math.Asin(math.Sin(phase))
	case WaveformSaw:
		return 1 - 2*(phase/(2*math.Pi)-math.Floor(phase/(2*math.Pi)+0.5))
	case WaveformNoise:
		return w.rng.Float64()*2 - 1
	default:
		return 0
	}
}

// stepEnvelope advances the linear attack/release envelope by one sample
// toward 1 (attacking) — release is driven externally by a caller setting
// Type to Disabled, at which point Render's else-branch snaps the
// envelope to 0 rather than ramping, since Disabled carries no further
// Render calls to ramp across.
func (w *Waveform) stepEnvelope(sampleRate uint32) {
	if w.envelope >= 1 {
		w.envelope = 1
		return
	}
	if w.attackMS <= 0 {
		w.envelope = 1
		return
	}
	step := float32(1000) / (w.attackMS * float32(sampleRate))
	w.envelope += step
	if w.envelope > 1 {
		w.envelope = 1
	}
}
