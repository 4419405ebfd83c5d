package audio

import "math"

// NoteEvent is one MIDI-like entry in a Notes sequence.
type NoteEvent struct {
	TimeSeconds float32
	Pitch       uint8 // MIDI note number, A4 = 69 = 440Hz
	Velocity    float32
	Duration    float32
}

// Notes is a Source that sequences NoteEvents, driving an internally
// owned Waveform voice: each event selects a frequency and gates the
// voice's envelope for its Duration.
type Notes struct {
	target TargetID
	events []NoteEvent
	voice  *Waveform
	typ    WaveformType

	nextIndex int
	noteEnds  float32 // seconds; end time of the most recently triggered note

	cached     Block
	cacheValid bool
}

// NewNotes returns a Notes source driving a Waveform of typ, registered
// on router. events must be sorted by TimeSeconds ascending.
func NewNotes(router *Router, typ WaveformType, events []NoteEvent) *Notes {
	n := &Notes{
		target: NewTargetID(),
		events: events,
		voice:  NewWaveform(router, WaveformDisabled, 0),
		typ:    typ,
	}
	router.Register(n.target, n.dispatch)
	return n
}

func (n *Notes) Targets() []TargetID { return append([]TargetID{n.target}, n.voice.Targets()...) }

func (n *Notes) FrameStart() {
	n.cacheValid = false
	n.voice.FrameStart()
}

// dispatch accepts no payloads of its own today; Notes is driven purely
// by its event schedule. The registration exists so a future transport
// control (seek, pause) has a TargetID to land on without a layout
// change.
func (n *Notes) dispatch(payload any) {}

func (n *Notes) Render(info BlockInfo) Block {
	if n.cacheValid {
		return n.cached
	}
	if info.SampleRate > 0 {
		blockStart := float32(info.SampleIndex) / float32(info.SampleRate)
		blockEnd := float32(info.SampleIndex+BlockSize) / float32(info.SampleRate)

		for n.nextIndex < len(n.events) && n.events[n.nextIndex].TimeSeconds < blockEnd {
			ev := n.events[n.nextIndex]
			if ev.TimeSeconds >= blockStart {
				freq := pitchToFrequency(ev.Pitch)
				n.voice.dispatch(WaveformSetType{Type: n.typ, Frequency: freq})
				n.noteEnds = ev.TimeSeconds + ev.Duration
			}
			n.nextIndex++
		}
		if blockStart >= n.noteEnds {
			n.voice.dispatch(WaveformSetType{Type: WaveformDisabled, Frequency: 0})
		}
	}
	n.cached = n.voice.Render(info)
	n.cacheValid = true
	return n.cached
}

// pitchToFrequency converts a MIDI note number to Hz using equal
// temperament tuned to A4 = 440Hz (MIDI note 69).
func pitchToFrequency(pitch uint8) float32 {
	return float32(440 * math.Pow(2, (float64(pitch)-69)/12))
}
