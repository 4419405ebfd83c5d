package audio

import "math"

// SoftClipBypass is the event.Payload shape toggling SoftClip's bypass
// state.
type SoftClipBypass struct{ Bypassed bool }

// SoftClipDrive is the event.Payload shape setting SoftClip's pre-gain,
// clamped to [0.1, 10].
type SoftClipDrive struct{ Drive float32 }

// SoftClip is a tanh-based saturation Effect.
type SoftClip struct {
	target    TargetID
	bypassed  bool
	drive     float32
}

// NewSoftClip returns a SoftClip registered on router at unity drive.
func NewSoftClip(router *Router) *SoftClip {
	s := &SoftClip{target: NewTargetID(), drive: 1}
	router.Register(s.target, s.dispatch)
	return s
}

func (s *SoftClip) Targets() []TargetID { return []TargetID{s.target} }
func (s *SoftClip) FrameStart()         {}

func (s *SoftClip) dispatch(payload any) {
	switch p := payload.(type) {
	case SoftClipBypass:
		s.bypassed = p.Bypassed
	case SoftClipDrive:
		d := p.Drive
		if d < 0.1 {
			d = 0.1
		}
		if d > 10 {
			d = 10
		}
		s.drive = d
	}
}

func (s *SoftClip) Render(in *Block, out *Block, info BlockInfo) {
	if s.bypassed {
		*out = *in
		return
	}
	for c := range in {
		for i := range in[c] {
			out[c][i] = float32(math.Tanh(float64(in[c][i] * s.drive)))
		}
	}
}
