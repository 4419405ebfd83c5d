package audio

// Bypass is an Effect that copies input to output unchanged. It exists
// so a Bus can always hold a non-nil Effect, and as the disabled state
// for effects that support a bypass toggle.
type Bypass struct{ target TargetID }

// NewBypass returns a Bypass registered on router.
func NewBypass(router *Router) *Bypass {
	b := &Bypass{target: NewTargetID()}
	router.Register(b.target, func(any) {})
	return b
}

func (b *Bypass) Targets() []TargetID { return []TargetID{b.target} }
func (b *Bypass) FrameStart()         {}
func (b *Bypass) Render(in *Block, out *Block, info BlockInfo) {
	*out = *in
}
