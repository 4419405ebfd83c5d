package audio

// EffectChain composes two Effects in series: First's output feeds
// Second's input. Longer chains are built by nesting EffectChains.
type EffectChain struct {
	First, Second Effect
}

// NewEffectChain returns an EffectChain running first then second.
func NewEffectChain(first, second Effect) *EffectChain {
	return &EffectChain{First: first, Second: second}
}

func (e *EffectChain) Targets() []TargetID {
	return append(e.First.Targets(), e.Second.Targets()...)
}

func (e *EffectChain) FrameStart() {
	e.First.FrameStart()
	e.Second.FrameStart()
}

func (e *EffectChain) Render(in *Block, out *Block, info BlockInfo) {
	var mid Block
	e.First.Render(in, &mid, info)
	e.Second.Render(&mid, out, info)
}
