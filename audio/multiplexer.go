package audio

// MultiplexerSetGain is the event.Payload shape that changes one child's
// mix gain.
type MultiplexerSetGain struct {
	Child int
	Gain  float32
}

// Multiplexer is a Source mixing N child Sources, each at an independent
// gain.
type Multiplexer struct {
	target   TargetID
	children []Source
	gains    []float32

	cached     Block
	cacheValid bool
}

// NewMultiplexer returns a Multiplexer registered on router, mixing
// children at unity gain.
func NewMultiplexer(router *Router, children ...Source) *Multiplexer {
	m := &Multiplexer{target: NewTargetID(), children: children, gains: make([]float32, len(children))}
	for i := range m.gains {
		m.gains[i] = 1
	}
	router.Register(m.target, m.dispatch)
	return m
}

func (m *Multiplexer) Targets() []TargetID {
	ids := []TargetID{m.target}
	for _, c := range m.children {
		ids = append(ids, c.Targets()...)
	}
	return ids
}

func (m *Multiplexer) FrameStart() {
	m.cacheValid = false
	for _, c := range m.children {
		c.FrameStart()
	}
}

func (m *Multiplexer) dispatch(payload any) {
	if p, ok := payload.(MultiplexerSetGain); ok && p.Child >= 0 && p.Child < len(m.gains) {
		m.gains[p.Child] = p.Gain
	}
}

func (m *Multiplexer) Render(info BlockInfo) Block {
	if m.cacheValid {
		return m.cached
	}
	var block Block
	for i, c := range m.children {
		child := c.Render(info)
		child.Scale(m.gains[i])
		block.Add(&child)
	}
	m.cached = block
	m.cacheValid = true
	return block
}
