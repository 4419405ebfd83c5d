package render

import (
	"testing"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/math/lin"
)

// countingPass records how many times each lifecycle method fires and
// routes a single clear-colour event through its own PassEventTarget.
type countingPass struct {
	name               string
	begins, ends       int
	renderables        int
	lastEvent          any
	clearColourTarget  PassEventTarget
}

func newCountingPass(name string) *countingPass {
	return &countingPass{name: name, clearColourTarget: NewPassEventTarget()}
}

func (p *countingPass) Name() string                  { return p.name }
func (p *countingPass) Targets() []PassEventTarget     { return []PassEventTarget{p.clearColourTarget} }
func (p *countingPass) Begin(Backend, *DataStreamFrame) { p.begins++ }
func (p *countingPass) OnRenderable(Backend, *Renderable) { p.renderables++ }
func (p *countingPass) End(Backend)                   { p.ends++ }
func (p *countingPass) Dispatch(event any)            { p.lastEvent = event }

// stubFactory is a minimal asset.Factory used only to prove Backend's
// GPU factory accessors are wired up; it never actually runs.
type stubFactory struct{ kind asset.Kind }

func (f stubFactory) Kind() asset.Kind { return f.kind }
func (f stubFactory) Parse(asset.Header, asset.IR, map[asset.ID]*asset.Handle) (any, asset.MemoryUsage, error) {
	return nil, asset.MemoryUsage{}, nil
}
func (f stubFactory) Free(any) {}

type nullBackend struct{}

func (nullBackend) Init() error                        { return nil }
func (nullBackend) Clear()                              {}
func (nullBackend) Color(r, g, b, a float32)            {}
func (nullBackend) Enable(attr uint32, on bool)         {}
func (nullBackend) Viewport(w, h int)                   {}
func (nullBackend) Resize(w, h int)                     {}
func (nullBackend) Before()                             {}
func (nullBackend) After()                              {}
func (nullBackend) NewModel(s Shader) Model             { return nil }
func (nullBackend) NewShader(name string) Shader        { return nil }
func (nullBackend) NewMesh(name string) Mesh            { return nil }
func (nullBackend) NewTexture(name string) Texture      { return nil }
func (nullBackend) NewAnimation(name string) Animation  { return nil }
func (nullBackend) Render(m Model)                      {}
func (nullBackend) TextureFactory() asset.Factory       { return stubFactory{asset.KindTexture} }
func (nullBackend) ShaderFactory() asset.Factory        { return stubFactory{asset.KindShader} }
func (nullBackend) MeshFactory() asset.Factory          { return stubFactory{asset.KindMesh} }
func (nullBackend) MaterialFactory() asset.Factory      { return stubFactory{asset.KindMaterial} }
func (nullBackend) FontFactory() asset.Factory          { return stubFactory{asset.KindFont} }

func TestChainRunsEveryPassOncePerRenderable(t *testing.T) {
	a, b := newCountingPass("opaque"), newCountingPass("overlay")
	chain := NewChain(a, b)

	frame := &DataStreamFrame{
		ViewProj: lin.NewM4I(),
		Renderables: []Renderable{
			{Transform: lin.NewM4I(), Primitives: 12},
			{Transform: lin.NewM4I(), Primitives: 2},
		},
	}

	result, durations := chain.Run(nullBackend{}, frame)
	if a.begins != 1 || a.ends != 1 || b.begins != 1 || b.ends != 1 {
		t.Errorf("expected each pass to begin/end exactly once, got %+v %+v", a, b)
	}
	if a.renderables != 2 || b.renderables != 2 {
		t.Errorf("expected both passes to see both renderables, got %d %d", a.renderables, b.renderables)
	}
	if result.DrawCalls != 4 || result.Primitives != 28 {
		t.Errorf("expected 4 draw calls and 28 primitives, got %+v", result)
	}
	if durations[0] < 0 || durations[1] < 0 {
		t.Errorf("expected non-negative per-pass durations, got %+v", durations)
	}
}

func TestChainPanicsAboveMaxPasses(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected NewChain to panic above MaxPasses")
		}
	}()
	passes := make([]Pass, MaxPasses+1)
	for i := range passes {
		passes[i] = newCountingPass("p")
	}
	NewChain(passes...)
}

func TestEventRouterDispatchesToRegisteredTarget(t *testing.T) {
	p := newCountingPass("overlay")
	router := NewEventRouter()
	router.Register(p.clearColourTarget, p.Dispatch)

	queue := NewEventQueue(4)
	queue.Send(Event{Target: p.clearColourTarget, Payload: "resize"})
	queue.Drain(router)

	if p.lastEvent != "resize" {
		t.Errorf("expected dispatched payload %q, got %v", "resize", p.lastEvent)
	}
}

func TestFrameBufferPublishIsVisibleToLatest(t *testing.T) {
	fb := NewFrameBuffer()
	if f, seq := fb.Latest(); f != nil || seq != 0 {
		t.Errorf("expected an empty buffer before the first Publish, got %v %d", f, seq)
	}

	frame := &DataStreamFrame{ViewProj: lin.NewM4I()}
	fb.Publish(frame)
	got, seq := fb.Latest()
	if got != frame || seq != 1 {
		t.Errorf("expected the published frame at sequence 1, got %v %d", got, seq)
	}
}

func TestFactoriesCoversEveryGPUKind(t *testing.T) {
	factories := Factories(nullBackend{})
	for _, kind := range []asset.Kind{asset.KindTexture, asset.KindShader, asset.KindMesh, asset.KindMaterial, asset.KindFont} {
		if f, ok := factories[kind]; !ok || f.Kind() != kind {
			t.Errorf("expected a factory registered for kind %s", kind)
		}
	}
}
