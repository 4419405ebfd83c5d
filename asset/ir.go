package asset

// IR is the decoded-but-not-yet-committed form of an asset body: a
// self-contained, safely sendable-across-threads value produced by
// reading and parsing the raw container bytes, but not yet promoted to
// a live runtime (GPU/audio-card resident) object.
//
// Each Kind has exactly one concrete IR type; Kind reports which.
type IR interface {
	Kind() Kind
}

// IRTexture is the decoded form of a Texture asset.
type IRTexture struct {
	Data        []byte
	Width       int
	Height      int
	PixelFormat PixelFormat
	Filters     TextureFilter
	Wraps       TextureWrap
	Mipmaps     bool
}

func (IRTexture) Kind() Kind { return KindTexture }

// PixelFormat names the layout of IRTexture.Data.
type PixelFormat uint8

const (
	PixelFormatRGBA8 PixelFormat = iota
	PixelFormatRGB8
	PixelFormatR8
)

// TextureFilter mirrors common GPU sampler filtering modes.
type TextureFilter uint8

const (
	TextureFilterNearest TextureFilter = iota
	TextureFilterLinear
)

// TextureWrap mirrors common GPU sampler wrap modes.
type TextureWrap uint8

const (
	TextureWrapClamp TextureWrap = iota
	TextureWrapRepeat
)

// Submesh is one draw-range within an IRMesh.
type Submesh struct {
	FirstIndex uint32
	IndexCount uint32
	Material   ID
}

// Topology names the primitive assembly mode of an IRMesh.
type Topology uint8

const (
	TopologyTriangles Topology = iota
	TopologyLines
	TopologyPoints
)

// IndexType names the element width of an IRMesh's index buffer.
type IndexType uint8

const (
	IndexTypeUint16 IndexType = iota
	IndexTypeUint32
)

// Bounds is an axis-aligned bounding box in model space.
type Bounds struct {
	MinX, MinY, MinZ float32
	MaxX, MaxY, MaxZ float32
}

// IRMesh is the decoded form of a Mesh asset.
type IRMesh struct {
	Positions []float32 // 3 floats per vertex
	Normals   []float32 // 3 floats per vertex
	UVs       []float32 // 2 floats per vertex
	Indices   []byte    // packed per IndexType
	IndexType IndexType
	Submeshes []Submesh
	Bounds    Bounds
	Topology  Topology
}

func (IRMesh) Kind() Kind { return KindMesh }

// ShaderStage names one stage of an IRShader's source map.
type ShaderStage uint8

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
	ShaderStageCompute
)

// IRShader is the decoded form of a Shader asset.
type IRShader struct {
	SourcesByStage map[ShaderStage]string
	CompileOptions map[string]string
}

// ShaderSourceSeparator splits a packed Shader asset's raw body into its
// vertex and fragment stages: vertex source, the separator, fragment
// source. A Shader asset is the one Kind whose raw body carries two
// independent source files instead of one.
const ShaderSourceSeparator = "\x00--DAWN-FSH--\x00"

func (IRShader) Kind() Kind { return KindShader }

// IRAudio is the decoded form of an Audio asset: interleaved-free PCM,
// one contiguous sample slice per channel concatenated channel-major so
// it can be fed straight into an audio.Actor voice.
type IRAudio struct {
	Samples    []float32
	SampleRate uint32
	Channels   uint16
}

func (IRAudio) Kind() Kind { return KindAudio }

// NoteEvent is one entry in an IRNotes sequence: a MIDI-like (time,
// pitch, velocity, duration) tuple driving a Waveform voice.
type NoteEvent struct {
	TimeSeconds float32
	Pitch       uint8
	Velocity    float32
	Duration    float32
}

// IRNotes is the decoded form of a Notes asset.
type IRNotes struct {
	Events []NoteEvent
}

func (IRNotes) Kind() Kind { return KindNotes }

// IRMaterial is the decoded form of a Material asset.
type IRMaterial struct {
	Shader       ID
	Textures     map[string]ID
	ScalarParams map[string]float32
}

func (IRMaterial) Kind() Kind { return KindMaterial }

// GlyphMetrics describes one bitmap glyph within an IRFont atlas.
type GlyphMetrics struct {
	Rune              rune
	X, Y, W, H        int
	OffsetX, OffsetY  int
	Advance           int
}

// IRFont is the decoded form of a Font asset: a bitmap glyph atlas plus
// per-glyph metrics (the same shape vu/load's FntData takes).
type IRFont struct {
	AtlasWidth  int
	AtlasHeight int
	Atlas       []byte // single channel coverage bitmap
	Glyphs      []GlyphMetrics
}

func (IRFont) Kind() Kind { return KindFont }

// IRDictionary is the decoded form of a Dictionary asset: an arbitrary
// bag of key/value string pairs (localization tables, tuning data).
type IRDictionary struct {
	Entries map[string]string
}

func (IRDictionary) Kind() Kind { return KindDictionary }
