package load

import (
	"image"

	"github.com/dawnengine/yage2/math/lin"
)

// ImgData holds a decoded image ready for texture upload.
type ImgData struct {
	Img image.Image
}

// MtlData holds a Wavefront MTL material's ambient, diffuse and
// specular colour triples plus transparency and shininess.
type MtlData struct {
	KaR, KaG, KaB float32 // ambient colour.
	KdR, KdG, KdB float32 // diffuse colour.
	KsR, KsG, KsB float32 // specular colour.
	Alpha         float32 // transparency, 1 is opaque.
	Ns            float32 // specular exponent.
}

// MshData holds one triangle mesh decoded from a Wavefront OBJ object:
// zero indexed vertex, normal, and texture coordinate data plus the
// face indexes that reference them.
type MshData struct {
	Name string
	V    []float32 // vertex positions, 3 floats per vertex.
	N    []float32 // vertex normals, 3 floats per vertex.
	T    []float32 // texture coordinates, 2 floats per vertex.
	F    []uint16  // triangle face indexes into V/N/T.
}

// SndAttributes describes a decoded WAV stream's PCM layout.
type SndAttributes struct {
	Channels   uint16
	Frequency  uint32
	DataSize   uint32
	SampleBits uint16
}

// SndData holds decoded PCM audio samples and their attributes.
type SndData struct {
	Attrs *SndAttributes
	Data  []byte
}

// TexMap names the triangle range of an IQM mesh using a single texture.
type TexMap struct {
	Name   string // referenced material or texture name.
	F0, Fn uint32 // first triangle, number of triangles.
}

// Movement names one IQM animation clip's frame range and playback rate.
type Movement struct {
	Name   string
	F0, Fn uint32
	Rate   float32 // frames per second.
}

// ModData holds a decoded Inter-Quake Model: vertex streams, faces,
// per-texture triangle ranges, and (if present) skeletal animation
// frames and named movements.
type ModData struct {
	V, N, T []float32 // positions, normals, texture coordinates.
	X       []float32 // tangents.
	Blends  []byte    // joint blend indexes, 4 per vertex.
	Weights []byte    // joint blend weights, 4 per vertex.
	F       []uint16  // triangle face indexes.
	TMap    []TexMap  // per-texture triangle ranges.

	Joints    []int32   // parent joint index, -1 for roots.
	Frames    []*lin.M4 // animation joint transforms, Fn*NumJoints entries.
	Movements []Movement
}

// Glyph positions one rasterized character within a FontAtlas image.
type Glyph struct {
	Char       rune
	PenX, PenY int // top-left corner within the atlas image.
	Width      int
	Height     int // the atlas row height shared by every glyph.
	Xoff, Yoff int
	Xadvance   int
}

// AtlasImage is a packed NRGBA image: raw pixels plus dimensions, ready
// for texture upload without depending on the image package.
type AtlasImage struct {
	Pixels []byte
	Width  uint32
	Height uint32
	Opaque bool
}

// FontAtlas holds a rasterized TrueType glyph sheet and the per-glyph
// UV placement needed to lay out strings.
type FontAtlas struct {
	Glyphs []Glyph
	Img    AtlasImage
	NRGBA  *image.NRGBA
}
