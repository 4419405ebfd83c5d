// Package render implements the graphics-side pass chain and the
// double-buffered snapshot transfer between the world loop and the
// renderer thread. It stays agnostic of any particular graphics API:
// Backend is the seam a real OpenGL/Vulkan/DirectX binding would fill
// in, built on GPU resource objects produced by asset factories.
package render

import "github.com/dawnengine/yage2/math/lin"

// Shader is the GPU program that renders the data held by a Model. A
// shader is built from two or more stage programs; different shaders
// exist for different effects.
type Shader interface {
	Name() string   // Unique identifier set on creation.
	Vsh() []string  // Vertex shader source.
	Fsh() []string  // Fragment shader source.
	Bound() bool    // True once the shader has a GPU reference.
}

// Mesh holds per-vertex data in a format a rendering backend can bind
// directly: one or more vertex attribute buffers plus the face indices
// describing how those vertices form triangles or lines. A Mesh carries
// no per-instance state (location, scale) and is shared across models.
type Mesh interface {
	Name() string // Unique identifier set on creation.
	Size() uint32 // Total bytes used by all buffers.
	Bound() bool  // True once the mesh has a GPU reference.
}

// Texture is image data ready for GPU sampling.
type Texture interface {
	Name() string
	Bound() bool
}

// Movement is a named range of frames within an Animation, letting
// several distinct motions share one set of joint-position data.
type Movement struct {
	Name   string
	F0, Fn int // first frame, frame count
}

// Animation is a sequence of joint-position frames, independent of any
// particular model instance and safe to cache and share.
type Animation interface {
	Name() string
	SetData(frames []*lin.M4, joints []int32, movements []Movement)
	Movements() []string
}

// Model bundles a Shader with the Mesh/Texture/Animation data it draws,
// the unit a Pass renders once per Renderable.
type Model interface {
	Shader() Shader
	Mesh() Mesh
	Textures() []Texture
	Animation() Animation
}
