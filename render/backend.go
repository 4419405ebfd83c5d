package render

import "github.com/dawnengine/yage2/asset"

// Backend is the graphics-API seam a Chain runs its Passes against. It
// generalizes the teacher's render.Renderer: Init/Clear/Color/Enable/
// Viewport/NewModel/NewShader/NewMesh/NewTexture/NewAnimation/Render
// carry over unchanged, widened here with explicit per-frame
// Before()/After() bracketing hooks and a Resize() for window-size
// changes, which runs outside of any Pass.
//
// Backend also owns the GPU-asset factories: one asset.Factory per kind
// of resource a Pass renders, so the asset hub can load textures,
// shaders, meshes, materials, and fonts through the same dependency-DAG
// scheduler as every other asset, with the Backend's GPU context as the
// actual place those loads land.
type Backend interface {
	Init() error                     // Call first, once at startup.
	Clear()                          // Clear all buffers before rendering.
	Color(r, g, b, a float32)        // Set the default render clear colour.
	Enable(attr uint32, enable bool) // Enable or disable graphic state.
	Viewport(width, height int)      // Set the available screen real estate.
	Resize(width, height int)        // React to a window size change.

	Before() // Runs once before a Chain's passes, outside any Pass.Begin.
	After()  // Runs once after a Chain's passes, outside any Pass.End.

	NewModel(s Shader) Model
	NewShader(name string) Shader
	NewMesh(name string) Mesh
	NewTexture(name string) Texture
	NewAnimation(name string) Animation
	Render(m Model)

	// TextureFactory, ShaderFactory, MeshFactory, MaterialFactory, and
	// FontFactory let asset.Hub drive GPU resource creation/teardown
	// through the same Parse/Free contract every other asset kind uses.
	TextureFactory() asset.Factory
	ShaderFactory() asset.Factory
	MeshFactory() asset.Factory
	MaterialFactory() asset.Factory
	FontFactory() asset.Factory
}

// Factories returns every GPU-asset factory b owns, keyed by the Kind
// the hub dispatches Load commands for. Registering the result with
// asset.Hub.RegisterFactory wires the backend into the asset pipeline
// in one call per kind.
func Factories(b Backend) map[asset.Kind]asset.Factory {
	return map[asset.Kind]asset.Factory{
		asset.KindTexture:  b.TextureFactory(),
		asset.KindShader:   b.ShaderFactory(),
		asset.KindMesh:     b.MeshFactory(),
		asset.KindMaterial: b.MaterialFactory(),
		asset.KindFont:     b.FontFactory(),
	}
}
