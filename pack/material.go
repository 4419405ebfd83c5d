package pack

import (
	"bytes"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
	"github.com/dawnengine/yage2/load"
)

// decodeMaterial parses a Wavefront MTL body into an IRMaterial.
// load.MtlData carries ambient/diffuse/specular colour and shininess but
// no shader or texture reference, so those land in ScalarParams under the
// MTL field names; Shader and Textures are left for a dependent manifest
// entry to fill in at bind time.
func decodeMaterial(raw []byte) (asset.IR, error) {
	var d load.MtlData
	if err := load.Mtl(bytes.NewReader(raw), &d); err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeMaterial", err)
	}

	return asset.IRMaterial{
		Textures: map[string]asset.ID{},
		ScalarParams: map[string]float32{
			"KaR": d.KaR, "KaG": d.KaG, "KaB": d.KaB,
			"KdR": d.KdR, "KdG": d.KdG, "KdB": d.KdB,
			"KsR": d.KsR, "KsG": d.KsG, "KsB": d.KsB,
			"Alpha": d.Alpha, "Ns": d.Ns,
		},
	}, nil
}
