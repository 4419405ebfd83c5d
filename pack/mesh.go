package pack

import (
	"bytes"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
	"github.com/dawnengine/yage2/load"
)

// decodeMesh parses a Wavefront OBJ body into an IRMesh, packing the
// uint16 face indexes load.Obj produces into a GPU-upload-ready byte
// buffer via load.U16Buffer.
func decodeMesh(raw []byte) (asset.IR, error) {
	var d load.MshData
	if err := load.Obj(bytes.NewReader(raw), &d); err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeMesh", err)
	}

	var indices []byte
	if len(d.F) > 0 {
		indices = load.U16Buffer(d.F).Data
	}

	return asset.IRMesh{
		Positions: d.V,
		Normals:   d.N,
		UVs:       d.T,
		Indices:   indices,
		IndexType: asset.IndexTypeUint16,
		Submeshes: []asset.Submesh{{FirstIndex: 0, IndexCount: uint32(len(d.F))}},
		Bounds:    meshBounds(d.V),
		Topology:  asset.TopologyTriangles,
	}, nil
}

// meshBounds computes the axis-aligned bounding box of a flat xyz vertex
// position stream.
func meshBounds(positions []float32) asset.Bounds {
	var b asset.Bounds
	if len(positions) < 3 {
		return b
	}
	b.MinX, b.MinY, b.MinZ = positions[0], positions[1], positions[2]
	b.MaxX, b.MaxY, b.MaxZ = positions[0], positions[1], positions[2]
	for i := 3; i+2 < len(positions); i += 3 {
		x, y, z := positions[i], positions[i+1], positions[i+2]
		if x < b.MinX {
			b.MinX = x
		}
		if x > b.MaxX {
			b.MaxX = x
		}
		if y < b.MinY {
			b.MinY = y
		}
		if y > b.MaxY {
			b.MaxY = y
		}
		if z < b.MinZ {
			b.MinZ = z
		}
		if z > b.MaxZ {
			b.MaxZ = z
		}
	}
	return b
}
