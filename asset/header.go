package asset

import "github.com/dawnengine/yage2/dac"

// Kind is the asset's type tag, re-exported from dac so callers of this
// package don't need to import dac directly for header inspection.
type Kind = dac.Kind

const (
	KindUnknown    = dac.KindUnknown
	KindShader     = dac.KindShader
	KindTexture    = dac.KindTexture
	KindAudio      = dac.KindAudio
	KindNotes      = dac.KindNotes
	KindMaterial   = dac.KindMaterial
	KindMesh       = dac.KindMesh
	KindFont       = dac.KindFont
	KindDictionary = dac.KindDictionary
)

// Header is the immutable metadata the registry loads before any asset
// body: id, kind, checksum, dependency set, tags, and optional provenance.
type Header struct {
	ID           ID
	Kind         Kind
	Checksum     dac.Checksum
	Dependencies map[ID]struct{}
	Tags         []string
	Author       string
	License      string
}

// FromDACHeader converts a container-level header into the hub's Header,
// the boundary between the package codec layer and the asset hub layer.
func FromDACHeader(h dac.Header) Header {
	deps := make(map[ID]struct{}, len(h.Dependencies))
	for _, d := range h.Dependencies {
		deps[ID(d)] = struct{}{}
	}
	return Header{
		ID:           ID(h.ID),
		Kind:         h.Kind,
		Checksum:     h.Checksum,
		Dependencies: deps,
		Tags:         h.Tags,
		Author:       h.Author,
		License:      h.License,
	}
}
