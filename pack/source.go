// Package pack implements asset.Source against a dac.Reader: the runtime
// counterpart to the manifest/cmd/packager build-time pipeline. A Source
// fetches one asset's raw body out of a DAC container and dispatches it,
// by Kind, to the load package's format-specific decoder.
package pack

import (
	"fmt"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dac"
	"github.com/dawnengine/yage2/dawnerr"
)

// Source reads and decodes asset bodies out of a DAC container opened
// with dac.Open. It implements asset.Source.
type Source struct {
	reader *dac.Reader
}

// NewSource wraps reader as an asset.Source.
func NewSource(reader *dac.Reader) *Source {
	return &Source{reader: reader}
}

// ReadIR fetches id's raw body from the container and decodes it per
// header.Kind. The returned asset.IR always satisfies IR.Kind() ==
// header.Kind.
func (s *Source) ReadIR(id asset.ID, header asset.Header) (asset.IR, error) {
	raw, err := s.reader.Asset(string(id))
	if err != nil {
		return nil, dawnerr.New(dawnerr.IO, "pack.Source.ReadIR", err)
	}

	switch header.Kind {
	case asset.KindMesh:
		return decodeMesh(raw)
	case asset.KindTexture:
		return decodeTexture(raw)
	case asset.KindAudio:
		return decodeAudio(raw)
	case asset.KindMaterial:
		return decodeMaterial(raw)
	case asset.KindShader:
		return decodeShader(raw)
	case asset.KindFont:
		return decodeFont(raw)
	case asset.KindNotes:
		return decodeNotes(raw)
	case asset.KindDictionary:
		return decodeDictionary(raw)
	default:
		return nil, dawnerr.New(dawnerr.Decode, "pack.Source.ReadIR",
			fmt.Errorf("asset %q: no decoder for kind %s", id, header.Kind))
	}
}
