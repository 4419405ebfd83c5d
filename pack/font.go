package pack

import (
	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
	"github.com/dawnengine/yage2/load"
)

// defaultFontSize is the glyph rasterization size, in points, that
// decodeFont uses for every Font asset; no per-entry size is read. The
// atlas is rasterized when the asset is decoded and is not resized later.
const defaultFontSize = 32

// decodeFont rasterizes a TrueType body into an IRFont glyph atlas.
func decodeFont(raw []byte) (asset.IR, error) {
	atlas, err := load.Ttf(raw, defaultFontSize)
	if err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeFont", err)
	}

	glyphs := make([]asset.GlyphMetrics, len(atlas.Glyphs))
	for i, g := range atlas.Glyphs {
		glyphs[i] = asset.GlyphMetrics{
			Rune:    g.Char,
			X:       g.PenX,
			Y:       g.PenY,
			W:       g.Width,
			H:       g.Height,
			OffsetX: g.Xoff,
			OffsetY: g.Yoff,
			Advance: g.Xadvance,
		}
	}

	return asset.IRFont{
		AtlasWidth:  int(atlas.Img.Width),
		AtlasHeight: int(atlas.Img.Height),
		Atlas:       atlas.Img.Pixels,
		Glyphs:      glyphs,
	}, nil
}
