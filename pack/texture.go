package pack

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
	"github.com/dawnengine/yage2/load"
)

// decodeTexture parses a PNG body into an IRTexture, converting whatever
// concrete image.Image load.Png returns into packed RGBA8 bytes so the
// GPU factory never needs to care about the source image's native format.
func decodeTexture(raw []byte) (asset.IR, error) {
	var d load.ImgData
	if err := load.Png(bytes.NewReader(raw), &d); err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeTexture", err)
	}

	bounds := d.Img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, d.Img, bounds.Min, draw.Src)

	return asset.IRTexture{
		Data:        rgba.Pix,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		PixelFormat: asset.PixelFormatRGBA8,
		Filters:     asset.TextureFilterLinear,
		Wraps:       asset.TextureWrapRepeat,
	}, nil
}
