package load

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestLoadPngBadData(t *testing.T) {
	d := &ImgData{}
	if err := Png(strings.NewReader("not a png"), d); err == nil {
		t.Error("Image should fail to decode for bad data")
	}
}

func TestLoadPng(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("could not encode test fixture: %s", err)
	}
	d := &ImgData{}
	if err := Png(bytes.NewReader(buf.Bytes()), d); err != nil {
		t.Fatalf("Could not load image file: %s", err)
	}
	if d.Img == nil || d.Img.Bounds().Dx() != 4 || d.Img.Bounds().Dy() != 4 {
		t.Error("Decoded image has unexpected bounds")
	}
}
