package pack

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
	"github.com/dawnengine/yage2/load"
)

// decodeAudio parses a WAV body into an IRAudio, converting its PCM
// samples to float32 in [-1, 1] so every audio.Source sees the same
// sample representation regardless of a clip's bit depth.
func decodeAudio(raw []byte) (asset.IR, error) {
	var d load.SndData
	if err := load.Wav(bytes.NewReader(raw), &d); err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeAudio", err)
	}

	samples, err := pcmToFloat32(d.Data, d.Attrs.SampleBits)
	if err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeAudio", err)
	}

	// WAV frames are interleaved; IRAudio keeps each channel contiguous.
	if ch := int(d.Attrs.Channels); ch > 1 {
		frames := len(samples) / ch
		planar := make([]float32, frames*ch)
		for i := 0; i < frames; i++ {
			for c := 0; c < ch; c++ {
				planar[c*frames+i] = samples[i*ch+c]
			}
		}
		samples = planar
	}

	return asset.IRAudio{
		Samples:    samples,
		SampleRate: d.Attrs.Frequency,
		Channels:   d.Attrs.Channels,
	}, nil
}

// pcmToFloat32 normalizes signed 8 or 16 bit little-endian PCM samples
// to float32 in [-1, 1].
func pcmToFloat32(data []byte, bits uint16) ([]float32, error) {
	switch bits {
	case 16:
		n := len(data) / 2
		out := make([]float32, n)
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(data[i*2:]))
			out[i] = float32(v) / 32768
		}
		return out, nil
	case 8:
		out := make([]float32, len(data))
		for i, b := range data {
			out[i] = (float32(b) - 128) / 128
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported PCM sample width %d bits", bits)
	}
}
