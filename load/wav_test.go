package load

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildWav assembles a minimal valid WAV container around pcm.
func buildWav(pcm []byte) []byte {
	buf := &bytes.Buffer{}
	hdr := wavHeader{
		RiffID: [4]byte{'R', 'I', 'F', 'F'}, FileSize: uint32(36 + len(pcm)),
		WaveID: [4]byte{'W', 'A', 'V', 'E'}, Fmt: [4]byte{'f', 'm', 't', ' '},
		FmtSize: 16, AudioFormat: 1, Channels: 1, Frequency: 44100,
		ByteRate: 44100 * 2, BlockAlign: 2, SampleBits: 16,
		DataID: [4]byte{'d', 'a', 't', 'a'}, DataSize: uint32(len(pcm)),
	}
	binary.Write(buf, binary.LittleEndian, hdr)
	buf.Write(pcm)
	return buf.Bytes()
}

func TestLoadWave(t *testing.T) {
	pcm := make([]byte, 8)
	d := &SndData{}
	if err := Wav(bytes.NewReader(buildWav(pcm)), d); err != nil {
		t.Fatalf("Loading wave failed %s", err)
	}
	if int(d.Attrs.DataSize) != len(d.Data) {
		t.Errorf("Expected data size %d, got %d", d.Attrs.DataSize, len(d.Data))
	}
	if d.Attrs.Channels != 1 || d.Attrs.Frequency != 44100 {
		t.Errorf("Unexpected wave attributes: %+v", d.Attrs)
	}
}

func TestLoadWaveBadMagic(t *testing.T) {
	bad := buildWav(nil)
	bad[0] = 'X'
	d := &SndData{}
	if err := Wav(bytes.NewReader(bad), d); err == nil {
		t.Error("Should reject a non-RIFF file")
	}
}
