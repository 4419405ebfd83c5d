package load

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildIqm assembles a minimal IQM header with no meshes and no
// animations, i.e. the smallest file Iqm will accept without error.
func buildIqm() []byte {
	hdr := iqmheader{
		Magic:    [16]byte{'I', 'N', 'T', 'E', 'R', 'Q', 'U', 'A', 'K', 'E', 'M', 'O', 'D', 'E', 'L', 0},
		Version:  2,
		Filesize: iqmheaderSize,
	}
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, hdr)
	return buf.Bytes()
}

func TestLoadIqmEmptyModel(t *testing.T) {
	d := &ModData{}
	if err := Iqm(bytes.NewReader(buildIqm()), d); err != nil {
		t.Fatalf("Could not load minimal iqm file: %s", err)
	}
	if len(d.V) != 0 || len(d.Movements) != 0 {
		t.Errorf("Expected an empty model, got %d verts, %d movements", len(d.V), len(d.Movements))
	}
}

func TestLoadIqmBadMagic(t *testing.T) {
	raw := buildIqm()
	raw[0] = 'X'
	d := &ModData{}
	if err := Iqm(bytes.NewReader(raw), d); err == nil {
		t.Error("Should reject a file with bad magic")
	}
}

func TestLoadIqmBadVersion(t *testing.T) {
	hdr := iqmheader{
		Magic:    [16]byte{'I', 'N', 'T', 'E', 'R', 'Q', 'U', 'A', 'K', 'E', 'M', 'O', 'D', 'E', 'L', 0},
		Version:  1,
		Filesize: iqmheaderSize,
	}
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, hdr)
	d := &ModData{}
	if err := Iqm(bytes.NewReader(buf.Bytes()), d); err == nil {
		t.Error("Should reject an unsupported version")
	}
}
