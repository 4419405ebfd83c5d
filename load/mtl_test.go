package load

import (
	"fmt"
	"strings"
	"testing"
)

const redMtl = `newmtl red
Ka 0.2 0.2 0.2
Kd 0.8 0.6 0.2
Ks 1.0 1.0 1.0
Ns 96.0
d 1.0
illum 2
`

func TestLoadMtl(t *testing.T) {
	d := &MtlData{}
	if err := Mtl(strings.NewReader(redMtl), d); err != nil {
		t.Fatalf("Should be able to load a valid material file %s", err)
	}
	got, want := fmt.Sprintf("%2.1f %2.1f %2.1f", d.KdR, d.KdG, d.KdB), "0.8 0.6 0.2"
	if got != want {
		t.Errorf("\ngot\n%s\nwanted\n%s", got, want)
	}
	if d.Alpha != 1.0 || d.Ns != 96.0 {
		t.Errorf("Expected alpha 1.0 and Ns 96.0, got %f %f", d.Alpha, d.Ns)
	}
}

func TestLoadMtlBadAmbient(t *testing.T) {
	d := &MtlData{}
	if err := Mtl(strings.NewReader("Ka 0.2 0.2\n"), d); err == nil {
		t.Error("Should reject a malformed ambient line")
	}
}
