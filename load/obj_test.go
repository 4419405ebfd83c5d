package load

import (
	"strings"
	"testing"
)

func TestInvalidLoadObj(t *testing.T) {
	d := &MshData{}
	if err := Obj(strings.NewReader("mtllib cube.mtl\n"), d); err == nil {
		t.Error("Should not be able to load an object with no data")
	}
}

func TestCorruptLoadObj(t *testing.T) {
	d := &MshData{}
	if err := Obj(strings.NewReader("o broken\nv 1 2\nf 1 1 1\n"), d); err == nil {
		t.Error("Should reject a malformed vertex line")
	}
}

const cubeObj = `o cube
v -1 -1 -1
v -1 -1 1
v -1 1 -1
v -1 1 1
vn -1 0 0
vn 0 -1 0
vn 0 0 -1
f 1//1 2//1 3//1
f 2//1 4//1 3//1
f 1//2 2//2 4//2
f 1//3 3//3 4//3
`

func TestLoadObj1(t *testing.T) {
	d := &MshData{}
	if err := Obj(strings.NewReader(cubeObj), d); err != nil {
		t.Fatalf("Could not load cube: %s", err)
	}
	if d.Name != "cube" {
		t.Errorf("Expected object name cube, got %s", d.Name)
	}
	if len(d.F) != 12 {
		t.Errorf("Expected 12 face indexes, got %d", len(d.F))
	}
	if len(d.V) == 0 || len(d.V) != len(d.N) {
		t.Errorf("Expected matching vertex/normal data, got %d/%d", len(d.V), len(d.N))
	}
}

func TestLoadObjNoFaces(t *testing.T) {
	d := &MshData{}
	obj := "o empty\nv 0 0 0\nvn 0 1 0\n"
	if err := Obj(strings.NewReader(obj), d); err == nil {
		t.Error("Should require face data")
	}
}
