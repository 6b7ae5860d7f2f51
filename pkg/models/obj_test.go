package models

import (
	"math"
	"strings"
	"testing"

	"glyphcast/pkg/math3d"
)

const cubeOBJ = `# unit cube
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
f 5 6 7 8
f 2 1 4 3
f 1 5 8 4
f 6 2 3 7
f 4 8 7 3
f 1 2 6 5
`

func TestParseOBJCube(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(cubeOBJ), "cube")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mesh.Name() != "cube" {
		t.Errorf("name = %q", mesh.Name())
	}
	// Six quads fan-triangulated to two triangles each.
	if mesh.TriangleCount() != 12 {
		t.Errorf("triangles = %d, want 12", mesh.TriangleCount())
	}
	b := mesh.Bounds()
	if b.Min != math3d.V3(-1, -1, -1) || b.Max != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
}

func TestParseOBJFaceForms(t *testing.T) {
	// Slash-separated references and negative indices.
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1/1/1 2//2 3/3
f -3 -2 -1
`
	mesh, err := ParseOBJ(strings.NewReader(src), "tri")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", mesh.TriangleCount())
	}
	tris := mesh.Triangles()
	if tris[0] != tris[1] {
		t.Error("positive and negative references resolved differently")
	}
}

func TestParseOBJPolygonFan(t *testing.T) {
	// An n-gon becomes n-2 triangles whose area sums to the polygon's.
	src := `
v 0 0 0
v 2 0 0
v 2 2 0
v 1 3 0
v 0 2 0
f 1 2 3 4 5
`
	mesh, err := ParseOBJ(strings.NewReader(src), "pentagon")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if mesh.TriangleCount() != 3 {
		t.Fatalf("triangles = %d, want 3", mesh.TriangleCount())
	}
	area := 0.0
	for _, tri := range mesh.Triangles() {
		area += tri.Area()
	}
	if math.Abs(area-5) > 1e-9 {
		t.Errorf("area = %v, want 5", area)
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"bad coordinate", "v 0 zero 0\n"},
		{"short vertex", "v 1 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a 1 2\n"},
		{"no faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseOBJ(strings.NewReader(tc.src), "bad"); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadOBJMissingFile(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/model.obj"); err == nil {
		t.Error("expected an error for a missing file")
	}
}
