package geometry

import (
	"fmt"

	"glyphcast/pkg/math3d"
)

// Cube builds an axis-aligned cube mesh of 12 triangles centered on the
// origin. Triangles wind counter-clockwise seen from outside, so normals
// point outward. Non-positive sizes are rejected.
func Cube(name string, size float64) (*Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cube %q: non-positive size %v", name, size)
	}
	h := size / 2

	v := [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0: left-bottom-back
		{X: h, Y: -h, Z: -h},  // 1: right-bottom-back
		{X: h, Y: h, Z: -h},   // 2: right-top-back
		{X: -h, Y: h, Z: -h},  // 3: left-top-back
		{X: -h, Y: -h, Z: h},  // 4: left-bottom-front
		{X: h, Y: -h, Z: h},   // 5: right-bottom-front
		{X: h, Y: h, Z: h},    // 6: right-top-front
		{X: -h, Y: h, Z: h},   // 7: left-top-front
	}

	// Two triangles per face, outward winding.
	faces := [][3]int{
		{4, 5, 6}, {4, 6, 7}, // front  (+Z)
		{1, 0, 3}, {1, 3, 2}, // back   (-Z)
		{0, 4, 7}, {0, 7, 3}, // left   (-X)
		{5, 1, 2}, {5, 2, 6}, // right  (+X)
		{3, 7, 6}, {3, 6, 2}, // top    (+Y)
		{0, 1, 5}, {0, 5, 4}, // bottom (-Y)
	}

	tris := make([]Triangle, len(faces))
	for i, f := range faces {
		tris[i] = Triangle{A: v[f[0]], B: v[f[1]], C: v[f[2]]}
	}
	return NewMesh(name, tris), nil
}

// Pyramid builds a square-based pyramid mesh of 6 triangles centered on
// the origin, apex up. Non-positive sizes are rejected.
func Pyramid(name string, size float64) (*Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pyramid %q: non-positive size %v", name, size)
	}
	h := size / 2

	apex := math3d.V3(0, h, 0)
	b := [4]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0
		{X: h, Y: -h, Z: -h},  // 1
		{X: h, Y: -h, Z: h},   // 2
		{X: -h, Y: -h, Z: h},  // 3
	}

	tris := []Triangle{
		{A: b[0], B: b[1], C: b[2]}, // base
		{A: b[0], B: b[2], C: b[3]},
		{A: b[1], B: b[0], C: apex}, // -Z side
		{A: b[2], B: b[1], C: apex}, // +X side
		{A: b[3], B: b[2], C: apex}, // +Z side
		{A: b[0], B: b[3], C: apex}, // -X side
	}
	return NewMesh(name, tris), nil
}
