package geometry

import (
	"fmt"

	"glyphcast/pkg/math3d"
)

// Mesh is an identifier plus an ordered sequence of triangles. A mesh is
// immutable once constructed: the triangle count is fixed and transforms
// produce new meshes.
type Mesh struct {
	name   string
	tris   []Triangle
	bounds AABB
}

// Hit describes the nearest intersection between a ray and some geometry.
type Hit struct {
	Distance float64
	Triangle Triangle
}

// NewMesh creates a mesh from a triangle list. The slice is copied so the
// caller cannot mutate the mesh afterwards.
func NewMesh(name string, tris []Triangle) *Mesh {
	owned := make([]Triangle, len(tris))
	copy(owned, tris)

	bounds := EmptyAABB()
	for _, t := range owned {
		bounds = bounds.Union(t.Bounds())
	}

	return &Mesh{name: name, tris: owned, bounds: bounds}
}

// Name returns the mesh identifier.
func (m *Mesh) Name() string {
	return m.name
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.tris)
}

// Triangles returns the mesh's triangles. The returned slice is shared;
// callers must not modify it.
func (m *Mesh) Triangles() []Triangle {
	return m.tris
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() AABB {
	return m.bounds
}

// Scaled returns a new mesh with every vertex scaled by s about the origin.
// Non-positive scale factors are rejected.
func (m *Mesh) Scaled(s float64) (*Mesh, error) {
	if s <= 0 {
		return nil, fmt.Errorf("scale mesh %q: non-positive factor %v", m.name, s)
	}
	tris := make([]Triangle, len(m.tris))
	for i, t := range m.tris {
		tris[i] = Triangle{A: t.A.Scale(s), B: t.B.Scale(s), C: t.C.Scale(s)}
	}
	return NewMesh(m.name, tris), nil
}

// Translated returns a new mesh with every vertex offset by v.
func (m *Mesh) Translated(v math3d.Vec3) *Mesh {
	tris := make([]Triangle, len(m.tris))
	for i, t := range m.tris {
		tris[i] = Triangle{A: t.A.Add(v), B: t.B.Add(v), C: t.C.Add(v)}
	}
	return NewMesh(m.name, tris)
}

// IntersectRay scans all triangles and returns the minimum-distance hit.
// An empty mesh reports a miss. This is the brute-force reference path;
// accelerated queries go through a BVH built over the same triangles.
func (m *Mesh) IntersectRay(origin, dir math3d.Vec3) (Hit, bool) {
	best := Hit{}
	found := false
	for _, t := range m.tris {
		if dist, ok := t.Intersect(origin, dir); ok && (!found || dist < best.Distance) {
			best = Hit{Distance: dist, Triangle: t}
			found = true
		}
	}
	return best, found
}
