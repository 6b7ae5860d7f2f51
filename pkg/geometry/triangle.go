package geometry

import (
	"math"

	"glyphcast/pkg/math3d"
)

const (
	// determinantEpsilon rejects rays nearly parallel to the triangle plane.
	determinantEpsilon = 1e-10
	// distanceEpsilon rejects hits at or immediately behind the ray origin,
	// which avoids self-intersection artifacts.
	distanceEpsilon = 1e-7
)

// Triangle is a triangle in 3D space. Vertices are owned by value.
type Triangle struct {
	A, B, C math3d.Vec3
}

// Normal returns the unit normal of the triangle, following the
// counter-clockwise winding of its vertices. Degenerate (collinear)
// triangles return the zero vector; callers must treat that as an
// undefined direction.
func (t Triangle) Normal() math3d.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.A.Add(t.B).Add(t.C).Div(3)
}

// Area returns the triangle's area (half the cross product magnitude).
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len() * 0.5
}

// Bounds returns the axis-aligned bounding box of the triangle.
func (t Triangle) Bounds() AABB {
	return AABB{
		Min: t.A.Min(t.B).Min(t.C),
		Max: t.A.Max(t.B).Max(t.C),
	}
}

// Intersect tests a ray against the triangle using the Möller–Trumbore
// algorithm. It returns the forward distance along the ray and true when
// the ray hits; near-parallel rays, hits outside the triangle, and hits
// at or behind the origin report a miss. Degenerate triangles almost
// always fail the parallel test and are harmless.
func (t Triangle) Intersect(origin, dir math3d.Vec3) (float64, bool) {
	edge1 := t.B.Sub(t.A)
	edge2 := t.C.Sub(t.A)

	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < determinantEpsilon {
		return 0, false
	}
	invDet := 1 / det

	tvec := origin.Sub(t.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist <= distanceEpsilon {
		return 0, false
	}
	return dist, true
}
