// Package geometry provides triangle meshes and ray intersection for glyphcast.
package geometry

import (
	"math"

	"glyphcast/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
// Min <= Max component-wise once constructed from real geometry.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that unions as the identity: every point added
// to it replaces the corresponding corner.
func EmptyAABB() AABB {
	return AABB{
		Min: math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: math3d.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// Union returns the smallest box enclosing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: b.Min.Min(o.Min),
		Max: b.Max.Max(o.Max),
	}
}

// ExtendPoint returns the smallest box enclosing b and p.
func (b AABB) ExtendPoint(p math3d.Vec3) AABB {
	return AABB{
		Min: b.Min.Min(p),
		Max: b.Max.Max(p),
	}
}

// Center returns the center of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Extents returns half the dimensions (distance from center to corner
// along each axis).
func (b AABB) Extents() math3d.Vec3 {
	return b.Size().Scale(0.5)
}

// SurfaceArea returns the total surface area of the box.
func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	if s.X < 0 || s.Y < 0 || s.Z < 0 {
		return 0
	}
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// LongestAxis returns the axis of greatest extent (0 = X, 1 = Y, 2 = Z).
func (b AABB) LongestAxis() int {
	s := b.Size()
	axis := 0
	if s.Y > s.Axis(axis) {
		axis = 1
	}
	if s.Z > s.Axis(axis) {
		axis = 2
	}
	return axis
}

// ContainsPoint returns true if the point is inside the box.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectRay performs the slab test against the box. It returns the
// parametric entry distance and true when the ray hits the box; a ray
// starting inside reports entry distance 0. Rays parallel to a slab and
// outside it are rejected.
func (b AABB) IntersectRay(origin, dir math3d.Vec3) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	for axis := range 3 {
		o := origin.Axis(axis)
		d := dir.Axis(axis)
		lo := b.Min.Axis(axis)
		hi := b.Max.Axis(axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		// Box entirely behind the ray origin.
		return 0, false
	}
	if tmin < 0 {
		tmin = 0
	}
	return tmin, true
}
