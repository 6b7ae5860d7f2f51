package math3d

// Rotation is an orientation given as yaw, pitch and roll Euler angles
// (radians). Applying a rotation composes the three axis rotations in a
// fixed order: roll around Z first, then pitch around X, then yaw around Y.
//
// Construction precomputes the rotation matrix and its inverse so that
// repeated Apply calls are plain multiply-adds. The zero Rotation is not
// usable; build one with NewRotation.
type Rotation struct {
	yaw, pitch, roll float64
	m                Mat3 // yaw * pitch * roll
	inv              Mat3 // transpose of m
}

// NewRotation creates a rotation from yaw, pitch and roll angles in radians.
func NewRotation(yaw, pitch, roll float64) Rotation {
	m := RotationY(yaw).Mul(RotationX(pitch)).Mul(RotationZ(roll))
	return Rotation{
		yaw:   yaw,
		pitch: pitch,
		roll:  roll,
		m:     m,
		inv:   m.Transpose(),
	}
}

// IdentityRotation returns the rotation that leaves vectors unchanged.
func IdentityRotation() Rotation {
	return NewRotation(0, 0, 0)
}

// Yaw returns the yaw angle in radians.
func (r Rotation) Yaw() float64 { return r.yaw }

// Pitch returns the pitch angle in radians.
func (r Rotation) Pitch() float64 { return r.pitch }

// Roll returns the roll angle in radians.
func (r Rotation) Roll() float64 { return r.roll }

// Apply rotates v, taking it from local space to world space.
func (r Rotation) Apply(v Vec3) Vec3 {
	return r.m.MulVec3(v)
}

// ApplyInverse rotates v by the inverse rotation, taking it from world
// space to local space. Equivalent to applying the negated angles in
// reverse order.
func (r Rotation) ApplyInverse(v Vec3) Vec3 {
	return r.inv.MulVec3(v)
}

// TransformNormal takes a surface normal from local space to world space.
// Normals transform by the inverse-transpose of the model matrix; rotation
// matrices are orthogonal, so that is the matrix itself. Kept distinct from
// Apply so callers stay correct if non-rigid transforms are ever added.
func (r Rotation) TransformNormal(n Vec3) Vec3 {
	return r.m.MulVec3(n)
}

// Matrix returns the forward rotation matrix.
func (r Rotation) Matrix() Mat3 {
	return r.m
}
