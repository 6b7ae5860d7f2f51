package math3d

import (
	"math"
	"math/rand"
	"testing"
)

func TestRotationIdentity(t *testing.T) {
	r := IdentityRotation()
	v := V3(1, 2, 3)
	if got := r.Apply(v); !vecNear(got, v, epsilon) {
		t.Errorf("identity.Apply(%v) = %v", v, got)
	}
	if got := r.ApplyInverse(v); !vecNear(got, v, epsilon) {
		t.Errorf("identity.ApplyInverse(%v) = %v", v, got)
	}
}

func TestRotationYawQuarterTurn(t *testing.T) {
	// A quarter yaw turn takes +X to -Z.
	r := NewRotation(math.Pi/2, 0, 0)
	got := r.Apply(V3(1, 0, 0))
	if !vecNear(got, V3(0, 0, -1), 1e-9) {
		t.Errorf("yaw(π/2).Apply(+X) = %v, want (0,0,-1)", got)
	}
}

func TestRotationCompositionOrder(t *testing.T) {
	// Roll is applied first, then pitch, then yaw.
	yaw, pitch, roll := 0.4, -0.7, 1.1
	r := NewRotation(yaw, pitch, roll)
	v := V3(0.3, -1.2, 2.5)

	want := RotationY(yaw).MulVec3(RotationX(pitch).MulVec3(RotationZ(roll).MulVec3(v)))
	if got := r.Apply(v); !vecNear(got, want, 1e-9) {
		t.Errorf("Apply = %v, want %v", got, want)
	}
}

func TestRotationRoundTrip(t *testing.T) {
	// inverse(apply(v)) == v for random rotations and vectors.
	rng := rand.New(rand.NewSource(42))
	for range 100 {
		r := NewRotation(
			(rng.Float64()-0.5)*4*math.Pi,
			(rng.Float64()-0.5)*4*math.Pi,
			(rng.Float64()-0.5)*4*math.Pi,
		)
		v := V3(rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64())

		back := r.ApplyInverse(r.Apply(v))
		if !vecNear(back, v, 1e-6) {
			t.Fatalf("round trip of %v through %+v = %v", v, r, back)
		}
	}
}

func TestRotationPreservesLength(t *testing.T) {
	r := NewRotation(0.9, 0.2, -1.4)
	v := V3(3, -4, 12)
	if got, want := r.Apply(v).Len(), v.Len(); math.Abs(got-want) > 1e-9 {
		t.Errorf("rotated length = %v, want %v", got, want)
	}
}

func TestTransformNormalMatchesApply(t *testing.T) {
	// For a pure rotation the normal transform is the forward matrix.
	r := NewRotation(1.3, -0.5, 0.8)
	n := V3(0, 0, 1)
	if got, want := r.TransformNormal(n), r.Apply(n); !vecNear(got, want, epsilon) {
		t.Errorf("TransformNormal = %v, Apply = %v", got, want)
	}
}

func TestMat3Transpose(t *testing.T) {
	m := RotationY(0.7).Mul(RotationX(0.3))
	mt := m.Transpose()
	for row := range 3 {
		for col := range 3 {
			if m.Get(row, col) != mt.Get(col, row) {
				t.Fatalf("transpose mismatch at (%d,%d)", row, col)
			}
		}
	}
}

func BenchmarkRotationApply(b *testing.B) {
	r := NewRotation(0.4, 0.8, -0.2)
	v := V3(1, 2, 3)
	var sink Vec3
	for b.Loop() {
		sink = r.Apply(v)
	}
	_ = sink
}
