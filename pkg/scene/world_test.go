package scene

import (
	"testing"

	"glyphcast/pkg/geometry"
	"glyphcast/pkg/math3d"
)

func mustWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(80, 40, 100, nil)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w
}

func mustCube(t *testing.T, size float64) *geometry.Mesh {
	t.Helper()
	mesh, err := geometry.Cube("cube", size)
	if err != nil {
		t.Fatalf("cube: %v", err)
	}
	return mesh
}

func TestNewWorldValidation(t *testing.T) {
	cases := []struct {
		name                 string
		width, height, depth int
	}{
		{"zero width", 0, 40, 100},
		{"zero height", 80, 0, 100},
		{"zero depth", 80, 40, 0},
		{"negative", -1, 40, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewWorld(tc.width, tc.height, tc.depth, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestAddMesh(t *testing.T) {
	w := mustWorld(t)
	if err := w.AddMesh("box", mustCube(t, 4), math3d.V3(10, 10, 20), math3d.IdentityRotation()); err != nil {
		t.Fatalf("add: %v", err)
	}

	p, ok := w.Placement("box")
	if !ok {
		t.Fatal("placement missing")
	}
	if p.Origin != math3d.V3(10, 10, 20) || p.Shape == nil {
		t.Errorf("placement = %+v", p)
	}

	if err := w.AddMesh("nil", nil, math3d.Zero3(), math3d.IdentityRotation()); err == nil {
		t.Error("nil mesh accepted")
	}
	empty := geometry.NewMesh("empty", nil)
	if err := w.AddMesh("empty", empty, math3d.Zero3(), math3d.IdentityRotation()); err == nil {
		t.Error("empty mesh accepted")
	}
}

func TestSetRotationReplacesValue(t *testing.T) {
	w := mustWorld(t)
	if err := w.AddMesh("box", mustCube(t, 4), math3d.Zero3(), math3d.IdentityRotation()); err != nil {
		t.Fatalf("add: %v", err)
	}
	before, _ := w.Placement("box")

	rot := math3d.NewRotation(1, 0.5, 0.25)
	if err := w.SetRotation("box", rot); err != nil {
		t.Fatalf("set rotation: %v", err)
	}
	after, _ := w.Placement("box")
	if after.Rotation.Yaw() != 1 {
		t.Errorf("yaw = %v, want 1", after.Rotation.Yaw())
	}
	// The previously read value is untouched.
	if before.Rotation.Yaw() != 0 {
		t.Error("placement mutated in place")
	}

	if err := w.SetRotation("ghost", rot); err == nil {
		t.Error("unknown placement accepted")
	}
	if err := w.SetOrigin("ghost", math3d.Zero3()); err == nil {
		t.Error("unknown placement accepted")
	}
}

func TestPlacementsFreshAndSorted(t *testing.T) {
	w := mustWorld(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := w.AddMesh(name, mustCube(t, 2), math3d.Zero3(), math3d.IdentityRotation()); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	ps := w.Placements()
	if len(ps) != 3 {
		t.Fatalf("placements = %d, want 3", len(ps))
	}
	for i, want := range []string{"alpha", "mid", "zeta"} {
		if ps[i].Name != want {
			t.Errorf("placements[%d] = %q, want %q", i, ps[i].Name, want)
		}
	}

	// Mutating the returned slice must not reach the world.
	ps[0].Name = "hacked"
	if _, ok := w.Placement("alpha"); !ok {
		t.Error("world placement changed through returned slice")
	}
}

func TestRemoveAndReset(t *testing.T) {
	w := mustWorld(t)
	for _, name := range []string{"a", "b"} {
		if err := w.AddMesh(name, mustCube(t, 2), math3d.Zero3(), math3d.IdentityRotation()); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	w.Remove("a")
	if _, ok := w.Placement("a"); ok {
		t.Error("removed placement still present")
	}
	w.Reset()
	if len(w.Placements()) != 0 {
		t.Error("reset left placements behind")
	}
}

func TestWorldViewport(t *testing.T) {
	w := mustWorld(t)
	vp := w.Viewport()
	if vp.Width != 80 || vp.Height != 40 || vp.Depth != 100 {
		t.Errorf("viewport = %+v", vp)
	}
}
