package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Width != 80 || cfg.Height != 40 || cfg.Depth != 100 {
		t.Errorf("volume = %dx%dx%d", cfg.Width, cfg.Height, cfg.Depth)
	}
	if len(cfg.Shapes) != 1 || cfg.Shapes[0].Kind != "cube" {
		t.Errorf("shapes = %+v", cfg.Shapes)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != Default().Width {
		t.Error("empty path should return defaults")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	src := `
width: 120
ambient: 0.35
shapes:
  - name: spike
    kind: pyramid
    size: 10
    origin: {x: 60, y: 20, z: 40}
    rotation: {yaw: 0.5}
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 120 {
		t.Errorf("width = %d, want 120", cfg.Width)
	}
	// Untouched keys keep their defaults.
	if cfg.Height != 40 || cfg.XScale != 2 {
		t.Errorf("height = %d xscale = %d", cfg.Height, cfg.XScale)
	}
	if len(cfg.Shapes) != 1 || cfg.Shapes[0].Kind != "pyramid" {
		t.Fatalf("shapes = %+v", cfg.Shapes)
	}
	if cfg.Shapes[0].Rotation.Yaw != 0.5 {
		t.Errorf("yaw = %v", cfg.Shapes[0].Rotation.Yaw)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/scene.yaml"); err == nil {
		t.Error("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: [not a number"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestConfigWorld(t *testing.T) {
	cfg := Default()
	w, err := cfg.World(nil)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	if _, ok := w.Placement("cube"); !ok {
		t.Error("default cube not placed")
	}
}

func TestConfigWorldUnknownKind(t *testing.T) {
	cfg := Default()
	cfg.Shapes = []ShapeConfig{{Name: "odd", Kind: "torus"}}
	if _, err := cfg.World(nil); err == nil || !strings.Contains(err.Error(), "torus") {
		t.Errorf("err = %v, want unknown kind", err)
	}
}

func TestConfigWorldScale(t *testing.T) {
	cfg := Default()
	cfg.Shapes[0].Scale = 0.5
	cfg.Shapes[0].Size = 16
	w, err := cfg.World(nil)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	p, _ := w.Placement("cube")
	b := p.Shape.Bounds()
	if got := b.Max.X - b.Min.X; got != 8 {
		t.Errorf("scaled extent = %v, want 8", got)
	}
}

func TestConfigRenderer(t *testing.T) {
	cfg := Default()
	cfg.Ramp = ".:#"
	r, err := cfg.Renderer(nil)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	frame, _ := r.Render(nil)
	if frame.Width() != cfg.Width || frame.Height() != cfg.Height {
		t.Errorf("frame = %dx%d", frame.Width(), frame.Height())
	}
}
