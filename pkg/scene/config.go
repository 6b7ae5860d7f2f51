package scene

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"glyphcast/pkg/geometry"
	"glyphcast/pkg/math3d"
	"glyphcast/pkg/models"
	"glyphcast/pkg/render"
)

// Config describes a scene file: world volume, lighting, and the
// shapes to place in it.
type Config struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Depth   int     `yaml:"depth"`
	Ambient float64 `yaml:"ambient"`
	XScale  int     `yaml:"xscale"`
	Ramp    string  `yaml:"ramp"`

	Light  VecConfig     `yaml:"light"`
	Shapes []ShapeConfig `yaml:"shapes"`
}

// VecConfig is a vector in scene-file form.
type VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec converts to a math vector.
func (v VecConfig) Vec() math3d.Vec3 {
	return math3d.V3(v.X, v.Y, v.Z)
}

// RotConfig is a rotation in scene-file form, angles in radians.
type RotConfig struct {
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	Roll  float64 `yaml:"roll"`
}

// Rotation converts to a precomputed rotation.
func (r RotConfig) Rotation() math3d.Rotation {
	return math3d.NewRotation(r.Yaw, r.Pitch, r.Roll)
}

// ShapeConfig places one shape. Kind selects the source: "cube" and
// "pyramid" are procedural with Size, "obj" and "glb" load Path.
type ShapeConfig struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Size     float64   `yaml:"size"`
	Path     string    `yaml:"path"`
	Scale    float64   `yaml:"scale"`
	Origin   VecConfig `yaml:"origin"`
	Rotation RotConfig `yaml:"rotation"`
}

// Default returns the scene used when no file is given: one cube
// spinning in the middle of an 80x40 world.
func Default() *Config {
	return &Config{
		Width:   80,
		Height:  40,
		Depth:   100,
		Ambient: 0.2,
		XScale:  2,
		Light:   VecConfig{X: 0.4, Y: 0.6, Z: -1},
		Shapes: []ShapeConfig{{
			Name:   "cube",
			Kind:   "cube",
			Size:   16,
			Origin: VecConfig{X: 40, Y: 20, Z: 50},
		}},
	}
}

// Load reads a scene file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading scene from %s: %w", path, err)
	}
	return cfg, nil
}

// World builds the configured world and places every shape in it.
func (c *Config) World(log *zap.Logger) (*World, error) {
	w, err := NewWorld(c.Width, c.Height, c.Depth, log)
	if err != nil {
		return nil, err
	}
	for _, s := range c.Shapes {
		mesh, err := s.mesh()
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", s.Name, err)
		}
		if err := w.AddMesh(s.Name, mesh, s.Origin.Vec(), s.Rotation.Rotation()); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Renderer builds a renderer matching the scene's grid and lighting.
func (c *Config) Renderer(log *zap.Logger) (*render.Renderer, error) {
	return render.New(render.Config{
		Width:   c.Width,
		Height:  c.Height,
		Light:   c.Light.Vec(),
		Ambient: c.Ambient,
		Ramp:    []rune(c.Ramp),
		XScale:  c.XScale,
		Logger:  log,
	})
}

// mesh materializes the shape's triangle mesh.
func (s ShapeConfig) mesh() (*geometry.Mesh, error) {
	var mesh *geometry.Mesh
	var err error
	switch s.Kind {
	case "cube", "":
		mesh, err = geometry.Cube(s.Name, s.Size)
	case "pyramid":
		mesh, err = geometry.Pyramid(s.Name, s.Size)
	case "obj":
		mesh, err = models.LoadOBJ(s.Path)
	case "glb":
		mesh, err = models.LoadGLB(s.Path)
	default:
		return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	if err != nil {
		return nil, err
	}
	if s.Scale != 0 && s.Scale != 1 {
		mesh, err = mesh.Scaled(s.Scale)
		if err != nil {
			return nil, err
		}
	}
	return mesh, nil
}
