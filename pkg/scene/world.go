// Package scene holds the world container of named, placed meshes.
package scene

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"glyphcast/pkg/bvh"
	"glyphcast/pkg/geometry"
	"glyphcast/pkg/math3d"
	"glyphcast/pkg/render"
)

// World stores named placements inside a fixed bounding volume. Each
// added mesh gets its acceleration tree built once; rotations replace
// the placement value wholesale. A World is not safe for concurrent
// mutation; the frame driver owns it.
type World struct {
	width  int
	height int
	depth  int
	log    *zap.Logger

	placements map[string]render.Placement
}

// NewWorld validates the world dimensions.
func NewWorld(width, height, depth int, log *zap.Logger) (*World, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("world dimensions %dx%dx%d: must be positive", width, height, depth)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		width:      width,
		height:     height,
		depth:      depth,
		log:        log,
		placements: make(map[string]render.Placement),
	}, nil
}

// Width returns the world extent along X.
func (w *World) Width() int { return w.width }

// Height returns the world extent along Y.
func (w *World) Height() int { return w.height }

// Depth returns the world extent along Z.
func (w *World) Depth() int { return w.depth }

// Viewport returns the window covering the whole world volume.
func (w *World) Viewport() *render.Viewport {
	return &render.Viewport{Width: w.width, Height: w.height, Depth: w.depth}
}

// AddMesh builds the mesh's acceleration tree and places it. Adding
// under an existing name replaces that placement.
func (w *World) AddMesh(name string, mesh *geometry.Mesh, origin math3d.Vec3, rot math3d.Rotation) error {
	if mesh == nil {
		return fmt.Errorf("placement %q: nil mesh", name)
	}
	tree, err := bvh.FromMesh(mesh)
	if err != nil {
		return fmt.Errorf("placement %q: %w", name, err)
	}
	w.placements[name] = render.Placement{
		Name:     name,
		Origin:   origin,
		Rotation: rot,
		Shape:    tree,
	}
	w.log.Debug("placed mesh",
		zap.String("placement", name),
		zap.Int("triangles", tree.TriangleCount()))
	return nil
}

// SetRotation replaces the named placement with a re-rotated copy.
func (w *World) SetRotation(name string, rot math3d.Rotation) error {
	p, ok := w.placements[name]
	if !ok {
		return fmt.Errorf("placement %q: not found", name)
	}
	p.Rotation = rot
	w.placements[name] = p
	return nil
}

// SetOrigin replaces the named placement with a moved copy.
func (w *World) SetOrigin(name string, origin math3d.Vec3) error {
	p, ok := w.placements[name]
	if !ok {
		return fmt.Errorf("placement %q: not found", name)
	}
	p.Origin = origin
	w.placements[name] = p
	return nil
}

// Placement looks up one placement by name.
func (w *World) Placement(name string) (render.Placement, bool) {
	p, ok := w.placements[name]
	return p, ok
}

// Remove discards the named placement if present.
func (w *World) Remove(name string) {
	delete(w.placements, name)
}

// Reset discards every placement.
func (w *World) Reset() {
	clear(w.placements)
}

// Placements returns a fresh slice of the current placements, ordered
// by name so a frame's composition is deterministic.
func (w *World) Placements() []render.Placement {
	out := make([]render.Placement, 0, len(w.placements))
	for _, p := range w.placements {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
