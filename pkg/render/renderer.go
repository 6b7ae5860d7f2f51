package render

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"glyphcast/pkg/bvh"
	"glyphcast/pkg/geometry"
	"glyphcast/pkg/math3d"
)

var positiveInf = math.Inf(1)

// DefaultRamp orders shading characters darkest to brightest.
var DefaultRamp = []rune{'.', ':', '-', '=', '+', '*', '#', '@'}

// Shape is anything a ray can be cast against in its local frame.
// Both *bvh.Tree and *geometry.Mesh satisfy it.
type Shape interface {
	Bounds() geometry.AABB
	IntersectRay(origin, dir math3d.Vec3) (geometry.Hit, bool)
}

// statsShape is implemented by shapes that can account their traversal
// work, such as *bvh.Tree.
type statsShape interface {
	IntersectRayStats(origin, dir math3d.Vec3, stats *bvh.Stats) (geometry.Hit, bool)
}

// Placement positions a shape in the world. Values are replaced
// wholesale on update, never mutated.
type Placement struct {
	Name     string
	Origin   math3d.Vec3
	Rotation math3d.Rotation
	Shape    Shape
}

// FrameStats reports the work done by one Render call.
type FrameStats struct {
	Rays              int64
	CellsShaded       int64
	PlacementsSkipped int64
	Traversal         bvh.Stats
	Elapsed           time.Duration
}

// Config sets up a Renderer.
type Config struct {
	Width   int     // grid width in cells
	Height  int     // grid height in rows
	Light   math3d.Vec3
	Ambient float64 // base brightness in [0, 1]
	Ramp    []rune  // darkest to brightest; DefaultRamp when empty
	XScale  int     // horizontal cell repetition, minimum 1
	Blank   rune    // rune for empty cells, ' ' when zero
	Workers int     // parallel row workers, 0 = unbounded
	Logger  *zap.Logger
}

// Renderer casts one orthographic ray along +Z per output cell and
// shades the nearest intersection onto a character ramp.
type Renderer struct {
	width   int
	height  int
	light   math3d.Vec3
	ambient float64
	ramp    []rune
	xScale  int
	blank   rune
	workers int
	log     *zap.Logger
}

// New validates the configuration and returns a Renderer.
func New(cfg Config) (*Renderer, error) {
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("renderer grid %dx%d: must not be negative", cfg.Width, cfg.Height)
	}
	if cfg.Ambient < 0 || cfg.Ambient > 1 {
		return nil, fmt.Errorf("ambient %v: must be in [0, 1]", cfg.Ambient)
	}
	ramp := cfg.Ramp
	if len(ramp) == 0 {
		ramp = DefaultRamp
	}
	light := cfg.Light.Normalize()
	if light == math3d.Zero3() {
		light = math3d.V3(0, 0, -1)
	}
	blank := cfg.Blank
	if blank == 0 {
		blank = ' '
	}
	xScale := cfg.XScale
	if xScale < 1 {
		xScale = 1
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		width:   cfg.Width,
		height:  cfg.Height,
		light:   light,
		ambient: cfg.Ambient,
		ramp:    ramp,
		xScale:  xScale,
		blank:   blank,
		workers: cfg.Workers,
		log:     log,
	}, nil
}

// localPlacement is a placement with its per-frame ray transform
// precomputed: the projection direction in the shape's local frame.
type localPlacement struct {
	Placement
	localDir math3d.Vec3
}

// Render casts the full configured grid with no viewport offset.
// Placements with a nil shape are skipped and logged, never fatal.
func (r *Renderer) Render(placements []Placement) (*Frame, FrameStats) {
	return r.RenderViewport(placements, nil)
}

// RenderViewport renders through an optional world-space window. A nil
// viewport renders the configured grid from the world origin.
func (r *Renderer) RenderViewport(placements []Placement, vp *Viewport) (*Frame, FrameStats) {
	start := time.Now()

	width, height := r.width, r.height
	origin := math3d.Zero3()
	if vp != nil {
		width, height = vp.Width, vp.Height
		origin = vp.Origin
	}
	far := vp.farPlane()
	frame := NewFrame(width, height, r.xScale, r.blank)

	var stats FrameStats
	dir := math3d.V3(0, 0, 1)
	locals := make([]localPlacement, 0, len(placements))
	for _, p := range placements {
		if p.Shape == nil {
			stats.PlacementsSkipped++
			r.log.Warn("skipping placement without an intersectable shape",
				zap.String("placement", p.Name))
			continue
		}
		locals = append(locals, localPlacement{
			Placement: p,
			localDir:  p.Rotation.ApplyInverse(dir),
		})
	}

	// One worker per row: every cell writes a disjoint frame index, so
	// rows share nothing but the read-only placements and trees.
	rowStats := make([]bvh.Stats, height)
	var g errgroup.Group
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}
	for y := 0; y < height; y++ {
		g.Go(func() error {
			r.renderRow(frame, locals, origin, far, y, &rowStats[y])
			return nil
		})
	}
	g.Wait() //nolint:errcheck // row workers never return errors

	for _, s := range rowStats {
		stats.Traversal.Merge(s)
	}
	stats.Rays = int64(width*height) * int64(len(locals))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if frame.At(x, y) != r.blank {
				stats.CellsShaded++
			}
		}
	}
	stats.Elapsed = time.Since(start)
	return frame, stats
}

// renderRow shades one grid row. Row y maps to descending world Y so
// the printed grid comes out upright.
func (r *Renderer) renderRow(frame *Frame, locals []localPlacement, origin math3d.Vec3, far float64, y int, stats *bvh.Stats) {
	worldY := origin.Y + float64(frame.height-1-y)
	for x := 0; x < frame.width; x++ {
		rayOrigin := math3d.V3(origin.X+float64(x), worldY, origin.Z)
		for _, p := range locals {
			localOrigin := p.Rotation.ApplyInverse(rayOrigin.Sub(p.Origin))

			var hit geometry.Hit
			var ok bool
			if s, has := p.Shape.(statsShape); has {
				hit, ok = s.IntersectRayStats(localOrigin, p.localDir, stats)
			} else {
				hit, ok = p.Shape.IntersectRay(localOrigin, p.localDir)
			}
			if !ok || hit.Distance > far {
				continue
			}
			// Rotations preserve length, so the local-space distance
			// is also the world-space depth along the ray.
			frame.set(x, y, r.shade(p.Rotation.TransformNormal(hit.Triangle.Normal())), hit.Distance)
		}
	}
}

// shade quantizes Lambertian brightness onto the ramp. A zero normal
// from degenerate geometry shades as ambient only.
func (r *Renderer) shade(worldNormal math3d.Vec3) rune {
	diffuse := math.Max(0, worldNormal.Dot(r.light))
	brightness := r.ambient + (1-r.ambient)*diffuse
	brightness = math.Min(1, math.Max(0, brightness))
	level := int(brightness * float64(len(r.ramp)))
	if level >= len(r.ramp) {
		level = len(r.ramp) - 1
	}
	return r.ramp[level]
}
