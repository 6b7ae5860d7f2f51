package render

import (
	"fmt"

	"glyphcast/pkg/math3d"
)

// Viewport crops the render to a world-space axis-aligned window.
// Origin is the world position of the bottom-left cell; Depth bounds
// how far along the projection axis hits are accepted (0 = unbounded).
type Viewport struct {
	Origin math3d.Vec3
	Width  int
	Height int
	Depth  int
}

// NewViewport validates the window dimensions.
func NewViewport(origin math3d.Vec3, width, height, depth int) (*Viewport, error) {
	if width < 0 || height < 0 || depth < 0 {
		return nil, fmt.Errorf("viewport dimensions %dx%dx%d: must not be negative", width, height, depth)
	}
	return &Viewport{Origin: origin, Width: width, Height: height, Depth: depth}, nil
}

// farPlane returns the maximum accepted hit distance.
func (v *Viewport) farPlane() float64 {
	if v == nil || v.Depth <= 0 {
		return positiveInf
	}
	return float64(v.Depth)
}
