// Package render turns placed meshes into shaded character grids.
package render

import (
	"math"
	"strings"
)

// Frame holds one rendered character grid together with its depth
// buffer. Cells start blank with infinite depth.
type Frame struct {
	width  int
	height int
	xScale int
	blank  rune
	cells  []rune
	depth  []float64
}

// NewFrame allocates a cleared frame. Zero dimensions yield an empty
// frame; xScale values below 1 are treated as 1.
func NewFrame(width, height, xScale int, blank rune) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if xScale < 1 {
		xScale = 1
	}
	f := &Frame{
		width:  width,
		height: height,
		xScale: xScale,
		blank:  blank,
		cells:  make([]rune, width*height),
		depth:  make([]float64, width*height),
	}
	f.Clear()
	return f
}

// Clear resets every cell to the blank rune and every depth to +Inf.
func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = f.blank
		f.depth[i] = math.Inf(1)
	}
}

// Width returns the grid width in cells, before horizontal scaling.
func (f *Frame) Width() int { return f.width }

// Height returns the grid height in rows.
func (f *Frame) Height() int { return f.height }

// At returns the rune at (x, y), or the blank rune out of bounds.
func (f *Frame) At(x, y int) rune {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return f.blank
	}
	return f.cells[y*f.width+x]
}

// DepthAt returns the depth-buffer value at (x, y), +Inf out of bounds.
func (f *Frame) DepthAt(x, y int) float64 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return math.Inf(1)
	}
	return f.depth[y*f.width+x]
}

// set writes ch at (x, y) if depth beats the stored value.
func (f *Frame) set(x, y int, ch rune, depth float64) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	i := y*f.width + x
	if depth >= f.depth[i] {
		return false
	}
	f.cells[i] = ch
	f.depth[i] = depth
	return true
}

// String renders the grid as newline-joined rows. Each cell repeats
// horizontally xScale times to compensate for tall terminal cells.
func (f *Frame) String() string {
	var b strings.Builder
	b.Grow((f.width*f.xScale + 1) * f.height)
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			ch := f.cells[y*f.width+x]
			for range f.xScale {
				b.WriteRune(ch)
			}
		}
		if y < f.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
