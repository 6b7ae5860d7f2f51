package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalRenderer draws frames onto an ultraviolet terminal.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int
	height int
}

// NewTerminalRenderer wraps a started terminal of the given size.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// Render writes the frame into the terminal's cell buffer.
func (tr *TerminalRenderer) Render(f *Frame) {
	f.Draw(tr.term, uv.Rect(0, 0, tr.width, tr.height))
}

// Flush pushes the cell buffer to the display.
func (tr *TerminalRenderer) Flush() error {
	return tr.term.Display()
}

// Draw writes the frame's characters into the given screen area. Each
// grid cell repeats horizontally xScale times, matching String.
func (f *Frame) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		y := row - area.Min.Y
		if y >= f.height {
			break
		}
		for x := 0; x < f.width; x++ {
			cell := &uv.Cell{
				Content: string(f.cells[y*f.width+x]),
				Width:   1,
			}
			for i := 0; i < f.xScale; i++ {
				col := area.Min.X + x*f.xScale + i
				if col >= area.Max.X {
					break
				}
				scr.SetCell(col, row, cell)
			}
		}
	}
}
