// Package render composes terminal frames: the raycast first-person view,
// the automap and sprite overlays.
package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one glyph and its style
type Cell struct {
	Rune  rune
	Style tcell.Style
}

var blank = Cell{Rune: ' ', Style: tcell.StyleDefault}

// Frame is a row-major grid of cells reused across ticks
type Frame struct {
	cells  []Cell
	width  int
	height int
}

// NewFrame creates a blank frame
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (f *Frame) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(f.cells) < size {
		f.cells = make([]Cell, size)
	} else {
		f.cells = f.cells[:size]
	}
	f.width = width
	f.height = height
	f.Clear()
}

// Clear resets every cell to blank using exponential copy
func (f *Frame) Clear() {
	if len(f.cells) == 0 {
		return
	}
	f.cells[0] = blank
	for filled := 1; filled < len(f.cells); filled *= 2 {
		copy(f.cells[filled:], f.cells[:filled])
	}
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Set writes a cell; out-of-bounds writes are dropped
func (f *Frame) Set(x, y int, r rune, style tcell.Style) {
	if !f.inBounds(x, y) {
		return
	}
	f.cells[y*f.width+x] = Cell{Rune: r, Style: style}
}

// Get returns the cell at (x, y), blank when out of bounds
func (f *Frame) Get(x, y int) Cell {
	if !f.inBounds(x, y) {
		return blank
	}
	return f.cells[y*f.width+x]
}

// Row returns the glyphs of row y as a string
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range f.cells[y*f.width : (y+1)*f.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns all rows joined by newlines
func (f *Frame) String() string {
	var sb strings.Builder
	for y := 0; y < f.height; y++ {
		sb.WriteString(f.Row(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FlipVertical mirrors the frame top-to-bottom in place
func (f *Frame) FlipVertical() {
	w := f.width
	for top, bot := 0, f.height-1; top < bot; top, bot = top+1, bot-1 {
		a := f.cells[top*w : (top+1)*w]
		b := f.cells[bot*w : (bot+1)*w]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// Text writes s starting at (x, y) without wrapping
func (f *Frame) Text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.Set(x, y, r, style)
		x++
	}
}
