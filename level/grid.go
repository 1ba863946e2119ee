// Package level rasterizes decoded map geometry into an occupancy grid with
// per-cell material ids.
package level

// Material id reserved values
const (
	Empty   uint16 = 0
	Default uint16 = 1
)

// Grid is a fixed-size [x][y] matrix of material ids; 0 is passable
type Grid struct {
	w, h  int
	cells []uint16
}

// NewGrid allocates an all-empty grid. Non-positive dimensions yield an empty grid.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{w: w, h: h, cells: make([]uint16, w*h)}
}

// Width returns the column count
func (g *Grid) Width() int { return g.w }

// Height returns the row count
func (g *Grid) Height() int { return g.h }

// InBounds reports whether (x, y) addresses a cell
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// At returns the material at (x, y), or Empty when out of bounds
func (g *Grid) At(x, y int) uint16 {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[x*g.h+y]
}

// Set writes a material; out-of-bounds writes are dropped
func (g *Grid) Set(x, y int, id uint16) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[x*g.h+y] = id
}

// Solid reports whether (x, y) blocks movement; cells outside the grid are solid
func (g *Grid) Solid(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.cells[x*g.h+y] != Empty
}

// Equal reports whether two grids have identical dimensions and contents
func (g *Grid) Equal(o *Grid) bool {
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// CountSolid returns the number of non-empty cells
func (g *Grid) CountSolid() int {
	n := 0
	for _, v := range g.cells {
		if v != Empty {
			n++
		}
	}
	return n
}
