package render

import (
	"math"

	"github.com/dogsinatas29/doomforantigravity/vmath"
)

// Occupancy is the grid query the raycaster needs
type Occupancy interface {
	InBounds(x, y int) bool
	At(x, y int) uint16
}

// Side identifies which family of cell boundaries a ray crossed last
type Side uint8

const (
	SideX Side = iota // vertical boundary, face normal along X
	SideY             // horizontal boundary, face normal along Y
)

// Hit is the result of one DDA traversal
type Hit struct {
	OK       bool
	CellX    int
	CellY    int
	Material uint16
	Side     Side
	// Dist is the distance along the unit ray to the crossed boundary
	Dist float64
	// WallX is the fractional hit position along the face in [0, 1),
	// oriented so textures read left to right
	WallX float64
	Steps int
}

// CastRay walks the grid from (px, py) along the unit direction (dx, dy)
// until a non-empty cell, the grid edge, or maxSteps boundary crossings.
// The starting cell is never tested.
func CastRay(g Occupancy, px, py, dx, dy float64, maxSteps int) Hit {
	mapX, mapY := vmath.FloorInt(px), vmath.FloorInt(py)
	deltaX, deltaY := vmath.Reciprocal(dx), vmath.Reciprocal(dy)

	stepX, stepY := 1, 1
	var sideX, sideY float64
	if dx < 0 {
		stepX = -1
		sideX = (px - float64(mapX)) * deltaX
	} else {
		sideX = (float64(mapX) + 1 - px) * deltaX
	}
	if dy < 0 {
		stepY = -1
		sideY = (py - float64(mapY)) * deltaY
	} else {
		sideY = (float64(mapY) + 1 - py) * deltaY
	}

	var h Hit
	for h.Steps < maxSteps {
		h.Steps++
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			h.Side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			h.Side = SideY
		}

		if !g.InBounds(mapX, mapY) {
			return h
		}
		if id := g.At(mapX, mapY); id != 0 {
			h.OK = true
			h.Material = id
			break
		}
	}
	if !h.OK {
		return h
	}

	h.CellX, h.CellY = mapX, mapY
	if h.Side == SideX {
		h.Dist = sideX - deltaX
		h.WallX = py + h.Dist*dy
	} else {
		h.Dist = sideY - deltaY
		h.WallX = px + h.Dist*dx
	}
	h.WallX -= math.Floor(h.WallX)
	if (h.Side == SideX && dx > 0) || (h.Side == SideY && dy < 0) {
		h.WallX = 1 - h.WallX
		if h.WallX >= 1 {
			h.WallX = 0
		}
	}
	return h
}
