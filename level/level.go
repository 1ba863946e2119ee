package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/dogsinatas29/doomforantigravity/logger"
	"github.com/dogsinatas29/doomforantigravity/vmath"
	"github.com/dogsinatas29/doomforantigravity/wad"
)

// ErrNoGeometry is returned for maps without vertexes
var ErrNoGeometry = errors.New("level: map has no vertexes")

// Options control the map-to-grid mapping
type Options struct {
	Scale   float64
	Padding int
}

// DefaultOptions maps 5 map units to one cell with a 20-cell margin
func DefaultOptions() Options {
	return Options{Scale: 0.2, Padding: 20}
}

// Transform maps archive coordinates into grid space
type Transform struct {
	MinX, MinY float64
	Scale      float64
	HalfPad    float64
}

// ToGrid maps an archive point to continuous grid coordinates
func (t Transform) ToGrid(x, y float64) (float64, float64) {
	return (x-t.MinX)*t.Scale + t.HalfPad, (y-t.MinY)*t.Scale + t.HalfPad
}

// Cell maps an archive point to the grid cell containing it
func (t Transform) Cell(x, y float64) (int, int) {
	gx, gy := t.ToGrid(x, y)
	return int(gx), int(gy)
}

// Segment is a linedef in grid space
type Segment struct {
	X1, Y1, X2, Y2 float64
	Material       uint16
}

// Spawn is the resolved player start in grid space
type Spawn struct {
	X, Y  float64
	Angle float64
	// Found is false when the map had no player start and the grid centre was used
	Found bool
	// Moved is true when the start lay in a solid cell and was relocated
	Moved bool
}

// Level is a rasterized map
type Level struct {
	Name      string
	Grid      *Grid
	Registry  *Registry
	Transform Transform
	Segments  []Segment
	Spawn     Spawn

	VertexCount  int
	LinedefCount int
}

// Rasterize stamps every linedef of m into a new grid, interning material
// names into reg. Rasterizing the same map into the same registry again
// produces an equal grid without growing the registry.
func Rasterize(m *wad.Map, reg *Registry, opts Options) (*Level, error) {
	if len(m.Vertexes) == 0 {
		return nil, fmt.Errorf("rasterize %s: %w", m.Name, ErrNoGeometry)
	}
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("rasterize %s: scale must be positive, got %v", m.Name, opts.Scale)
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	minX, minY := m.Vertexes[0].X, m.Vertexes[0].Y
	maxX, maxY := minX, minY
	for _, v := range m.Vertexes[1:] {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}

	w := int(math.Floor(float64(maxX-minX)*opts.Scale)) + opts.Padding
	h := int(math.Floor(float64(maxY-minY)*opts.Scale)) + opts.Padding

	lvl := &Level{
		Name:     m.Name,
		Grid:     NewGrid(w, h),
		Registry: reg,
		Transform: Transform{
			MinX:    float64(minX),
			MinY:    float64(minY),
			Scale:   opts.Scale,
			HalfPad: float64(opts.Padding) / 2,
		},
		Segments:     make([]Segment, 0, len(m.Linedefs)),
		VertexCount:  len(m.Vertexes),
		LinedefCount: len(m.Linedefs),
	}

	for i, l := range m.Linedefs {
		if int(l.Start) >= len(m.Vertexes) || int(l.End) >= len(m.Vertexes) {
			return nil, &wad.FormatError{What: fmt.Sprintf("%s linedef %d", m.Name, i), Reason: "vertex index out of range"}
		}
		id := resolveMaterial(m, l, reg)
		a, b := m.Vertexes[l.Start], m.Vertexes[l.End]

		x1, y1 := lvl.Transform.ToGrid(float64(a.X), float64(a.Y))
		x2, y2 := lvl.Transform.ToGrid(float64(b.X), float64(b.Y))
		lvl.Segments = append(lvl.Segments, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Material: id})

		vmath.Line(int(x1), int(y1), int(x2), int(y2), func(x, y int) bool {
			lvl.Grid.Set(x, y, id)
			return true
		})
	}

	lvl.Spawn = placeSpawn(m, lvl)

	logger.For("level").WithFields(logrus.Fields{
		"map":       m.Name,
		"width":     w,
		"height":    h,
		"solid":     lvl.Grid.CountSolid(),
		"materials": reg.Len(),
		"spawn_x":   lvl.Spawn.X,
		"spawn_y":   lvl.Spawn.Y,
	}).Info("level rasterized")

	return lvl, nil
}

// resolveMaterial maps a linedef's right-side middle texture to a registry id.
// A missing side, or an empty or "-" name, yields the default id.
func resolveMaterial(m *wad.Map, l wad.Linedef, reg *Registry) uint16 {
	name, ok := m.MiddleTexture(l)
	if !ok || name == "" || name == "-" {
		return Default
	}
	return reg.Intern(name)
}

func placeSpawn(m *wad.Map, lvl *Level) Spawn {
	var s Spawn
	if t, ok := m.PlayerStart(); ok {
		s.X, s.Y = lvl.Transform.ToGrid(float64(t.X), float64(t.Y))
		s.Angle = vmath.NormalizeAngle(t.Radians())
		s.Found = true
	} else {
		s.X = float64(lvl.Grid.Width()) / 2
		s.Y = float64(lvl.Grid.Height()) / 2
	}

	x, y, moved, ok := ResolveSpawn(lvl.Grid, s.X, s.Y)
	if !ok {
		logger.For("level").WithField("map", m.Name).Warn("no passable cell for spawn")
		return s
	}
	s.X, s.Y, s.Moved = x, y, moved
	return s
}

// ResolveSpawn returns (x, y) unchanged when its cell is passable. Otherwise it
// searches square rings of growing radius and returns the centre of the
// nearest passable cell on the first ring that has one. ok is false when the
// grid has no passable cell.
func ResolveSpawn(g *Grid, x, y float64) (rx, ry float64, moved, ok bool) {
	cx, cy := vmath.FloorInt(x), vmath.FloorInt(y)
	if !g.Solid(cx, cy) {
		return x, y, false, true
	}

	maxR := max(g.Width(), g.Height()) + max(vmath.AbsInt(cx), vmath.AbsInt(cy))
	for r := 1; r <= maxR; r++ {
		best := math.Inf(1)
		bx, by := 0, 0
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if vmath.AbsInt(dx) != r && vmath.AbsInt(dy) != r {
					continue
				}
				nx, ny := cx+dx, cy+dy
				if g.Solid(nx, ny) {
					continue
				}
				d := math.Hypot(float64(nx)+0.5-x, float64(ny)+0.5-y)
				if d < best {
					best, bx, by = d, nx, ny
				}
			}
		}
		if !math.IsInf(best, 1) {
			return float64(bx) + 0.5, float64(by) + 0.5, true, true
		}
	}
	return x, y, false, false
}
