package maze

import (
	"github.com/dogsinatas29/doomforantigravity/wad"
)

// MapOptions controls conversion to map geometry
type MapOptions struct {
	Name      string
	BlockSize int // map units per lattice block
	// Materials for faces running along x and along y
	HorizontalMaterial string
	VerticalMaterial   string
}

// DefaultMapOptions returns 64-unit blocks named E1M1
func DefaultMapOptions() MapOptions {
	return MapOptions{
		Name:               "E1M1",
		BlockSize:          64,
		HorizontalMaterial: "BRICK7",
		VerticalMaterial:   "STARTAN3",
	}
}

// ToMap traces every boundary between wall and open blocks into linedefs,
// merging collinear runs, and places the player start in the centre of
// the start room
func (m *Maze) ToMap(opts MapOptions) *wad.Map {
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultMapOptions().BlockSize
	}
	b := &mapBuilder{
		m:     &wad.Map{Name: opts.Name},
		index: make(map[Point]uint16),
		size:  opts.BlockSize,
	}
	b.m.Sidedefs = []wad.Sidedef{
		{Middle: opts.HorizontalMaterial, Upper: "-", Lower: "-"},
		{Middle: opts.VerticalMaterial, Upper: "-", Lower: "-"},
	}

	// horizontal boundaries between rows y-1 and y
	for y := 1; y < m.Height; y++ {
		run := -1
		for x := 0; x <= m.Width; x++ {
			edge := x < m.Width && m.Open(x, y-1) != m.Open(x, y)
			switch {
			case edge && run < 0:
				run = x
			case !edge && run >= 0:
				b.line(Point{run, y}, Point{x, y}, 0)
				run = -1
			}
		}
	}

	// vertical boundaries between columns x-1 and x
	for x := 1; x < m.Width; x++ {
		run := -1
		for y := 0; y <= m.Height; y++ {
			edge := y < m.Height && m.Open(x-1, y) != m.Open(x, y)
			switch {
			case edge && run < 0:
				run = y
			case !edge && run >= 0:
				b.line(Point{x, run}, Point{x, y}, 1)
				run = -1
			}
		}
	}

	half := opts.BlockSize / 2
	b.m.Things = []wad.Thing{{
		X:     m.Start.X*opts.BlockSize + half,
		Y:     m.Start.Y*opts.BlockSize + half,
		Angle: 0,
		Type:  wad.PlayerStart,
		Flags: 7,
	}}
	return b.m
}

type mapBuilder struct {
	m     *wad.Map
	index map[Point]uint16
	size  int
}

func (b *mapBuilder) vertex(p Point) uint16 {
	if i, ok := b.index[p]; ok {
		return i
	}
	i := uint16(len(b.m.Vertexes))
	b.m.Vertexes = append(b.m.Vertexes, wad.Vertex{X: p.X * b.size, Y: p.Y * b.size})
	b.index[p] = i
	return i
}

func (b *mapBuilder) line(a, c Point, side uint16) {
	b.m.Linedefs = append(b.m.Linedefs, wad.Linedef{
		Start: b.vertex(a),
		End:   b.vertex(c),
		Flags: 1,
		Right: side,
		Left:  wad.NoSide,
	})
}
