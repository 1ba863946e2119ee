package level

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogsinatas29/doomforantigravity/wad"
)

func squareMap(sides []wad.Sidedef, right [4]uint16, things ...wad.Thing) *wad.Map {
	m := &wad.Map{
		Name:     "E1M1",
		Vertexes: []wad.Vertex{{X: 0, Y: 0}, {X: 512, Y: 0}, {X: 512, Y: 512}, {X: 0, Y: 512}},
		Sidedefs: sides,
		Things:   things,
	}
	for i := 0; i < 4; i++ {
		m.Linedefs = append(m.Linedefs, wad.Linedef{
			Start: uint16(i), End: uint16((i + 1) % 4),
			Right: right[i], Left: wad.NoSide,
		})
	}
	return m
}

var noSides = [4]uint16{wad.NoSide, wad.NoSide, wad.NoSide, wad.NoSide}

func TestRasterize_SquareRoom(t *testing.T) {
	m := squareMap(nil, noSides, wad.Thing{X: 128, Y: 128, Type: wad.PlayerStart})
	lvl, err := Rasterize(m, NewRegistry(), DefaultOptions())
	require.NoError(t, err)

	g := lvl.Grid
	require.Equal(t, 122, g.Width())
	require.Equal(t, 122, g.Height())

	// walls run from cell 10 to cell 112 on both axes
	for i := 10; i <= 112; i++ {
		assert.Equal(t, Default, g.At(i, 10), "bottom %d", i)
		assert.Equal(t, Default, g.At(i, 112), "top %d", i)
		assert.Equal(t, Default, g.At(10, i), "left %d", i)
		assert.Equal(t, Default, g.At(112, i), "right %d", i)
	}
	for x := 11; x < 112; x++ {
		for y := 11; y < 112; y++ {
			if g.At(x, y) != Empty {
				t.Fatalf("interior cell (%d,%d) = %d", x, y, g.At(x, y))
			}
		}
	}
	assert.Equal(t, 4*102, g.CountSolid())
	assert.Len(t, lvl.Segments, 4)
	assert.Equal(t, 4, lvl.VertexCount)
	assert.Equal(t, 4, lvl.LinedefCount)
}

func TestRasterize_Materials(t *testing.T) {
	sides := []wad.Sidedef{
		{Middle: "STARTAN3"},
		{Middle: "-"},
		{Middle: "BRICK1"},
	}
	reg := NewRegistry()
	m := squareMap(sides, [4]uint16{0, 1, 2, 0})
	lvl, err := Rasterize(m, reg, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, reg.Len())
	startan, ok := reg.Lookup("STARTAN3")
	require.True(t, ok)
	brick, ok := reg.Lookup("BRICK1")
	require.True(t, ok)
	assert.Equal(t, uint16(2), startan)
	assert.Equal(t, uint16(3), brick)

	assert.Equal(t, startan, lvl.Segments[0].Material)
	assert.Equal(t, Default, lvl.Segments[1].Material)
	assert.Equal(t, brick, lvl.Segments[2].Material)
	assert.Equal(t, startan, lvl.Segments[3].Material)

	// middle of the bottom wall is not shared with any corner
	assert.Equal(t, startan, lvl.Grid.At(60, 10))
	assert.Equal(t, Default, lvl.Grid.At(112, 60))
}

func TestRasterize_OutOfRangeSideUsesDefault(t *testing.T) {
	sides := []wad.Sidedef{{Middle: "PIPE1"}}
	reg := NewRegistry()
	lvl, err := Rasterize(squareMap(sides, [4]uint16{7, 7, 7, 7}), reg, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	for _, s := range lvl.Segments {
		assert.Equal(t, Default, s.Material)
	}
}

func TestRasterize_Idempotent(t *testing.T) {
	sides := []wad.Sidedef{{Middle: "STARTAN3"}, {Middle: "COMPTALL"}}
	m := squareMap(sides, [4]uint16{0, 1, 0, 1})
	reg := NewRegistry()

	a, err := Rasterize(m, reg, DefaultOptions())
	require.NoError(t, err)
	n := reg.Len()

	b, err := Rasterize(m, reg, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, n, reg.Len())
	assert.True(t, a.Grid.Equal(b.Grid))
	assert.Equal(t, a.Segments, b.Segments)
}

func TestRasterize_DegenerateSegment(t *testing.T) {
	m := &wad.Map{
		Name:     "MAP01",
		Vertexes: []wad.Vertex{{X: 0, Y: 0}, {X: 100, Y: 100}},
		Linedefs: []wad.Linedef{{Start: 1, End: 1, Right: wad.NoSide, Left: wad.NoSide}},
	}
	lvl, err := Rasterize(m, NewRegistry(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, lvl.Grid.CountSolid())
	assert.Equal(t, Default, lvl.Grid.At(30, 30))
}

func TestRasterize_Errors(t *testing.T) {
	_, err := Rasterize(&wad.Map{Name: "E1M1"}, NewRegistry(), DefaultOptions())
	assert.True(t, errors.Is(err, ErrNoGeometry))

	m := squareMap(nil, noSides)
	m.Linedefs[2].End = 40
	_, err = Rasterize(m, NewRegistry(), DefaultOptions())
	assert.True(t, errors.Is(err, wad.ErrFormat))

	_, err = Rasterize(squareMap(nil, noSides), NewRegistry(), Options{Scale: 0})
	assert.Error(t, err)
}

func TestSpawn_PassableKeptVerbatim(t *testing.T) {
	m := squareMap(nil, noSides, wad.Thing{X: 128, Y: 128, Angle: 90, Type: wad.PlayerStart})
	lvl, err := Rasterize(m, NewRegistry(), DefaultOptions())
	require.NoError(t, err)

	assert.True(t, lvl.Spawn.Found)
	assert.False(t, lvl.Spawn.Moved)
	assert.InDelta(t, 35.6, lvl.Spawn.X, 1e-9)
	assert.InDelta(t, 35.6, lvl.Spawn.Y, 1e-9)
	assert.InDelta(t, math.Pi/2, lvl.Spawn.Angle, 1e-9)
}

func TestSpawn_InsideWallRelocated(t *testing.T) {
	m := squareMap(nil, noSides, wad.Thing{X: 0, Y: 256, Type: wad.PlayerStart})
	lvl, err := Rasterize(m, NewRegistry(), DefaultOptions())
	require.NoError(t, err)

	s := lvl.Spawn
	assert.True(t, s.Moved)
	assert.False(t, lvl.Grid.Solid(int(s.X), int(s.Y)))
	// first ring around cell (10, 61)
	assert.LessOrEqual(t, math.Abs(math.Floor(s.X)-10), 1.0)
	assert.LessOrEqual(t, math.Abs(math.Floor(s.Y)-61), 1.0)
	assert.InDelta(t, 0.5, s.X-math.Floor(s.X), 1e-9)
}

func TestSpawn_MissingUsesGridCentre(t *testing.T) {
	lvl, err := Rasterize(squareMap(nil, noSides), NewRegistry(), DefaultOptions())
	require.NoError(t, err)
	assert.False(t, lvl.Spawn.Found)
	assert.Equal(t, 61.0, lvl.Spawn.X)
	assert.Equal(t, 61.0, lvl.Spawn.Y)
}

func TestResolveSpawn(t *testing.T) {
	g := NewGrid(7, 7)
	for x := 0; x < 7; x++ {
		for y := 0; y < 7; y++ {
			g.Set(x, y, Default)
		}
	}
	g.Set(5, 3, Empty)

	x, y, moved, ok := ResolveSpawn(g, 3.2, 3.7)
	require.True(t, ok)
	assert.True(t, moved)
	assert.Equal(t, 5.5, x)
	assert.Equal(t, 3.5, y)

	full := NewGrid(2, 2)
	for i := 0; i < 4; i++ {
		full.Set(i/2, i%2, Default)
	}
	_, _, _, ok = ResolveSpawn(full, 1, 1)
	assert.False(t, ok)
}

func TestGrid_Bounds(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(-1, 0, 5)
	g.Set(3, 0, 5)
	assert.Equal(t, 0, g.CountSolid())
	assert.True(t, g.Solid(-1, 0))
	assert.True(t, g.Solid(0, 2))
	assert.False(t, g.Solid(2, 1))
	assert.Equal(t, Empty, g.At(9, 9))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, DefaultName, r.Name(Default))
	assert.Equal(t, Empty, r.Intern(""))

	a := r.Intern("NUKAGE1")
	assert.Equal(t, uint16(2), a)
	assert.Equal(t, a, r.Intern("NUKAGE1"))
	assert.Equal(t, Default, r.Intern(DefaultName))
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "", r.Name(99))
}

func TestRegistry_FullTableFallsBackToDefault(t *testing.T) {
	r := NewRegistry()
	var last uint16
	for i := 0; i < math.MaxUint16+10; i++ {
		last = r.Intern(fmt.Sprintf("M%d", i))
		require.NotEqual(t, Empty, last, "name %d", i)
	}
	assert.Equal(t, Default, last)
	assert.Equal(t, math.MaxUint16+1, r.Len())
	assert.Equal(t, uint16(math.MaxUint16), r.Intern(fmt.Sprintf("M%d", math.MaxUint16-2)))
}

func TestDump(t *testing.T) {
	g := NewGrid(4, 2)
	g.Set(0, 0, Default)
	g.Set(1, 0, 2)
	g.Set(2, 0, 3)

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, g, 3, 1))
	assert.Equal(t, "001 ...@\n000 #%+.\n", buf.String())
}
