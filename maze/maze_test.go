package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogsinatas29/doomforantigravity/level"
	"github.com/dogsinatas29/doomforantigravity/wad"
)

func TestGenerate_PerfectMaze(t *testing.T) {
	m := Generate(Options{Width: 21, Height: 12, Seed: 7})
	require.Equal(t, 21, m.Width)
	require.Equal(t, 11, m.Height)

	for x := 0; x < m.Width; x++ {
		assert.False(t, m.Open(x, 0))
		assert.False(t, m.Open(x, m.Height-1))
	}
	for y := 0; y < m.Height; y++ {
		assert.False(t, m.Open(0, y))
		assert.False(t, m.Open(m.Width-1, y))
	}

	// a spanning tree over the rooms: n rooms joined by n-1 passages
	rooms := (m.Width / 2) * (m.Height / 2)
	open := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Open(x, y) {
				open++
			}
		}
	}
	assert.Equal(t, 2*rooms-1, open)

	path := m.Path(m.Start, m.End)
	require.NotNil(t, path)
	assert.Equal(t, m.Start, path[0])
	assert.Equal(t, m.End, path[len(path)-1])
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(Options{Width: 15, Height: 15, Braid: 0.5, Seed: 42})
	b := Generate(Options{Width: 15, Height: 15, Braid: 0.5, Seed: 42})
	assert.Equal(t, a.String(), b.String())
}

func TestGenerate_BraidKeepsTopology(t *testing.T) {
	m := Generate(Options{Width: 31, Height: 31, Braid: 1, Seed: 3})
	for y := 0; y < m.Height-1; y++ {
		for x := 0; x < m.Width-1; x++ {
			plaza := m.Open(x, y) && m.Open(x+1, y) && m.Open(x, y+1) && m.Open(x+1, y+1)
			assert.False(t, plaza, "plaza at %d,%d", x, y)
		}
	}
	assert.NotNil(t, m.Path(m.Start, m.End))
}

func TestGenerate_MinimumSize(t *testing.T) {
	m := Generate(Options{Width: 1, Height: 2, Seed: 1})
	assert.Equal(t, 3, m.Width)
	assert.Equal(t, 3, m.Height)
	assert.Equal(t, "###\n#.#\n###\n", m.String())
}

func TestToMap_SingleRoom(t *testing.T) {
	m := Generate(Options{Width: 3, Height: 3, Seed: 1})
	wm := m.ToMap(DefaultMapOptions())

	assert.ElementsMatch(t, []wad.Vertex{{X: 64, Y: 64}, {X: 128, Y: 64}, {X: 64, Y: 128}, {X: 128, Y: 128}}, wm.Vertexes)
	require.Len(t, wm.Linedefs, 4)
	for _, l := range wm.Linedefs {
		assert.Less(t, int(l.Start), len(wm.Vertexes))
		assert.Less(t, int(l.End), len(wm.Vertexes))
	}
	start, ok := wm.PlayerStart()
	require.True(t, ok)
	assert.Equal(t, 96, start.X)
	assert.Equal(t, 96, start.Y)
}

func TestToMap_Rasterizes(t *testing.T) {
	m := Generate(Options{Width: 11, Height: 9, Braid: 0.3, Seed: 11})
	wm := m.ToMap(DefaultMapOptions())

	reg := level.NewRegistry()
	lvl, err := level.Rasterize(wm, reg, level.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, lvl.Spawn.Found)
	assert.False(t, lvl.Spawn.Moved)

	_, ok := reg.Lookup("BRICK7")
	assert.True(t, ok)
	_, ok = reg.Lookup("STARTAN3")
	assert.True(t, ok)

	// round trip through the archive format
	arc, err := wad.Decode(wad.NewBuilder(wad.MagicPWAD).AddMap(wm).Bytes())
	require.NoError(t, err)
	back, err := arc.LoadMap("E1M1")
	require.NoError(t, err)
	assert.Equal(t, wm.Linedefs, back.Linedefs)
	assert.Equal(t, wm.Vertexes, back.Vertexes)
}
