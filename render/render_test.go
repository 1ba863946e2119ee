package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogsinatas29/doomforantigravity/level"
	"github.com/dogsinatas29/doomforantigravity/texture"
	"github.com/dogsinatas29/doomforantigravity/wad"
)

// wallLevel builds a w×h level whose solid cells are chosen by solid
func wallLevel(w, h int, solid func(x, y int) bool) *level.Level {
	g := level.NewGrid(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if solid(x, y) {
				g.Set(x, y, level.Default)
			}
		}
	}
	return &level.Level{Grid: g, Registry: level.NewRegistry()}
}

func TestFrame_Basics(t *testing.T) {
	f := NewFrame(4, 3)
	assert.Equal(t, "    \n    \n    \n", f.String())

	f.Set(0, 0, 'a', tcell.StyleDefault)
	f.Set(3, 2, 'z', tcell.StyleDefault)
	f.Set(4, 0, 'x', tcell.StyleDefault)
	f.Set(-1, 1, 'x', tcell.StyleDefault)
	f.Text(1, 1, "hello", tcell.StyleDefault)
	assert.Equal(t, "a   \n hel\n   z\n", f.String())
	assert.Equal(t, ' ', f.Get(10, 10).Rune)

	f.FlipVertical()
	assert.Equal(t, "   z\n hel\na   \n", f.String())

	f.Resize(2, 2)
	assert.Equal(t, "  \n  \n", f.String())
	f.Resize(6, 1)
	assert.Equal(t, "      ", f.Row(0))
	assert.Equal(t, "", f.Row(5))
}

func TestFrame_Draw(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(5, 2)

	f := NewFrame(8, 2)
	f.Text(0, 1, "abcdefgh", tcell.StyleDefault.Foreground(texture.ColorSilver))
	f.Draw(s)

	r, _, style, _ := s.GetContent(4, 1)
	assert.Equal(t, 'e', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, texture.ColorSilver, fg)
}

func TestCastRay(t *testing.T) {
	lvl := wallLevel(20, 20, func(x, y int) bool { return x == 10 || y == 2 })

	h := CastRay(lvl.Grid, 5.5, 5.5, 1, 0, 100)
	require.True(t, h.OK)
	assert.Equal(t, 10, h.CellX)
	assert.Equal(t, 5, h.CellY)
	assert.Equal(t, SideX, h.Side)
	assert.InDelta(t, 4.5, h.Dist, 1e-12)
	assert.InDelta(t, 0.5, h.WallX, 1e-12)
	assert.Equal(t, 5, h.Steps)

	// zero x component uses the sentinel reciprocal
	h = CastRay(lvl.Grid, 5.5, 5.25, 0, -1, 100)
	require.True(t, h.OK)
	assert.Equal(t, SideY, h.Side)
	assert.InDelta(t, 2.25, h.Dist, 1e-12)
	assert.Equal(t, 2, h.CellY)
	// looking down -y flips the face coordinate
	assert.InDelta(t, 0.5, h.WallX, 1e-12)

	// leaves the grid without a hit
	h = CastRay(lvl.Grid, 5.5, 5.5, 0, 1, 100)
	assert.False(t, h.OK)

	// step budget exhausted
	h = CastRay(lvl.Grid, 5.5, 5.5, 1, 0, 3)
	assert.False(t, h.OK)
	assert.Equal(t, 3, h.Steps)
}

func TestCastRay_WallXOrientation(t *testing.T) {
	lvl := wallLevel(20, 20, func(x, y int) bool { return x == 10 })
	// moving the eye toward -y while looking +x moves screen-right along the
	// face, so the face coordinate must grow
	a := CastRay(lvl.Grid, 5.5, 5.7, 1, 0, 100)
	b := CastRay(lvl.Grid, 5.5, 5.6, 1, 0, 100)
	require.True(t, a.OK)
	require.True(t, b.OK)
	assert.Less(t, a.WallX, b.WallX)
}

func TestView_FlatWallHasConstantDistance(t *testing.T) {
	lvl := wallLevel(20, 40, func(x, y int) bool { return x == 15 })
	opts := DefaultOptions()
	opts.WallScale = 1
	v := NewView(texture.NewCatalog(), opts)
	cam := Camera{X: 5.5, Y: 20.5, Yaw: 0}

	const w, h = 61, 30
	var heights []int
	for x := 0; x < w; x++ {
		c := v.Cast(lvl.Grid, cam, x, w, h)
		require.True(t, c.Hit.OK, "column %d", x)
		assert.InDelta(t, 9.5, c.Perp, 1e-9, "column %d", x)
		heights = append(heights, c.Bot-c.Top)
	}
	for _, ht := range heights {
		assert.Equal(t, heights[0], ht)
	}
}

func TestView_RayAngleSweep(t *testing.T) {
	v := NewView(texture.NewCatalog(), DefaultOptions())
	left := v.RayAngle(1, 0, 100)
	mid := v.RayAngle(1, 50, 101)
	right := v.RayAngle(1, 99, 100)
	assert.Greater(t, left, right)
	assert.InDelta(t, 1, mid, 1e-12)
	assert.InDelta(t, math.Pi/2-math.Pi/200, left-right, 1e-12)
}

func TestView_DrawFarWall(t *testing.T) {
	lvl := wallLevel(60, 20, func(x, y int) bool { return x == 50 })
	opts := DefaultOptions()
	opts.Fog = false
	v := NewView(texture.NewCatalog(), opts)

	f := NewFrame(20, 10)
	v.Draw(f, lvl, Camera{X: 5.5, Y: 10.5})

	// span of 3 rows centred on row 5, clipped to rows 4..5, all far glyphs
	assert.Equal(t, '.', f.Get(9, 4).Rune)
	assert.Equal(t, '.', f.Get(9, 5).Rune)
	assert.Equal(t, ' ', f.Get(9, 3).Rune)
	fg, _, _ := f.Get(9, 4).Style.Decompose()
	assert.Equal(t, texture.ColorGreyWall, fg)

	// crosshair on the horizon
	assert.Equal(t, '+', f.Get(10, 5).Rune)

	// floor scanlines on even rows below the horizon
	assert.Equal(t, strings.Repeat("-", 20), f.Row(6))
	assert.Equal(t, strings.Repeat("-", 20), f.Row(8))
	assert.Equal(t, strings.Repeat(" ", 20), f.Row(7))
	assert.Equal(t, strings.Repeat(" ", 20), f.Row(0))
}

func TestView_PitchShiftsHorizon(t *testing.T) {
	assert.Equal(t, 5, Camera{}.Horizon(10))
	assert.Equal(t, 7, Camera{Pitch: 0.2}.Horizon(10))
	assert.Equal(t, 0, Camera{Pitch: -0.5}.Horizon(10))
}

func TestView_NearWallShading(t *testing.T) {
	for _, tc := range []struct {
		dist     float64
		even     rune
		odd      rune
		textured bool
	}{
		{dist: 4.5, textured: true},
		{dist: 9.5, even: ':', textured: true},
		{dist: 16.5, even: '.', odd: '.'},
	} {
		wallX := int(5.5 + tc.dist)
		lvl := wallLevel(40, 40, func(x, y int) bool { return x == wallX })
		opts := DefaultOptions()
		opts.Crosshair = false
		v := NewView(texture.NewCatalog(), opts)
		f := NewFrame(21, 100)
		v.Draw(f, lvl, Camera{X: 5.5, Y: 20.5})

		col := v.Columns()[10]
		require.True(t, col.Hit.OK)
		assert.InDelta(t, tc.dist, col.Perp, 0.05)
		y := col.Top
		if y%2 == 1 {
			y++
		}
		if tc.even != 0 {
			assert.Equal(t, tc.even, f.Get(10, y).Rune, "dist %v even row", tc.dist)
		}
		if tc.odd != 0 {
			assert.Equal(t, tc.odd, f.Get(10, y+1).Rune, "dist %v odd row", tc.dist)
		}
		if tc.textured {
			assert.Equal(t, col.Glyph, f.Get(10, y+1).Rune)
		}
	}
}

func TestView_SilhouetteEdge(t *testing.T) {
	// near wall below y=10, far wall everywhere at x=20
	lvl := wallLevel(30, 30, func(x, y int) bool {
		return (x == 10 && y < 10) || x == 20
	})
	opts := DefaultOptions()
	opts.Crosshair = false
	v := NewView(texture.NewCatalog(), opts)
	f := NewFrame(40, 20)
	v.Draw(f, lvl, Camera{X: 5.5, Y: 10.5})

	edges := 0
	for x := 0; x < 40; x++ {
		if f.Get(x, 10).Rune == '|' {
			edges++
		}
	}
	assert.Equal(t, 1, edges)
}

func TestView_DegradedDrawsBackdrop(t *testing.T) {
	v := NewView(texture.NewCatalog(), DefaultOptions())
	f := NewFrame(10, 6)
	v.Draw(f, nil, Camera{})
	assert.Equal(t, '+', f.Get(5, 3).Rune)
	assert.Equal(t, strings.Repeat("-", 10), f.Row(4))
	assert.Equal(t, strings.Repeat(" ", 10), f.Row(2))
}

func TestView_Fog(t *testing.T) {
	v := NewView(texture.NewCatalog(), DefaultOptions())
	base := texture.ColorBrownWall
	assert.Equal(t, base, v.shade(base, 0, SideX))
	assert.NotEqual(t, base, v.shade(base, 20, SideX))
	assert.NotEqual(t, v.shade(base, 5, SideX), v.shade(base, 5, SideY))

	// fully fogged converges on the fog colour
	r1, g1, b1 := v.shade(base, 1000, SideX).RGB()
	r2, g2, b2 := DefaultOptions().FogColor.RGB()
	assert.InDelta(t, r2, r1, 2)
	assert.InDelta(t, g2, g1, 2)
	assert.InDelta(t, b2, b1, 2)
}

func TestView_MaterialStyles(t *testing.T) {
	reg := level.NewRegistry()
	pipe := reg.Intern("PIPE1")
	g := level.NewGrid(20, 20)
	for y := 0; y < 20; y++ {
		g.Set(10, y, pipe)
	}
	lvl := &level.Level{Grid: g, Registry: reg}

	opts := DefaultOptions()
	opts.Fog = false
	v := NewView(texture.NewCatalog(), opts)
	f := NewFrame(9, 9)
	v.Draw(f, lvl, Camera{X: 5.5, Y: 10.5})

	col := v.Columns()[4]
	require.True(t, col.Hit.OK)
	assert.Equal(t, texture.ColorSilver, col.Color)
	assert.Contains(t, string(texture.NewCatalog().Classify("METAL").Pattern[:]), string(col.Glyph))
}

func squareLevel(t *testing.T) *level.Level {
	t.Helper()
	m := &wad.Map{
		Name:     "E1M1",
		Vertexes: []wad.Vertex{{X: 0, Y: 0}, {X: 512, Y: 0}, {X: 512, Y: 512}, {X: 0, Y: 512}},
	}
	for i := 0; i < 4; i++ {
		m.Linedefs = append(m.Linedefs, wad.Linedef{Start: uint16(i), End: uint16((i + 1) % 4), Right: wad.NoSide, Left: wad.NoSide})
	}
	lvl, err := level.Rasterize(m, level.NewRegistry(), level.DefaultOptions())
	require.NoError(t, err)
	return lvl
}

func TestArrow(t *testing.T) {
	assert.Equal(t, '>', Arrow(0))
	assert.Equal(t, '>', Arrow(-0.1))
	assert.Equal(t, '^', Arrow(math.Pi/2))
	assert.Equal(t, '<', Arrow(math.Pi))
	assert.Equal(t, 'v', Arrow(3*math.Pi/2))
	assert.Equal(t, '^', Arrow(2*math.Pi+1))
}

func TestAutomap_Draw(t *testing.T) {
	lvl := squareLevel(t)
	a := NewAutomap()
	f := NewFrame(40, 20)
	a.Draw(f, MapData{Walls: lvl.Segments, Vertexes: lvl.VertexCount, Linedefs: lvl.LinedefCount}, Camera{X: 61, Y: 61, Yaw: math.Pi})

	// chrome
	assert.Equal(t, '#', f.Get(1, 0).Rune)
	assert.Equal(t, '#', f.Get(39, 5).Rune)
	assert.Equal(t, '+', f.Get(20, 0).Rune)
	assert.Equal(t, '+', f.Get(3, 10).Rune)
	assert.Equal(t, '·', f.Get(2, 2).Rune)
	assert.Equal(t, ' ', f.Get(3, 3).Rune)

	// left wall at grid x=10 maps to column 20+int(-51/4)=8
	assert.Equal(t, '*', f.Get(8, 5).Rune)
	assert.Equal(t, '*', f.Get(8, 15).Rune)
	// right wall at 112.4 maps to column 20+int(51.4/4)=32
	assert.Equal(t, '*', f.Get(32, 5).Rune)

	assert.Contains(t, f.Row(8), "[ AUTOMAP : V:4 L:4 ]")
	assert.Equal(t, '<', f.Get(20, 10).Rune)
}

func TestAutomap_Degraded(t *testing.T) {
	a := NewAutomap()
	f := NewFrame(40, 20)
	a.Draw(f, MapData{}, Camera{})
	assert.Contains(t, f.Row(8), "[ AUTOMAP : V:0 L:0 ]")
	assert.Equal(t, '>', f.Get(20, 10).Rune)
}

func TestAutomap_Visible(t *testing.T) {
	a := NewAutomap()
	f := NewFrame(10, 10)
	cam := Camera{X: 0, Y: 0}

	// range is 40 cells each way
	assert.True(t, a.Visible(f, cam, level.Segment{X1: 0, Y1: 0, X2: 100, Y2: 0}))
	assert.False(t, a.Visible(f, cam, level.Segment{X1: 50, Y1: 0, X2: 100, Y2: 0}))
	assert.False(t, a.Visible(f, cam, level.Segment{X1: 0, Y1: -50, X2: 10, Y2: -90}))
	// one endpoint inside the margin keeps it
	assert.True(t, a.Visible(f, cam, level.Segment{X1: 30, Y1: 30, X2: 90, Y2: 90}))
}

func TestRampGlyph(t *testing.T) {
	assert.Equal(t, ' ', RampGlyph(0))
	assert.Equal(t, '@', RampGlyph(1))
	assert.Equal(t, '@', RampGlyph(2))
	assert.Equal(t, ' ', RampGlyph(-1))
	assert.Equal(t, '=', RampGlyph(0.5))
}

func TestDrawPicture(t *testing.T) {
	solid := []wad.Post{{Row: 0, Pixels: []byte{200, 200, 200, 200}}}
	data := wad.EncodePicture(4, 0, 0, [][]wad.Post{solid, nil, solid, solid})
	pic, err := wad.DecodePicture(data)
	require.NoError(t, err)

	f := NewFrame(20, 10)
	DrawPicture(f, pic, wad.GrayPalette(), 4)

	// 4 rows at the bottom, 8 columns centred on column 10
	for y := 6; y < 10; y++ {
		assert.Equal(t, "      ##  ####      ", f.Row(y), "row %d", y)
	}
	assert.Equal(t, strings.Repeat(" ", 20), f.Row(5))

	fg, _, _ := f.Get(6, 6).Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 200, 200), fg)

	// nil picture is a no-op
	DrawPicture(f, nil, nil, 4)
}
