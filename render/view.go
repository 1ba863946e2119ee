package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dogsinatas29/doomforantigravity/level"
	"github.com/dogsinatas29/doomforantigravity/texture"
)

// Camera is the viewpoint in grid space
type Camera struct {
	X, Y  float64
	Yaw   float64
	Pitch float64
}

// Horizon returns the screen row of the horizon for a frame height
func (c Camera) Horizon(height int) int {
	return height/2 + int(c.Pitch*float64(height))
}

// Options tune the first-person view
type Options struct {
	FOV         float64 // radians across the frame width
	WallScale   float64
	MinDistance float64
	MaxSteps    int
	MidDistance float64 // beyond: ':' on even rows
	FarDistance float64 // beyond: '.'
	EdgeDelta   float64 // silhouette threshold between adjacent columns

	// Fog blends wall colour toward FogColor in Lab space as distance
	// approaches FogDistance; SideDim darkens Y-side faces
	Fog         bool
	FogColor    tcell.Color
	FogDistance float64
	SideDim     float64

	Crosshair bool
}

// DefaultOptions returns the standard 90° view
func DefaultOptions() Options {
	return Options{
		FOV:         math.Pi / 2,
		WallScale:   15,
		MinDistance: 0.1,
		MaxSteps:    2000,
		MidDistance: 8,
		FarDistance: 15,
		EdgeDelta:   1,
		Fog:         true,
		FogColor:    tcell.PaletteColor(232),
		FogDistance: 40,
		SideDim:     0.25,
		Crosshair:   true,
	}
}

// Column is the projected result for one screen column
type Column struct {
	Hit   Hit
	Ray   float64 // ray angle
	Perp  float64 // corrected, clamped distance
	Top   int     // first wall row, clipped
	Bot   int     // one past the last wall row, clipped
	Glyph rune
	Color tcell.Color
}

// View renders the first-person raycast view
type View struct {
	opts    Options
	catalog *texture.Catalog

	// per-registry style cache, rebuilt when the registry grows or changes
	reg    *level.Registry
	styles []texture.Style

	cols []Column
}

// NewView creates a renderer sharing a read-only catalog
func NewView(catalog *texture.Catalog, opts Options) *View {
	return &View{opts: opts, catalog: catalog}
}

// Options returns the active options
func (v *View) Options() Options { return v.opts }

// RayAngle returns the ray angle of column x for a frame width w. Column
// angles sweep clockwise (decreasing) from yaw+fov/2 so the view matches the
// y-up automap.
func (v *View) RayAngle(yaw float64, x, w int) float64 {
	return yaw + v.opts.FOV/2 - (float64(x)+0.5)*v.opts.FOV/float64(w)
}

// Cast projects one column without drawing it
func (v *View) Cast(g Occupancy, cam Camera, x, w, h int) Column {
	ray := v.RayAngle(cam.Yaw, x, w)
	dx, dy := math.Cos(ray), math.Sin(ray)
	c := Column{Ray: ray}
	c.Hit = CastRay(g, cam.X, cam.Y, dx, dy, v.opts.MaxSteps)
	if !c.Hit.OK {
		return c
	}

	// rays are unit vectors, so the DDA distance is euclidean; one cosine
	// factor converts it to distance from the camera plane
	c.Perp = c.Hit.Dist * math.Cos(ray-cam.Yaw)
	if c.Perp < v.opts.MinDistance {
		c.Perp = v.opts.MinDistance
	}

	lineH := int(float64(h) / c.Perp * v.opts.WallScale)
	horizon := cam.Horizon(h)
	c.Top = max(horizon-lineH/2, 0)
	c.Bot = min(horizon+lineH/2, h)
	return c
}

// Draw renders lvl from cam into f. A nil level draws floor and ceiling only.
func (v *View) Draw(f *Frame, lvl *level.Level, cam Camera) {
	w, h := f.Width(), f.Height()
	horizon := cam.Horizon(h)

	v.drawBackdrop(f, horizon)

	if lvl != nil && w > 0 {
		v.syncStyles(lvl.Registry)
		if cap(v.cols) < w {
			v.cols = make([]Column, w)
		}
		v.cols = v.cols[:w]

		var prev *Column
		for x := 0; x < w; x++ {
			c := &v.cols[x]
			*c = v.Cast(lvl.Grid, cam, x, w, h)
			if c.Hit.OK {
				v.drawColumn(f, x, c, prev)
				prev = c
			} else {
				prev = nil
			}
		}
	}

	if v.opts.Crosshair {
		f.Set(w/2, horizon, '+', tcell.StyleDefault.Foreground(texture.ColorWhite))
	}
}

// Columns returns the columns cast by the last Draw
func (v *View) Columns() []Column { return v.cols }

func (v *View) drawBackdrop(f *Frame, horizon int) {
	floor := tcell.StyleDefault.Foreground(texture.ColorDimGrey)
	for y := horizon + 1; y < f.Height(); y++ {
		if y < 0 || y%2 != 0 {
			continue
		}
		for x := 0; x < f.Width(); x++ {
			f.Set(x, y, '-', floor)
		}
	}
}

func (v *View) drawColumn(f *Frame, x int, c *Column, prev *Column) {
	st := v.styleFor(c.Hit.Material)
	c.Glyph = st.Pattern.At(c.Hit.WallX)
	c.Color = v.shade(st.Color, c.Perp, c.Hit.Side)
	style := tcell.StyleDefault.Foreground(c.Color)

	edge := prev != nil && math.Abs(c.Perp-prev.Perp) > v.opts.EdgeDelta
	for y := c.Top; y < c.Bot; y++ {
		g := c.Glyph
		switch {
		case edge:
			g = '|'
		case c.Perp > v.opts.FarDistance:
			g = '.'
		case c.Perp > v.opts.MidDistance && y%2 == 0:
			g = ':'
		}
		f.Set(x, y, g, style)
	}
}

func (v *View) syncStyles(reg *level.Registry) {
	if reg == nil {
		v.reg, v.styles = nil, v.styles[:0]
		return
	}
	if reg == v.reg && len(v.styles) == reg.Len() {
		return
	}
	v.reg = reg
	v.styles = v.styles[:0]
	for id := 0; id < reg.Len(); id++ {
		name := reg.Name(uint16(id))
		v.styles = append(v.styles, v.catalog.Classify(name))
	}
}

func (v *View) styleFor(id uint16) texture.Style {
	if int(id) < len(v.styles) {
		return v.styles[id]
	}
	return v.catalog.Classify("")
}

// shade blends c toward the fog colour by distance, darker on Y faces
func (v *View) shade(c tcell.Color, dist float64, side Side) tcell.Color {
	if !v.opts.Fog {
		return c
	}
	t := 0.0
	if v.opts.FogDistance > 0 {
		t = math.Min(dist/v.opts.FogDistance, 1)
	}
	if side == SideY {
		t = math.Min(t+v.opts.SideDim, 1)
	}
	if t == 0 {
		return c
	}
	return fromColorful(toColorful(c).BlendLab(toColorful(v.opts.FogColor), t).Clamped())
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
