package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dogsinatas29/doomforantigravity/level"
	"github.com/dogsinatas29/doomforantigravity/texture"
	"github.com/dogsinatas29/doomforantigravity/vmath"
)

// DefaultZoom is grid cells per automap character
const DefaultZoom = 4.0

var (
	styleDot    = tcell.StyleDefault.Foreground(texture.ColorDimGrey)
	styleBorder = tcell.StyleDefault.Foreground(texture.ColorWhite)
	styleCross  = tcell.StyleDefault.Foreground(texture.ColorDarkRed)
	styleLine   = tcell.StyleDefault.Foreground(texture.ColorWhite)
	styleArrow  = tcell.StyleDefault.Foreground(texture.ColorBloodRed)
)

// Automap draws the top-down vector map centred on the camera
type Automap struct {
	Zoom float64
}

// NewAutomap returns an automap at DefaultZoom
func NewAutomap() *Automap {
	return &Automap{Zoom: DefaultZoom}
}

// Arrow returns the facing glyph for a yaw quadrant
func Arrow(yaw float64) rune {
	a := vmath.NormalizeAngle(yaw)
	switch {
	case a < math.Pi/4 || a > 7*math.Pi/4:
		return '>'
	case a < 3*math.Pi/4:
		return '^'
	case a < 5*math.Pi/4:
		return '<'
	default:
		return 'v'
	}
}

// MapData is what the automap shows: the wall segments and the readout counts
type MapData struct {
	Walls    []level.Segment
	Vertexes int
	Linedefs int
}

// Draw replaces the frame contents with the automap. Empty data draws the
// chrome with zero counts.
func (a *Automap) Draw(f *Frame, md MapData, cam Camera) {
	w, h := f.Width(), f.Height()
	cx, cy := w/2, h/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x == cx || y == cy:
				f.Set(x, y, '+', styleCross)
			case x == 0 || y == 0 || x == w-1 || y == h-1:
				f.Set(x, y, '#', styleBorder)
			case x%2 == 0 && y%2 == 0:
				f.Set(x, y, '·', styleDot)
			default:
				f.Set(x, y, ' ', tcell.StyleDefault)
			}
		}
	}

	a.drawSegments(f, md.Walls, cam)

	txt := fmt.Sprintf("[ AUTOMAP : V:%d L:%d ]", md.Vertexes, md.Linedefs)
	x := cx - runewidth.StringWidth(txt)/2
	for _, r := range txt {
		f.Set(x, cy-2, r, styleBorder)
		x += runewidth.RuneWidth(r)
	}

	f.Set(cx, cy, Arrow(cam.Yaw), styleArrow)
}

// ToScreen maps a grid point to frame coordinates, y up
func (a *Automap) ToScreen(f *Frame, cam Camera, gx, gy float64) (int, int) {
	px, py := float64(int(cam.X)), float64(int(cam.Y))
	return f.Width()/2 + int((gx-px)/a.Zoom), f.Height()/2 - int((gy-py)/a.Zoom)
}

// Visible reports whether a segment may touch the frame: it is culled only
// when both endpoints are beyond the margin on the same axis
func (a *Automap) Visible(f *Frame, cam Camera, s level.Segment) bool {
	px, py := float64(int(cam.X)), float64(int(cam.Y))
	rx := float64(f.Width()) * a.Zoom
	ry := float64(f.Height()) * a.Zoom
	if math.Abs(s.X1-px) > rx && math.Abs(s.X2-px) > rx {
		return false
	}
	if math.Abs(s.Y1-py) > ry && math.Abs(s.Y2-py) > ry {
		return false
	}
	return true
}

func (a *Automap) drawSegments(f *Frame, segs []level.Segment, cam Camera) {
	for _, s := range segs {
		if !a.Visible(f, cam, s) {
			continue
		}
		x1, y1 := a.ToScreen(f, cam, s.X1, s.Y1)
		x2, y2 := a.ToScreen(f, cam, s.X2, s.Y2)
		vmath.Line(x1, y1, x2, y2, func(x, y int) bool {
			f.Set(x, y, '*', styleLine)
			return true
		})
	}
}
