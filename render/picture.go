package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dogsinatas29/doomforantigravity/wad"
)

// Ramp orders glyphs from dark to bright
const Ramp = " .:-=+*#%@"

// RampGlyph maps a luminance in [0, 1] onto Ramp
func RampGlyph(l float64) rune {
	i := int(l * float64(len(Ramp)-1))
	i = min(max(i, 0), len(Ramp)-1)
	return rune(Ramp[i])
}

// DrawPicture overlays pic bottom-centre, scaled to at most maxRows rows.
// Columns are sampled at half the row step since cells are about twice as
// tall as wide. Transparent pixels and pixels that map to ' ' are skipped.
func DrawPicture(f *Frame, pic *wad.Picture, pal *wad.Palette, maxRows int) {
	if pic == nil || pic.Width <= 0 || pic.Height <= 0 || maxRows <= 0 {
		return
	}
	if pal == nil {
		pal = wad.GrayPalette()
	}

	rows := min(pic.Height, maxRows, f.Height())
	if rows <= 0 {
		return
	}
	stepY := float64(pic.Height) / float64(rows)
	stepX := stepY / 2
	cols := min(int(float64(pic.Width)/stepX), f.Width())

	top := f.Height() - rows
	left := f.Width()/2 - cols/2

	for r := 0; r < rows; r++ {
		py := int((float64(r) + 0.5) * stepY)
		for c := 0; c < cols; c++ {
			px := int((float64(c) + 0.5) * stepX)
			idx, ok := pic.At(px, py)
			if !ok {
				continue
			}
			g := RampGlyph(pal.Luminance(idx))
			if g == ' ' {
				continue
			}
			rgba := pal[idx]
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B)))
			f.Set(left+c, top+r, g, style)
		}
	}
}
