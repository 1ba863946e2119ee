package render

import "github.com/gdamore/tcell/v2"

// Draw blits the frame onto a tcell screen and shows it
func (f *Frame) Draw(s tcell.Screen) {
	sw, sh := s.Size()
	w, h := min(sw, f.width), min(sh, f.height)
	for y := 0; y < h; y++ {
		row := f.cells[y*f.width : y*f.width+w]
		for x, c := range row {
			s.SetContent(x, y, c.Rune, nil, c.Style)
		}
	}
	s.Show()
}
