package level

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes the grid as ASCII, top row first (y descending). Default
// material is '#', id 2 is '%', other materials '+', the player cell '@'.
func Dump(w io.Writer, g *Grid, px, py int) error {
	bw := bufio.NewWriter(w)
	row := make([]byte, 0, g.Width()+1)
	for y := g.Height() - 1; y >= 0; y-- {
		row = row[:0]
		for x := 0; x < g.Width(); x++ {
			row = append(row, dumpGlyph(g, x, y, px, py))
		}
		row = append(row, '\n')
		if _, err := fmt.Fprintf(bw, "%03d ", y); err != nil {
			return err
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func dumpGlyph(g *Grid, x, y, px, py int) byte {
	if x == px && y == py {
		return '@'
	}
	switch id := g.At(x, y); id {
	case Empty:
		return '.'
	case Default:
		return '#'
	case 2:
		return '%'
	default:
		return '+'
	}
}
