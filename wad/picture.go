package wad

import (
	"encoding/binary"
	"fmt"
	"image/color"
)

const (
	PictureHeaderSize = 8
	postEnd           = 0xFF

	// maxPostRows bounds the rows a post can reach (row start and length are bytes)
	maxPostRows = 2 * 255

	PaletteSize = 256 * 3
)

// Picture is a decoded patch/sprite. Pixels hold palette indexes, -1 is transparent.
type Picture struct {
	Width, Height         int
	LeftOffset, TopOffset int

	rows   int
	pixels []int16
}

// At returns the palette index at (x, y) and whether the pixel is opaque
func (p *Picture) At(x, y int) (uint8, bool) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.rows {
		return 0, false
	}
	v := p.pixels[y*p.Width+x]
	if v < 0 {
		return 0, false
	}
	return uint8(v), true
}

// DecodePicture parses the column/post picture format. Every offset is
// checked against the lump length before it is dereferenced.
func DecodePicture(data []byte) (*Picture, error) {
	if len(data) < PictureHeaderSize {
		return nil, truncated("picture header", 0, PictureHeaderSize, len(data))
	}

	p := &Picture{
		Width:      int(u16(data[0:])),
		Height:     int(u16(data[2:])),
		LeftOffset: i16(data[4:]),
		TopOffset:  i16(data[6:]),
	}

	colTable := PictureHeaderSize + 4*p.Width
	if colTable > len(data) {
		return nil, truncated("picture column table", PictureHeaderSize, 4*p.Width, len(data)-PictureHeaderSize)
	}

	p.rows = min(p.Height, maxPostRows)
	p.pixels = make([]int16, p.Width*p.rows)
	for i := range p.pixels {
		p.pixels[i] = -1
	}

	for x := 0; x < p.Width; x++ {
		pos := int(binary.LittleEndian.Uint32(data[PictureHeaderSize+4*x:]))
		if err := p.decodeColumn(data, x, pos); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// decodeColumn walks the posts of column x starting at pos until the 0xFF sentinel
func (p *Picture) decodeColumn(data []byte, x, pos int) error {
	for {
		if pos < 0 || pos >= len(data) {
			return &FormatError{What: "picture post", Offset: pos, Reason: fmt.Sprintf("column %d runs past end of lump (%d bytes)", x, len(data))}
		}
		row := int(data[pos])
		if row == postEnd {
			return nil
		}
		// row, count, pad
		if pos+3 > len(data) {
			return truncated("picture post header", pos, 3, len(data)-pos)
		}
		count := int(data[pos+1])
		start := pos + 3
		// pixels plus trailing pad
		if start+count+1 > len(data) {
			return truncated("picture post", start, count+1, len(data)-start)
		}
		for i := 0; i < count; i++ {
			y := row + i
			if y < p.rows {
				p.pixels[y*p.Width+x] = int16(data[start+i])
			}
		}
		pos = start + count + 1
	}
}

// Palette is one 256-entry colour palette
type Palette [256]color.RGBA

// Luminance returns the perceived brightness of index i in [0, 1]
func (p *Palette) Luminance(i uint8) float64 {
	c := p[i]
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// GrayPalette maps index i to gray level i
func GrayPalette() *Palette {
	var p Palette
	for i := range p {
		p[i] = color.RGBA{R: uint8(i), G: uint8(i), B: uint8(i), A: 0xFF}
	}
	return &p
}

// Palette decodes the first palette of the PLAYPAL lump
func (a *Archive) Palette() (*Palette, error) {
	data, err := a.ReadLump("PLAYPAL")
	if err != nil {
		return nil, err
	}
	if len(data) < PaletteSize {
		return nil, truncated("PLAYPAL", 0, PaletteSize, len(data))
	}
	var p Palette
	for i := range p {
		p[i] = color.RGBA{R: data[3*i], G: data[3*i+1], B: data[3*i+2], A: 0xFF}
	}
	return &p, nil
}
