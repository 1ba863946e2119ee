package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dogsinatas29/doomforantigravity/maze"
	"github.com/dogsinatas29/doomforantigravity/wad"
)

var (
	outFlag    = flag.String("o", "test.wad", "Output archive path")
	mapFlag    = flag.String("map", "E1M1", "Map marker name")
	mazeFlag   = flag.Bool("maze", false, "Generate a maze level instead of a square room")
	widthFlag  = flag.Int("w", 21, "Maze width in blocks")
	heightFlag = flag.Int("h", 15, "Maze height in blocks")
	braidFlag  = flag.Float64("braid", 0.2, "Maze braiding [0.0 - 1.0]")
	seedFlag   = flag.Int64("seed", 0, "Maze seed (0 = random)")
	blockFlag  = flag.Int("block", 64, "Maze block size in map units")
)

// pistol is the overlay sprite, bottom row last; '.' is transparent
var pistol = []string{
	"....##....",
	"...#++#...",
	"...#++#...",
	"..##++##..",
	"..#++++#..",
	".##++++##.",
	".#++++++#.",
	"##++++++##",
}

func main() {
	flag.Parse()

	var m *wad.Map
	if *mazeFlag {
		mz := maze.Generate(maze.Options{
			Width:  *widthFlag,
			Height: *heightFlag,
			Braid:  *braidFlag,
			Seed:   *seedFlag,
		})
		opts := maze.DefaultMapOptions()
		opts.Name = *mapFlag
		opts.BlockSize = *blockFlag
		m = mz.ToMap(opts)
		fmt.Print(mz.String())
		if path := mz.Path(mz.Start, mz.End); path != nil {
			fmt.Printf("Solution: %d steps from %v to %v\n", len(path)-1, mz.Start, mz.End)
		} else {
			fmt.Println("Solution: none")
		}
	} else {
		m = squareRoom(*mapFlag)
	}

	b := wad.NewBuilder(wad.MagicIWAD).
		AddMap(m).
		Add("PLAYPAL", grayPlaypal()).
		Add("PISGA0", sprite(pistol))

	f, err := os.Create(*outFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *outFlag, err)
		os.Exit(1)
	}
	n, err := b.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *outFlag, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s: %d bytes, %d vertexes, %d linedefs\n", *outFlag, n, len(m.Vertexes), len(m.Linedefs))
}

// squareRoom is a 512x512 room without sides and the player start at (128, 128)
func squareRoom(name string) *wad.Map {
	m := &wad.Map{
		Name:     name,
		Vertexes: []wad.Vertex{{X: 0, Y: 0}, {X: 512, Y: 0}, {X: 512, Y: 512}, {X: 0, Y: 512}},
		Things:   []wad.Thing{{X: 128, Y: 128, Angle: 0, Type: wad.PlayerStart, Flags: 7}},
	}
	for i := 0; i < 4; i++ {
		m.Linedefs = append(m.Linedefs, wad.Linedef{
			Start: uint16(i),
			End:   uint16((i + 1) % 4),
			Right: wad.NoSide,
			Left:  wad.NoSide,
		})
	}
	return m
}

func grayPlaypal() []byte {
	pal := make([]byte, wad.PaletteSize)
	for i := 0; i < 256; i++ {
		pal[3*i], pal[3*i+1], pal[3*i+2] = byte(i), byte(i), byte(i)
	}
	return pal
}

// sprite encodes ASCII art as a picture: '#' is bright, '+' is mid grey
func sprite(rows []string) []byte {
	h := len(rows)
	w := len(rows[0])
	cols := make([][]wad.Post, w)
	for x := 0; x < w; x++ {
		var post *wad.Post
		for y := 0; y < h; y++ {
			var px byte
			switch rows[y][x] {
			case '#':
				px = 250
			case '+':
				px = 140
			default:
				post = nil
				continue
			}
			if post == nil {
				cols[x] = append(cols[x], wad.Post{Row: y})
				post = &cols[x][len(cols[x])-1]
			}
			post.Pixels = append(post.Pixels, px)
		}
	}
	return wad.EncodePicture(h, w/2, h, cols)
}
