// Package maze generates braided mazes and converts them into map geometry
// for test levels
package maze

import (
	"math/rand"
	"time"
)

type Point struct {
	X, Y int
}

var (
	steps = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

// Options controls generation
type Options struct {
	// Lattice size in blocks, rounded down to odd, minimum 3
	Width, Height int

	// Braid is the chance in [0, 1] that a dead end is joined into a loop.
	// Joins never open a 2x2 plaza or leave a free-standing pillar.
	Braid float64

	Seed int64 // 0 picks a time-based seed
}

// Maze is a lattice of wall and open blocks. Odd coordinates are rooms,
// the outer ring is always wall.
type Maze struct {
	Width, Height int
	Start, End    Point

	open []bool // [y*Width+x]
}

// Generate carves a maze with a randomized depth-first backtracker from
// (1, 1), then braids dead ends
func Generate(opts Options) *Maze {
	w, h := oddAtLeast3(opts.Width), oddAtLeast3(opts.Height)
	m := &Maze{
		Width:  w,
		Height: h,
		Start:  Point{1, 1},
		End:    Point{w - 2, h - 2},
		open:   make([]bool, w*h),
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	m.carve(rng)
	if opts.Braid > 0 {
		m.braid(opts.Braid, rng)
	}
	return m
}

// Open reports whether (x, y) is walkable. Outside the lattice is closed.
func (m *Maze) Open(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.open[y*m.Width+x]
}

func (m *Maze) set(x, y int, open bool) { m.open[y*m.Width+x] = open }

func (m *Maze) carve(rng *rand.Rand) {
	stack := []Point{m.Start}
	m.set(m.Start.X, m.Start.Y, true)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var cand [4]Point
		n := 0
		for _, d := range jumps {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx > 0 && nx < m.Width-1 && ny > 0 && ny < m.Height-1 && !m.Open(nx, ny) {
				cand[n] = d
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := cand[rng.Intn(n)]
		m.set(cur.X+d.X/2, cur.Y+d.Y/2, true)
		next := Point{cur.X + d.X, cur.Y + d.Y}
		m.set(next.X, next.Y, true)
		stack = append(stack, next)
	}
}

func (m *Maze) braid(chance float64, rng *rand.Rand) {
	for y := 1; y < m.Height-1; y += 2 {
		for x := 1; x < m.Width-1; x += 2 {
			if !m.Open(x, y) || m.exits(x, y) != 1 || rng.Float64() >= chance {
				continue
			}
			var cand [4]Point
			n := 0
			for _, d := range jumps {
				wx, wy := x+d.X/2, y+d.Y/2
				if m.Open(x+d.X, y+d.Y) && !m.Open(wx, wy) && wx > 0 && wy > 0 && wx < m.Width-1 && wy < m.Height-1 && m.canOpen(wx, wy) {
					cand[n] = Point{wx, wy}
					n++
				}
			}
			if n > 0 {
				c := cand[rng.Intn(n)]
				m.set(c.X, c.Y, true)
			}
		}
	}
}

func (m *Maze) exits(x, y int) int {
	n := 0
	for _, d := range steps {
		if m.Open(x+d.X, y+d.Y) {
			n++
		}
	}
	return n
}

// canOpen rejects a wall whose removal would open a 2x2 plaza or strand a
// neighbouring wall block as a pillar
func (m *Maze) canOpen(x, y int) bool {
	for _, q := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if m.Open(x+q[0], y) && m.Open(x, y+q[1]) && m.Open(x+q[0], y+q[1]) {
			return false
		}
	}

	for _, d := range steps {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || ny < 0 || nx >= m.Width || ny >= m.Height || m.Open(nx, ny) {
			continue
		}
		walls := 0
		for _, d2 := range steps {
			ax, ay := nx+d2.X, ny+d2.Y
			if ax == x && ay == y {
				continue
			}
			if ax >= 0 && ay >= 0 && ax < m.Width && ay < m.Height && !m.Open(ax, ay) {
				walls++
			}
		}
		if walls == 0 {
			return false
		}
	}
	return true
}

// Path returns the shortest walkable route from a to b, nil if none
func (m *Maze) Path(a, b Point) []Point {
	if !m.Open(a.X, a.Y) || !m.Open(b.X, b.Y) {
		return nil
	}
	from := map[Point]Point{a: a}
	queue := []Point{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			var path []Point
			for p := b; p != a; p = from[p] {
				path = append(path, p)
			}
			path = append(path, a)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		for _, d := range steps {
			next := Point{cur.X + d.X, cur.Y + d.Y}
			if _, seen := from[next]; !seen && m.Open(next.X, next.Y) {
				from[next] = cur
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// String draws the lattice with '#' walls, y up
func (m *Maze) String() string {
	b := make([]byte, 0, (m.Width+1)*m.Height)
	for y := m.Height - 1; y >= 0; y-- {
		for x := 0; x < m.Width; x++ {
			if m.Open(x, y) {
				b = append(b, '.')
			} else {
				b = append(b, '#')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}

func oddAtLeast3(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
