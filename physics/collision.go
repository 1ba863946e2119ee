package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dogsinatas29/doomforantigravity/vmath"
)

// Solidity is the grid query the integrator needs; out-of-grid cells must
// report solid
type Solidity interface {
	Solid(x, y int) bool
}

// Result reports what the tick collided with
type Result struct {
	BlockedX   bool
	BlockedY   bool
	HitFloor   bool
	HitCeiling bool
	Friction   float64
}

// Bumped reports a horizontal wall contact
func (r Result) Bumped() bool { return r.BlockedX || r.BlockedY }

// Step advances one tick: gravity, friction, speed cap, then per-axis
// collision (X then Y) and the vertical clamp. pos and vel are updated in place.
func (p *Params) Step(g Solidity, mode GravityMode, pos, vel *mgl64.Vec3, dt float64) Result {
	prof := p.Profile(mode)
	res := Result{Friction: prof.Friction}

	vel[2] += prof.Accel * dt
	*vel = vel.Mul(prof.Friction)
	p.capSpeed(vel)

	// X axis
	if nx := pos[0] + vel[0]; vel[0] != 0 {
		if p.sweepX(g, pos[0], nx, pos[1]) {
			pos[0] = nx
		} else {
			res.BlockedX = true
			vel[0] = p.response(mode, vel[0])
		}
	}

	// Y axis, against the committed X
	if ny := pos[1] + vel[1]; vel[1] != 0 {
		if p.sweepY(g, pos[1], ny, pos[0]) {
			pos[1] = ny
		} else {
			res.BlockedY = true
			vel[1] = p.response(mode, vel[1])
		}
	}

	nz := pos[2] + vel[2]
	switch {
	case nz < 0:
		pos[2], vel[2] = 0, 0
		res.HitFloor = true
	case nz > p.Ceiling:
		pos[2], vel[2] = p.Ceiling, 0
		res.HitCeiling = true
	default:
		pos[2] = nz
	}

	return res
}

func (p *Params) response(mode GravityMode, v float64) float64 {
	if mode == ZeroG {
		return -v * p.Bounce
	}
	return 0
}

func (p *Params) capSpeed(vel *mgl64.Vec3) {
	l := Speed(*vel)
	if l <= p.MaxSpeed || l == 0 {
		return
	}
	s := p.MaxSpeed / l
	vel[0] *= s
	vel[1] *= s
}

// sweepX reports whether moving from x to nx at row position y stays clear.
// Every column from the one the leading edge occupies through the one it
// would occupy is scanned across the probe's full vertical extent, so a
// probe already touching a wall cannot push further into it.
func (p *Params) sweepX(g Solidity, x, nx, y float64) bool {
	y0, y1 := vmath.FloorInt(y-p.Radius), vmath.FloorInt(y+p.Radius)
	from, to := leadingSpan(x, nx, p.Radius)
	for cx := from; cx <= to; cx++ {
		for cy := y0; cy <= y1; cy++ {
			if g.Solid(cx, cy) {
				return false
			}
		}
	}
	return true
}

// sweepY mirrors sweepX for the Y axis
func (p *Params) sweepY(g Solidity, y, ny, x float64) bool {
	x0, x1 := vmath.FloorInt(x-p.Radius), vmath.FloorInt(x+p.Radius)
	from, to := leadingSpan(y, ny, p.Radius)
	for cy := from; cy <= to; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if g.Solid(cx, cy) {
				return false
			}
		}
	}
	return true
}

// leadingSpan returns the inclusive range of cells the leading edge covers
// when the probe centre moves from a to b, starting with its current cell
func leadingSpan(a, b, r float64) (from, to int) {
	if b > a {
		return vmath.FloorInt(a + r), vmath.FloorInt(b + r)
	}
	return vmath.FloorInt(b - r), vmath.FloorInt(a - r)
}

// Overlaps reports whether the probe centred at (x, y) touches a solid cell
func (p *Params) Overlaps(g Solidity, x, y float64) bool {
	for cx := vmath.FloorInt(x - p.Radius); cx <= vmath.FloorInt(x+p.Radius); cx++ {
		for cy := vmath.FloorInt(y - p.Radius); cy <= vmath.FloorInt(y+p.Radius); cy++ {
			if g.Solid(cx, cy) {
				return true
			}
		}
	}
	return false
}

// Speed returns the horizontal speed
func Speed(vel mgl64.Vec3) float64 {
	return math.Hypot(vel[0], vel[1])
}
