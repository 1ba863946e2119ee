package physics

import (
	"fmt"
	"strings"
)

// GravityMode selects the acceleration sign, friction and wall response
type GravityMode uint8

const (
	Normal GravityMode = iota
	ZeroG
	Inverted
)

func (m GravityMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case ZeroG:
		return "zerog"
	case Inverted:
		return "inverted"
	default:
		return fmt.Sprintf("GravityMode(%d)", uint8(m))
	}
}

// ParseGravityMode accepts the String forms, case-insensitively
func ParseGravityMode(s string) (GravityMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return Normal, nil
	case "zerog", "zero-g", "zero_g":
		return ZeroG, nil
	case "inverted":
		return Inverted, nil
	}
	return Normal, fmt.Errorf("physics: unknown gravity mode %q", s)
}

// Params are the integrator constants. Distances are grid cells, speeds are
// cells per tick.
type Params struct {
	Gravity        float64 // acceleration magnitude, cells/tick per second
	Ceiling        float64 // upper bound of z
	Radius         float64 // half-width of the collision probe
	Bounce         float64 // ZeroG velocity retained on wall contact
	MaxSpeed       float64 // horizontal speed cap, must stay below 1
	NormalFriction float64 // Normal and Inverted
	ZeroGFriction  float64
}

// DefaultParams returns the tuned constants for a 0.2 map scale
func DefaultParams() Params {
	return Params{
		Gravity:        15,
		Ceiling:        30,
		Radius:         0.25,
		Bounce:         0.8,
		MaxSpeed:       0.9,
		NormalFriction: 0.8,
		ZeroGFriction:  0.99,
	}
}

// Profile is the per-mode acceleration and friction pair
type Profile struct {
	Accel    float64
	Friction float64
}

// Profile returns the acceleration and friction for mode
func (p *Params) Profile(mode GravityMode) Profile {
	switch mode {
	case Inverted:
		return Profile{Accel: p.Gravity, Friction: p.NormalFriction}
	case ZeroG:
		return Profile{Accel: 0, Friction: p.ZeroGFriction}
	default:
		return Profile{Accel: -p.Gravity, Friction: p.NormalFriction}
	}
}

// JumpSign is the direction of a jump impulse: away from the surface gravity
// pulls toward. ZeroG jumps push up.
func JumpSign(mode GravityMode) float64 {
	if mode == Inverted {
		return -1
	}
	return 1
}
