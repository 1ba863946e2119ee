// Package component holds the plain data attached to entities in the ECS world
package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/dogsinatas29/doomforantigravity/physics"
	"github.com/dogsinatas29/doomforantigravity/vmath"
)

// TransformComponent is an entity's pose in grid space. Z is height above
// the floor; Yaw is kept in [0, 2π); Pitch is the view shear factor.
type TransformComponent struct {
	Pos   mgl64.Vec3
	Yaw   float64
	Pitch float64
}

// Turn rotates by da and renormalizes yaw
func (t *TransformComponent) Turn(da float64) {
	t.Yaw = vmath.NormalizeAngle(t.Yaw + da)
}

// Look adjusts pitch within [-limit, limit]
func (t *TransformComponent) Look(dp, limit float64) {
	t.Pitch = vmath.Clamp(t.Pitch+dp, -limit, limit)
}

// Heading returns the unit XY direction offset radians counterclockwise from yaw
func (t *TransformComponent) Heading(offset float64) mgl64.Vec2 {
	a := t.Yaw + offset
	return mgl64.Vec2{math.Cos(a), math.Sin(a)}
}

// MotionComponent carries velocity in cells per tick and the friction the
// integrator applied on the last tick
type MotionComponent struct {
	Vel      mgl64.Vec3
	Friction float64
}

// Push adds a horizontal impulse of speed along dir
func (m *MotionComponent) Push(dir mgl64.Vec2, speed float64) {
	m.Vel[0] += speed * dir[0]
	m.Vel[1] += speed * dir[1]
}

// GravityComponent selects the physics regime for an entity
type GravityComponent struct {
	Mode physics.GravityMode
}
