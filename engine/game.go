// Package engine ties the ECS world, level, physics and renderers into a
// single-threaded tick loop
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"
	"github.com/sirupsen/logrus"

	"github.com/dogsinatas29/doomforantigravity/audio"
	"github.com/dogsinatas29/doomforantigravity/component"
	"github.com/dogsinatas29/doomforantigravity/config"
	"github.com/dogsinatas29/doomforantigravity/input"
	"github.com/dogsinatas29/doomforantigravity/level"
	"github.com/dogsinatas29/doomforantigravity/logger"
	"github.com/dogsinatas29/doomforantigravity/physics"
	"github.com/dogsinatas29/doomforantigravity/render"
	"github.com/dogsinatas29/doomforantigravity/texture"
	"github.com/dogsinatas29/doomforantigravity/vmath"
	"github.com/dogsinatas29/doomforantigravity/wad"
)

// openSpace collides with nothing; bodies use it while no level is loaded
type openSpace struct{}

func (openSpace) Solid(int, int) bool { return false }

// Game owns the ECS world and everything a tick touches
type Game struct {
	cfg    *config.Config
	params physics.Params
	cues   audio.Cues
	clock  Clock
	log    *logrus.Entry

	world  *ecs.World
	bodies *ecs.Map3[component.TransformComponent, component.MotionComponent, component.GravityComponent]
	walls  *ecs.Map[component.WallComponent]
	moving *ecs.Filter3[component.TransformComponent, component.MotionComponent, component.GravityComponent]
	static *ecs.Filter1[component.WallComponent]
	player ecs.Entity

	lvl     *level.Level
	overlay *wad.Picture
	palette *wad.Palette

	view    *render.View
	automap *render.Automap

	wallBuf []level.Segment

	showAutomap bool
	lastToggle  time.Time
	lastBump    bool
}

// NewGame builds an empty world holding only the player. Call LoadLevel
// or LoadArchive to add geometry.
func NewGame(cfg *config.Config, cues audio.Cues, clock Clock) *Game {
	if cfg == nil {
		cfg = config.Default()
	}
	if cues == nil {
		cues = audio.Nop{}
	}
	if clock == nil {
		clock = SystemClock{}
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:     cfg,
		params:  cfg.PhysicsParams(),
		cues:    cues,
		clock:   clock,
		log:     logger.For("engine"),
		world:   world,
		bodies:  ecs.NewMap3[component.TransformComponent, component.MotionComponent, component.GravityComponent](world),
		walls:   ecs.NewMap[component.WallComponent](world),
		moving:  ecs.NewFilter3[component.TransformComponent, component.MotionComponent, component.GravityComponent](world),
		static:  ecs.NewFilter1[component.WallComponent](world),
		view:    render.NewView(texture.NewCatalog(), cfg.RenderOptions()),
		automap: render.NewAutomap(),
	}
	g.automap.Zoom = cfg.Render.AutomapZoom

	g.player = g.bodies.NewEntity(
		&component.TransformComponent{Pos: mgl64.Vec3{0, 0, g.eyeHeight()}},
		&component.MotionComponent{Friction: g.params.Profile(cfg.StartMode()).Friction},
		&component.GravityComponent{Mode: cfg.StartMode()},
	)
	return g
}

func (g *Game) eyeHeight() float64 {
	return vmath.Clamp(g.cfg.Movement.EyeHeight, 0, g.params.Ceiling)
}

// LoadLevel opens the archive at path and loads map name from it
func (g *Game) LoadLevel(path, name string) error {
	arc, err := wad.Open(path)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	return g.LoadArchive(arc, name)
}

// LoadArchive rasterizes map name from arc, replaces the wall entities and
// moves the player to the resolved spawn. On error the previous level stays.
func (g *Game) LoadArchive(arc *wad.Archive, name string) error {
	m, err := arc.LoadMap(name)
	if err != nil {
		return fmt.Errorf("load level %s: %w", name, err)
	}
	lvl, err := level.Rasterize(m, level.NewRegistry(), g.cfg.LevelOptions())
	if err != nil {
		return fmt.Errorf("load level %s: %w", name, err)
	}

	g.lvl = lvl
	g.replaceWalls(lvl.Segments)
	g.loadOverlay(arc)

	t, mo, _ := g.bodies.Get(g.player)
	t.Pos = mgl64.Vec3{lvl.Spawn.X, lvl.Spawn.Y, g.eyeHeight()}
	t.Yaw = vmath.NormalizeAngle(lvl.Spawn.Angle)
	t.Pitch = 0
	mo.Vel = mgl64.Vec3{}

	g.log.WithFields(logrus.Fields{
		"map":   name,
		"walls": len(lvl.Segments),
		"x":     t.Pos[0],
		"y":     t.Pos[1],
		"moved": lvl.Spawn.Moved,
	}).Info("level loaded")
	if g.params.Overlaps(lvl.Grid, t.Pos[0], t.Pos[1]) {
		g.log.Warn("player start touches a wall, movement into it is blocked")
	}
	return nil
}

func (g *Game) replaceWalls(segs []level.Segment) {
	var stale []ecs.Entity
	q := g.static.Query()
	for q.Next() {
		stale = append(stale, q.Entity())
	}
	for _, e := range stale {
		g.world.RemoveEntity(e)
	}

	for _, s := range segs {
		g.walls.NewEntity(&component.WallComponent{Segment: s})
	}
}

// loadOverlay reads the optional weapon picture. A missing lump only
// disables the overlay.
func (g *Game) loadOverlay(arc *wad.Archive) {
	g.overlay, g.palette = nil, nil
	name := g.cfg.Archive.Overlay
	if name == "" {
		return
	}
	pic, err := arc.Picture(name)
	if err != nil {
		g.log.WithError(err).WithField("lump", name).Warn("overlay picture unavailable")
		return
	}
	pal, err := arc.Palette()
	if err != nil {
		g.log.WithError(err).Debug("no palette, using grayscale")
		pal = wad.GrayPalette()
	}
	g.overlay, g.palette = pic, pal
}

// Level returns the loaded level, nil when running degraded
func (g *Game) Level() *level.Level { return g.lvl }

// Player returns the player's components
func (g *Game) Player() (*component.TransformComponent, *component.MotionComponent, *component.GravityComponent) {
	return g.bodies.Get(g.player)
}

// World exposes the ECS world
func (g *Game) World() *ecs.World { return g.world }

// AutomapVisible reports whether the automap replaces the view
func (g *Game) AutomapVisible() bool { return g.showAutomap }

// WallCount returns the number of wall entities
func (g *Game) WallCount() int {
	return len(g.wallSegments())
}

// wallSegments collects the segments of every wall entity into a reused buffer
func (g *Game) wallSegments() []level.Segment {
	g.wallBuf = g.wallBuf[:0]
	q := g.static.Query()
	for q.Next() {
		g.wallBuf = append(g.wallBuf, q.Get().Segment)
	}
	return g.wallBuf
}

// mapData feeds the automap from the wall entities
func (g *Game) mapData() render.MapData {
	md := render.MapData{Walls: g.wallSegments()}
	md.Linedefs = len(md.Walls)
	if g.lvl != nil {
		md.Vertexes = g.lvl.VertexCount
	}
	return md
}

// Camera returns the player's viewpoint
func (g *Game) Camera() render.Camera {
	t, _, _ := g.bodies.Get(g.player)
	return render.Camera{X: t.Pos[0], Y: t.Pos[1], Yaw: t.Yaw, Pitch: t.Pitch}
}

// SetGravity switches the player's gravity mode and announces the change
func (g *Game) SetGravity(mode physics.GravityMode) {
	_, _, gr := g.bodies.Get(g.player)
	if gr.Mode == mode {
		return
	}
	gr.Mode = mode
	g.cues.GravityChanged(mode)
	g.log.WithField("mode", mode.String()).Debug("gravity changed")
}

// Update applies one tick of intents to the player, then integrates every
// body. It returns false when the intents ask to quit.
func (g *Game) Update(dt float64, in input.Intent) bool {
	if in.Has(input.IntentQuit) {
		return false
	}
	g.applyIntents(dt, in)
	g.integrate(dt)
	return true
}

func (g *Game) applyIntents(dt float64, in input.Intent) {
	mv := &g.cfg.Movement
	t, m, gr := g.bodies.Get(g.player)

	move := mv.MoveSpeed * dt
	if in.Has(input.IntentForward) {
		m.Push(t.Heading(0), move)
	}
	if in.Has(input.IntentBack) {
		m.Push(t.Heading(0), -move)
	}
	// screen right is clockwise
	if in.Has(input.IntentStrafeLeft) {
		m.Push(t.Heading(math.Pi/2), move)
	}
	if in.Has(input.IntentStrafeRight) {
		m.Push(t.Heading(-math.Pi/2), move)
	}
	if in.Has(input.IntentTurnLeft) {
		t.Turn(mv.TurnSpeed * dt)
	}
	if in.Has(input.IntentTurnRight) {
		t.Turn(-mv.TurnSpeed * dt)
	}
	if in.Has(input.IntentLookUp) {
		t.Look(mv.PitchSpeed*dt, mv.PitchLimit)
	}
	if in.Has(input.IntentLookDown) {
		t.Look(-mv.PitchSpeed*dt, mv.PitchLimit)
	}

	switch {
	case in.Has(input.IntentGravityNormal):
		g.SetGravity(physics.Normal)
	case in.Has(input.IntentGravityZeroG):
		g.SetGravity(physics.ZeroG)
	case in.Has(input.IntentGravityInverted):
		g.SetGravity(physics.Inverted)
	}

	if in.Has(input.IntentJump) {
		m.Vel[2] += physics.JumpSign(gr.Mode) * mv.Jump
		g.cues.Jump()
	}

	if in.Has(input.IntentAutomap) {
		now := g.clock.Now()
		if g.lastToggle.IsZero() || now.Sub(g.lastToggle) >= g.cfg.Loop.AutomapDebounce.Duration {
			g.showAutomap = !g.showAutomap
			g.lastToggle = now
		}
	}
}

func (g *Game) integrate(dt float64) {
	var grid physics.Solidity = openSpace{}
	if g.lvl != nil {
		grid = g.lvl.Grid
	}

	q := g.moving.Query()
	for q.Next() {
		t, m, gr := q.Get()
		res := g.params.Step(grid, gr.Mode, &t.Pos, &m.Vel, dt)
		m.Friction = res.Friction
		if q.Entity() == g.player {
			bumped := res.Bumped()
			if bumped && !g.lastBump {
				g.cues.Bump()
			}
			g.lastBump = bumped
		}
	}
}

// Render composes the current view into f
func (g *Game) Render(f *render.Frame) {
	f.Clear()
	cam := g.Camera()
	if g.showAutomap {
		g.automap.Draw(f, g.mapData(), cam)
		return
	}

	g.view.Draw(f, g.lvl, cam)
	render.DrawPicture(f, g.overlay, g.palette, g.cfg.Render.OverlayRows)

	if _, _, gr := g.bodies.Get(g.player); gr.Mode == physics.Inverted {
		f.FlipVertical()
	}
}
