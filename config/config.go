// Package config loads the TOML settings file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dogsinatas29/doomforantigravity/audio"
	"github.com/dogsinatas29/doomforantigravity/level"
	"github.com/dogsinatas29/doomforantigravity/logger"
	"github.com/dogsinatas29/doomforantigravity/physics"
	"github.com/dogsinatas29/doomforantigravity/render"
)

// Duration decodes TOML strings like "300ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Archive struct {
	Path    string `toml:"path"`
	Map     string `toml:"map"`
	Overlay string `toml:"overlay"` // picture lump drawn over the view, empty for none
}

type Grid struct {
	Scale   float64 `toml:"scale"`
	Padding int     `toml:"padding"`
}

type Physics struct {
	Gravity        float64 `toml:"gravity"`
	Ceiling        float64 `toml:"ceiling"`
	ProbeRadius    float64 `toml:"probe_radius"`
	Bounce         float64 `toml:"bounce"`
	MaxSpeed       float64 `toml:"max_speed"`
	NormalFriction float64 `toml:"normal_friction"`
	ZeroGFriction  float64 `toml:"zerog_friction"`
	StartMode      string  `toml:"start_mode"`
}

type Movement struct {
	MoveSpeed  float64 `toml:"move_speed"`  // impulse per second of input
	TurnSpeed  float64 `toml:"turn_speed"`  // radians per second
	PitchSpeed float64 `toml:"pitch_speed"` // pitch units per second
	PitchLimit float64 `toml:"pitch_limit"`
	Jump       float64 `toml:"jump"`
	EyeHeight  float64 `toml:"eye_height"`
}

type Render struct {
	FOVDegrees  float64 `toml:"fov_degrees"`
	WallScale   float64 `toml:"wall_scale"`
	MinDistance float64 `toml:"min_distance"`
	MaxSteps    int     `toml:"max_steps"`
	MidDistance float64 `toml:"mid_distance"`
	FarDistance float64 `toml:"far_distance"`
	EdgeDelta   float64 `toml:"edge_delta"`
	Fog         bool    `toml:"fog"`
	FogDistance float64 `toml:"fog_distance"`
	SideDim     float64 `toml:"side_dim"`
	Crosshair   bool    `toml:"crosshair"`
	AutomapZoom float64 `toml:"automap_zoom"`
	OverlayRows int     `toml:"overlay_rows"`
}

type Loop struct {
	TickRate        int      `toml:"tick_rate"`
	MinTick         Duration `toml:"min_tick"`
	AutomapDebounce Duration `toml:"automap_debounce"`
}

type Audio struct {
	Enabled    bool     `toml:"enabled"`
	SampleRate int      `toml:"sample_rate"`
	Volume     float64  `toml:"volume"`
	MinGap     Duration `toml:"min_gap"`
}

type Log struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

// Config is the full settings tree
type Config struct {
	Archive  Archive  `toml:"archive"`
	Grid     Grid     `toml:"grid"`
	Physics  Physics  `toml:"physics"`
	Movement Movement `toml:"movement"`
	Render   Render   `toml:"render"`
	Loop     Loop     `toml:"loop"`
	Audio    Audio    `toml:"audio"`
	Log      Log      `toml:"log"`
}

// Default returns the built-in settings
func Default() *Config {
	pp := physics.DefaultParams()
	ro := render.DefaultOptions()
	ac := audio.DefaultConfig()
	lo := level.DefaultOptions()
	return &Config{
		Archive: Archive{Path: "doom1.wad", Map: "E1M1"},
		Grid:    Grid{Scale: lo.Scale, Padding: lo.Padding},
		Physics: Physics{
			Gravity:        pp.Gravity,
			Ceiling:        pp.Ceiling,
			ProbeRadius:    pp.Radius,
			Bounce:         pp.Bounce,
			MaxSpeed:       pp.MaxSpeed,
			NormalFriction: pp.NormalFriction,
			ZeroGFriction:  pp.ZeroGFriction,
			StartMode:      physics.Normal.String(),
		},
		Movement: Movement{
			MoveSpeed:  16,
			TurnSpeed:  6,
			PitchSpeed: 4,
			PitchLimit: 1,
			Jump:       1.2,
			EyeHeight:  8.2,
		},
		Render: Render{
			FOVDegrees:  90,
			WallScale:   ro.WallScale,
			MinDistance: ro.MinDistance,
			MaxSteps:    ro.MaxSteps,
			MidDistance: ro.MidDistance,
			FarDistance: ro.FarDistance,
			EdgeDelta:   ro.EdgeDelta,
			Fog:         ro.Fog,
			FogDistance: ro.FogDistance,
			SideDim:     ro.SideDim,
			Crosshair:   ro.Crosshair,
			AutomapZoom: render.DefaultZoom,
			OverlayRows: 12,
		},
		Loop: Loop{
			TickRate:        30,
			MinTick:         Duration{time.Millisecond},
			AutomapDebounce: Duration{300 * time.Millisecond},
		},
		Audio: Audio{
			Enabled:    true,
			SampleRate: ac.SampleRate,
			Volume:     ac.Volume,
			MinGap:     Duration{ac.MinGap},
		},
		Log: Log{Level: "info", Format: "text", MaxSizeMB: 10},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.For("config").WithField("path", path).Debug("config file missing, using defaults")
			return Default(), nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.For("config").WithField("keys", undecoded).Warn("unknown config keys ignored")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes the config as TOML
func (c *Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks ranges the engine relies on
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Grid.Scale > 0, "grid.scale must be positive, got %v", c.Grid.Scale)
	check(c.Grid.Padding >= 0, "grid.padding must not be negative, got %d", c.Grid.Padding)

	check(c.Physics.Ceiling > 0, "physics.ceiling must be positive, got %v", c.Physics.Ceiling)
	check(c.Physics.ProbeRadius > 0 && c.Physics.ProbeRadius < 0.5, "physics.probe_radius must be in (0, 0.5), got %v", c.Physics.ProbeRadius)
	check(c.Physics.MaxSpeed > 0 && c.Physics.MaxSpeed < 1, "physics.max_speed must be in (0, 1) cells per tick, got %v", c.Physics.MaxSpeed)
	check(c.Physics.Bounce >= 0 && c.Physics.Bounce <= 1, "physics.bounce must be in [0, 1], got %v", c.Physics.Bounce)
	check(inUnit(c.Physics.NormalFriction), "physics.normal_friction must be in (0, 1], got %v", c.Physics.NormalFriction)
	check(inUnit(c.Physics.ZeroGFriction), "physics.zerog_friction must be in (0, 1], got %v", c.Physics.ZeroGFriction)
	if _, err := physics.ParseGravityMode(c.Physics.StartMode); err != nil {
		errs = append(errs, err)
	}

	check(c.Movement.PitchLimit >= 0, "movement.pitch_limit must not be negative")

	check(c.Render.FOVDegrees > 0 && c.Render.FOVDegrees < 180, "render.fov_degrees must be in (0, 180), got %v", c.Render.FOVDegrees)
	check(c.Render.WallScale > 0, "render.wall_scale must be positive")
	check(c.Render.MinDistance > 0, "render.min_distance must be positive")
	check(c.Render.MaxSteps > 0, "render.max_steps must be positive")
	check(c.Render.AutomapZoom > 0, "render.automap_zoom must be positive")

	check(c.Loop.TickRate > 0 && c.Loop.TickRate <= 1000, "loop.tick_rate must be in (0, 1000], got %d", c.Loop.TickRate)
	check(c.Loop.MinTick.Duration > 0, "loop.min_tick must be positive")

	check(c.Audio.SampleRate > 0, "audio.sample_rate must be positive")
	check(c.Log.MaxSizeMB >= 0, "log.max_size_mb must not be negative")

	return errors.Join(errs...)
}

func inUnit(v float64) bool { return v > 0 && v <= 1 }

// PhysicsParams converts the physics section
func (c *Config) PhysicsParams() physics.Params {
	return physics.Params{
		Gravity:        c.Physics.Gravity,
		Ceiling:        c.Physics.Ceiling,
		Radius:         c.Physics.ProbeRadius,
		Bounce:         c.Physics.Bounce,
		MaxSpeed:       c.Physics.MaxSpeed,
		NormalFriction: c.Physics.NormalFriction,
		ZeroGFriction:  c.Physics.ZeroGFriction,
	}
}

// StartMode returns the configured initial gravity mode
func (c *Config) StartMode() physics.GravityMode {
	m, _ := physics.ParseGravityMode(c.Physics.StartMode)
	return m
}

// RenderOptions converts the render section
func (c *Config) RenderOptions() render.Options {
	o := render.DefaultOptions()
	o.FOV = c.Render.FOVDegrees * math.Pi / 180
	o.WallScale = c.Render.WallScale
	o.MinDistance = c.Render.MinDistance
	o.MaxSteps = c.Render.MaxSteps
	o.MidDistance = c.Render.MidDistance
	o.FarDistance = c.Render.FarDistance
	o.EdgeDelta = c.Render.EdgeDelta
	o.Fog = c.Render.Fog
	o.FogDistance = c.Render.FogDistance
	o.SideDim = c.Render.SideDim
	o.Crosshair = c.Render.Crosshair
	return o
}

// LevelOptions converts the grid section
func (c *Config) LevelOptions() level.Options {
	return level.Options{Scale: c.Grid.Scale, Padding: c.Grid.Padding}
}

// AudioConfig converts the audio section
func (c *Config) AudioConfig() audio.Config {
	return audio.Config{SampleRate: c.Audio.SampleRate, Volume: c.Audio.Volume, MinGap: c.Audio.MinGap.Duration}
}

// LoggerOptions converts the log section
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:   c.Log.Level,
		Format:  c.Log.Format,
		File:    c.Log.File,
		MaxSize: int64(c.Log.MaxSizeMB) << 20,
	}
}
