package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogsinatas29/doomforantigravity/physics"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "E1M1", cfg.Archive.Map)
	assert.Equal(t, 0.2, cfg.Grid.Scale)
	assert.Equal(t, 20, cfg.Grid.Padding)
	assert.Equal(t, 16.0, cfg.Movement.MoveSpeed)
	assert.Equal(t, 30, cfg.Loop.TickRate)
	assert.Equal(t, 300*time.Millisecond, cfg.Loop.AutomapDebounce.Duration)
	assert.Equal(t, physics.Normal, cfg.StartMode())
	assert.Equal(t, physics.DefaultParams(), cfg.PhysicsParams())
	assert.InDelta(t, math.Pi/2, cfg.RenderOptions().FOV, 1e-12)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doom.toml")
	data := `
[archive]
path = "freedoom1.wad"
map = "E1M2"

[physics]
start_mode = "zerog"
bounce = 0.5

[render]
fov_degrees = 60
fog = false

[loop]
tick_rate = 60
automap_debounce = "150ms"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "freedoom1.wad", cfg.Archive.Path)
	assert.Equal(t, "E1M2", cfg.Archive.Map)
	assert.Equal(t, physics.ZeroG, cfg.StartMode())
	assert.Equal(t, 0.5, cfg.PhysicsParams().Bounce)
	assert.InDelta(t, math.Pi/3, cfg.RenderOptions().FOV, 1e-12)
	assert.False(t, cfg.RenderOptions().Fog)
	assert.Equal(t, 60, cfg.Loop.TickRate)
	assert.Equal(t, 150*time.Millisecond, cfg.Loop.AutomapDebounce.Duration)

	// untouched sections keep their defaults
	assert.Equal(t, 0.2, cfg.Grid.Scale)
	assert.Equal(t, 1.2, cfg.Movement.Jump)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[archive\npath = 1"},
		{"bad mode", "[physics]\nstart_mode = \"sideways\""},
		{"tunneling speed", "[physics]\nmax_speed = 1.5"},
		{"bad duration", "[loop]\nmin_tick = \"soon\""},
		{"zero tick", "[loop]\ntick_rate = 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Grid.Scale = 0
	cfg.Render.MaxSteps = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid.scale")
	assert.Contains(t, err.Error(), "render.max_steps")
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := Default()
	cfg.Archive.Map = "E2M4"
	cfg.Audio.MinGap = Duration{80 * time.Millisecond}
	require.NoError(t, cfg.Write(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
