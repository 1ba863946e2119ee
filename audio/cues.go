// Package audio plays short synthesized cues for in-game events
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/dogsinatas29/doomforantigravity/logger"
	"github.com/dogsinatas29/doomforantigravity/physics"
)

// Cue identifies a sound
type Cue uint8

const (
	CueBump Cue = iota
	CueJump
	CueGravityNormal
	CueGravityZeroG
	CueGravityInverted
	cueCount
)

// GravityCue returns the cue announcing a switch to mode
func GravityCue(mode physics.GravityMode) Cue {
	switch mode {
	case physics.ZeroG:
		return CueGravityZeroG
	case physics.Inverted:
		return CueGravityInverted
	default:
		return CueGravityNormal
	}
}

// Cues receives gameplay events worth a sound
type Cues interface {
	Bump()
	Jump()
	GravityChanged(mode physics.GravityMode)
}

// Nop discards every cue
type Nop struct{}

func (Nop) Bump()                              {}
func (Nop) Jump()                              {}
func (Nop) GravityChanged(physics.GravityMode) {}

// Config controls the speaker
type Config struct {
	SampleRate int
	Volume     float64       // linear, 0 mutes
	MinGap     time.Duration // per-cue retrigger guard
}

// DefaultConfig returns 44.1 kHz at 60% volume with a 50 ms retrigger gap
func DefaultConfig() Config {
	return Config{SampleRate: 44100, Volume: 0.6, MinGap: 50 * time.Millisecond}
}

// Player renders cues through a play function, rate-limited per cue
type Player struct {
	cfg  Config
	rate beep.SampleRate
	play func(beep.Streamer)
	now  func() time.Time

	mu   sync.Mutex
	last [cueCount]time.Time

	closer func()
}

// NewSpeaker initializes the system speaker. Callers treat an error as
// "run silent" and fall back to Nop.
func NewSpeaker(cfg Config) (*Player, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	p := newPlayer(cfg, func(s beep.Streamer) { speaker.Play(s) })
	p.closer = speaker.Close
	logger.For("audio").WithField("sample_rate", cfg.SampleRate).Info("speaker initialized")
	return p, nil
}

func newPlayer(cfg Config, play func(beep.Streamer)) *Player {
	return &Player{
		cfg:  cfg,
		rate: beep.SampleRate(cfg.SampleRate),
		play: play,
		now:  time.Now,
	}
}

// Trigger plays c unless it played within MinGap
func (p *Player) Trigger(c Cue) {
	if c >= cueCount || p.cfg.Volume <= 0 {
		return
	}
	now := p.now()

	p.mu.Lock()
	if !p.last[c].IsZero() && now.Sub(p.last[c]) < p.cfg.MinGap {
		p.mu.Unlock()
		return
	}
	p.last[c] = now
	p.mu.Unlock()

	p.play(newVolume(Sound(c, p.rate), p.cfg.Volume))
}

func (p *Player) Bump() { p.Trigger(CueBump) }

func (p *Player) Jump() { p.Trigger(CueJump) }

func (p *Player) GravityChanged(mode physics.GravityMode) { p.Trigger(GravityCue(mode)) }

// Close releases the speaker
func (p *Player) Close() {
	if p.closer != nil {
		p.closer()
	}
}
