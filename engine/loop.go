package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dogsinatas29/doomforantigravity/input"
	"github.com/dogsinatas29/doomforantigravity/logger"
	"github.com/dogsinatas29/doomforantigravity/render"
)

// Presenter shows composed frames
type Presenter interface {
	Size() (width, height int)
	Present(f *render.Frame)
}

// ScreenPresenter blits frames to a tcell screen
type ScreenPresenter struct {
	Screen tcell.Screen
}

func (p ScreenPresenter) Size() (int, int) { return p.Screen.Size() }

func (p ScreenPresenter) Present(f *render.Frame) { f.Draw(p.Screen) }

// Loop drives Input, Physics, Render and Present once per tick on the
// calling goroutine
type Loop struct {
	game  *Game
	src   input.Source
	out   Presenter
	clock Clock
	frame *render.Frame

	tick    time.Duration
	minTick time.Duration

	running atomic.Bool
	ticks   atomic.Uint64
}

// NewLoop prepares a loop at the game's configured tick rate
func NewLoop(game *Game, src input.Source, out Presenter) *Loop {
	lc := game.cfg.Loop
	w, h := out.Size()
	return &Loop{
		game:    game,
		src:     src,
		out:     out,
		clock:   game.clock,
		frame:   render.NewFrame(w, h),
		tick:    time.Second / time.Duration(lc.TickRate),
		minTick: lc.MinTick.Duration,
	}
}

// Run loads the configured level and ticks until Stop, a quit intent or
// ctx cancellation. A failed load is logged and the loop runs without
// geometry.
func (l *Loop) Run(ctx context.Context, archive, mapName string) {
	log := logger.For("loop")
	if archive != "" {
		if err := l.game.LoadLevel(archive, mapName); err != nil {
			log.WithError(err).Error("level load failed, continuing without geometry")
		}
	}

	l.running.Store(true)
	defer l.running.Store(false)

	log.WithFields(logrus.Fields{"tick": l.tick, "min_tick": l.minTick}).Info("loop started")
	last := l.clock.Now()
	for l.running.Load() {
		if ctx.Err() != nil {
			break
		}
		start := l.clock.Now()
		dt := max(start.Sub(last), l.minTick)
		last = start

		in := l.src.Poll()
		if in.Has(input.IntentResize) {
			l.frame.Resize(l.out.Size())
		}
		if !l.game.Update(dt.Seconds(), in) {
			break
		}
		l.game.Render(l.frame)
		l.out.Present(l.frame)
		l.ticks.Add(1)

		if rest := l.tick - l.clock.Now().Sub(start); rest > 0 {
			l.clock.Sleep(rest)
		}
	}
	log.WithField("ticks", l.ticks.Load()).Info("loop stopped")
}

// Stop ends the loop after the current tick
func (l *Loop) Stop() { l.running.Store(false) }

// Running reports whether Run is ticking
func (l *Loop) Running() bool { return l.running.Load() }

// Ticks returns the number of completed ticks
func (l *Loop) Ticks() uint64 { return l.ticks.Load() }

// Frame returns the loop's frame buffer
func (l *Loop) Frame() *render.Frame { return l.frame }
