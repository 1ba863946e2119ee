package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/dogsinatas29/doomforantigravity/audio"
	"github.com/dogsinatas29/doomforantigravity/config"
	"github.com/dogsinatas29/doomforantigravity/engine"
	"github.com/dogsinatas29/doomforantigravity/input"
	"github.com/dogsinatas29/doomforantigravity/logger"
	"github.com/dogsinatas29/doomforantigravity/terminal"
)

var (
	configFlag  = flag.String("config", "doomterm.toml", "Path to TOML config (missing file uses defaults)")
	wadFlag     = flag.String("wad", "", "Archive path, overrides archive.path")
	mapFlag     = flag.String("map", "", "Map marker name, overrides archive.map")
	overlayFlag = flag.String("overlay", "", "Picture lump drawn over the view, overrides archive.overlay")
	modeFlag    = flag.String("gravity", "", "Start gravity mode: normal, zerog, inverted")
	colorFlag   = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
	logFlag     = flag.String("log", "", "Log file, overrides log.file")
	muteFlag    = flag.Bool("mute", false, "Disable sound cues")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mDOOMTERM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.Init(cfg.LoggerOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	log := logger.For("main")

	screen, err := terminal.Open(terminal.ParseColorMode(*colorFlag))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	var cues audio.Cues = audio.Nop{}
	if cfg.Audio.Enabled {
		if player, err := audio.NewSpeaker(cfg.AudioConfig()); err == nil {
			cues = player
			defer player.Close()
		} else {
			log.WithError(err).Warn("audio unavailable, continuing without sound")
		}
	}

	game := engine.NewGame(cfg, cues, engine.SystemClock{})
	src := input.NewTcellSource(screen, input.DefaultKeyMap())
	loop := engine.NewLoop(game, src, engine.ScreenPresenter{Screen: screen})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop.Run(ctx, cfg.Archive.Path, cfg.Archive.Map)
}

func applyFlags(cfg *config.Config) {
	if *wadFlag != "" {
		cfg.Archive.Path = *wadFlag
	}
	if *mapFlag != "" {
		cfg.Archive.Map = *mapFlag
	}
	if *overlayFlag != "" {
		cfg.Archive.Overlay = *overlayFlag
	}
	if *modeFlag != "" {
		cfg.Physics.StartMode = *modeFlag
	}
	if *logFlag != "" {
		cfg.Log.File = *logFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
}
