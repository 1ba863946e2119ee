package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dogsinatas29/doomforantigravity/config"
	"github.com/dogsinatas29/doomforantigravity/level"
	"github.com/dogsinatas29/doomforantigravity/logger"
	"github.com/dogsinatas29/doomforantigravity/wad"
)

var (
	configFlag = flag.String("config", "doomterm.toml", "Path to TOML config (missing file uses defaults)")
	wadFlag    = flag.String("wad", "", "Archive path, overrides archive.path")
	mapFlag    = flag.String("map", "", "Map marker name, overrides archive.map")
	outFlag    = flag.String("o", "", "Output file (default stdout)")
	verbose    = flag.Bool("v", false, "Log decoding details to stderr")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal(err)
	}
	if *wadFlag != "" {
		cfg.Archive.Path = *wadFlag
	}
	if *mapFlag != "" {
		cfg.Archive.Map = *mapFlag
	}
	if *verbose {
		logger.Log.SetOutput(os.Stderr)
		logger.Log.SetLevel(logrus.DebugLevel)
	}

	arc, err := wad.Open(cfg.Archive.Path)
	if err != nil {
		fatal(err)
	}
	m, err := arc.LoadMap(cfg.Archive.Map)
	if err != nil {
		fatal(err)
	}
	reg := level.NewRegistry()
	lvl, err := level.Rasterize(m, reg, cfg.LevelOptions())
	if err != nil {
		fatal(err)
	}

	var out io.Writer = os.Stdout
	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		out = f
	}

	px, py := int(lvl.Spawn.X), int(lvl.Spawn.Y)
	if err := level.Dump(out, lvl.Grid, px, py); err != nil {
		fatal(err)
	}

	fmt.Fprintf(os.Stderr, "%s: grid %dx%d, %d solid cells, %d materials, player (%d, %d)",
		lvl.Name, lvl.Grid.Width(), lvl.Grid.Height(), lvl.Grid.CountSolid(), reg.Len(), px, py)
	if lvl.Spawn.Moved {
		fmt.Fprint(os.Stderr, " relocated out of a wall")
	}
	fmt.Fprintln(os.Stderr)
	for id := 1; id < reg.Len(); id++ {
		fmt.Fprintf(os.Stderr, "  %3d %s\n", id, reg.Name(uint16(id)))
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "mapdump: %v\n", err)
	os.Exit(1)
}
