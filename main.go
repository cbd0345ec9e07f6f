package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "intro", "level name in levels/ (basename, .yaml optional)")
	script := flag.String("script", "", "drive the player from a script in prefabs/scripts instead of the keyboard")
	debug := flag.Bool("debug", false, "draw collision shapes and sensor probes")
	scale := flag.Float64("scale", 40, "pixels per world unit")
	mute := flag.Bool("mute", false, "start with audio muted")
	watch := flag.Bool("watch", true, "reload prefabs, levels and scripts when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("climber")

	game, err := NewGame(GameOptions{
		Level:  *levelName,
		Script: *script,
		Debug:  *debug,
		Scale:  *scale,
		Mute:   *mute,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
