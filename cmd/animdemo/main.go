package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animevents/config"
	"github.com/milk9111/animevents/diag"
	"github.com/milk9111/animevents/prefabs"
)

func main() {
	clip := flag.String("clip", "knight.yaml", "clip spec in prefabs/")
	bindings := flag.String("bindings", "knight_bindings.yaml", "binding spec in prefabs/")
	dev := flag.Bool("dev", false, "enable development diagnostics")
	watch := flag.Bool("watch", false, "hot-reload clip specs from prefabs/")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *dev {
		cfg.Diagnostics.Dev = true
	}
	prefabs.Dir = cfg.PrefabsDir

	logger, err := diag.New(cfg.Diagnostics, nil)
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(*clip, *bindings, logger)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		if err := game.Watch(cfg.PrefabsDir); err != nil {
			log.Printf("watch %s: %v", cfg.PrefabsDir, err)
		}
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("animevents")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
