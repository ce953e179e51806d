//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"watercolor/internal/app"
	"watercolor/internal/watercolor"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	engine := watercolor.NewWithConfig(watercolor.FromMap(cfg.Overrides()))
	if cfg.Texture != "" {
		if err := app.LoadTexture(engine, cfg.Texture); err != nil {
			log.Fatalf("texture %s: %v", cfg.Texture, err)
		}
	}

	game := app.New(engine, cfg.Scale, cfg.TPS)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
