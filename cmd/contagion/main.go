//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/gfawcettpq/emotional-contagion/internal/app"
	"github.com/gfawcettpq/emotional-contagion/internal/render"
	"github.com/gfawcettpq/emotional-contagion/internal/sims/contagion"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.Verbose)
	sim, err := app.BuildSim(cfg, logger)
	if err != nil {
		log.Fatalf("contagion: %v", err)
	}

	labels := make([]string, 0, len(emotion.Builtin()))
	for i, k := range emotion.Builtin() {
		labels = append(labels, string(rune('1'+i))+" "+k.Name())
	}
	legend := render.LegendFor(labels, sim.Palette(), int(contagion.ValueEmotion), contagion.Buckets)

	game := app.New(sim, cfg.Scale, cfg.Seed, legend, logger)
	size := sim.Size()

	ebiten.SetWindowTitle("Emotional Contagion - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+app.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
