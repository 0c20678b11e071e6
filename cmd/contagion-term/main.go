package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gfawcettpq/emotional-contagion/internal/app"
	"github.com/gfawcettpq/emotional-contagion/internal/sims/contagion"
	"github.com/gfawcettpq/emotional-contagion/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height = 60, 30
	logPath := flag.String("log", "", "write logs to this file (the screen is in use)")
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("contagion-term: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := app.NewLogger(out, cfg.Verbose)

	sim, err := app.BuildSim(cfg, logger)
	if err != nil {
		log.Fatalf("contagion-term: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := term.New(screen, app.NewSession(sim, cfg.Seed, logger), contagion.Glyph, cfg.TPS)
	err = t.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
