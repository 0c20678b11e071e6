package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gfawcettpq/emotional-contagion/internal/app"
	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/internal/stream"
)

func main() {
	cfg := app.NewConfig()
	ticks := flag.Int("ticks", 200, "ticks to run without -stream")
	every := flag.Int("every", 50, "log a summary every n ticks (0 disables)")
	addr := flag.String("stream", "", "serve the live WebSocket stream on this address, e.g. :8080")
	frames := flag.Bool("frames", false, "include display frames in the stream")
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := app.NewLogger(os.Stderr, cfg.Verbose)
	sim, err := app.BuildSim(cfg, logger)
	if err != nil {
		log.Fatalf("contagion-headless: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *addr != "" {
		if err := serve(ctx, *addr, sim, cfg, *frames, logger); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("contagion-headless: %v", err)
		}
		return
	}
	run(ctx, sim, *ticks, *every, logger)
}

func run(ctx context.Context, sim core.Sim, ticks, every int, logger *slog.Logger) {
	start := time.Now()
	for i := 1; i <= ticks; i++ {
		if ctx.Err() != nil {
			break
		}
		sim.Step()
		if every > 0 && i%every == 0 {
			logSummary(logger, sim)
		}
	}
	logger.Info("done", "ticks", ticks, "elapsed", time.Since(start).Round(time.Millisecond))
	logSummary(logger, sim)
}

func logSummary(logger *slog.Logger, sim core.Sim) {
	s, ok := sim.(core.Summarizer)
	if !ok {
		return
	}
	logger.Info("summary", "status", strings.Join(s.Summary(), " | "))
}

func serve(ctx context.Context, addr string, sim core.Sim, cfg app.Config, frames bool, logger *slog.Logger) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	hub := stream.NewHub(logger)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	go func() {
		logger.Info("streaming", "addr", addr, "path", "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cancel(fmt.Errorf("stream server: %w", err))
		}
	}()

	driver := stream.NewDriver(hub, app.NewSession(sim, cfg.Seed, logger), cfg.TPS, frames, logger)
	if err := driver.Run(ctx); err != nil {
		if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
			return cause
		}
		return err
	}
	return nil
}
