package app

import (
	"flag"
	"io"
	"log/slog"
	"strconv"
)

// Config captures the command-line options shared by the front-ends.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	Width    int
	Height   int
	People   int
	Maze     bool
	Scenario string
	Verbose  bool
}

// NewConfig returns the default front-end options.
func NewConfig() Config {
	return Config{
		Sim:    "contagion",
		Scale:  10,
		TPS:    10,
		Seed:   42,
		Width:  80,
		Height: 60,
		People: 12,
	}
}

// Bind registers the options on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (contagion or conway)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.People, "people", c.People, "number of wandering entities")
	fs.BoolVar(&c.Maze, "maze", c.Maze, "start with the barrier maze")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "YAML scenario file")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log every tick")
}

// SimConfig converts the options into the key/value map sim factories take.
func (c Config) SimConfig() map[string]string {
	return map[string]string{
		"w":      strconv.Itoa(c.Width),
		"h":      strconv.Itoa(c.Height),
		"cell":   strconv.Itoa(max(c.Scale, 1)),
		"seed":   strconv.FormatInt(c.Seed, 10),
		"people": strconv.Itoa(c.People),
		"maze":   strconv.FormatBool(c.Maze),
		"tps":    strconv.Itoa(max(c.TPS, 1)),
	}
}

// NewLogger returns a text logger writing to w. Verbose enables the per-tick
// debug records.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
