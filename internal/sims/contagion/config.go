package contagion

import (
	"strconv"

	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"
)

// Config wraps the grid configuration with the settings the adapter owns.
type Config struct {
	Grid engine.Config

	// People is the number of wandering entities spawned on Reset.
	People int
	// Maze lays the barrier maze on Reset.
	Maze bool
	// TPS converts ticks into entity time steps.
	TPS int
}

// DefaultConfig returns the standard configuration for mode.
func DefaultConfig(mode engine.Mode) Config {
	g := engine.DefaultConfig()
	g.Mode = mode
	c := Config{Grid: g, TPS: 60}
	if mode == engine.ModeContagion {
		c.People = 12
	}
	return c
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). The grid keys are parsed by the engine; the mode always follows
// the registered sim name.
func FromMap(cfg map[string]string, mode engine.Mode) Config {
	c := DefaultConfig(mode)
	if cfg == nil {
		return c
	}
	c.Grid = engine.FromMap(cfg)
	c.Grid.Mode = mode
	if v, ok := cfg["people"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.People = parsed
		}
	}
	if v, ok := cfg["maze"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Maze = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	return c
}
