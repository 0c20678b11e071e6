package contagion

import (
	"strconv"
	"strings"
)

// Mode selects which update rules a Grid applies.
type Mode uint8

const (
	// ModeContagion uses per-kind rules, distance-weighted diffusion,
	// interactions and occupant contributions. Cells hold any number of kinds.
	ModeContagion Mode = iota
	// ModeConway is plain B3/S23 with a flat dominant-neighbour blend. Cells
	// hold at most one kind.
	ModeConway
)

// String returns the mode name used by FromMap and the sim registry.
func (m Mode) String() string {
	switch m {
	case ModeConway:
		return "conway"
	default:
		return "contagion"
	}
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contagion", "rich":
		return ModeContagion, true
	case "conway", "life", "simple":
		return ModeConway, true
	}
	return ModeContagion, false
}

// Params holds the tunable thresholds and probabilities of the update.
type Params struct {
	// SpreadFactor scales the dominant neighbour intensity blended into a
	// live cell in Conway mode.
	SpreadFactor float64
	// DecayFactor multiplies every intensity each tick in Conway mode.
	DecayFactor float64
	// Threshold is the intensity a neighbour emotion must exceed to spread.
	Threshold float64
	// Radius is the Chebyshev reach of diffusion in contagion mode.
	Radius int
	// Stochastic gates each contagion push by the kind's transmission rate.
	Stochastic bool
	// OccupantShare is the fraction of an occupant's emotions added to its
	// cell every contagion tick.
	OccupantShare float64

	AliveChance   float64
	RandomSeeds   int
	SeedIntensity float64

	TunnelChance    float64
	TunnelThreshold float64
	TunnelRetain    float64
	TunnelAttempts  int
}

// Config controls the grid dimensions, mode and parameters.
type Config struct {
	Width    int
	Height   int
	CellSize float64

	Seed int64
	Mode Mode

	Params Params
}

// DefaultParams returns the standard update parameters.
func DefaultParams() Params {
	return Params{
		SpreadFactor:    0.3,
		DecayFactor:     0.9,
		Threshold:       0.1,
		Radius:          1,
		OccupantShare:   0.1,
		AliveChance:     0.3,
		RandomSeeds:     10,
		SeedIntensity:   1.0,
		TunnelThreshold: 0.7,
		TunnelRetain:    0.8,
		TunnelAttempts:  20,
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    80,
		Height:   60,
		CellSize: 10,
		Seed:     42,
		Mode:     ModeContagion,
		Params:   DefaultParams(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["cell"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, ok := ParseMode(v); ok {
			c.Mode = parsed
		}
	}
	if v, ok := cfg["spread_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.SpreadFactor = parsed
		}
	}
	if v, ok := cfg["decay_factor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.DecayFactor = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 {
			c.Params.Radius = parsed
		}
	}
	if v, ok := cfg["tunnel_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.TunnelChance = parsed
		}
	}
	if v, ok := cfg["alive_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.AliveChance = parsed
		}
	}
	if v, ok := cfg["random_seeds"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.RandomSeeds = parsed
		}
	}
	if v, ok := cfg["occupant_share"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.OccupantShare = parsed
		}
	}
	if v, ok := cfg["stochastic"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Stochastic = parsed
		}
	}
	return c
}
