package app

import (
	"fmt"
	"log/slog"

	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/internal/scenario"
)

type scenarioLoader interface {
	Load(sc *scenario.Scenario) error
}

type loggerSetter interface {
	SetLogger(l *slog.Logger)
}

// BuildSim constructs the sim named by cfg, or by the scenario's mode when a
// scenario file is given, and hands it logger.
func BuildSim(cfg Config, logger *slog.Logger) (core.Sim, error) {
	name := cfg.Sim
	opts := cfg.SimConfig()
	var sc *scenario.Scenario
	if cfg.Scenario != "" {
		loaded, err := scenario.Load(cfg.Scenario)
		if err != nil {
			return nil, err
		}
		sc = loaded
		opts = sc.Options()
		opts["tps"] = fmt.Sprint(max(cfg.TPS, 1))
		if sc.Mode != "" {
			name = sc.Config().Mode.String()
		}
	}
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %v)", name, core.Names())
	}
	sim, err := factory(opts)
	if err != nil {
		return nil, err
	}
	if ls, ok := sim.(loggerSetter); ok && logger != nil {
		ls.SetLogger(logger)
	}
	if sc != nil {
		loader, ok := sim.(scenarioLoader)
		if !ok {
			return nil, fmt.Errorf("sim %q cannot load scenarios", name)
		}
		if err := loader.Load(sc); err != nil {
			return nil, err
		}
	}
	return sim, nil
}
