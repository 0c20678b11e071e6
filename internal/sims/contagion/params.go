package contagion

import (
	"github.com/gfawcettpq/emotional-contagion/internal/core"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"
)

// Parameters reports the current tunables grouped for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	p := s.grid.Params()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("w", "Width", s.grid.Width()),
				core.IntParam("h", "Height", s.grid.Height()),
				core.FloatParam("cell", "Cell size", s.grid.CellSize()),
				core.Int64Param("seed", "Seed", s.cfg.Grid.Seed),
				core.BoolParam("maze", "Maze", s.maze),
			},
		},
		{
			Name: "Spread",
			Params: []core.Parameter{
				core.FloatParam("spread_factor", "Spread factor", p.SpreadFactor),
				core.FloatParam("decay_factor", "Decay factor", p.DecayFactor),
				core.FloatParam("threshold", "Spread threshold", p.Threshold),
				core.IntParam("radius", "Radius", p.Radius),
				core.BoolParam("stochastic", "Stochastic", p.Stochastic),
				core.FloatParam("occupant_share", "Occupant share", p.OccupantShare),
			},
		},
		{
			Name: "Tunnelling",
			Params: []core.Parameter{
				core.FloatParam("tunnel_chance", "Tunnel chance", p.TunnelChance),
				core.FloatParam("tunnel_threshold", "Tunnel threshold", p.TunnelThreshold),
				core.FloatParam("tunnel_retain", "Tunnel retain", p.TunnelRetain),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				core.FloatParam("alive_chance", "Alive chance", p.AliveChance),
				core.IntParam("random_seeds", "Random seeds", p.RandomSeeds),
				core.IntParam("people", "People", s.cfg.People),
			},
		},
	}}
}

// ParameterControls lists the values adjustable from the HUD.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "spread_factor", Label: "Spread", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "decay_factor", Label: "Decay", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "threshold", Label: "Threshold", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 8, HasMin: true, HasMax: true},
		{Key: "tunnel_chance", Label: "Tunnel", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "people", Label: "People", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 500, HasMin: true, HasMax: true},
		{Key: "stochastic", Label: "Stochastic", Type: core.ParamTypeBool},
		{Key: "maze", Label: "Maze", Type: core.ParamTypeBool},
	}
}

func (s *Sim) control(key string) (core.ParameterControl, bool) {
	for _, c := range s.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter updates an integer tunable. Values are clamped to the
// control bounds.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if c, ok := s.control(key); ok {
		value = int(c.Clamp(float64(value)))
	}
	p := s.grid.Params()
	switch key {
	case "radius":
		p.Radius = value
	case "random_seeds":
		if value < 0 {
			return false
		}
		p.RandomSeeds = value
	case "people":
		s.cfg.People = value
		s.resizeCrowd(value)
		return true
	default:
		return false
	}
	s.grid.SetParams(p)
	return true
}

// SetFloatParameter updates a floating point tunable. Values are clamped to
// the control bounds.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if c, ok := s.control(key); ok {
		value = c.Clamp(value)
	}
	p := s.grid.Params()
	switch key {
	case "spread_factor":
		p.SpreadFactor = value
	case "decay_factor":
		p.DecayFactor = value
	case "threshold":
		p.Threshold = value
	case "tunnel_chance":
		p.TunnelChance = value
	case "tunnel_threshold":
		p.TunnelThreshold = value
	case "tunnel_retain":
		p.TunnelRetain = value
	case "alive_chance":
		if value < 0 || value > 1 {
			return false
		}
		p.AliveChance = value
	case "occupant_share":
		if value < 0 {
			return false
		}
		p.OccupantShare = value
	default:
		return false
	}
	s.grid.SetParams(p)
	return true
}

// SetBoolParameter toggles a boolean tunable.
func (s *Sim) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "stochastic":
		p := s.grid.Params()
		p.Stochastic = value
		s.grid.SetParams(p)
	case "maze":
		if value != s.maze {
			s.ToggleMaze()
		}
	default:
		return false
	}
	return true
}

func (s *Sim) resizeCrowd(n int) {
	for s.crowd.Len() > n {
		ents := s.crowd.Entities()
		s.crowd.Remove(ents[len(ents)-1].ID)
	}
	if missing := n - s.crowd.Len(); missing > 0 {
		s.crowd.Populate(missing, engine.DefaultSpeed)
	}
	s.grid.UpdateOccupants(s.crowd.Occupants())
}
