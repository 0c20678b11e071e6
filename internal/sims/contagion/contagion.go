package contagion

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/internal/scenario"
	prng "github.com/gfawcettpq/emotional-contagion/pkg/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"
)

// Sim exposes an emotion grid and its crowd as a core.Sim.
type Sim struct {
	cfg     Config
	rng     *prng.RNG
	grid    *engine.Grid
	crowd   *engine.Crowd
	display *core.Frame
	palette []color.RGBA
	logger  *slog.Logger
	maze    bool

	scenario *scenario.Scenario
}

var (
	_ core.Sim                       = (*Sim)(nil)
	_ core.Seeder                    = (*Sim)(nil)
	_ core.Controller                = (*Sim)(nil)
	_ core.Summarizer                = (*Sim)(nil)
	_ core.ParameterProvider         = (*Sim)(nil)
	_ core.ParameterControlsProvider = (*Sim)(nil)
	_ core.IntParameterSetter        = (*Sim)(nil)
	_ core.FloatParameterSetter      = (*Sim)(nil)
	_ core.BoolParameterSetter       = (*Sim)(nil)
)

// New builds a Sim from cfg and populates it from cfg.Grid.Seed.
func New(cfg Config) (*Sim, error) {
	rng := prng.NewRNG(cfg.Grid.Seed)
	g, err := engine.NewWithConfig(cfg.Grid, rng)
	if err != nil {
		return nil, fmt.Errorf("contagion sim: %w", err)
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	s := &Sim{
		cfg:     cfg,
		rng:     rng,
		grid:    g,
		display: core.NewFrame(cfg.Grid.Width, cfg.Grid.Height),
		palette: BuildPalette(emotion.Default),
		logger:  slog.Default(),
		maze:    cfg.Maze,
	}
	s.Reset(cfg.Grid.Seed)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return s.grid.Mode().String() }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.grid.Width(), H: s.grid.Height()} }

// Cells exposes the display buffer.
func (s *Sim) Cells() []uint8 { return s.display.Pix() }

// Palette returns the display palette.
func (s *Sim) Palette() []color.RGBA { return s.palette }

// Grid exposes the underlying grid for read access between ticks.
func (s *Sim) Grid() *engine.Grid { return s.grid }

// Crowd exposes the wandering entities.
func (s *Sim) Crowd() *engine.Crowd { return s.crowd }

// Stats returns the statistics of the last tick.
func (s *Sim) Stats() engine.Stats { return s.grid.Stats() }

// SetLogger replaces the logger. A nil logger restores slog.Default.
func (s *Sim) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// SetCatalog switches the kind catalog used by the grid, the crowd and the
// palette.
func (s *Sim) SetCatalog(cat *emotion.Catalog) {
	s.grid.SetCatalog(cat)
	s.crowd.SetCatalog(cat)
	s.palette = BuildPalette(s.grid.Catalog())
}

// Reset reseeds the random source, rebuilds the barrier layout and crowd and
// randomizes the grid.
func (s *Sim) Reset(seed int64) {
	s.rng.Seed(seed)
	s.grid.ClearBarriers()
	if s.maze {
		s.grid.BarrierMaze()
	}
	s.grid.Randomize()
	ww, wh := s.grid.WorldSize()
	s.crowd = engine.NewCrowd(ww, wh, s.rng)
	s.crowd.SetCatalog(s.grid.Catalog())
	s.crowd.Populate(s.cfg.People, engine.DefaultSpeed)
	if sc := s.scenario; sc != nil {
		if !sc.Randomize {
			s.grid.Clear()
		}
		sc.Populate(s.grid, s.crowd)
	}
	s.grid.UpdateOccupants(s.crowd.Occupants())
	s.render()
	s.logger.Info("reset", "sim", s.Name(), "seed", seed, "people", s.cfg.People, "maze", s.maze)
}

// Load installs sc and resets the sim from it. The grid dimensions must
// match the scenario; build the sim from sc.Options to get them.
func (s *Sim) Load(sc *scenario.Scenario) error {
	cfg := sc.Config()
	if cfg.Width != s.grid.Width() || cfg.Height != s.grid.Height() {
		return fmt.Errorf("load scenario %q: grid is %dx%d, scenario wants %dx%d",
			sc.Name, s.grid.Width(), s.grid.Height(), cfg.Width, cfg.Height)
	}
	cat, err := sc.Catalog()
	if err != nil {
		return fmt.Errorf("load scenario %q: %w", sc.Name, err)
	}
	s.scenario = sc
	s.cfg.People = sc.People
	s.maze = sc.Maze
	s.grid.SetParams(cfg.Params)
	s.grid.SetCatalog(cat)
	s.palette = BuildPalette(cat)
	s.cfg.Grid.Seed = cfg.Seed
	s.Reset(cfg.Seed)
	s.logger.Info("scenario", "name", sc.Name, "seeds", len(sc.Seeds), "entities", len(sc.Entities))
	return nil
}

// Step advances the crowd and the grid by one tick.
func (s *Sim) Step() {
	if s.crowd.Len() > 0 {
		s.crowd.Step(1 / float64(s.cfg.TPS))
		s.grid.UpdateOccupants(s.crowd.Occupants())
	}
	st := s.grid.Update()
	if st.Changed() {
		s.logger.Debug("tick",
			"tick", st.Tick,
			"births", st.Births,
			"deaths", st.Deaths,
			"spreads", st.EmotionSpreads,
			"tunnels", st.Tunnels,
		)
	}
	s.render()
}

// SeedCell deposits kind at the centre of cell (x, y).
func (s *Sim) SeedCell(kind emotion.Kind, x, y int) bool {
	wx, wy := s.grid.CellCenter(x, y)
	return s.SeedWorld(kind, wx, wy)
}

// SeedWorld deposits kind at world position (wx, wy).
func (s *Sim) SeedWorld(kind emotion.Kind, wx, wy float64) bool {
	if !s.grid.SeedEmotion(kind, wx, wy) {
		return false
	}
	s.logger.Info("seed", "kind", kind, "x", wx, "y", wy)
	s.render()
	return true
}

// Clear kills every cell.
func (s *Sim) Clear() {
	s.grid.Clear()
	s.render()
	s.logger.Info("clear")
}

// Randomize repopulates the grid from the current random stream.
func (s *Sim) Randomize() {
	s.grid.Randomize()
	s.render()
	s.logger.Info("randomize", "alive", s.aliveCount())
}

// ToggleMaze lays or removes the barrier maze.
func (s *Sim) ToggleMaze() {
	s.maze = !s.maze
	if s.maze {
		placed := s.grid.BarrierMaze()
		s.logger.Info("maze", "barriers", placed)
	} else {
		s.grid.ClearBarriers()
		s.logger.Info("maze", "barriers", 0)
	}
	s.render()
}

// Summary reports the status lines shown by the HUD and terminal.
func (s *Sim) Summary() []string {
	st := s.grid.Stats()
	return []string{
		fmt.Sprintf("%s  tick %d", s.Name(), s.grid.Tick()),
		fmt.Sprintf("alive %d  emotional %d", s.aliveCount(), st.EmotionCount),
		fmt.Sprintf("births %d  deaths %d", st.Births, st.Deaths),
		fmt.Sprintf("spreads %d  tunnels %d", st.EmotionSpreads, st.Tunnels),
		fmt.Sprintf("intensity %.2f  active %d", s.grid.TotalIntensity(), s.grid.ActiveCellCount()),
		fmt.Sprintf("people %d  barriers %d", s.crowd.Len(), s.display.Count(ValueBarrier)),
	}
}

func (s *Sim) aliveCount() int {
	n := 0
	s.grid.Visit(func(_, _ int, c *engine.Cell) {
		if c.Alive {
			n++
		}
	})
	return n
}

func (s *Sim) render() {
	threshold := s.grid.Params().Threshold
	s.grid.Visit(func(x, y int, c *engine.Cell) {
		s.display.Set(x, y, Encode(c, threshold))
	})
}

func init() {
	for _, mode := range []engine.Mode{engine.ModeContagion, engine.ModeConway} {
		mode := mode
		core.Register(mode.String(), func(cfg map[string]string) (core.Sim, error) {
			return New(FromMap(cfg, mode))
		})
	}
}
