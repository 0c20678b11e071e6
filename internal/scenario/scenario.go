// Package scenario loads YAML descriptions of a starting grid: its size and
// mode, parameter and rule overrides, barriers, seeded emotions and
// entities.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	prng "github.com/gfawcettpq/emotional-contagion/pkg/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Scenario is the decoded form of a scenario file.
type Scenario struct {
	Name      string          `yaml:"name"`
	Seed      int64           `yaml:"seed"`
	Mode      string          `yaml:"mode"`
	Grid      GridSpec        `yaml:"grid"`
	Params    ParamSpec       `yaml:"params"`
	Randomize bool            `yaml:"randomize"`
	Maze      bool            `yaml:"maze"`
	People    int             `yaml:"people"`
	Rules     map[string]Rule `yaml:"rules"`
	Barriers  []Rect          `yaml:"barriers"`
	Seeds     []Seed          `yaml:"seeds"`
	Entities  []Entity        `yaml:"entities"`
}

// GridSpec sets the grid dimensions.
type GridSpec struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// ParamSpec overrides update parameters. Absent fields keep their defaults.
type ParamSpec struct {
	SpreadFactor  *float64 `yaml:"spread_factor"`
	DecayFactor   *float64 `yaml:"decay_factor"`
	Threshold     *float64 `yaml:"threshold"`
	Radius        *int     `yaml:"radius"`
	Stochastic    *bool    `yaml:"stochastic"`
	OccupantShare *float64 `yaml:"occupant_share"`
	AliveChance   *float64 `yaml:"alive_chance"`
	RandomSeeds   *int     `yaml:"random_seeds"`
	SeedIntensity *float64 `yaml:"seed_intensity"`
	TunnelChance  *float64 `yaml:"tunnel_chance"`
}

// Rule overrides one kind's catalog entry. Absent fields keep the built-in
// values, or the fallback values for custom kinds.
type Rule struct {
	Color        string   `yaml:"color"`
	SpreadRate   *float64 `yaml:"spread_rate"`
	Fade         *float64 `yaml:"fade"`
	Birth        *int     `yaml:"birth"`
	SurviveMin   *int     `yaml:"survive_min"`
	SurviveMax   *int     `yaml:"survive_max"`
	Transmission *float64 `yaml:"transmission"`
	Decay        *float64 `yaml:"decay"`
}

// Rect is a block of barrier cells. Zero width or height means one cell.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Seed deposits an emotion at cell (X, Y).
type Seed struct {
	Kind      string  `yaml:"kind"`
	X         int     `yaml:"x"`
	Y         int     `yaml:"y"`
	Intensity float64 `yaml:"intensity"`
}

// Entity places a walker or an emotion source at world position (X, Y).
type Entity struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Speed     float64 `yaml:"speed"`
	Source    bool    `yaml:"source"`
	Kind      string  `yaml:"kind"`
	Intensity float64 `yaml:"intensity"`
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Decode parses and validates a scenario. Unknown keys are rejected.
func Decode(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	sc := &Scenario{}
	if err := dec.Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Config returns the grid configuration described by the scenario.
func (sc *Scenario) Config() engine.Config {
	cfg := engine.DefaultConfig()
	if sc.Grid.Width > 0 {
		cfg.Width = sc.Grid.Width
	}
	if sc.Grid.Height > 0 {
		cfg.Height = sc.Grid.Height
	}
	if sc.Grid.CellSize > 0 {
		cfg.CellSize = sc.Grid.CellSize
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	if m, ok := engine.ParseMode(sc.Mode); ok {
		cfg.Mode = m
	}
	sc.Params.apply(&cfg.Params)
	return cfg
}

func (p ParamSpec) apply(dst *engine.Params) {
	setFloat(&dst.SpreadFactor, p.SpreadFactor)
	setFloat(&dst.DecayFactor, p.DecayFactor)
	setFloat(&dst.Threshold, p.Threshold)
	setFloat(&dst.OccupantShare, p.OccupantShare)
	setFloat(&dst.AliveChance, p.AliveChance)
	setFloat(&dst.SeedIntensity, p.SeedIntensity)
	setFloat(&dst.TunnelChance, p.TunnelChance)
	if p.Radius != nil {
		dst.Radius = *p.Radius
	}
	if p.RandomSeeds != nil {
		dst.RandomSeeds = *p.RandomSeeds
	}
	if p.Stochastic != nil {
		dst.Stochastic = *p.Stochastic
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Options returns the scenario as flag-style key/value pairs for a sim
// factory.
func (sc *Scenario) Options() map[string]string {
	cfg := sc.Config()
	p := cfg.Params
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return map[string]string{
		"w":              strconv.Itoa(cfg.Width),
		"h":              strconv.Itoa(cfg.Height),
		"cell":           ff(cfg.CellSize),
		"seed":           strconv.FormatInt(cfg.Seed, 10),
		"mode":           cfg.Mode.String(),
		"spread_factor":  ff(p.SpreadFactor),
		"decay_factor":   ff(p.DecayFactor),
		"radius":         strconv.Itoa(p.Radius),
		"tunnel_chance":  ff(p.TunnelChance),
		"alive_chance":   ff(p.AliveChance),
		"random_seeds":   strconv.Itoa(p.RandomSeeds),
		"occupant_share": ff(p.OccupantShare),
		"stochastic":     strconv.FormatBool(p.Stochastic),
		"people":         strconv.Itoa(sc.People),
		"maze":           strconv.FormatBool(sc.Maze),
	}
}

// Catalog builds the emotion catalog with the scenario's rule overrides.
func (sc *Scenario) Catalog() (*emotion.Catalog, error) {
	if len(sc.Rules) == 0 {
		return emotion.Default, nil
	}
	overrides := make(map[emotion.Kind]emotion.Spec, len(sc.Rules))
	for name, r := range sc.Rules {
		k := emotion.Custom(name)
		spec := emotion.Lookup(k)
		if r.Color != "" {
			c, err := parseColor(r.Color)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", name, err)
			}
			spec.Color = c
		}
		setFloat(&spec.SpreadRate, r.SpreadRate)
		setFloat(&spec.DecayRate, r.Fade)
		setFloat(&spec.Rule.TransmissionRate, r.Transmission)
		setFloat(&spec.Rule.DecayRate, r.Decay)
		if r.Birth != nil {
			spec.Rule.BirthNeighbors = *r.Birth
		}
		if r.SurviveMin != nil {
			spec.Rule.SurvivalMin = *r.SurviveMin
		}
		if r.SurviveMax != nil {
			spec.Rule.SurvivalMax = *r.SurviveMax
		}
		overrides[k] = spec
	}
	return emotion.NewCatalog(overrides), nil
}

func parseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q is not #rrggbb", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: colour %q: %v", ErrInvalid, s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Validate checks sizes, kinds and coordinates.
func (sc *Scenario) Validate() error {
	if sc.Grid.Width < 0 || sc.Grid.Height < 0 || sc.Grid.CellSize < 0 {
		return fmt.Errorf("%w: negative grid dimension", ErrInvalid)
	}
	if sc.Mode != "" {
		if _, ok := engine.ParseMode(sc.Mode); !ok {
			return fmt.Errorf("%w: unknown mode %q", ErrInvalid, sc.Mode)
		}
	}
	if sc.People < 0 {
		return fmt.Errorf("%w: negative people count", ErrInvalid)
	}
	if _, err := sc.Catalog(); err != nil {
		return err
	}
	cfg := sc.Config()
	p := cfg.Params
	if p.Radius < 1 {
		return fmt.Errorf("%w: radius %d below 1", ErrInvalid, p.Radius)
	}
	for name, v := range map[string]float64{
		"decay_factor":  p.DecayFactor,
		"alive_chance":  p.AliveChance,
		"tunnel_chance": p.TunnelChance,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %g outside [0,1]", ErrInvalid, name, v)
		}
	}
	inGrid := func(x, y int) bool { return x >= 0 && y >= 0 && x < cfg.Width && y < cfg.Height }
	for i, b := range sc.Barriers {
		if !inGrid(b.X, b.Y) || b.W < 0 || b.H < 0 {
			return fmt.Errorf("%w: barrier %d at (%d,%d) outside %dx%d grid", ErrInvalid, i, b.X, b.Y, cfg.Width, cfg.Height)
		}
	}
	for i, s := range sc.Seeds {
		if strings.TrimSpace(s.Kind) == "" {
			return fmt.Errorf("%w: seed %d has no kind", ErrInvalid, i)
		}
		if !inGrid(s.X, s.Y) {
			return fmt.Errorf("%w: seed %d at (%d,%d) outside %dx%d grid", ErrInvalid, i, s.X, s.Y, cfg.Width, cfg.Height)
		}
		if s.Intensity < 0 {
			return fmt.Errorf("%w: seed %d has negative intensity", ErrInvalid, i)
		}
	}
	ww, wh := float64(cfg.Width)*cfg.CellSize, float64(cfg.Height)*cfg.CellSize
	for i, e := range sc.Entities {
		if e.X < 0 || e.Y < 0 || e.X > ww || e.Y > wh {
			return fmt.Errorf("%w: entity %d at (%g,%g) outside %gx%g world", ErrInvalid, i, e.X, e.Y, ww, wh)
		}
		if e.Source && strings.TrimSpace(e.Kind) == "" {
			return fmt.Errorf("%w: source entity %d has no kind", ErrInvalid, i)
		}
	}
	return nil
}

// Populate lays the scenario's barriers and seeds onto g and adds its
// entities to c. c may be nil.
func (sc *Scenario) Populate(g *engine.Grid, c *engine.Crowd) {
	for _, b := range sc.Barriers {
		w, h := max(b.W, 1), max(b.H, 1)
		for y := b.Y; y < b.Y+h; y++ {
			for x := b.X; x < b.X+w; x++ {
				g.AddBarrier(x, y)
			}
		}
	}
	for _, s := range sc.Seeds {
		intensity := s.Intensity
		if intensity == 0 {
			intensity = emotion.CellMax
		}
		g.Seed(emotion.Custom(s.Kind), s.X, s.Y, intensity)
	}
	if c == nil {
		return
	}
	for _, e := range sc.Entities {
		if e.Source {
			c.AddSource(e.X, e.Y, emotion.Custom(e.Kind), e.Intensity)
			continue
		}
		ent := c.AddPerson(e.X, e.Y, e.Speed)
		if e.Kind != "" && e.Intensity > 0 {
			ent.Emotions.Add(emotion.Custom(e.Kind), e.Intensity)
		}
	}
}

// Build constructs a grid and crowd from the scenario alone. A nil rng is
// seeded from the scenario.
func (sc *Scenario) Build(rng prng.Source) (*engine.Grid, *engine.Crowd, error) {
	cfg := sc.Config()
	if rng == nil {
		rng = prng.NewRNG(cfg.Seed)
	}
	g, err := engine.NewWithConfig(cfg, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("build scenario %q: %w", sc.Name, err)
	}
	cat, err := sc.Catalog()
	if err != nil {
		return nil, nil, fmt.Errorf("build scenario %q: %w", sc.Name, err)
	}
	g.SetCatalog(cat)
	if sc.Maze {
		g.BarrierMaze()
	}
	if sc.Randomize {
		g.Randomize()
	}
	ww, wh := g.WorldSize()
	crowd := engine.NewCrowd(ww, wh, rng)
	crowd.SetCatalog(cat)
	crowd.Populate(sc.People, engine.DefaultSpeed)
	sc.Populate(g, crowd)
	g.UpdateOccupants(crowd.Occupants())
	return g, crowd, nil
}
