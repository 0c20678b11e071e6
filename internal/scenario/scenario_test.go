package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	prng "github.com/gfawcettpq/emotional-contagion/pkg/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"
)

const twoSources = `
name: two-sources
seed: 7
mode: contagion
grid:
  width: 20
  height: 10
  cell_size: 5
params:
  radius: 2
  stochastic: true
  tunnel_chance: 0.05
rules:
  joy:
    color: "#ff0000"
    decay: 0.5
  calm:
    spread_rate: 0.2
    birth: 2
barriers:
  - {x: 10, y: 0, h: 4}
seeds:
  - {kind: joy, x: 2, y: 2}
  - {kind: calm, x: 15, y: 7, intensity: 0.4}
entities:
  - {x: 50, y: 25, source: true, kind: love, intensity: 5}
  - {x: 10, y: 10, speed: 20}
`

func TestDecodeAndBuild(t *testing.T) {
	sc, err := Decode(strings.NewReader(twoSources))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cfg := sc.Config()
	if cfg.Width != 20 || cfg.Height != 10 || cfg.CellSize != 5 || cfg.Seed != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Params.Radius != 2 || !cfg.Params.Stochastic || cfg.Params.TunnelChance != 0.05 {
		t.Fatalf("params not applied: %+v", cfg.Params)
	}
	if cfg.Params.SpreadFactor != engine.DefaultParams().SpreadFactor {
		t.Fatal("absent params should keep defaults")
	}

	g, crowd, err := sc.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for y := 0; y < 4; y++ {
		if !g.IsBarrier(10, y) {
			t.Fatalf("expected barrier at (10,%d)", y)
		}
	}
	if g.IsBarrier(10, 4) {
		t.Fatal("barrier block too tall")
	}
	c, _ := g.CellAt(2, 2)
	if !c.Alive || c.Emotions.Intensity(emotion.Joy) != 1 {
		t.Fatalf("joy seed missing: %+v", c)
	}
	c, _ = g.CellAt(15, 7)
	if c.Emotions.Intensity(emotion.Kind("calm")) != 0.4 {
		t.Fatalf("custom seed missing: %+v", c)
	}
	if crowd.Len() != 2 || !crowd.Entities()[0].Source {
		t.Fatalf("unexpected crowd of %d", crowd.Len())
	}
	if ids := g.OccupantsAt(10, 5); len(ids) != 1 {
		t.Fatalf("source should occupy cell (10,5), got %v", ids)
	}

	cat := g.Catalog()
	joy := cat.Lookup(emotion.Joy)
	if joy.Color.R != 255 || joy.Color.G != 0 || joy.Rule.DecayRate != 0.5 {
		t.Fatalf("joy override not applied: %+v", joy)
	}
	if joy.SpreadRate != emotion.Lookup(emotion.Joy).SpreadRate {
		t.Fatal("unset joy fields should keep built-in values")
	}
	calm := cat.Lookup(emotion.Kind("calm"))
	if calm.SpreadRate != 0.2 || calm.Rule.BirthNeighbors != 2 {
		t.Fatalf("custom rule not applied: %+v", calm)
	}
	if emotion.Lookup(emotion.Joy).Rule.DecayRate == 0.5 {
		t.Fatal("override leaked into the default catalog")
	}
}

func TestBuildIsReproducible(t *testing.T) {
	sc, err := Decode(strings.NewReader("seed: 3\nrandomize: true\npeople: 4\ngrid: {width: 16, height: 16}\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	a, _, err := sc.Build(prng.NewRNG(3))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, _, _ := sc.Build(prng.NewRNG(3))
	for i := 0; i < 5; i++ {
		a.Update()
		b.Update()
	}
	sa, sb := a.Stats(), b.Stats()
	if sa.AliveCount != sb.AliveCount || sa.TotalIntensity != sb.TotalIntensity || sa.Births != sb.Births {
		t.Fatalf("same seed diverged: %+v vs %+v", sa, sb)
	}
	if sa.Tick != 5 {
		t.Fatalf("expected tick 5, got %d", sa.Tick)
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "colour: red\n",
		"bad mode":        "mode: hexagonal\n",
		"seed outside":    "grid: {width: 4, height: 4}\nseeds: [{kind: joy, x: 9, y: 0}]\n",
		"seed no kind":    "seeds: [{x: 1, y: 1}]\n",
		"bad colour":      "rules: {joy: {color: red}}\n",
		"radius":          "params: {radius: 0}\n",
		"alive chance":    "params: {alive_chance: 2}\n",
		"negative grid":   "grid: {width: -1}\n",
		"entity outside":  "grid: {width: 4, height: 4, cell_size: 1}\nentities: [{x: 10, y: 1}]\n",
		"source no kind":  "entities: [{x: 1, y: 1, source: true}]\n",
		"barrier outside": "grid: {width: 4, height: 4}\nbarriers: [{x: 4, y: 0}]\n",
	}
	for name, doc := range cases {
		_, err := Decode(strings.NewReader(doc))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if name != "unknown key" && !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestLoadWrapsErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(twoSources), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := sc.Options()
	if opts["w"] != "20" || opts["cell"] != "5" || opts["radius"] != "2" || opts["stochastic"] != "true" {
		t.Fatalf("unexpected options %v", opts)
	}
	if got := engine.FromMap(opts); got.Params.Radius != 2 || got.CellSize != 5 {
		t.Fatalf("options do not round-trip through FromMap: %+v", got)
	}
}
