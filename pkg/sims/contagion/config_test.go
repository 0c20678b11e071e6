package contagion

import "testing"

func TestFromMapOverrides(t *testing.T) {
	c := FromMap(map[string]string{
		"w":              "32",
		"h":              "24",
		"cell":           "8",
		"seed":           "99",
		"mode":           "Conway",
		"spread_factor":  "0.5",
		"decay_factor":   "0.8",
		"radius":         "3",
		"tunnel_chance":  "0.05",
		"alive_chance":   "0.4",
		"random_seeds":   "4",
		"occupant_share": "0.2",
		"stochastic":     "true",
	})
	if c.Width != 32 || c.Height != 24 || c.CellSize != 8 || c.Seed != 99 {
		t.Fatalf("unexpected dimensions %+v", c)
	}
	if c.Mode != ModeConway {
		t.Fatalf("expected conway mode, got %s", c.Mode)
	}
	p := c.Params
	if p.SpreadFactor != 0.5 || p.DecayFactor != 0.8 || p.Radius != 3 || p.TunnelChance != 0.05 {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.AliveChance != 0.4 || p.RandomSeeds != 4 || p.OccupantShare != 0.2 || !p.Stochastic {
		t.Fatalf("unexpected params %+v", p)
	}
}

func TestFromMapRejectsBadValues(t *testing.T) {
	def := DefaultConfig()
	c := FromMap(map[string]string{
		"w":             "-3",
		"cell":          "zero",
		"mode":          "hexagonal",
		"decay_factor":  "1.5",
		"radius":        "0",
		"tunnel_chance": "-1",
		"stochastic":    "maybe",
	})
	if c.Width != def.Width || c.CellSize != def.CellSize || c.Mode != def.Mode {
		t.Fatalf("invalid values should keep defaults, got %+v", c)
	}
	if c.Params != def.Params {
		t.Fatalf("invalid params should keep defaults, got %+v", c.Params)
	}
	if FromMap(nil) != def {
		t.Fatal("nil map should yield the default config")
	}
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]Mode{"contagion": ModeContagion, "LIFE": ModeConway, " conway ": ModeConway} {
		got, ok := ParseMode(name)
		if !ok || got != want {
			t.Fatalf("ParseMode(%q) = %s,%v", name, got, ok)
		}
	}
	if _, ok := ParseMode("hex"); ok {
		t.Fatal("unknown mode accepted")
	}
	if ModeConway.String() != "conway" || ModeContagion.String() != "contagion" {
		t.Fatal("unexpected mode names")
	}
}
