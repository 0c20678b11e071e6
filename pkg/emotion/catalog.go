package emotion

import "image/color"

// Rule holds the Game-of-Life style contagion parameters of a kind.
type Rule struct {
	// BirthNeighbors is the exact live-neighbour count that brings a dead
	// cell to life when this kind would dominate it.
	BirthNeighbors int
	// SurvivalMin and SurvivalMax bound (inclusive) the live-neighbour count
	// that keeps a live cell carrying this kind alive.
	SurvivalMin int
	SurvivalMax int
	// TransmissionRate is the per-tick probability weight of spreading to a neighbour.
	TransmissionRate float64
	// DecayRate is the fraction of intensity lost per tick.
	DecayRate float64
}

// ClassicRule is Conway's B3/S23 with the fallback transmission and decay rates.
var ClassicRule = Rule{BirthNeighbors: 3, SurvivalMin: 2, SurvivalMax: 3, TransmissionRate: 0.3, DecayRate: 0.1}

// Born reports whether a dead cell with n live neighbours comes alive.
func (r Rule) Born(n int) bool { return n == r.BirthNeighbors }

// Survives reports whether a live cell with n live neighbours stays alive.
func (r Rule) Survives(n int) bool { return n >= r.SurvivalMin && n <= r.SurvivalMax }

func (r Rule) normalized() Rule {
	if r.SurvivalMin > r.SurvivalMax {
		r.SurvivalMin, r.SurvivalMax = r.SurvivalMax, r.SurvivalMin
	}
	r.TransmissionRate = clamp(r.TransmissionRate, 0, 1)
	r.DecayRate = clamp(r.DecayRate, 0, 1)
	return r
}

// Spec is the catalog entry of a kind.
type Spec struct {
	Kind       Kind
	Color      color.NRGBA
	SpreadRate float64
	// DecayRate is the per-second fade used for entity-held emotions. Grid
	// cells decay by Rule.DecayRate per tick instead.
	DecayRate float64
	Rule      Rule
}

// Catalog is an immutable table of kind specs. Lookups never fail: unknown
// kinds receive the fallback spec.
type Catalog struct {
	specs    map[Kind]Spec
	fallback Spec
}

// Default is the built-in catalog.
var Default = NewCatalog(nil)

// Lookup resolves k in the Default catalog.
func Lookup(k Kind) Spec { return Default.Lookup(k) }

var fallbackSpec = Spec{
	Color:      color.NRGBA{R: 216, G: 222, B: 233, A: 255}, // #d8dee9
	SpreadRate: 0.5,
	DecayRate:  0.03,
	Rule:       ClassicRule,
}

func builtinSpecs() map[Kind]Spec {
	return map[Kind]Spec{
		Joy: {
			Color:      color.NRGBA{R: 235, G: 203, B: 139, A: 255}, // #ebcb8b
			SpreadRate: 0.8,
			DecayRate:  0.02,
			Rule:       Rule{BirthNeighbors: 3, SurvivalMin: 2, SurvivalMax: 3, TransmissionRate: 0.4, DecayRate: 0.05},
		},
		Sadness: {
			Color:      color.NRGBA{R: 129, G: 161, B: 193, A: 255}, // #81a1c1
			SpreadRate: 0.3,
			DecayRate:  0.015,
			Rule:       Rule{BirthNeighbors: 2, SurvivalMin: 2, SurvivalMax: 4, TransmissionRate: 0.3, DecayRate: 0.1},
		},
		Anger: {
			Color:      color.NRGBA{R: 191, G: 97, B: 106, A: 255}, // #bf616a
			SpreadRate: 0.6,
			DecayRate:  0.05,
			Rule:       Rule{BirthNeighbors: 3, SurvivalMin: 1, SurvivalMax: 3, TransmissionRate: 0.8, DecayRate: 0.2},
		},
		Fear: {
			Color:      color.NRGBA{R: 180, G: 142, B: 173, A: 255}, // #b48ead
			SpreadRate: 0.5,
			DecayRate:  0.04,
			Rule:       ClassicRule,
		},
		Disgust: {
			Color:      color.NRGBA{R: 163, G: 190, B: 140, A: 255}, // #a3be8c
			SpreadRate: 0.2,
			DecayRate:  0.04,
			Rule:       ClassicRule,
		},
		Anxiety: {
			Color:      color.NRGBA{R: 94, G: 129, B: 172, A: 255}, // #5e81ac
			SpreadRate: 0.4,
			DecayRate:  0.03,
			Rule:       Rule{BirthNeighbors: 4, SurvivalMin: 2, SurvivalMax: 6, TransmissionRate: 0.6, DecayRate: 0.15},
		},
		Love: {
			Color:      color.NRGBA{R: 208, G: 135, B: 112, A: 255}, // #d08770
			SpreadRate: 0.7,
			DecayRate:  0.01,
			Rule:       Rule{BirthNeighbors: 2, SurvivalMin: 1, SurvivalMax: 4, TransmissionRate: 0.3, DecayRate: 0.03},
		},
		Envy: {
			Color:      color.NRGBA{R: 143, G: 188, B: 187, A: 255}, // #8fbcbb
			SpreadRate: 0.1,
			DecayRate:  0.025,
			Rule:       ClassicRule,
		},
		Embarrassment: {
			Color:      color.NRGBA{R: 217, G: 128, B: 166, A: 255},
			SpreadRate: 0.2,
			DecayRate:  0.06,
			Rule:       ClassicRule,
		},
	}
}

// NewCatalog builds a catalog from the built-in table with the given entries
// replaced. Override entries for custom kinds are added. Survival bounds are
// reordered and rates clamped into [0, 1].
func NewCatalog(overrides map[Kind]Spec) *Catalog {
	specs := builtinSpecs()
	for k, s := range overrides {
		specs[k] = s
	}
	for k, s := range specs {
		s.Kind = k
		s.SpreadRate = clamp(s.SpreadRate, 0, 1)
		s.DecayRate = clamp(s.DecayRate, 0, 1)
		s.Rule = s.Rule.normalized()
		specs[k] = s
	}
	return &Catalog{specs: specs, fallback: fallbackSpec}
}

// Lookup returns the spec of k, or the fallback spec tagged with k.
func (c *Catalog) Lookup(k Kind) Spec {
	if c == nil {
		c = Default
	}
	if s, ok := c.specs[k]; ok {
		return s
	}
	s := c.fallback
	s.Kind = k
	return s
}

// Rule is shorthand for Lookup(k).Rule.
func (c *Catalog) Rule(k Kind) Rule { return c.Lookup(k).Rule }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
