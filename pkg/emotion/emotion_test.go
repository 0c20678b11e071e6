package emotion

import (
	"math"
	"testing"
)

func TestCatalogBuiltinRules(t *testing.T) {
	sad := Lookup(Sadness)
	if sad.Rule.BirthNeighbors != 2 || sad.Rule.SurvivalMin != 2 || sad.Rule.SurvivalMax != 4 {
		t.Fatalf("unexpected sadness rule %+v", sad.Rule)
	}
	if math.Abs(Lookup(Joy).SpreadRate-0.8) > 1e-9 {
		t.Fatalf("expected joy spread rate 0.8, got %f", Lookup(Joy).SpreadRate)
	}
	if math.Abs(Lookup(Anger).Rule.DecayRate-0.2) > 1e-9 {
		t.Fatalf("expected anger rule decay 0.2, got %f", Lookup(Anger).Rule.DecayRate)
	}
	for _, k := range Builtin() {
		r := Lookup(k).Rule
		if r.SurvivalMin > r.SurvivalMax {
			t.Fatalf("%s survival range inverted: %+v", k, r)
		}
		if Lookup(k).Kind != k {
			t.Fatalf("lookup of %s returned spec for %s", k, Lookup(k).Kind)
		}
	}
}

func TestCatalogCustomKindFallsBack(t *testing.T) {
	k := Custom("Nostalgia")
	if k.IsBuiltin() {
		t.Fatal("custom kind reported as builtin")
	}
	spec := Lookup(k)
	if spec.Kind != k {
		t.Fatalf("fallback spec should carry the custom kind, got %q", spec.Kind)
	}
	if spec.Rule != ClassicRule {
		t.Fatalf("custom kind should use the classic rule, got %+v", spec.Rule)
	}
	if Custom("JOY") != Joy {
		t.Fatal("custom name matching a builtin should resolve to it")
	}
}

func TestCatalogOverridesNormalize(t *testing.T) {
	cat := NewCatalog(map[Kind]Spec{
		Joy: {SpreadRate: 1.5, Rule: Rule{BirthNeighbors: 2, SurvivalMin: 5, SurvivalMax: 1, TransmissionRate: 2, DecayRate: -1}},
	})
	r := cat.Rule(Joy)
	if r.SurvivalMin != 1 || r.SurvivalMax != 5 {
		t.Fatalf("expected survival bounds reordered, got %+v", r)
	}
	if r.TransmissionRate != 1 || r.DecayRate != 0 {
		t.Fatalf("expected rates clamped, got %+v", r)
	}
	if cat.Lookup(Joy).SpreadRate != 1 {
		t.Fatalf("expected spread rate clamped to 1, got %f", cat.Lookup(Joy).SpreadRate)
	}
	if Lookup(Joy).Rule.BirthNeighbors != 3 {
		t.Fatal("override leaked into the default catalog")
	}
}

func TestKindOrdering(t *testing.T) {
	if !Less(Joy, Sadness) || Less(Sadness, Joy) {
		t.Fatal("builtin kinds should follow declaration order")
	}
	if !Less(Embarrassment, Kind("aaa")) {
		t.Fatal("builtin kinds should sort before custom kinds")
	}
	if !Less(Kind("alpha"), Kind("beta")) {
		t.Fatal("custom kinds should sort by name")
	}
	if Kind("zeal").Index() != len(Builtin()) {
		t.Fatal("custom kinds should share the trailing index")
	}
}

func TestSetAddMergesAndClamps(t *testing.T) {
	s := NewSet(CellMax)
	s.Add(Joy, 0.6)
	s.Add(Joy, 0.7)
	if got := s.Intensity(Joy); got != 1.0 {
		t.Fatalf("expected merged intensity clamped to 1, got %f", got)
	}
	s.Add(Sadness, -0.5)
	if s.Has(Sadness) {
		t.Fatal("negative addition should not create an entry")
	}
	s.Add(Joy, -3)
	if got := s.Intensity(Joy); got != 0 {
		t.Fatalf("expected intensity floored at 0, got %f", got)
	}
	if s.Len() != 1 {
		t.Fatalf("expected a single kind, got %d", s.Len())
	}
}

func TestSetKeepsCanonicalOrder(t *testing.T) {
	var s Set
	s.Add(Kind("zest"), 0.2)
	s.Add(Love, 0.3)
	s.Add(Joy, 0.4)
	s.Add(Anger, 0.5)
	want := []Kind{Joy, Anger, Love, Kind("zest")}
	got := s.Emotions()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, e := range got {
		if e.Kind != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Kind)
		}
	}
}

func TestSetDominantTieBreak(t *testing.T) {
	for run := 0; run < 10; run++ {
		var s Set
		s.Add(Love, 0.5)
		s.Add(Sadness, 0.5)
		d, ok := s.Dominant()
		if !ok {
			t.Fatal("expected a dominant emotion")
		}
		if d.Kind != Sadness {
			t.Fatalf("run %d: expected tie to resolve to sadness, got %s", run, d.Kind)
		}
	}
	var empty Set
	if _, ok := empty.Dominant(); ok {
		t.Fatal("empty set should have no dominant emotion")
	}
}

func TestSetScalePruneAndTotal(t *testing.T) {
	s := NewSet(CellMax)
	s.Put(Joy, 0.5)
	s.Put(Fear, 0.011)
	s.Scale(func(Kind) float64 { return 0.5 })
	if math.Abs(s.Total()-0.2555) > 1e-9 {
		t.Fatalf("unexpected total %f", s.Total())
	}
	if dropped := s.Prune(); dropped != 1 {
		t.Fatalf("expected fear to be pruned, dropped %d", dropped)
	}
	if s.Has(Fear) || !s.Has(Joy) {
		t.Fatal("prune removed the wrong entries")
	}
}

func TestSetFade(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Anger, 1.0)
	s.Fade(2, func(k Kind) float64 { return Lookup(k).DecayRate })
	if got := s.Intensity(Anger); math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("expected anger to fade to 0.9, got %f", got)
	}
	s.Fade(100, func(Kind) float64 { return 1 })
	if got := s.Intensity(Anger); got != 0 {
		t.Fatalf("expected fade to floor at 0, got %f", got)
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Joy, 4)
	c := s.Clone()
	c.Put(Joy, 1)
	if s.Intensity(Joy) != 4 {
		t.Fatal("clone shares storage with the original")
	}
	if c.Max() != EntityMax {
		t.Fatalf("clone lost the ceiling: %f", c.Max())
	}
}

func TestSpreadAmount(t *testing.T) {
	if got := SpreadAmount(1, 0.8, 1); math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("expected 0.4, got %f", got)
	}
	if got := SpreadAmount(1, 0.8, 0); got != 0 {
		t.Fatalf("expected nothing to spread at distance 0, got %f", got)
	}
}
