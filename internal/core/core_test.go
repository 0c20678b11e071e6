package core

import (
	"testing"
	"time"
)

func TestFrameSetAndBounds(t *testing.T) {
	f := NewFrame(0, 3)
	if f.W != 1 || f.H != 3 {
		t.Fatalf("expected 1x3 frame, got %dx%d", f.W, f.H)
	}
	f = NewFrame(4, 2)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			f.Set(x, y, uint8(y*10+x))
		}
	}
	f.Set(4, 0, 99)
	f.Set(-1, 1, 99)
	if f.At(3, 1) != 13 || f.At(0, 0) != 0 || f.Count(99) != 0 {
		t.Fatalf("unexpected values %v", f.Pix())
	}
	if f.At(4, 0) != 0 || f.At(-1, 0) != 0 {
		t.Fatal("out-of-range access should read zero")
	}
	if f.Count(13) != 1 || f.Count(0) != 1 {
		t.Fatalf("unexpected counts in %v", f.Pix())
	}
}

func TestPacerCountsTicks(t *testing.T) {
	clock := time.Unix(0, 0)
	p := NewPacer(10)
	p.now = func() time.Time { return clock }

	if n := p.Due(); n != 1 {
		t.Fatalf("first call should report one tick, got %d", n)
	}
	clock = clock.Add(50 * time.Millisecond)
	if n := p.Due(); n != 0 {
		t.Fatalf("reported %d ticks before a full interval", n)
	}
	clock = clock.Add(260 * time.Millisecond)
	if n := p.Due(); n != 3 {
		t.Fatalf("expected 3 ticks after 310ms, got %d", n)
	}

	clock = clock.Add(5 * time.Second)
	if n := p.Due(); n != MaxBurst {
		t.Fatalf("stall should be capped at %d, got %d", MaxBurst, n)
	}
	if n := p.Due(); n != 0 {
		t.Fatalf("backlog survived the cap: %d", n)
	}

	clock = clock.Add(time.Second)
	p.Hold()
	if n := p.Due(); n != 0 {
		t.Fatalf("held pacer reported %d ticks", n)
	}
	if p.Interval() != 100*time.Millisecond {
		t.Fatalf("unexpected interval %v", p.Interval())
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Grid", Params: []Parameter{IntParam("w", "Width", 40)}},
		{Name: "Spread", Params: []Parameter{FloatParam("spread_factor", "Spread", 0.3), BoolParam("stochastic", "Stochastic", true)}},
	}}
	p, ok := snap.Lookup("spread_factor")
	if !ok || p.Value != "0.3" || p.Type != ParamTypeFloat {
		t.Fatalf("unexpected lookup %+v", p)
	}
	if p, _ := snap.Lookup("stochastic"); p.Value != "true" {
		t.Fatalf("unexpected bool value %q", p.Value)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("missing key reported present")
	}
	ctrl := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if ctrl.Clamp(1.5) != 1 || ctrl.Clamp(-1) != 0 || ctrl.Clamp(0.4) != 0.4 {
		t.Fatal("clamp ignored bounds")
	}
}

func TestNamesSorted(t *testing.T) {
	Register("zz-test", func(map[string]string) (Sim, error) { return nil, nil })
	Register("aa-test", func(map[string]string) (Sim, error) { return nil, nil })
	Register("", nil)
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	delete(sims, "zz-test")
	delete(sims, "aa-test")
}
