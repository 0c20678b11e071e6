package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
	}

	a.Seed(7)
	first := a.Float64()
	a.Seed(7)
	if again := a.Float64(); again != first {
		t.Fatalf("Seed did not rewind the stream: %f != %f", again, first)
	}
}

func TestRNGBoolSaturates(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 50; i++ {
		if r.Bool(0) {
			t.Fatal("Bool(0) returned true")
		}
		if !r.Bool(1) {
			t.Fatal("Bool(1) returned false")
		}
	}
}

func TestRNGRangeBounds(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 500; i++ {
		v := r.Range(2, 5)
		if v < 2 || v >= 5 {
			t.Fatalf("Range(2,5) produced %f", v)
		}
	}
	if got := r.Range(4, 4); got != 4 {
		t.Fatalf("empty range should return lo, got %f", got)
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) should return 0, got %d", got)
	}
}
