package emotion

import (
	"image/color"
	"math"
	"testing"
)

func TestInteractJoyNeutralizesSadness(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Joy, 8)
	s.Put(Sadness, 4)
	s.Interact()
	// min(8,4)*0.3 = 1.2
	if got := s.Intensity(Joy); math.Abs(got-6.8) > 1e-9 {
		t.Fatalf("expected joy 6.8, got %f", got)
	}
	if got := s.Intensity(Sadness); math.Abs(got-2.8) > 1e-9 {
		t.Fatalf("expected sadness 2.8, got %f", got)
	}
}

func TestInteractNeutralizationCapped(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Joy, 10)
	s.Put(Sadness, 9)
	s.Interact()
	if got := s.Intensity(Sadness); math.Abs(got-7) > 1e-9 {
		t.Fatalf("expected reduction capped at 2, got sadness %f", got)
	}
}

func TestInteractionFloorHolds(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Joy, 10)
	s.Put(Sadness, 10)
	s.Put(Anger, 10)
	for i := 0; i < 50; i++ {
		s.Interact()
		s.Each(func(e Emotion) {
			if e.Intensity < 0 || e.Intensity > s.Max() {
				t.Fatalf("iteration %d: %s out of range: %f", i, e.Kind, e.Intensity)
			}
		})
		// keep the neutralization condition alive
		s.Add(Joy, 3)
		s.Add(Sadness, 3)
	}
}

func TestInteractAngerErodes(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Anger, 8)
	s.Put(Joy, 1)
	s.Put(Love, 3)
	s.Interact()
	if got := s.Intensity(Joy); got != 0 {
		t.Fatalf("expected joy floored at 0, got %f", got)
	}
	if got := s.Intensity(Love); math.Abs(got-1.8) > 1e-9 {
		t.Fatalf("expected love 1.8, got %f", got)
	}
}

func TestInteractLoveHeals(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Love, 6)
	s.Put(Sadness, 1)
	s.Put(Anger, 2)
	s.Interact()
	if got := s.Intensity(Sadness); math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("expected sadness 0.4, got %f", got)
	}
	if got := s.Intensity(Anger); math.Abs(got-1.1) > 1e-9 {
		t.Fatalf("expected anger 1.1, got %f", got)
	}
}

func TestInteractionsReadPreTickLevels(t *testing.T) {
	// Love heals anger below 7 in the same pass, but anger's erosion must
	// still use the level it had before any rule ran.
	s := NewSet(EntityMax)
	s.Put(Anger, 7)
	s.Put(Love, 10)
	s.Put(Joy, 2)
	s.Interact()
	if got := s.Intensity(Love); math.Abs(got-8.95) > 1e-9 {
		t.Fatalf("expected love 8.95, got %f", got)
	}
	if got := s.Intensity(Anger); math.Abs(got-5.5) > 1e-9 {
		t.Fatalf("expected anger 5.5, got %f", got)
	}
	if got := s.Intensity(Joy); math.Abs(got-0.6) > 1e-9 {
		t.Fatalf("expected joy 0.6, got %f", got)
	}
}

func TestInteractOverloadCreatesAnxiety(t *testing.T) {
	s := NewSet(EntityMax)
	s.Put(Joy, 4)
	s.Put(Sadness, 3)
	s.Put(Anger, 5)
	s.Put(Love, 4)
	s.Interact()
	if got := s.Intensity(Anxiety); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected anxiety created at 0.5, got %f", got)
	}

	s.Put(Anxiety, 9.8)
	s.Interact()
	if got := s.Intensity(Anxiety); got != 10 {
		t.Fatalf("expected anxiety capped at 10, got %f", got)
	}
}

func TestInteractNoopOnCellSets(t *testing.T) {
	s := NewSet(CellMax)
	s.Put(Joy, 1)
	s.Put(Sadness, 1)
	s.Put(Anger, 1)
	s.Put(Love, 1)
	before := s.Emotions()
	s.Interact()
	after := s.Emotions()
	if len(before) != len(after) {
		t.Fatalf("interactions changed a unit-capped set: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("interactions changed a unit-capped set: %v -> %v", before, after)
		}
	}
}

func TestMixWeightsByIntensity(t *testing.T) {
	cat := NewCatalog(map[Kind]Spec{
		Joy:     {Color: color.NRGBA{R: 200, A: 255}, Rule: ClassicRule},
		Sadness: {Color: color.NRGBA{B: 200, A: 255}, Rule: ClassicRule},
	})
	s := NewSet(CellMax)
	s.Put(Joy, 0.75)
	s.Put(Sadness, 0.25)
	c, ok := Mix(&s, cat)
	if !ok {
		t.Fatal("expected a mixed colour")
	}
	if c.R != 150 || c.B != 50 {
		t.Fatalf("unexpected mix %+v", c)
	}
	var empty Set
	if _, ok := Mix(&empty, cat); ok {
		t.Fatal("empty set should not mix")
	}
}

func TestShadeBrightness(t *testing.T) {
	c := Shade(color.NRGBA{R: 100, G: 200, B: 0, A: 255}, 0)
	if c.R != 30 || c.G != 60 {
		t.Fatalf("expected 30%% brightness at zero intensity, got %+v", c)
	}
	c = Shade(color.NRGBA{R: 100, G: 200, B: 0, A: 255}, 1)
	if c.R != 100 || c.G != 200 {
		t.Fatalf("expected full brightness at full intensity, got %+v", c)
	}
}
