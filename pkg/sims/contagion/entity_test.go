package contagion

import (
	"math"
	"testing"

	"github.com/gfawcettpq/emotional-contagion/pkg/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

func TestEntitySpreadTo(t *testing.T) {
	c := NewCrowd(200, 200, core.NewRNG(1))
	a := c.AddPerson(0, 0, 0)
	b := c.AddPerson(1, 0, 0)
	a.Emotions.Put(emotion.Joy, 4)

	got := a.SpreadTo(b, 1, emotion.Default)
	if !approx(got, 1.6) {
		t.Fatalf("expected 1.6 transferred, got %f", got)
	}
	if !approx(b.Emotions.Intensity(emotion.Joy), 1.6) {
		t.Fatalf("receiver holds %f", b.Emotions.Intensity(emotion.Joy))
	}
	if !approx(a.Given, 1.6) || !approx(b.Received, 1.6) {
		t.Fatalf("bookkeeping mismatch: given %f received %f", a.Given, b.Received)
	}
	if a.SpreadTo(b, SpreadRange+1, emotion.Default) != 0 {
		t.Fatal("spread beyond range")
	}
	if a.SpreadTo(b, 0, emotion.Default) != 0 {
		t.Fatal("spread at zero distance")
	}
}

func TestSourceRegeneratesAndFades(t *testing.T) {
	c := NewCrowd(200, 200, core.NewRNG(1))
	src := c.AddSource(50, 50, emotion.Joy, 1.0)
	c.Step(1)
	want := 1.0 + SourceRegen - emotion.Lookup(emotion.Joy).DecayRate
	if got := src.Emotions.Intensity(emotion.Joy); !approx(got, want) {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if src.X != 50 || src.Y != 50 {
		t.Fatalf("source moved to (%f,%f)", src.X, src.Y)
	}
	if src.Age != 1 {
		t.Fatalf("expected age 1, got %f", src.Age)
	}
}

func TestCrowdExchangesWithinRange(t *testing.T) {
	c := NewCrowd(200, 200, core.NewRNG(1))
	src := c.AddSource(10, 10, emotion.Joy, 1.0)
	near := c.AddPerson(20, 10, 0)
	far := c.AddPerson(190, 190, 0)
	c.Step(0)

	want := (1.0 + SourceRegen) * 0.8 / 11
	if got := near.Emotions.Intensity(emotion.Joy); !approx(got, want) {
		t.Fatalf("expected %f near the source, got %f", want, got)
	}
	if far.Emotions.Len() != 0 {
		t.Fatal("entity out of range received emotion")
	}
	if !approx(src.Given, near.Received) {
		t.Fatalf("given %f != received %f", src.Given, near.Received)
	}
}

func TestCrowdAppliesInteractions(t *testing.T) {
	c := NewCrowd(200, 200, core.NewRNG(1))
	e := c.AddPerson(100, 100, 0)
	e.Emotions.Put(emotion.Joy, 8)
	e.Emotions.Put(emotion.Sadness, 4)
	c.Step(0)
	if got := e.Emotions.Intensity(emotion.Joy); !approx(got, 6.8) {
		t.Fatalf("expected joy 6.8 after interaction, got %f", got)
	}
}

func TestEntityBouncesOffBounds(t *testing.T) {
	c := NewCrowd(100, 100, core.NewRNG(1))
	e := c.AddPerson(1, 50, DefaultSpeed)
	e.Heading = math.Pi
	c.Step(0.1)
	if e.X != 0 {
		t.Fatalf("expected entity clamped to x=0, got %f", e.X)
	}
	if math.Abs(e.Heading) > 1e-9 {
		t.Fatalf("expected heading reflected to 0, got %f", e.Heading)
	}

	c.Populate(20, DefaultSpeed)
	for i := 0; i < 200; i++ {
		c.Step(0.05)
	}
	for _, ent := range c.Entities() {
		if ent.X < 0 || ent.X > 100 || ent.Y < 0 || ent.Y > 100 {
			t.Fatalf("entity %d escaped to (%f,%f)", ent.ID, ent.X, ent.Y)
		}
	}
}

func TestCrowdOccupantsFeedGrid(t *testing.T) {
	c := NewCrowd(50, 50, core.NewRNG(1))
	c.AddSource(25, 25, emotion.Love, 5)
	c.AddPerson(5, 5, 0)
	occ := c.Occupants()
	if len(occ) != 2 || occ[0].ID != 1 || occ[1].ID != 2 {
		t.Fatalf("unexpected occupants %+v", occ)
	}
	if !c.Remove(2) || c.Len() != 1 || c.Remove(2) {
		t.Fatal("Remove did not drop exactly one entity")
	}

	g, err := New(5, 5, 10, core.NewRNG(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.UpdateOccupants(c.Occupants())
	if ids := g.OccupantsAt(2, 2); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected source in cell (2,2), got %v", ids)
	}
}

func TestEntityAtFarEdgeStaysOnGrid(t *testing.T) {
	c := NewCrowd(100, 100, core.NewRNG(1))
	e := c.AddPerson(99.9, 99.9, DefaultSpeed)
	e.Heading = math.Pi / 4
	c.Step(1)
	if e.X >= 100 || e.Y >= 100 {
		t.Fatalf("entity clamped onto the far edge (%f,%f)", e.X, e.Y)
	}

	g, err := New(10, 10, 10, core.NewRNG(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.UpdateOccupants(c.Occupants())
	if ids := g.OccupantsAt(9, 9); len(ids) != 1 || ids[0] != e.ID {
		t.Fatalf("expected entity %d in cell (9,9), got %v", e.ID, ids)
	}
}
