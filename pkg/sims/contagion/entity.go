package contagion

import (
	"math"

	"github.com/gfawcettpq/emotional-contagion/pkg/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

const (
	// SpreadRange is the world distance beyond which entities do not
	// exchange emotions.
	SpreadRange = 100.0
	// HeadingPeriod is how long, in seconds, an entity keeps its heading.
	HeadingPeriod = 2.0
	// SourceRegen is the intensity an emotion source adds to its dominant
	// kind every step.
	SourceRegen = 0.5
	// DefaultSpeed is the walking speed of a person in world units per second.
	DefaultSpeed = 50.0
)

// Entity wanders the world and carries its own emotions, capped at
// emotion.EntityMax.
type Entity struct {
	ID      uint32
	X, Y    float64
	Speed   float64
	Heading float64
	// Source entities regenerate their dominant emotion every step.
	Source   bool
	Emotions emotion.Set

	Given    float64
	Received float64
	Age      float64

	sinceTurn float64
}

// Snapshot returns the occupant record of the entity.
func (e *Entity) Snapshot() Occupant {
	return Occupant{ID: e.ID, X: e.X, Y: e.Y, Emotions: e.Emotions.Emotions()}
}

// SpreadTo pushes e's emotions to other, d world units away, and returns the
// total intensity transferred. Nothing moves when d is not in (0, SpreadRange].
func (e *Entity) SpreadTo(other *Entity, d float64, cat *emotion.Catalog) float64 {
	return spread(e, e.Emotions.Emotions(), other, d, cat)
}

func spread(from *Entity, emotions []emotion.Emotion, to *Entity, d float64, cat *emotion.Catalog) float64 {
	if d <= 0 || d > SpreadRange {
		return 0
	}
	total := 0.0
	for _, em := range emotions {
		amount := emotion.SpreadAmount(em.Intensity, cat.Lookup(em.Kind).SpreadRate, d)
		if amount <= emotion.DeadThreshold {
			continue
		}
		to.Emotions.Add(em.Kind, amount)
		to.Received += amount
		from.Given += amount
		total += amount
	}
	return total
}

func (e *Entity) step(dt, w, h float64, rng core.Source, cat *emotion.Catalog) {
	e.sinceTurn += dt
	if e.sinceTurn >= HeadingPeriod {
		e.Heading = rng.Range(0, 2*math.Pi)
		e.sinceTurn = 0
	}
	e.X += math.Cos(e.Heading) * e.Speed * dt
	e.Y += math.Sin(e.Heading) * e.Speed * dt
	if e.X < 0 || e.X > w {
		e.Heading = math.Pi - e.Heading
		e.X = math.Max(0, math.Min(e.X, math.Nextafter(w, 0)))
	}
	if e.Y < 0 || e.Y > h {
		e.Heading = -e.Heading
		e.Y = math.Max(0, math.Min(e.Y, math.Nextafter(h, 0)))
	}

	if e.Source {
		if d, ok := e.Emotions.Dominant(); ok {
			e.Emotions.Add(d.Kind, SourceRegen)
		}
	}
	e.Emotions.Fade(dt, func(k emotion.Kind) float64 { return cat.Lookup(k).DecayRate })
	e.Emotions.Prune()
	e.Age += dt
}

// Crowd owns the wandering entities of a world of the given extent.
type Crowd struct {
	width, height float64
	entities      []*Entity
	nextID        uint32
	catalog       *emotion.Catalog
	rng           core.Source
}

// NewCrowd returns an empty crowd roaming a width x height world.
func NewCrowd(width, height float64, rng core.Source) *Crowd {
	if rng == nil {
		rng = core.NewRNG(1)
	}
	return &Crowd{width: width, height: height, catalog: emotion.Default, rng: rng, nextID: 1}
}

// SetCatalog replaces the catalog used for spread and decay rates.
func (c *Crowd) SetCatalog(cat *emotion.Catalog) {
	if cat == nil {
		cat = emotion.Default
	}
	c.catalog = cat
}

func (c *Crowd) add(x, y, speed float64) *Entity {
	e := &Entity{
		ID:       c.nextID,
		X:        x,
		Y:        y,
		Speed:    speed,
		Heading:  c.rng.Range(0, 2*math.Pi),
		Emotions: emotion.NewSet(emotion.EntityMax),
	}
	c.nextID++
	c.entities = append(c.entities, e)
	return e
}

// AddPerson adds an emotionless walker.
func (c *Crowd) AddPerson(x, y, speed float64) *Entity {
	return c.add(x, y, speed)
}

// AddSource adds a stationary entity that keeps regenerating kind k.
func (c *Crowd) AddSource(x, y float64, k emotion.Kind, intensity float64) *Entity {
	e := c.add(x, y, 0)
	e.Source = true
	e.Emotions.Add(k, intensity)
	return e
}

// Populate adds n people at random positions walking at speed.
func (c *Crowd) Populate(n int, speed float64) {
	for i := 0; i < n; i++ {
		c.AddPerson(c.rng.Range(0, c.width), c.rng.Range(0, c.height), speed)
	}
}

// Remove drops the entity with the given id.
func (c *Crowd) Remove(id uint32) bool {
	for i, e := range c.entities {
		if e.ID == id {
			c.entities = append(c.entities[:i], c.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Entities returns the live entity list. Callers must not modify the slice.
func (c *Crowd) Entities() []*Entity { return c.entities }

// Len returns the number of entities.
func (c *Crowd) Len() int { return len(c.entities) }

// Step moves every entity by dt seconds, then exchanges emotions between
// every pair within SpreadRange using the post-move intensities, and finally
// applies the interaction table to each entity.
func (c *Crowd) Step(dt float64) {
	for _, e := range c.entities {
		e.step(dt, c.width, c.height, c.rng, c.catalog)
	}

	snaps := make([][]emotion.Emotion, len(c.entities))
	for i, e := range c.entities {
		snaps[i] = e.Emotions.Emotions()
	}
	for i, from := range c.entities {
		if len(snaps[i]) == 0 {
			continue
		}
		for j, to := range c.entities {
			if i == j {
				continue
			}
			d := math.Hypot(to.X-from.X, to.Y-from.Y)
			spread(from, snaps[i], to, d, c.catalog)
		}
	}

	for _, e := range c.entities {
		e.Emotions.Interact()
		e.Emotions.Prune()
	}
}

// Occupants returns a snapshot of every entity for Grid.UpdateOccupants.
func (c *Crowd) Occupants() []Occupant {
	out := make([]Occupant, len(c.entities))
	for i, e := range c.entities {
		out[i] = e.Snapshot()
	}
	return out
}
