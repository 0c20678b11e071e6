package contagion

import (
	"slices"

	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

// Occupant is a snapshot of an entity for cell bookkeeping.
type Occupant struct {
	ID       uint32
	X, Y     float64
	Emotions []emotion.Emotion
}

type occupantInput struct {
	idx      int
	emotions []emotion.Emotion
}

// UpdateOccupants rebuilds every cell's occupant list from the given
// snapshots. Entities outside the grid are skipped. In contagion mode each
// recorded occupant adds Params.OccupantShare of its emotions to its cell on
// every following tick until the next call.
func (g *Grid) UpdateOccupants(occupants []Occupant) {
	for i := range g.cur {
		g.cur[i].Occupants = g.cur[i].Occupants[:0]
	}
	g.occupants = g.occupants[:0]
	for _, o := range occupants {
		x, y, ok := g.WorldToCell(o.X, o.Y)
		if !ok {
			continue
		}
		idx := g.index(x, y)
		c := &g.cur[idx]
		if !slices.Contains(c.Occupants, o.ID) {
			c.Occupants = append(c.Occupants, o.ID)
		}
		if len(o.Emotions) > 0 {
			g.occupants = append(g.occupants, occupantInput{idx: idx, emotions: slices.Clone(o.Emotions)})
		}
	}
}

// OccupantsAt returns the ids recorded in cell (x, y).
func (g *Grid) OccupantsAt(x, y int) []uint32 {
	if !g.InBounds(x, y) {
		return nil
	}
	return slices.Clone(g.cur[g.index(x, y)].Occupants)
}

func (g *Grid) applyOccupants() {
	share := g.params.OccupantShare
	if share <= 0 {
		return
	}
	for _, in := range g.occupants {
		c := &g.nxt[in.idx]
		if c.Barrier {
			continue
		}
		for _, e := range in.emotions {
			c.Emotions.Add(e.Kind, e.Intensity*share)
		}
		c.Emotions.Prune()
	}
}
