package contagion

import "github.com/gfawcettpq/emotional-contagion/pkg/emotion"

// SeedEmotion deposits kind k at world position (wx, wy) with
// Params.SeedIntensity and brings the target cell to life. Conway mode
// replaces the cell's emotion, contagion mode merges into it. Positions
// outside the grid and barrier cells are ignored.
func (g *Grid) SeedEmotion(k emotion.Kind, wx, wy float64) bool {
	x, y, ok := g.WorldToCell(wx, wy)
	if !ok {
		return false
	}
	intensity := g.params.SeedIntensity
	if intensity <= 0 {
		intensity = emotion.CellMax
	}
	return g.Seed(k, x, y, intensity)
}

// Seed deposits kind k at cell (x, y) with the given intensity.
func (g *Grid) Seed(k emotion.Kind, x, y int, intensity float64) bool {
	if k == "" || !g.InBounds(x, y) {
		return false
	}
	c := &g.cur[g.index(x, y)]
	if c.Barrier {
		return false
	}
	if g.mode == ModeConway {
		c.Emotions.Reset()
		c.Emotions.Put(k, intensity)
	} else {
		c.Emotions.Add(k, intensity)
	}
	c.Alive = true
	return true
}
