package contagion

import (
	"math"

	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

// Update advances the grid one tick and returns its statistics. Every cell
// of the next state is computed from the previous state alone and the
// buffers are swapped once the scan completes, so readers between ticks
// never see a partially updated grid.
func (g *Grid) Update() Stats {
	var st Stats
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			i := g.index(x, y)
			src, dst := &g.cur[i], &g.nxt[i]
			copyCell(dst, src)
			if src.Barrier {
				dst.reset()
				continue
			}

			n := g.liveNeighbors(x, y)
			var alive bool
			if g.mode == ModeConway {
				alive = g.stepConway(x, y, n, src, dst, &st)
			} else {
				alive = g.stepContagion(x, y, n, src, dst, &st)
			}
			switch {
			case src.Alive && !alive:
				st.Deaths++
			case !src.Alive && alive:
				st.Births++
			}
			dst.Alive = alive
			dst.Emotions.Prune()
		}
	}
	if g.mode == ModeContagion {
		g.applyOccupants()
	}
	g.cur, g.nxt = g.nxt, g.cur

	g.tunnel(&st)
	g.tick++
	st.Tick = g.tick
	g.collect(&st)
	g.stats = st
	return st
}

func (g *Grid) liveNeighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			if g.cur[g.index(nx, ny)].Alive {
				n++
			}
		}
	}
	return n
}

// neighbourDominant sums, per kind, the significant emotions of the live
// Moore neighbours of (x, y) and returns the kind with the largest sum.
func (g *Grid) neighbourDominant(x, y int) (emotion.Emotion, bool) {
	g.scratch.Reset()
	threshold := g.params.Threshold
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			c := &g.cur[g.index(nx, ny)]
			if !c.Alive || c.Barrier {
				continue
			}
			c.Emotions.Each(func(e emotion.Emotion) {
				if e.Intensity > threshold {
					g.scratch.Add(e.Kind, e.Intensity)
				}
			})
		}
	}
	return g.scratch.Dominant()
}

func (g *Grid) stepConway(x, y, n int, src, dst *Cell, st *Stats) bool {
	var alive bool
	if src.Alive {
		alive = emotion.ClassicRule.Survives(n)
	} else {
		alive = emotion.ClassicRule.Born(n)
	}

	own, ok := src.Dominant()
	kind := own.Kind
	intensity := own.Intensity * g.params.DecayFactor
	if alive {
		if d, found := g.neighbourDominant(x, y); found {
			kind = d.Kind
			intensity = math.Min(emotion.CellMax, intensity+d.Intensity*g.params.SpreadFactor)
			ok = true
			st.EmotionSpreads++
		}
	}

	dst.Emotions.Reset()
	if ok {
		dst.Emotions.Put(kind, intensity)
	}
	return alive
}

func (g *Grid) stepContagion(x, y, n int, src, dst *Cell, st *Stats) bool {
	rule := emotion.ClassicRule
	var alive bool
	if src.Alive {
		if d, ok := src.Dominant(); ok {
			rule = g.catalog.Rule(d.Kind)
		}
		alive = rule.Survives(n)
	} else {
		if d, ok := g.neighbourDominant(x, y); ok {
			rule = g.catalog.Rule(d.Kind)
		}
		alive = rule.Born(n)
	}

	dst.Emotions.Scale(g.retention)
	if alive && g.diffuseInto(x, y, dst) {
		st.EmotionSpreads++
	}
	dst.Emotions.Interact()
	return alive
}

func (g *Grid) retention(k emotion.Kind) float64 {
	return 1 - g.catalog.Rule(k).DecayRate
}

// diffuseInto pulls distance-weighted contributions from every non-barrier
// sender within Params.Radius of (x, y) into dst, whether or not the sender
// is alive. It reports whether anything arrived.
func (g *Grid) diffuseInto(x, y int, dst *Cell) bool {
	r := g.params.Radius
	if r < 1 {
		r = 1
	}
	threshold := g.params.Threshold
	received := false
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			sx, sy := x+dx, y+dy
			if !g.InBounds(sx, sy) {
				continue
			}
			s := &g.cur[g.index(sx, sy)]
			if s.Barrier || g.blocked(x, y, dx, dy) {
				continue
			}
			d := math.Hypot(float64(dx), float64(dy))
			s.Emotions.Each(func(e emotion.Emotion) {
				if e.Intensity <= threshold {
					return
				}
				spec := g.catalog.Lookup(e.Kind)
				amount := emotion.SpreadAmount(e.Intensity, spec.SpreadRate, d)
				if amount <= emotion.DeadThreshold {
					return
				}
				if g.params.Stochastic && !g.rng.Bool(spec.Rule.TransmissionRate) {
					return
				}
				dst.Emotions.Add(e.Kind, amount)
				received = true
			})
		}
	}
	return received
}

// blocked reports whether a barrier lies strictly between (x, y) and
// (x+dx, y+dy).
func (g *Grid) blocked(x, y, dx, dy int) bool {
	steps := max(abs(dx), abs(dy))
	for s := 1; s < steps; s++ {
		t := float64(s) / float64(steps)
		cx := x + int(math.Round(float64(dx)*t))
		cy := y + int(math.Round(float64(dy)*t))
		if g.cur[g.index(cx, cy)].Barrier {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
