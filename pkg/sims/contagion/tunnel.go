package contagion

// tunnel runs at most one tunnelling event with probability
// Params.TunnelChance: random probes look for a live cell whose dominant
// emotion exceeds Params.TunnelThreshold, and a random non-barrier target
// cell is overwritten with that kind at Params.TunnelRetain of its intensity.
// A probe that lands on a barrier or on its own source moves on to the next
// attempt.
func (g *Grid) tunnel(st *Stats) {
	p := g.params
	if p.TunnelChance <= 0 || !g.rng.Bool(p.TunnelChance) {
		return
	}
	n := len(g.cur)
	for attempt := 0; attempt < p.TunnelAttempts; attempt++ {
		src := &g.cur[g.rng.IntN(n)]
		if !src.Alive {
			continue
		}
		d, ok := src.Dominant()
		if !ok || d.Intensity <= p.TunnelThreshold {
			continue
		}
		dst := &g.cur[g.rng.IntN(n)]
		if dst.Barrier || dst == src {
			continue
		}
		dst.Alive = true
		dst.Emotions.Reset()
		dst.Emotions.Put(d.Kind, d.Intensity*p.TunnelRetain)
		st.Tunnels++
		return
	}
}
