package contagion

// AddBarrier turns (x, y) into a barrier, killing the cell and dropping its
// emotions.
func (g *Grid) AddBarrier(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	c := &g.cur[g.index(x, y)]
	c.Barrier = true
	c.reset()
	return true
}

// RemoveBarrier turns a barrier back into an empty dead cell.
func (g *Grid) RemoveBarrier(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	c := &g.cur[g.index(x, y)]
	if !c.Barrier {
		return false
	}
	c.Barrier = false
	return true
}

// IsBarrier reports whether (x, y) is a barrier.
func (g *Grid) IsBarrier(x, y int) bool {
	return g.InBounds(x, y) && g.cur[g.index(x, y)].Barrier
}

// ClearBarriers removes every barrier.
func (g *Grid) ClearBarriers() {
	for i := range g.cur {
		g.cur[i].Barrier = false
	}
}

// BarrierMaze lays walls across the interior: a row every fourth line from
// y=2 with a gap wherever x is a multiple of 8, and a column every sixth
// line from x=2 with a gap wherever y is a multiple of 6. The outer two
// cells on each side stay open. It returns the number of barrier cells
// placed.
func (g *Grid) BarrierMaze() int {
	placed := 0
	for y := 2; y < g.h-2; y += 4 {
		for x := 2; x < g.w-2; x++ {
			if x%8 != 0 && !g.IsBarrier(x, y) {
				g.AddBarrier(x, y)
				placed++
			}
		}
	}
	for x := 2; x < g.w-2; x += 6 {
		for y := 2; y < g.h-2; y++ {
			if y%6 != 0 && !g.IsBarrier(x, y) {
				g.AddBarrier(x, y)
				placed++
			}
		}
	}
	return placed
}
