// Package contagion implements the emotion contagion cellular automaton: a
// dense grid of cells carrying liveness and weighted emotions, advanced one
// synchronous tick at a time.
package contagion

import (
	"errors"
	"fmt"
	"math"

	"github.com/gfawcettpq/emotional-contagion/pkg/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

// ErrInvalidSize is returned when a grid is built with a non-positive width,
// height or cell size.
var ErrInvalidSize = errors.New("contagion: grid dimensions must be positive")

// Grid owns the cell buffers and the update algorithm. It is not safe for
// concurrent use; callers drive it from a single loop and read it between
// ticks.
type Grid struct {
	w, h     int
	cellSize float64

	mode    Mode
	params  Params
	catalog *emotion.Catalog
	rng     core.Source

	cur []Cell
	nxt []Cell

	occupants []occupantInput
	scratch   emotion.Set

	tick  uint64
	stats Stats
}

// New returns an empty grid of w x h cells, each cellSize world units wide,
// with default parameters in contagion mode. A nil rng is replaced by a
// generator seeded from the default config.
func New(w, h int, cellSize float64, rng core.Source) (*Grid, error) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.CellSize = w, h, cellSize
	return NewWithConfig(cfg, rng)
}

// NewWithConfig returns an empty grid built from cfg.
func NewWithConfig(cfg Config, rng core.Source) (*Grid, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if !(cfg.CellSize > 0) || math.IsInf(cfg.CellSize, 0) {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidSize, cfg.CellSize)
	}
	if rng == nil {
		rng = core.NewRNG(cfg.Seed)
	}
	n := cfg.Width * cfg.Height
	return &Grid{
		w:        cfg.Width,
		h:        cfg.Height,
		cellSize: cfg.CellSize,
		mode:     cfg.Mode,
		params:   cfg.Params,
		catalog:  emotion.Default,
		rng:      rng,
		cur:      make([]Cell, n),
		nxt:      make([]Cell, n),
		scratch:  emotion.NewSet(math.Inf(1)),
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// CellSize returns the world-unit width of a cell.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Tick returns the number of updates since construction or the last Clear.
func (g *Grid) Tick() uint64 { return g.tick }

// Stats returns the statistics of the most recent update.
func (g *Grid) Stats() Stats { return g.stats }

// Mode returns the active update mode.
func (g *Grid) Mode() Mode { return g.mode }

// SetMode switches the update rules. Switching to Conway mode trims every
// cell down to its dominant emotion.
func (g *Grid) SetMode(m Mode) {
	g.mode = m
	if m != ModeConway {
		return
	}
	for i := range g.cur {
		c := &g.cur[i]
		d, ok := c.Dominant()
		c.Emotions.Reset()
		if ok {
			c.Emotions.Put(d.Kind, d.Intensity)
		}
	}
}

// Params returns the active parameters.
func (g *Grid) Params() Params { return g.params }

// SetParams replaces the active parameters.
func (g *Grid) SetParams(p Params) { g.params = p }

// Catalog returns the catalog consulted for per-kind rules.
func (g *Grid) Catalog() *emotion.Catalog { return g.catalog }

// SetCatalog replaces the catalog. A nil catalog restores emotion.Default.
func (g *Grid) SetCatalog(c *emotion.Catalog) {
	if c == nil {
		c = emotion.Default
	}
	g.catalog = c
}

// SetSource replaces the random source.
func (g *Grid) SetSource(rng core.Source) {
	if rng != nil {
		g.rng = rng
	}
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *Grid) index(x, y int) int { return y*g.w + x }

// CellAt returns a copy of the cell at (x, y).
func (g *Grid) CellAt(x, y int) (Cell, bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return g.cur[g.index(x, y)].Clone(), true
}

// Visit calls fn for every cell in row-major order. The cell must not be
// modified or retained.
func (g *Grid) Visit(fn func(x, y int, c *Cell)) {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			fn(x, y, &g.cur[g.index(x, y)])
		}
	}
}

// WorldToCell converts world coordinates to a cell position. Negative,
// non-finite and out-of-range coordinates report false.
func (g *Grid) WorldToCell(wx, wy float64) (int, int, bool) {
	if math.IsNaN(wx) || math.IsNaN(wy) || wx < 0 || wy < 0 {
		return 0, 0, false
	}
	fx, fy := math.Floor(wx/g.cellSize), math.Floor(wy/g.cellSize)
	if fx >= float64(g.w) || fy >= float64(g.h) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// CellCenter returns the world position of the centre of cell (x, y).
func (g *Grid) CellCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * g.cellSize, (float64(y) + 0.5) * g.cellSize
}

// WorldSize returns the world-unit extent of the grid.
func (g *Grid) WorldSize() (float64, float64) {
	return float64(g.w) * g.cellSize, float64(g.h) * g.cellSize
}

// SetAlive forces the liveness of a non-barrier cell.
func (g *Grid) SetAlive(x, y int, alive bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	c := &g.cur[g.index(x, y)]
	if c.Barrier {
		return false
	}
	c.Alive = alive
	return true
}

// Clear kills every cell, drops all emotions and resets the tick counter.
// Barriers stay in place.
func (g *Grid) Clear() {
	for i := range g.cur {
		g.cur[i].reset()
	}
	g.tick = 0
	g.stats = Stats{}
}

// Randomize clears the grid, brings each cell to life with probability
// Params.AliveChance, then deposits Params.RandomSeeds seeds of random
// built-in kinds at uniformly random world positions.
func (g *Grid) Randomize() {
	g.Clear()
	for i := range g.cur {
		c := &g.cur[i]
		if c.Barrier {
			continue
		}
		c.Alive = g.rng.Bool(g.params.AliveChance)
	}
	kinds := emotion.Builtin()
	ww, wh := g.WorldSize()
	for i := 0; i < g.params.RandomSeeds; i++ {
		k := kinds[g.rng.IntN(len(kinds))]
		g.SeedEmotion(k, g.rng.Range(0, ww), g.rng.Range(0, wh))
	}
}

// TotalIntensity sums every emotion held by every cell.
func (g *Grid) TotalIntensity() float64 {
	total := 0.0
	for i := range g.cur {
		total += g.cur[i].Emotions.Total()
	}
	return total
}

// ActiveCellCount counts cells whose summed intensity exceeds
// emotion.DeadThreshold, alive or not.
func (g *Grid) ActiveCellCount() int {
	n := 0
	for i := range g.cur {
		if g.cur[i].Emotions.Total() > emotion.DeadThreshold {
			n++
		}
	}
	return n
}
