package contagion

import "github.com/gfawcettpq/emotional-contagion/pkg/emotion"

// Cell is one grid position. Barrier cells are always dead and hold no
// emotions. Occupants lists the ids of entities whose last reported
// position falls inside the cell.
type Cell struct {
	Alive     bool
	Barrier   bool
	Emotions  emotion.Set
	Occupants []uint32
}

// Dominant returns the strongest emotion held by the cell.
func (c *Cell) Dominant() (emotion.Emotion, bool) { return c.Emotions.Dominant() }

// Clone returns a copy that shares no storage with c.
func (c *Cell) Clone() Cell {
	var out Cell
	copyCell(&out, c)
	return out
}

func copyCell(dst, src *Cell) {
	dst.Alive = src.Alive
	dst.Barrier = src.Barrier
	dst.Emotions.CopyFrom(&src.Emotions)
	dst.Occupants = append(dst.Occupants[:0], src.Occupants...)
}

func (c *Cell) reset() {
	c.Alive = false
	c.Emotions.Reset()
}
