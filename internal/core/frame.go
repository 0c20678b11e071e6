package core

// Frame is the byte-per-cell image a Sim hands to renderers. Values index
// the Sim's palette.
type Frame struct {
	W, H int
	pix  []uint8
}

// NewFrame allocates a w by h frame; non-positive sizes become 1.
func NewFrame(w, h int) *Frame {
	w, h = max(w, 1), max(h, 1)
	return &Frame{W: w, H: h, pix: make([]uint8, w*h)}
}

// Pix is the row-major backing slice.
func (f *Frame) Pix() []uint8 { return f.pix }

// Set writes v at (x, y). Coordinates outside the frame are ignored.
func (f *Frame) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	f.pix[y*f.W+x] = v
}

// At returns the value at (x, y), or 0 outside the frame.
func (f *Frame) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return 0
	}
	return f.pix[y*f.W+x]
}

// Count returns how many values equal v.
func (f *Frame) Count(v uint8) int {
	n := 0
	for _, p := range f.pix {
		if p == v {
			n++
		}
	}
	return n
}
