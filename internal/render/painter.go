//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a display buffer into an ebiten image and scales it
// onto the screen.
type GridPainter struct {
	img *ebiten.Image
	buf []byte
	w   int
	h   int
}

// NewGridPainter allocates a painter for a w x h grid.
func NewGridPainter(w, h int) *GridPainter {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &GridPainter{
		img: ebiten.NewImage(w, h),
		buf: make([]byte, 4*w*h),
		w:   w,
		h:   h,
	}
}

// Blit draws cells through palette onto screen, scaling each cell to
// scale x scale pixels.
func (p *GridPainter) Blit(screen *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != p.w*p.h {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	fillPaletteRGBA(p.buf, cells, palette)
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
