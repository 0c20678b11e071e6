//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type crowdProvider interface {
	Grid() *engine.Grid
	Crowd() *engine.Crowd
}

// Overlay draws the wandering entities, their spread links and an optional
// intensity heat map on top of the grid.
type Overlay struct {
	sim   core.Sim
	scale int

	showEntities  bool
	showLinks     bool
	showIntensity bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for sim drawn at scale pixels per cell.
// Entities are shown by default.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale, showEntities: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		o.showEntities = !o.showEntities
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.showLinks = !o.showLinks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showIntensity = !o.showIntensity
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(crowdProvider)
	if !ok {
		return
	}
	g := provider.Grid()
	if o.showIntensity {
		o.drawIntensity(screen, g)
	}
	crowd := provider.Crowd()
	if crowd == nil || crowd.Len() == 0 {
		return
	}
	// world units to screen pixels
	k := float64(o.scale) / g.CellSize()
	if o.showLinks {
		o.drawLinks(screen, crowd, k)
	}
	if o.showEntities {
		o.drawEntities(screen, crowd, g.Catalog(), k)
	}
}

func (o *Overlay) drawEntities(screen *ebiten.Image, crowd *engine.Crowd, cat *emotion.Catalog, k float64) {
	size := math.Max(3, float64(o.scale)*0.8)
	for _, e := range crowd.Entities() {
		col := color.NRGBA{R: 216, G: 222, B: 233, A: 255}
		if mixed, ok := emotion.Mix(&e.Emotions, cat); ok {
			d, _ := e.Emotions.Dominant()
			col = emotion.Shade(mixed, d.Intensity/emotion.EntityMax)
		}
		x, y := e.X*k, e.Y*k
		if e.Source {
			o.drawPoint(screen, x, y, size+4, color.RGBA{R: 236, G: 239, B: 244, A: 200})
		}
		o.drawPoint(screen, x, y, size, toRGBA(col))
	}
}

func (o *Overlay) drawLinks(screen *ebiten.Image, crowd *engine.Crowd, k float64) {
	ents := crowd.Entities()
	for i, a := range ents {
		if a.Emotions.Empty() {
			continue
		}
		for _, b := range ents[i+1:] {
			d := math.Hypot(b.X-a.X, b.Y-a.Y)
			if d <= 0 || d > engine.SpreadRange {
				continue
			}
			alpha := uint8(math.Round(120 * (1 - d/engine.SpreadRange)))
			o.drawLine(screen, a.X*k, a.Y*k, b.X*k, b.Y*k, 1, color.RGBA{R: 136, G: 192, B: 208, A: alpha})
		}
	}
}

func (o *Overlay) drawIntensity(screen *ebiten.Image, g *engine.Grid) {
	w, h := g.Width(), g.Height()
	total := w * h
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != w || o.maskImg.Bounds().Dy() != h {
		o.maskImg = ebiten.NewImage(w, h)
		o.maskBuf = make([]byte, 4*total)
	}
	const maxAlpha = 150.0
	g.Visit(func(x, y int, c *engine.Cell) {
		base := (y*w + x) * 4
		v := clamp01(c.Emotions.Total() / emotion.CellMax)
		if v == 0 {
			clear(o.maskBuf[base : base+4])
			return
		}
		glow := 0.35 + 0.65*math.Sqrt(v)
		o.maskBuf[base+0] = scaleColorComponent(235, glow)
		o.maskBuf[base+1] = scaleColorComponent(203, glow)
		o.maskBuf[base+2] = scaleColorComponent(139, glow)
		o.maskBuf[base+3] = uint8(math.Round(maxAlpha * math.Pow(v, 0.75)))
	})
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func toRGBA(c color.NRGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
