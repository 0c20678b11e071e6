package contagion

import (
	"image/color"

	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"
)

// Display values written to the Cells buffer. Emotional cells use
// ValueEmotion + slot*Buckets + bucket, where slot is the dominant kind's
// Index and bucket its intensity quantized into Buckets steps.
const (
	ValueDead    uint8 = 0
	ValueBarrier uint8 = 1
	ValueAlive   uint8 = 2
	ValueEmotion uint8 = 3

	Buckets = 8
	slots   = 10
)

var (
	colorBackground = color.NRGBA{R: 46, G: 52, B: 64, A: 255}  // #2e3440
	colorBarrier    = color.NRGBA{R: 76, G: 86, B: 106, A: 255} // #4c566a
	colorAlive      = color.NRGBA{R: 67, G: 76, B: 94, A: 255}  // #434c5e
)

// Encode maps a cell to its display value. Dead cells render as background
// even when they still hold a residual emotion.
func Encode(c *engine.Cell, threshold float64) uint8 {
	switch {
	case c.Barrier:
		return ValueBarrier
	case !c.Alive:
		return ValueDead
	}
	d, ok := c.Dominant()
	if !ok || d.Intensity <= threshold {
		return ValueAlive
	}
	return ValueEmotion + uint8(d.Kind.Index()*Buckets+bucket(d.Intensity))
}

// Decode reports the kind slot and intensity bucket of an emotional display
// value.
func Decode(v uint8) (slot, b int, ok bool) {
	if v < ValueEmotion {
		return 0, 0, false
	}
	i := int(v - ValueEmotion)
	return i / Buckets, i % Buckets, true
}

func bucket(intensity float64) int {
	b := int(intensity * Buckets)
	if b >= Buckets {
		b = Buckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// BuildPalette returns the display palette for cat.
func BuildPalette(cat *emotion.Catalog) []color.RGBA {
	palette := make([]color.RGBA, int(ValueEmotion)+slots*Buckets)
	palette[ValueDead] = toRGBA(colorBackground)
	palette[ValueBarrier] = toRGBA(colorBarrier)
	palette[ValueAlive] = toRGBA(colorAlive)
	kinds := emotion.Builtin()
	for slot := 0; slot < slots; slot++ {
		var base color.NRGBA
		if slot < len(kinds) {
			base = cat.Lookup(kinds[slot]).Color
		} else {
			base = cat.Lookup(emotion.Kind("custom")).Color
		}
		for b := 0; b < Buckets; b++ {
			level := (float64(b) + 0.5) / Buckets
			palette[int(ValueEmotion)+slot*Buckets+b] = toRGBA(blendColors(colorAlive, base, 0.3+0.7*level))
		}
	}
	return palette
}

// Glyph returns the terminal rune for a display value.
func Glyph(v uint8) rune {
	switch v {
	case ValueDead:
		return ' '
	case ValueBarrier:
		return '#'
	case ValueAlive:
		return '·'
	}
	if _, b, ok := Decode(v); ok && b < Buckets/2 {
		return '▒'
	}
	return '█'
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}
