package emotion

import "image/color"

// Mix returns the intensity-weighted colour of the set using cat for kind
// colours. The alpha channel tracks the mean intensity, floored at 0.1. The
// boolean is false for an empty set.
func Mix(s *Set, cat *Catalog) (color.NRGBA, bool) {
	var r, g, b, total float64
	s.Each(func(e Emotion) {
		c := cat.Lookup(e.Kind).Color
		r += float64(c.R) * e.Intensity
		g += float64(c.G) * e.Intensity
		b += float64(c.B) * e.Intensity
		total += e.Intensity
	})
	if total <= 0 {
		return color.NRGBA{}, false
	}
	alpha := clamp(total/float64(s.Len()), 0.1, 1)
	return color.NRGBA{
		R: uint8(r/total + 0.5),
		G: uint8(g/total + 0.5),
		B: uint8(b/total + 0.5),
		A: uint8(alpha*255 + 0.5),
	}, true
}

// Shade scales c towards black by intensity: brightness runs from 0.3 at
// zero intensity to 1.0 at full intensity.
func Shade(c color.NRGBA, intensity float64) color.NRGBA {
	brightness := 0.3 + clamp(intensity, 0, 1)*0.7
	return color.NRGBA{
		R: uint8(float64(c.R)*brightness + 0.5),
		G: uint8(float64(c.G)*brightness + 0.5),
		B: uint8(float64(c.B)*brightness + 0.5),
		A: c.A,
	}
}
