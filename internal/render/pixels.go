// Package render converts display values into pixels for the GUI front-end.
package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values
// past the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Legend pairs a palette entry with a label for HUD swatches.
type Legend struct {
	Label string
	Color color.RGBA
}

// LegendFor picks the brightest shade of each labelled palette slot. first is
// the index of the first shade of slot 0 and stride the number of shades per
// slot.
func LegendFor(labels []string, palette []color.RGBA, first, stride int) []Legend {
	out := make([]Legend, 0, len(labels))
	for i, label := range labels {
		idx := first + i*stride + stride - 1
		if idx < 0 || idx >= len(palette) {
			break
		}
		out = append(out, Legend{Label: label, Color: palette[idx]})
	}
	return out
}
