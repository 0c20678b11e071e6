package render

import (
	"image/color"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}, {B: 3, A: 128}}
	cells := []uint8{0, 2, 9}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)
	want := []byte{1, 0, 0, 255, 0, 0, 3, 128, 0, 0, 3, 128}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d: expected %d, got %d (%v)", i, want[i], buf[i], buf)
		}
	}
}

func TestFillPaletteRGBAEmptyPalette(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{1, 2}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not cleared: %v", i, buf)
		}
	}
}

func TestLegendFor(t *testing.T) {
	palette := make([]color.RGBA, 3+2*4)
	for i := range palette {
		palette[i] = color.RGBA{R: uint8(i)}
	}
	got := LegendFor([]string{"Joy", "Sadness", "Anger"}, palette, 3, 4)
	if len(got) != 2 {
		t.Fatalf("expected legend to stop at the palette end, got %d entries", len(got))
	}
	if got[0].Color.R != 6 || got[1].Color.R != 10 || got[1].Label != "Sadness" {
		t.Fatalf("unexpected legend %+v", got)
	}
}
