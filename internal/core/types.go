package core

import (
	"image/color"
	"sort"

	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

// Size describes the dimensions of a simulation grid in cells.
type Size struct {
	W int
	H int
}

// Sim defines the contract every front-end drives. Cells returns one display
// byte per cell, indexing the palette returned by Palette.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
	Palette() []color.RGBA
}

// Seeder accepts stimuli at cell coordinates.
type Seeder interface {
	SeedCell(kind emotion.Kind, x, y int) bool
}

// Controller exposes the grid-wide commands bound to the front-end keys.
type Controller interface {
	Clear()
	Randomize()
	ToggleMaze()
}

// Summarizer reports human-readable status lines for HUDs.
type Summarizer interface {
	Summary() []string
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
