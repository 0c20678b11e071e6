//go:build ebiten

package app

import (
	"log/slog"

	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/internal/render"
	"github.com/gfawcettpq/emotional-contagion/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width in pixels of the panel right of the grid.
const HUDWidth = 240

var keyCommands = map[ebiten.Key]Command{
	ebiten.KeySpace:  CmdPause,
	ebiten.KeyN:      CmdStep,
	ebiten.KeyR:      CmdRandomize,
	ebiten.KeyS:      CmdReset,
	ebiten.KeyC:      CmdClear,
	ebiten.KeyB:      CmdMaze,
	ebiten.KeyH:      CmdHelp,
	ebiten.KeyQ:      CmdQuit,
	ebiten.KeyEscape: CmdQuit,
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	scale   int
}

// New constructs a Game for sim drawn at scale pixels per cell.
func New(sim core.Sim, scale int, seed int64, legend []render.Legend, logger *slog.Logger) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	return &Game{
		session: NewSession(sim, seed, logger),
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, HUDWidth, legend),
		scale:   scale,
	}
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	for key, cmd := range keyCommands {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if !g.session.Apply(cmd) {
			return ebiten.Termination
		}
		if cmd == CmdHelp {
			g.hud.ToggleHelp()
		}
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.session.SelectDigit(i + 1)
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		size := g.session.Sim().Size()
		if x, y := mx/g.scale, my/g.scale; mx >= 0 && my >= 0 && x < size.W && y < size.H {
			g.session.Seed(x, y)
		}
	}

	g.overlay.Update()
	g.hud.Update(g.session.Sim().Size().W * g.scale)
	g.session.Advance()
	return nil
}

// Draw renders the grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	sim := g.session.Sim()
	g.painter.Blit(screen, sim.Cells(), sim.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Sim().Size()
	return s.W*g.scale + HUDWidth, s.H * g.scale
}
