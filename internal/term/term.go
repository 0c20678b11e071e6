// Package term drives a simulation in a terminal through tcell. Each cell is
// two columns wide; status lines are printed under the grid.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gfawcettpq/emotional-contagion/internal/app"
	"github.com/gfawcettpq/emotional-contagion/internal/core"

	"github.com/gdamore/tcell/v2"
)

// frame is the redraw interval of the loop.
const frame = time.Second / 30

var runeCommands = map[rune]app.Command{
	' ': app.CmdPause,
	'n': app.CmdStep,
	'r': app.CmdRandomize,
	's': app.CmdReset,
	'c': app.CmdClear,
	'b': app.CmdMaze,
	'h': app.CmdHelp,
	'q': app.CmdQuit,
}

var helpLines = []string{
	"space pause  n step  r randomize  s reset  c clear  b maze",
	"1-9 select emotion  click seed  h help  q quit",
}

// Terminal renders a session onto a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	session *app.Session
	glyph   func(uint8) rune
	styles  []tcell.Style
	tps     int
}

// New wraps screen, which must already be initialised. glyph maps display
// values to runes; nil draws a full block for every non-zero value.
func New(screen tcell.Screen, session *app.Session, glyph func(uint8) rune, tps int) *Terminal {
	if glyph == nil {
		glyph = func(v uint8) rune {
			if v == 0 {
				return ' '
			}
			return '█'
		}
	}
	t := &Terminal{screen: screen, session: session, glyph: glyph, tps: tps}
	t.styles = buildStyles(session.Sim())
	screen.EnableMouse()
	return t
}

func buildStyles(sim core.Sim) []tcell.Style {
	palette := sim.Palette()
	bg := tcell.ColorBlack
	if len(palette) > 0 {
		bg = tcell.NewRGBColor(int32(palette[0].R), int32(palette[0].G), int32(palette[0].B))
	}
	styles := make([]tcell.Style, len(palette))
	for i, c := range palette {
		fg := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
		styles[i] = tcell.StyleDefault.Foreground(fg).Background(bg)
	}
	return styles
}

func (t *Terminal) style(v uint8) tcell.Style {
	if int(v) < len(t.styles) {
		return t.styles[v]
	}
	return tcell.StyleDefault
}

// Draw paints the grid and status lines and shows the screen.
func (t *Terminal) Draw() {
	sim := t.session.Sim()
	size := sim.Size()
	cells := sim.Cells()
	t.screen.Clear()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			v := cells[y*size.W+x]
			r, st := t.glyph(v), t.style(v)
			t.screen.SetContent(2*x, y, r, nil, st)
			t.screen.SetContent(2*x+1, y, r, nil, st)
		}
	}
	row := size.H
	lines := []string{fmt.Sprintf("seeding %s", t.session.Kind().Name())}
	if t.session.Paused() {
		lines[0] += "  [paused]"
	}
	if s, ok := sim.(core.Summarizer); ok {
		lines = append(lines, s.Summary()...)
	}
	if t.session.HelpVisible() {
		lines = append(lines, helpLines...)
	}
	for _, line := range lines {
		t.print(0, row, line)
		row++
	}
	t.screen.Show()
}

func (t *Terminal) print(x, y int, s string) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

// Handle applies one input event. It returns false when the loop should end.
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			r := ev.Rune()
			if r >= '1' && r <= '9' {
				t.session.SelectDigit(int(r - '0'))
				return true
			}
			if cmd, ok := runeCommands[r]; ok {
				return t.session.Apply(cmd)
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			mx, my := ev.Position()
			t.session.Seed(mx/2, my)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// Run polls input and steps the session at the configured rate until ctx is
// done or a quit key is pressed.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go t.screen.ChannelEvents(events, quit)

	pace := core.NewPacer(t.tps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.Handle(ev) {
				return nil
			}
			t.Draw()
		case <-ticker.C:
			if t.session.Paused() {
				pace.Hold()
				t.session.Advance()
			} else {
				for n := pace.Due(); n > 0; n-- {
					t.session.Advance()
				}
			}
			t.Draw()
		}
	}
}
