package app

import (
	"image/color"
	"io"
	"log/slog"
	"testing"

	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

type fakeSim struct {
	steps, resets  int
	cleared, mazes int
	randomized     int
	lastSeed       int64
	seeds          []emotion.Kind
}

func (f *fakeSim) Name() string { return "fake" }
func (f *fakeSim) Size() core.Size { return core.Size{W: 4, H: 4} }
func (f *fakeSim) Reset(seed int64) { f.resets++; f.lastSeed = seed }
func (f *fakeSim) Step() { f.steps++ }
func (f *fakeSim) Cells() []uint8 { return make([]uint8, 16) }
func (f *fakeSim) Palette() []color.RGBA { return nil }
func (f *fakeSim) Clear() { f.cleared++ }
func (f *fakeSim) Randomize() { f.randomized++ }
func (f *fakeSim) ToggleMaze() { f.mazes++ }
func (f *fakeSim) SeedCell(k emotion.Kind, x, y int) bool {
	f.seeds = append(f.seeds, k)
	return x >= 0 && y >= 0 && x < 4 && y < 4
}

func newSession() (*Session, *fakeSim) {
	sim := &fakeSim{}
	return NewSession(sim, 9, slog.New(slog.NewTextHandler(io.Discard, nil))), sim
}

func TestSessionPauseAndStep(t *testing.T) {
	s, sim := newSession()
	if !s.Advance() || sim.steps != 1 {
		t.Fatal("running session should step")
	}
	s.Apply(CmdPause)
	if s.Advance() || sim.steps != 1 {
		t.Fatal("paused session stepped")
	}
	s.Apply(CmdStep)
	if !s.Advance() || sim.steps != 2 {
		t.Fatal("single step not taken")
	}
	if s.Advance() {
		t.Fatal("single step repeated")
	}
}

func TestSessionCommands(t *testing.T) {
	s, sim := newSession()
	s.Apply(CmdReset)
	s.Apply(CmdClear)
	s.Apply(CmdMaze)
	s.Apply(CmdRandomize)
	s.Apply(CmdHelp)
	if sim.resets != 1 || sim.lastSeed != 9 || sim.cleared != 1 || sim.mazes != 1 || sim.randomized != 1 {
		t.Fatalf("commands not forwarded: %+v", sim)
	}
	if !s.HelpVisible() {
		t.Fatal("help not toggled")
	}
	if s.Apply(CmdQuit) {
		t.Fatal("quit should end the session")
	}
}

func TestSessionSeedsSelectedKind(t *testing.T) {
	s, sim := newSession()
	if !s.SelectDigit(3) || s.Kind() != emotion.Anger {
		t.Fatalf("digit 3 should select anger, got %s", s.Kind())
	}
	if s.SelectDigit(0) || s.SelectDigit(10) {
		t.Fatal("out-of-range digits accepted")
	}
	if !s.Seed(1, 1) || s.Seed(8, 1) {
		t.Fatal("seed bounds not respected")
	}
	if len(sim.seeds) != 2 || sim.seeds[0] != emotion.Anger {
		t.Fatalf("unexpected seeds %v", sim.seeds)
	}
}
