package app

import (
	"log/slog"

	"github.com/gfawcettpq/emotional-contagion/internal/core"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
)

// Command is a front-end action bound to a key.
type Command int

const (
	CmdNone Command = iota
	CmdPause
	CmdStep
	CmdReset
	CmdClear
	CmdRandomize
	CmdMaze
	CmdHelp
	CmdQuit
)

// Session holds the interactive state shared by the GUI and terminal
// front-ends: pause, single stepping and the emotion selected for seeding.
type Session struct {
	sim      core.Sim
	seed     int64
	paused   bool
	stepOnce bool
	help     bool
	kind     emotion.Kind
	logger   *slog.Logger
}

// NewSession wraps sim. Joy is selected for seeding.
func NewSession(sim core.Sim, seed int64, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{sim: sim, seed: seed, kind: emotion.Joy, logger: logger}
}

// Sim returns the driven simulation.
func (s *Session) Sim() core.Sim { return s.sim }

// Paused reports whether automatic stepping is suspended.
func (s *Session) Paused() bool { return s.paused }

// HelpVisible reports whether the key reference should be drawn.
func (s *Session) HelpVisible() bool { return s.help }

// Kind returns the emotion deposited by Seed.
func (s *Session) Kind() emotion.Kind { return s.kind }

// Apply runs cmd. It returns false when the front-end should exit.
func (s *Session) Apply(cmd Command) bool {
	ctl, _ := s.sim.(core.Controller)
	switch cmd {
	case CmdPause:
		s.paused = !s.paused
		s.logger.Info("pause", "paused", s.paused)
	case CmdStep:
		s.stepOnce = true
	case CmdReset:
		s.sim.Reset(s.seed)
		s.stepOnce = false
	case CmdClear:
		if ctl != nil {
			ctl.Clear()
		}
	case CmdRandomize:
		if ctl != nil {
			ctl.Randomize()
		}
	case CmdMaze:
		if ctl != nil {
			ctl.ToggleMaze()
		}
	case CmdHelp:
		s.help = !s.help
	case CmdQuit:
		return false
	}
	return true
}

// SelectDigit picks the n-th built-in kind, counting from 1. Other values
// are ignored.
func (s *Session) SelectDigit(n int) bool {
	kinds := emotion.Builtin()
	if n < 1 || n > len(kinds) {
		return false
	}
	s.kind = kinds[n-1]
	s.logger.Info("select", "kind", s.kind)
	return true
}

// Seed deposits the selected kind at cell (x, y).
func (s *Session) Seed(x, y int) bool {
	seeder, ok := s.sim.(core.Seeder)
	if !ok {
		return false
	}
	return seeder.SeedCell(s.kind, x, y)
}

// Advance steps the sim when running or when a single step is pending. It
// reports whether a step happened.
func (s *Session) Advance() bool {
	if s.paused && !s.stepOnce {
		return false
	}
	s.sim.Step()
	s.stepOnce = false
	return true
}
