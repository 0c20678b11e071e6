package app

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-sim", "conway", "-w", "20", "-h", "15", "-seed", "7", "-maze", "-v"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Sim != "conway" || cfg.Width != 20 || cfg.Height != 15 || cfg.Seed != 7 || !cfg.Maze || !cfg.Verbose {
		t.Fatalf("unexpected config %+v", cfg)
	}
	m := cfg.SimConfig()
	if m["w"] != "20" || m["h"] != "15" || m["seed"] != "7" || m["maze"] != "true" {
		t.Fatalf("unexpected sim config %v", m)
	}
}

func TestSimConfigGuardsZeroScale(t *testing.T) {
	cfg := NewConfig()
	cfg.Scale = 0
	cfg.TPS = 0
	m := cfg.SimConfig()
	if m["cell"] != "1" || m["tps"] != "1" {
		t.Fatalf("expected floors of 1, got %v", m)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record leaked at info level: %q", buf.String())
	}
	NewLogger(&buf, true).Debug("shown", "tick", 3)
	if !strings.Contains(buf.String(), "msg=shown tick=3") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
