package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gfawcettpq/emotional-contagion/internal/app"
	"github.com/gfawcettpq/emotional-contagion/pkg/emotion"
	engine "github.com/gfawcettpq/emotional-contagion/pkg/sims/contagion"
)

// Message types.
const (
	TypeStats     = "stats"
	TypeFrame     = "frame"
	TypeSeed      = "seed"
	TypePause     = "pause"
	TypeStep      = "step"
	TypeReset     = "reset"
	TypeClear     = "clear"
	TypeRandomize = "randomize"
	TypeMaze      = "maze"
)

const sender = "server"

// Frame carries the display buffer. Cells is base64 encoded on the wire.
type Frame struct {
	Tick   uint64  `json:"tick"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Cells  []uint8 `json:"cells"`
}

// Stats is the per-tick summary sent to clients.
type Stats struct {
	Tick           uint64             `json:"tick"`
	Alive          int                `json:"alive"`
	Emotional      int                `json:"emotional"`
	Births         int                `json:"births"`
	Deaths         int                `json:"deaths"`
	Spreads        int                `json:"spreads"`
	Tunnels        int                `json:"tunnels"`
	TotalIntensity float64            `json:"total_intensity"`
	Kinds          map[string]float64 `json:"kinds"`
}

// SeedCommand is the payload of a "seed" message. X and Y are world
// coordinates.
type SeedCommand struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// WorldSeeder accepts stimuli at world coordinates.
type WorldSeeder interface {
	SeedWorld(kind emotion.Kind, wx, wy float64) bool
}

// StatsSource is implemented by sims that expose grid statistics.
type StatsSource interface {
	Stats() engine.Stats
}

var commands = map[string]app.Command{
	TypePause:     app.CmdPause,
	TypeStep:      app.CmdStep,
	TypeReset:     app.CmdReset,
	TypeClear:     app.CmdClear,
	TypeRandomize: app.CmdRandomize,
	TypeMaze:      app.CmdMaze,
}

// Driver steps a session at a fixed rate, publishing each tick and applying
// queued client commands between ticks.
type Driver struct {
	hub     *Hub
	session *app.Session
	tps     int
	frames  bool
	logger  *slog.Logger
}

// NewDriver returns a driver publishing to hub. frames enables the display
// buffer messages in addition to stats.
func NewDriver(hub *Hub, session *app.Session, tps int, frames bool, logger *slog.Logger) *Driver {
	if tps <= 0 {
		tps = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{hub: hub, session: session, tps: tps, frames: frames, logger: logger}
}

// Apply executes one client message.
func (d *Driver) Apply(in Inbound) error {
	if in.Type == TypeSeed {
		var cmd SeedCommand
		if err := json.Unmarshal(in.Payload, &cmd); err != nil {
			return fmt.Errorf("decode seed from %q: %w", in.Sender, err)
		}
		seeder, ok := d.session.Sim().(WorldSeeder)
		if !ok {
			return fmt.Errorf("sim %s does not accept seeds", d.session.Sim().Name())
		}
		if !seeder.SeedWorld(emotion.Custom(cmd.Kind), cmd.X, cmd.Y) {
			return fmt.Errorf("seed %s at (%g,%g) rejected", cmd.Kind, cmd.X, cmd.Y)
		}
		return nil
	}
	cmd, ok := commands[in.Type]
	if !ok {
		return fmt.Errorf("unknown message type %q", in.Type)
	}
	d.session.Apply(cmd)
	return nil
}

// Tick advances the session and publishes the result. Nothing is published
// while paused.
func (d *Driver) Tick() error {
	if !d.session.Advance() {
		return nil
	}
	return d.publish()
}

func (d *Driver) publish() error {
	sim := d.session.Sim()
	if src, ok := sim.(StatsSource); ok {
		if err := d.hub.Publish(Message{Type: TypeStats, Payload: statsPayload(src.Stats()), Sender: sender}); err != nil {
			return err
		}
	}
	if d.frames {
		size := sim.Size()
		var tick uint64
		if src, ok := sim.(StatsSource); ok {
			tick = src.Stats().Tick
		}
		frame := Frame{Tick: tick, Width: size.W, Height: size.H, Cells: sim.Cells()}
		return d.hub.Publish(Message{Type: TypeFrame, Payload: frame, Sender: sender})
	}
	return nil
}

func statsPayload(st engine.Stats) Stats {
	kinds := make(map[string]float64, len(st.KindTotals))
	for k, v := range st.KindTotals {
		kinds[string(k)] = v
	}
	return Stats{
		Tick:           st.Tick,
		Alive:          st.AliveCount,
		Emotional:      st.EmotionCount,
		Births:         st.Births,
		Deaths:         st.Deaths,
		Spreads:        st.EmotionSpreads,
		Tunnels:        st.Tunnels,
		TotalIntensity: st.TotalIntensity,
		Kinds:          kinds,
	}
}

// Run loops until ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(d.tps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-d.hub.Commands():
			if err := d.Apply(in); err != nil {
				d.logger.Warn("stream command rejected", "type", in.Type, "err", err)
			}
		case <-ticker.C:
			if err := d.Tick(); err != nil {
				return fmt.Errorf("publish tick: %w", err)
			}
		}
	}
}
