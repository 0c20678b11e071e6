package core

import "time"

// MaxBurst bounds how many ticks a single Due call may report after a stall.
const MaxBurst = 4

// Pacer converts wall-clock time into a number of simulation ticks at a
// fixed rate.
type Pacer struct {
	interval time.Duration
	owed     time.Duration
	last     time.Time
	now      func() time.Time
}

// NewPacer returns a pacer for tps ticks per second. The first Due call
// reports one tick.
func NewPacer(tps int) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetTPS(tps)
	p.owed = p.interval
	return p
}

// SetTPS changes the rate; non-positive values mean 60.
func (p *Pacer) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	p.interval = time.Second / time.Duration(tps)
}

// Interval is the duration of one tick.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Due reports how many ticks have elapsed since the previous call, at most
// MaxBurst. Time beyond the burst is forgotten.
func (p *Pacer) Due() int {
	now := p.now()
	if !p.last.IsZero() {
		p.owed += now.Sub(p.last)
	}
	p.last = now
	n := int(p.owed / p.interval)
	if n > MaxBurst {
		n = MaxBurst
		p.owed = 0
		return n
	}
	p.owed -= time.Duration(n) * p.interval
	return n
}

// Hold discards owed time, e.g. while paused, so resuming does not burst.
func (p *Pacer) Hold() {
	p.owed = 0
	p.last = p.now()
}
