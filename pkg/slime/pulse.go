package slime

import "time"

// DefaultPulsePeriod is one full shrink and expand cycle.
const DefaultPulsePeriod = 10 * time.Second

// Pulse alternates between a resting half and an expanding half.
type Pulse struct {
	Period  time.Duration
	elapsed time.Duration
}

// NewPulse returns a pulse with the given period, or the default when
// period is not positive.
func NewPulse(period time.Duration) *Pulse {
	if period <= 0 {
		period = DefaultPulsePeriod
	}
	return &Pulse{Period: period}
}

// Advance moves the pulse forward by dt and reports whether it is in the
// expanding half of the cycle.
func (p *Pulse) Advance(dt time.Duration) bool {
	if p.Period <= 0 {
		p.Period = DefaultPulsePeriod
	}
	p.elapsed = (p.elapsed + dt) % p.Period
	return p.Expanding()
}

// Expanding reports whether the pulse is past the middle of its cycle.
func (p *Pulse) Expanding() bool {
	return p.elapsed > p.Period/2
}

// Phase returns the position within the current cycle.
func (p *Pulse) Phase() time.Duration { return p.elapsed }

// Reset restarts the cycle.
func (p *Pulse) Reset() { p.elapsed = 0 }
