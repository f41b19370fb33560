package engine

import "math"

// ClockReset is the clock/reset driver. It owns no ports; its only job is
// to compute ctx.ResetN for the cycle before any other component's Tick
// runs, since reset is level sensitive and synchronous and every component
// must agree on its value for a given cycle.
//
// A reset-low duration shorter than one clock period collapses, in cycle
// terms, to "the first cycle is held in reset, every cycle after that is
// not" — ResetCycles is expressed in terms of the configured frequency and
// reset duration rather than hard-coded, so it computes the right number of
// cycles for whatever (freq, duration) pair the caller configures.
type ClockReset struct {
	Freq          Freq
	ResetDuration VTimeInSec
}

// NewClockReset creates a ClockReset for the given clock frequency and
// reset-low duration.
func NewClockReset(freq Freq, resetDuration VTimeInSec) *ClockReset {
	return &ClockReset{Freq: freq, ResetDuration: resetDuration}
}

// ResetCycles returns the number of leading cycles for which ResetN reads
// false.
func (c *ClockReset) ResetCycles() uint64 {
	cycles := uint64(math.Ceil(float64(c.ResetDuration) / float64(c.Freq.Period())))
	if cycles == 0 {
		cycles = 1
	}

	return cycles
}

// Tick computes ctx.ResetN for the current cycle. It must be the first
// Tickable registered with the Driver so every other component observes the
// correct value for this cycle rather than a stale one.
func (c *ClockReset) Tick(ctx *Context) {
	ctx.ResetN = ctx.Cycle >= c.ResetCycles()
}

// Commit is a no-op: ClockReset has no staged state beyond ctx.ResetN,
// which Tick already wrote directly.
func (c *ClockReset) Commit() {}
