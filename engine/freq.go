// Package engine provides the cycle-driven simulation primitives shared by
// every component in this repository: clock/frequency arithmetic, the
// current/next signal-register pair, the two-phase edge/delta-settle driver
// loop, and an observability hook surface that an external tracer (VCD
// dumper, console logger, ...) can attach to without this package knowing
// anything about them.
package engine

import (
	"log"
	"math"
)

// VTimeInSec is simulated time, in seconds. Modeled the same way as
// sarchlab/akita's sim.VTimeInSec: a plain float64 wrapper, since the
// simulator only ever needs wall-clock-free relative comparisons.
type VTimeInSec float64

// Freq is a clock frequency.
type Freq float64

// Units of frequency.
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time between two consecutive rising edges.
func (f Freq) Period() VTimeInSec {
	if f <= 0 {
		log.Panic("frequency must be positive")
	}

	return VTimeInSec(1.0 / float64(f))
}

// Cycle returns the given duration expressed in clock periods, rounded to
// the nearest whole cycle.
func (f Freq) Cycle(d VTimeInSec) uint64 {
	return uint64(math.Round(float64(d) * float64(f)))
}
