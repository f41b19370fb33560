// Package threadq implements one bounded per-thread FIFO plus the credit
// generator that watches it. Grounded on a SystemC reference's
// Threaded_Queue::main_thread, which performs exactly these three steps in
// order, on the same clock edge the router writes this queue's
// valid_in/raw_tlp_in for (see frontend.Comp, which is the component that
// calls Tick here from its own Settle pass).
package threadq

import (
	"github.com/sarchlab/credittunnel/tlp"
)

// Comp is one per-thread FIFO and its credit generator.
//
// Unlike most of this repository's components, Comp does not implement
// engine.Tickable on its own: its entire per-cycle behavior only becomes
// well-defined once the router has decided this cycle's valid_in/tlp_in, so
// its owner (frontend.Comp) drives it directly from its own Settle, calling
// Tick here once per cycle with that cycle's routed inputs already decided.
type Comp struct {
	Depth int

	fifo []tlp.RawTLP

	credits       int
	creditPending bool
	creditOut     bool
}

// New creates a ThreadedQueue with the given FIFO depth (Q_DEPTH).
func New(depth int) *Comp {
	return &Comp{Depth: depth}
}

// Reset clears all state: FIFO, credits, and pending/asserted credit pulse.
func (c *Comp) Reset() {
	c.fifo = nil
	c.credits = 0
	c.creditPending = false
	c.creditOut = false
}

// Tick runs the queue's three per-cycle steps (clear last cycle's credit
// pulse, enqueue if there's room, issue a new credit if both the producer's
// outstanding view and the FIFO have room), given this cycle's routed
// ingress. It must be called exactly once per cycle on a live (non-reset)
// edge.
func (c *Comp) Tick(validIn bool, tlpIn tlp.RawTLP) {
	// Step 1: clear any one-cycle credit pulse issued last cycle.
	c.creditOut = false
	c.creditPending = false

	// Step 2: enqueue if there is room.
	if validIn && len(c.fifo) < c.Depth {
		c.fifo = append(c.fifo, tlpIn)
	}

	// Step 3: issue a credit if the producer's outstanding view has room
	// and the FIFO (post-enqueue, per original_source) has a free slot.
	if c.credits < c.Depth && len(c.fifo) < c.Depth {
		c.credits++
		c.creditOut = true
		c.creditPending = true
	}
}

// CreditOut reports this cycle's one-bit credit pulse.
func (c *Comp) CreditOut() bool {
	return c.creditOut
}

// HasData reports whether the FIFO is non-empty.
func (c *Comp) HasData() bool {
	return len(c.fifo) > 0
}

// Len returns the current FIFO occupancy.
func (c *Comp) Len() int {
	return len(c.fifo)
}

// Credits returns the outstanding-credit count the producer believes it
// holds for this queue.
func (c *Comp) Credits() int {
	return c.credits
}

// PopData removes the head of the FIFO, if any, decrementing the
// outstanding-credit count. Reports whether a packet was popped.
//
// credits tracks the producer's outstanding view, not fifo length: a late
// pop can leave credits > 0 even on an empty queue, which is intentional —
// it mirrors how the real producer only learns about freed space through
// credit pulses, never by inspecting this FIFO directly.
func (c *Comp) PopData() (tlp.RawTLP, bool) {
	if len(c.fifo) == 0 {
		return tlp.RawTLP{}, false
	}

	pkt := c.fifo[0]
	c.fifo = c.fifo[1:]

	if c.credits > 0 {
		c.credits--
	}

	return pkt, true
}
