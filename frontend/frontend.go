// Package frontend implements the threaded front end: the demux router,
// the three per-thread queues it wraps, and the credit OR-combiner.
// Grounded directly on a SystemC reference's
// ThreadedFrontEnd::input_router_thread and
// ThreadedFrontEnd::credit_combine_thread, both of which perform a
// `wait(clk.posedge_event()); wait(SC_ZERO_TIME);` before acting — the one
// documented delta-settle re-sample in this system, which lets the router
// observe its producer's raw_valid in the same cycle it is asserted. This
// repository models that as engine.Settler: frontend.Comp's Tick is a
// no-op and all its real work runs in Settle, which the driver calls only
// after the producer's Tick output has committed.
package frontend

import (
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/threadq"
	"github.com/sarchlab/credittunnel/tlp"
)

// Ingress is the upstream packet source a ThreadedFrontEnd routes from. RC
// implements it for the direct topology and txrxbuf.Rx for the tunneled
// one; TxBuf does not read through this interface (its inputs are passed to
// its Tick directly). The front end re-samples it same-cycle in Settle (see
// package doc).
type Ingress interface {
	RawValid() bool
	RawTLP() tlp.RawTLP
}

// Comp is ThreadedFrontEnd: three per-thread queues, a router, and a
// credit combiner.
type Comp struct {
	Ingress Ingress

	queues [3]*threadq.Comp

	creditOut *engine.Reg[[3]bool]
}

// New creates a ThreadedFrontEnd whose queues each have the given depth.
func New(queueDepth int) *Comp {
	c := &Comp{
		creditOut: engine.NewReg[[3]bool](),
	}

	for i := range c.queues {
		c.queues[i] = threadq.New(queueDepth)
	}

	return c
}

// Tick is a no-op: every observable effect of this component depends on
// observing its Ingress's same-cycle raw_valid, so all work happens in
// Settle (see package doc).
func (c *Comp) Tick(_ *engine.Context) {}

// Settle runs the router, all three queues, and the credit combiner for
// this cycle.
func (c *Comp) Settle(ctx *engine.Context) {
	if ctx.InReset() {
		for _, q := range c.queues {
			q.Reset()
		}

		c.creditOut.Set([3]bool{})

		return
	}

	var validSignals [3]bool
	var tlpSignals [3]tlp.RawTLP

	if c.Ingress.RawValid() {
		pkt := c.Ingress.RawTLP()
		if pkt.ThreadID.Valid() {
			idx := pkt.ThreadID.Index()
			validSignals[idx] = true
			tlpSignals[idx] = pkt
		}
		// Out-of-range thread_id (ThreadNone, or >3) is silently dropped:
		// no queue is written.
	}

	var credits [3]bool

	for i, q := range c.queues {
		q.Tick(validSignals[i], tlpSignals[i])
		credits[i] = q.CreditOut()
	}

	c.creditOut.Set(credits)
}

// Commit makes this cycle's combined credit bus visible.
func (c *Comp) Commit() {
	c.creditOut.Commit()
}

// CreditOut returns the combined 3-bit credit bus (index 0 = thread 1).
func (c *Comp) CreditOut() [3]bool {
	return c.creditOut.Value()
}

// HasData reports whether queue idx (0-based) is non-empty.
func (c *Comp) HasData(idx int) bool {
	return c.queues[idx].HasData()
}

// PopData pops the head of queue idx (0-based), if any.
func (c *Comp) PopData(idx int) (tlp.RawTLP, bool) {
	return c.queues[idx].PopData()
}

// QueueLen returns the occupancy of queue idx (0-based), for tests and
// invariant checks (no queue may ever exceed its configured depth).
func (c *Comp) QueueLen(idx int) int {
	return c.queues[idx].Len()
}

// QueueCredits returns the outstanding-credit count of queue idx (0-based).
func (c *Comp) QueueCredits(idx int) int {
	return c.queues[idx].Credits()
}
