// Package ep implements the Endpoint consumer: a ThreadedFrontEnd plus a
// deterministic popper that drains all three queues together once every
// four cycles, but only while popping is enabled. Grounded on a SystemC
// reference's iEP::popper_thread and iEP::process_popped_data (a no-op
// beyond acknowledging the pop here, since there is no further consumer
// behind the Endpoint in this system).
package ep

import (
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/frontend"
	"github.com/sarchlab/credittunnel/tlp"
)

// Delivery is one packet this Endpoint has popped, stamped with a globally
// unique trace id. seq_num alone only disambiguates packets from the same
// RC instance; since both topologies run an independent RC starting its
// own sequence at 1, a cross-topology trace consumer needs TraceID instead.
type Delivery struct {
	Packet  tlp.RawTLP
	TraceID string
}

// Comp is one Endpoint instance: a ThreadedFrontEnd plus its popper.
type Comp struct {
	engine.HookableBase

	Front *frontend.Comp

	popCounter int

	popped []Delivery
}

// New creates an Endpoint whose front end's queues each have the given
// depth.
func New(queueDepth int) *Comp {
	return &Comp{Front: frontend.New(queueDepth)}
}

// Tick runs the popper for one cycle. The front end itself ticks (and
// settles) as a separately registered component, since it needs to observe
// its own Ingress's same-cycle output; the popper only needs the front
// end's already-committed queue contents, so it is a plain, single-phase
// Tickable driven after the front end in registration order.
func (c *Comp) Tick(ctx *engine.Context) {
	if ctx.InReset() {
		c.popCounter = 0
		return
	}

	// The cadence counter itself only advances while popping is enabled:
	// disabling popping freezes the cadence rather than letting it keep
	// running with the pop action merely suppressed.
	if !ctx.PoppingEnabled {
		return
	}

	if c.popCounter == 3 {
		for idx := 0; idx < 3; idx++ {
			if pkt, ok := c.Front.PopData(idx); ok {
				c.popped = append(c.popped, Delivery{Packet: pkt, TraceID: engine.GenerateID()})
			}
		}
	}

	c.popCounter = (c.popCounter + 1) % 4
}

// Commit is a no-op: the popper has no staged signal of its own, it only
// mutates the front end's queues directly during Tick.
func (c *Comp) Commit() {}

// ObserveCycle invokes HookPosCycleCommit with this cycle's final,
// committed credit bus — the attachment point a duty-cycle monitor
// subscribes to instead of having its sample hand-constructed by a caller.
func (c *Comp) ObserveCycle(ctx *engine.Context) {
	c.InvokeHook(engine.HookCtx{
		Domain: c,
		Pos:    engine.HookPosCycleCommit,
		Item:   c.CreditOut(),
	})
}

// CreditOut exposes the front end's combined credit bus, for wiring to an
// upstream RC or CreditPulser.
func (c *Comp) CreditOut() [3]bool {
	return c.Front.CreditOut()
}

// Popped returns every packet popped so far, in pop order, across all three
// queues interleaved by pop cycle.
func (c *Comp) Popped() []Delivery {
	return c.popped
}

// QueueLen returns the occupancy of queue idx (0-based), for invariant
// checks.
func (c *Comp) QueueLen(idx int) int {
	return c.Front.QueueLen(idx)
}
