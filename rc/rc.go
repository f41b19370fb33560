// Package rc implements the Root Complex packet producer: a free-running
// round-robin generator that emits at most one packet per cycle to
// whichever of the three threads currently has outstanding credit,
// advancing its round-robin pointer strictly past whatever thread it
// serviced. Grounded on a SystemC reference's iRC::sender_thread and
// iRC::credit_monitor_thread.
package rc

import (
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/tlp"
)

// Snapshot is the per-cycle trace record rc.Comp hands to its Hooks: the
// same raw_valid/raw_tlp/credit_counter state a waveform dumper would have
// sampled every cycle.
type Snapshot struct {
	RawValid bool
	RawTLP   tlp.RawTLP
	Credits  [3]int
}

// Comp is one Root Complex instance. Each topology owns its own, so the two
// topologies' packet_seq/credit_counter/round-robin state never interact.
type Comp struct {
	engine.HookableBase

	// CreditIn reads this cycle's 3-bit credit bus (index 0 = thread 1),
	// wired by the caller to whichever consumer this RC feeds.
	CreditIn func() [3]bool

	creditCounter [3]int
	packetSeq     uint32
	rrPointer     tlp.ThreadID // 1-based, thread to try first next cycle

	rawValid *engine.Reg[bool]
	rawTLP   *engine.Reg[tlp.RawTLP]
}

// New creates a Root Complex producer.
func New() *Comp {
	return &Comp{
		packetSeq: 1,
		rrPointer: tlp.Thread1,
		rawValid:  engine.NewReg[bool](),
		rawTLP:    engine.NewReg[tlp.RawTLP](),
	}
}

// Tick runs the credit monitor and the round-robin sender for one cycle.
func (c *Comp) Tick(ctx *engine.Context) {
	if ctx.InReset() {
		c.creditCounter = [3]int{}
		c.packetSeq = 1
		c.rrPointer = tlp.Thread1
		c.rawValid.Set(false)
		c.rawTLP.Set(tlp.RawTLP{})

		return
	}

	// credit_monitor_thread: every asserted bit on this cycle's credit bus
	// increments the corresponding thread's outstanding-credit count.
	bus := [3]bool{}
	if c.CreditIn != nil {
		bus = c.CreditIn()
	}

	avail := c.creditCounter

	for i, asserted := range bus {
		if asserted {
			c.creditCounter[i]++
		}
	}

	// sender_thread: starting at the round-robin pointer, scan the three
	// threads in order and emit to the first one that held credit before
	// this cycle's bus was counted (so a credit is spent no earlier than the
	// cycle after it arrives), advancing the pointer strictly past it. At
	// most one packet per cycle.
	c.rawValid.Set(false)
	c.rawTLP.Set(tlp.RawTLP{})

	start := c.rrPointer.Index()

	for i := 0; i < 3; i++ {
		idx := (start + i) % 3
		if avail[idx] <= 0 {
			continue
		}

		threadID := tlp.ThreadIDFromIndex(idx)

		c.rawValid.Set(true)
		c.rawTLP.Set(tlp.RawTLP{SeqNum: c.packetSeq, ThreadID: threadID})

		c.creditCounter[idx]--
		c.packetSeq++

		next := idx + 1
		if next >= 3 {
			next = 0
		}
		c.rrPointer = tlp.ThreadIDFromIndex(next)

		break
	}
}

// Commit publishes this cycle's raw_valid/raw_tlp output.
func (c *Comp) Commit() {
	c.rawValid.Commit()
	c.rawTLP.Commit()
}

// ObserveCycle invokes HookPosCycleCommit with this cycle's final,
// committed Snapshot. Registered automatically with any engine.Driver this
// Comp is added to.
func (c *Comp) ObserveCycle(ctx *engine.Context) {
	c.InvokeHook(engine.HookCtx{
		Domain: c,
		Pos:    engine.HookPosCycleCommit,
		Item: Snapshot{
			RawValid: c.rawValid.Value(),
			RawTLP:   c.rawTLP.Value(),
			Credits:  c.creditCounter,
		},
	})
}

// RawValid implements frontend.Ingress: the one-cycle-wide dispatch pulse.
func (c *Comp) RawValid() bool {
	return c.rawValid.Value()
}

// RawTLP implements frontend.Ingress: the packet dispatched this cycle,
// valid only when RawValid is true.
func (c *Comp) RawTLP() tlp.RawTLP {
	return c.rawTLP.Value()
}

// CreditCounter returns thread idx's (0-based) outstanding-credit count,
// for tests and invariant checks.
func (c *Comp) CreditCounter(idx int) int {
	return c.creditCounter[idx]
}

// PacketSeq returns the sequence number the next emitted packet will carry.
func (c *Comp) PacketSeq() uint32 {
	return c.packetSeq
}
