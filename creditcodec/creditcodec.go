// Package creditcodec implements the tunneled topology's credit
// round-trip: Packer accumulates per-thread credit pulses over a
// configurable window and emits them as one AXI beat holding all three
// counts, saturating each at 2^16-1; Pulser decodes that beat back into
// per-thread pulses, draining one count per cycle per thread until empty
// before accepting another beat. Grounded on a SystemC reference's
// CreditTx::main_thread and CreditRx::main_thread.
package creditcodec

import (
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/tlp"
)

const saturatedCount = 0xFFFF

// PackerSnapshot is the per-cycle trace record Packer hands its
// HookPosCycleCommit Hooks.
type PackerSnapshot struct {
	ValidOut  bool
	AxiOut    tlp.AxiWord
	Saturated [3]bool
}

// Packer is CreditTx.
type Packer struct {
	engine.HookableBase

	WindowSize int

	accum [3]uint32
	ctr   int

	sending bool
	pending tlp.AxiWord

	saturated [3]bool

	validOut *engine.Reg[bool]
	axiOut   *engine.Reg[tlp.AxiWord]
}

// NewPacker creates a Packer that emits a beat every windowSize cycles
// (unless still draining the previous one against backpressure).
func NewPacker(windowSize int) *Packer {
	return &Packer{
		WindowSize: windowSize,
		validOut:   engine.NewReg[bool](),
		axiOut:     engine.NewReg[tlp.AxiWord](),
	}
}

// Tick runs one cycle: accumulate this cycle's credit bus, and either
// expire the window into a new beat or keep driving/retire the pending one.
func (p *Packer) Tick(ctx *engine.Context, creditIn [3]bool, readyIn bool) {
	if ctx.InReset() {
		p.accum = [3]uint32{}
		p.ctr = 0
		p.sending = false
		p.saturated = [3]bool{}
		p.validOut.Set(false)
		p.axiOut.Set(tlp.AxiWord{})

		return
	}

	if !p.sending {
		p.validOut.Set(false)
	}

	for i, asserted := range creditIn {
		if !asserted {
			continue
		}
		if p.accum[i] < saturatedCount {
			p.accum[i]++
		} else if !p.saturated[i] {
			p.saturated[i] = true
			p.InvokeHook(engine.HookCtx{
				Domain: p,
				Pos:    engine.HookPosSaturate,
				Item:   tlp.ThreadIDFromIndex(i),
			})
		}
	}

	if !p.sending {
		p.ctr++
		if p.ctr == p.WindowSize {
			p.ctr = 0

			p.pending = tlp.CreditsToAxi(uint16(p.accum[0]), uint16(p.accum[1]), uint16(p.accum[2]))
			p.accum = [3]uint32{}
			p.sending = true
			p.validOut.Set(true)
			p.axiOut.Set(p.pending)
		}
	} else {
		if readyIn {
			p.sending = false
			p.validOut.Set(false)
		} else {
			p.validOut.Set(true)
			p.axiOut.Set(p.pending)
		}
	}
}

// Commit publishes this cycle's valid_out/axi_out.
func (p *Packer) Commit() {
	p.validOut.Commit()
	p.axiOut.Commit()
}

// ObserveCycle invokes HookPosCycleCommit with this cycle's final,
// committed PackerSnapshot.
func (p *Packer) ObserveCycle(ctx *engine.Context) {
	p.InvokeHook(engine.HookCtx{
		Domain: p,
		Pos:    engine.HookPosCycleCommit,
		Item: PackerSnapshot{
			ValidOut:  p.validOut.Value(),
			AxiOut:    p.axiOut.Value(),
			Saturated: p.saturated,
		},
	})
}

// ValidOut reports whether a credit beat is being offered this cycle.
func (p *Packer) ValidOut() bool {
	return p.validOut.Value()
}

// AxiOut returns the credit beat being offered this cycle.
func (p *Packer) AxiOut() tlp.AxiWord {
	return p.axiOut.Value()
}

// Saturated reports, per thread, whether that thread's accumulator has hit
// 2^16-1 since the last reset. Exposed so a hook or test can observe the
// boundary without scraping log output.
func (p *Packer) Saturated() [3]bool {
	return p.saturated
}

// Pulser is CreditRx.
type Pulser struct {
	engine.HookableBase

	emitCnt [3]uint32

	readyOut  *engine.Reg[bool]
	creditOut *engine.Reg[[3]bool]
}

// NewPulser creates a Pulser.
func NewPulser() *Pulser {
	return &Pulser{
		readyOut:  engine.NewReg[bool](),
		creditOut: engine.NewReg[[3]bool](),
	}
}

// Tick runs one cycle: drain any outstanding per-thread counts into pulses,
// advertise readiness only once fully drained, then accept a new beat.
func (p *Pulser) Tick(ctx *engine.Context, validIn bool, axiIn tlp.AxiWord) {
	if ctx.InReset() {
		p.emitCnt = [3]uint32{}
		p.readyOut.Set(true)
		p.creditOut.Set([3]bool{})

		return
	}

	var pulse [3]bool

	empty := p.emitCnt[0] == 0 && p.emitCnt[1] == 0 && p.emitCnt[2] == 0
	p.readyOut.Set(empty)

	if !empty {
		for i := range p.emitCnt {
			if p.emitCnt[i] != 0 {
				pulse[i] = true
				p.emitCnt[i]--
			}
		}
	}

	p.creditOut.Set(pulse)

	if validIn && empty {
		t1, t2, t3 := tlp.AxiToCredits(axiIn)
		p.emitCnt[0] = uint32(t1)
		p.emitCnt[1] = uint32(t2)
		p.emitCnt[2] = uint32(t3)
	}
}

// Commit publishes this cycle's ready_out/credit_out.
func (p *Pulser) Commit() {
	p.readyOut.Commit()
	p.creditOut.Commit()
}

// ObserveCycle invokes HookPosCycleCommit with this cycle's final,
// committed credit pulse bus — the attachment point a duty-cycle monitor
// subscribes to instead of having its sample hand-constructed by a caller.
func (p *Pulser) ObserveCycle(ctx *engine.Context) {
	p.InvokeHook(engine.HookCtx{
		Domain: p,
		Pos:    engine.HookPosCycleCommit,
		Item:   p.creditOut.Value(),
	})
}

// ReadyOut reports whether the pulser can accept a new credit beat this
// cycle (only true once the previous beat has fully drained).
func (p *Pulser) ReadyOut() bool {
	return p.readyOut.Value()
}

// CreditOut returns this cycle's 3-bit credit pulse bus.
func (p *Pulser) CreditOut() [3]bool {
	return p.creditOut.Value()
}
