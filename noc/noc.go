// Package noc implements a fixed-latency pipelined elastic buffer that
// injects deterministic back-pressure to stand in for a network: a
// PipeLat-deep shift register of beats, with readiness for the next cycle
// predicted one cycle ahead against a repeating stall pattern so the
// producer never gets a ready signal it can't trust. Grounded on a SystemC
// reference's AxiNoC::main_thread.
package noc

import (
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/tlp"
)

// Snapshot is the per-cycle trace record noc.Comp hands to its Hooks.
type Snapshot struct {
	ReadyOut bool
	ValidOut bool
	AxiOut   tlp.AxiWord
}

// Comp is AxiNoC.
type Comp struct {
	engine.HookableBase

	PipeLat    int
	PatternLen int
	StallPct   int

	pipe      []tlp.AxiWord
	pipeValid []bool

	patternCtr int

	readyOut *engine.Reg[bool]
	validOut *engine.Reg[bool]
	axiOut   *engine.Reg[tlp.AxiWord]
}

// New creates a NoC pipeline of the given latency, stall pattern length,
// and stall percentage (0-100).
func New(pipeLat, patternLen, stallPct int) *Comp {
	return &Comp{
		PipeLat:    pipeLat,
		PatternLen: patternLen,
		StallPct:   stallPct,
		pipe:       make([]tlp.AxiWord, pipeLat),
		pipeValid:  make([]bool, pipeLat),
		readyOut:   engine.NewReg[bool](),
		validOut:   engine.NewReg[bool](),
		axiOut:     engine.NewReg[tlp.AxiWord](),
	}
}

// Tick runs one cycle: predict next cycle's stall window, accept an
// ingress beat if the pipeline's first stage is free and next cycle won't
// stall, drive the last stage out, and shift the pipeline.
func (c *Comp) Tick(ctx *engine.Context, validIn bool, axiIn tlp.AxiWord, readyIn bool) {
	if ctx.InReset() {
		for i := range c.pipeValid {
			c.pipeValid[i] = false
		}
		c.patternCtr = 0
		c.readyOut.Set(false)
		c.validOut.Set(false)
		c.axiOut.Set(tlp.AxiWord{})

		return
	}

	nextPatternCtr := (c.patternCtr + 1) % c.PatternLen
	stallCycles := (c.PatternLen * c.StallPct) / 100
	nextStallActive := nextPatternCtr < stallCycles

	readyOK := !c.pipeValid[0] && !nextStallActive
	c.readyOut.Set(readyOK)

	if validIn && readyOK {
		c.pipe[0] = axiIn
		c.pipeValid[0] = true
	}

	c.patternCtr = nextPatternCtr

	last := c.PipeLat - 1

	if c.pipeValid[last] {
		c.validOut.Set(true)
		c.axiOut.Set(c.pipe[last])

		if readyIn {
			c.pipeValid[last] = false
		}
	} else {
		c.validOut.Set(false)
	}

	for i := last; i > 0; i-- {
		if !c.pipeValid[i] && c.pipeValid[i-1] {
			c.pipe[i] = c.pipe[i-1]
			c.pipeValid[i] = true
			c.pipeValid[i-1] = false
		}
	}
}

// Commit publishes this cycle's ready_out/valid_out/axi_out.
func (c *Comp) Commit() {
	c.readyOut.Commit()
	c.validOut.Commit()
	c.axiOut.Commit()
}

// ObserveCycle invokes HookPosCycleCommit with this cycle's final,
// committed Snapshot.
func (c *Comp) ObserveCycle(ctx *engine.Context) {
	c.InvokeHook(engine.HookCtx{
		Domain: c,
		Pos:    engine.HookPosCycleCommit,
		Item: Snapshot{
			ReadyOut: c.readyOut.Value(),
			ValidOut: c.validOut.Value(),
			AxiOut:   c.axiOut.Value(),
		},
	})
}

// ReadyOut reports whether the pipeline's first stage can accept a beat
// this cycle.
func (c *Comp) ReadyOut() bool {
	return c.readyOut.Value()
}

// ValidOut reports whether a beat is exiting the pipeline this cycle.
func (c *Comp) ValidOut() bool {
	return c.validOut.Value()
}

// AxiOut returns the beat exiting the pipeline this cycle.
func (c *Comp) AxiOut() tlp.AxiWord {
	return c.axiOut.Value()
}
