// Package txrxbuf implements the tunneled topology's single-FIFO
// transmit/receive buffers that sit between a Root Complex/Endpoint and the
// credit codec or NoC: TxBuf holds one packet at a time for handshake while
// draining its FIFO, RxBuf decodes on accept and presents its head packet
// combinationally. Grounded on a SystemC reference's SimpleTxFIFO and
// SimpleRxFIFO main_thread implementations, both of which read registered
// signals directly at the clock edge with no delta re-sample, unlike the
// router in the frontend package.
package txrxbuf

import (
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/tlp"
)

// Tx is SimpleTxFIFO: a bounded packet FIFO feeding a held-beat valid/ready
// egress toward a credit codec or NoC.
type Tx struct {
	Depth int

	fifo []tlp.RawTLP

	holding bool
	held    tlp.RawTLP

	egressValid *engine.Reg[bool]
	egressAxi   *engine.Reg[tlp.AxiWord]

	maxOcc int
}

// NewTx creates a Tx with the given FIFO depth.
func NewTx(depth int) *Tx {
	return &Tx{
		Depth:       depth,
		egressValid: engine.NewReg[bool](),
		egressAxi:   engine.NewReg[tlp.AxiWord](),
	}
}

// Tick runs one cycle: enqueue, refill the held beat, and drive egress.
func (t *Tx) Tick(ctx *engine.Context, ingressValid bool, ingressTLP tlp.RawTLP, egressReady bool) {
	if ctx.InReset() {
		t.fifo = nil
		t.holding = false
		t.held = tlp.RawTLP{}
		t.egressValid.Set(false)
		t.egressAxi.Set(tlp.AxiWord{})

		return
	}

	if ingressValid && len(t.fifo) < t.Depth {
		t.fifo = append(t.fifo, ingressTLP)
	}

	occ := len(t.fifo)
	if t.holding {
		occ++
	}
	if occ > t.maxOcc {
		t.maxOcc = occ
	}

	if !t.holding && len(t.fifo) > 0 {
		t.held = t.fifo[0]
		t.fifo = t.fifo[1:]
		t.holding = true
	}

	if t.holding {
		t.egressAxi.Set(tlp.TLPToAxi(t.held))
		t.egressValid.Set(true)

		if egressReady {
			t.holding = false
		}
	} else {
		t.egressValid.Set(false)
	}
}

// Commit publishes this cycle's egress_valid/egress_axi.
func (t *Tx) Commit() {
	t.egressValid.Commit()
	t.egressAxi.Commit()
}

// EgressValid reports whether a beat is being offered this cycle.
func (t *Tx) EgressValid() bool {
	return t.egressValid.Value()
}

// EgressAxi returns the beat being offered this cycle.
func (t *Tx) EgressAxi() tlp.AxiWord {
	return t.egressAxi.Value()
}

// MaxOccupancy returns the highest combined fifo+held occupancy observed,
// for invariant checks against the configured depth.
func (t *Tx) MaxOccupancy() int {
	return t.maxOcc
}

// Rx is SimpleRxFIFO: a bounded packet FIFO that decodes an accepted AXI
// beat on ingress and presents its head packet combinationally on egress.
type Rx struct {
	Depth int

	fifo []tlp.RawTLP

	readyOut *engine.Reg[bool]
	validOut *engine.Reg[bool]
	tlpOut   *engine.Reg[tlp.RawTLP]

	maxOcc int
}

// NewRx creates an Rx with the given FIFO depth.
func NewRx(depth int) *Rx {
	return &Rx{
		Depth:    depth,
		readyOut: engine.NewReg[bool](),
		validOut: engine.NewReg[bool](),
		tlpOut:   engine.NewReg[tlp.RawTLP](),
	}
}

// Tick runs one cycle: advertise ready, decode-and-enqueue on accept, and
// present the FIFO head.
func (r *Rx) Tick(ctx *engine.Context, ingressValid bool, ingressAxi tlp.AxiWord) {
	if ctx.InReset() {
		r.fifo = nil
		r.readyOut.Set(false)
		r.validOut.Set(false)
		r.tlpOut.Set(tlp.RawTLP{})

		return
	}

	ready := len(r.fifo) < r.Depth
	r.readyOut.Set(ready)

	if len(r.fifo) > r.maxOcc {
		r.maxOcc = len(r.fifo)
	}

	if ingressValid && ready {
		r.fifo = append(r.fifo, tlp.AxiToTLP(ingressAxi))
	}

	if len(r.fifo) > 0 {
		r.tlpOut.Set(r.fifo[0])
		r.fifo = r.fifo[1:]
		r.validOut.Set(true)
	} else {
		r.validOut.Set(false)
		r.tlpOut.Set(tlp.RawTLP{})
	}
}

// Commit publishes this cycle's ready_out/valid_out/tlp_out.
func (r *Rx) Commit() {
	r.readyOut.Commit()
	r.validOut.Commit()
	r.tlpOut.Commit()
}

// ReadyOut reports whether the buffer can accept a beat this cycle.
func (r *Rx) ReadyOut() bool {
	return r.readyOut.Value()
}

// RawValid implements frontend.Ingress: whether a packet is presented this
// cycle.
func (r *Rx) RawValid() bool {
	return r.validOut.Value()
}

// RawTLP implements frontend.Ingress: the packet presented this cycle.
func (r *Rx) RawTLP() tlp.RawTLP {
	return r.tlpOut.Value()
}

// MaxOccupancy returns the highest FIFO occupancy observed.
func (r *Rx) MaxOccupancy() int {
	return r.maxOcc
}
