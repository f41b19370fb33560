package ep_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/ep"
	"github.com/sarchlab/credittunnel/tlp"
)

type fakeIngress struct {
	valid bool
	pkt   tlp.RawTLP
}

func (f *fakeIngress) RawValid() bool      { return f.valid }
func (f *fakeIngress) RawTLP() tlp.RawTLP { return f.pkt }

var _ = Describe("Comp", func() {
	var (
		c   *ep.Comp
		in  *fakeIngress
		ctx *engine.Context
	)

	BeforeEach(func() {
		in = &fakeIngress{}
		c = ep.New(4)
		c.Front.Ingress = in
		ctx = &engine.Context{ResetN: true, PoppingEnabled: true}
	})

	// Mirrors engine.Driver.RunCycle's phase order exactly (Tick every
	// registered component, commit, Settle every Settler, commit again):
	// the popper's Tick always runs before Front's Settle, so it only ever
	// sees the queue contents as committed at the end of the *previous*
	// cycle, never this cycle's just-enqueued packet.
	step := func() {
		c.Front.Tick(ctx)
		c.Tick(ctx)

		c.Front.Commit()
		c.Commit()

		c.Front.Settle(ctx)

		c.Front.Commit()
		c.Commit()
	}

	It("only pops once every four cycles, and not before", func() {
		in.valid = true
		in.pkt = tlp.RawTLP{SeqNum: 1, ThreadID: tlp.Thread1}
		step()
		in.valid = false

		for i := 0; i < 2; i++ {
			step()
			Expect(c.QueueLen(0)).To(Equal(1))
		}

		step() // fourth cycle since reset: pop fires
		Expect(c.QueueLen(0)).To(Equal(0))
		Expect(c.Popped()).To(HaveLen(1))
	})

	It("never pops while popping is disabled", func() {
		ctx.PoppingEnabled = false

		in.valid = true
		in.pkt = tlp.RawTLP{SeqNum: 1, ThreadID: tlp.Thread1}
		step()
		in.valid = false

		for i := 0; i < 8; i++ {
			step()
		}

		Expect(c.Popped()).To(BeEmpty())
		Expect(c.QueueLen(0)).To(Equal(1))
	})

	It("resets its pop counter so the cadence restarts from cycle zero", func() {
		step()
		step()
		ctx.ResetN = false
		step()
		ctx.ResetN = true

		in.valid = true
		in.pkt = tlp.RawTLP{SeqNum: 1, ThreadID: tlp.Thread1}
		step()
		in.valid = false

		step()
		step()
		Expect(c.Popped()).To(BeEmpty())
		step()
		Expect(c.Popped()).To(HaveLen(1))
	})
})
