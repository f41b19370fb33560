package noc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/noc"
	"github.com/sarchlab/credittunnel/tlp"
)

var _ = Describe("Comp", func() {
	var (
		c   *noc.Comp
		ctx *engine.Context
	)

	BeforeEach(func() {
		// No stalls, so latency is deterministic and easy to assert on.
		c = noc.New(3, 100, 0)
		ctx = &engine.Context{ResetN: true}
	})

	It("delivers a beat exactly PipeLat cycles after it's accepted", func() {
		w := tlp.TLPToAxi(tlp.RawTLP{SeqNum: 5, ThreadID: tlp.Thread1})

		c.Tick(ctx, true, w, true)
		c.Commit()
		Expect(c.ValidOut()).To(BeFalse())

		c.Tick(ctx, false, tlp.AxiWord{}, true)
		c.Commit()
		Expect(c.ValidOut()).To(BeFalse())

		c.Tick(ctx, false, tlp.AxiWord{}, true)
		c.Commit()
		Expect(c.ValidOut()).To(BeTrue())
		Expect(tlp.AxiToTLP(c.AxiOut()).SeqNum).To(Equal(uint32(5)))
	})

	It("invokes its hook once per cycle with the final committed snapshot", func() {
		var got []noc.Snapshot
		c.AcceptHook(engine.HookFunc(func(ctx engine.HookCtx) {
			got = append(got, ctx.Item.(noc.Snapshot))
		}))

		w := tlp.TLPToAxi(tlp.RawTLP{SeqNum: 5, ThreadID: tlp.Thread1})
		c.Tick(ctx, true, w, true)
		c.Commit()
		c.ObserveCycle(ctx)

		Expect(got).To(HaveLen(1))
		Expect(got[0].ReadyOut).To(BeTrue())
		Expect(got[0].ValidOut).To(BeFalse())
	})

	It("deasserts ready at some point under a 50% stall pattern", func() {
		stalling := noc.New(2, 10, 50)
		sawStall := false
		for i := 0; i < 20; i++ {
			stalling.Tick(ctx, false, tlp.AxiWord{}, true)
			stalling.Commit()
			if !stalling.ReadyOut() {
				sawStall = true
			}
		}
		Expect(sawStall).To(BeTrue())
	})
})
