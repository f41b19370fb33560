package rc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/rc"
)

var _ = Describe("Comp", func() {
	var (
		c   *rc.Comp
		ctx *engine.Context
		bus [3]bool
	)

	BeforeEach(func() {
		bus = [3]bool{}
		c = rc.New()
		c.CreditIn = func() [3]bool { return bus }
		ctx = &engine.Context{ResetN: true}
	})

	step := func() {
		c.Tick(ctx)
		c.Commit()
		c.ObserveCycle(ctx)
	}

	It("starts packet_seq at 1 and holds raw_valid low with no credit", func() {
		step()
		Expect(c.RawValid()).To(BeFalse())
		Expect(c.PacketSeq()).To(Equal(uint32(1)))
	})

	It("emits a packet the cycle after its thread gets a credit", func() {
		bus = [3]bool{true, false, false}
		step() // credit observed, counted

		bus = [3]bool{}
		step() // spent on a dispatch

		Expect(c.RawValid()).To(BeTrue())
		Expect(c.RawTLP().SeqNum).To(Equal(uint32(1)))
		Expect(c.RawTLP().ThreadID.Index()).To(Equal(0))
		Expect(c.PacketSeq()).To(Equal(uint32(2)))
	})

	It("advances the round-robin pointer past whichever thread it serviced", func() {
		bus = [3]bool{true, true, false}
		step()

		bus = [3]bool{}
		step() // services thread 1 first
		Expect(c.RawTLP().ThreadID.Index()).To(Equal(0))

		step() // pointer now past thread 1: services thread 2 next
		Expect(c.RawTLP().ThreadID.Index()).To(Equal(1))
	})

	It("emits at most one packet per cycle even with all threads credited", func() {
		bus = [3]bool{true, true, true}
		step()

		bus = [3]bool{}
		step()

		Expect(c.RawValid()).To(BeTrue())
		Expect(c.CreditCounter(0) + c.CreditCounter(1) + c.CreditCounter(2)).To(Equal(2))
	})

	It("invokes its hook once per cycle with the final committed snapshot", func() {
		var got []rc.Snapshot
		c.AcceptHook(engine.HookFunc(func(ctx engine.HookCtx) {
			got = append(got, ctx.Item.(rc.Snapshot))
		}))

		bus = [3]bool{true, false, false}
		step()
		bus = [3]bool{}
		step()

		Expect(got).To(HaveLen(2))
		Expect(got[1].RawValid).To(BeTrue())
		Expect(got[1].RawTLP.SeqNum).To(Equal(uint32(1)))
	})

	It("clears all counters and the round-robin pointer on reset", func() {
		bus = [3]bool{true, false, false}
		step()

		ctx.ResetN = false
		step()

		Expect(c.CreditCounter(0)).To(Equal(0))
		Expect(c.PacketSeq()).To(Equal(uint32(1)))
		Expect(c.RawValid()).To(BeFalse())
	})
})
