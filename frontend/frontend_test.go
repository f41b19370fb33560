package frontend_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/frontend"
	"github.com/sarchlab/credittunnel/tlp"
)

// fakeIngress lets a test drive frontend.Comp's Ingress without a real RC.
type fakeIngress struct {
	valid bool
	pkt   tlp.RawTLP
}

func (f *fakeIngress) RawValid() bool      { return f.valid }
func (f *fakeIngress) RawTLP() tlp.RawTLP { return f.pkt }

var _ = Describe("Comp", func() {
	var (
		c   *frontend.Comp
		in  *fakeIngress
		ctx *engine.Context
	)

	BeforeEach(func() {
		in = &fakeIngress{}
		c = frontend.New(2)
		c.Ingress = in
		ctx = &engine.Context{ResetN: true}
	})

	step := func() {
		c.Tick(ctx)
		c.Commit()
		c.Settle(ctx)
		c.Commit()
	}

	It("routes a packet to the queue matching its thread id", func() {
		in.valid = true
		in.pkt = tlp.RawTLP{SeqNum: 1, ThreadID: tlp.Thread2}
		step()

		Expect(c.QueueLen(1)).To(Equal(1))
		Expect(c.QueueLen(0)).To(Equal(0))
		Expect(c.QueueLen(2)).To(Equal(0))
	})

	It("silently drops a packet with no valid thread id", func() {
		in.valid = true
		in.pkt = tlp.RawTLP{SeqNum: 1, ThreadID: tlp.ThreadNone}
		step()

		Expect(c.QueueLen(0)).To(Equal(0))
		Expect(c.QueueLen(1)).To(Equal(0))
		Expect(c.QueueLen(2)).To(Equal(0))
	})

	It("combines each queue's credit pulse into a 3-bit bus", func() {
		step()
		Expect(c.CreditOut()).To(Equal([3]bool{true, true, true}))
	})

	It("clears all queues and the credit bus on reset", func() {
		in.valid = true
		in.pkt = tlp.RawTLP{SeqNum: 1, ThreadID: tlp.Thread1}
		step()
		Expect(c.QueueLen(0)).To(Equal(1))

		ctx.ResetN = false
		step()

		Expect(c.QueueLen(0)).To(Equal(0))
		Expect(c.CreditOut()).To(Equal([3]bool{}))
	})

	It("lets a caller pop routed data back out by queue index", func() {
		in.valid = true
		in.pkt = tlp.RawTLP{SeqNum: 42, ThreadID: tlp.Thread3}
		step()

		pkt, ok := c.PopData(2)
		Expect(ok).To(BeTrue())
		Expect(pkt.SeqNum).To(Equal(uint32(42)))
	})
})
