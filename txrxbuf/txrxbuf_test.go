package txrxbuf_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/tlp"
	"github.com/sarchlab/credittunnel/txrxbuf"
)

var _ = Describe("Tx", func() {
	var (
		tx  *txrxbuf.Tx
		ctx *engine.Context
	)

	BeforeEach(func() {
		tx = txrxbuf.NewTx(2)
		ctx = &engine.Context{ResetN: true}
	})

	It("holds a beat until the downstream accepts it", func() {
		tx.Tick(ctx, true, tlp.RawTLP{SeqNum: 7, ThreadID: tlp.Thread1}, false)
		tx.Commit()
		Expect(tx.EgressValid()).To(BeTrue())

		tx.Tick(ctx, false, tlp.RawTLP{}, false)
		tx.Commit()
		Expect(tx.EgressValid()).To(BeTrue())
		Expect(tlp.AxiToTLP(tx.EgressAxi()).SeqNum).To(Equal(uint32(7)))

		tx.Tick(ctx, false, tlp.RawTLP{}, true)
		tx.Commit()
	})

	It("never holds more than its configured depth plus the held beat", func() {
		for i := 0; i < 10; i++ {
			tx.Tick(ctx, true, tlp.RawTLP{SeqNum: uint32(i)}, false)
			tx.Commit()
		}
		Expect(tx.MaxOccupancy()).To(BeNumerically("<=", 3))
	})
})

var _ = Describe("Rx", func() {
	var (
		rx  *txrxbuf.Rx
		ctx *engine.Context
	)

	BeforeEach(func() {
		rx = txrxbuf.NewRx(2)
		ctx = &engine.Context{ResetN: true}
	})

	It("advertises ready while it has free space", func() {
		rx.Tick(ctx, false, tlp.AxiWord{})
		rx.Commit()
		Expect(rx.ReadyOut()).To(BeTrue())
	})

	It("decodes an accepted beat and presents it the same cycle", func() {
		w := tlp.TLPToAxi(tlp.RawTLP{SeqNum: 9, ThreadID: tlp.Thread2})
		rx.Tick(ctx, true, w)
		rx.Commit()

		Expect(rx.RawValid()).To(BeTrue())
		Expect(rx.RawTLP().SeqNum).To(Equal(uint32(9)))
	})
})
