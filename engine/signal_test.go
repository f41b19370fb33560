package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/credittunnel/engine"
)

var _ = Describe("Reg", func() {
	It("holds the previous value until Commit", func() {
		r := engine.NewReg[int]()
		r.Set(5)
		Expect(r.Value()).To(Equal(0))

		r.Commit()
		Expect(r.Value()).To(Equal(5))
	})

	It("resets current and next together", func() {
		r := engine.NewReg[int]()
		r.Set(5)
		r.Commit()

		r.Reset(0)
		Expect(r.Value()).To(Equal(0))

		r.Commit()
		Expect(r.Value()).To(Equal(0))
	})
})

var _ = Describe("ClockReset", func() {
	It("holds reset for the first cycle at 10MHz for a 20ns window", func() {
		cr := engine.NewClockReset(10*engine.MHz, 20e-9)
		Expect(cr.ResetCycles()).To(Equal(uint64(1)))

		ctx := &engine.Context{}
		ctx.Cycle = 0
		cr.Tick(ctx)
		Expect(ctx.ResetN).To(BeFalse())

		ctx.Cycle = 1
		cr.Tick(ctx)
		Expect(ctx.ResetN).To(BeTrue())
	})
})

type countingTickable struct {
	ticks, commits, settles int
}

func (c *countingTickable) Tick(ctx *engine.Context)   { c.ticks++ }
func (c *countingTickable) Commit()                    { c.commits++ }
func (c *countingTickable) Settle(ctx *engine.Context)  { c.settles++ }

var _ = Describe("Driver", func() {
	It("ticks, commits twice, and settles once per cycle", func() {
		d := engine.NewDriver()
		comp := &countingTickable{}
		d.Add(comp)

		ctx := &engine.Context{ResetN: true}
		d.Run(ctx, 3, nil)

		Expect(comp.ticks).To(Equal(3))
		Expect(comp.settles).To(Equal(3))
		Expect(comp.commits).To(Equal(6))
		Expect(ctx.Cycle).To(Equal(uint64(3)))
	})
})
