package engine

// Tickable is implemented by every component that participates in the
// edge phase of a clock cycle: it reads signals committed as of the
// previous cycle, computes its next state and output, and stages it via
// Commit.
type Tickable interface {
	// Tick runs the edge-phase computation for one cycle.
	Tick(ctx *Context)

	// Commit makes values staged by Tick (and, if the component also
	// implements Settler, by Settle) visible to the rest of the graph.
	Commit()
}

// Settler is implemented by components that need to observe another
// component's same-cycle write once before producing their own final
// output for the cycle (the single allowed delta re-sample of §4.1). In
// this system only ThreadedFrontEnd's router needs it: its producer's
// raw_valid is a registered output, and the router observes it within the
// same cycle it is asserted, rather than one cycle later. TxBuf's ingress is
// a plain Tickable and sees RC's output one cycle later.
type Settler interface {
	Settle(ctx *Context)
}

// CycleObserver is implemented by components that invoke a Hook once a
// cycle has fully committed (both the edge-phase and the delta-settle
// commit), so the value a Hook observes is this cycle's final one rather
// than a value that might still change during Settle. This is the
// attachment point a duty-cycle monitor, a trace hook, or any other
// external collaborator subscribes to instead of the driver or its caller
// constructing hook contexts by hand.
type CycleObserver interface {
	ObserveCycle(ctx *Context)
}

// Driver runs a two-phase (edge, delta-settle) cooperative scheduler over a
// fixed, caller-supplied component order. This is a specialization of a
// priority-queue discrete-event engine (such as sarchlab/akita's
// sim.SerialEngine): that kind of engine exists to support components that
// tick at different, sparse, event-driven times, while every component here
// ticks on every rising edge, so a plain ordered slice walked once per cycle
// is the correct specialization (and avoids the heap/mutex overhead a
// discrete event queue would add for no benefit).
type Driver struct {
	order     []Tickable
	settlers  []Settler
	observers []CycleObserver
}

// NewDriver creates an empty Driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Add registers a component to be ticked every cycle, in registration
// order. If the component also implements Settler, it is additionally
// registered for the delta-settle pass.
func (d *Driver) Add(t Tickable) {
	d.order = append(d.order, t)

	if s, ok := t.(Settler); ok {
		d.settlers = append(d.settlers, s)
	}

	if o, ok := t.(CycleObserver); ok {
		d.observers = append(d.observers, o)
	}
}

// RunCycle advances the whole component graph by exactly one clock cycle:
// edge phase, commit, delta-settle phase, commit again.
func (d *Driver) RunCycle(ctx *Context) {
	for _, t := range d.order {
		t.Tick(ctx)
	}

	for _, t := range d.order {
		t.Commit()
	}

	for _, s := range d.settlers {
		s.Settle(ctx)
	}

	for _, t := range d.order {
		t.Commit()
	}

	for _, o := range d.observers {
		o.ObserveCycle(ctx)
	}
}

// Run advances the graph by n cycles, calling onCycle (if non-nil) after
// every committed cycle. ctx.Cycle has already been advanced when onCycle
// runs, so it holds the number of cycles completed so far. onCycle receives
// the same *Context that is mutated in place cycle over cycle; callers that
// need a durable snapshot should copy fields they care about.
func (d *Driver) Run(ctx *Context, n int, onCycle func(*Context)) {
	for i := 0; i < n; i++ {
		d.RunCycle(ctx)
		ctx.Cycle++

		if onCycle != nil {
			onCycle(ctx)
		}
	}
}
