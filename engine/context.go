package engine

// Context is the shared, per-tick-call state threaded through every
// component's Tick/Settle call. It is a field on a plain struct rather than
// a package-level global so that multiple independent simulations can run
// (e.g. concurrently in tests) without stepping on each other's state.
type Context struct {
	// Cycle is the index of the cycle currently being processed, starting
	// at 0 for the first rising edge.
	Cycle uint64

	// ResetN is the sampled state of the synchronous, level-sensitive reset
	// line for this cycle. false means "in reset."
	ResetN bool

	// PoppingEnabled is read by every consumer's popper and toggled by the
	// top-level driver at a scenario's fill/drain boundary.
	PoppingEnabled bool
}

// InReset reports whether the component graph should clear state this
// cycle.
func (c *Context) InReset() bool {
	return !c.ResetN
}
