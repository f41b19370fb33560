package engine

// Reg is a single hardware-style signal register: a (current, next) pair
// with an explicit commit step between them, in place of a general async
// Port/Connection message-passing model (which models variable,
// event-scheduled latency — the wrong tool for a system where every signal
// updates on every clock edge).
//
// A component's edge-phase Tick reads Value() (the state as of the previous
// settled cycle) and calls Set() to stage this cycle's output. The driver
// calls Commit() on every registered signal between phases so that a
// second-phase Settle can observe other components' now-current output
// (the one delta re-sample a component is allowed to make per cycle).
type Reg[T any] struct {
	current T
	next    T
}

// NewReg creates a Reg with both current and next set to the zero value.
func NewReg[T any]() *Reg[T] {
	return &Reg[T]{}
}

// Value returns the committed value as of the last Commit call.
func (r *Reg[T]) Value() T {
	return r.current
}

// Set stages a value to become visible after the next Commit.
func (r *Reg[T]) Set(v T) {
	r.next = v
}

// Commit makes the staged value visible via Value.
func (r *Reg[T]) Commit() {
	r.current = r.next
}

// Reset sets both current and next to v, bypassing the commit step, so the
// value is visible immediately rather than after the next Commit.
func (r *Reg[T]) Reset(v T) {
	r.current = v
	r.next = v
}
