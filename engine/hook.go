package engine

// HookPos marks a named point in a component's lifecycle at which a Hook may
// be invoked. Modeled on sarchlab/akita's sim.HookPos: a cheap comparable
// marker rather than a string enum, so hook dispatch can switch on pointer
// identity.
type HookPos struct {
	Name string
}

// Hook positions every component in this repository may invoke. External
// collaborators (a VCD dumper, a console tracer, a duty-cycle monitor)
// subscribe to these instead of the simulator printing anything itself.
var (
	// HookPosCycleCommit fires once per cycle, after both commit passes,
	// carrying whatever per-cycle snapshot the invoking component chooses
	// to pass as HookCtx.Item.
	HookPosCycleCommit = &HookPos{Name: "Cycle Commit"}

	// HookPosSaturate fires the first time a credit accumulator saturates
	// at 2^16-1.
	HookPosSaturate = &HookPos{Name: "Credit Accumulator Saturate"}
)

// HookCtx carries the data passed to a Hook at a HookPos.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
}

// Hook is a short piece of program a Hookable object can invoke.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(ctx HookCtx)

// Func invokes the wrapped function.
func (f HookFunc) Func(ctx HookCtx) { f(ctx) }

// Hookable is implemented by anything that accepts Hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	InvokeHook(ctx HookCtx)
}

// HookableBase provides a reusable implementation of Hookable.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook registers a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// InvokeHook calls every registered hook with the given context.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
