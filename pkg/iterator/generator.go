package iterator

import "github.com/mint-lang/mint/pkg/value"

// ExecutionMode selects how a Generator's yields behave.
type ExecutionMode int

const (
	SinglePass ExecutionMode = iota
	Interruptible
)

// SavedState is a suspended generator body: the portion of the operand
// stack captured above the frame's stack_base, plus an opaque handle to
// the interpreter frame itself. FrameState is interface{} because only
// pkg/cursor knows the concrete shape of a frame — pkg/iterator must not
// import pkg/cursor, since cursor already imports iterator to drive
// generator bodies.
type SavedState struct {
	StoredStack []*value.Reference
	FrameState  interface{}
}

// Generator extends Items with suspension state. It is either running
// (State == nil, Finalized == false), suspended (State != nil), or
// finalized.
type Generator struct {
	Items
	State     *SavedState
	Mode      ExecutionMode
	Finalized bool
}

// NewGenerator creates a running generator in the given mode.
func NewGenerator(mode ExecutionMode) *Generator {
	return &Generator{Mode: mode}
}

// Yield appends value to the generator's buffer. In SinglePass mode this
// is the whole story — equivalent to an eager list comprehension. In
// Interruptible mode the caller (pkg/cursor, which alone can snapshot a
// frame) is responsible for calling Suspend immediately after Yield
// returns; Yield itself never suspends, since it has no frame to
// capture.
func (g *Generator) Yield(ref *value.Reference) error {
	return g.Items.Yield(ref)
}

// Suspend records the captured stack and frame state and marks the
// generator suspended. Called by pkg/cursor right after Yield in
// Interruptible mode.
func (g *Generator) Suspend(stack []*value.Reference, frame interface{}) {
	g.State = &SavedState{StoredStack: stack, FrameState: frame}
}

// Resume clears the suspended state and returns it so the caller (the
// scheduler, or the cursor directly) can restore the stack and jump back
// into the frame. Returns nil if the generator was not suspended.
func (g *Generator) Resume() *SavedState {
	s := g.State
	g.State = nil
	return s
}

// Suspended reports whether the generator currently holds a valid
// SavedState.
func (g *Generator) Suspended() bool { return g.State != nil }

// Finalize forces the generator to complete eagerly: flips it to
// SinglePass so any further internal yields just append. Draining the
// suspended body back to completion is the scheduler's job (it alone
// can resume a SavedState); Finalize only flips the mode.
func (g *Generator) Finalize() {
	g.Mode = SinglePass
	g.Finalized = true
}

func (g *Generator) Mark(visit func(*value.Reference)) {
	g.Items.Mark(visit)
	if g.State != nil {
		for _, r := range g.State.StoredStack {
			visit(r)
		}
	}
}
