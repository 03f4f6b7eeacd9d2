package cursor

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/iterator"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// frameSnapshot is the FrameState payload cursor stores in a suspended
// generator's SavedState; pkg/iterator treats it opaquely (interface{})
// specifically so it need not import pkg/cursor.
//
// Self names the cursor currently driving this frame. yield always sets
// it to the cursor it runs on; detachGenerator reassigns it from the
// calling cursor to a forked child the first time a call-produced
// generator suspends, so a later pump (iterCheck/iterNext finding the
// buffer empty) knows which cursor's Proc to resume.
type frameSnapshot struct {
	IP   int
	Self *Cursor
}

// GeneratorHost is implemented by whatever schedules this cursor (the
// Scheduler) so a function call that turns into an interruptible
// generator can hand its suspended frame off to be resumed on demand
// instead of invoke's drive loop spinning on it (create_generator,
// spec.md §4.4's scheduling policy).
type GeneratorHost interface {
	// Spawn registers c — a cursor forked off to run a single detached
	// generator frame — as a process and returns a handle to resume it.
	Spawn(c *Cursor) GeneratorProcess
}

// GeneratorProcess is the handle a GeneratorHost hands back for a
// detached generator cursor: Pump resumes it far enough to produce its
// next buffered item, or to run to completion if it never yields again.
type GeneratorProcess interface {
	Pump() error
}

// beginGenerator opens a new generator-expression body on the current
// frame. n.A selects the execution mode: 0 for single_pass (the body
// runs to completion inline, eagerly filling the buffer, equivalent to
// a list comprehension), 1 for interruptible (each yield pauses this
// cursor until the scheduler pulls the next item —).
func (c *Cursor) beginGenerator(n symbol.Node) error {
	mode := iterator.SinglePass
	if n.A == 1 {
		mode = iterator.Interruptible
	}
	c.frame().Generator = iterator.NewGenerator(mode)
	return nil
}

// endGenerator closes the body, pushing the generator as an Iterator
// object.
func (c *Cursor) endGenerator() error {
	return c.finishGenerator()
}

// exitGenerator is endGenerator's early-exit form (a `break` inside the
// generator expression); the buffer already holds whatever was yielded
// so far, so the observable effect here is identical.
func (c *Cursor) exitGenerator() error {
	return c.finishGenerator()
}

func (c *Cursor) finishGenerator() error {
	f := c.frame()
	gen := f.Generator
	if gen == nil {
		return rt.NewHostError(rt.KindUnsupported, "exit_generator with no open generator")
	}
	f.Generator = nil
	obj := &value.Object{Class: value.Builtin(value.MetaIterator), Native: gen}
	c.push(value.NewReference(&value.Data{Format: value.FormatObject, Obj: obj}, value.FlagDefault))
	return nil
}

// yield appends the popped value to the current frame's generator
// buffer. In interruptible mode it also suspends this cursor: whoever
// is driving it (the scheduler, pulling the next item for a consuming
// for-loop) must call ResumeGenerator before calling Run again.
func (c *Cursor) yield() error {
	val := c.pop()
	f := c.frame()
	if f.Generator == nil {
		return rt.NewHostError(rt.KindUnsupported, "yield outside a generator expression")
	}
	if err := f.Generator.Yield(val); err != nil {
		return err
	}
	if f.Generator.Mode == iterator.Interruptible {
		stack := append([]*value.Reference(nil), c.Stack[f.Base:]...)
		f.Generator.Suspend(stack, frameSnapshot{IP: c.IP, Self: c})
		c.suspended = true
	}
	return nil
}

// ResumeGenerator restores a suspended interruptible generator's saved
// stack and instruction pointer so Run can continue producing the next
// item. It is a no-op if the current frame's generator is not
// suspended.
func (c *Cursor) ResumeGenerator() {
	f := c.frame()
	if f.Generator == nil || !f.Generator.Suspended() {
		return
	}
	state := f.Generator.Resume()
	c.Stack = append(c.Stack[:f.Base], state.StoredStack...)
	if snap, ok := state.FrameState.(frameSnapshot); ok {
		c.IP = snap.IP
	}
	c.suspended = false
}

// Suspended reports whether this cursor is paused mid-yield, waiting
// for ResumeGenerator.
func (c *Cursor) Suspended() bool { return c.suspended }
