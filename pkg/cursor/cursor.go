package cursor

import (
	"io"
	"os"

	"github.com/mint-lang/mint/pkg/gc"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// WaitingCall is a partially-constructed call site: the callee is known
// but its arguments are still being evaluated.
type WaitingCall struct {
	Callee *value.Reference
	Args []*value.Reference
	Member bool // true for call_member / init_member_call
	Self *value.Reference
}

// Cursor is mint's execution context: an operand stack of References, a
// call stack of Frames, a waiting-calls stack, and (after fork) a
// pointer to the parent cursor that spawned it.
type Cursor struct {
	Registry *symbol.ASTRegistry
	GC *gc.GC
	Root *value.Package

	Module *symbol.Module
	IP int
	Stack []*value.Reference
	Frames []*Frame
	Waiting []*WaitingCall

	Parent *Cursor

	// Stdout is where open_printer's default file-descriptor printer
	// writes; it defaults to os.Stdout but tests substitute a buffer.
	Stdout io.Writer

	exited bool
	exitCode int
	suspended bool
	modules map[string]*value.Package

	// Pending is set when an exception escapes every retrieve point in
	// this cursor; the scheduler's run loop observes it and re-raises on
	// the cursor per the cross-cursor MintException contract.
	Pending *value.Reference

	// Host, if set, lets a call that suspends mid-generator hand its
	// frame off to be resumed externally instead of invoke() looping on
	// it (create_generator, spec.md §4.4). Unset for a cursor driven
	// outside any scheduler — such a cursor can still run single_pass
	// generators and interruptible ones that never yield across a call
	// boundary, but cannot detach one mid-call.
	Host GeneratorHost

	// Proc is set on a cursor forked off by detachGenerator to run a
	// detached generator frame; it is the handle the consuming side's
	// iterNext/iterCheck pump to advance this cursor on demand.
	Proc GeneratorProcess
}

// New creates a cursor ready to execute module starting at instruction 0.
func New(reg *symbol.ASTRegistry, g *gc.GC, root *value.Package, module *symbol.Module) *Cursor {
	c := &Cursor{Registry: reg, GC: g, Root: root, Module: module, Stdout: os.Stdout}
	c.Frames = append(c.Frames, NewFrame(module.Id, 0, 0))
	return c
}

// Fork creates a child cursor sharing the same registry, GC, and root
// package — used by loadModule to run a module's top-level code.
func (c *Cursor) Fork(module *symbol.Module, entryIP int) *Cursor {
	child := &Cursor{Registry: c.Registry, GC: c.GC, Root: c.Root, Module: module, IP: entryIP, Parent: c, Stdout: c.Stdout}
	child.Frames = append(child.Frames, NewFrame(module.Id, 0, 0))
	return child
}

func (c *Cursor) frame() *Frame { return c.Frames[len(c.Frames)-1] }

// Exited reports whether this cursor has run exit_thread/exit_exec/
// exit_module at its top frame.
func (c *Cursor) Exited() bool { return c.exited }

// ExitCode returns the exit code set by exit_exec, if any.
func (c *Cursor) ExitCode() int { return c.exitCode }

func (c *Cursor) push(ref *value.Reference) { c.Stack = append(c.Stack, ref) }

func (c *Cursor) pop() *value.Reference {
	n := len(c.Stack) - 1
	ref := c.Stack[n]
	c.Stack = c.Stack[:n]
	return ref
}

func (c *Cursor) peek() *value.Reference { return c.Stack[len(c.Stack)-1] }

// Roots implements gc.RootSource: every Reference on the operand stack,
// every symbol in every frame's symbol table, every waiting-call slot,
// and every suspended generator's stored stack (step 2).
func (c *Cursor) Roots() []*value.Reference {
	var out []*value.Reference
	out = append(out, c.Stack...)
	for _, f := range c.Frames {
		out = append(out, f.Locals.All()...)
		if f.Generator != nil && f.Generator.State != nil {
			out = append(out, f.Generator.State.StoredStack...)
		}
	}
	for _, w := range c.Waiting {
		if w.Callee != nil {
			out = append(out, w.Callee)
		}
		out = append(out, w.Args...)
		if w.Self != nil {
			out = append(out, w.Self)
		}
	}
	if c.Pending != nil {
		out = append(out, c.Pending)
	}
	return out
}
