package cursor

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

func unsupportedCall(fn *value.Function) error {
	name := "<anonymous>"
	if fn != nil {
		name = fn.Name
	}
	return rt.NewHostError(rt.KindUnsupported, "no overload of %s matches this call's arity", name)
}

// initCall marks the current top-of-stack Reference as the callee and
// opens a new waiting-calls entry (call protocol step 1).
func (c *Cursor) initCall(n symbol.Node) error {
	callee := c.pop()
	wc := &WaitingCall{Callee: callee}
	if n.Command == symbol.InitMemberCall || n.Command == symbol.InitVarMemberCall {
		wc.Member = true
		wc.Self = c.pop()
	}
	c.Waiting = append(c.Waiting, wc)
	return nil
}

// initParam binds the next argument slot of the top waiting call (step 2).
func (c *Cursor) initParam() error {
	if len(c.Waiting) == 0 {
		return rt.NewHostError(rt.KindUnsupported, "init_param with no waiting call")
	}
	wc := c.Waiting[len(c.Waiting)-1]
	wc.Args = append(wc.Args, c.pop())
	return nil
}

// call pops the callee, selects the matching overload, allocates a new
// Frame, copies arguments into it, and resumes at the function's entry
// IP (step 3).
func (c *Cursor) call() error {
	if len(c.Waiting) == 0 {
		return rt.NewHostError(rt.KindUnsupported, "call with no waiting call")
	}
	wc := c.Waiting[len(c.Waiting)-1]
	c.Waiting = c.Waiting[:len(c.Waiting)-1]

	fn := wc.Callee.Get().Fn
	if fn == nil {
		return rt.NewHostError(rt.KindTypeMismatch, "call target is not a function")
	}
	h, extra, ok := fn.Resolve(len(wc.Args))
	if !ok {
		return unsupportedCall(fn)
	}
	result, err := c.invoke(fn, h, extra, wc.Self, wc.Args)
	if err != nil {
		return err
	}
	c.push(result)
	return nil
}

// invoke runs fn's handle h to completion (re-entering Run internally)
// and returns its result. Used both by the ordinary call path and by
// CallOperator's synthetic calls.
func (c *Cursor) invoke(fn *value.Function, h *value.Handle, extra int, self *value.Reference, args []*value.Reference) (*value.Reference, error) {
	module, ok := c.Registry.Get(h.Module)
	if !ok {
		return nil, rt.NewHostError(rt.KindUnsupported, "module %v not loaded", h.Module)
	}

	savedModule, savedIP := c.Module, c.IP
	frame := NewFrame(h.Module, savedIP, len(c.Stack))

	for _, capture := range h.Captures {
		if capRef, ok := c.frame().Locals.Find(capture.Name); ok {
			frame.Locals.Declare(capture.Name, capRef)
		} else if capture.FastSlot >= 0 {
			if capRef, ok := c.frame().Locals.FastSlot(capture.FastSlot); ok {
				frame.Locals.Declare(capture.Name, capRef)
			}
		}
	}

	fixed := len(args) - extra
	for i := 0; i < fixed; i++ {
		frame.Locals.DeclareAnonymous(args[i])
	}
	if h.Variadic {
		vaArgs := append([]*value.Reference(nil), args[fixed:]...)
		vaRef := value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewArrayObject(vaArgs)}, value.FlagDefault)
		frame.Locals.Declare("va_args", vaRef)
	}
	if self != nil {
		frame.Locals.Declare("self", self)
	}

	c.Frames = append(c.Frames, frame)
	c.Module = module
	c.IP = h.EntryIP

	for {
		more, err := c.Run(1 << 20)
		if err != nil {
			return nil, err
		}
		if c.Suspended() {
			// the callee opened an interruptible generator and yielded
			// mid-body; detach it instead of spinning on c.Run, which
			// would just keep returning (true, nil) until ResumeGenerator
			// runs (dispatch.go's suspended check short-circuits Run).
			return c.detachGenerator(frame, module, savedModule, savedIP)
		}
		if !more {
			break
		}
		if len(c.Frames) > 0 && c.Frames[len(c.Frames)-1] == frame {
			continue
		}
		// the callee frame already exited via exitCall
		break
	}

	c.Module, c.IP = savedModule, savedIP
	c.exited = false

	if len(c.Stack) <= frame.Base {
		return value.NewReference(&value.Data{Format: value.FormatNone}, value.FlagDefault), nil
	}
	return c.pop(), nil
}

// detachGenerator hands frame — just suspended mid-yield inside a called
// generator function — off to a cursor of its own, so this call returns
// its Iterator immediately instead of blocking the caller on however
// long the generator body takes to run its course (create_generator,
// spec.md §4.4). The returned iterator is drained lazily: every time
// iterCheck/iterNext finds its buffer empty but the generator still
// suspended, it pumps this cursor for the next batch.
func (c *Cursor) detachGenerator(frame *Frame, module *symbol.Module, savedModule *symbol.Module, savedIP int) (*value.Reference, error) {
	if c.Host == nil {
		return nil, rt.NewHostError(rt.KindUnsupported, "interruptible generator calls require a scheduler-managed cursor")
	}
	gen := frame.Generator

	c.Stack = c.Stack[:frame.Base]
	c.Frames = c.Frames[:len(c.Frames)-1]
	c.Module, c.IP = savedModule, savedIP
	c.suspended = false
	c.exited = false

	frame.Base = 0
	child := &Cursor{
		Registry:  c.Registry,
		GC:        c.GC,
		Root:      c.Root,
		Module:    module,
		Stdout:    c.Stdout,
		Frames:    []*Frame{frame},
		Parent:    c,
		Host:      c.Host,
		suspended: true,
	}
	child.Proc = c.Host.Spawn(child)

	if snap, ok := gen.State.FrameState.(frameSnapshot); ok {
		gen.State.FrameState = frameSnapshot{IP: snap.IP, Self: child}
	}

	obj := &value.Object{Class: value.Builtin(value.MetaIterator), Native: gen}
	return value.NewReference(&value.Data{Format: value.FormatObject, Obj: obj}, value.FlagDefault), nil
}

// exitCall unwinds the current Frame, leaving a single result on the
// operand stack (step 4). It marks the cursor exited-this-invoke so the
// invoke drive loop above notices the frame is gone.
func (c *Cursor) exitCall() error {
	if len(c.Frames) == 0 {
		return rt.NewHostError(rt.KindUnsupported, "exit_call with no active frame")
	}
	var result *value.Reference
	if len(c.Stack) > 0 {
		result = c.pop()
	} else {
		result = value.NewReference(&value.Data{Format: value.FormatNone}, value.FlagDefault)
	}
	frame := c.Frames[len(c.Frames)-1]
	c.Frames = c.Frames[:len(c.Frames)-1]

	c.Stack = c.Stack[:frame.Base]
	c.push(result)

	if len(c.Frames) == 0 {
		c.exited = true
		return nil
	}
	c.IP = frame.ReturnIP
	c.exited = true // signal invoke's drive loop that this nested call completed
	return nil
}
