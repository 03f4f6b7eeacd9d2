package cursor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mint-lang/mint/pkg/gc"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// num/str build hand-assembled LoadConstant nodes, standing in for the
// compiler places out of scope: these tests assemble
// Node streams directly, the same contract a real compiler would
// target.
func num(n float64) symbol.Node { return symbol.Node{Command: symbol.LoadConstant, A: ConstNumber, Num: n} }
func str(s string) symbol.Node { return symbol.Node{Command: symbol.LoadConstant, A: ConstString, Str: s} }
func op(o value.Operator) symbol.Node {
	return symbol.Node{Command: symbol.OpBinary, A: int(o)}
}

func newTestCursor(code []symbol.Node) (*Cursor, *bytes.Buffer) {
	reg := symbol.NewASTRegistry()
	g := gc.New()
	root := value.NewPackage("main")
	mod := reg.CreateMain(code)
	c := New(reg, g, root, mod)
	buf := &bytes.Buffer{}
	c.Stdout = buf
	return c, buf
}

func runToExit(t *testing.T, c *Cursor) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		more, err := c.Run(1 << 16)
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if !more {
			return
		}
	}
	t.Fatalf("program did not terminate")
}

func TestArithmeticAndPrint(t *testing.T) {
	code := []symbol.Node{
		{Command: symbol.OpenPrinter},
		num(1),
		num(2),
		op(value.OpAdd),
		{Command: symbol.Print},
		{Command: symbol.ClosePrinter},
		{Command: symbol.ExitModule},
	}
	c, out := newTestCursor(code)
	runToExit(t, c)
	if got := strings.TrimSpace(out.String()); got != "3" {
		t.Fatalf("want 3, got %q", got)
	}
}

// TestArrayForLoopSumsElements assembles sum = 0; for x in [1, 2, 3] { sum
// = sum + x }; print(sum). Both loop locals (sum, x) are declared once
// before the loop and rebound in place each iteration via
// ReloadReference, the same way the compiler is expected to emit a
// for-in body: fast slots are assigned once, never re-declared, so a
// jump back to the loop head always addresses the same slot.
func TestArrayForLoopSumsElements(t *testing.T) {
	code := []symbol.Node{
		num(0),
		{Command: symbol.DeclareFast}, // slot 0: sum

		{Command: symbol.AllocArray},
		num(1), num(2), num(3),
		{Command: symbol.InitArray, A: 3},
		{Command: symbol.RangeInit, A: 1}, // slot 1: iterator

		num(0),
		{Command: symbol.DeclareFast}, // slot 2: x placeholder

		// loop head:
		{Command: symbol.LoadFast, A: 2}, // target: x
		{Command: symbol.RangeCheck, A: 1, B: 0}, // value: head, or jump to end (B patched below)
		{Command: symbol.ReloadReference},
		{Command: symbol.UnloadReference},

		{Command: symbol.LoadFast, A: 0}, // target: sum
		{Command: symbol.LoadFast, A: 0}, // sum
		{Command: symbol.LoadFast, A: 2}, // x
		op(value.OpAdd),
		{Command: symbol.ReloadReference},
		{Command: symbol.UnloadReference},

		{Command: symbol.RangeNext, A: 1},
		{Command: symbol.Jump, A: 0}, // patched below, back to loop head

		// end:
		{Command: symbol.OpenPrinter},
		{Command: symbol.LoadFast, A: 0},
		{Command: symbol.Print},
		{Command: symbol.ClosePrinter},
		{Command: symbol.ExitModule},
	}
	loopHeadIP := 10
	rangeCheckIP := 11
	endIP := len(code) - 5 // OpenPrinter, LoadFast, Print, ClosePrinter, ExitModule
	loopJumpIP := endIP - 1
	code[rangeCheckIP].B = endIP
	code[loopJumpIP].A = loopHeadIP

	c, out := newTestCursor(code)
	runToExit(t, c)
	if got := strings.TrimSpace(out.String()); got != "6" {
		t.Fatalf("want 6, got %q", got)
	}
}

func TestTryRaiseCatch(t *testing.T) {
	// try { raise 42 } catch (e) { print(e) }
	code := []symbol.Node{
		{Command: symbol.SetRetrievePoint, A: 0}, // patched to handler IP
		num(42),
		{Command: symbol.Raise},
		{Command: symbol.UnsetRetrievePoint},
		{Command: symbol.Jump, A: 0}, // patched to end, skips handler

		// handler:
		{Command: symbol.OpenPrinter},
		{Command: symbol.Print},
		{Command: symbol.ClosePrinter},

		// end:
		{Command: symbol.ExitModule},
	}
	handlerIP := 5
	endIP := len(code) - 1
	code[0].A = handlerIP
	code[4].A = endIP

	c, out := newTestCursor(code)
	runToExit(t, c)
	if got := strings.TrimSpace(out.String()); got != "42" {
		t.Fatalf("want 42, got %q", got)
	}
}

func TestHashLiteralIndexAndAdd(t *testing.T) {
	// h = {"a": 1}; print(h["a"] + 1)
	code := []symbol.Node{
		{Command: symbol.AllocHash},
		str("a"),
		num(1),
		{Command: symbol.InitHash, A: 1},
		{Command: symbol.DeclareFast, A: 0},

		{Command: symbol.OpenPrinter},
		{Command: symbol.LoadFast, A: 0},
		str("a"),
		{Command: symbol.OpBinary, A: int(value.OpSubscript)},
		num(1),
		op(value.OpAdd),
		{Command: symbol.Print},
		{Command: symbol.ClosePrinter},
		{Command: symbol.ExitModule},
	}
	c, out := newTestCursor(code)
	runToExit(t, c)
	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Fatalf("want 2, got %q", got)
	}
}

func TestRecursiveFibonacciViaCallProtocol(t *testing.T) {
	// fib(n) = n < 2 ? n : fib(n-1) + fib(n-2); print(fib(6))
	reg := symbol.NewASTRegistry()
	g := gc.New()
	root := value.NewPackage("main")

	fibCode := []symbol.Node{
		{Command: symbol.LoadFast, A: 0}, // n
		num(2),
		{Command: symbol.OpBinary, A: int(value.OpLt)},
		{Command: symbol.JumpZero, A: 4},
		{Command: symbol.LoadFast, A: 0},
		{Command: symbol.ExitCall},

		// recurse:
		{Command: symbol.LoadSymbol, Str: "fib"},
		{Command: symbol.InitCall},
		{Command: symbol.LoadFast, A: 0},
		num(1),
		{Command: symbol.OpBinary, A: int(value.OpSub)},
		{Command: symbol.InitParam},
		{Command: symbol.Call},

		{Command: symbol.LoadSymbol, Str: "fib"},
		{Command: symbol.InitCall},
		{Command: symbol.LoadFast, A: 0},
		num(2),
		{Command: symbol.OpBinary, A: int(value.OpSub)},
		{Command: symbol.InitParam},
		{Command: symbol.Call},

		op(value.OpAdd),
		{Command: symbol.ExitCall},
	}
	fibCode[3].A = 6 // jump to "recurse:" (index 6) when n >= 2

	fibModule := reg.CreateFromBuffer("fib", fibCode)
	fn := value.NewFunction("fib")
	fn.AddOverload(1, &value.Handle{Module: fibModule.Id, EntryIP: 0})

	mainCode := []symbol.Node{
		{Command: symbol.LoadSymbol, Str: "fib"},
		{Command: symbol.InitCall},
		num(6),
		{Command: symbol.InitParam},
		{Command: symbol.Call},
		{Command: symbol.OpenPrinter},
		{Command: symbol.Print},
		{Command: symbol.ClosePrinter},
		{Command: symbol.ExitModule},
	}
	mainModule := reg.CreateMain(mainCode)
	c := New(reg, g, root, mainModule)
	buf := &bytes.Buffer{}
	c.Stdout = buf
	c.Root.Globals.Declare("fib", value.NewReference(&value.Data{Format: value.FormatFunction, Fn: fn}, value.FlagDefault))

	runToExit(t, c)
	if got := strings.TrimSpace(buf.String()); got != "8" {
		t.Fatalf("want fib(6) == 8, got %q", got)
	}
}

// TestGeneratorSinglePassBuffersAllYields assembles gen = (yield 1; yield
// 2; yield 3) as a single_pass generator expression (its body runs to
// completion inline), then consumes it with the same
// for-in pattern as TestArrayForLoopSumsElements.
func TestGeneratorSinglePassBuffersAllYields(t *testing.T) {
	code := []symbol.Node{
		{Command: symbol.BeginGeneratorExpression, A: 0},
		num(1),
		{Command: symbol.Yield},
		num(2),
		{Command: symbol.Yield},
		num(3),
		{Command: symbol.Yield},
		{Command: symbol.EndGeneratorExpression},
		{Command: symbol.DeclareFast}, // slot 0: generator

		num(0),
		{Command: symbol.DeclareFast}, // slot 1: sum

		{Command: symbol.LoadFast, A: 0},
		{Command: symbol.RangeInit, A: 2}, // slot 2: iterator over the generator

		num(0),
		{Command: symbol.DeclareFast}, // slot 3: x placeholder

		// loop head:
		{Command: symbol.LoadFast, A: 3}, // target: x
		{Command: symbol.RangeCheck, A: 2, B: 0}, // value: head, or jump to end (B patched below)
		{Command: symbol.ReloadReference},
		{Command: symbol.UnloadReference},

		{Command: symbol.LoadFast, A: 1}, // target: sum
		{Command: symbol.LoadFast, A: 1}, // sum
		{Command: symbol.LoadFast, A: 3}, // x
		op(value.OpAdd),
		{Command: symbol.ReloadReference},
		{Command: symbol.UnloadReference},

		{Command: symbol.RangeNext, A: 2},
		{Command: symbol.Jump, A: 0}, // patched below, back to loop head

		// end:
		{Command: symbol.OpenPrinter},
		{Command: symbol.LoadFast, A: 1},
		{Command: symbol.Print},
		{Command: symbol.ClosePrinter},
		{Command: symbol.ExitModule},
	}
	loopHeadIP := 15
	rangeCheckIP := 16
	endIP := len(code) - 5 // OpenPrinter, LoadFast, Print, ClosePrinter, ExitModule
	loopJumpIP := endIP - 1
	code[rangeCheckIP].B = endIP
	code[loopJumpIP].A = loopHeadIP

	c, out := newTestCursor(code)
	runToExit(t, c)
	if got := strings.TrimSpace(out.String()); got != "6" {
		t.Fatalf("want 6, got %q", got)
	}
}
