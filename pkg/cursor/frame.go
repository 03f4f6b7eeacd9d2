// Package cursor implements mint's bytecode interpreter: the Cursor
// execution context, its call stack of Frames, the instruction
// dispatch loop, the exception/retrieve-point model, the call
// protocol, and generator suspension.
package cursor

import (
	"github.com/mint-lang/mint/pkg/iterator"
	"github.com/mint-lang/mint/pkg/value"
)

// RetrievePoint is a saved (handler IP, stack depth) an exception
// unwinds to. FrameDepth is kept alongside StackDepth (spec.md's
// supplemented feature, grounded on original_source/processor.cpp)
// so raising across a function boundary also unwinds call frames.
type RetrievePoint struct {
	HandlerIP int
	StackDepth int
	FrameDepth int
}

// Frame is one call stack entry.
type Frame struct {
	Module value.ModuleId
	ReturnIP int
	Locals *value.SymbolTable
	RetrievePoints []RetrievePoint
	Generator *iterator.Generator // non-nil while this frame is a running generator body
	Printers []Printer
	Base int // first operand stack slot owned by this frame
}

// NewFrame creates a frame with a fresh local symbol table.
func NewFrame(module value.ModuleId, returnIP, base int) *Frame {
	return &Frame{Module: module, ReturnIP: returnIP, Locals: value.NewSymbolTable(), Base: base}
}

// PushRetrievePoint records a new exception-protected region entered at
// this frame.
func (f *Frame) PushRetrievePoint(rp RetrievePoint) { f.RetrievePoints = append(f.RetrievePoints, rp) }

// PopRetrievePoint removes and returns the innermost retrieve point, if
// any.
func (f *Frame) PopRetrievePoint() (RetrievePoint, bool) {
	if len(f.RetrievePoints) == 0 {
		return RetrievePoint{}, false
	}
	n := len(f.RetrievePoints) - 1
	rp := f.RetrievePoints[n]
	f.RetrievePoints = f.RetrievePoints[:n]
	return rp, true
}

// CurrentPrinter returns the top of this frame's printer stack, or nil.
func (f *Frame) CurrentPrinter() Printer {
	if len(f.Printers) == 0 {
		return nil
	}
	return f.Printers[len(f.Printers)-1]
}
