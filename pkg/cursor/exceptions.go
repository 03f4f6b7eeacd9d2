package cursor

import "github.com/mint-lang/mint/pkg/value"

// raise unwinds frames and the operand stack looking for the innermost
// retrieve point in this cursor (the raise/catch contract,
// and its supplemented FrameDepth semantics grounded on
// original_source/processor.cpp: a retrieve point set in an outer frame
// also catches a raise from a callee several calls deep).
//
// If no retrieve point survives, the exception value is wrapped as a
// *MintException and returned so the caller (Run, or the scheduler
// above it) can decide what happens to the cursor.
func (c *Cursor) raise(exc *value.Reference) error {
	for len(c.Frames) > 0 {
		f := c.frame()
		if rp, ok := f.PopRetrievePoint(); ok {
			for len(c.Frames)-1 > rp.FrameDepth {
				c.Frames = c.Frames[:len(c.Frames)-1]
			}
			if len(c.Stack) > rp.StackDepth {
				c.Stack = c.Stack[:rp.StackDepth]
			}
			c.push(exc)
			c.IP = rp.HandlerIP
			return nil
		}
		if len(c.Frames) == 1 {
			break
		}
		c.Frames = c.Frames[:len(c.Frames)-1]
	}
	return &MintException{Value: exc}
}
