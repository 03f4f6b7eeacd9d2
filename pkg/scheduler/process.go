// Package scheduler implements mint's process model and step lock
// : a singleton Scheduler round-robins ready
// Processes, each wrapping one Cursor, serializing mutator execution
// through a single step lock so exactly one cursor runs bytecode at a
// time.
package scheduler

import (
	"github.com/google/uuid"
	"github.com/mint-lang/mint/pkg/cursor"
)

// Process wraps one Cursor with the scheduler-facing metadata spec.md
// §4.4 names: a thread id, an endless flag for REPL-style processes
// that never naturally exhaust their program, and an error callback.
type Process struct {
	ID uuid.UUID
	Cursor *cursor.Cursor
	Endless bool
	OnError func(error)
}

// NewProcess wraps c, minting a fresh process id (grounded on
// SnellerInc-sneller's per-request uuid.New pattern) so the debug
// adapter's `threads` response has a stable handle independent of
// queue position.
func NewProcess(c *cursor.Cursor) *Process {
	return &Process{ID: uuid.New(), Cursor: c}
}
