package cursor

import (
	"fmt"
	"io"

	"github.com/mint-lang/mint/pkg/value"
)

// Printer is the sink `print` forwards to: a file-descriptor printer or
// a language-callable object whose `print` member is invoked (spec.md
// §4.3's printer model). Only the file-descriptor form is implemented
// in the core; the callable-object form is a contract Call already
// supports through CallOperator-style dispatch, left to the AST layer
// that is out of scope here.
type Printer interface {
	Print(ref *value.Reference) error
}

// WriterPrinter adapts an io.Writer (stdout, a string buffer,...) into
// a Printer, rendering the value with DisplayString.
type WriterPrinter struct {
	W io.Writer
}

func (p *WriterPrinter) Print(ref *value.Reference) error {
	_, err := fmt.Fprintln(p.W, DisplayString(ref))
	return err
}

// openPrinter pushes a new file-descriptor printer writing to the
// cursor's Stdout onto the current frame's printer stack.
func (c *Cursor) openPrinter() error {
	f := c.frame()
	f.Printers = append(f.Printers, &WriterPrinter{W: c.Stdout})
	return nil
}
