package cursor

import (
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// openPackage resolves (creating on first use) the nested package named
// by n.Str under the cursor's root package. The cursor does not track a
// package stack of its own: class and symbol registration instructions
// carry the fully-resolved package reference baked in by the loader, so
// open_package here only needs to guarantee the package exists
//.
func (c *Cursor) openPackage(n symbol.Node) error {
	c.Root.OpenPackage(value.Symbol(n.Str))
	return nil
}
