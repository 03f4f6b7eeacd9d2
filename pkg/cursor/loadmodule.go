package cursor

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// loadModule resolves n.Str against the shared AST registry, running it
// to completion on a forked cursor the first time it is named (giving
// it a package namespace of its own), and pushes that namespace as a
// Package value. Re-loading an already-executed module is idempotent:
// the cached package is pushed again without re-running its top-level
// code.
func (c *Cursor) loadModule(n symbol.Node) error {
	mod, ok := c.Registry.Find(n.Str)
	if !ok {
		return rt.NewHostError(rt.KindUnsupported, "module %q not found", n.Str)
	}

	pkg, alreadyLoaded := c.loadedModules()[n.Str]
	if !alreadyLoaded {
		pkg = c.Root.OpenPackage(value.Symbol(n.Str))
		c.loadedModules()[n.Str] = pkg

		child := c.Fork(mod, 0)
		for {
			more, err := child.Run(1 << 20)
			if err != nil {
				return err
			}
			if !more {
				break
			}
		}
	}

	c.push(value.NewReference(&value.Data{Format: value.FormatPackage, Pkg: pkg}, value.FlagDefault))
	return nil
}

func (c *Cursor) loadedModules() map[string]*value.Package {
	if c.modules == nil {
		c.modules = make(map[string]*value.Package)
	}
	return c.modules
}
