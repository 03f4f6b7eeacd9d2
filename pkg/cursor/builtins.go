package cursor

import (
	"strings"

	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// builtinFunc is a host function exposed to bytecode via call_builtin,
// taking its arguments already popped off the stack in call order.
type builtinFunc func(args []*value.Reference) (*value.Reference, error)

// builtins are the small set of host-provided functions every mint
// program can rely on without a package import — the bytecode-level
// equivalent of the original implementation's C++ native globals
// (call_builtin; supplemented from original_source's
// core library, kept minimal since the parser/compiler that would
// surface a richer standard library is out of scope).
var builtins = map[string]builtinFunc{
	"length": builtinLength,
	"to_string": builtinToString,
	"to_upper": builtinToUpper,
	"to_lower": builtinToLower,
}

func (c *Cursor) callBuiltin(n symbol.Node) error {
	fn, ok := builtins[n.Str]
	if !ok {
		return rt.NewHostError(rt.KindUnsupported, "no builtin named %q", n.Str)
	}
	if n.A < 0 || n.A > len(c.Stack) {
		return rt.NewHostError(rt.KindUnsupported, "call_builtin arity out of range for %q", n.Str)
	}
	args := make([]*value.Reference, n.A)
	for i := n.A - 1; i >= 0; i-- {
		args[i] = c.pop()
	}
	result, err := fn(args)
	if err != nil {
		return err
	}
	c.push(result)
	return nil
}

func builtinLength(args []*value.Reference) (*value.Reference, error) {
	if len(args) != 1 {
		return nil, rt.NewHostError(rt.KindUnsupported, "length expects 1 argument")
	}
	d := args[0].Get()
	if d.Format != value.FormatObject || d.Obj == nil {
		return nil, rt.NewHostError(rt.KindTypeMismatch, "length expects a container")
	}
	var n int
	switch native := d.Obj.Native.(type) {
	case *value.StringData:
		n = native.Len()
	case *value.ArrayData:
		n = native.Len()
	case *value.HashData:
		n = native.Len()
	default:
		return nil, rt.NewHostError(rt.KindTypeMismatch, "length is not supported on this object")
	}
	return value.NewReference(&value.Data{Format: value.FormatNumber, Number: float64(n)}, value.FlagDefault), nil
}

func builtinToString(args []*value.Reference) (*value.Reference, error) {
	if len(args) != 1 {
		return nil, rt.NewHostError(rt.KindUnsupported, "to_string expects 1 argument")
	}
	s := DisplayString(args[0])
	return value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject(s)}, value.FlagDefault), nil
}

func builtinToUpper(args []*value.Reference) (*value.Reference, error) {
	sd, err := stringArg(args, "to_upper")
	if err != nil {
		return nil, err
	}
	return value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject(strings.ToUpper(sd.String()))}, value.FlagDefault), nil
}

func builtinToLower(args []*value.Reference) (*value.Reference, error) {
	sd, err := stringArg(args, "to_lower")
	if err != nil {
		return nil, err
	}
	return value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject(strings.ToLower(sd.String()))}, value.FlagDefault), nil
}

func stringArg(args []*value.Reference, name string) (*value.StringData, error) {
	if len(args) != 1 {
		return nil, rt.NewHostError(rt.KindUnsupported, "%s expects 1 argument", name)
	}
	d := args[0].Get()
	if d.Format != value.FormatObject || d.Obj == nil {
		return nil, rt.NewHostError(rt.KindTypeMismatch, "%s expects a string", name)
	}
	sd, ok := d.Obj.Native.(*value.StringData)
	if !ok {
		return nil, rt.NewHostError(rt.KindTypeMismatch, "%s expects a string", name)
	}
	return sd, nil
}
