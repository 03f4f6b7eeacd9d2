package cursor

import (
	"regexp"

	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// Constant kinds for LoadConstant.A, set by whatever assembles Node
// streams (a real compiler, or a test's hand-built program).
const (
	ConstNumber = iota
	ConstString
	ConstTrue
	ConstFalse
	ConstNull
	ConstNone
)

func (c *Cursor) loadConstant(n symbol.Node) error {
	switch n.A {
	case ConstNumber:
		c.push(value.NewReference(&value.Data{Format: value.FormatNumber, Number: n.Num}, value.FlagDefault))
	case ConstString:
		c.push(value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject(n.Str)}, value.FlagDefault))
	case ConstTrue:
		c.push(boolRef(true))
	case ConstFalse:
		c.push(boolRef(false))
	case ConstNull:
		c.push(value.NewReference(&value.Data{Format: value.FormatNull}, value.FlagDefault))
	case ConstNone:
		c.push(value.NewReference(&value.Data{Format: value.FormatNone}, value.FlagDefault))
	default:
		return rt.NewHostError(rt.KindTypeMismatch, "unknown constant kind %d", n.A)
	}
	return nil
}

func (c *Cursor) loadFast(n symbol.Node) error {
	ref, ok := c.frame().Locals.FastSlot(n.A)
	if !ok {
		return rt.NewHostError(rt.KindUnsupported, "fast slot %d not declared", n.A)
	}
	c.push(ref)
	return nil
}

func (c *Cursor) declareFast() error {
	v := c.pop()
	c.frame().Locals.DeclareAnonymous(v)
	return nil
}

func (c *Cursor) loadSymbol(n symbol.Node) error {
	sym := value.Symbol(n.Str)
	if ref, ok := c.frame().Locals.Find(sym); ok {
		c.push(ref)
		return nil
	}
	if ref, ok := c.Root.Globals.Find(sym); ok {
		c.push(ref)
		return nil
	}
	return rt.NewHostError(rt.KindUnsupported, "undefined symbol %q", n.Str)
}

func (c *Cursor) declareSymbol(n symbol.Node) error {
	v := c.pop()
	c.frame().Locals.Declare(value.Symbol(n.Str), v)
	return nil
}

func (c *Cursor) loadMember(n symbol.Node) error {
	objRef := c.pop()
	d := objRef.Get()
	if d.IsNone() {
		return rt.NewHostError(rt.KindInvalidUseOfNone, "member access on none")
	}
	if d.Format != value.FormatObject || d.Obj == nil {
		return rt.NewHostError(rt.KindTypeMismatch, "member access on non-object")
	}
	slot := d.Obj.Slot(n.A)
	if slot == nil {
		return rt.NewHostError(rt.KindUnsupported, "no member at offset %d", n.A)
	}
	c.push(slot)
	return nil
}

// reloadReference implements `=`: the target Reference (pushed second)
// is rebound to point at the same Data cell as the value (pushed last),
// i.e. assignment aliases rather than deep-copies — see DESIGN.md's
// Open Question resolution.
func (c *Cursor) reloadReference() error {
	val := c.pop()
	target := c.pop()
	if err := target.CheckMutable(); err != nil {
		return rt.NewHostError(rt.KindConstViolation, "%v", err)
	}
	if err := target.Set(val.Get()); err != nil {
		return rt.NewHostError(rt.KindConstViolation, "%v", err)
	}
	c.push(target)
	return nil
}

func (c *Cursor) initArray(n symbol.Node) error {
	elems := make([]*value.Reference, n.A)
	for i := n.A - 1; i >= 0; i-- {
		elems[i] = c.pop()
	}
	arrRef := c.pop()
	arrRef.Get().Obj.Native = value.NewArrayData(elems)
	c.push(arrRef)
	return nil
}

func (c *Cursor) initHash(n symbol.Node) error {
	pairs := make([]*value.Reference, 2*n.A)
	for i := 2*n.A - 1; i >= 0; i-- {
		pairs[i] = c.pop()
	}
	hashRef := c.pop()
	hd := hashRef.Get().Obj.Native.(*value.HashData)
	for i := 0; i < n.A; i++ {
		hd.Set(pairs[2*i], pairs[2*i+1])
	}
	c.push(hashRef)
	return nil
}

func (c *Cursor) loadExtraArguments() error {
	f := c.frame()
	ref, ok := f.Locals.Find("va_args")
	if !ok {
		ref = value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewArrayObject(nil)}, value.FlagDefault)
	}
	c.push(ref)
	return nil
}

func (c *Cursor) regexMatch(negate bool) error {
	rhs, lhs := c.pop(), c.pop()
	rd, ok := rhs.Get().Obj.Native.(*value.RegexData)
	if !ok {
		return rt.NewHostError(rt.KindTypeMismatch, "regex_match rhs is not a regex")
	}
	if rd.Compiled == nil {
		compiled, err := regexp.Compile(rd.Pattern)
		if err != nil {
			return rt.NewHostError(rt.KindUnsupported, "invalid regex pattern %q: %v", rd.Pattern, err)
		}
		rd.Compiled = compiled
	}
	sd, ok := lhs.Get().Obj.Native.(*value.StringData)
	if !ok {
		return rt.NewHostError(rt.KindTypeMismatch, "regex_match lhs is not a string")
	}
	matched := rd.Compiled.MatchString(sd.String())
	if negate {
		matched = !matched
	}
	c.push(boolRef(matched))
	return nil
}
