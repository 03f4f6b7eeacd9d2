package cursor

import (
	"github.com/mint-lang/mint/pkg/operator"
	"github.com/mint-lang/mint/pkg/symbol"
	"github.com/mint-lang/mint/pkg/value"
)

// CallOperator implements operator.Caller: it builds a synthetic call
// (self plus args) and drives it through the normal call protocol, so a
// user class's operator overload runs exactly like any other method.
func (c *Cursor) CallOperator(fn *value.Function, self *value.Reference, args ...*value.Reference) (*value.Reference, error) {
	h, extra, ok := fn.Resolve(len(args))
	if !ok {
		return nil, unsupportedCall(fn)
	}
	return c.invoke(fn, h, extra, self, args)
}

func (c *Cursor) opBinary(op value.Operator) error {
	switch op {
	case value.OpSubscript:
		idx, container := c.pop(), c.pop()
		var result *value.Reference
		var err error
		if d := container.Get(); d != nil && d.Format == value.FormatObject && d.Obj != nil && d.Obj.Class != nil && d.Obj.Class.Metatype == value.MetaObject {
			result, err = operator.Binary(op, container, idx, c)
		} else {
			result, err = operator.Subscript(container, idx)
		}
		if err != nil {
			return err
		}
		c.push(result)
		return nil
	case value.OpSubscriptSet:
		val, idx, container := c.pop(), c.pop(), c.pop()
		if err := operator.SubscriptSet(container, idx, val); err != nil {
			return err
		}
		c.push(val)
		return nil
	case value.OpRangeInclusive, value.OpRangeExclusive:
		rhs, lhs := c.pop(), c.pop()
		result, err := operator.Range(lhs, rhs, op == value.OpRangeInclusive)
		if err != nil {
			return err
		}
		c.push(result)
		return nil
	case value.OpIn:
		container, elem := c.pop(), c.pop()
		result, err := operator.In(elem, container)
		if err != nil {
			return err
		}
		c.push(result)
		return nil
	default:
		rhs, lhs := c.pop(), c.pop()
		result, err := operator.Binary(op, lhs, rhs, c)
		if err != nil {
			return err
		}
		c.push(result)
		return nil
	}
}

func (c *Cursor) opUnary(op value.Operator) error {
	switch op {
	case value.OpIncr:
		ref := c.peek()
		result, err := operator.IncrDecr(ref, 1)
		if err != nil {
			return err
		}
		c.Stack[len(c.Stack)-1] = result
		return nil
	case value.OpDecr:
		ref := c.peek()
		result, err := operator.IncrDecr(ref, -1)
		if err != nil {
			return err
		}
		c.Stack[len(c.Stack)-1] = result
		return nil
	case value.OpMembersof:
		ref := c.pop()
		names := operator.Membersof(ref)
		elems := make([]*value.Reference, len(names))
		for i, nm := range names {
			elems[i] = value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject(nm)}, value.FlagDefault)
		}
		c.push(value.NewReference(&value.Data{Format: value.FormatObject, Obj: value.NewArrayObject(elems)}, value.FlagDefault))
		return nil
	case value.OpDefined:
		ref := c.pop()
		c.push(boolRef(operator.Defined(ref)))
		return nil
	default:
		operand := c.pop()
		result, err := operator.Unary(op, operand, c)
		if err != nil {
			return err
		}
		c.push(result)
		return nil
	}
}

// caseJump pops a case-label value and compares it against the subject
// left on top of the stack; if equal it consumes the subject and jumps,
// otherwise it leaves the subject in place for the next case.
func (c *Cursor) caseJump(n symbol.Node) error {
	label := c.pop()
	subject := c.peek()
	if valueEq(subject, label) {
		c.pop()
		c.IP = n.A
	}
	return nil
}

func valueEq(a, b *value.Reference) bool {
	r, err := operator.Binary(value.OpEq, a, b, noopCaller{})
	return err == nil && operator.Truthy(r)
}

type noopCaller struct{}

func (noopCaller) CallOperator(fn *value.Function, self *value.Reference, args ...*value.Reference) (*value.Reference, error) {
	return nil, unsupportedCall(fn)
}
