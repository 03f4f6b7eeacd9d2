// Package operator implements mint's operator dispatch:
// binary/unary/subscript/call, looked up first on the LHS class's
// overload table and falling back to the primitive (lhs_format,
// rhs_format) table.
package operator

import (
	"github.com/mint-lang/mint/internal/rt"
	"github.com/mint-lang/mint/pkg/value"
)

// Caller lets the operator package hand off to a user-defined operator
// overload without importing pkg/cursor (which imports pkg/operator),
// breaking the cycle the same way pkg/iterator's SavedState does.
type Caller interface {
	CallOperator(fn *value.Function, self *value.Reference, args...*value.Reference) (*value.Reference, error)
}

func ref(d *value.Data) *value.Reference { return value.NewReference(d, value.FlagDefault) }

func num(n float64) *value.Reference { return ref(&value.Data{Format: value.FormatNumber, Number: n}) }
func boolean(b bool) *value.Reference {
	return ref(&value.Data{Format: value.FormatBoolean, Boolean: b})
}
func str(s string) *value.Reference {
	return ref(&value.Data{Format: value.FormatObject, Obj: value.NewStringObject(s)})
}

func noMatch(op value.Operator, lhs, rhs *value.Data) error {
	lf, rf := "?", "?"
	if lhs != nil {
		lf = lhs.Format.String()
	}
	if rhs != nil {
		rf = rhs.Format.String()
	}
	return rt.NewHostError(rt.KindNoMatchingOperator, "no matching operator %d for (%s, %s)", op, lf, rf)
}

func invalidNone(op value.Operator) error {
	return rt.NewHostError(rt.KindInvalidUseOfNone, "operator %d used on none", op)
}

func isObjectOfClass(d *value.Data) (*value.Object, bool) {
	if d != nil && d.Format == value.FormatObject && d.Obj != nil {
		return d.Obj, true
	}
	return nil, false
}

// classOverload looks up op on d's class, if d is an object.
func classOverload(d *value.Data, op value.Operator) (*value.Function, bool) {
	obj, ok := isObjectOfClass(d)
	if !ok || obj.Class == nil {
		return nil, false
	}
	return obj.Class.FindOperator(op)
}

// Binary dispatches op(lhs, rhs) following the lookup order:
// class overload on LHS first, then the primitive table, else
// no-matching-operator.
func Binary(op value.Operator, lhsRef, rhsRef *value.Reference, caller Caller) (*value.Reference, error) {
	lhs, rhs := lhsRef.Get(), rhsRef.Get()
	if lhs.IsNone() || rhs.IsNone() {
		return nil, invalidNone(op)
	}
	if fn, ok := classOverload(lhs, op); ok {
		return caller.CallOperator(fn, lhsRef, rhsRef)
	}
	if prim, ok := primitiveBinary[op]; ok {
		if result, handled, err := prim(lhs, rhs); handled {
			return result, err
		}
	}
	return nil, noMatch(op, lhs, rhs)
}

// Unary dispatches a unary op, with the same class-then-primitive order.
func Unary(op value.Operator, operandRef *value.Reference, caller Caller) (*value.Reference, error) {
	operand := operandRef.Get()
	if operand.IsNone() {
		return nil, invalidNone(op)
	}
	if fn, ok := classOverload(operand, op); ok {
		return caller.CallOperator(fn, operandRef)
	}
	if prim, ok := primitiveUnary[op]; ok {
		if result, handled, err := prim(operand); handled {
			return result, err
		}
	}
	return nil, noMatch(op, operand, nil)
}
