package operator

import (
	"math"

	"github.com/mint-lang/mint/pkg/value"
)

// binaryPrim returns (result, handled, err). handled is false when the
// (format, format) pair isn't one this primitive covers, so Binary can
// fall through to no-matching-operator.
type binaryPrim func(lhs, rhs *value.Data) (*value.Reference, bool, error)
type unaryPrim func(operand *value.Data) (*value.Reference, bool, error)

func asNumber(d *value.Data) (float64, bool) {
	switch d.Format {
	case value.FormatNumber:
		return d.Number, true
	case value.FormatBoolean:
		if d.Boolean {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func asString(d *value.Data) (string, bool) {
	if d.Format != value.FormatObject || d.Obj == nil || d.Obj.Class == nil || d.Obj.Class.Metatype != value.MetaString {
		return "", false
	}
	sd, ok := d.Obj.Native.(*value.StringData)
	if !ok {
		return "", false
	}
	return sd.String(), true
}

func numericBinary(f func(a, b float64) float64) binaryPrim {
	return func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
		a, aok := asNumber(lhs)
		b, bok := asNumber(rhs)
		if !aok || !bok {
			return nil, false, nil
		}
		return num(f(a, b)), true, nil
	}
}

var primitiveBinary map[value.Operator]binaryPrim

func init() {
	primitiveBinary = map[value.Operator]binaryPrim{
		value.OpAdd: func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
			if ls, ok := asString(lhs); ok {
				rs, _ := displayString(rhs)
				return str(ls + rs), true, nil
			}
			if rs, ok := asString(rhs); ok {
				ls, _ := displayString(lhs)
				return str(ls + rs), true, nil
			}
			return numericBinary(func(a, b float64) float64 { return a + b })(lhs, rhs)
		},
		value.OpSub:        numericBinary(func(a, b float64) float64 { return a - b }),
		value.OpMul:        numericBinary(func(a, b float64) float64 { return a * b }),
		value.OpDiv:        numericBinary(func(a, b float64) float64 { return a / b }),
		value.OpMod:        numericBinary(math.Mod),
		value.OpPow:        numericBinary(math.Pow),
		value.OpShiftLeft:  intBinary(func(a, b int64) int64 { return a << uint(b) }),
		value.OpShiftRight: intBinary(func(a, b int64) int64 { return a >> uint(b) }),
		value.OpBitOr:      intBinary(func(a, b int64) int64 { return a | b }),
		value.OpBitAnd:     intBinary(func(a, b int64) int64 { return a & b }),
		value.OpBitXor:     intBinary(func(a, b int64) int64 { return a ^ b }),
	}
}

func intBinary(f func(a, b int64) int64) binaryPrim {
	return func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
		a, aok := asNumber(lhs)
		b, bok := asNumber(rhs)
		if !aok || !bok {
			return nil, false, nil
		}
		return num(float64(f(int64(a), int64(b)))), true, nil
	}
}

// displayString renders a scalar for `+` string concatenation coercion.
func displayString(d *value.Data) (string, bool) {
	switch d.Format {
	case value.FormatNumber:
		return formatNumber(d.Number), true
	case value.FormatBoolean:
		if d.Boolean {
			return "true", true
		}
		return "false", true
	case value.FormatNull:
		return "null", true
	default:
		if s, ok := asString(d); ok {
			return s, true
		}
		return "", false
	}
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) {
		return trimInt(n)
	}
	return trimFloat(n)
}
