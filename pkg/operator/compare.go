package operator

import "github.com/mint-lang/mint/pkg/value"

func init() {
	primitiveBinary[value.OpEq] = func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
		return boolean(valueEqual(lhs, rhs)), true, nil
	}
	primitiveBinary[value.OpNe] = func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
		return boolean(!valueEqual(lhs, rhs)), true, nil
	}
	primitiveBinary[value.OpLt] = orderingBinary(func(c int) bool { return c < 0 })
	primitiveBinary[value.OpGt] = orderingBinary(func(c int) bool { return c > 0 })
	primitiveBinary[value.OpLe] = orderingBinary(func(c int) bool { return c <= 0 })
	primitiveBinary[value.OpGe] = orderingBinary(func(c int) bool { return c >= 0 })
	primitiveBinary[value.OpAnd] = func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
		return boolean(truthy(lhs) && truthy(rhs)), true, nil
	}
	primitiveBinary[value.OpOr] = func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
		return boolean(truthy(lhs) || truthy(rhs)), true, nil
	}
}

// valueEqual implements `==`: numeric compare for numbers, code-point
// order equality for strings, 0/1 for booleans, null equals only null,
// and identity compare as the object fallback.
func valueEqual(lhs, rhs *value.Data) bool {
	if lhs.IsNull() || rhs.IsNull() {
		return lhs.IsNull() && rhs.IsNull()
	}
	if a, ok := asNumber(lhs); ok {
		if b, ok := asNumber(rhs); ok {
			return a == b
		}
		return false
	}
	if a, ok := asString(lhs); ok {
		if b, ok := asString(rhs); ok {
			return a == b
		}
		return false
	}
	return StrictIdentity(lhs, rhs)
}

// StrictIdentity implements `===`/`!==`: identity of the underlying Data.
func StrictIdentity(lhs, rhs *value.Data) bool { return lhs == rhs }

func orderingBinary(accept func(cmp int) bool) binaryPrim {
	return func(lhs, rhs *value.Data) (*value.Reference, bool, error) {
		if a, ok := asNumber(lhs); ok {
			if b, ok := asNumber(rhs); ok {
				return boolean(accept(numCompare(a, b))), true, nil
			}
			return nil, false, nil
		}
		if a, ok := asString(lhs); ok {
			if b, ok := asString(rhs); ok {
				return boolean(accept(strCompare(a, b))), true, nil
			}
			return nil, false, nil
		}
		return nil, false, nil
	}
}

func numCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func strCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func truthy(d *value.Data) bool {
	switch d.Format {
	case value.FormatBoolean:
		return d.Boolean
	case value.FormatNumber:
		return d.Number != 0
	case value.FormatNull, value.FormatNone:
		return false
	default:
		return true
	}
}

// Truthy exports truthy for use by pkg/cursor's jump_zero/and_pre_check
// short-circuit instructions.
func Truthy(ref *value.Reference) bool { return truthy(ref.Get()) }
