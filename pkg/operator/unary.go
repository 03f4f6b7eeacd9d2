package operator

import "github.com/mint-lang/mint/pkg/value"

var primitiveUnary map[value.Operator]unaryPrim

func init() {
	primitiveUnary = map[value.Operator]unaryPrim{
		value.OpNeg: func(d *value.Data) (*value.Reference, bool, error) {
			n, ok := asNumber(d)
			if !ok {
				return nil, false, nil
			}
			return num(-n), true, nil
		},
		value.OpPos: func(d *value.Data) (*value.Reference, bool, error) {
			n, ok := asNumber(d)
			if !ok {
				return nil, false, nil
			}
			return num(n), true, nil
		},
		value.OpNot: func(d *value.Data) (*value.Reference, bool, error) {
			return boolean(!truthy(d)), true, nil
		},
		value.OpBitNot: func(d *value.Data) (*value.Reference, bool, error) {
			n, ok := asNumber(d)
			if !ok {
				return nil, false, nil
			}
			return num(float64(^int64(n))), true, nil
		},
		value.OpTypeof: func(d *value.Data) (*value.Reference, bool, error) {
			return str(typeName(d)), true, nil
		},
	}
}

func typeName(d *value.Data) string {
	switch d.Format {
	case value.FormatNumber:
		return "number"
	case value.FormatBoolean:
		return "boolean"
	case value.FormatNull:
		return "null"
	case value.FormatNone:
		return "none"
	case value.FormatPackage:
		return "package"
	case value.FormatFunction:
		return "function"
	case value.FormatObject:
		if d.Obj != nil && d.Obj.Class != nil {
			return d.Obj.Class.Metatype.String()
		}
		return "object"
	default:
		return "invalid"
	}
}

// Membersof returns the names of a class's declared members in
// declaration order, implementing the `membersof` unary operator.
func Membersof(ref *value.Reference) []string {
	d := ref.Get()
	if d == nil || d.Format != value.FormatObject || d.Obj == nil || d.Obj.Class == nil {
		return nil
	}
	out := make([]string, 0, len(d.Obj.Class.Members))
	for _, m := range d.Obj.Class.Members {
		out = append(out, m.Name)
	}
	return out
}

// Defined reports whether ref is bound to something other than none,
// implementing the `defined` unary operator.
func Defined(ref *value.Reference) bool {
	return ref != nil && !ref.Get().IsNone()
}

// IncrDecr implements `++`/`--`: mutate a numeric reference in place and
// return the new value. Fails the same way as any other operator on a
// const_value reference.
func IncrDecr(ref *value.Reference, delta float64) (*value.Reference, error) {
	if err := ref.CheckMutable(); err != nil {
		return nil, err
	}
	n, ok := asNumber(ref.Get())
	if !ok {
		return nil, noMatch(value.OpIncr, ref.Get(), nil)
	}
	d := ref.Get()
	d.Format = value.FormatNumber
	d.Number = n + delta
	return ref, nil
}
