package cursor

import (
	"strconv"
	"strings"

	"github.com/mint-lang/mint/pkg/value"
)

// DisplayString renders ref the way `print` does: scalars render as
// their literal, strings render unquoted, arrays/hashes render
// bracketed and comma-joined.
func DisplayString(ref *value.Reference) string {
	return display(ref.Get())
}

func display(d *value.Data) string {
	if d == nil {
		return "none"
	}
	switch d.Format {
	case value.FormatNone:
		return "none"
	case value.FormatNull:
		return "null"
	case value.FormatBoolean:
		if d.Boolean {
			return "true"
		}
		return "false"
	case value.FormatNumber:
		if d.Number == float64(int64(d.Number)) {
			return strconv.FormatInt(int64(d.Number), 10)
		}
		return strconv.FormatFloat(d.Number, 'g', -1, 64)
	case value.FormatFunction:
		if d.Fn != nil {
			return d.Fn.Name
		}
		return "function"
	case value.FormatPackage:
		if d.Pkg != nil {
			return d.Pkg.Name
		}
		return "package"
	case value.FormatObject:
		return displayObject(d.Obj)
	default:
		return "<invalid>"
	}
}

func displayObject(o *value.Object) string {
	if o == nil {
		return "none"
	}
	switch o.Class.Metatype {
	case value.MetaString:
		if sd, ok := o.Native.(*value.StringData); ok {
			return sd.String()
		}
	case value.MetaArray:
		if ad, ok := o.Native.(*value.ArrayData); ok {
			parts := make([]string, 0, ad.Len())
			for _, e := range ad.Elems {
				parts = append(parts, display(e.Get()))
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
	case value.MetaHash:
		if hd, ok := o.Native.(*value.HashData); ok {
			parts := make([]string, 0, hd.Len())
			for _, k := range hd.Keys() {
				v, _ := hd.Get(k.Get())
				parts = append(parts, display(k.Get())+":"+display(v.Get()))
			}
			return "{" + strings.Join(parts, ", ") + "}"
		}
	case value.MetaRegex:
		if rd, ok := o.Native.(*value.RegexData); ok {
			return rd.Source
		}
	}
	if o.Class != nil {
		return "<" + o.Class.Name + ">"
	}
	return "<object>"
}
