package plugin

import (
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// NativeValue converts a cty.Value (as produced by manifest parsing) into
// the plain Go value used on the JSON-facing side of the API. Integral
// numbers come back as int, everything else as float64.
func NativeValue(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString()
	case t == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return int(i)
		}
		f, _ := bf.Float64()
		return f
	case t == cty.Bool:
		return v.True()
	case t.IsListType() || t.IsSetType() || t.IsTupleType():
		vals := v.AsValueSlice()
		out := make([]any, 0, len(vals))
		for _, ev := range vals {
			out = append(out, NativeValue(ev))
		}
		return out
	case t.IsMapType() || t.IsObjectType():
		out := make(map[string]any)
		for k, ev := range v.AsValueMap() {
			out[k] = NativeValue(ev)
		}
		return out
	}
	return nil
}
