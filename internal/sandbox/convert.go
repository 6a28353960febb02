package sandbox

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgrid/internal/frame"
)

// cellToCty lifts a Go scalar cell into a cty.Value. Unknown Go types
// degrade to null rather than failing the whole frame.
func cellToCty(v any) cty.Value {
	switch n := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(n)
	case float64:
		return cty.NumberFloatVal(n)
	case int:
		return cty.NumberIntVal(int64(n))
	case int64:
		return cty.NumberIntVal(n)
	case bool:
		return cty.BoolVal(n)
	default:
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

func rowToCty(r frame.Row) cty.Value {
	if len(r) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(r))
	for k, v := range r {
		attrs[k] = cellToCty(v)
	}
	return cty.ObjectVal(attrs)
}

func rowsToCty(rows []frame.Row) cty.Value {
	if len(rows) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(rows))
	for i, r := range rows {
		vals[i] = rowToCty(r)
	}
	return cty.TupleVal(vals)
}

func columnsToCty(cols []frame.Column) cty.Value {
	if len(cols) == 0 {
		return cty.EmptyTupleVal
	}
	vals := make([]cty.Value, len(cols))
	for i, c := range cols {
		vals[i] = cty.ObjectVal(map[string]cty.Value{
			"name": cty.StringVal(c.Name),
			"type": cty.StringVal(string(c.Type)),
		})
	}
	return cty.TupleVal(vals)
}

// ctyToGo lowers an evaluated cty.Value back into the frame cell/row
// domain: nil, string, float64, bool, []any, and map[string]any.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		vm := v.AsValueMap()
		out := make(map[string]any, len(vm))
		for k, ev := range vm {
			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out[k] = gv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
