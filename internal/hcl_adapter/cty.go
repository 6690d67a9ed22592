// This file converts cty values produced by HCL evaluation into property
// values, and property data into the cty variables expressions can read.

package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fittings/internal/property"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ctyToValue maps a cty value onto the property union: primitives become
// literals, sequences become lists, objects and maps become records.
func ctyToValue(v cty.Value) (property.Value, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, err
		}
		return property.Literal(str.AsString()), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list := make(property.List, 0, v.LengthInt())
		it := v.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, elem := it.Element()
			if elem.IsNull() {
				return nil, fmt.Errorf("element %d is null", i)
			}
			pv, err := ctyToValue(elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			list = append(list, pv)
		}
		return list, nil

	case ty.IsObjectType() || ty.IsMapType():
		native, err := ctyToNative(v)
		if err != nil {
			return nil, err
		}
		return property.Record(native.(map[string]any)), nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// ctyToNative recursively converts a cty.Value to its most natural Go counterpart.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert cty.Number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0)
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported cty type for conversion: %s", ty.FriendlyName())
	}
}

// evalContext exposes the framework name and the caller's data set.
func evalContext(name string, data property.Data) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(data))
	for k, v := range data {
		vals[k] = cty.StringVal(v)
	}
	dataVal := cty.MapValEmpty(cty.String)
	if len(vals) > 0 {
		dataVal = cty.MapVal(vals)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			rootData: dataVal,
			rootName: cty.StringVal(name),
		},
		Functions: Functions(),
	}
}
