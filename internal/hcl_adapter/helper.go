package hcl_adapter

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Attributes that configure the framework itself rather than declaring a property.
const (
	attrTagPrefix  = "tag_prefix"
	attrDirectory  = "directory"
	attrInitialize = "initialize"
)

// staticString evaluates an attribute that must be a constant string.
func staticString(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(&hcl.EvalContext{Functions: Functions()})
	if diags.HasErrors() {
		return "", fmt.Errorf("attribute %q must be a constant: %w", attr.Name, diags)
	}
	if val.IsNull() {
		return "", nil
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("attribute %q must be a string: %w", attr.Name, err)
	}
	return str.AsString(), nil
}

// sortedAttributes returns attributes in name order so translation and any
// resulting errors are deterministic.
func sortedAttributes(attrs hcl.Attributes) []*hcl.Attribute {
	out := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
