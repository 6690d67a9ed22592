// This file translates `framework` blocks into the format-agnostic
// configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/fittings/internal/config"
	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/hclexpr"
	"github.com/vk/fittings/internal/property"
)

// translateFramework converts one HCL framework block into the agnostic model.
func (l *Loader) translateFramework(ctx context.Context, file string, b *frameworkBlock) (*config.Framework, error) {
	logger := ctxlog.FromContext(ctx).With("framework", b.Name, "file", file)
	logger.Debug("Translating HCL framework to internal config model.")

	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("framework %q in %s: %w", b.Name, file, diags)
	}

	fw := &config.Framework{
		Name:       b.Name,
		Properties: make(map[string]property.Value),
		Source:     file,
	}

	for _, attr := range sortedAttributes(attrs) {
		var err error
		switch attr.Name {
		case attrTagPrefix:
			fw.TagPrefix, err = staticString(attr)
		case attrDirectory:
			fw.Directory, err = staticString(attr)
		case attrInitialize:
			fw.Initialize, err = staticString(attr)
		default:
			var v property.Value
			v, err = translateProperty(attr)
			if err == nil && v != nil {
				fw.Properties[attr.Name] = v
			}
		}
		if err != nil {
			return nil, fmt.Errorf("framework %q in %s: %w", b.Name, file, err)
		}
	}

	fw.Directory = config.AnchorDirectory(file, fw.Directory)
	logger.Debug("Framework translated.", "properties", len(fw.Properties), "directory", fw.Directory)
	return fw, nil
}

// translateProperty evaluates static expressions once and turns expressions
// that read `data` or `name` into computed properties.
func translateProperty(attr *hcl.Attribute) (property.Value, error) {
	refs := hclexpr.NewContainer(attr.Expr)
	if diags := refs.Check([]string{rootData, rootName}, FunctionNames()); diags.HasErrors() {
		return nil, fmt.Errorf("property %q: %w", attr.Name, diags)
	}

	if !refs.IsStatic() {
		return computed(attr.Expr), nil
	}

	val, diags := attr.Expr.Value(&hcl.EvalContext{Functions: Functions()})
	if diags.HasErrors() {
		return nil, fmt.Errorf("property %q: %w", attr.Name, diags)
	}
	v, err := ctyToValue(val)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", attr.Name, err)
	}
	return v, nil
}

// computed wraps an expression so it is evaluated on every call with the
// owner's name and the caller's data.
func computed(expr hcl.Expression) property.Computed {
	return func(ctx context.Context, self property.Owner, data property.Data) (property.Value, error) {
		name := ""
		if self != nil {
			name = self.Name()
		}
		val, diags := expr.Value(evalContext(name, data))
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s: %w", expr.Range(), diags)
		}
		return ctyToValue(val)
	}
}
