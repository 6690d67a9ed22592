package fittings

import (
	"context"

	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/property"
)

// Evaluate reads a property without library resolution.
//
// Computed properties are called with the instance as self and data (nil
// becomes an empty set); their result is returned as-is. Lists and records
// are returned unchanged. Literals have every tag whose key is in data
// replaced by the value verbatim.
func (f *Fittings) Evaluate(ctx context.Context, name string, data property.Data) (property.Value, error) {
	if f.state == StateDestroyed {
		return nil, ErrDestroyed
	}
	v, ok := f.def.Properties[name]
	if !ok {
		return nil, &UnknownPropertyError{Name: name}
	}
	if data == nil {
		data = property.Data{}
	}

	switch t := v.(type) {
	case property.Computed:
		ctxlog.FromContext(ctx).Debug("Invoking computed property.", "framework", f.def.Name, "property", name)
		return t(ctx, f, data)
	case property.Literal:
		return property.Literal(f.pattern.Substitute(string(t), data)), nil
	default:
		return v, nil
	}
}
