package fittings

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/host"
	"github.com/vk/fittings/internal/property"
	"github.com/vk/fittings/internal/resolver"
	"github.com/vk/fittings/internal/tags"
)

// State is the lifecycle position of an instance.
type State int

const (
	StateConstructed State = iota
	StateWired
	StateActive
	StateDestroyed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateWired:
		return "wired"
	case StateActive:
		return "active"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Fittings is an activated framework definition.
type Fittings struct {
	id       string
	def      Definition
	pattern  tags.Pattern
	resolver *resolver.Resolver

	host       host.Host
	middleware []string
	state      State
}

// New layers def onto Defaults, validates it and runs setup against h.
// A nil host yields a detached instance: properties can be read but nothing
// is registered anywhere.
func New(ctx context.Context, def Definition, h host.Host) (*Fittings, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, &ConfigurationError{Field: "name", Reason: "is required"}
	}

	full := Defaults().Extend(def)
	locator := full.Locator
	if locator == nil {
		locator = resolver.NewFileLocator(full.Directory)
	}

	f := &Fittings{
		id:       uuid.NewString(),
		def:      full,
		pattern:  tags.NewPattern(full.TagPrefix),
		resolver: resolver.New(locator),
		host:     h,
		state:    StateConstructed,
	}

	ctx, logger := ctxlog.With(ctx, "framework", f.def.Name, "instance", f.id)
	logger.Debug("Framework constructed.", "properties", len(f.def.Properties))

	if err := f.setup(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

// ID returns the unique id of this instance. Listeners are attached under it.
func (f *Fittings) ID() string { return f.id }

// Name returns the framework name.
func (f *Fittings) Name() string { return f.def.Name }

// Directory returns the directory relative library references resolve from.
func (f *Fittings) Directory() string { return f.def.Directory }

// Pattern returns the tag pattern used for substitution.
func (f *Fittings) Pattern() tags.Pattern { return f.pattern }

// State returns the current lifecycle state.
func (f *Fittings) State() State { return f.state }

// Host returns the host the instance is wired into, or nil once destroyed.
func (f *Fittings) Host() host.Host { return f.host }

// Has reports whether a property is declared.
func (f *Fittings) Has(name string) bool {
	_, ok := f.def.Properties[name]
	return ok
}

// Properties returns the declared property names.
func (f *Fittings) Properties() []string {
	return slices.Sorted(maps.Keys(f.def.Properties))
}

// Declared returns the raw, unevaluated value of a property.
func (f *Fittings) Declared(name string) (property.Value, bool) {
	v, ok := f.def.Properties[name]
	return v, ok
}

// Get reads a property. The library property is resolved into a List of
// descriptors; every other property is evaluated with data.
func (f *Fittings) Get(ctx context.Context, name string, data property.Data) (property.Value, error) {
	if name == PropertyLibrary {
		descriptors, err := f.Library(ctx)
		if err != nil {
			return nil, err
		}
		out := make(property.List, len(descriptors))
		for i, d := range descriptors {
			out[i] = d
		}
		return out, nil
	}
	return f.Evaluate(ctx, name, data)
}

// Library resolves the library property.
func (f *Fittings) Library(ctx context.Context) ([]property.Descriptor, error) {
	return f.Resolve(ctx, PropertyLibrary)
}

// Resolve resolves any property the way library is resolved.
func (f *Fittings) Resolve(ctx context.Context, name string) ([]property.Descriptor, error) {
	if f.state == StateDestroyed {
		return nil, ErrDestroyed
	}
	v, ok := f.def.Properties[name]
	if !ok {
		return nil, &UnknownPropertyError{Name: name}
	}
	return f.resolver.Resolve(ctx, f, v)
}

// Render evaluates a property that must produce a string.
func (f *Fittings) Render(ctx context.Context, name string, data property.Data) (string, error) {
	v, err := f.Evaluate(ctx, name, data)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case nil:
		return "", nil
	case property.Literal:
		return string(t), nil
	default:
		return "", &TypeError{Property: name, Want: property.KindLiteral, Got: property.KindOf(v)}
	}
}

// Registry evaluates a property that must produce a record.
func (f *Fittings) Registry(ctx context.Context, name string) (property.Record, error) {
	v, err := f.Evaluate(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return property.Record{}, nil
	case property.Record:
		return t, nil
	default:
		return nil, &TypeError{Property: name, Want: property.KindRecord, Got: property.KindOf(v)}
	}
}
