package fittings

import (
	"context"
	"maps"

	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/host"
	"github.com/vk/fittings/internal/property"
	"github.com/vk/fittings/internal/resolver"
)

// Well-known property names.
const (
	PropertyLibrary    = "library"
	PropertyTemplate   = "template"
	PropertyPlugin     = "plugin"
	PropertyBootstrap  = "bootstrap"
	PropertyFragment   = "fragment"
	PropertyMiddleware = "middleware"
	PropertyUse        = "use"
	PropertyOn         = "on"
)

// Initializer runs once after the registries are wired.
type Initializer func(ctx context.Context, self *Fittings, h host.Host) error

// Definition is the declarative description of a framework.
type Definition struct {
	// Name identifies the framework; it is required.
	Name string
	// Directory anchors relative library references.
	Directory string
	// TagPrefix is the tag namespace; empty means tags.DefaultPrefix.
	TagPrefix string
	// Properties holds the declared property values by name.
	Properties map[string]property.Value
	// Initialize, when set, runs last during setup.
	Initialize Initializer
	// Locator overrides the file locator built from Directory.
	Locator resolver.Locator
}

// Defaults returns the base definition every framework is layered onto.
// The string properties default to a function that logs a missing-override
// warning and yields ""; library defaults to an empty list and the three
// registries to empty records.
func Defaults() Definition {
	return Definition{
		Properties: map[string]property.Value{
			PropertyTemplate:   warn(PropertyTemplate, "build is ignoring them"),
			PropertyPlugin:     warn(PropertyPlugin, "build is ignoring them"),
			PropertyBootstrap:  warn(PropertyBootstrap, "no startup code included"),
			PropertyFragment:   warn(PropertyFragment, "html can't be rendered"),
			PropertyLibrary:    property.List{},
			PropertyMiddleware: property.Record{},
			PropertyUse:        property.Record{},
			PropertyOn:         property.Record{},
		},
	}
}

// Extend returns a copy of d with each override layered on top in order.
// Non-empty scalar fields replace, properties replace key by key, and a nil
// property value in an override removes nothing (it is ignored).
func (d Definition) Extend(overrides ...Definition) Definition {
	out := d
	out.Properties = maps.Clone(d.Properties)
	if out.Properties == nil {
		out.Properties = make(map[string]property.Value)
	}
	for _, o := range overrides {
		if o.Name != "" {
			out.Name = o.Name
		}
		if o.Directory != "" {
			out.Directory = o.Directory
		}
		if o.TagPrefix != "" {
			out.TagPrefix = o.TagPrefix
		}
		if o.Initialize != nil {
			out.Initialize = o.Initialize
		}
		if o.Locator != nil {
			out.Locator = o.Locator
		}
		for name, v := range o.Properties {
			if v != nil {
				out.Properties[name] = v
			}
		}
	}
	return out
}

// With returns a copy of d with one property set.
func (d Definition) With(name string, v property.Value) Definition {
	return d.Extend(Definition{Properties: map[string]property.Value{name: v}})
}

// warn builds the default for a string property that should be overridden.
func warn(name, consequence string) property.Computed {
	return func(ctx context.Context, self property.Owner, _ property.Data) (property.Value, error) {
		logger := ctxlog.FromContext(ctx)
		framework := ""
		if self != nil {
			framework = self.Name()
		}
		logger.Warn("Missing override for the `."+name+"` property, "+consequence+".", "framework", framework, "property", name)
		return property.Literal(""), nil
	}
}
