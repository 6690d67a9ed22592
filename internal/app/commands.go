package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/fittings/internal/fittings"
	"github.com/vk/fittings/internal/property"
)

// Placeholders lists the substitution keys a property's literal value uses.
type Placeholders struct {
	Property string
	Kind     property.Kind
	Keys     []string
}

// Render evaluates a property with data and writes the resulting string.
func (a *App) Render(ctx context.Context, name string, data property.Data) error {
	return a.withDetached(ctx, func(ctx context.Context, f *fittings.Fittings) error {
		out, err := f.Render(ctx, name, data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.outW, out)
		return err
	})
}

// Library resolves the library property and writes one `expose<TAB>path` line
// per descriptor.
func (a *App) Library(ctx context.Context) error {
	return a.withDetached(ctx, func(ctx context.Context, f *fittings.Fittings) error {
		descriptors, err := f.Library(ctx)
		if err != nil {
			return err
		}
		for _, d := range descriptors {
			if _, err := fmt.Fprintf(a.outW, "%s\t%s\n", d.Expose, d.Path); err != nil {
				return err
			}
		}
		return nil
	})
}

// Inspect reports, for every property, its kind and the placeholder keys its
// literal value contains.
func (a *App) Inspect(ctx context.Context) ([]Placeholders, error) {
	var out []Placeholders
	err := a.withDetached(ctx, func(ctx context.Context, f *fittings.Fittings) error {
		pattern := f.Pattern()
		for _, name := range f.Properties() {
			v, _ := f.Declared(name)
			p := Placeholders{Property: name, Kind: property.KindOf(v)}
			if lit, ok := v.(property.Literal); ok {
				p.Keys = pattern.Parse(string(lit)).Keys()
			}
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Property < out[j].Property })

	for _, p := range out {
		keys := "-"
		if len(p.Keys) > 0 {
			keys = strings.Join(p.Keys, ",")
		}
		if _, err := fmt.Fprintf(a.outW, "%s\t%s\t%s\n", p.Property, p.Kind, keys); err != nil {
			return nil, err
		}
	}
	return out, nil
}
