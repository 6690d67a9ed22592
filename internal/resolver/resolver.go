package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/fittings/internal/ctxlog"
	"github.com/vk/fittings/internal/property"
)

// Basename returns the file name of path without its final extension. An
// extension needs a non-empty stem before it, so dotfiles such as
// ".eslintrc" keep their whole name.
func Basename(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.Trim(stem, ".") == "" {
		return base
	}
	return stem
}

// Resolver normalizes library properties into descriptors.
type Resolver struct {
	locator Locator
}

// New creates a Resolver that uses locator for module-style references.
func New(locator Locator) *Resolver {
	return &Resolver{locator: locator}
}

// Resolve converts v into descriptors.
//
//   - nil or "" yields an empty slice.
//   - A List maps element by element: strings become {path: s, expose:
//     basename(s)} without any lookup, objects pass through unchanged.
//   - A Computed is invoked with owner and an empty data set and its result
//     is resolved again.
//   - An absolute path yields one descriptor with the path unchanged.
//   - An object yields itself.
//   - Any other string is located first; the located path is used.
func (r *Resolver) Resolve(ctx context.Context, owner property.Owner, v property.Value) ([]property.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	switch t := v.(type) {
	case nil:
		return []property.Descriptor{}, nil

	case property.List:
		out := make([]property.Descriptor, 0, len(t))
		for i, item := range t {
			d, err := normalize(item)
			if err != nil {
				return nil, &ResolutionError{Err: fmt.Errorf("element %d: %w", i, err)}
			}
			out = append(out, d)
		}
		logger.Debug("Resolved library list.", "count", len(out))
		return out, nil

	case property.Computed:
		logger.Debug("Invoking computed library property.")
		result, err := t(ctx, owner, property.Data{})
		if err != nil {
			return nil, err
		}
		if _, again := result.(property.Computed); again {
			return nil, &ResolutionError{Err: fmt.Errorf("computed library returned another function")}
		}
		return r.Resolve(ctx, owner, result)

	case property.Literal:
		ref := string(t)
		if ref == "" {
			return []property.Descriptor{}, nil
		}
		if isAbsolute(ref) {
			return []property.Descriptor{fromPath(ref)}, nil
		}
		if r.locator == nil {
			return nil, &ResolutionError{Reference: ref, Err: &NotFoundError{Reference: ref}}
		}
		located, err := r.locator.Locate(ref)
		if err != nil {
			logger.Debug("Library reference could not be located.", "reference", ref, "error", err)
			return nil, &ResolutionError{Reference: ref, Err: err}
		}
		logger.Debug("Located library reference.", "reference", ref, "path", located)
		return []property.Descriptor{fromPath(located)}, nil

	case property.Record, property.Descriptor:
		d, err := property.AsDescriptor(t)
		if err != nil {
			return nil, &ResolutionError{Err: err}
		}
		return []property.Descriptor{d}, nil

	default:
		return nil, &ResolutionError{Err: fmt.Errorf("unsupported library value %T", v)}
	}
}

// normalize converts one list element.
func normalize(v property.Value) (property.Descriptor, error) {
	switch t := v.(type) {
	case property.Literal:
		if t == "" {
			return property.Descriptor{}, fmt.Errorf("empty library path")
		}
		return fromPath(string(t)), nil
	case property.Record, property.Descriptor:
		return property.AsDescriptor(t)
	default:
		return property.Descriptor{}, fmt.Errorf("%s values are not allowed in a library list", property.KindOf(v))
	}
}

func fromPath(p string) property.Descriptor {
	return property.Descriptor{Path: p, Expose: Basename(p)}
}

func isAbsolute(p string) bool {
	return strings.HasPrefix(p, string(filepath.Separator)) || filepath.IsAbs(p)
}
