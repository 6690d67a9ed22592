package config

import (
	"context"
	"fmt"
)

// Loader is the interface for a format-specific declaration loader.
type Loader interface {
	// Load reads declarations from the given paths (files or directories)
	// and translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Composite runs several loaders over the same paths and merges their models.
// Each loader ignores files it does not understand.
type Composite []Loader

// Load implements Loader.
func (c Composite) Load(ctx context.Context, paths ...string) (*Model, error) {
	merged := NewModel()
	for _, loader := range c {
		m, err := loader.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		if err := merged.Merge(m); err != nil {
			return nil, fmt.Errorf("merging declarations: %w", err)
		}
	}
	return merged, nil
}
