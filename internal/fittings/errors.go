package fittings

import (
	"errors"
	"fmt"

	"github.com/vk/fittings/internal/property"
	"github.com/vk/fittings/internal/resolver"
)

// ErrDestroyed is returned by every method of a destroyed instance.
var ErrDestroyed = errors.New("fittings: instance has been destroyed")

// ResolutionError is returned when a library reference cannot be located.
type ResolutionError = resolver.ResolutionError

// ConfigurationError is returned when a Definition cannot be activated.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("fittings: invalid configuration: %s %s", e.Field, e.Reason)
}

// UnknownPropertyError is returned when a property is not declared at all.
type UnknownPropertyError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("fittings: unknown property %q", e.Name)
}

// TypeError is returned by the typed accessors when a property evaluates to
// a different shape than the caller asked for.
type TypeError struct {
	Property string
	Want     property.Kind
	Got      property.Kind
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("fittings: property %q evaluated to a %s, want %s", e.Property, e.Got, e.Want)
}
