// Package property defines the shapes a framework property can take.
//
// A declared property is exactly one of four variants: a Literal string, a
// Computed function, a List of values, or a Record (an object). Descriptor is
// the normalized {path, expose} record produced when a library property is
// resolved; it reports the Record kind because it is a pre-shaped object.
//
// Consumers switch on the concrete type (or on Kind) instead of inspecting
// arbitrary Go values at runtime. From converts native Go values, such as the
// output of a YAML decoder, into this union.
package property
