// Package fittings is the framework definition engine.
//
// A Definition declares properties (template, fragment, library, registries
// and anything else a framework wants to expose). New layers the Definition
// over the defaults, validates it and wires its registries into a host.
// Get reads a property back: "library" is resolved into descriptors, other
// properties are evaluated, which means computed properties are invoked with
// the instance passed as self and literal strings get tag substitution.
//
// Instances are single-use. Destroy unregisters middleware, detaches
// listeners and drops the host; the instance cannot be used afterwards.
//
// An instance is not safe for concurrent use.
package fittings
