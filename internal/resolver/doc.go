// Package resolver turns a declared library property into descriptors.
//
// Libraries are client side bundles surfaced under an export name. A library
// can be declared as a single path, a module-style reference, a list of either,
// a pre-shaped {path, expose} object, or a function producing any of those.
// Resolve normalizes all of these into []property.Descriptor.
//
// Module-style references are located through a Locator. FileLocator resolves
// them against the directory the framework was declared in.
package resolver
