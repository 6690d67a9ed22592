// Package host defines the collaborators a framework wires itself into and
// ships Local, an in-memory host used by the CLI and the tests.
//
// A host owns three registries: an ordered middleware chain, a plugin
// registry, and an event bus. Frameworks only see the narrow interfaces in
// this package. Plugins can be registered but never removed; there is no such
// capability on a host.
package host
