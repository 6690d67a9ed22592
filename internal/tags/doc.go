// Package tags implements flat placeholder substitution.
//
// A tag is a namespaced placeholder such as {fittings:hash}. The namespace
// keeps tags from colliding with other templating systems that may share the
// same text (HCL interpolation, client-side templates). There is no control
// flow: a tag is either replaced by a value from the data set or left exactly
// as written.
//
// Substitution scans for tokens and splices strings directly. Replacement
// values are never interpreted, so "$1" or "$&" in a value arrive verbatim.
package tags
