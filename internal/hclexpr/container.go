// Package hclexpr collects HCL expressions and reports what they reference:
// variable traversals and called functions. The HCL loader uses it to decide
// whether an attribute is static or computed and to reject references the
// evaluation context will never provide.
package hclexpr

import (
	"fmt"
	"slices"
	"sync"

	"github.com/hashicorp/hcl/v2"
)

// Container is a thread-safe helper that gathers HCL expressions and provides
// analysis results, such as variable references and function calls.
type Container struct {
	analyzeOnce sync.Once

	mu          sync.RWMutex
	expressions []hcl.Expression

	references      []hcl.Traversal
	calledFunctions []string
}

// NewContainer creates a new, empty expression container.
func NewContainer(exprs ...hcl.Expression) *Container {
	c := &Container{}
	c.Add(exprs...)
	return c
}

// Add adds one or more expressions to the container for analysis.
// It safely ignores any nil expressions.
func (c *Container) Add(exprs ...hcl.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Must not race with the getters; all Adds happen while parsing.
	c.analyzeOnce = sync.Once{}

	for _, expr := range exprs {
		if expr != nil {
			c.expressions = append(c.expressions, expr)
		}
	}
}

func (c *Container) analyze() {
	c.analyzeOnce.Do(func() {
		c.mu.RLock()
		refs, funcs := extractReferencesAndFunctions(c.expressions...)
		c.mu.RUnlock()

		c.mu.Lock()
		c.references = refs
		c.calledFunctions = funcs
		c.mu.Unlock()
	})
}

// References returns all unique variable traversals found in the expressions.
func (c *Container) References() []hcl.Traversal {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.references
}

// CalledFunctions returns all unique function calls found in the expressions.
func (c *Container) CalledFunctions() []string {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.calledFunctions
}

// IsStatic reports whether no expression references a variable, so the
// values can be evaluated once at load time.
func (c *Container) IsStatic() bool {
	return len(c.References()) == 0
}

// Check reports an error diagnostic for every reference whose root is not in
// roots and every call to a function not in funcs.
func (c *Container) Check(roots, funcs []string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, ref := range c.References() {
		if slices.Contains(roots, ref.RootName()) {
			continue
		}
		rng := ref.SourceRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported reference",
			Detail:   fmt.Sprintf("%q is not available here; expressions may only refer to %v.", TraversalKey(ref), roots),
			Subject:  &rng,
		})
	}
	for _, name := range c.CalledFunctions() {
		if slices.Contains(funcs, name) {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Call to unknown function",
			Detail:   fmt.Sprintf("There is no function named %q.", name),
		})
	}
	return diags
}
