package hclexpr_test

import (
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
	"github.com/vk/fittings/internal/hclexpr"
)

// parseExpr is a test helper to quickly get an hcl.Expression from a string.
func parseExpr(t *testing.T, exprStr string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(exprStr), "test.hcl", hcl.Pos{Line: 1, Column: 1})
	require.False(t, diags.HasErrors(), "Expression parsing failed: %s", diags.Error())
	return expr
}

func keys(refs []hcl.Traversal) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, hclexpr.TraversalKey(r))
	}
	return out
}

func TestContainer_AddAndExtract(t *testing.T) {
	c := hclexpr.NewContainer(
		parseExpr(t, `upper("hello")`),
		parseExpr(t, `data.name`),
		parseExpr(t, `"<b>${lower(data.title)}</b>"`),
		parseExpr(t, `data.name`),
	)

	require.Equal(t, []string{"lower", "upper"}, c.CalledFunctions())
	require.Equal(t, []string{"data.name", "data.title"}, keys(c.References()))
	require.False(t, c.IsStatic())
}

func TestContainer_AddAfterExtract(t *testing.T) {
	c := hclexpr.NewContainer(parseExpr(t, `data.first`))
	require.Equal(t, []string{"data.first"}, keys(c.References()))

	c.Add(parseExpr(t, `data.second`), parseExpr(t, `my_func()`))

	require.Equal(t, []string{"my_func"}, c.CalledFunctions())
	require.Equal(t, []string{"data.first", "data.second"}, keys(c.References()))
}

func TestContainer_Static(t *testing.T) {
	c := hclexpr.NewContainer(parseExpr(t, `join(",", ["a", "b"])`), nil)
	require.True(t, c.IsStatic())
	require.Empty(t, c.References())
	require.Equal(t, []string{"join"}, c.CalledFunctions())
}

func TestContainer_Check(t *testing.T) {
	roots := []string{"data", "name"}
	funcs := []string{"upper"}

	ok := hclexpr.NewContainer(parseExpr(t, `"${upper(data.x)}-${name}"`))
	require.False(t, ok.Check(roots, funcs).HasErrors())

	bad := hclexpr.NewContainer(parseExpr(t, `"${var.x}${shout(data.y)}"`))
	diags := bad.Check(roots, funcs)
	require.Len(t, diags, 2)
	require.Contains(t, diags[0].Detail, `"var.x"`)
	require.Contains(t, diags[1].Detail, `"shout"`)
}

func TestContainer_ConcurrentAccess(t *testing.T) {
	c := hclexpr.NewContainer(
		parseExpr(t, `data.a`),
		parseExpr(t, `data.b`),
		parseExpr(t, `func_a()`),
	)

	var wg sync.WaitGroup
	numGoroutines := 100
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				require.Len(t, c.References(), 2)
			} else {
				require.Len(t, c.CalledFunctions(), 1)
			}
		}()
	}

	wg.Wait()
}
