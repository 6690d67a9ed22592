package hcl_adapter

import (
	"sort"

	"github.com/vk/fittings/internal/resolver"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Variable roots available to computed expressions.
const (
	rootData = "data"
	rootName = "name"
)

var basenameFunc = function.New(&function.Spec{
	Description: "Returns the file name of a path without its final extension.",
	Params: []function.Parameter{
		{Name: "path", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		return cty.StringVal(resolver.Basename(args[0].AsString())), nil
	},
})

// Functions returns the functions callable from declaration expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"basename":  basenameFunc,
		"coalesce":  stdlib.CoalesceFunc,
		"concat":    stdlib.ConcatFunc,
		"format":    stdlib.FormatFunc,
		"join":      stdlib.JoinFunc,
		"length":    stdlib.LengthFunc,
		"lookup":    stdlib.LookupFunc,
		"lower":     stdlib.LowerFunc,
		"replace":   stdlib.ReplaceFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"upper":     stdlib.UpperFunc,
	}
}

// FunctionNames lists Functions() keys, sorted.
func FunctionNames() []string {
	funcs := Functions()
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
