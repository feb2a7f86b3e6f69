// Package query evaluates expressions against sanitized checkpoint
// summaries.
//
// Expressions use expr-lang syntax and see the summary as plain Go
// data: top-level mapping keys become variables, and the whole summary
// is always available as `root`, e.g.
//
//	query.Run(v, `hyper_parameters.roll_out`)
//	query.Run(v, `len(root)`)
package query

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/modelpeek/go-modelpeek/sanitize"
)

// Env exports the variables an expression can reference.
func Env(v *sanitize.Value) map[string]any {
	env := map[string]any{
		"root": v.Interface(),
	}
	if v.Kind != sanitize.MappingKind {
		return env
	}
	for i := range v.Fields {
		key := v.Fields[i].KeyString()
		if key == "root" {
			continue
		}
		env[key] = v.Values[i].Interface()
	}
	return env
}

// Run compiles and evaluates expression against the summary.
func Run(v *sanitize.Value, expression string) (any, error) {
	prg, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	res, err := expr.Run(prg, Env(v))
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", expression, err)
	}
	return res, nil
}
