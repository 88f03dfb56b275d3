package interp

import "github.com/lesfleursdelanuitdev/deadends-go/interp/ast"

// registerTableBuiltins adds table/insert/lookup (spec §4.11). Grounded on
// DeadEndsLib/Interp/builtintable.c's "new" insert/lookup family
// (__newinsert/__newlookup), which accepts either a string or a bare
// identifier as the key — the Open Question in spec §9 about divergent
// "old"/"new" insert variants resolves in favor of this family since it
// strictly generalizes the older string-only one (see DESIGN.md).
func registerTableBuiltins(b map[string]BuiltinFunc) {
	b["table"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		name, ok := argIdent(call, 0)
		if !ok {
			return Null, newScriptError(call, "the argument to table must be an identifier")
		}
		ctx.Assign(name, NewTable())
		return Null, nil
	}

	b["insert"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		table, err := tableArg(ev, ctx, call, 0, "insert")
		if err != nil {
			return Null, err
		}
		key, err := tableKeyArg(ev, ctx, call, 1, "insert")
		if err != nil {
			return Null, err
		}
		value, err := ev.evalArg(call, 2, ctx)
		if err != nil {
			return Null, err
		}
		table[key] = value
		return Null, nil
	}

	b["lookup"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		table, err := tableArg(ev, ctx, call, 0, "lookup")
		if err != nil {
			return Null, err
		}
		key, err := tableKeyArg(ev, ctx, call, 1, "lookup")
		if err != nil {
			return Null, err
		}
		if value, ok := table[key]; ok {
			return value, nil
		}
		return Null, nil
	}
}

// tableArg evaluates call's i'th argument and requires it to be a table.
func tableArg(ev *Evaluator, ctx *Context, call *ast.CallExpression, i int, who string) (map[string]PValue, error) {
	v, err := ev.evalArg(call, i, ctx)
	if err != nil {
		return nil, err
	}
	if v.Type != PVTable {
		return nil, newScriptError(call, "argument %d to %s must be a table", i+1, who)
	}
	return v.Table, nil
}

// tableKeyArg resolves call's i'th argument as a table key: a bare
// identifier with no binding is treated as its own name (DeadEndsLib's
// "new" insert/lookup behavior); anything else, including a bound
// identifier, is evaluated and must be a string.
func tableKeyArg(ev *Evaluator, ctx *Context, call *ast.CallExpression, i int, who string) (string, error) {
	if ident, ok := argIdent(call, i); ok {
		if _, bound := ctx.Lookup(ident); !bound {
			return ident, nil
		}
	}
	return stringArg(ev, ctx, call, i, who)
}
