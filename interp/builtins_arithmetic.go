package interp

import "github.com/lesfleursdelanuitdev/deadends-go/interp/ast"

// registerArithmeticBuiltins adds incr/decr/neg (the unary arithmetic
// built-ins; binary + − × ÷ mod exp are parsed as infix operators, see
// Arith in pvalue.go), grounded on DeadEndsLib/Interp/Includes/pvalue.h's
// PValue-arithmetic function list. There are no named comparison
// built-ins; comparisons are the infix operators handled by Compare.
func registerArithmeticBuiltins(b map[string]BuiltinFunc) {
	b["incr"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		return bumpIdent(ev, ctx, call, 1)
	}
	b["decr"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		return bumpIdent(ev, ctx, call, -1)
	}
	b["neg"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		v, err := ev.evalArg(call, 0, ctx)
		if err != nil {
			return Null, err
		}
		switch v.Type {
		case PVInt:
			return NewInt(-v.Int), nil
		case PVFloat:
			return NewFloat(-v.Float), nil
		default:
			return Null, newScriptError(call, "neg requires a numeric value")
		}
	}
}

// bumpIdent implements incr/decr: both require an identifier argument
// whose bound value they adjust in place and return.
func bumpIdent(ev *Evaluator, ctx *Context, call *ast.CallExpression, delta int64) (PValue, error) {
	name, ok := argIdent(call, 0)
	if !ok {
		return Null, newScriptError(call, "%s requires an identifier argument", call.Name)
	}
	v, _ := ctx.Lookup(name)
	switch v.Type {
	case PVFloat:
		v = NewFloat(v.Float + float64(delta))
	default:
		v = NewInt(v.Int + delta)
	}
	ctx.Assign(name, v)
	return v, nil
}
