package interp

import (
	"os"

	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// registerOutputBuiltins adds the script output built-ins of spec §4.11:
// print, newfile, outfile, pagemode, linemode, pos, row, col, pageout.
// Grounded on DeadEndsLib/Interp/rassa.c, adapted to wrap this package's
// Output type rather than rassa.c's global outputmode/curcol/currow state.
func registerOutputBuiltins(b map[string]BuiltinFunc) {
	b["print"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		for i := range call.Args {
			v, err := ev.evalArg(call, i, ctx)
			if err != nil {
				return Null, err
			}
			ctx.Output.Write(v.String())
		}
		return Null, nil
	}

	b["newfile"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		if len(call.Args) == 0 {
			ctx.Output.Replace(os.Stdout, "stdout")
			return Null, nil
		}
		name, err := stringArg(ev, ctx, call, 0, "newfile")
		if err != nil {
			return Null, err
		}
		if name == "" {
			return Null, newScriptError(call, "first argument to newfile must be a non-empty string")
		}
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if len(call.Args) > 1 {
			v, err := ev.evalArg(call, 1, ctx)
			if err != nil {
				return Null, err
			}
			if v.Type != PVBool {
				return Null, newScriptError(call, "second argument to newfile must be a boolean")
			}
			if v.Bool {
				flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
			}
		}
		file, err := os.OpenFile(name, flags, 0644)
		if err != nil {
			return Null, newScriptError(call, "could not open file: %s", name)
		}
		ctx.Output.Replace(file, name)
		return Null, nil
	}

	b["outfile"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		return NewString(ctx.Output.Name()), nil
	}

	b["pagemode"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		cols, err := intArg(ev, ctx, call, 0, "pagemode")
		if err != nil {
			return Null, err
		}
		rows, err := intArg(ev, ctx, call, 1, "pagemode")
		if err != nil {
			return Null, err
		}
		if !ctx.Output.SetPageMode(int(rows), int(cols)) {
			return Null, newScriptError(call, "the value of rows or cols to pagemode is out of range")
		}
		return Null, nil
	}

	b["linemode"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		ctx.Output.SetBuffered()
		return Null, nil
	}

	b["pos"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		col, err := intArg(ev, ctx, call, 0, "pos")
		if err != nil {
			return Null, err
		}
		row, err := intArg(ev, ctx, call, 1, "pos")
		if err != nil {
			return Null, err
		}
		if !ctx.Output.MoveTo(int(row), int(col)) {
			return Null, newScriptError(call, "there is an error in the page mode, row or col values")
		}
		return Null, nil
	}

	b["row"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		row, err := intArg(ev, ctx, call, 0, "row")
		if err != nil {
			return Null, err
		}
		if !ctx.Output.MoveTo(int(row), 1) {
			return Null, newScriptError(call, "there is an error in the output mode or row value")
		}
		return Null, nil
	}

	b["col"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		col, err := intArg(ev, ctx, call, 0, "col")
		if err != nil {
			return Null, err
		}
		if col < 1 {
			col = 1
		}
		ctx.Output.MoveTo(ctx.Output.CurrentRow(), int(col))
		return Null, nil
	}

	b["pageout"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		ctx.Output.PageOut()
		return Null, nil
	}
}
