package interp

import (
	"strings"

	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// registerStringBuiltins adds the six string operations spec §4.11 names:
// substring, trim, rjust ("right-justify"), upper, lower, capitalize.
// Grounded on the shape of DeadEndsLib's PVString-returning built-ins
// (single string argument plus, for substring/trim/rjust, one or two
// integer arguments) even though the trimmed original_source pack does not
// carry the string builtins file itself.
func registerStringBuiltins(b map[string]BuiltinFunc) {
	b["substring"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		str, err := stringArg(ev, ctx, call, 0, "substring")
		if err != nil {
			return Null, err
		}
		start, err := intArg(ev, ctx, call, 1, "substring")
		if err != nil {
			return Null, err
		}
		end, err := intArg(ev, ctx, call, 2, "substring")
		if err != nil {
			return Null, err
		}
		return NewString(substring(str, int(start), int(end))), nil
	}

	b["trim"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		str, err := stringArg(ev, ctx, call, 0, "trim")
		if err != nil {
			return Null, err
		}
		width, err := intArg(ev, ctx, call, 1, "trim")
		if err != nil {
			return Null, err
		}
		if int(width) >= len(str) || width < 0 {
			return NewString(str), nil
		}
		return NewString(str[:width]), nil
	}

	b["rjust"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		str, err := stringArg(ev, ctx, call, 0, "rjust")
		if err != nil {
			return Null, err
		}
		width, err := intArg(ev, ctx, call, 1, "rjust")
		if err != nil {
			return Null, err
		}
		if int(width) <= len(str) {
			return NewString(str), nil
		}
		return NewString(strings.Repeat(" ", int(width)-len(str)) + str), nil
	}

	b["upper"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		str, err := stringArg(ev, ctx, call, 0, "upper")
		if err != nil {
			return Null, err
		}
		return NewString(strings.ToUpper(str)), nil
	}

	b["lower"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		str, err := stringArg(ev, ctx, call, 0, "lower")
		if err != nil {
			return Null, err
		}
		return NewString(strings.ToLower(str)), nil
	}

	b["capitalize"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		str, err := stringArg(ev, ctx, call, 0, "capitalize")
		if err != nil {
			return Null, err
		}
		return NewString(capitalize(str)), nil
	}
}

// substring returns the 1-based, inclusive [start, end] slice of str,
// clamped to str's bounds; an empty or inverted range yields "".
func substring(str string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(str) {
		end = len(str)
	}
	if start > end {
		return ""
	}
	return str[start-1 : end]
}

// capitalize upper-cases the first letter of str and lower-cases the rest.
func capitalize(str string) string {
	if str == "" {
		return str
	}
	return strings.ToUpper(str[:1]) + strings.ToLower(str[1:])
}

// stringArg evaluates call's i'th argument and requires it to be a string.
func stringArg(ev *Evaluator, ctx *Context, call *ast.CallExpression, i int, who string) (string, error) {
	v, err := ev.evalArg(call, i, ctx)
	if err != nil {
		return "", err
	}
	if v.Type != PVString {
		return "", newScriptError(call, "argument %d to %s must be a string", i+1, who)
	}
	return v.Str, nil
}

// intArg evaluates call's i'th argument and requires it to be an integer.
func intArg(ev *Evaluator, ctx *Context, call *ast.CallExpression, i int, who string) (int64, error) {
	v, err := ev.evalArg(call, i, ctx)
	if err != nil {
		return 0, err
	}
	if v.Type != PVInt {
		return 0, newScriptError(call, "argument %d to %s must be an integer", i+1, who)
	}
	return v.Int, nil
}
