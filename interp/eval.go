package interp

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/lineage"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// Signal is the non-local control-flow result of executing a statement
// (spec §4.11 "Control flow": break/continue/return). Grounded on
// DeadEndsLib/Interp/Includes/interp.h's InterpType enum, minus InterpError
// (an error aborts the script through the returned Go error instead of a
// signal value).
type Signal int

const (
	SigNone Signal = iota
	SigBreak
	SigContinue
	SigReturn
)

// Evaluator walks an interp/ast.Program, dispatching builtin calls through
// its builtin table and user calls through the Context's procedure/
// function tables.
type Evaluator struct {
	builtins map[string]BuiltinFunc
}

// BuiltinFunc implements one built-in function. It receives the call's
// unevaluated argument expressions rather than values, since some
// built-ins (table, list, forlist-style declarators) bind an identifier
// by name instead of evaluating it — each implementation calls ev.Eval on
// the arguments it needs, mirroring how DeadEndsLib/Interp/builtintable.c's
// built-ins call evaluate() selectively per argument.
type BuiltinFunc func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error)

// NewEvaluator builds an Evaluator with the full built-in table registered
// (spec §4.11 "Built-ins").
func NewEvaluator() *Evaluator {
	ev := &Evaluator{builtins: make(map[string]BuiltinFunc)}
	registerArithmeticBuiltins(ev.builtins)
	registerStringBuiltins(ev.builtins)
	registerListBuiltins(ev.builtins)
	registerTableBuiltins(ev.builtins)
	registerSequenceBuiltins(ev.builtins)
	registerLineageBuiltins(ev.builtins)
	registerRecordBuiltins(ev.builtins)
	registerOutputBuiltins(ev.builtins)
	return ev
}

// CallProcedure invokes a top-level (typically zero-argument "main")
// procedure by name.
func (ev *Evaluator) CallProcedure(name string, ctx *Context, args []PValue) error {
	proc, ok := ctx.Procedures[name]
	if !ok {
		return newScriptError(&ast.Identifier{Value: name}, "no such procedure %q", name)
	}
	_, _, err := ev.callRoutine(proc.Token, proc.Params, proc.Body, ctx, args)
	return err
}

func (ev *Evaluator) callRoutine(call ast.Node, params []string, body *ast.BlockStatement, ctx *Context, args []PValue) (Signal, PValue, error) {
	pop := ctx.PushFrame(call)
	defer pop()
	for i, param := range params {
		if i < len(args) {
			ctx.Frame.Locals.Set(param, args[i])
		} else {
			ctx.Frame.Locals.Set(param, Null)
		}
	}
	sig, value, err := ev.execBlock(body, ctx)
	if err != nil {
		return SigNone, Null, err
	}
	if sig == SigReturn {
		return SigNone, value, nil
	}
	return SigNone, Null, nil
}

// execBlock executes every statement in block in order, stopping early on
// the first non-SigNone signal or error.
func (ev *Evaluator) execBlock(block *ast.BlockStatement, ctx *Context) (Signal, PValue, error) {
	for _, stmt := range block.Statements {
		sig, value, err := ev.execStatement(stmt, ctx)
		if err != nil || sig != SigNone {
			return sig, value, err
		}
	}
	return SigNone, Null, nil
}

func (ev *Evaluator) execStatement(stmt ast.Statement, ctx *Context) (Signal, PValue, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := ev.Eval(s.Expression, ctx)
		return SigNone, Null, err

	case *ast.AssignStatement:
		value, err := ev.Eval(s.Value, ctx)
		if err != nil {
			return SigNone, Null, err
		}
		ctx.Assign(s.Name, value)
		return SigNone, Null, nil

	case *ast.IfStatement:
		for _, clause := range s.Clauses {
			cond, err := ev.Eval(clause.Condition, ctx)
			if err != nil {
				return SigNone, Null, err
			}
			if cond.IsTruthy() {
				return ev.execBlock(clause.Body, ctx)
			}
		}
		if s.Else != nil {
			return ev.execBlock(s.Else, ctx)
		}
		return SigNone, Null, nil

	case *ast.WhileStatement:
		for {
			cond, err := ev.Eval(s.Condition, ctx)
			if err != nil {
				return SigNone, Null, err
			}
			if !cond.IsTruthy() {
				return SigNone, Null, nil
			}
			sig, value, err := ev.execBlock(s.Body, ctx)
			if err != nil {
				return SigNone, Null, err
			}
			switch sig {
			case SigBreak:
				return SigNone, Null, nil
			case SigReturn:
				return sig, value, nil
			}
		}

	case *ast.BreakStatement:
		return SigBreak, Null, nil

	case *ast.ContinueStatement:
		return SigContinue, Null, nil

	case *ast.ReturnStatement:
		if s.Value == nil {
			return SigReturn, Null, nil
		}
		value, err := ev.Eval(s.Value, ctx)
		if err != nil {
			return SigNone, Null, err
		}
		return SigReturn, value, nil

	case *ast.ForListStatement:
		return ev.execForList(s, ctx)

	case *ast.ForIndiSetStatement:
		return ev.execForIndiSet(s, ctx)

	case *ast.LineageLoopStatement:
		return ev.execLineageLoop(s, ctx)

	case *ast.TraverseStatement:
		return ev.execTraverse(s, ctx)

	default:
		return SigNone, Null, newScriptError(stmt, "unsupported statement")
	}
}

func (ev *Evaluator) execForList(s *ast.ForListStatement, ctx *Context) (Signal, PValue, error) {
	listVal, err := ev.Eval(s.List, ctx)
	if err != nil {
		return SigNone, Null, err
	}
	if listVal.Type != PVList || listVal.List == nil {
		return SigNone, Null, newScriptError(s, "forlist requires a list")
	}
	for i, elem := range listVal.List.Elems {
		ctx.Assign(s.Elem, elem)
		if s.Counter != "" {
			ctx.Assign(s.Counter, NewInt(int64(i+1)))
		}
		sig, value, err := ev.execBlock(s.Body, ctx)
		if err != nil {
			return SigNone, Null, err
		}
		switch sig {
		case SigBreak:
			return SigNone, Null, nil
		case SigReturn:
			return sig, value, nil
		}
	}
	return SigNone, Null, nil
}

func (ev *Evaluator) execForIndiSet(s *ast.ForIndiSetStatement, ctx *Context) (Signal, PValue, error) {
	seqVal, err := ev.Eval(s.Sequence, ctx)
	if err != nil {
		return SigNone, Null, err
	}
	if seqVal.Type != PVSequence || seqVal.Seq == nil {
		return SigNone, Null, newScriptError(s, "forindiset requires a sequence")
	}
	for i, key := range seqVal.Seq.Keys() {
		person := ctx.Database.KeyToPerson(key)
		ctx.Assign(s.Elem, NewNode(person))
		if s.Counter != "" {
			ctx.Assign(s.Counter, NewInt(int64(i+1)))
		}
		sig, value, err := ev.execBlock(s.Body, ctx)
		if err != nil {
			return SigNone, Null, err
		}
		switch sig {
		case SigBreak:
			return SigNone, Null, nil
		case SigReturn:
			return sig, value, nil
		}
	}
	return SigNone, Null, nil
}

func (ev *Evaluator) execLineageLoop(s *ast.LineageLoopStatement, ctx *Context) (Signal, PValue, error) {
	subjectVal, err := ev.Eval(s.Subject, ctx)
	if err != nil {
		return SigNone, Null, err
	}
	if subjectVal.Type != PVNode {
		return SigNone, Null, newScriptError(s, "%s requires a record", s.Token.Literal)
	}
	var nodes []PValue
	switch s.Kind {
	case ast.LoopChildren:
		for _, n := range lineage.ForChildren(subjectVal.Node, ctx.Database) {
			nodes = append(nodes, NewNode(n))
		}
	case ast.LoopSpouses:
		for _, n := range lineage.ForSpouses(subjectVal.Node, ctx.Database) {
			nodes = append(nodes, NewNode(n))
		}
	case ast.LoopFamsFamilies:
		for _, n := range lineage.ForFamSs(subjectVal.Node, ctx.Database) {
			nodes = append(nodes, NewNode(n))
		}
	case ast.LoopFamcFamilies:
		for _, n := range lineage.ForFamCs(subjectVal.Node, ctx.Database) {
			nodes = append(nodes, NewNode(n))
		}
	}
	for _, n := range nodes {
		ctx.Assign(s.Elem, n)
		sig, value, err := ev.execBlock(s.Body, ctx)
		if err != nil {
			return SigNone, Null, err
		}
		switch sig {
		case SigBreak:
			return SigNone, Null, nil
		case SigReturn:
			return sig, value, nil
		}
	}
	return SigNone, Null, nil
}

func (ev *Evaluator) execTraverse(s *ast.TraverseStatement, ctx *Context) (Signal, PValue, error) {
	rootVal, err := ev.Eval(s.Root, ctx)
	if err != nil {
		return SigNone, Null, err
	}
	if rootVal.Type != PVNode {
		return SigNone, Null, newScriptError(s, "traverse requires a record")
	}
	var outerSig Signal
	var outerValue PValue
	var outerErr error
	baseDepth := gedcom.Depth(rootVal.Node)
	lineage.ForTraverse(rootVal.Node, func(n *gedcom.Node) bool {
		ctx.Assign(s.Elem, NewNode(n))
		ctx.Assign(s.Level, NewInt(int64(gedcom.Depth(n)-baseDepth)))
		sig, value, err := ev.execBlock(s.Body, ctx)
		if err != nil {
			outerErr = err
			return false
		}
		switch sig {
		case SigBreak:
			return false
		case SigReturn:
			outerSig, outerValue = sig, value
			return false
		}
		return true
	})
	return outerSig, outerValue, outerErr
}

// Eval evaluates expr in ctx, dispatching on its node tag as spec §4.11
// "Evaluation" describes: literal, identifier, builtin call, user-function
// call, user-procedure call.
func (ev *Evaluator) Eval(expr ast.Expression, ctx *Context) (PValue, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return NewInt(e.Value), nil
	case *ast.FloatLiteral:
		return NewFloat(e.Value), nil
	case *ast.StringLiteral:
		return NewString(e.Value), nil
	case *ast.Identifier:
		if value, ok := ctx.Lookup(e.Value); ok {
			return value, nil
		}
		return Null, nil
	case *ast.PrefixExpression:
		return ev.evalPrefix(e, ctx)
	case *ast.InfixExpression:
		return ev.evalInfix(e, ctx)
	case *ast.CallExpression:
		return ev.evalCall(e, ctx)
	default:
		return Null, newScriptError(expr, "unsupported expression")
	}
}

func (ev *Evaluator) evalPrefix(e *ast.PrefixExpression, ctx *Context) (PValue, error) {
	right, err := ev.Eval(e.Right, ctx)
	if err != nil {
		return Null, err
	}
	switch e.Operator {
	case "-":
		switch right.Type {
		case PVInt:
			return NewInt(-right.Int), nil
		case PVFloat:
			return NewFloat(-right.Float), nil
		}
	}
	return Null, newScriptError(e, "operator %s not defined for %s", e.Operator, right.Type)
}

func (ev *Evaluator) evalInfix(e *ast.InfixExpression, ctx *Context) (PValue, error) {
	left, err := ev.Eval(e.Left, ctx)
	if err != nil {
		return Null, err
	}
	right, err := ev.Eval(e.Right, ctx)
	if err != nil {
		return Null, err
	}
	switch e.Operator {
	case "+", "-", "*", "/", "mod", "exp", "^":
		op := e.Operator
		if op == "^" {
			op = "exp"
		}
		value, ok := Arith(op, left, right)
		if !ok {
			return Null, newScriptError(e, "invalid operands to %s: %s, %s", e.Operator, left.Type, right.Type)
		}
		return value, nil
	case "=", "!=", "<", "<=", ">", ">=":
		value, ok := Compare(e.Operator, left, right)
		if !ok {
			return Null, newScriptError(e, "invalid operands to %s: %s, %s", e.Operator, left.Type, right.Type)
		}
		return value, nil
	default:
		return Null, newScriptError(e, "unknown operator %s", e.Operator)
	}
}

// evalCall resolves a call by name against the builtin table, then the
// user function table, then the user procedure table, in that order (spec
// §4.11 "Call semantics": parameters are evaluated in the caller's frame
// and bound by name in the callee).
func (ev *Evaluator) evalCall(e *ast.CallExpression, ctx *Context) (PValue, error) {
	if builtin, ok := ev.builtins[e.Name]; ok {
		return builtin(ev, ctx, e)
	}

	args := make([]PValue, len(e.Args))
	for i, argExpr := range e.Args {
		value, err := ev.Eval(argExpr, ctx)
		if err != nil {
			return Null, err
		}
		args[i] = value
	}
	if fn, ok := ctx.Functions[e.Name]; ok {
		_, value, err := ev.callRoutine(fn.Token, fn.Params, fn.Body, ctx, args)
		return value, err
	}
	if proc, ok := ctx.Procedures[e.Name]; ok {
		_, value, err := ev.callRoutine(proc.Token, proc.Params, proc.Body, ctx, args)
		return value, err
	}
	return Null, newScriptError(e, "no such function or procedure %q", e.Name)
}

// evalArg evaluates call's i'th argument, or returns Null if the call was
// not given that many arguments.
func (ev *Evaluator) evalArg(call *ast.CallExpression, i int, ctx *Context) (PValue, error) {
	if i >= len(call.Args) {
		return Null, nil
	}
	return ev.Eval(call.Args[i], ctx)
}

// argIdent extracts the bare identifier name of call's i'th argument, for
// built-ins (table, list, indiset) that bind a variable by name rather
// than by value.
func argIdent(call *ast.CallExpression, i int) (string, bool) {
	if i >= len(call.Args) {
		return "", false
	}
	ident, ok := call.Args[i].(*ast.Identifier)
	if !ok {
		return "", false
	}
	return ident.Value, true
}
