package interp

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// registerRecordBuiltins adds the record-mutation built-ins of spec §4.11:
// createnode, addchild, removechild, addspouse, removespouse. The linkage
// operations wrap gedcom/splitjoin.go's AddChildToFamily/
// RemoveChildFromFamily/AddSpouseToFamily/RemoveSpouseFromFamily directly
// (spec §4.4); createnode builds a detached, unkeyed node. None of these
// built-ins attaches that node under another node: addchild/addspouse
// link existing records by key.
func registerRecordBuiltins(b map[string]BuiltinFunc) {
	b["createnode"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		tag, err := stringArg(ev, ctx, call, 0, "createnode")
		if err != nil {
			return Null, err
		}
		value := ""
		if len(call.Args) > 1 {
			value, err = stringArg(ev, ctx, call, 1, "createnode")
			if err != nil {
				return Null, err
			}
		}
		return NewNode(gedcom.NewNode("", tag, value)), nil
	}

	b["addchild"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		family, err := nodeArg(ev, ctx, call, 0, "addchild")
		if err != nil {
			return Null, err
		}
		child, err := nodeArg(ev, ctx, call, 1, "addchild")
		if err != nil {
			return Null, err
		}
		index := -1
		if len(call.Args) > 2 {
			n, err := intArg(ev, ctx, call, 2, "addchild")
			if err != nil {
				return Null, err
			}
			index = int(n)
		}
		gedcom.AddChildToFamily(family, child, index)
		return Null, nil
	}

	b["removechild"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		family, err := nodeArg(ev, ctx, call, 0, "removechild")
		if err != nil {
			return Null, err
		}
		child, err := nodeArg(ev, ctx, call, 1, "removechild")
		if err != nil {
			return Null, err
		}
		gedcom.RemoveChildFromFamily(family, child, nil)
		return Null, nil
	}

	b["addspouse"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		family, err := nodeArg(ev, ctx, call, 0, "addspouse")
		if err != nil {
			return Null, err
		}
		spouse, err := nodeArg(ev, ctx, call, 1, "addspouse")
		if err != nil {
			return Null, err
		}
		return NewBool(gedcom.AddSpouseToFamily(family, spouse)), nil
	}

	b["removespouse"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		family, err := nodeArg(ev, ctx, call, 0, "removespouse")
		if err != nil {
			return Null, err
		}
		spouse, err := nodeArg(ev, ctx, call, 1, "removespouse")
		if err != nil {
			return Null, err
		}
		gedcom.RemoveSpouseFromFamily(family, spouse, nil)
		return Null, nil
	}
}
