package interp

import (
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/lineage"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// registerLineageBuiltins adds the person/family navigation accessors of
// spec §4.11 (father, mother, nextsib, prevsib, parents, husband, wife,
// firstchild, lastchild, nspouses, nfamilies) and the record accessors
// (sex, male, female, key, tag, value, fullname, surname, root). There is
// no call-style spouse or givens accessor, and name is the name query in
// builtins_sequence.go. The navigation accessors wrap their
// gedcom/lineage.go counterparts; the FOR* iteration macros themselves
// (ForChildren, ForSpouses, etc.) are exercised through
// ast.LineageLoopStatement in eval.go rather than as call-style built-ins.
func registerLineageBuiltins(b map[string]BuiltinFunc) {
	b["father"] = nodeUnary("father", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.PersonToFather(n, ctx.Database)
	})
	b["mother"] = nodeUnary("mother", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.PersonToMother(n, ctx.Database)
	})
	b["nextsib"] = nodeUnary("nextsib", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.PersonToNextSibling(n, ctx.Database)
	})
	b["prevsib"] = nodeUnary("prevsib", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.PersonToPreviousSibling(n, ctx.Database)
	})
	b["parents"] = nodeUnary("parents", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.PersonToFamilyAsChild(n, ctx.Database)
	})
	b["husband"] = nodeUnary("husband", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.FamilyToHusband(n, ctx.Database)
	})
	b["wife"] = nodeUnary("wife", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.FamilyToWife(n, ctx.Database)
	})
	b["firstchild"] = nodeUnary("firstchild", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.FamilyToFirstChild(n, ctx.Database)
	})
	b["lastchild"] = nodeUnary("lastchild", func(n *gedcom.Node, ctx *Context) *gedcom.Node {
		return lineage.FamilyToLastChild(n, ctx.Database)
	})

	b["nspouses"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		person, err := nodeArg(ev, ctx, call, 0, "nspouses")
		if err != nil {
			return Null, err
		}
		return NewInt(int64(lineage.NumberOfSpouses(person, ctx.Database))), nil
	}

	b["nfamilies"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		person, err := nodeArg(ev, ctx, call, 0, "nfamilies")
		if err != nil {
			return Null, err
		}
		return NewInt(int64(len(lineage.ForFamSs(person, ctx.Database)))), nil
	}

	b["sex"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		person, err := nodeArg(ev, ctx, call, 0, "sex")
		if err != nil {
			return Null, err
		}
		return NewString(gedcom.PersonSex(person).String()), nil
	}

	b["male"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		person, err := nodeArg(ev, ctx, call, 0, "male")
		if err != nil {
			return Null, err
		}
		return NewBool(gedcom.PersonSex(person) == gedcom.SexMale), nil
	}

	b["female"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		person, err := nodeArg(ev, ctx, call, 0, "female")
		if err != nil {
			return Null, err
		}
		return NewBool(gedcom.PersonSex(person) == gedcom.SexFemale), nil
	}

	b["key"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		node, err := nodeArg(ev, ctx, call, 0, "key")
		if err != nil {
			return Null, err
		}
		return NewString(node.Root().Key), nil
	}

	b["tag"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		node, err := nodeArg(ev, ctx, call, 0, "tag")
		if err != nil {
			return Null, err
		}
		return NewString(node.Tag), nil
	}

	b["value"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		node, err := nodeArg(ev, ctx, call, 0, "value")
		if err != nil {
			return Null, err
		}
		return NewString(node.Value), nil
	}

	b["fullname"] = nameUnary("fullname", func(name string) string { return name })
	b["surname"] = nameUnary("surname", gedcom.Surname)

	b["root"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		node, err := nodeArg(ev, ctx, call, 0, "root")
		if err != nil {
			return Null, err
		}
		return NewNode(node.Root()), nil
	}
}

// nodeUnary builds a BuiltinFunc from a one-node-argument accessor that
// needs ctx to resolve database-linked references (FAMC/FAMS/HUSB/WIFE/CHIL).
func nodeUnary(who string, op func(*gedcom.Node, *Context) *gedcom.Node) BuiltinFunc {
	return func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		node, err := nodeArg(ev, ctx, call, 0, who)
		if err != nil {
			return Null, err
		}
		return NewNode(op(node, ctx)), nil
	}
}

// nameUnary builds a BuiltinFunc that extracts a person's first NAME value
// and runs a pure string transform over it.
func nameUnary(who string, op func(string) string) BuiltinFunc {
	return func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		person, err := nodeArg(ev, ctx, call, 0, who)
		if err != nil {
			return Null, err
		}
		name := person.FirstChildWithTag("NAME")
		if name == nil {
			return NewString(""), nil
		}
		return NewString(op(name.Value)), nil
	}
}

// nodeArg evaluates call's i'th argument and requires it to be a node.
func nodeArg(ev *Evaluator, ctx *Context, call *ast.CallExpression, i int, who string) (*gedcom.Node, error) {
	v, err := ev.evalArg(call, i, ctx)
	if err != nil {
		return nil, err
	}
	if v.Type != PVNode || v.Node == nil {
		return nil, newScriptError(call, "argument %d to %s must be a person or family", i+1, who)
	}
	return v.Node, nil
}
