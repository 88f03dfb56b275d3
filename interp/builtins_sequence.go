package interp

import (
	"bytes"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/lineage"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
)

// registerSequenceBuiltins adds the indiset/sequence built-ins of spec
// §4.11, each a thin wrapper over gedcom/lineage.Sequence's algebra.
// Grounded on DeadEndsLib/Interp/intrpseq.c's function set; close=true is
// never reachable from script built-ins there (every *set built-in passes
// false), so ancestorset/descendentset/siblingset hard-code close=false
// the same way.
func registerSequenceBuiltins(b map[string]BuiltinFunc) {
	b["indiset"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		name, ok := argIdent(call, 0)
		if !ok {
			return Null, newScriptError(call, "the argument to indiset must be an identifier")
		}
		ctx.Assign(name, PValue{Type: PVSequence, Seq: lineage.NewSequence(ctx.Database)})
		return Null, nil
	}

	b["addtoset"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "addtoset")
		if err != nil {
			return Null, err
		}
		key, err := personKeyArg(ev, ctx, call, 1, "addtoset")
		if err != nil {
			return Null, err
		}
		payload, err := ev.evalArg(call, 2, ctx)
		if err != nil {
			return Null, err
		}
		seq.Append(key, payload)
		return Null, nil
	}

	b["lengthset"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "lengthset")
		if err != nil {
			return Null, err
		}
		return NewInt(int64(seq.Len())), nil
	}

	b["inset"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "inset")
		if err != nil {
			return Null, err
		}
		key, err := personKeyArg(ev, ctx, call, 1, "inset")
		if err != nil {
			return Null, err
		}
		return NewBool(seq.IsIn(key)), nil
	}

	b["deletefromset"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "deletefromset")
		if err != nil {
			return Null, err
		}
		key, err := personKeyArg(ev, ctx, call, 1, "deletefromset")
		if err != nil {
			return Null, err
		}
		return NewBool(seq.RemoveFirst(key)), nil
	}

	b["namesort"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "namesort")
		if err != nil {
			return Null, err
		}
		seq.NameSort()
		return Null, nil
	}

	b["keysort"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "keysort")
		if err != nil {
			return Null, err
		}
		seq.KeySort()
		return Null, nil
	}

	b["uniqueset"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "uniqueset")
		if err != nil {
			return Null, err
		}
		return PValue{Type: PVSequence, Seq: seq.Unique()}, nil
	}

	b["union"] = seqBinary("union", lineage.Union)
	b["intersect"] = seqBinary("intersect", lineage.Intersect)
	b["difference"] = seqBinary("difference", lineage.Difference)

	b["parentset"] = seqUnary("parentset", func(s *lineage.Sequence) *lineage.Sequence { return s.ParentSequence() })
	b["childset"] = seqUnary("childset", func(s *lineage.Sequence) *lineage.Sequence { return s.ChildSequence() })
	b["siblingset"] = seqUnary("siblingset", func(s *lineage.Sequence) *lineage.Sequence { return s.SiblingSequence(false) })
	b["spouseset"] = seqUnary("spouseset", func(s *lineage.Sequence) *lineage.Sequence { return s.SpouseSequence() })
	b["ancestorset"] = seqUnary("ancestorset", func(s *lineage.Sequence) *lineage.Sequence { return s.AncestorSequence(false) })
	b["descendentset"] = seqUnary("descendentset", func(s *lineage.Sequence) *lineage.Sequence { return s.DescendentSequence(false) })
	b["descendantset"] = b["descendentset"] // two spellings allowed, per intrpseq.c

	b["gengedcom"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, "gengedcom")
		if err != nil {
			return Null, err
		}
		var buf bytes.Buffer
		for _, key := range seq.Keys() {
			root := ctx.Database.Records.Get(key)
			if root == nil {
				continue
			}
			if err := gedcom.EmitRecord(&buf, root); err != nil {
				return Null, newScriptError(call, "gengedcom: %s", err)
			}
		}
		ctx.Output.Write(buf.String())
		return Null, nil
	}

	b["name"] = func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		query, err := stringArg(ev, ctx, call, 0, "name")
		if err != nil {
			return Null, err
		}
		return PValue{Type: PVSequence, Seq: nameQuery(ctx.Database, query)}, nil
	}
}

// nameQuery returns a Sequence of every person key whose name index entry
// matches query's name key and whose full name piece-matches query (spec
// §4.6/§4.7: the index narrows by phonetic key, ExactMatch filters further).
func nameQuery(db *database.Database, query string) *lineage.Sequence {
	seq := lineage.NewSequence(db)
	nameKey := gedcom.NameKey(query)
	for _, key := range db.NameIndex.Search(nameKey) {
		person := db.KeyToPerson(key)
		if person == nil {
			continue
		}
		for _, nameNode := range person.ChildrenWithTag("NAME") {
			if gedcom.ExactMatch(query, nameNode.Value) {
				seq.Append(key, nil)
				break
			}
		}
	}
	return seq
}

// seqUnary builds a BuiltinFunc from a one-Sequence-argument operation.
func seqUnary(who string, op func(*lineage.Sequence) *lineage.Sequence) BuiltinFunc {
	return func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		seq, err := seqArg(ev, ctx, call, 0, who)
		if err != nil {
			return Null, err
		}
		return PValue{Type: PVSequence, Seq: op(seq)}, nil
	}
}

// seqBinary builds a BuiltinFunc from a two-Sequence-argument operation.
func seqBinary(who string, op func(a, b *lineage.Sequence) *lineage.Sequence) BuiltinFunc {
	return func(ev *Evaluator, ctx *Context, call *ast.CallExpression) (PValue, error) {
		a, err := seqArg(ev, ctx, call, 0, who)
		if err != nil {
			return Null, err
		}
		c, err := seqArg(ev, ctx, call, 1, who)
		if err != nil {
			return Null, err
		}
		return PValue{Type: PVSequence, Seq: op(a, c)}, nil
	}
}

// seqArg evaluates call's i'th argument and requires it to be a sequence.
func seqArg(ev *Evaluator, ctx *Context, call *ast.CallExpression, i int, who string) (*lineage.Sequence, error) {
	v, err := ev.evalArg(call, i, ctx)
	if err != nil {
		return nil, err
	}
	if v.Type != PVSequence || v.Seq == nil {
		return nil, newScriptError(call, "argument %d to %s must be a set", i+1, who)
	}
	return v.Seq, nil
}

// personKeyArg evaluates call's i'th argument and requires it to be a
// person node, returning its key (DeadEndsLib's addtoset/inset/
// deletefromset all take a GNode* and use its key, per intrpseq.c).
func personKeyArg(ev *Evaluator, ctx *Context, call *ast.CallExpression, i int, who string) (string, error) {
	v, err := ev.evalArg(call, i, ctx)
	if err != nil {
		return "", err
	}
	if v.Type != PVNode || v.Node == nil {
		return "", newScriptError(call, "argument %d to %s must be a person", i+1, who)
	}
	return v.Node.Key, nil
}
