// Package interp implements the DeadEnds script runtime: program values,
// symbol tables, call frames, the execution context, and the tree-walking
// evaluator over interp/ast programs (spec §4.11).
package interp

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/lineage"
)

// PVType enumerates the dynamic types a PValue may hold.
type PVType int

const (
	PVNull PVType = iota
	PVInt
	PVFloat
	PVBool
	PVString
	PVNode
	PVList
	PVTable
	PVSequence
)

func (t PVType) String() string {
	switch t {
	case PVNull:
		return "null"
	case PVInt:
		return "int"
	case PVFloat:
		return "float"
	case PVBool:
		return "bool"
	case PVString:
		return "string"
	case PVNode:
		return "node"
	case PVList:
		return "list"
	case PVTable:
		return "table"
	case PVSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// ListBox is the backing store of a script list value. It is boxed behind
// a pointer (rather than held as a bare slice) so that two PValues
// produced by looking up the same identifier twice share one mutable list,
// matching the original C runtime's List* pointer semantics — push/pop/
// requeue/dequeue/setel mutate the list every binding of that identifier
// observes, with no re-assignment required.
type ListBox struct {
	Elems []PValue
}

// PValue is a dynamically typed script value (spec §4.11 "Program
// values"). Exactly one of the typed fields is meaningful, selected by
// Type. List and Table are reference types (a pointer and a map,
// respectively) so that container mutation built-ins affect every holder
// of the value, matching spec §3's "program-value strings themselves are
// value types ... boxed only when inserted into containers".
type PValue struct {
	Type  PVType
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Node  *gedcom.Node
	List  *ListBox
	Table map[string]PValue
	Seq   *lineage.Sequence
}

// NewList creates a fresh, empty list value.
func NewList() PValue { return PValue{Type: PVList, List: &ListBox{}} }

// NewTable creates a fresh, empty table value.
func NewTable() PValue { return PValue{Type: PVTable, Table: make(map[string]PValue)} }

// Null, True and False are the canonical null and boolean PValues.
var (
	Null  = PValue{Type: PVNull}
	True  = PValue{Type: PVBool, Bool: true}
	False = PValue{Type: PVBool, Bool: false}
)

// NewInt, NewFloat, NewString, NewBool and NewNode build PValues of the
// corresponding dynamic type.
func NewInt(v int64) PValue      { return PValue{Type: PVInt, Int: v} }
func NewFloat(v float64) PValue  { return PValue{Type: PVFloat, Float: v} }
func NewString(v string) PValue  { return PValue{Type: PVString, Str: v} }
func NewBool(v bool) PValue {
	if v {
		return True
	}
	return False
}
func NewNode(n *gedcom.Node) PValue { return PValue{Type: PVNode, Node: n} }

// IsTruthy implements the coercion-to-boolean rule of spec §4.11: non-null,
// non-zero, non-empty.
func (v PValue) IsTruthy() bool {
	switch v.Type {
	case PVNull:
		return false
	case PVInt:
		return v.Int != 0
	case PVFloat:
		return v.Float != 0
	case PVBool:
		return v.Bool
	case PVString:
		return v.Str != ""
	case PVNode:
		return v.Node != nil
	case PVList:
		return v.List != nil && len(v.List.Elems) != 0
	case PVTable:
		return len(v.Table) != 0
	case PVSequence:
		return v.Seq != nil && v.Seq.Len() != 0
	default:
		return false
	}
}

// String renders v for `print`/`log` style built-ins.
func (v PValue) String() string {
	switch v.Type {
	case PVNull:
		return ""
	case PVInt:
		return fmt.Sprintf("%d", v.Int)
	case PVFloat:
		return fmt.Sprintf("%g", v.Float)
	case PVBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case PVString:
		return v.Str
	case PVNode:
		if v.Node == nil {
			return ""
		}
		return v.Node.Key
	case PVList:
		if v.List == nil {
			return "<list of 0>"
		}
		return fmt.Sprintf("<list of %d>", len(v.List.Elems))
	case PVTable:
		return fmt.Sprintf("<table of %d>", len(v.Table))
	case PVSequence:
		if v.Seq == nil {
			return "<sequence of 0>"
		}
		return fmt.Sprintf("<sequence of %d>", v.Seq.Len())
	default:
		return ""
	}
}

// isNumeric reports whether type is PVInt or PVFloat.
func isNumeric(t PVType) bool { return t == PVInt || t == PVFloat }

func bothInt(a, b PValue) bool { return a.Type == PVInt && b.Type == PVInt }

func asFloat(v PValue) float64 {
	if v.Type == PVInt {
		return float64(v.Int)
	}
	return v.Float
}

// Arith applies a binary arithmetic operator to a and b. Both operands must
// be numeric; for + - * / an integer paired with a floating value is
// coerced to floating, while mod and exp take integers only. ok is false on
// a type error or division/mod-by-zero.
func Arith(op string, a, b PValue) (PValue, bool) {
	if !isNumeric(a.Type) || !isNumeric(b.Type) {
		return Null, false
	}
	switch op {
	case "+":
		if bothInt(a, b) {
			return NewInt(a.Int + b.Int), true
		}
		return NewFloat(asFloat(a) + asFloat(b)), true
	case "-":
		if bothInt(a, b) {
			return NewInt(a.Int - b.Int), true
		}
		return NewFloat(asFloat(a) - asFloat(b)), true
	case "*":
		if bothInt(a, b) {
			return NewInt(a.Int * b.Int), true
		}
		return NewFloat(asFloat(a) * asFloat(b)), true
	case "/":
		if bothInt(a, b) {
			if b.Int == 0 {
				return Null, false
			}
			return NewInt(a.Int / b.Int), true
		}
		if asFloat(b) == 0 {
			return Null, false
		}
		return NewFloat(asFloat(a) / asFloat(b)), true
	case "mod":
		if !bothInt(a, b) || b.Int == 0 {
			return Null, false
		}
		return NewInt(a.Int % b.Int), true
	case "exp":
		if !bothInt(a, b) || b.Int < 0 {
			return Null, false
		}
		result := int64(1)
		for i := int64(0); i < b.Int; i++ {
			result *= a.Int
		}
		return NewInt(result), true
	default:
		return Null, false
	}
}

// Compare applies a binary comparison operator to a and b. Spec §4.11
// requires matching types for integers, floating, or strings — unlike
// arithmetic, no int-to-float coercion applies here, so 3 = 3.0 is a type
// error, not true. ok is false on a type mismatch.
func Compare(op string, a, b PValue) (PValue, bool) {
	switch {
	case a.Type == PVInt && b.Type == PVInt:
		return compareOrdered(op, a.Int, b.Int)
	case a.Type == PVFloat && b.Type == PVFloat:
		return compareOrdered(op, a.Float, b.Float)
	case a.Type == PVString && b.Type == PVString:
		return compareOrdered(op, a.Str, b.Str)
	default:
		return Null, false
	}
}

func compareOrdered[T int64 | float64 | string](op string, x, y T) (PValue, bool) {
	switch op {
	case "=":
		return NewBool(x == y), true
	case "!=":
		return NewBool(x != y), true
	case "<":
		return NewBool(x < y), true
	case "<=":
		return NewBool(x <= y), true
	case ">":
		return NewBool(x > y), true
	case ">=":
		return NewBool(x >= y), true
	default:
		return Null, false
	}
}
