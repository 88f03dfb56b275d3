// Package ast defines the abstract syntax tree of the DeadEnds script
// language: programs are a set of procedure and function declarations plus
// statements and expressions built from them.
package ast

import (
	"fmt"
	"strings"

	"github.com/lesfleursdelanuitdev/deadends-go/interp/token"
)

// Node is any AST node.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is a node that executes for effect.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that evaluates to a PValue.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a set of routine declarations.
type Program struct {
	Procedures map[string]*ProcDecl
	Functions  map[string]*FuncDecl
}

func NewProgram() *Program {
	return &Program{Procedures: map[string]*ProcDecl{}, Functions: map[string]*FuncDecl{}}
}

func (p *Program) TokenLiteral() string { return "program" }
func (p *Program) String() string {
	var out strings.Builder
	for _, d := range p.Procedures {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	for _, d := range p.Functions {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ProcDecl is a `proc name(params) { body }` declaration.
type ProcDecl struct {
	Token  token.Token
	Name   string
	Params []string
	Body   *BlockStatement
}

func (d *ProcDecl) TokenLiteral() string { return d.Token.Literal }
func (d *ProcDecl) String() string {
	return fmt.Sprintf("proc %s(%s) %s", d.Name, strings.Join(d.Params, ", "), d.Body.String())
}

// FuncDecl is a `func name(params) { body }` declaration.
type FuncDecl struct {
	Token  token.Token
	Name   string
	Params []string
	Body   *BlockStatement
}

func (d *FuncDecl) TokenLiteral() string { return d.Token.Literal }
func (d *FuncDecl) String() string {
	return fmt.Sprintf("func %s(%s) %s", d.Name, strings.Join(d.Params, ", "), d.Body.String())
}

// BlockStatement is a brace-delimited statement sequence.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()     {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) String() string {
	var out strings.Builder
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionStatement wraps a bare expression used as a statement (a
// built-in or user call invoked for its side effect).
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ExpressionStatement) String() string       { return s.Expression.String() }

// AssignStatement binds Name to Value in the current frame or global table
// (spec §4.11 "Evaluation").
type AssignStatement struct {
	Token token.Token
	Name  string
	Value Expression
}

func (s *AssignStatement) statementNode()       {}
func (s *AssignStatement) TokenLiteral() string { return s.Token.Literal }
func (s *AssignStatement) String() string       { return fmt.Sprintf("%s = %s", s.Name, s.Value.String()) }

// IfClause is one `if`/`elsif` condition-body pair.
type IfClause struct {
	Condition Expression
	Body      *BlockStatement
}

// IfStatement is `if (cond) {..} elsif (cond) {..} else {..}`.
type IfStatement struct {
	Token   token.Token
	Clauses []IfClause
	Else    *BlockStatement
}

func (s *IfStatement) statementNode()       {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Literal }
func (s *IfStatement) String() string {
	var out strings.Builder
	for i, c := range s.Clauses {
		if i == 0 {
			out.WriteString("if (")
		} else {
			out.WriteString("elsif (")
		}
		out.WriteString(c.Condition.String())
		out.WriteString(") ")
		out.WriteString(c.Body.String())
	}
	if s.Else != nil {
		out.WriteString("else ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// WhileStatement is `while (cond) { body }`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (s *WhileStatement) statementNode()       {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStatement) String() string {
	return fmt.Sprintf("while (%s) %s", s.Condition.String(), s.Body.String())
}

// BreakStatement terminates the innermost loop.
type BreakStatement struct{ Token token.Token }

func (s *BreakStatement) statementNode()       {}
func (s *BreakStatement) TokenLiteral() string { return s.Token.Literal }
func (s *BreakStatement) String() string       { return "break" }

// ContinueStatement proceeds to the next iteration of the innermost loop.
type ContinueStatement struct{ Token token.Token }

func (s *ContinueStatement) statementNode()       {}
func (s *ContinueStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ContinueStatement) String() string       { return "continue" }

// ReturnStatement unwinds frames up to the nearest user function/procedure.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare `return` in a procedure
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// ForListStatement is `forlist(listExpr, elem, counter) { body }`.
type ForListStatement struct {
	Token   token.Token
	List    Expression
	Elem    string
	Counter string
	Body    *BlockStatement
}

func (s *ForListStatement) statementNode()       {}
func (s *ForListStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ForListStatement) String() string {
	return fmt.Sprintf("forlist(%s, %s, %s) %s", s.List.String(), s.Elem, s.Counter, s.Body.String())
}

// ForIndiSetStatement is `forindiset(seqExpr, elem, counter) { body }`.
type ForIndiSetStatement struct {
	Token    token.Token
	Sequence Expression
	Elem     string
	Counter  string
	Body     *BlockStatement
}

func (s *ForIndiSetStatement) statementNode()       {}
func (s *ForIndiSetStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ForIndiSetStatement) String() string {
	return fmt.Sprintf("forindiset(%s, %s, %s) %s", s.Sequence.String(), s.Elem, s.Counter, s.Body.String())
}

// LineageLoopKind distinguishes the four one-step lineage iterators that
// all share the same `(subjectExpr, elem) { body }` shape.
type LineageLoopKind int

const (
	LoopChildren LineageLoopKind = iota
	LoopSpouses
	LoopFamsFamilies
	LoopFamcFamilies
)

// LineageLoopStatement is `forchildren`/`forspouses`/`forfams`/`forfamc`.
// Subject is a family for LoopChildren, a person for the other three kinds.
type LineageLoopStatement struct {
	Token   token.Token
	Kind    LineageLoopKind
	Subject Expression
	Elem    string
	Body    *BlockStatement
}

func (s *LineageLoopStatement) statementNode()       {}
func (s *LineageLoopStatement) TokenLiteral() string { return s.Token.Literal }
func (s *LineageLoopStatement) String() string {
	return fmt.Sprintf("%s(%s, %s) %s", s.Token.Literal, s.Subject.String(), s.Elem, s.Body.String())
}

// TraverseStatement is `traverse(nodeExpr, elem, level) { body }`.
type TraverseStatement struct {
	Token token.Token
	Root  Expression
	Elem  string
	Level string
	Body  *BlockStatement
}

func (s *TraverseStatement) statementNode()       {}
func (s *TraverseStatement) TokenLiteral() string { return s.Token.Literal }
func (s *TraverseStatement) String() string {
	return fmt.Sprintf("traverse(%s, %s, %s) %s", s.Root.String(), s.Elem, s.Level, s.Body.String())
}

// Identifier is a variable reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is an integer constant.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (n *IntegerLiteral) expressionNode()      {}
func (n *IntegerLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *IntegerLiteral) String() string       { return n.Token.Literal }

// FloatLiteral is a floating-point constant.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (n *FloatLiteral) expressionNode()      {}
func (n *FloatLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *FloatLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a quoted string constant.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StringLiteral) String() string       { return fmt.Sprintf("%q", n.Value) }

// PrefixExpression is a unary `-x`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (n *PrefixExpression) expressionNode()      {}
func (n *PrefixExpression) TokenLiteral() string { return n.Token.Literal }
func (n *PrefixExpression) String() string       { return fmt.Sprintf("(%s%s)", n.Operator, n.Right.String()) }

// InfixExpression is a binary operator expression.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (n *InfixExpression) expressionNode()      {}
func (n *InfixExpression) TokenLiteral() string { return n.Token.Literal }
func (n *InfixExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), n.Operator, n.Right.String())
}

// CallExpression is `name(args)`, resolved at evaluation time to either a
// built-in or a user function/procedure (spec §4.11 "Evaluation").
type CallExpression struct {
	Token token.Token
	Name  string
	Args  []Expression
}

func (n *CallExpression) expressionNode()      {}
func (n *CallExpression) TokenLiteral() string { return n.Token.Literal }
func (n *CallExpression) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}
