// Package parser implements a recursive-descent, Pratt-style parser that
// turns a token stream from interp/lexer into an interp/ast.Program.
package parser

import (
	"fmt"

	"github.com/lesfleursdelanuitdev/deadends-go/interp/ast"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/lexer"
	"github.com/lesfleursdelanuitdev/deadends-go/interp/token"
)

const (
	_ int = iota
	LOWEST
	COMPARISON
	SUM
	PRODUCT
	EXPONENT
	PREFIX
	CALL
)

var precedences = map[token.Type]int{
	token.EQ: COMPARISON, token.NEQ: COMPARISON,
	token.LT: COMPARISON, token.LTE: COMPARISON,
	token.GT: COMPARISON, token.GTE: COMPARISON,
	token.PLUS: SUM, token.MINUS: SUM,
	token.ASTERISK: PRODUCT, token.SLASH: PRODUCT, token.PERCENT: PRODUCT,
	token.CARET: EXPONENT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser parses one DeadEnds script source into a Program.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errors []string

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:  p.parseIdentifierOrCall,
		token.INT:    p.parseIntegerLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.STRING: p.parseStringLiteral,
		token.MINUS:  p.parsePrefixExpression,
		token.LPAREN: p.parseGroupedExpression,
	}
	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS: p.parseInfixExpression, token.MINUS: p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression, token.SLASH: p.parseInfixExpression,
		token.PERCENT: p.parseInfixExpression, token.CARET: p.parseInfixExpression,
		token.EQ: p.parseInfixExpression, token.NEQ: p.parseInfixExpression,
		token.LT: p.parseInfixExpression, token.LTE: p.parseInfixExpression,
		token.GT: p.parseInfixExpression, token.GTE: p.parseInfixExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the accumulated parse errors, in order encountered.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.cur.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peek.Type == t {
		p.nextToken()
		return true
	}
	p.errorf("expected next token to be %s, got %s (%q)", t, p.peek.Type, p.peek.Literal)
	return false
}

func (p *Parser) skipSemicolons() {
	for p.cur.Type == token.SEMICOLON {
		p.nextToken()
	}
}

// ParseProgram parses a sequence of proc/func declarations.
func (p *Parser) ParseProgram() *ast.Program {
	program := ast.NewProgram()
	p.skipSemicolons()
	for p.cur.Type != token.EOF {
		switch p.cur.Type {
		case token.PROC:
			if decl := p.parseProcDecl(); decl != nil {
				program.Procedures[decl.Name] = decl
			}
		case token.FUNC:
			if decl := p.parseFuncDecl(); decl != nil {
				program.Functions[decl.Name] = decl
			}
		default:
			p.errorf("expected proc or func declaration, got %s", p.cur.Type)
			p.nextToken()
		}
		p.skipSemicolons()
	}
	return program
}

func (p *Parser) parseParamList() []string {
	var params []string
	if p.peek.Type == token.RPAREN {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.cur.Literal)
	for p.peek.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		params = append(params, p.cur.Literal)
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseProcDecl() *ast.ProcDecl {
	decl := &ast.ProcDecl{Token: p.cur}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.cur.Literal
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	decl.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlockStatement()
	return decl
}

func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	decl := &ast.FuncDecl{Token: p.cur}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = p.cur.Literal
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	decl.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlockStatement()
	return decl
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur}
	p.nextToken()
	p.skipSemicolons()
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
		p.skipSemicolons()
	}
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.BREAK:
		return &ast.BreakStatement{Token: p.cur}
	case token.CONTINUE:
		return &ast.ContinueStatement{Token: p.cur}
	case token.RETURN:
		return p.parseReturnStatement()
	case token.FORLIST:
		return p.parseForListStatement()
	case token.FORINDISET:
		return p.parseForIndiSetStatement()
	case token.FORCHILDREN:
		return p.parseLineageLoop(ast.LoopChildren)
	case token.FORSPOUSES:
		return p.parseLineageLoop(ast.LoopSpouses)
	case token.FORFAMS:
		return p.parseLineageLoop(ast.LoopFamsFamilies)
	case token.FORFAMC:
		return p.parseLineageLoop(ast.LoopFamcFamilies)
	case token.TRAVERSE:
		return p.parseTraverseStatement()
	case token.IDENT:
		if p.peek.Type == token.EQ {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	case token.CALL:
		return p.parseCallStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseAssignStatement() *ast.AssignStatement {
	stmt := &ast.AssignStatement{Token: p.cur, Name: p.cur.Literal}
	p.nextToken() // consume "="
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.cur}
	stmt.Expression = p.parseExpression(LOWEST)
	return stmt
}

// parseCallStatement handles the explicit `call name(args)` procedure-call
// form, kept distinct from a bare `name(args)` expression statement since
// the DeadEnds script language uses `call` to invoke user procedures for
// side effect (spec §4.11 "Call semantics").
func (p *Parser) parseCallStatement() ast.Statement {
	tok := p.cur
	if !p.expectPeek(token.IDENT) {
		return &ast.ExpressionStatement{Token: tok}
	}
	expr := p.parseIdentifierOrCall()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.cur}
	clause, ok := p.parseIfClause()
	if !ok {
		return stmt
	}
	stmt.Clauses = append(stmt.Clauses, clause)
	for p.peek.Type == token.ELSIF {
		p.nextToken()
		clause, ok := p.parseIfClause()
		if !ok {
			return stmt
		}
		stmt.Clauses = append(stmt.Clauses, clause)
	}
	if p.peek.Type == token.ELSE {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return stmt
		}
		stmt.Else = p.parseBlockStatement()
	}
	return stmt
}

func (p *Parser) parseIfClause() (ast.IfClause, bool) {
	var clause ast.IfClause
	if !p.expectPeek(token.LPAREN) {
		return clause, false
	}
	p.nextToken()
	clause.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return clause, false
	}
	if !p.expectPeek(token.LBRACE) {
		return clause, false
	}
	clause.Body = p.parseBlockStatement()
	return clause, true
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.cur}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.cur}
	if p.peek.Type == token.RBRACE || p.peek.Type == token.SEMICOLON {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseForListStatement() *ast.ForListStatement {
	stmt := &ast.ForListStatement{Token: p.cur}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.List = p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return stmt
	}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Elem = p.cur.Literal
	if p.peek.Type == token.COMMA {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		stmt.Counter = p.cur.Literal
	}
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseForIndiSetStatement() *ast.ForIndiSetStatement {
	stmt := &ast.ForIndiSetStatement{Token: p.cur}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Sequence = p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return stmt
	}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Elem = p.cur.Literal
	if p.peek.Type == token.COMMA {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		stmt.Counter = p.cur.Literal
	}
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseLineageLoop(kind ast.LineageLoopKind) *ast.LineageLoopStatement {
	stmt := &ast.LineageLoopStatement{Token: p.cur, Kind: kind}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Subject = p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return stmt
	}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Elem = p.cur.Literal
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseTraverseStatement() *ast.TraverseStatement {
	stmt := &ast.TraverseStatement{Token: p.cur}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Root = p.parseExpression(LOWEST)
	if !p.expectPeek(token.COMMA) {
		return stmt
	}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Elem = p.cur.Literal
	if !p.expectPeek(token.COMMA) {
		return stmt
	}
	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Level = p.cur.Literal
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.cur.Type]
	if prefix == nil {
		p.errorf("no prefix parse function for %s (%q)", p.cur.Type, p.cur.Literal)
		return nil
	}
	left := prefix()

	for p.peek.Type != token.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peek.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseIdentifierOrCall parses a bare identifier, or — when followed by
// "(" — a call expression, since the grammar has no separate call-site
// keyword for built-ins and user routines (spec §4.11 "Evaluation").
func (p *Parser) parseIdentifierOrCall() ast.Expression {
	ident := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
	if p.peek.Type != token.LPAREN {
		return ident
	}
	call := &ast.CallExpression{Token: p.cur, Name: ident.Value}
	p.nextToken() // "("
	if p.peek.Type == token.RPAREN {
		p.nextToken()
		return call
	}
	p.nextToken()
	call.Args = append(call.Args, p.parseExpression(LOWEST))
	for p.peek.Type == token.COMMA {
		p.nextToken()
		p.nextToken()
		call.Args = append(call.Args, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return call
	}
	return call
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	var value int64
	if _, err := fmt.Sscanf(p.cur.Literal, "%d", &value); err != nil {
		p.errorf("could not parse %q as integer", p.cur.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.cur, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	var value float64
	if _, err := fmt.Sscanf(p.cur.Literal, "%g", &value); err != nil {
		p.errorf("could not parse %q as float", p.cur.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: p.cur, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.cur, Operator: p.cur.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{Token: p.cur, Operator: p.cur.Literal, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}
