// Package parser is a hand-rolled recursive-descent / precedence-climbing
// parser. No grammar file and no generated parser are involved: it pulls
// tokens directly off a lexer running on its own goroutine.
//
// Precedence, low to high: relational operators, then sum/sub, then
// mul/div, then unary negation, then primaries.
package parser

import (
	"fmt"

	"toylangc/internal/ast"
	"toylangc/internal/lexer"
)

// ParseError reports a syntactic error with its source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parser consumes a token stream and builds an ast.MainFunction.
type Parser struct {
	lex *lexer.Lexer
	tok lexer.Token
}

// New starts the given lexer's goroutine and wraps it in a Parser.
func New(l *lexer.Lexer) *Parser {
	go l.Run()
	p := &Parser{lex: l}
	p.advance()
	return p
}

// Parse consumes the entire token stream and returns the program root.
func Parse(src string) (*ast.MainFunction, error) {
	p := New(lexer.New(src))
	return p.ParseProgram()
}

func (p *Parser) advance() {
	p.tok = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{Line: p.tok.Line, Col: p.tok.Col, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{Line: p.tok.Line, Col: p.tok.Col}
}

// skipNewlines consumes any run of newline and semicolon tokens, which
// separate statements but carry no semantic weight of their own.
func (p *Parser) skipNewlines() {
	for p.tok.Kind == lexer.Newline || p.tok.Kind == lexer.Semicolon {
		p.advance()
	}
}

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.tok.Kind != k {
		return lexer.Token{}, p.errorf("expected %v, got %v", k, p.tok.Kind)
	}
	tok := p.tok
	p.advance()
	return tok, nil
}

// ParseProgram parses the whole input as the implicit main entry: an
// optional `main { ... }` wrapper, or a bare statement list.
func (p *Parser) ParseProgram() (*ast.MainFunction, error) {
	p.skipNewlines()
	var body []ast.Stmt
	if p.tok.Kind == lexer.Main {
		p.advance()
		if _, err := p.expect(lexer.LBrace); err != nil {
			return nil, err
		}
		stmts, err := p.parseStatementList(lexer.RBrace)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
		body = stmts
	} else {
		stmts, err := p.parseStatementList(lexer.EOF)
		if err != nil {
			return nil, err
		}
		body = stmts
	}
	p.skipNewlines()
	if p.tok.Kind != lexer.EOF {
		return nil, p.errorf("unexpected token %v after program body", p.tok.Kind)
	}
	return &ast.MainFunction{Body: body}, nil
}

// parseStatementList parses statements until it sees until (either RBrace
// or EOF, never consumed here) or a lexer error.
func (p *Parser) parseStatementList(until lexer.Kind) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	p.skipNewlines()
	for p.tok.Kind != until && p.tok.Kind != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	return stmts, nil
}

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatementList(lexer.RBrace)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.tok.Kind {
	case lexer.Error:
		return nil, p.errorf("lex error: %s", p.tok.Val)
	case lexer.Let:
		return p.parseLet()
	case lexer.Print:
		return p.parsePrint()
	case lexer.If:
		return p.parseIf()
	case lexer.While:
		return p.parseWhile()
	default:
		return nil, p.errorf("unexpected token %v at start of statement", p.tok.Kind)
	}
}

func (p *Parser) parseLet() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // let
	name, err := p.expect(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.VarAssign{Pos: pos, Name: name.Val, Value: val}, nil
}

func (p *Parser) parsePrint() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // print
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return &ast.Print{Pos: pos, Value: val}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // if
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.IfElse{Pos: pos, Cond: cond, Then: then}
	p.skipNewlines()
	if p.tok.Kind == lexer.Else {
		p.advance()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Else = els
	}
	return node, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	pos := p.pos()
	p.advance() // while
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Pos: pos, Cond: cond, Body: body}, nil
}

// parseExpr parses a full expression at the lowest precedence level
// (relational operators bind the loosest of anything above primaries).
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseComparison()
}

var relOps = map[lexer.Kind]ast.RelOp{
	lexer.Lt: ast.RelLT,
	lexer.Le: ast.RelLE,
	lexer.Eq: ast.RelEQ,
	lexer.Ne: ast.RelNE,
	lexer.Ge: ast.RelGE,
	lexer.Gt: ast.RelGT,
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if op, ok := relOps[p.tok.Kind]; ok {
		pos := p.pos()
		p.advance()
		right, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Pos: pos, Op: op, X: left, Y: right}, nil
	}
	return left, nil
}

func (p *Parser) parseSum() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == lexer.Plus || p.tok.Kind == lexer.Minus {
		pos := p.pos()
		op := ast.OpSum
		if p.tok.Kind == lexer.Minus {
			op = ast.OpSub
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Arith{Pos: pos, Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == lexer.Star || p.tok.Kind == lexer.Slash {
		pos := p.pos()
		op := ast.OpMul
		if p.tok.Kind == lexer.Slash {
			op = ast.OpDiv
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Arith{Pos: pos, Op: op, X: left, Y: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.tok.Kind == lexer.Minus {
		pos := p.pos()
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Neg{Pos: pos, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.tok.Kind {
	case lexer.Number:
		lit := &ast.NumberLiteral{Pos: p.pos(), Lexeme: p.tok.Val}
		p.advance()
		return lit, nil
	case lexer.Identifier:
		v := &ast.Variable{Pos: p.pos(), Name: p.tok.Val}
		p.advance()
		return v, nil
	case lexer.LParen:
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return x, nil
	case lexer.Error:
		return nil, p.errorf("lex error: %s", p.tok.Val)
	default:
		return nil, p.errorf("unexpected token %v in expression", p.tok.Kind)
	}
}
