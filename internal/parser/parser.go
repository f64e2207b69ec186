// Package parser implements the recursive-descent, Pratt-precedence parser
// of SPEC_FULL.md §4.2: two-token lookahead, indentation-delimited blocks,
// fail-fast on the first grammar mismatch.
package parser

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/lexer"
)

// Precedence levels, lowest to highest, per SPEC_FULL.md §4.2:
// Lowest < Dot < Equals < LessGreater < Sum < Product < Prefix < Call < Index.
// AssignPrec sits below Dot: assignment is not named in that chain, but its
// right-hand side must still be reachable from a top-level parseExpression
// call made at Lowest.
const (
	Lowest int = iota
	AssignPrec
	DotPrec
	Equals
	LessGreater
	Sum
	Product
	Prefix
	CallPrec
	IndexPrec
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:   AssignPrec,
	lexer.DOT:      DotPrec,
	lexer.EQ:       Equals,
	lexer.NEQ:      Equals,
	lexer.LT:       LessGreater,
	lexer.GT:       LessGreater,
	lexer.LE:       LessGreater,
	lexer.GE:       LessGreater,
	lexer.PLUS:     Sum,
	lexer.MINUS:    Sum,
	lexer.STAR:     Product,
	lexer.SLASH:    Product,
	lexer.PERCENT:  Product,
	lexer.AS:       Prefix,
	lexer.LPAREN:   CallPrec,
	lexer.LBRACKET: IndexPrec,
}

// Parser holds the two-token lookahead window over a Lexer's token stream.
type Parser struct {
	l *lexer.Lexer

	cur  lexer.Token
	peek lexer.Token
}

// New primes cur/peek by reading two tokens, mirroring the teacher's
// lookahead initialisation.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peek.Type == t }

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return Lowest
}

// expect advances past cur if it matches t, else fails with
// ExpectedNextToken carrying the current span.
func (p *Parser) expect(t lexer.TokenType) error {
	if !p.curIs(t) {
		return diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, t.String(), p.cur.Type.String())
	}
	p.next()
	return nil
}

// skipNewlines advances past any run of blank-statement NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.curIs(lexer.NEWLINE) {
		p.next()
	}
}

// expectTerminator consumes a single statement-ending NEWLINE or SEMICOLON,
// or accepts EOF/DEDENT without consuming (the caller's block loop handles
// those).
func (p *Parser) expectTerminator() error {
	switch p.cur.Type {
	case lexer.NEWLINE, lexer.SEMICOLON:
		p.next()
		return nil
	case lexer.EOF, lexer.DEDENT:
		return nil
	}
	return diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "newline or ';'", p.cur.Type.String())
}

// blockBodied reports whether stmt's own grammar already consumed its
// closing Dedent, so the caller must not additionally demand a terminator.
func blockBodied(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.FunctionDefStmt, *ast.IfNode, *ast.WhileStmt:
		return true
	}
	return false
}

// ParseProgram parses the whole token stream into a Program, failing fast
// on the first diagnostic (SPEC_FULL.md §7).
func ParseProgram(l *lexer.Lexer) (*ast.Program, error) {
	p := New(l)
	prog := &ast.Program{}
	start := p.cur.Span.Start

	p.skipNewlines()
	for !p.curIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		if !blockBodied(stmt) {
			if err := p.expectTerminator(); err != nil {
				return nil, err
			}
		}
		p.skipNewlines()
	}
	if lexErr := l.Err(); lexErr != nil {
		return nil, diag.Wrap(lexErr, p.cur.Span)
	}
	prog.Sp = ast.NewSpan(start, p.cur.Span.End)
	return prog, nil
}
