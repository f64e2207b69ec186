package parser

import (
	"strconv"

	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/lexer"
)

// parseType implements SPEC_FULL.md §4.2's type grammar: a primitive name,
// `@ident` alias reference, or struct name, each optionally followed by
// `[ <int>? ]` (array) and then `*` (pointer).
func (p *Parser) parseType() (ast.AstType, error) {
	start := p.cur.Span.Start
	var base ast.AstType

	switch p.cur.Type {
	case lexer.INT_TYPE:
		base = ast.IntType{Sp: p.cur.Span}
		p.next()
	case lexer.FLOAT_TYPE:
		base = ast.FloatType{Sp: p.cur.Span}
		p.next()
	case lexer.STRING_TYPE:
		base = ast.StringType{Sp: p.cur.Span}
		p.next()
	case lexer.BOOL_TYPE:
		base = ast.BooleanType{Sp: p.cur.Span}
		p.next()
	case lexer.VOID_TYPE:
		base = ast.VoidType{Sp: p.cur.Span}
		p.next()
	case lexer.AT:
		sp := p.cur.Span
		p.next()
		if !p.curIs(lexer.IDENT) {
			return nil, diag.Mismatch(diag.ExpectedType, p.cur.Span, "identifier", p.cur.Type.String())
		}
		base = ast.AliasRefType{Name: p.cur.Literal, Sp: ast.NewSpan(sp.Start, p.cur.Span.End)}
		p.next()
	case lexer.IDENT:
		base = ast.StructRefType{Name: p.cur.Literal, Sp: p.cur.Span}
		p.next()
	default:
		return nil, diag.New(diag.ExpectedType, p.cur.Span, "expected a type")
	}

	for p.curIs(lexer.LBRACKET) {
		p.next()
		var length *int64
		if p.curIs(lexer.INT) {
			n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
			if err != nil {
				return nil, diag.New(diag.ExpectedType, p.cur.Span, "invalid array length")
			}
			length = &n
			p.next()
		} else if !p.curIs(lexer.RBRACKET) {
			return nil, diag.New(diag.ExpectedType, p.cur.Span, "array length must be an integer literal")
		}
		if err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		base = ast.ArrayType{Elem: base, Len: length, Sp: ast.NewSpan(start, p.cur.Span.End)}
	}

	for p.curIs(lexer.STAR) {
		base = ast.PointerType{Elem: base, Sp: ast.NewSpan(start, p.cur.Span.End)}
		p.next()
	}

	return base, nil
}
