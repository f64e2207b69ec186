package parser

import (
	"strconv"

	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/lexer"
)

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.PLUS:    ast.OpAdd,
	lexer.MINUS:   ast.OpSub,
	lexer.STAR:    ast.OpMul,
	lexer.SLASH:   ast.OpDiv,
	lexer.PERCENT: ast.OpMod,
	lexer.EQ:      ast.OpEq,
	lexer.NEQ:     ast.OpNeq,
	lexer.LT:      ast.OpLt,
	lexer.GT:      ast.OpGt,
	lexer.LE:      ast.OpLe,
	lexer.GE:      ast.OpGe,
}

// parseExpression implements the Pratt loop: a prefix parser produces the
// initial left operand, then infix forms consume it for as long as the
// next token's precedence exceeds the caller's.
func (p *Parser) parseExpression(precedence int) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for !p.curIs(lexer.NEWLINE) && !p.curIs(lexer.EOF) && !p.curIs(lexer.DEDENT) &&
		!p.curIs(lexer.SEMICOLON) && precedence < p.curPrecedence() {
		left, err = p.parseInfix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.IDENT:
		return p.parseIdentOrStructLiteral()
	case lexer.INT:
		return p.parseIntLiteral()
	case lexer.FLOAT:
		return p.parseFloatLiteral()
	case lexer.TRUE, lexer.FALSE:
		return p.parseBoolLiteral()
	case lexer.STRING:
		v, sp := p.cur.Literal, p.cur.Span
		p.next()
		return &ast.LiteralExpr{Value: ast.StringLiteral{Value: v, Sp: sp}, Sp: sp}, nil
	case lexer.MINUS:
		return p.parseUnary(ast.OpNeg)
	case lexer.BANG:
		return p.parseUnary(ast.OpNot)
	case lexer.AMP:
		return p.parseAddressOf()
	case lexer.STAR:
		return p.parseDereference()
	case lexer.LPAREN:
		return p.parseGrouped()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.TYPEOF:
		return p.parseTypeof()
	case lexer.SIZEOF:
		return p.parseSizeof()
	}
	return nil, diag.New(diag.ExpectedExpression, p.cur.Span, "expected an expression, got "+p.cur.Type.String())
}

func (p *Parser) parseIdentOrStructLiteral() (ast.Expression, error) {
	name, sp := p.cur.Literal, p.cur.Span
	if p.peekIs(lexer.LPAREN) {
		return p.parseCall(name, sp)
	}
	if p.peekIs(lexer.LBRACE) {
		return p.parseStructLiteral(name, sp)
	}
	p.next()
	return &ast.LiteralExpr{Value: ast.IdentifierLiteral{Name: name, Sp: sp}, Sp: sp}, nil
}

func (p *Parser) parseIntLiteral() (ast.Expression, error) {
	n, err := strconv.ParseInt(p.cur.Literal, 10, 64)
	if err != nil {
		return nil, diag.New(diag.ExpectedExpression, p.cur.Span, "invalid integer literal")
	}
	sp := p.cur.Span
	p.next()
	return &ast.LiteralExpr{Value: ast.IntLiteral{Value: n, Sp: sp}, Sp: sp}, nil
}

func (p *Parser) parseFloatLiteral() (ast.Expression, error) {
	f, err := strconv.ParseFloat(p.cur.Literal, 64)
	if err != nil {
		return nil, diag.New(diag.ExpectedExpression, p.cur.Span, "invalid float literal")
	}
	sp := p.cur.Span
	p.next()
	return &ast.LiteralExpr{Value: ast.FloatLiteral{Value: f, Sp: sp}, Sp: sp}, nil
}

func (p *Parser) parseBoolLiteral() (ast.Expression, error) {
	v, sp := p.curIs(lexer.TRUE), p.cur.Span
	p.next()
	return &ast.LiteralExpr{Value: ast.BooleanLiteral{Value: v, Sp: sp}, Sp: sp}, nil
}

func (p *Parser) parseUnary(op ast.UnaryOp) (ast.Expression, error) {
	sp := p.cur.Span
	p.next()
	operand, err := p.parseExpression(Prefix)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Sp: ast.NewSpan(sp.Start, operand.Span().End)}, nil
}

func (p *Parser) parseAddressOf() (ast.Expression, error) {
	sp := p.cur.Span
	p.next()
	operand, err := p.parseExpression(Prefix)
	if err != nil {
		return nil, err
	}
	return &ast.AddressOfExpr{Operand: operand, Sp: ast.NewSpan(sp.Start, operand.Span().End)}, nil
}

func (p *Parser) parseDereference() (ast.Expression, error) {
	sp := p.cur.Span
	p.next()
	operand, err := p.parseExpression(Prefix)
	if err != nil {
		return nil, err
	}
	return &ast.DereferenceExpr{Operand: operand, Sp: ast.NewSpan(sp.Start, operand.Span().End)}, nil
}

func (p *Parser) parseGrouped() (ast.Expression, error) {
	p.next()
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseTypeof() (ast.Expression, error) {
	sp := p.cur.Span
	p.next()
	operand, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	return &ast.TypeofExpr{Operand: operand, Sp: ast.NewSpan(sp.Start, operand.Span().End)}, nil
}

func (p *Parser) parseSizeof() (ast.Expression, error) {
	sp := p.cur.Span
	p.next()
	operand, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	return &ast.SizeofExpr{Operand: operand, Sp: ast.NewSpan(sp.Start, operand.Span().End)}, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	sp := p.cur.Span
	p.next()
	var elements []ast.Expression
	for !p.curIs(lexer.RBRACKET) {
		el, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.LiteralExpr{Value: ast.ArrayLiteral{Elements: elements, Sp: sp}, Sp: ast.NewSpan(sp.Start, p.cur.Span.End)}, nil
}

func (p *Parser) parseStructLiteral(name string, sp ast.Span) (ast.Expression, error) {
	p.next() // consume identifier
	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var fields []ast.StructLiteralField
	var appearance []string
	for !p.curIs(lexer.RBRACE) {
		if !p.curIs(lexer.IDENT) {
			return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "field name", p.cur.Type.String())
		}
		fname := p.cur.Literal
		p.next()
		if err := p.expect(lexer.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructLiteralField{Name: fname, Value: val})
		appearance = append(appearance, fname)
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	sortFieldsByName(fields)
	return &ast.LiteralExpr{
		Value: ast.StructLiteral{Name: name, Fields: fields, Appearance: appearance, Sp: sp},
		Sp:    ast.NewSpan(sp.Start, p.cur.Span.End),
	}, nil
}

func sortFieldsByName(fields []ast.StructLiteralField) {
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1].Name > fields[j].Name; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
}

func (p *Parser) parseCall(name string, sp ast.Span) (ast.Expression, error) {
	p.next() // consume identifier
	p.next() // consume '('
	var args []ast.Expression
	for !p.curIs(lexer.RPAREN) {
		arg, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.CallExpr{Callee: name, CalleeSpan: sp, Args: args, Sp: ast.NewSpan(sp.Start, p.cur.Span.End)}, nil
}

// parseInfix consumes one infix operator, already confirmed by the caller's
// precedence check against p.cur.
func (p *Parser) parseInfix(left ast.Expression) (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.DOT:
		p.next()
		if !p.curIs(lexer.IDENT) {
			return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "field name", p.cur.Type.String())
		}
		right := &ast.LiteralExpr{Value: ast.IdentifierLiteral{Name: p.cur.Literal, Sp: p.cur.Span}, Sp: p.cur.Span}
		end := p.cur.Span.End
		p.next()
		return &ast.BinaryExpr{Left: left, Op: ast.OpDot, Right: right, Sp: ast.NewSpan(left.Span().Start, end)}, nil
	case lexer.ASSIGN:
		p.next()
		value, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{Target: left, Value: value, Sp: ast.NewSpan(left.Span().Start, value.Span().End)}, nil
	case lexer.LBRACKET:
		p.next()
		idx, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Target: left, Index: idx, Sp: ast.NewSpan(left.Span().Start, p.cur.Span.End)}, nil
	case lexer.AS:
		p.next()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{Operand: left, Target: ty, Sp: ast.NewSpan(left.Span().Start, ty.Span().End)}, nil
	}

	op, ok := binaryOps[p.cur.Type]
	if !ok {
		return nil, diag.New(diag.UnexpectedToken, p.cur.Span, "unexpected token in expression: "+p.cur.Type.String())
	}
	prec := p.curPrecedence()
	p.next()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Left: left, Op: op, Right: right, Sp: ast.NewSpan(left.Span().Start, right.Span().End)}, nil
}
