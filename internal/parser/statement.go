package parser

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/lexer"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case lexer.LET:
		return p.parseLet()
	case lexer.DEFINE:
		return p.parseFunctionDef()
	case lexer.EXTERN:
		return p.parseExtern()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.TYPE:
		return p.parseTypeDecl()
	case lexer.DECLARE:
		return p.parseDeclare()
	case lexer.STRUCT:
		return p.parseStructDecl()
	default:
		return p.parseExprStmt()
	}
}

// parseBlock consumes an indentation-delimited block: it expects a NEWLINE
// then INDENT already positioned at cur, reads statements (with their own
// terminators) until DEDENT or EOF, and consumes the DEDENT.
func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.cur.Span.Start
	if err := p.expect(lexer.NEWLINE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expect(lexer.INDENT); err != nil {
		return nil, err
	}

	blk := &ast.Block{}
	p.skipNewlines()
	for !p.curIs(lexer.DEDENT) && !p.curIs(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		blk.Statements = append(blk.Statements, stmt)
		if !blockBodied(stmt) {
			if err := p.expectTerminator(); err != nil {
				return nil, err
			}
		}
		p.skipNewlines()
	}
	end := p.cur.Span.End
	if p.curIs(lexer.DEDENT) {
		p.next()
	}
	blk.Sp = ast.NewSpan(start, end)
	return blk, nil
}

func (p *Parser) parseLet() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	if !p.curIs(lexer.IDENT) {
		return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "identifier", p.cur.Type.String())
	}
	name := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
	p.next()

	var ty ast.AstType
	if p.curIs(lexer.COLON) {
		p.next()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ty = t
	}

	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	return &ast.LetStmt{Name: name, Type: ty, Value: value, Sp: ast.NewSpan(sp.Start, value.Span().End)}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	var params []ast.Param
	if !p.curIs(lexer.LPAREN) {
		return params, nil
	}
	p.next()
	for !p.curIs(lexer.RPAREN) {
		if !p.curIs(lexer.IDENT) {
			return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "parameter name", p.cur.Type.String())
		}
		name := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
		p.next()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name, Type: ty})
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunctionDef() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	if !p.curIs(lexer.IDENT) {
		return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "identifier", p.cur.Type.String())
	}
	name := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
	p.next()

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDefStmt{Name: name, Params: params, ReturnType: retType, Body: body, Sp: ast.NewSpan(sp.Start, body.Sp.End)}, nil
}

func (p *Parser) parseTypeList() ([]ast.AstType, error) {
	var types []ast.AstType
	if !p.curIs(lexer.LPAREN) {
		return types, nil
	}
	p.next()
	for !p.curIs(lexer.RPAREN) {
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, ty)
		if p.curIs(lexer.COMMA) {
			p.next()
			continue
		}
		break
	}
	if err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return types, nil
}

func (p *Parser) parseExtern() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	if !p.curIs(lexer.IDENT) {
		return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "identifier", p.cur.Type.String())
	}
	name := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
	p.next()

	paramTypes, err := p.parseTypeList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.ExternFuncStmt{Name: name, ParamTypes: paramTypes, ReturnType: retType, Sp: ast.NewSpan(sp.Start, retType.Span().End)}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	value, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value, Sp: ast.NewSpan(sp.Start, value.Span().End)}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: ast.NewSpan(sp.Start, body.Sp.End)}, nil
}

// parseIf parses the shared if/else-if/else structure used both as a
// statement and, via IfNode's dual role, wherever codegen treats it as an
// expression.
func (p *Parser) parseIf() (*ast.IfNode, error) {
	sp := p.cur.Span
	p.next()
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.IfNode{Cond: cond, Then: then, Sp: ast.NewSpan(sp.Start, then.Sp.End)}

	if p.curIs(lexer.ELSE) {
		p.next()
		if p.curIs(lexer.IF) {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.ElseIf = elseIf
			node.Sp = ast.NewSpan(sp.Start, elseIf.Sp.End)
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Else = elseBlock
			node.Sp = ast.NewSpan(sp.Start, elseBlock.Sp.End)
		}
	}
	return node, nil
}

func (p *Parser) parseTypeDecl() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	if !p.curIs(lexer.IDENT) {
		return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "identifier", p.cur.Type.String())
	}
	name := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
	p.next()
	if err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.TypeDeclStmt{Name: name, Type: ty, Sp: ast.NewSpan(sp.Start, ty.Span().End)}, nil
}

func (p *Parser) parseDeclare() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	if !p.curIs(lexer.IDENT) {
		return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "identifier", p.cur.Type.String())
	}
	name := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
	p.next()
	if err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.DeclareStmt{Name: name, Type: ty, Sp: ast.NewSpan(sp.Start, ty.Span().End)}, nil
}

func (p *Parser) parseStructDecl() (ast.Statement, error) {
	sp := p.cur.Span
	p.next()
	if !p.curIs(lexer.IDENT) {
		return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "identifier", p.cur.Type.String())
	}
	name := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
	p.next()
	if err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var fields []ast.StructFieldDecl
	p.skipNewlines()
	for !p.curIs(lexer.RBRACE) {
		if !p.curIs(lexer.IDENT) {
			return nil, diag.Mismatch(diag.ExpectedNextToken, p.cur.Span, "field name", p.cur.Type.String())
		}
		fname := ast.Identifier{Name: p.cur.Literal, Sp: p.cur.Span}
		p.next()
		fty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.StructFieldDecl{Name: fname, Type: fty})
		if p.curIs(lexer.COMMA) || p.curIs(lexer.NEWLINE) {
			p.next()
			p.skipNewlines()
			continue
		}
		break
	}
	end := p.cur.Span.End
	if err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructDeclStmt{Name: name, Fields: fields, Sp: ast.NewSpan(sp.Start, end)}, nil
}

func (p *Parser) parseExprStmt() (ast.Statement, error) {
	sp := p.cur.Span
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr, Sp: ast.NewSpan(sp.Start, expr.Span().End)}, nil
}
