package ast

import "testing"

func ident(name string) *LiteralExpr {
	return &LiteralExpr{Value: IdentifierLiteral{Name: name}}
}

func intLit(n int64) *LiteralExpr {
	return &LiteralExpr{Value: IntLiteral{Value: n}}
}

func TestEqualIgnoresSpans(t *testing.T) {
	a := &Program{Statements: []Statement{
		&LetStmt{Name: Identifier{Name: "x"}, Value: intLit(1), Sp: NewSpan(0, 5)},
	}}
	b := &Program{Statements: []Statement{
		&LetStmt{Name: Identifier{Name: "x"}, Value: intLit(1), Sp: NewSpan(100, 200)},
	}}
	if !Equal(a, b) {
		t.Fatal("expected programs equal modulo spans")
	}
}

func TestEqualDetectsDifference(t *testing.T) {
	a := &Program{Statements: []Statement{&LetStmt{Name: Identifier{Name: "x"}, Value: intLit(1)}}}
	b := &Program{Statements: []Statement{&LetStmt{Name: Identifier{Name: "x"}, Value: intLit(2)}}}
	if Equal(a, b) {
		t.Fatal("expected programs with different values to be unequal")
	}
}

func TestEqualStructLiteralIgnoresFieldOrder(t *testing.T) {
	a := &Program{Statements: []Statement{&ExprStmt{Expr: &LiteralExpr{Value: StructLiteral{
		Name:       "Point",
		Fields:     []StructLiteralField{{Name: "x", Value: intLit(1)}, {Name: "y", Value: intLit(2)}},
		Appearance: []string{"x", "y"},
	}}}}}
	b := &Program{Statements: []Statement{&ExprStmt{Expr: &LiteralExpr{Value: StructLiteral{
		Name:       "Point",
		Fields:     []StructLiteralField{{Name: "y", Value: intLit(2)}, {Name: "x", Value: intLit(1)}},
		Appearance: []string{"y", "x"},
	}}}}}
	if !Equal(a, b) {
		t.Fatal("expected struct literals equal regardless of field slice order")
	}
}

func TestEqualIfElseIfChain(t *testing.T) {
	build := func() *IfNode {
		return &IfNode{
			Cond: ident("a"),
			Then: &Block{},
			ElseIf: &IfNode{
				Cond: ident("b"),
				Then: &Block{},
				Else: &Block{},
			},
		}
	}
	a := &Program{Statements: []Statement{build()}}
	b := &Program{Statements: []Statement{build()}}
	if !Equal(a, b) {
		t.Fatal("expected identical else-if chains to compare equal")
	}
}

func TestPrintLet(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&LetStmt{Name: Identifier{Name: "x"}, Value: intLit(5)},
	}}
	got := Print(prog)
	want := "let x = 5"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPrintBinaryDotHasNoSurroundingSpaces(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&ExprStmt{Expr: &BinaryExpr{Left: ident("p"), Op: OpDot, Right: ident("x")}},
	}}
	got := Print(prog)
	want := "p.x"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPrintFunctionDefIndentsBody(t *testing.T) {
	prog := &Program{Statements: []Statement{
		&FunctionDefStmt{
			Name:       Identifier{Name: "f"},
			ReturnType: IntType{},
			Body:       &Block{Statements: []Statement{&ReturnStmt{Value: intLit(1)}}},
		},
	}}
	got := Print(prog)
	want := "define f() -> int =\n    return 1\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
