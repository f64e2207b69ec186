package parser

import (
	"testing"

	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	return prog
}

func TestParseLet(t *testing.T) {
	prog := mustParse(t, "let x = 5\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	let, ok := prog.Statements[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", prog.Statements[0])
	}
	if let.Name.Name != "x" {
		t.Errorf("expected name x, got %s", let.Name.Name)
	}
	lit, ok := let.Value.(*ast.LiteralExpr)
	if !ok {
		t.Fatalf("expected *ast.LiteralExpr value, got %T", let.Value)
	}
	if _, ok := lit.Value.(ast.IntLiteral); !ok {
		t.Errorf("expected IntLiteral, got %T", lit.Value)
	}
}

func TestParseLetWithType(t *testing.T) {
	prog := mustParse(t, "let x: int = 5\n")
	let := prog.Statements[0].(*ast.LetStmt)
	if _, ok := let.Type.(ast.IntType); !ok {
		t.Errorf("expected IntType, got %T", let.Type)
	}
}

func TestParseFunctionDef(t *testing.T) {
	src := "define add(a int, b int) -> int =\n    return a + b\n"
	prog := mustParse(t, src)
	fd, ok := prog.Statements[0].(*ast.FunctionDefStmt)
	if !ok {
		t.Fatalf("expected *ast.FunctionDefStmt, got %T", prog.Statements[0])
	}
	if fd.Name.Name != "add" {
		t.Errorf("expected name add, got %s", fd.Name.Name)
	}
	if len(fd.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fd.Params))
	}
	if len(fd.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fd.Body.Statements))
	}
	ret, ok := fd.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fd.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", ret.Value)
	}
	if bin.Op != ast.OpAdd {
		t.Errorf("expected OpAdd, got %v", bin.Op)
	}
}

func TestParseIfElse(t *testing.T) {
	src := "if x\n    return 1\nelse\n    return 2\n"
	prog := mustParse(t, src)
	ifn, ok := prog.Statements[0].(*ast.IfNode)
	if !ok {
		t.Fatalf("expected *ast.IfNode, got %T", prog.Statements[0])
	}
	if ifn.Else == nil {
		t.Fatal("expected Else block, got nil")
	}
	if ifn.ElseIf != nil {
		t.Fatal("expected nil ElseIf when Else is present")
	}
}

func TestParseElseIfChain(t *testing.T) {
	src := "if x\n    return 1\nelse if y\n    return 2\nelse\n    return 3\n"
	prog := mustParse(t, src)
	ifn := prog.Statements[0].(*ast.IfNode)
	if ifn.Else != nil {
		t.Fatal("expected nil Else at the outer if, the else-if chain owns it")
	}
	if ifn.ElseIf == nil {
		t.Fatal("expected non-nil ElseIf")
	}
	if ifn.ElseIf.Else == nil {
		t.Fatal("expected the chained if to carry the final else")
	}
}

func TestParseWhile(t *testing.T) {
	src := "while x\n    x = x - 1\n"
	prog := mustParse(t, src)
	w, ok := prog.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", prog.Statements[0])
	}
	if len(w.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(w.Body.Statements))
	}
}

func TestParseStructDeclAndLiteral(t *testing.T) {
	src := "struct Point { x int, y int }\nlet p = Point { y: 2, x: 1 }\n"
	prog := mustParse(t, src)
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	sd, ok := prog.Statements[0].(*ast.StructDeclStmt)
	if !ok {
		t.Fatalf("expected *ast.StructDeclStmt, got %T", prog.Statements[0])
	}
	if len(sd.Fields) != 2 || sd.Fields[0].Name.Name != "x" || sd.Fields[1].Name.Name != "y" {
		t.Fatalf("unexpected struct fields: %+v", sd.Fields)
	}

	let := prog.Statements[1].(*ast.LetStmt)
	lit := let.Value.(*ast.LiteralExpr).Value.(ast.StructLiteral)
	if lit.Name != "Point" {
		t.Errorf("expected struct name Point, got %s", lit.Name)
	}
	if len(lit.Fields) != 2 || lit.Fields[0].Name != "x" || lit.Fields[1].Name != "y" {
		t.Fatalf("expected Fields sorted by name, got %+v", lit.Fields)
	}
	if len(lit.Appearance) != 2 || lit.Appearance[0] != "y" || lit.Appearance[1] != "x" {
		t.Fatalf("expected Appearance to preserve source order, got %v", lit.Appearance)
	}
}

func TestParseCallAndIndex(t *testing.T) {
	prog := mustParse(t, "let x = add(1, 2)\nlet y = xs[0]\n")
	let1 := prog.Statements[0].(*ast.LetStmt)
	call, ok := let1.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr, got %T", let1.Value)
	}
	if call.Callee != "add" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %+v", call)
	}

	let2 := prog.Statements[1].(*ast.LetStmt)
	if _, ok := let2.Value.(*ast.IndexExpr); !ok {
		t.Fatalf("expected *ast.IndexExpr, got %T", let2.Value)
	}
}

func TestParseMemberAccess(t *testing.T) {
	prog := mustParse(t, "let y = p.x\n")
	let := prog.Statements[0].(*ast.LetStmt)
	bin, ok := let.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", let.Value)
	}
	if bin.Op != ast.OpDot {
		t.Errorf("expected OpDot, got %v", bin.Op)
	}
	field, ok := bin.Right.(*ast.LiteralExpr).Value.(ast.IdentifierLiteral)
	if !ok || field.Name != "x" {
		t.Fatalf("expected field identifier x, got %+v", bin.Right)
	}
}

func TestParseAssignment(t *testing.T) {
	prog := mustParse(t, "x = y + 1\n")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	assign, ok := stmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected *ast.AssignExpr, got %T", stmt.Expr)
	}
	if _, ok := assign.Value.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected the whole right-hand side parsed as one expression, got %T", assign.Value)
	}
}

func TestParseAddressOfAndDereference(t *testing.T) {
	prog := mustParse(t, "let a = &x\nlet b = *a\n")
	let1 := prog.Statements[0].(*ast.LetStmt)
	if _, ok := let1.Value.(*ast.AddressOfExpr); !ok {
		t.Fatalf("expected *ast.AddressOfExpr, got %T", let1.Value)
	}
	let2 := prog.Statements[1].(*ast.LetStmt)
	if _, ok := let2.Value.(*ast.DereferenceExpr); !ok {
		t.Fatalf("expected *ast.DereferenceExpr, got %T", let2.Value)
	}
}

func TestParseCast(t *testing.T) {
	prog := mustParse(t, "let a = x as float\n")
	let := prog.Statements[0].(*ast.LetStmt)
	cast, ok := let.Value.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected *ast.CastExpr, got %T", let.Value)
	}
	if _, ok := cast.Target.(ast.FloatType); !ok {
		t.Errorf("expected FloatType target, got %T", cast.Target)
	}
}

func TestParseArrayLiteralAndType(t *testing.T) {
	prog := mustParse(t, "let a: int[3] = [1, 2, 3]\n")
	let := prog.Statements[0].(*ast.LetStmt)
	arrTy, ok := let.Type.(ast.ArrayType)
	if !ok {
		t.Fatalf("expected ast.ArrayType, got %T", let.Type)
	}
	if arrTy.Len == nil || *arrTy.Len != 3 {
		t.Fatalf("expected array length 3, got %v", arrTy.Len)
	}
	lit := let.Value.(*ast.LiteralExpr).Value.(ast.ArrayLiteral)
	if len(lit.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(lit.Elements))
	}
}

func TestParseExternFunc(t *testing.T) {
	prog := mustParse(t, "extern print(int) -> int\n")
	ef, ok := prog.Statements[0].(*ast.ExternFuncStmt)
	if !ok {
		t.Fatalf("expected *ast.ExternFuncStmt, got %T", prog.Statements[0])
	}
	if ef.Name.Name != "print" || len(ef.ParamTypes) != 1 {
		t.Fatalf("unexpected extern decl: %+v", ef)
	}
}

func TestParseTypeofSizeof(t *testing.T) {
	prog := mustParse(t, "let a = typeof x\nlet b = sizeof x\n")
	let1 := prog.Statements[0].(*ast.LetStmt)
	if _, ok := let1.Value.(*ast.TypeofExpr); !ok {
		t.Fatalf("expected *ast.TypeofExpr, got %T", let1.Value)
	}
	let2 := prog.Statements[1].(*ast.LetStmt)
	if _, ok := let2.Value.(*ast.SizeofExpr); !ok {
		t.Fatalf("expected *ast.SizeofExpr, got %T", let2.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "let a = 1 + 2 * 3\n")
	let := prog.Statements[0].(*ast.LetStmt)
	bin := let.Value.(*ast.BinaryExpr)
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level OpAdd, got %v", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected 2 * 3 grouped on the right, got %+v", bin.Right)
	}
}

func TestParseDotAsLeadingOperand(t *testing.T) {
	// p.x is parsed before the addition ever starts, since the dot directly
	// follows the prefix operand at the top-level call's own precedence.
	prog := mustParse(t, "let a = p.x + 1\n")
	let := prog.Statements[0].(*ast.LetStmt)
	bin, ok := let.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", let.Value)
	}
	if bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level OpAdd, got %v", bin.Op)
	}
	left, ok := bin.Left.(*ast.BinaryExpr)
	if !ok || left.Op != ast.OpDot {
		t.Fatalf("expected p.x grouped on the left, got %+v", bin.Left)
	}
}

func TestParseDotAfterArithmeticBindsToTheWholeSum(t *testing.T) {
	// Dot has the lowest infix precedence in this grammar (spec-mandated),
	// below even Sum, so when it trails an addition it is only picked up by
	// the enclosing call once the addition has already combined its
	// operands: "1 + p.x" groups as "(1 + p).x", not "1 + (p.x)".
	prog := mustParse(t, "let a = 1 + p.x\n")
	let := prog.Statements[0].(*ast.LetStmt)
	bin, ok := let.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", let.Value)
	}
	if bin.Op != ast.OpDot {
		t.Fatalf("expected top-level OpDot, got %v", bin.Op)
	}
	left, ok := bin.Left.(*ast.BinaryExpr)
	if !ok || left.Op != ast.OpAdd {
		t.Fatalf("expected 1 + p grouped on the left, got %+v", bin.Left)
	}
}

func TestParseProgramRoundTrip(t *testing.T) {
	src := "let x = 1\nlet y = x + 2\n"
	prog := mustParse(t, src)
	printed := ast.Print(prog)
	reparsed := mustParse(t, printed+"\n")
	if !ast.Equal(prog, reparsed) {
		t.Fatalf("round trip mismatch:\noriginal print: %q\nreprint: %q", printed, ast.Print(reparsed))
	}
}

func TestParseFailsOnBadToken(t *testing.T) {
	_, err := ParseProgram(lexer.New("let = 5\n"))
	if err == nil {
		t.Fatal("expected a diagnostic for a missing identifier after let")
	}
}

func TestParseTypeDeclAndDeclareAreInert(t *testing.T) {
	prog := mustParse(t, "type Meters = float\ndeclare count : int\n")
	if _, ok := prog.Statements[0].(*ast.TypeDeclStmt); !ok {
		t.Fatalf("expected *ast.TypeDeclStmt, got %T", prog.Statements[0])
	}
	if _, ok := prog.Statements[1].(*ast.DeclareStmt); !ok {
		t.Fatalf("expected *ast.DeclareStmt, got %T", prog.Statements[1])
	}
}
