package codegen

import (
	"strings"
	"testing"

	"github.com/emberlang/ember/internal/lexer"
	"github.com/emberlang/ember/internal/parser"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("parse error for %q: %v", src, err)
	}
	module, err := Generate(prog)
	if err != nil {
		t.Fatalf("codegen error for %q: %v", src, err)
	}
	return module.String()
}

func TestFunctionDefEmitsDefineAndRet(t *testing.T) {
	ir := generate(t, "define add(a int, b int) -> int =\n    return a + b\n")
	if !strings.Contains(ir, "define i64 @add") {
		t.Fatalf("expected a define for add, got:\n%s", ir)
	}
	if !strings.Contains(ir, "ret i64") {
		t.Fatalf("expected a ret i64 terminator, got:\n%s", ir)
	}
}

func TestFunctionWithoutExplicitReturnGetsTrailingRet(t *testing.T) {
	ir := generate(t, "define noop() -> void =\n    let x = 1\n")
	if !strings.Contains(ir, "define void @noop") {
		t.Fatalf("expected a void-returning function signature, got:\n%s", ir)
	}
	if !strings.Contains(ir, "ret void") {
		t.Fatalf("expected FunctionDef to synthesize a trailing void ret when the body never returns, got:\n%s", ir)
	}
}

func TestCallToRuntimeABIFunctionNeedsNoExtern(t *testing.T) {
	src := "define f() -> int =\n    return print(1)\n"
	ir := generate(t, src)
	if !strings.Contains(ir, "declare i64 @print(i64") {
		t.Fatalf("expected print to be auto-declared against the runtime ABI signature, got:\n%s", ir)
	}
	if !strings.Contains(ir, "call i64 @print(i64 1)") {
		t.Fatalf("expected a call to the auto-declared print, got:\n%s", ir)
	}
}

func TestCallToRuntimeABIFunctionRejectsWrongArgType(t *testing.T) {
	src := "define f() -> int =\n    return print(true)\n"
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected a TypeMismatch diagnostic for passing a boolean to print's int parameter")
	}
}

func TestExternFuncDeclares(t *testing.T) {
	ir := generate(t, "extern print(int) -> int\n")
	if !strings.Contains(ir, "declare i64 @print(i64") {
		t.Fatalf("expected an extern declaration for print, got:\n%s", ir)
	}
}

func TestIfElsePhi(t *testing.T) {
	src := "define pick(c boolean) -> int =\n    if c\n        return 1\n    else\n        return 2\n"
	ir := generate(t, src)
	if !strings.Contains(ir, "br i1") {
		t.Fatalf("expected a conditional branch on the boolean, got:\n%s", ir)
	}
	if strings.Count(ir, "ret i64 1") != 1 || strings.Count(ir, "ret i64 2") != 1 {
		t.Fatalf("expected each arm to emit its own real ret, not a discarded trailing zero, got:\n%s", ir)
	}
	if strings.Contains(ir, "ret i64 0") {
		t.Fatalf("function whose body is entirely an if/else that returns in both arms must never fall back to a synthesized zero ret, got:\n%s", ir)
	}
	if !strings.Contains(ir, "unreachable") {
		t.Fatalf("expected the merge block, unreachable since both arms return, to be terminated with unreachable, got:\n%s", ir)
	}
}

func TestIfWithoutElseReturningInThenArm(t *testing.T) {
	src := "define f(c boolean) -> int =\n    if c\n        return 1\n    return 0\n"
	ir := generate(t, src)
	if strings.Count(ir, "ret i64") != 2 {
		t.Fatalf("expected both the then-arm return and the trailing return to emit their own ret, got:\n%s", ir)
	}
}

func TestIfWithNeitherArmReturningMergesToVoid(t *testing.T) {
	src := "define f(c boolean) -> int =\n    if c\n        let x = 1\n    else\n        let y = 2\n    return 0\n"
	ir := generate(t, src)
	if !strings.Contains(ir, "phi i64") {
		t.Fatalf("expected the merge block to still build a phi when neither arm returns, got:\n%s", ir)
	}
}

func TestWhileLoopWithReturnInBodyDoesNotDoubleTerminate(t *testing.T) {
	src := "define find(n int) -> int =\n    while n > 0\n        if n == 3\n            return n\n        n = n - 1\n    return 0\n"
	ir := generate(t, src)
	if !strings.Contains(ir, "ret i64 0") {
		t.Fatalf("expected the trailing fallback return to survive, got:\n%s", ir)
	}
}

func TestWhileLoopBranches(t *testing.T) {
	src := "define count(n int) -> int =\n    while n > 0\n        n = n - 1\n    return n\n"
	ir := generate(t, src)
	if strings.Count(ir, "br ") < 2 {
		t.Fatalf("expected at least a loop-test branch and a back edge, got:\n%s", ir)
	}
}

func TestStructFieldAccessGeneratesGEP(t *testing.T) {
	src := "struct Point { x int, y int }\n" +
		"define getX(p Point) -> int =\n    return p.x\n"
	ir := generate(t, src)
	if !strings.Contains(ir, "getelementptr") {
		t.Fatalf("expected a GEP for field access, got:\n%s", ir)
	}
}

func TestArrayIndexGeneratesGEP(t *testing.T) {
	src := "define first(xs int[3]) -> int =\n    return xs[0]\n"
	ir := generate(t, src)
	if !strings.Contains(ir, "getelementptr") {
		t.Fatalf("expected a GEP for array indexing, got:\n%s", ir)
	}
}

func TestCallToUndeclaredFunctionFails(t *testing.T) {
	prog, err := parser.ParseProgram(lexer.New("define f() -> int =\n    return g()\n"))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected a diagnostic for calling an undeclared function")
	}
}

func TestCallWithWrongArgCountFails(t *testing.T) {
	src := "define add(a int, b int) -> int =\n    return a + b\ndefine bad() -> int =\n    return add(1)\n"
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected WrongNumberOfArguments diagnostic")
	}
}

func TestAssignTypeMismatchFails(t *testing.T) {
	src := "define f() -> int =\n    let x = 1\n    x = true\n    return x\n"
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected TypeMismatch diagnostic when assigning a boolean to an int variable")
	}
}

func TestAddressOfIdentifierAndDereference(t *testing.T) {
	src := "define f() -> int =\n    let x = 1\n    let p = &x\n    return *p\n"
	ir := generate(t, src)
	if !strings.Contains(ir, "alloca i64") {
		t.Fatalf("expected x to be allocated on the stack, got:\n%s", ir)
	}
}

func TestStructLiteralRejectsUnknownFieldName(t *testing.T) {
	src := "struct Point { x int, y int }\n" +
		"define f() -> Point =\n    return Point { x: 1, y: 2, z: 3 }\n"
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected a FieldNotFound diagnostic for a field absent from the declared layout")
	}
}

func TestFloatArithmeticIsRejected(t *testing.T) {
	src := "define f() -> float =\n    return 1.0 + 2.0\n"
	prog, err := parser.ParseProgram(lexer.New(src))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected arithmetic to reject float operands per spec.md's Int-only rule")
	}
}
