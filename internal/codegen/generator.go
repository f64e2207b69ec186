// Package codegen lowers an ember AST into an LLVM IR module using
// github.com/llir/llvm, following the per-node contracts of SPEC_FULL.md
// §4.5: evaluate operands (left to right, except that an assignment
// evaluates its right side first), check CodegenTypes, emit the matching
// IR instruction.
package codegen

import (
	"fmt"

	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/runtime"
	"github.com/emberlang/ember/internal/symtab"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pkg/errors"
)

// Value is a code-generation result: an IR handle paired with the
// CodegenType it was produced with (spec.md §3).
type Value struct {
	Handle value.Value
	Type   cgtype.CodegenType
}

func voidValue() Value {
	return Value{Handle: zeroI64(), Type: cgtype.Primitive(cgtype.Void)}
}

func zeroI64() value.Value { return i64Const(0) }

// Generator owns the single mutable IR-builder cursor spec.md §4.5/§5
// describes: the current module, current function, current insertion
// block, and the symbol table. There is no concurrency here: one
// generator lowers one program, start to finish.
type Generator struct {
	Module *ir.Module

	runtime *runtime.Declarations
	symbols *symtab.SymbolTable

	fn    *ir.Func
	block *ir.Block

	strCount int
}

func New() *Generator {
	m := ir.NewModule()
	return &Generator{
		Module:  m,
		runtime: runtime.New(m),
		symbols: symtab.New(),
	}
}

// Generate lowers an entire program to an IR module. It fails fast at the
// first diagnostic and returns no partial module, matching spec.md §7.
func Generate(p *ast.Program) (*ir.Module, error) {
	g := New()
	if err := g.Program(p); err != nil {
		return nil, err
	}
	return g.Module, nil
}

// Program performs two passes over top-level statements: the first
// registers every struct layout, function signature and extern
// declaration so forward references resolve; the second lowers function
// bodies. This mirrors how a single-module compiler must see the whole
// top-level namespace before it can check a call against a not-yet-lowered
// callee.
func (g *Generator) Program(p *ast.Program) error {
	for _, stmt := range p.Statements {
		if err := g.registerTopLevel(stmt); err != nil {
			return err
		}
	}
	for _, stmt := range p.Statements {
		if err := g.lowerTopLevel(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) registerTopLevel(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.StructDeclStmt:
		return g.declareStruct(s)
	case *ast.FunctionDefStmt:
		return g.declareFunctionSignature(s)
	case *ast.ExternFuncStmt:
		return g.ExternFunc(s)
	case *ast.TypeDeclStmt, *ast.DeclareStmt:
		return diag.New(diag.UnimplementedStatement, stmt.Span(), "type/declare statements are reserved and not implemented")
	}
	return nil
}

func (g *Generator) lowerTopLevel(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.FunctionDefStmt:
		return g.FunctionDef(s)
	case *ast.ExternFuncStmt, *ast.StructDeclStmt, *ast.TypeDeclStmt, *ast.DeclareStmt:
		return nil
	default:
		return diag.Newf(diag.UnimplementedStatement, stmt.Span(), "%T is not valid at top level", stmt)
	}
}

// Statement lowers one statement in function-body position.
func (g *Generator) Statement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return g.Let(s)
	case *ast.ReturnStmt:
		return g.Return(s)
	case *ast.WhileStmt:
		return g.While(s)
	case *ast.IfNode:
		_, err := g.If(s)
		return err
	case *ast.ExprStmt:
		_, err := g.Expression(s.Expr)
		return err
	case *ast.StructDeclStmt:
		return g.declareStruct(s)
	case *ast.FunctionDefStmt, *ast.ExternFuncStmt:
		return diag.New(diag.UnimplementedStatement, stmt.Span(), "nested function definitions are not supported")
	case *ast.TypeDeclStmt, *ast.DeclareStmt:
		return diag.New(diag.UnimplementedStatement, stmt.Span(), "type/declare statements are reserved and not implemented")
	}
	return diag.Newf(diag.UnimplementedStatement, stmt.Span(), "%T", stmt)
}

// Expression dispatches to the per-kind lowering in the sibling files of
// this package.
func (g *Generator) Expression(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return g.Literal(e)
	case *ast.BinaryExpr:
		return g.Binary(e)
	case *ast.UnaryExpr:
		return g.Unary(e)
	case *ast.AssignExpr:
		return g.Assign(e)
	case *ast.BlockExpr:
		return g.Block(e.Block)
	case *ast.IfNode:
		return g.If(e)
	case *ast.CallExpr:
		return g.Call(e)
	case *ast.IndexExpr:
		return g.Index(e)
	case *ast.TypeofExpr:
		return g.Typeof(e)
	case *ast.SizeofExpr:
		return g.Sizeof(e)
	case *ast.CastExpr:
		return g.Cast(e)
	case *ast.AddressOfExpr:
		return g.AddressOf(e)
	case *ast.DereferenceExpr:
		return g.Dereference(e)
	}
	return Value{}, diag.Newf(diag.UnimplementedStatement, expr.Span(), "%T", expr)
}

func (g *Generator) resolveType(t ast.AstType) (cgtype.CodegenType, error) {
	return cgtype.FromAst(t, g.symbols)
}

// loadOrAddress implements the array/struct handle convention this
// generator uses throughout: Array and Struct typed values always carry
// their stack address as Handle, never a loaded aggregate, so indexing,
// member access, address-of and assignment all operate uniformly on a
// pointer. Scalars load normally.
func (g *Generator) loadOrAddress(addr value.Value, ty cgtype.CodegenType) Value {
	if ty.Variant == cgtype.Array || ty.Variant == cgtype.Struct {
		return Value{Handle: addr, Type: ty}
	}
	return Value{Handle: g.block.NewLoad(llvmType(ty), addr), Type: ty}
}

func i64Const(n int64) value.Value { return constInt(types.I64, n) }

func (g *Generator) newTempString() string {
	g.strCount++
	return fmt.Sprintf(".str.%d", g.strCount)
}

func wrap(err error, span ast.Span) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*diag.Diagnostic); ok {
		return err
	}
	return errors.WithStack(err)
}
