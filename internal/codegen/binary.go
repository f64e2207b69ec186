package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
	"github.com/llir/llvm/ir/enum"
)

// Binary dispatches by operator kind: dot (struct field access), arithmetic,
// or comparison.
func (g *Generator) Binary(e *ast.BinaryExpr) (Value, error) {
	switch e.Op {
	case ast.OpDot:
		return g.dot(e)
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return g.arithmetic(e)
	default:
		return g.comparison(e)
	}
}

// dot resolves the left operand's struct layout, looks up the right-hand
// identifier as a field name, and loads the field at its computed address.
func (g *Generator) dot(e *ast.BinaryExpr) (Value, error) {
	left, err := g.Expression(e.Left)
	if err != nil {
		return Value{}, err
	}
	if left.Type.Variant != cgtype.Struct {
		return Value{}, diag.New(diag.MemberAccessNonStructType, e.Sp, "")
	}
	name, ok := fieldName(e.Right)
	if !ok {
		return Value{}, diag.New(diag.ExpectedExpression, e.Right.Span(), "expected a field name")
	}
	field, ok := left.Type.Layout.Lookup(name)
	if !ok {
		return Value{}, diag.NotFound(diag.FieldNotFound, e.Right.Span(), name)
	}
	ptr := g.fieldAddr(left.Handle, llvmType(left.Type), field.Index)
	return g.loadOrAddress(ptr, field.Type), nil
}

// fieldName extracts the identifier name from an expression used in member
// position (the right side of `.`), the one place the grammar allows a
// bare field reference rather than a full expression.
func fieldName(e ast.Expression) (string, bool) {
	lit, ok := e.(*ast.LiteralExpr)
	if !ok {
		return "", false
	}
	id, ok := lit.Value.(ast.IdentifierLiteral)
	return id.Name, ok
}

func (g *Generator) arithmetic(e *ast.BinaryExpr) (Value, error) {
	left, err := g.Expression(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := g.Expression(e.Right)
	if err != nil {
		return Value{}, err
	}
	if left.Type.Variant != cgtype.Int || right.Type.Variant != cgtype.Int {
		return Value{}, diag.New(diag.Expected, e.Sp, "int")
	}
	var handle = left.Handle
	switch e.Op {
	case ast.OpAdd:
		handle = g.block.NewAdd(left.Handle, right.Handle)
	case ast.OpSub:
		handle = g.block.NewSub(left.Handle, right.Handle)
	case ast.OpMul:
		handle = g.block.NewMul(left.Handle, right.Handle)
	case ast.OpDiv:
		handle = g.block.NewSDiv(left.Handle, right.Handle)
	case ast.OpMod:
		handle = g.block.NewSRem(left.Handle, right.Handle)
	}
	return Value{Handle: handle, Type: cgtype.Primitive(cgtype.Int)}, nil
}

func (g *Generator) comparison(e *ast.BinaryExpr) (Value, error) {
	left, err := g.Expression(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := g.Expression(e.Right)
	if err != nil {
		return Value{}, err
	}
	if left.Type.Variant != cgtype.Int || right.Type.Variant != cgtype.Int {
		return Value{}, diag.New(diag.Expected, e.Sp, "int")
	}
	var pred enum.IPred
	switch e.Op {
	case ast.OpEq:
		pred = enum.IPredEQ
	case ast.OpNeq:
		pred = enum.IPredNE
	case ast.OpLt:
		pred = enum.IPredSLT
	case ast.OpGt:
		pred = enum.IPredSGT
	case ast.OpLe:
		pred = enum.IPredSLE
	case ast.OpGe:
		pred = enum.IPredSGE
	}
	cmp := g.block.NewICmp(pred, left.Handle, right.Handle)
	return Value{Handle: cmp, Type: cgtype.Primitive(cgtype.Boolean)}, nil
}
