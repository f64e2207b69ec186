package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
	"github.com/llir/llvm/ir/value"
)

// Assign evaluates the right side, then pattern-matches the left side into
// one of the four assignable forms (spec.md §4.5 "Assignment"). addressOf
// below is the shared lvalue resolution also used by AddressOf.
func (g *Generator) Assign(e *ast.AssignExpr) (Value, error) {
	rhs, err := g.Expression(e.Value)
	if err != nil {
		return Value{}, err
	}

	addr, elemTy, err := g.addressOf(e.Target)
	if err != nil {
		return Value{}, err
	}
	if !elemTy.Equal(rhs.Type) {
		return Value{}, diag.Mismatch(diag.TypeMismatch, e.Sp, elemTy.String(), rhs.Type.String())
	}
	g.block.NewStore(rhs.Handle, addr)
	return rhs, nil
}

// addressOf computes the address and declared element type of one of the
// four lvalue forms the language recognizes: a plain identifier, an array
// index, a struct member, or a pointer dereference. Any other expression
// form is CannotBeAssigned. Both Assign and AddressOf (the `&e` operator)
// share this so the four-way match lives in exactly one place.
func (g *Generator) addressOf(expr ast.Expression) (value.Value, cgtype.CodegenType, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		id, ok := e.Value.(ast.IdentifierLiteral)
		if !ok {
			break
		}
		v, ok := g.symbols.LookupVar(id.Name)
		if !ok {
			return nil, cgtype.CodegenType{}, diag.NotFound(diag.IdentifierNotFound, id.Sp, id.Name)
		}
		return v.Addr, v.Type, nil

	case *ast.IndexExpr:
		left, err := g.Expression(e.Target)
		if err != nil {
			return nil, cgtype.CodegenType{}, err
		}
		if left.Type.Variant != cgtype.Array {
			return nil, cgtype.CodegenType{}, diag.New(diag.TypeThatCannotBeIndexed, e.Sp, "")
		}
		idx, err := g.Expression(e.Index)
		if err != nil {
			return nil, cgtype.CodegenType{}, err
		}
		if idx.Type.Variant != cgtype.Int {
			return nil, cgtype.CodegenType{}, diag.New(diag.Expected, e.Sp, "int")
		}
		elemTy := *left.Type.Elem
		ptr := g.block.NewGetElementPtr(llvmType(elemTy), left.Handle, idx.Handle)
		return ptr, elemTy, nil

	case *ast.BinaryExpr:
		if e.Op != ast.OpDot {
			break
		}
		left, err := g.Expression(e.Left)
		if err != nil {
			return nil, cgtype.CodegenType{}, err
		}
		if left.Type.Variant != cgtype.Struct {
			return nil, cgtype.CodegenType{}, diag.New(diag.MemberAccessNonStructType, e.Sp, "")
		}
		name, ok := fieldName(e.Right)
		if !ok {
			return nil, cgtype.CodegenType{}, diag.New(diag.ExpectedExpression, e.Right.Span(), "expected a field name")
		}
		field, ok := left.Type.Layout.Lookup(name)
		if !ok {
			return nil, cgtype.CodegenType{}, diag.NotFound(diag.FieldNotFound, e.Right.Span(), name)
		}
		ptr := g.fieldAddr(left.Handle, llvmType(left.Type), field.Index)
		return ptr, field.Type, nil

	case *ast.DereferenceExpr:
		v, err := g.Expression(e.Operand)
		if err != nil {
			return nil, cgtype.CodegenType{}, err
		}
		if v.Type.Variant != cgtype.Pointer {
			return nil, cgtype.CodegenType{}, diag.New(diag.Expected, e.Sp, "pointer")
		}
		return v.Handle, *v.Type.Elem, nil
	}

	return nil, cgtype.CodegenType{}, diag.New(diag.CannotBeAssigned, expr.Span(), "")
}
