package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
)

// AddressOf implements `&e` (spec.md §4.5 "AddressOf"). Identifier, index
// and member operands reuse addressOf, the same lvalue resolution Assign
// uses, and never fall through: a missing identifier or field under `&`
// is a real diagnostic, not a cue to spill a value. Any other operand,
// including a dereference, is evaluated for its value, spilled to a fresh
// stack slot, and the slot's address is returned — `&*p` yields a new
// address rather than recovering p's own.
func (g *Generator) AddressOf(e *ast.AddressOfExpr) (Value, error) {
	if isLvalueForm(e.Operand) {
		addr, ty, err := g.addressOf(e.Operand)
		if err != nil {
			return Value{}, err
		}
		return Value{Handle: addr, Type: cgtype.PointerTo(ty)}, nil
	}

	v, err := g.Expression(e.Operand)
	if err != nil {
		return Value{}, err
	}
	slot := g.block.NewAlloca(llvmType(v.Type))
	g.block.NewStore(v.Handle, slot)
	return Value{Handle: slot, Type: cgtype.PointerTo(v.Type)}, nil
}

func isLvalueForm(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		_, ok := n.Value.(ast.IdentifierLiteral)
		return ok
	case *ast.IndexExpr:
		return true
	case *ast.BinaryExpr:
		return n.Op == ast.OpDot
	}
	return false
}

// Dereference implements `*e`: the operand must be Pointer(T); loads T.
func (g *Generator) Dereference(e *ast.DereferenceExpr) (Value, error) {
	v, err := g.Expression(e.Operand)
	if err != nil {
		return Value{}, err
	}
	if v.Type.Variant != cgtype.Pointer {
		return Value{}, diag.New(diag.Expected, e.Sp, "pointer")
	}
	return g.loadOrAddress(v.Handle, *v.Type.Elem), nil
}
