package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
)

// Unary implements `-` (Int or Float negation) and `!` (Boolean negation).
func (g *Generator) Unary(e *ast.UnaryExpr) (Value, error) {
	v, err := g.Expression(e.Operand)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case ast.OpNeg:
		switch v.Type.Variant {
		case cgtype.Int:
			return Value{Handle: g.block.NewSub(constInt64(0), v.Handle), Type: cgtype.Primitive(cgtype.Int)}, nil
		case cgtype.Float:
			return Value{Handle: g.block.NewFSub(constFloat(0), v.Handle), Type: cgtype.Primitive(cgtype.Float)}, nil
		}
		return Value{}, diag.New(diag.Expected, e.Sp, "int or float")
	case ast.OpNot:
		if v.Type.Variant != cgtype.Boolean {
			return Value{}, diag.New(diag.Expected, e.Sp, "boolean")
		}
		return Value{Handle: g.block.NewXor(v.Handle, constBool(true)), Type: cgtype.Primitive(cgtype.Boolean)}, nil
	}
	return Value{}, diag.New(diag.Expected, e.Sp, "unary operator")
}
