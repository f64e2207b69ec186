package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
	"github.com/llir/llvm/ir/types"
)

// Typeof returns the Int tag from the table in spec.md §4.5.
func (g *Generator) Typeof(e *ast.TypeofExpr) (Value, error) {
	v, err := g.Expression(e.Operand)
	if err != nil {
		return Value{}, err
	}
	return Value{Handle: constInt(types.I64, v.Type.Tag()), Type: cgtype.Primitive(cgtype.Int)}, nil
}

// Sizeof returns the element size (times length for fixed-length arrays);
// a length-less array is UnknownSize.
func (g *Generator) Sizeof(e *ast.SizeofExpr) (Value, error) {
	v, err := g.Expression(e.Operand)
	if err != nil {
		return Value{}, err
	}
	size, err := cgtype.SizeOf(v.Type)
	if err != nil {
		return Value{}, wrap(err, e.Sp)
	}
	return Value{Handle: constInt(types.I64, size), Type: cgtype.Primitive(cgtype.Int)}, nil
}

// Cast implements the supported conversions from spec.md §4.5: Int<->Float,
// Bool->Int (zero-extend), Int<->Pointer.
func (g *Generator) Cast(e *ast.CastExpr) (Value, error) {
	v, err := g.Expression(e.Operand)
	if err != nil {
		return Value{}, err
	}
	target, err := g.resolveType(e.Target)
	if err != nil {
		return Value{}, err
	}

	switch target.Variant {
	case cgtype.Int:
		switch v.Type.Variant {
		case cgtype.Float:
			return Value{Handle: g.block.NewFPToSI(v.Handle, types.I64), Type: target}, nil
		case cgtype.Boolean:
			return Value{Handle: g.block.NewZExt(v.Handle, types.I64), Type: target}, nil
		case cgtype.Pointer:
			return Value{Handle: g.block.NewPtrToInt(v.Handle, types.I64), Type: target}, nil
		}
		return Value{}, diag.New(diag.Expected, e.Sp, "float, boolean or pointer")
	case cgtype.Float:
		if v.Type.Variant != cgtype.Int {
			return Value{}, diag.New(diag.Expected, e.Sp, "int")
		}
		return Value{Handle: g.block.NewSIToFP(v.Handle, types.Double), Type: target}, nil
	case cgtype.Pointer:
		if v.Type.Variant != cgtype.Int {
			return Value{}, diag.New(diag.Expected, e.Sp, "int")
		}
		return Value{Handle: g.block.NewIntToPtr(v.Handle, llvmType(target).(*types.PointerType)), Type: target}, nil
	}
	return Value{}, diag.New(diag.Expected, e.Sp, "int or float")
}
