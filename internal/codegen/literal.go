package codegen

import (
	"sort"

	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Literal lowers a literal expression per spec.md §4.5. Int/float/boolean
// literals become IR constants directly; strings are interned as global
// NUL-terminated byte arrays; identifiers, arrays and structs delegate to
// their own helpers.
func (g *Generator) Literal(e *ast.LiteralExpr) (Value, error) {
	switch l := e.Value.(type) {
	case ast.IdentifierLiteral:
		return g.identifier(l)
	case ast.IntLiteral:
		return Value{Handle: constInt(types.I64, l.Value), Type: cgtype.Primitive(cgtype.Int)}, nil
	case ast.FloatLiteral:
		return Value{Handle: constFloat(l.Value), Type: cgtype.Primitive(cgtype.Float)}, nil
	case ast.BooleanLiteral:
		return Value{Handle: constBool(l.Value), Type: cgtype.Primitive(cgtype.Boolean)}, nil
	case ast.StringLiteral:
		return g.stringLiteral(l.Value), nil
	case ast.ArrayLiteral:
		return g.arrayLiteral(l)
	case ast.StructLiteral:
		return g.structLiteral(l)
	}
	return Value{}, diag.Newf(diag.Expected, e.Span(), "unrecognized literal %T", e.Value)
}

func (g *Generator) identifier(l ast.IdentifierLiteral) (Value, error) {
	v, ok := g.symbols.LookupVar(l.Name)
	if !ok {
		return Value{}, diag.NotFound(diag.IdentifierNotFound, l.Sp, l.Name)
	}
	return g.loadOrAddress(v.Addr, v.Type), nil
}

// stringLiteral interns the bytes as a global char array and returns a
// pointer to its first byte, via llir/llvm's explicit global-plus-GEP
// idiom (there is no single-call global-string helper on this API).
func (g *Generator) stringLiteral(s string) Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	global := g.Module.NewGlobalDef(g.newTempString(), data)
	zero := constInt(types.I64, 0)
	ptr := g.block.NewGetElementPtr(data.Typ, global, zero, zero)
	return Value{Handle: ptr, Type: cgtype.Primitive(cgtype.String)}
}

// arrayLiteral evaluates every element, infers the element type from the
// first one, allocates a contiguous stack slot, and stores each element by
// index (spec.md §4.5 "Arrays"). The result carries the alloca's address,
// not a loaded aggregate (see Generator.loadOrAddress).
func (g *Generator) arrayLiteral(l ast.ArrayLiteral) (Value, error) {
	if len(l.Elements) == 0 {
		return Value{}, diag.New(diag.ArrayMustHaveAtLeastOneElement, l.Sp, "")
	}
	values := make([]Value, len(l.Elements))
	for i, elExpr := range l.Elements {
		v, err := g.Expression(elExpr)
		if err != nil {
			return Value{}, err
		}
		values[i] = v
	}
	elemType := values[0].Type
	for _, v := range values[1:] {
		if !v.Type.Equal(elemType) {
			return Value{}, diag.Mismatch(diag.TypeMismatch, l.Sp, elemType.String(), v.Type.String())
		}
	}

	n := int64(len(values))
	arrTy := cgtype.ArrayOf(elemType, &n)
	elemLL := llvmType(elemType)
	addr := g.block.NewAlloca(types.NewArray(uint64(n), elemLL))

	for i, v := range values {
		ptr := g.block.NewGetElementPtr(elemLL, addr, constInt(types.I64, int64(i)))
		g.block.NewStore(v.Handle, ptr)
	}
	return Value{Handle: addr, Type: arrTy}, nil
}

// structLiteral resolves the named layout, checks and canonicalises field
// order to the declared index table, allocates, and stores each field
// (spec.md §4.5 "Structs").
func (g *Generator) structLiteral(l ast.StructLiteral) (Value, error) {
	layout, ok := g.symbols.LookupStruct(l.Name)
	if !ok {
		return Value{}, diag.NotFound(diag.StructNotFound, l.Sp, l.Name)
	}

	byName := make(map[string]ast.Expression, len(l.Fields))
	for _, f := range l.Fields {
		if _, ok := layout.Lookup(f.Name); !ok {
			return Value{}, diag.NotFound(diag.FieldNotFound, l.Sp, f.Name)
		}
		byName[f.Name] = f.Value
	}

	structTy := cgtype.StructOf(layout)
	structLL := llvmType(structTy)
	addr := g.block.NewAlloca(structLL)

	ordered := append([]cgtype.FieldEntry(nil), layout.Fields...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	for _, field := range ordered {
		expr, ok := byName[field.Name]
		if !ok {
			return Value{}, diag.NotFound(diag.FieldNotFound, l.Sp, field.Name)
		}
		v, err := g.Expression(expr)
		if err != nil {
			return Value{}, err
		}
		if !v.Type.Equal(field.Type) {
			return Value{}, diag.Mismatch(diag.TypeMismatch, l.Sp, field.Type.String(), v.Type.String())
		}
		ptr := g.fieldAddr(addr, structLL, field.Index)
		g.block.NewStore(v.Handle, ptr)
	}
	return Value{Handle: addr, Type: structTy}, nil
}

// fieldAddr computes a struct field's address with the standard two-index
// LLVM struct GEP (leading 0, then the i32 field index). A single-index,
// array-style GEP only yields correct offsets when every field is the same
// size; the two-index form is required once fields differ in size.
func (g *Generator) fieldAddr(addr value.Value, structLL types.Type, index int) value.Value {
	return g.block.NewGetElementPtr(structLL, addr, constInt(types.I64, 0), constInt(types.I32, int64(index)))
}
