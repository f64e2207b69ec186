// Package cgtype adapts source-level ast.AstType into the code generator's
// own type representation: CodegenType augments the AST-level union with
// resolved struct layouts and function signatures (SPEC_FULL.md §3/§4.4).
package cgtype

import (
	"fmt"
	"strings"

	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/diag"
)

type Variant int

const (
	Int Variant = iota
	Float
	String
	Boolean
	Void
	Array
	Struct
	Pointer
	Function
)

// Tag is the typeof() tag table from spec.md §4.5.
func (t CodegenType) Tag() int64 {
	switch t.Variant {
	case Int:
		return 0
	case Float:
		return 1
	case String:
		return 2
	case Boolean:
		return 3
	case Array:
		return 4
	case Struct:
		return 5
	case Function:
		return 6
	case Void:
		return 7
	case Pointer:
		return 8
	}
	panic("cgtype: unreachable variant in Tag")
}

// FieldEntry is one named, indexed field of a struct layout.
type FieldEntry struct {
	Name  string
	Index int
	Type  CodegenType
}

// StructLayout names a struct and its fields in declaration order; Fields[i]
// always has Index == i, satisfying I3 (bijective, contiguous field index
// assignment) by construction.
type StructLayout struct {
	Name   string
	Fields []FieldEntry
}

func (l StructLayout) Lookup(name string) (FieldEntry, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldEntry{}, false
}

// Signature is a function or extern declaration's type, independent of its
// body.
type Signature struct {
	Params []CodegenType
	Return CodegenType
}

// CodegenType is the closed variant described in spec.md §3. Only the
// fields relevant to Variant are populated; the others are zero values.
type CodegenType struct {
	Variant Variant

	Elem   *CodegenType // Array, Pointer
	Len    *int64       // Array; nil means length was inferred/omitted
	Layout StructLayout // Struct
	Sig    Signature    // Function
}

func Primitive(v Variant) CodegenType { return CodegenType{Variant: v} }

func ArrayOf(elem CodegenType, length *int64) CodegenType {
	e := elem
	return CodegenType{Variant: Array, Elem: &e, Len: length}
}

func PointerTo(elem CodegenType) CodegenType {
	e := elem
	return CodegenType{Variant: Pointer, Elem: &e}
}

func StructOf(layout StructLayout) CodegenType {
	return CodegenType{Variant: Struct, Layout: layout}
}

func FunctionOf(sig Signature) CodegenType {
	return CodegenType{Variant: Function, Sig: sig}
}

func (t CodegenType) Equal(o CodegenType) bool {
	if t.Variant != o.Variant {
		return false
	}
	switch t.Variant {
	case Array:
		if !t.Elem.Equal(*o.Elem) {
			return false
		}
		if (t.Len == nil) != (o.Len == nil) {
			return false
		}
		return t.Len == nil || *t.Len == *o.Len
	case Pointer:
		return t.Elem.Equal(*o.Elem)
	case Struct:
		return t.Layout.Name == o.Layout.Name
	case Function:
		if len(t.Sig.Params) != len(o.Sig.Params) {
			return false
		}
		for i := range t.Sig.Params {
			if !t.Sig.Params[i].Equal(o.Sig.Params[i]) {
				return false
			}
		}
		return t.Sig.Return.Equal(o.Sig.Return)
	default:
		return true
	}
}

func (t CodegenType) String() string {
	switch t.Variant {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Void:
		return "void"
	case Array:
		if t.Len != nil {
			return fmt.Sprintf("%s[%d]", t.Elem.String(), *t.Len)
		}
		return t.Elem.String() + "[]"
	case Struct:
		return t.Layout.Name
	case Pointer:
		return t.Elem.String() + "*"
	case Function:
		parts := make([]string, len(t.Sig.Params))
		for i, p := range t.Sig.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Sig.Return.String())
	}
	return "?"
}

// Resolver looks up named types. *symtab.SymbolTable implements this; the
// indirection keeps this package from importing symtab, which itself stores
// CodegenType values (SPEC_FULL.md §4.4).
type Resolver interface {
	LookupStruct(name string) (StructLayout, bool)
	LookupAlias(name string) (CodegenType, bool)
}

// FromAst lowers a parsed type to its code-generation form, resolving
// struct and alias references against resolve. Every reachable Struct or
// AliasRef name is resolved before FromAst returns, satisfying I2.
func FromAst(t ast.AstType, resolve Resolver) (CodegenType, error) {
	switch n := t.(type) {
	case ast.IntType:
		return Primitive(Int), nil
	case ast.FloatType:
		return Primitive(Float), nil
	case ast.StringType:
		return Primitive(String), nil
	case ast.BooleanType:
		return Primitive(Boolean), nil
	case ast.VoidType:
		return Primitive(Void), nil
	case ast.StructRefType:
		layout, ok := resolve.LookupStruct(n.Name)
		if !ok {
			return CodegenType{}, diag.NotFound(diag.StructNotFound, n.Sp, n.Name)
		}
		return StructOf(layout), nil
	case ast.AliasRefType:
		ty, ok := resolve.LookupAlias(n.Name)
		if !ok {
			return CodegenType{}, diag.NotFound(diag.IdentifierNotFound, n.Sp, n.Name)
		}
		return ty, nil
	case ast.ArrayType:
		elem, err := FromAst(n.Elem, resolve)
		if err != nil {
			return CodegenType{}, err
		}
		return ArrayOf(elem, n.Len), nil
	case ast.PointerType:
		elem, err := FromAst(n.Elem, resolve)
		if err != nil {
			return CodegenType{}, err
		}
		return PointerTo(elem), nil
	}
	return CodegenType{}, diag.Newf(diag.Expected, t.Span(), "unrecognized type node %T", t)
}

// SizeOf returns the IR-level byte size per spec.md §4.4. Arrays with no
// known length yield UnknownSize; struct sizes are the unpadded sum of
// field sizes.
func SizeOf(t CodegenType) (int64, error) {
	switch t.Variant {
	case Int, Float:
		return 8, nil
	case Boolean:
		return 1, nil
	case String, Pointer, Function:
		return 8, nil
	case Void:
		return 0, nil
	case Array:
		if t.Len == nil {
			return 0, diag.New(diag.UnknownSize, ast.Span{}, "array type has no known length")
		}
		elemSize, err := SizeOf(*t.Elem)
		if err != nil {
			return 0, err
		}
		return elemSize * *t.Len, nil
	case Struct:
		var total int64
		for _, f := range t.Layout.Fields {
			sz, err := SizeOf(f.Type)
			if err != nil {
				return 0, err
			}
			total += sz
		}
		return total, nil
	}
	return 0, diag.Newf(diag.Expected, ast.Span{}, "cannot size type %s", t)
}
