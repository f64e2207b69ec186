// Package ast defines the abstract syntax tree produced by the parser:
// spans, types, expressions, literals and statements.
package ast

import "fmt"

// Span is a byte-offset range (start,end) in the source text.
//
// Equal always reports true: AST comparisons ignore source location, so
// that parse-then-print round trips can be checked structurally.
type Span struct {
	Start int
	End   int
}

func (Span) Equal(Span) bool { return true }

func NewSpan(start, end int) Span { return Span{Start: start, End: end} }

// Identifier is a source name plus its span.
type Identifier struct {
	Name string
	Sp   Span
}

func (id Identifier) Span() Span { return id.Sp }

// Node is implemented by every AST node.
type Node interface {
	Span() Span
}

// Statement is implemented by every statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every expression node.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root of the AST.
type Program struct {
	Statements []Statement
	Sp         Span
}

func (p *Program) Span() Span { return p.Sp }

// Block is an ordered sequence of statements with its own span. It is not
// itself a Statement or Expression; it appears as a typed field wherever
// the grammar names a <block> (function bodies, if/while bodies).
type Block struct {
	Statements []Statement
	Sp         Span
}

func (b *Block) Span() Span { return b.Sp }

// ---- AstType ----------------------------------------------------------

// AstType is the tagged union over source-level type syntax.
type AstType interface {
	Node
	astType()
	fmt.Stringer
}

type IntType struct{ Sp Span }
type FloatType struct{ Sp Span }
type StringType struct{ Sp Span }
type BooleanType struct{ Sp Span }
type VoidType struct{ Sp Span }

func (IntType) astType()     {}
func (FloatType) astType()   {}
func (StringType) astType()  {}
func (BooleanType) astType() {}
func (VoidType) astType()    {}

func (t IntType) Span() Span     { return t.Sp }
func (t FloatType) Span() Span   { return t.Sp }
func (t StringType) Span() Span  { return t.Sp }
func (t BooleanType) Span() Span { return t.Sp }
func (t VoidType) Span() Span    { return t.Sp }

func (IntType) String() string     { return "int" }
func (FloatType) String() string   { return "float" }
func (StringType) String() string  { return "string" }
func (BooleanType) String() string { return "boolean" }
func (VoidType) String() string    { return "void" }

// StructRefType names a struct type declared elsewhere.
type StructRefType struct {
	Name string
	Sp   Span
}

func (StructRefType) astType()    {}
func (t StructRefType) Span() Span { return t.Sp }
func (t StructRefType) String() string { return t.Name }

// AliasRefType names a type alias (`@name`).
type AliasRefType struct {
	Name string
	Sp   Span
}

func (AliasRefType) astType()     {}
func (t AliasRefType) Span() Span { return t.Sp }
func (t AliasRefType) String() string { return "@" + t.Name }

// ArrayType is an array of Elem, with an optional fixed Len (nil = inferred
// / unsized).
type ArrayType struct {
	Elem AstType
	Len  *int64
	Sp   Span
}

func (ArrayType) astType()     {}
func (t ArrayType) Span() Span { return t.Sp }
func (t ArrayType) String() string {
	if t.Len != nil {
		return fmt.Sprintf("%s[%d]", t.Elem, *t.Len)
	}
	return fmt.Sprintf("%s[]", t.Elem)
}

// PointerType is a pointer to Elem.
type PointerType struct {
	Elem AstType
	Sp   Span
}

func (PointerType) astType()     {}
func (t PointerType) Span() Span { return t.Sp }
func (t PointerType) String() string { return t.Elem.String() + "*" }
