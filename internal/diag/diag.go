// Package diag defines the single diagnostic type shared by the lexer,
// parser and code generator (SPEC_FULL.md §4.8/§7). Kind stays an enum
// instead of a hierarchy of error types so that every stage can construct
// and a caller can switch on one flat value.
package diag

import (
	"fmt"

	"github.com/emberlang/ember/internal/ast"
	"github.com/pkg/errors"
)

type Kind int

const (
	// Lexer
	MixedIndentation Kind = iota
	UnterminatedString
	UnterminatedIndent

	// Parser
	ExpectedNextToken
	ExpectedType
	ExpectedExpression
	UnexpectedToken

	// Symbol resolution / codegen
	IdentifierNotFound
	FunctionNotFound
	StructNotFound
	FieldNotFound
	TypeMismatch
	Expected
	CannotBeAssigned
	CallNonFunctionType
	MemberAccessNonStructType
	TypeThatCannotBeIndexed
	WrongNumberOfArguments
	ArrayMustHaveAtLeastOneElement
	UnknownSize
	AlreadyDeclared
	UnimplementedStatement
)

var kindNames = map[Kind]string{
	MixedIndentation:                "mixed indentation",
	UnterminatedString:              "unterminated string literal",
	UnterminatedIndent:              "unterminated indentation block",
	ExpectedNextToken:               "expected token",
	ExpectedType:                    "expected type",
	ExpectedExpression:              "expected expression",
	UnexpectedToken:                 "unexpected token",
	IdentifierNotFound:              "identifier not found",
	FunctionNotFound:                "function not found",
	StructNotFound:                  "struct not found",
	FieldNotFound:                   "field not found",
	TypeMismatch:                    "type mismatch",
	Expected:                        "expected",
	CannotBeAssigned:                "cannot be assigned",
	CallNonFunctionType:             "call of non-function type",
	MemberAccessNonStructType:       "member access on non-struct type",
	TypeThatCannotBeIndexed:         "type cannot be indexed",
	WrongNumberOfArguments:          "wrong number of arguments",
	ArrayMustHaveAtLeastOneElement:  "array must have at least one element",
	UnknownSize:                     "unknown size",
	AlreadyDeclared:                 "already declared",
	UnimplementedStatement:          "statement not implemented",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown diagnostic"
}

// Diagnostic is the single error type produced by every stage. Expected/Got
// are pre-formatted strings rather than cgtype.CodegenType values, so that
// this package never has to import cgtype (cgtype itself imports diag, so
// that would be an import cycle).
type Diagnostic struct {
	Kind     Kind
	Message  string
	Span     ast.Span
	Expected string
	Got      string
}

func (d *Diagnostic) Error() string {
	if d.Expected != "" || d.Got != "" {
		return fmt.Sprintf("%s: %s (expected %s, got %s)", d.Kind, d.Message, d.Expected, d.Got)
	}
	if d.Message != "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return d.Kind.String()
}

func New(kind Kind, span ast.Span, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Message: message}
}

func Newf(kind Kind, span ast.Span, format string, args ...interface{}) *Diagnostic {
	return New(kind, span, fmt.Sprintf(format, args...))
}

func Mismatch(kind Kind, span ast.Span, expected, got string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Expected: expected, Got: got}
}

func NotFound(kind Kind, span ast.Span, name string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Message: name}
}

// Wrap prepares err for returning from a later stage. A *Diagnostic passes
// through verbatim (a lexing error surfaced through the parser keeps its
// own kind, message and span, per SPEC_FULL.md §4.2); anything else is
// wrapped with github.com/pkg/errors' WithStack so a Cause() chain survives
// for debugging. The span argument is not used.
func Wrap(err error, span ast.Span) error {
	if err == nil {
		return nil
	}
	if d, ok := err.(*Diagnostic); ok {
		return d
	}
	return errors.WithStack(err)
}
