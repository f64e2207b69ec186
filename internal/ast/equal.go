package ast

import "sort"

// Equal performs a deep structural comparison of two programs, ignoring
// spans entirely (consistent with Span.Equal always reporting true).
func Equal(a, b *Program) bool {
	if len(a.Statements) != len(b.Statements) {
		return false
	}
	for i := range a.Statements {
		if !statementEqual(a.Statements[i], b.Statements[i]) {
			return false
		}
	}
	return true
}

func blockEqual(a, b *Block) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Statements) != len(b.Statements) {
		return false
	}
	for i := range a.Statements {
		if !statementEqual(a.Statements[i], b.Statements[i]) {
			return false
		}
	}
	return true
}

func typeEqual(a, b AstType) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case FloatType:
		_, ok := b.(FloatType)
		return ok
	case StringType:
		_, ok := b.(StringType)
		return ok
	case BooleanType:
		_, ok := b.(BooleanType)
		return ok
	case VoidType:
		_, ok := b.(VoidType)
		return ok
	case StructRefType:
		y, ok := b.(StructRefType)
		return ok && x.Name == y.Name
	case AliasRefType:
		y, ok := b.(AliasRefType)
		return ok && x.Name == y.Name
	case ArrayType:
		y, ok := b.(ArrayType)
		if !ok || !typeEqual(x.Elem, y.Elem) {
			return false
		}
		if (x.Len == nil) != (y.Len == nil) {
			return false
		}
		return x.Len == nil || *x.Len == *y.Len
	case PointerType:
		y, ok := b.(PointerType)
		return ok && typeEqual(x.Elem, y.Elem)
	}
	return false
}

func statementEqual(a, b Statement) bool {
	switch x := a.(type) {
	case *LetStmt:
		y, ok := b.(*LetStmt)
		return ok && x.Name.Name == y.Name.Name && typeEqual(x.Type, y.Type) && expressionEqual(x.Value, y.Value)
	case *FunctionDefStmt:
		y, ok := b.(*FunctionDefStmt)
		if !ok || x.Name.Name != y.Name.Name || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i].Name.Name != y.Params[i].Name.Name || !typeEqual(x.Params[i].Type, y.Params[i].Type) {
				return false
			}
		}
		return typeEqual(x.ReturnType, y.ReturnType) && blockEqual(x.Body, y.Body)
	case *ExternFuncStmt:
		y, ok := b.(*ExternFuncStmt)
		if !ok || x.Name.Name != y.Name.Name || len(x.ParamTypes) != len(y.ParamTypes) {
			return false
		}
		for i := range x.ParamTypes {
			if !typeEqual(x.ParamTypes[i], y.ParamTypes[i]) {
				return false
			}
		}
		return typeEqual(x.ReturnType, y.ReturnType)
	case *ReturnStmt:
		y, ok := b.(*ReturnStmt)
		return ok && expressionEqual(x.Value, y.Value)
	case *WhileStmt:
		y, ok := b.(*WhileStmt)
		return ok && expressionEqual(x.Cond, y.Cond) && blockEqual(x.Body, y.Body)
	case *IfNode:
		y, ok := b.(*IfNode)
		if !ok || !expressionEqual(x.Cond, y.Cond) || !blockEqual(x.Then, y.Then) {
			return false
		}
		if (x.ElseIf == nil) != (y.ElseIf == nil) {
			return false
		}
		if x.ElseIf != nil {
			return statementEqual(x.ElseIf, y.ElseIf)
		}
		return blockEqual(x.Else, y.Else)
	case *TypeDeclStmt:
		y, ok := b.(*TypeDeclStmt)
		return ok && x.Name.Name == y.Name.Name && typeEqual(x.Type, y.Type)
	case *DeclareStmt:
		y, ok := b.(*DeclareStmt)
		return ok && x.Name.Name == y.Name.Name && typeEqual(x.Type, y.Type)
	case *StructDeclStmt:
		y, ok := b.(*StructDeclStmt)
		if !ok || x.Name.Name != y.Name.Name || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name.Name != y.Fields[i].Name.Name || !typeEqual(x.Fields[i].Type, y.Fields[i].Type) {
				return false
			}
		}
		return true
	case *ExprStmt:
		y, ok := b.(*ExprStmt)
		return ok && expressionEqual(x.Expr, y.Expr)
	}
	return false
}

func expressionEqual(a, b Expression) bool {
	switch x := a.(type) {
	case *LiteralExpr:
		y, ok := b.(*LiteralExpr)
		return ok && literalEqual(x.Value, y.Value)
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && expressionEqual(x.Left, y.Left) && expressionEqual(x.Right, y.Right)
	case *UnaryExpr:
		y, ok := b.(*UnaryExpr)
		return ok && x.Op == y.Op && expressionEqual(x.Operand, y.Operand)
	case *AssignExpr:
		y, ok := b.(*AssignExpr)
		return ok && expressionEqual(x.Target, y.Target) && expressionEqual(x.Value, y.Value)
	case *BlockExpr:
		y, ok := b.(*BlockExpr)
		return ok && blockEqual(x.Block, y.Block)
	case *IfNode:
		y, ok := b.(*IfNode)
		return ok && statementEqual(x, y)
	case *CallExpr:
		y, ok := b.(*CallExpr)
		if !ok || x.Callee != y.Callee || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !expressionEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *IndexExpr:
		y, ok := b.(*IndexExpr)
		return ok && expressionEqual(x.Target, y.Target) && expressionEqual(x.Index, y.Index)
	case *TypeofExpr:
		y, ok := b.(*TypeofExpr)
		return ok && expressionEqual(x.Operand, y.Operand)
	case *SizeofExpr:
		y, ok := b.(*SizeofExpr)
		return ok && expressionEqual(x.Operand, y.Operand)
	case *CastExpr:
		y, ok := b.(*CastExpr)
		return ok && expressionEqual(x.Operand, y.Operand) && typeEqual(x.Target, y.Target)
	case *AddressOfExpr:
		y, ok := b.(*AddressOfExpr)
		return ok && expressionEqual(x.Operand, y.Operand)
	case *DereferenceExpr:
		y, ok := b.(*DereferenceExpr)
		return ok && expressionEqual(x.Operand, y.Operand)
	}
	return false
}

func literalEqual(a, b Literal) bool {
	switch x := a.(type) {
	case IdentifierLiteral:
		y, ok := b.(IdentifierLiteral)
		return ok && x.Name == y.Name
	case IntLiteral:
		y, ok := b.(IntLiteral)
		return ok && x.Value == y.Value
	case FloatLiteral:
		y, ok := b.(FloatLiteral)
		return ok && x.Value == y.Value
	case BooleanLiteral:
		y, ok := b.(BooleanLiteral)
		return ok && x.Value == y.Value
	case StringLiteral:
		y, ok := b.(StringLiteral)
		return ok && x.Value == y.Value
	case ArrayLiteral:
		y, ok := b.(ArrayLiteral)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !expressionEqual(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case StructLiteral:
		y, ok := b.(StructLiteral)
		if !ok || x.Name != y.Name || len(x.Fields) != len(y.Fields) {
			return false
		}
		xs := append([]StructLiteralField(nil), x.Fields...)
		ys := append([]StructLiteralField(nil), y.Fields...)
		sort.Slice(xs, func(i, j int) bool { return xs[i].Name < xs[j].Name })
		sort.Slice(ys, func(i, j int) bool { return ys[i].Name < ys[j].Name })
		for i := range xs {
			if xs[i].Name != ys[i].Name || !expressionEqual(xs[i].Value, ys[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
