package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Print renders a Program back to source text. Print(Parse(s)) is expected
// to parse back to an AST equal to Parse(s) modulo spans (P1).
func Print(p *Program) string {
	var b strings.Builder
	for i, s := range p.Statements {
		if i > 0 {
			b.WriteByte('\n')
		}
		printStatement(&b, s, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, level int) {
	for i := 0; i < level; i++ {
		b.WriteString("    ")
	}
}

func printBlock(b *strings.Builder, blk *Block, level int) {
	for _, s := range blk.Statements {
		printStatement(b, s, level)
		b.WriteByte('\n')
	}
}

func printStatement(b *strings.Builder, s Statement, level int) {
	indent(b, level)
	switch n := s.(type) {
	case *LetStmt:
		b.WriteString("let ")
		b.WriteString(n.Name.Name)
		if n.Type != nil {
			b.WriteString(": ")
			b.WriteString(n.Type.String())
		}
		b.WriteString(" = ")
		printExpression(b, n.Value)
	case *FunctionDefStmt:
		b.WriteString("define ")
		b.WriteString(n.Name.Name)
		b.WriteByte('(')
		for i, p := range n.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name.Name)
			b.WriteByte(' ')
			b.WriteString(p.Type.String())
		}
		b.WriteString(") -> ")
		b.WriteString(n.ReturnType.String())
		b.WriteString(" =\n")
		printBlock(b, n.Body, level+1)
	case *ExternFuncStmt:
		b.WriteString("extern ")
		b.WriteString(n.Name.Name)
		b.WriteByte('(')
		for i, t := range n.ParamTypes {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.String())
		}
		b.WriteString(") -> ")
		b.WriteString(n.ReturnType.String())
	case *ReturnStmt:
		b.WriteString("return ")
		printExpression(b, n.Value)
	case *WhileStmt:
		b.WriteString("while ")
		printExpression(b, n.Cond)
		b.WriteString("\n")
		printBlock(b, n.Body, level+1)
	case *IfNode:
		printIf(b, n, level)
	case *TypeDeclStmt:
		b.WriteString("type ")
		b.WriteString(n.Name.Name)
		b.WriteString(" = ")
		b.WriteString(n.Type.String())
	case *DeclareStmt:
		b.WriteString("declare ")
		b.WriteString(n.Name.Name)
		b.WriteString(": ")
		b.WriteString(n.Type.String())
	case *StructDeclStmt:
		b.WriteString("struct ")
		b.WriteString(n.Name.Name)
		b.WriteString(" {")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name.Name)
			b.WriteByte(' ')
			b.WriteString(f.Type.String())
		}
		b.WriteString("}")
	case *ExprStmt:
		printExpression(b, n.Expr)
	default:
		fmt.Fprintf(b, "<?statement %T>", n)
	}
}

func printIf(b *strings.Builder, n *IfNode, level int) {
	b.WriteString("if ")
	printExpression(b, n.Cond)
	b.WriteString("\n")
	printBlock(b, n.Then, level+1)
	if n.ElseIf != nil {
		indent(b, level)
		b.WriteString("else ")
		printIf(b, n.ElseIf, level)
		return
	}
	if n.Else != nil {
		indent(b, level)
		b.WriteString("else\n")
		printBlock(b, n.Else, level+1)
	}
}

func printExpression(b *strings.Builder, e Expression) {
	switch n := e.(type) {
	case *LiteralExpr:
		printLiteral(b, n.Value)
	case *BinaryExpr:
		printExpression(b, n.Left)
		if n.Op == OpDot {
			b.WriteString(".")
		} else {
			fmt.Fprintf(b, " %s ", n.Op)
		}
		printExpression(b, n.Right)
	case *UnaryExpr:
		b.WriteString(n.Op.String())
		printExpression(b, n.Operand)
	case *AssignExpr:
		printExpression(b, n.Target)
		b.WriteString(" = ")
		printExpression(b, n.Value)
	case *BlockExpr:
		b.WriteString("{\n")
		printBlock(b, n.Block, 1)
		b.WriteString("}")
	case *IfNode:
		printIf(b, n, 0)
	case *CallExpr:
		b.WriteString(n.Callee)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpression(b, a)
		}
		b.WriteByte(')')
	case *IndexExpr:
		printExpression(b, n.Target)
		b.WriteByte('[')
		printExpression(b, n.Index)
		b.WriteByte(']')
	case *TypeofExpr:
		b.WriteString("typeof ")
		printExpression(b, n.Operand)
	case *SizeofExpr:
		b.WriteString("sizeof ")
		printExpression(b, n.Operand)
	case *CastExpr:
		printExpression(b, n.Operand)
		b.WriteString(" as ")
		b.WriteString(n.Target.String())
	case *AddressOfExpr:
		b.WriteString("&")
		printExpression(b, n.Operand)
	case *DereferenceExpr:
		b.WriteString("*")
		printExpression(b, n.Operand)
	default:
		fmt.Fprintf(b, "<?expression %T>", n)
	}
}

func printLiteral(b *strings.Builder, l Literal) {
	switch v := l.(type) {
	case IdentifierLiteral:
		b.WriteString(v.Name)
	case IntLiteral:
		b.WriteString(strconv.FormatInt(v.Value, 10))
	case FloatLiteral:
		s := strconv.FormatFloat(v.Value, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		b.WriteString(s)
	case BooleanLiteral:
		b.WriteString(strconv.FormatBool(v.Value))
	case StringLiteral:
		b.WriteString(strconv.Quote(v.Value))
	case ArrayLiteral:
		b.WriteByte('[')
		for i, el := range v.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			printExpression(b, el)
		}
		b.WriteByte(']')
	case StructLiteral:
		b.WriteString(v.Name)
		b.WriteString(" { ")
		names := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			names[i] = f.Name
		}
		sort.Strings(names)
		byName := make(map[string]Expression, len(v.Fields))
		for _, f := range v.Fields {
			byName[f.Name] = f.Value
		}
		for i, name := range names {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteString(": ")
			printExpression(b, byName[name])
		}
		b.WriteString(" }")
	default:
		fmt.Fprintf(b, "<?literal %T>", v)
	}
}
