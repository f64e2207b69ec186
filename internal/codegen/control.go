package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
	"github.com/llir/llvm/ir"
)

// If implements if/else (spec.md §4.5 "If expressions"): three blocks,
// then/else/merge, with a φ-node combining the two arms. An if without an
// else skips phi construction entirely and yields Void directly, rather
// than building a phi against a placeholder zero value for the missing
// arm — that would only type-check by coincidence when the placeholder's
// LLVM type happened to match the then-arm's.
//
// Either arm can terminate on its own (a `return` nested inside it, lowered
// by Block via Return) instead of flowing to the merge block. Such an arm
// contributes no incoming edge and no branch to merge: only an arm that
// actually reaches the merge point can feed its value into the phi, or be
// returned directly when the other arm was the one that terminated. If
// both arms terminate, merge is unreachable code and is given an
// `unreachable` terminator of its own so the block stays well-formed.
func (g *Generator) If(n *ast.IfNode) (Value, error) {
	cond, err := g.Expression(n.Cond)
	if err != nil {
		return Value{}, err
	}
	if cond.Type.Variant != cgtype.Boolean {
		return Value{}, diag.New(diag.Expected, n.Sp, "boolean")
	}

	thenBlock := g.fn.NewBlock("")
	elseBlock := g.fn.NewBlock("")
	var mergeBlock *ir.Block
	hasElse := n.Else != nil || n.ElseIf != nil
	if hasElse {
		mergeBlock = g.fn.NewBlock("")
	} else {
		mergeBlock = elseBlock
	}
	g.block.NewCondBr(cond.Handle, thenBlock, elseBlock)

	g.block = thenBlock
	thenVal, err := g.Block(n.Then)
	if err != nil {
		return Value{}, err
	}
	thenEnd := g.block
	thenReturned := thenEnd.Term != nil

	if !hasElse {
		if !thenReturned {
			thenEnd.NewBr(elseBlock)
		}
		g.block = elseBlock
		return voidValue(), nil
	}
	if !thenReturned {
		thenEnd.NewBr(mergeBlock)
	}

	g.block = elseBlock
	var elseVal Value
	if n.ElseIf != nil {
		elseVal, err = g.If(n.ElseIf)
	} else {
		elseVal, err = g.Block(n.Else)
	}
	if err != nil {
		return Value{}, err
	}
	elseEnd := g.block
	elseReturned := elseEnd.Term != nil

	if !thenReturned && !elseReturned && !thenVal.Type.Equal(elseVal.Type) {
		return Value{}, diag.Mismatch(diag.TypeMismatch, n.Sp, thenVal.Type.String(), elseVal.Type.String())
	}
	if !elseReturned {
		elseEnd.NewBr(mergeBlock)
	}

	g.block = mergeBlock
	switch {
	case thenReturned && elseReturned:
		mergeBlock.NewUnreachable()
		return voidValue(), nil
	case thenReturned:
		return elseVal, nil
	case elseReturned:
		return thenVal, nil
	default:
		phi := g.block.NewPhi(ir.NewIncoming(thenVal.Handle, thenEnd), ir.NewIncoming(elseVal.Handle, elseEnd))
		return Value{Handle: phi, Type: thenVal.Type}, nil
	}
}

// While implements the three-block cond/body/after loop of spec.md §4.5.
func (g *Generator) While(s *ast.WhileStmt) error {
	condBlock := g.fn.NewBlock("")
	bodyBlock := g.fn.NewBlock("")
	afterBlock := g.fn.NewBlock("")

	g.block.NewBr(condBlock)

	g.block = condBlock
	cond, err := g.Expression(s.Cond)
	if err != nil {
		return err
	}
	if cond.Type.Variant != cgtype.Boolean {
		return diag.New(diag.Expected, s.Sp, "boolean")
	}
	g.block.NewCondBr(cond.Handle, bodyBlock, afterBlock)

	g.block = bodyBlock
	if _, err := g.Block(s.Body); err != nil {
		return err
	}
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}

	g.block = afterBlock
	return nil
}
