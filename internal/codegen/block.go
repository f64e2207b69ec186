package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
)

// Block pushes a fresh scope, lowers statements in order, and restores the
// enclosing scope on the way out (spec.md §4.5 "Blocks", P2's scope
// discipline). A `return` statement emits the function's actual terminator
// right there via Return, rather than merely bubbling a Go value up through
// nested callers — a return nested inside an if/while arm must leave its
// current block genuinely terminated, or the phi/branch logic those
// constructs build around their arms would stitch dead code onto a real
// exit path. Once the current block picks up a terminator, either from a
// return or from a nested if whose own arms all returned, the remaining
// statements in this block are unreachable and are not lowered.
func (g *Generator) Block(b *ast.Block) (Value, error) {
	g.symbols.Enter()
	defer g.symbols.Leave()

	for _, stmt := range b.Statements {
		if ret, ok := stmt.(*ast.ReturnStmt); ok {
			if err := g.Return(ret); err != nil {
				return Value{}, err
			}
			return Value{}, nil
		}
		if err := g.Statement(stmt); err != nil {
			return Value{}, err
		}
		if g.block.Term != nil {
			return Value{}, nil
		}
	}
	return Value{Handle: zeroI64(), Type: cgtype.Primitive(cgtype.Void)}, nil
}
