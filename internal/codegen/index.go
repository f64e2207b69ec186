package codegen

import (
	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
)

// Index implements `a[i]` read access (spec.md §4.5 "Index"): the target
// must be an array, the index an int, with no bounds check.
func (g *Generator) Index(e *ast.IndexExpr) (Value, error) {
	left, err := g.Expression(e.Target)
	if err != nil {
		return Value{}, err
	}
	if left.Type.Variant != cgtype.Array {
		return Value{}, diag.New(diag.TypeThatCannotBeIndexed, e.Sp, "")
	}
	idx, err := g.Expression(e.Index)
	if err != nil {
		return Value{}, err
	}
	if idx.Type.Variant != cgtype.Int {
		return Value{}, diag.New(diag.Expected, e.Sp, "int")
	}
	elemTy := *left.Type.Elem
	ptr := g.block.NewGetElementPtr(llvmType(elemTy), left.Handle, idx.Handle)
	return g.loadOrAddress(ptr, elemTy), nil
}
