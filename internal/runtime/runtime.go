// Package runtime declares the foreign ABI entry points spec.md §6
// requires (print, print_float, print_str, print_array, to_str,
// concat_str). Each declaration is created at most once per module and
// memoised with a lazy-flag per symbol, the same discipline used
// elsewhere in this codebase for tracking which imports or declarations
// a module actually needs. Call-lowering in internal/codegen resolves
// these six names through Declare/Signature before falling back to a
// FunctionNotFound diagnostic, so a program can call e.g. `print(1)`
// without first writing a matching `extern` statement.
package runtime

import (
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// Declarations memoises the extern funcs declared against one *ir.Module,
// so repeated calls to e.g. Print only declare `print` once.
type Declarations struct {
	module *ir.Module

	print      *ir.Func
	printFloat *ir.Func
	printStr   *ir.Func
	printArray *ir.Func
	toStr      *ir.Func
	concatStr  *ir.Func
}

func New(m *ir.Module) *Declarations {
	return &Declarations{module: m}
}

var i8Ptr = types.NewPointer(types.I8)

// Print declares/returns `print(i64) -> i64`.
func (d *Declarations) Print() *ir.Func {
	if d.print == nil {
		d.print = d.module.NewFunc("print", types.I64, ir.NewParam("v", types.I64))
	}
	return d.print
}

// PrintFloat declares/returns `print_float(f64) -> i64`.
func (d *Declarations) PrintFloat() *ir.Func {
	if d.printFloat == nil {
		d.printFloat = d.module.NewFunc("print_float", types.I64, ir.NewParam("v", types.Double))
	}
	return d.printFloat
}

// PrintStr declares/returns `print_str(*i8) -> *i8`.
func (d *Declarations) PrintStr() *ir.Func {
	if d.printStr == nil {
		d.printStr = d.module.NewFunc("print_str", i8Ptr, ir.NewParam("s", i8Ptr))
	}
	return d.printStr
}

// PrintArray declares/returns `print_array(*i64, i64) -> i64`.
func (d *Declarations) PrintArray() *ir.Func {
	if d.printArray == nil {
		d.printArray = d.module.NewFunc("print_array", types.I64,
			ir.NewParam("arr", types.NewPointer(types.I64)), ir.NewParam("len", types.I64))
	}
	return d.printArray
}

// ToStr declares/returns `to_str(i64) -> *i8`.
func (d *Declarations) ToStr() *ir.Func {
	if d.toStr == nil {
		d.toStr = d.module.NewFunc("to_str", i8Ptr, ir.NewParam("v", types.I64))
	}
	return d.toStr
}

// ConcatStr declares/returns `concat_str(*i8, *i8) -> *i8`.
func (d *Declarations) ConcatStr() *ir.Func {
	if d.concatStr == nil {
		d.concatStr = d.module.NewFunc("concat_str", i8Ptr, ir.NewParam("a", i8Ptr), ir.NewParam("b", i8Ptr))
	}
	return d.concatStr
}

// Declare resolves name to one of the six runtime ABI entry points,
// declaring it against d's module the first time it's asked for. ok is
// false when name does not name a runtime ABI function, in which case the
// caller should keep looking (e.g. at user-declared functions/externs).
func (d *Declarations) Declare(name string) (fn *ir.Func, ok bool) {
	switch name {
	case "print":
		return d.Print(), true
	case "print_float":
		return d.PrintFloat(), true
	case "print_str":
		return d.PrintStr(), true
	case "print_array":
		return d.PrintArray(), true
	case "to_str":
		return d.ToStr(), true
	case "concat_str":
		return d.ConcatStr(), true
	}
	return nil, false
}

// Signature returns the CodegenType signature of a runtime ABI function by
// name, independent of any particular module, so call-lowering can
// type-check arguments the same way it does for a user-declared function.
func Signature(name string) (cgtype.Signature, bool) {
	i64 := cgtype.Primitive(cgtype.Int)
	f64 := cgtype.Primitive(cgtype.Float)
	str := cgtype.Primitive(cgtype.String)
	switch name {
	case "print":
		return cgtype.Signature{Params: []cgtype.CodegenType{i64}, Return: i64}, true
	case "print_float":
		return cgtype.Signature{Params: []cgtype.CodegenType{f64}, Return: i64}, true
	case "print_str":
		return cgtype.Signature{Params: []cgtype.CodegenType{str}, Return: str}, true
	case "print_array":
		return cgtype.Signature{Params: []cgtype.CodegenType{cgtype.PointerTo(i64), i64}, Return: i64}, true
	case "to_str":
		return cgtype.Signature{Params: []cgtype.CodegenType{i64}, Return: str}, true
	case "concat_str":
		return cgtype.Signature{Params: []cgtype.CodegenType{str, str}, Return: str}, true
	}
	return cgtype.Signature{}, false
}
