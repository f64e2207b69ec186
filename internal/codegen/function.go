package codegen

import (
	"strconv"

	"github.com/emberlang/ember/internal/ast"
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/emberlang/ember/internal/diag"
	"github.com/emberlang/ember/internal/runtime"
	"github.com/emberlang/ember/internal/symtab"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// declareStruct resolves each field's type and registers the layout under
// the declared name, assigning indices in declaration order (I3: the
// mapping from field name to index is a bijection over 0..n-1).
func (g *Generator) declareStruct(s *ast.StructDeclStmt) error {
	fields := make([]cgtype.FieldEntry, len(s.Fields))
	for i, f := range s.Fields {
		ty, err := g.resolveType(f.Type)
		if err != nil {
			return err
		}
		fields[i] = cgtype.FieldEntry{Name: f.Name.Name, Index: i, Type: ty}
	}
	layout := cgtype.StructLayout{Name: s.Name.Name, Fields: fields}
	if !g.symbols.DefineStruct(s.Name.Name, layout) {
		return diag.NotFound(diag.AlreadyDeclared, s.Sp, s.Name.Name)
	}
	return nil
}

func (g *Generator) signatureOf(params []ast.Param, retType ast.AstType) (cgtype.Signature, error) {
	sig := cgtype.Signature{Params: make([]cgtype.CodegenType, len(params))}
	for i, p := range params {
		ty, err := g.resolveType(p.Type)
		if err != nil {
			return cgtype.Signature{}, err
		}
		sig.Params[i] = ty
	}
	ret, err := g.resolveType(retType)
	if err != nil {
		return cgtype.Signature{}, err
	}
	sig.Return = ret
	return sig, nil
}

// declareFunctionSignature registers a function's signature and the IR
// declaration before any body is lowered, so forward and mutually
// recursive calls can resolve.
func (g *Generator) declareFunctionSignature(fd *ast.FunctionDefStmt) error {
	sig, err := g.signatureOf(fd.Params, fd.ReturnType)
	if err != nil {
		return err
	}
	if !g.symbols.DefineFunc(fd.Name.Name, sig) {
		return diag.NotFound(diag.AlreadyDeclared, fd.Sp, fd.Name.Name)
	}

	irParams := make([]*ir.Param, len(fd.Params))
	for i, p := range fd.Params {
		irParams[i] = ir.NewParam(p.Name.Name, llvmType(sig.Params[i]))
	}
	g.Module.NewFunc(fd.Name.Name, returnLLVMType(sig.Return), irParams...)
	return nil
}

// ExternFunc registers the declaration per spec.md §4.5 "External function
// declaration": symbol table entry plus an IR extern declaration, no body.
func (g *Generator) ExternFunc(ef *ast.ExternFuncStmt) error {
	sig := cgtype.Signature{Params: make([]cgtype.CodegenType, len(ef.ParamTypes))}
	for i, t := range ef.ParamTypes {
		ty, err := g.resolveType(t)
		if err != nil {
			return err
		}
		sig.Params[i] = ty
	}
	ret, err := g.resolveType(ef.ReturnType)
	if err != nil {
		return err
	}
	sig.Return = ret

	if !g.symbols.DefineFunc(ef.Name.Name, sig) {
		return diag.NotFound(diag.AlreadyDeclared, ef.Sp, ef.Name.Name)
	}

	irParams := make([]*ir.Param, len(sig.Params))
	for i, p := range sig.Params {
		irParams[i] = ir.NewParam("", llvmType(p))
	}
	g.Module.NewFunc(ef.Name.Name, returnLLVMType(sig.Return), irParams...)
	return nil
}

func (g *Generator) findIRFunc(name string) *ir.Func {
	for _, f := range g.Module.Funcs {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FunctionDef lowers a function body. Its signature was already declared
// by declareFunctionSignature; here an entry block is created, each
// parameter is spilled to a stack slot and bound in a fresh scope, the
// body is lowered, and a trailing terminator is appended if the body did
// not already produce a return value (spec.md §4.5 "Function definition").
func (g *Generator) FunctionDef(fd *ast.FunctionDefStmt) error {
	sig, _ := g.symbols.LookupFunc(fd.Name.Name)
	fn := g.findIRFunc(fd.Name.Name)
	if fn == nil {
		return diag.NotFound(diag.FunctionNotFound, fd.Sp, fd.Name.Name)
	}

	prevFn, prevBlock := g.fn, g.block
	g.fn = fn
	g.block = fn.NewBlock("entry")

	g.symbols.Enter()
	for i, p := range fd.Params {
		addr := g.block.NewAlloca(llvmType(sig.Params[i]))
		g.block.NewStore(fn.Params[i], addr)
		g.symbols.DefineVar(p.Name.Name, symtab.Variable{Addr: addr, Type: sig.Params[i]})
	}

	result, err := g.Block(fd.Body)
	g.symbols.Leave()
	if err != nil {
		return err
	}

	if g.block.Term == nil {
		if sig.Return.Variant == cgtype.Void {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(result.Handle)
		}
	}

	g.fn, g.block = prevFn, prevBlock
	return nil
}

// Let binds a new variable: the initializer is evaluated, its type is
// unified with an optional annotation, a stack slot is allocated and
// stored into, and the binding is placed in the innermost scope.
func (g *Generator) Let(s *ast.LetStmt) error {
	v, err := g.Expression(s.Value)
	if err != nil {
		return err
	}
	ty := v.Type
	if s.Type != nil {
		declared, err := g.resolveType(s.Type)
		if err != nil {
			return err
		}
		if !declared.Equal(v.Type) {
			return diag.Mismatch(diag.TypeMismatch, s.Sp, declared.String(), v.Type.String())
		}
		ty = declared
	}

	addr := g.block.NewAlloca(llvmType(ty))
	g.block.NewStore(v.Handle, addr)
	if !g.symbols.DefineVar(s.Name.Name, symtab.Variable{Addr: addr, Type: ty}) {
		return diag.NotFound(diag.AlreadyDeclared, s.Sp, s.Name.Name)
	}
	return nil
}

// Return emits the actual `ret` terminator for a return statement — called
// directly by Block the moment one is encountered, so a return nested
// inside an if/while arm genuinely ends that control-flow path rather than
// only bubbling a Go value up through the caller chain (spec.md §4.5
// "Return statement": the return type must equal the enclosing function's).
func (g *Generator) Return(s *ast.ReturnStmt) error {
	v, err := g.Expression(s.Value)
	if err != nil {
		return err
	}
	sig, _ := g.symbols.LookupFunc(g.fn.Name())
	if !sig.Return.Equal(v.Type) {
		return diag.Mismatch(diag.TypeMismatch, s.Sp, sig.Return.String(), v.Type.String())
	}
	if sig.Return.Variant == cgtype.Void {
		g.block.NewRet(nil)
	} else {
		g.block.NewRet(v.Handle)
	}
	return nil
}

// resolveCallee resolves e's callee against user-declared functions and
// externs first. Failing that, it falls back to the six runtime ABI entry
// points (internal/runtime), declaring the IR function against the module
// the first time call-lowering needs it — so `print(1)` works without a
// matching `extern print(int) -> int` statement.
func (g *Generator) resolveCallee(e *ast.CallExpr) (cgtype.Signature, *ir.Func, error) {
	if sig, ok := g.symbols.LookupFunc(e.Callee); ok {
		fn := g.findIRFunc(e.Callee)
		if fn == nil {
			return cgtype.Signature{}, nil, diag.NotFound(diag.FunctionNotFound, e.CalleeSpan, e.Callee)
		}
		return sig, fn, nil
	}
	if sig, ok := runtime.Signature(e.Callee); ok {
		fn, _ := g.runtime.Declare(e.Callee)
		return sig, fn, nil
	}
	return cgtype.Signature{}, nil, diag.NotFound(diag.FunctionNotFound, e.CalleeSpan, e.Callee)
}

// Call implements a function call (spec.md §4.5 "Calls"): the callee must
// be a bare identifier naming a function, extern, or runtime ABI entry
// point in scope, arguments are checked positionally against the
// signature.
func (g *Generator) Call(e *ast.CallExpr) (Value, error) {
	sig, fn, err := g.resolveCallee(e)
	if err != nil {
		return Value{}, err
	}
	if len(e.Args) != len(sig.Params) {
		return Value{}, diag.Mismatch(diag.WrongNumberOfArguments, e.Sp, strconv.Itoa(len(sig.Params)), strconv.Itoa(len(e.Args)))
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := g.Expression(a)
		if err != nil {
			return Value{}, err
		}
		if !v.Type.Equal(sig.Params[i]) {
			return Value{}, diag.Mismatch(diag.TypeMismatch, a.Span(), sig.Params[i].String(), v.Type.String())
		}
		args[i] = v.Handle
	}

	call := g.block.NewCall(fn, args...)
	if sig.Return.Variant == cgtype.Void {
		return voidValue(), nil
	}
	return Value{Handle: call, Type: sig.Return}, nil
}
