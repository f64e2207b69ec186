package codegen

import (
	"github.com/emberlang/ember/internal/cgtype"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

var i8PtrType = types.NewPointer(types.I8)

// returnLLVMType is llvmType specialized for a function's actual IR return
// type: unlike a stored/loaded value, a function that returns Void must be
// declared with LLVM's void type so its body's `ret void` (see FunctionDef,
// Return) matches the declared signature.
func returnLLVMType(t cgtype.CodegenType) types.Type {
	if t.Variant == cgtype.Void {
		return types.Void
	}
	return llvmType(t)
}

// llvmType maps a CodegenType to the LLVM type the generator allocates,
// loads and stores it as. Void is represented as i64 here: a Void-typed
// Value still needs some concrete handle to carry around the Go call stack
// (see voidValue), even though no real function is ever declared to return
// it — that declaration site uses returnLLVMType instead.
func llvmType(t cgtype.CodegenType) types.Type {
	switch t.Variant {
	case cgtype.Int:
		return types.I64
	case cgtype.Float:
		return types.Double
	case cgtype.String:
		return i8PtrType
	case cgtype.Boolean:
		return types.I1
	case cgtype.Void:
		return types.I64
	case cgtype.Array:
		n := uint64(0)
		if t.Len != nil {
			n = uint64(*t.Len)
		}
		return types.NewArray(n, llvmType(*t.Elem))
	case cgtype.Struct:
		fields := make([]types.Type, len(t.Layout.Fields))
		for i, f := range t.Layout.Fields {
			fields[i] = llvmType(f.Type)
		}
		return types.NewStruct(fields...)
	case cgtype.Pointer:
		return types.NewPointer(llvmType(*t.Elem))
	case cgtype.Function:
		params := make([]types.Type, len(t.Sig.Params))
		for i, p := range t.Sig.Params {
			params[i] = llvmType(p)
		}
		return types.NewPointer(types.NewFunc(llvmType(t.Sig.Return), params...))
	}
	panic("codegen: unreachable CodegenType variant")
}

func constInt(t *types.IntType, n int64) *constant.Int {
	return constant.NewInt(t, n)
}

func constInt64(n int64) *constant.Int {
	return constant.NewInt(types.I64, n)
}

func constBool(b bool) *constant.Int {
	if b {
		return constant.NewInt(types.I1, 1)
	}
	return constant.NewInt(types.I1, 0)
}

func constFloat(f float64) *constant.Float {
	return constant.NewFloat(types.Double, f)
}
