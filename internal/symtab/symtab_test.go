package symtab

import (
	"testing"

	"github.com/emberlang/ember/internal/cgtype"
)

func TestDefineAndLookupVar(t *testing.T) {
	tab := New()
	v := Variable{Type: cgtype.Primitive(cgtype.Int)}
	if !tab.DefineVar("x", v) {
		t.Fatal("expected first definition to succeed")
	}
	got, ok := tab.LookupVar("x")
	if !ok || got.Type.Variant != cgtype.Int {
		t.Fatalf("expected to find x as Int, got %+v ok=%v", got, ok)
	}
}

func TestDefineVarRejectsRedeclarationInSameScope(t *testing.T) {
	tab := New()
	tab.DefineVar("x", Variable{})
	if tab.DefineVar("x", Variable{}) {
		t.Fatal("expected redeclaration in the same scope to fail")
	}
}

func TestEnterLeaveScoping(t *testing.T) {
	tab := New()
	tab.DefineVar("outer", Variable{Type: cgtype.Primitive(cgtype.Int)})

	tab.Enter()
	if tab.Depth() != 2 {
		t.Fatalf("expected depth 2 after Enter, got %d", tab.Depth())
	}
	tab.DefineVar("inner", Variable{Type: cgtype.Primitive(cgtype.Boolean)})

	if _, ok := tab.LookupVar("outer"); !ok {
		t.Fatal("expected inner scope to see outer's variable")
	}

	tab.Leave()
	if tab.Depth() != 1 {
		t.Fatalf("expected depth 1 after Leave, got %d", tab.Depth())
	}
	if _, ok := tab.LookupVar("inner"); ok {
		t.Fatal("expected inner's variable to be gone after Leave")
	}
	if _, ok := tab.LookupVar("outer"); !ok {
		t.Fatal("expected outer's variable to survive Leave")
	}
}

func TestShadowingInnerScopeWins(t *testing.T) {
	tab := New()
	tab.DefineVar("x", Variable{Type: cgtype.Primitive(cgtype.Int)})
	tab.Enter()
	tab.DefineVar("x", Variable{Type: cgtype.Primitive(cgtype.String)})

	got, _ := tab.LookupVar("x")
	if got.Type.Variant != cgtype.String {
		t.Fatalf("expected inner shadow (String) to win, got %v", got.Type.Variant)
	}

	tab.Leave()
	got, _ = tab.LookupVar("x")
	if got.Type.Variant != cgtype.Int {
		t.Fatalf("expected outer's Int to resurface after Leave, got %v", got.Type.Variant)
	}
}

func TestFuncStructAliasNamespacesAreIndependent(t *testing.T) {
	tab := New()
	if !tab.DefineFunc("size", cgtype.Signature{}) {
		t.Fatal("expected DefineFunc to succeed")
	}
	if !tab.DefineStruct("size", cgtype.StructLayout{Name: "size"}) {
		t.Fatal("expected DefineStruct with the same name to succeed: separate namespace")
	}
	if !tab.DefineAlias("size", cgtype.Primitive(cgtype.Int)) {
		t.Fatal("expected DefineAlias with the same name to succeed: separate namespace")
	}
	if _, ok := tab.LookupFunc("size"); !ok {
		t.Fatal("expected to find the function")
	}
	if _, ok := tab.LookupStruct("size"); !ok {
		t.Fatal("expected to find the struct")
	}
	if _, ok := tab.LookupAlias("size"); !ok {
		t.Fatal("expected to find the alias")
	}
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	tab := New()
	if _, ok := tab.LookupVar("nope"); ok {
		t.Fatal("expected LookupVar to report false for an undefined name")
	}
	if _, ok := tab.LookupFunc("nope"); ok {
		t.Fatal("expected LookupFunc to report false for an undefined name")
	}
}
