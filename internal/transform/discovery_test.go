package transform

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, src string) *fileTree {
	t.Helper()
	fset, file, err := ParseSource("app.go", []byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return &fileTree{fset: fset, file: file}
}

func TestDiscoverTools_CollectsSelectorElements(t *testing.T) {
	tree := mustParse(t, `
package demo

type FooApp struct{}

func (a *FooApp) A() {}
func (a *FooApp) B() {}

func (a *FooApp) ListTools() []any {
	return []any{
		a.A,
		a.B,
	}
}
`)

	tools := DiscoverTools(tree.file)
	got := tools.Names()
	want := []string{"A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected tools %v, got %v", want, got)
	}
}

func TestDiscoverTools_NoListTools(t *testing.T) {
	tree := mustParse(t, `
package demo

type FooApp struct{}

func (a *FooApp) A() {}
`)

	tools := DiscoverTools(tree.file)
	if len(tools) != 0 {
		t.Errorf("expected empty tool set, got %v", tools.Names())
	}
}

func TestDiscoverTools_IgnoresNonSelectorElements(t *testing.T) {
	tree := mustParse(t, `
package demo

type FooApp struct{}

func (a *FooApp) A() {}

func (a *FooApp) ListTools() []any {
	return []any{
		a.A,
		"not a method",
		42,
	}
}
`)

	tools := DiscoverTools(tree.file)
	got := tools.Names()
	want := []string{"A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected tools %v, got %v", want, got)
	}
}

func TestDiscoverTools_NonLiteralReturn(t *testing.T) {
	tree := mustParse(t, `
package demo

type FooApp struct{}

func (a *FooApp) tools() []any { return nil }

func (a *FooApp) ListTools() []any {
	return a.tools()
}
`)

	tools := DiscoverTools(tree.file)
	if len(tools) != 0 {
		t.Errorf("expected empty tool set for non-literal return, got %v", tools.Names())
	}
}

func TestDiscoverTools_PlainFunctionIgnored(t *testing.T) {
	tree := mustParse(t, `
package demo

func ListTools() []any {
	return []any{notAMethod}
}

var notAMethod = func() {}
`)

	tools := DiscoverTools(tree.file)
	if len(tools) != 0 {
		t.Errorf("expected empty tool set for receiver-less ListTools, got %v", tools.Names())
	}
}
