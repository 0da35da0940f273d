package goscheme

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvDefine(t *testing.T) {
	env := NewEnv(map[string]Value{"x": NewNumber(1)})
	env.Define("x", NewNumber(2))

	v, err := env.Lookup("x")
	if err != nil {
		t.Fatal(err)
	}
	if !Equals(v, NewNumber(2)) {
		t.Errorf("want 2 but got %v", v)
	}
}

func TestEnvLookupChain(t *testing.T) {
	global := NewEnv(map[string]Value{"a": NewNumber(1), "b": NewNumber(2)})
	child := global.Child(map[string]Value{"b": NewNumber(20)})
	grandchild := child.Child(nil)

	tests := []struct {
		name string
		want Value
	}{
		{name: "a", want: NewNumber(1)},
		{name: "b", want: NewNumber(20)},
	}
	for _, test := range tests {
		got, err := grandchild.Lookup(test.name)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if !Equals(got, test.want) {
			t.Errorf("%s: want %v but got %v", test.name, test.want, got)
		}
	}

	if _, err := grandchild.Lookup("c"); !IsKind(err, UnboundIdentifier) {
		t.Errorf("want unbound identifier but got %v", err)
	}
	if v, _ := global.Lookup("b"); !Equals(v, NewNumber(2)) {
		t.Errorf("child binding leaked into parent: %v", v)
	}
}

func TestEnvAssign(t *testing.T) {
	global := NewEnv(map[string]Value{"x": NewNumber(1)})
	child := global.Child(map[string]Value{"y": NewNumber(2)})

	if err := child.Assign("x", NewNumber(10)); err != nil {
		t.Fatal(err)
	}
	if v, _ := global.Lookup("x"); !Equals(v, NewNumber(10)) {
		t.Errorf("assign should mutate the defining frame, got %v", v)
	}
	if got := child.Names(); !cmp.Equal(got, []string{"y"}) {
		t.Errorf("assign should not bind in the child frame: %v", got)
	}

	err := child.Assign("z", NewNumber(3))
	if !IsKind(err, UnboundIdentifier) {
		t.Errorf("want unbound identifier but got %v", err)
	}
	if _, err := child.Lookup("z"); err == nil {
		t.Error("failed assign should not create a binding")
	}
}

func TestEnvParent(t *testing.T) {
	global := NewEnv(nil)
	child := global.Child(nil)
	if global.Parent() != nil {
		t.Error("global env should have no parent")
	}
	p := child.Parent()
	if p == nil {
		t.Fatal("child env should have a parent")
	}
	p.Define("k", True)
	if _, err := global.Lookup("k"); err != nil {
		t.Errorf("parent should be the global frame: %v", err)
	}
	if child.Global().ref != global.ref {
		t.Error("Global should return the root frame")
	}
}

func TestEnvNames(t *testing.T) {
	env := NewEnv(map[string]Value{"b": True, "a": False})
	names := env.Names()
	sort.Strings(names)
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Error(diff)
	}
}

func TestNewEnvBindings(t *testing.T) {
	env := NewEnv(map[string]Value{"a": NewNumber(1), "b": True})
	for name, want := range map[string]Value{"a": NewNumber(1), "b": True} {
		got, err := env.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		if !Equals(got, want) {
			t.Errorf("%s: want %v but got %v", name, want, got)
		}
	}
	if env.Parent() != nil {
		t.Error("want global environment")
	}
}
