package goscheme

import (
	"math"
	"testing"
)

func TestDisplay(t *testing.T) {
	lambda := newClosure([]string{"arg1"}, Num(1), noFrame)
	prim := NewPrimitive("f", func([]Value) (Value, error) {
		return NewList(), nil
	})
	tests := []struct {
		v    Value
		want string
	}{
		{v: False, want: "#false"},
		{v: True, want: "#true"},
		{v: NewNumber(1), want: "1"},
		{v: NewNumber(1.5), want: "1.5"},
		{v: NewNumber(-0.25), want: "-0.25"},
		{v: NewNumber(math.Inf(1)), want: "inf"},
		{v: NewString("a"), want: `"a"`},
		{v: prim, want: "Function"},
		{v: lambda, want: "Lambda Function"},
		{v: NewSymbol("foo"), want: "'foo"},
		{v: Void, want: "Void"},
		{v: Wrap(NewBox(NewNumber(1))), want: "Custom Type: box"},
		{v: NewList(), want: "'()"},
		{
			v:    NewList(False, NewNumber(1), lambda),
			want: "'(#false 1 Lambda Function)",
		},
		{
			v: NewList(
				NewList(NewNumber(1), NewList(NewNumber(2), NewNumber(3))),
				NewList(NewNumber(4), NewNumber(5)),
				NewNumber(6),
				NewList(NewNumber(7)),
			),
			want: "'((1 (2 3)) (4 5) 6 (7))",
		},
		{
			v:    NewList(NewSymbol("a"), NewString("b")),
			want: `'(a "b")`,
		},
	}
	for _, test := range tests {
		if got := test.v.String(); got != test.want {
			t.Errorf("want %q but got %q", test.want, got)
		}
	}
}

func TestReprHasNoQuote(t *testing.T) {
	v := NewList(NewList(NewNumber(1), NewNumber(2)), NewNumber(3))
	if got, want := v.Repr(), "((1 2) 3)"; got != want {
		t.Errorf("want %q but got %q", want, got)
	}
	if got, want := NewSymbol("x").Repr(), "x"; got != want {
		t.Errorf("want %q but got %q", want, got)
	}
}

func TestEquals(t *testing.T) {
	nan := NewNumber(math.NaN())
	f := NewPrimitive("f", func([]Value) (Value, error) { return Void, nil })
	tests := []struct {
		a, b Value
		want bool
	}{
		{a: NewNumber(1), b: NewNumber(1), want: true},
		{a: NewNumber(1), b: NewNumber(2), want: false},
		{a: NewString("a"), b: NewString("b"), want: false},
		{a: NewString("a"), b: NewString("a"), want: true},
		{a: NewNumber(1), b: NewString("1"), want: false},
		{a: True, b: True, want: true},
		{a: True, b: False, want: false},
		{a: NewSymbol("a"), b: NewSymbol("a"), want: true},
		{a: NewSymbol("a"), b: NewString("a"), want: false},
		{a: nan, b: nan, want: false},
		{a: Void, b: Void, want: true},
		{a: f, b: f, want: false},
		{
			a:    NewList(NewNumber(1), NewNumber(2)),
			b:    NewList(NewNumber(1), NewNumber(2)),
			want: true,
		},
		{
			a:    NewList(NewNumber(1), NewNumber(2)),
			b:    NewList(NewNumber(2), NewNumber(1)),
			want: false,
		},
		{
			a:    NewList(NewNumber(1)),
			b:    NewList(NewNumber(1), NewNumber(1)),
			want: false,
		},
		{
			a:    NewList(NewList(NewString("x"))),
			b:    NewList(NewList(NewString("x"))),
			want: true,
		},
	}
	for _, test := range tests {
		if got := Equals(test.a, test.b); got != test.want {
			t.Errorf("Equals(%v, %v): want %v but got %v", test.a, test.b, test.want, got)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Value
		want int
	}{
		{a: NewNumber(1), b: NewNumber(2), want: -1},
		{a: NewNumber(2), b: NewNumber(2), want: 0},
		{a: NewNumber(3), b: NewNumber(2), want: 1},
		{a: NewString("a"), b: NewString("b"), want: -1},
		{a: NewString("b"), b: NewString("a"), want: 1},
	}
	for _, test := range tests {
		got, err := Compare(test.a, test.b)
		if err != nil {
			t.Errorf("Compare(%v, %v): %v", test.a, test.b, err)
			continue
		}
		if got != test.want {
			t.Errorf("Compare(%v, %v): want %d but got %d", test.a, test.b, test.want, got)
		}
	}

	bad := [][2]Value{
		{NewNumber(1), NewString("1")},
		{True, True},
		{NewList(), NewList()},
		{NewSymbol("a"), NewSymbol("b")},
		{NewNumber(math.NaN()), NewNumber(1)},
	}
	for _, pair := range bad {
		if _, err := Compare(pair[0], pair[1]); !IsKind(err, TypeMismatch) {
			t.Errorf("Compare(%v, %v): want type mismatch but got %v", pair[0], pair[1], err)
		}
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []Value{True, NewNumber(0), NewString(""), NewList(), Void, NewSymbol("false")} {
		if !v.Truthy() {
			t.Errorf("%v should be truthy", v)
		}
	}
	if False.Truthy() {
		t.Error("#false should not be truthy")
	}
	var zero Value
	if !zero.IsVoid() {
		t.Errorf("zero Value should be Void, got %v", zero.Type())
	}
}

func TestFromExpr(t *testing.T) {
	exprs, err := ParseString(`(1 "two" three (#true))`)
	if err != nil {
		t.Fatal(err)
	}
	v, err := FromExpr(exprs[0])
	if err != nil {
		t.Fatal(err)
	}
	want := NewList(NewNumber(1), NewString("two"), NewSymbol("three"), NewList(True))
	if !Equals(v, want) {
		t.Errorf("want %v but got %v", want, v)
	}

	_, err = FromExpr(ListExpr(Num(1), AtomExpr(Token{Type: TokenCloseParen})))
	if !IsKind(err, UnexpectedToken) {
		t.Errorf("want unexpected token but got %v", err)
	}
}

func TestClosureAccessor(t *testing.T) {
	c := newClosure([]string{"x"}, Ident("x"), noFrame)
	if got, ok := c.Closure(); !ok || got.Params()[0] != "x" {
		t.Errorf("want closure over x but got %v, %v", got, ok)
	}
	for _, v := range []Value{Void, NewNumber(1), NewPrimitive("f", doList), Wrap(NewBox(c))} {
		if _, ok := v.Closure(); ok {
			t.Errorf("%v: want no closure", v)
		}
	}
}
