package goscheme

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "",
			want:  "",
		},
		{
			input: "1",
			want:  "1",
		},
		{
			input: "(1)(2)",
			want:  "(1) (2)",
		},
		{
			input: "1 2",
			want:  "1 2",
		},
		{
			input: "#t #f #true #false",
			want:  "#true #false #true #false",
		},
		{
			input: "'a",
			want:  "(quote a)",
		},
		{
			input: "'(1 (2 3))",
			want:  "(quote (1 (2 3)))",
		},
		{
			input: `"hi there"`,
			want:  `"hi there"`,
		},
		{
			input: `"a\"b"`,
			want:  `"a\"b"`,
		},
		{
			input: "(+ 1 2.5) ; comment",
			want:  "(+ 1 2.5)",
		},
		{
			input: "-3 - +4 .5 -.5",
			want:  "-3 - 4 0.5 -0.5",
		},
		{
			input: "nan inf set! string->symbol",
			want:  "nan inf set! string->symbol",
		},
		{
			input: "()",
			want:  "()",
		},
	}
	for _, test := range tests {
		t.Logf("%q", test.input)
		exprs, err := ParseString(test.input)
		if err != nil {
			t.Error(err)
			continue
		}
		var parts []string
		for _, e := range exprs {
			parts = append(parts, e.String())
		}
		got := strings.Join(parts, " ")

		if got != test.want {
			t.Errorf("want %q for %q but got %q", test.want, test.input, got)
		}
	}
}

func TestParseAtomTypes(t *testing.T) {
	exprs, err := ParseString(`1 "s" x #t`)
	if err != nil {
		t.Fatal(err)
	}
	want := []TokenType{TokenNumber, TokenString, TokenIdent, TokenBoolean}
	if len(exprs) != len(want) {
		t.Fatalf("want %d expressions but got %d", len(want), len(exprs))
	}
	for i, e := range exprs {
		if e.IsList() {
			t.Errorf("%v: want atom", e)
			continue
		}
		if e.Token().Type != want[i] {
			t.Errorf("%v: want token type %v but got %v", e, want[i], e.Token().Type)
		}
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		input string
		eof   bool
	}{
		{input: "(1 2", eof: true},
		{input: `"abc`, eof: true},
		{input: "'", eof: true},
		{input: ")", eof: false},
	}
	for _, test := range tests {
		_, err := ParseString(test.input)
		if err == nil {
			t.Errorf("%q: want error", test.input)
			continue
		}
		if got := errors.Is(err, EOF); got != test.eof {
			t.Errorf("%q: want EOF=%v but got %v", test.input, test.eof, err)
		}
	}
	if _, err := ParseString(")"); !IsKind(err, UnexpectedToken) {
		t.Errorf("want unexpected token but got %v", err)
	}
}
