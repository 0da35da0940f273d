package goscheme

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScripts(t *testing.T) {
	fns, err := filepath.Glob("testdir/*.scm")
	if err != nil {
		t.Fatal(err)
	}
	if len(fns) == 0 {
		t.Fatal("no scripts in testdir")
	}

	for _, fn := range fns {
		t.Log(fn)
		b, err := os.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		env, err := NewDefaultEnv(&buf)
		if err != nil {
			t.Fatal(err)
		}
		err = LoadLib(env)
		if err != nil {
			t.Fatal(err)
		}
		base := strings.TrimSuffix(fn, ".scm")
		_, err = env.EvalString(string(b))
		if err != nil {
			b, err2 := os.ReadFile(base + ".err")
			if err2 != nil || err.Error() != strings.TrimSpace(string(b)) {
				t.Error(err)
			}
			continue
		}
		b, err = os.ReadFile(base + ".out")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(string(b), buf.String()); diff != "" {
			t.Errorf("%s: %s", fn, diff)
		}
	}
}

func TestPrelude(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: `(map (lambda (x) (+ x 1)) '(1 2 3))`, want: "'(2 3 4)"},
		{input: `(map car '())`, want: "'()"},
		{input: `(filter number? '(1 a "b" 2))`, want: "'(1 2)"},
		{input: `(foldl - 0 '(1 2 3))`, want: "-6"},
		{input: `(foldr cons '() '(1 2 3))`, want: "'(1 2 3)"},
		{input: `(range 0 3)`, want: "'(0 1 2)"},
		{input: `(range 3 0)`, want: "'()"},
		{input: `(abs -3)`, want: "3"},
		{input: `(zero? 0)`, want: "#true"},
		{
			input: `(define b (box 0)) (for-each (lambda (x) (set-box! b (+ x (unbox b)))) '(1 2 3)) (unbox b)`,
			want:  "6",
		},
	}
	for _, test := range tests {
		env := newTestEnv()
		if err := LoadLib(env); err != nil {
			t.Fatal(err)
		}
		ret, err := env.EvalString(test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if got := ret.String(); got != test.want {
			t.Errorf("want %q for %q but got %q", test.want, test.input, got)
		}
	}
}

func TestLoadLibTwice(t *testing.T) {
	env := newTestEnv()
	if err := LoadLib(env); err != nil {
		t.Fatal(err)
	}
	if err := LoadLib(env); err != nil {
		t.Errorf("loading the prelude twice: %v", err)
	}
}
