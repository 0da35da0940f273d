package goscheme

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

func checkArity(name string, args []Value, n int) error {
	if len(args) != n {
		return arityError(name, fmt.Sprint(n), len(args))
	}
	return nil
}

func checkMinArity(name string, args []Value, n int) error {
	if len(args) < n {
		return arityError(name, fmt.Sprintf("at least %d", n), len(args))
	}
	return nil
}

func numberArg(name string, v Value) (float64, error) {
	f, ok := v.Number()
	if !ok {
		return 0, Errorf(TypeMismatch, "invalid arguments for %s: expected number, got %v", name, v.Type())
	}
	return f, nil
}

func stringArg(name string, v Value) (string, error) {
	s, ok := v.Str()
	if !ok {
		return "", Errorf(TypeMismatch, "invalid arguments for %s: expected string, got %v", name, v.Type())
	}
	return s, nil
}

func listArg(name string, v Value) ([]Value, error) {
	l, ok := v.List()
	if !ok {
		return nil, Errorf(TypeMismatch, "invalid arguments for %s: expected list, got %v", name, v.Type())
	}
	return l, nil
}

func numbers(name string, args []Value) ([]float64, error) {
	ret := make([]float64, len(args))
	for i, arg := range args {
		f, err := numberArg(name, arg)
		if err != nil {
			return nil, err
		}
		ret[i] = f
	}
	return ret, nil
}

// Builtins returns the standard primitive bindings. display and newline
// write to out.
func Builtins(out io.Writer) map[string]Value {
	m := make(map[string]Value)
	def := func(name string, fn Primitive) {
		m[name] = NewPrimitive(name, fn)
	}

	def("+", doPlus)
	def("-", doMinus)
	def("*", doMul)
	def("/", doDiv)
	def("=", doNumEqual)
	def("<", ordering("<", func(c int) bool { return c < 0 }))
	def("<=", ordering("<=", func(c int) bool { return c <= 0 }))
	def(">", ordering(">", func(c int) bool { return c > 0 }))
	def(">=", ordering(">=", func(c int) bool { return c >= 0 }))
	def("equal?", doEqual)
	def("not", doNot)

	def("list", doList)
	def("cons", doCons)
	def("car", doCar)
	def("first", doCar)
	def("cdr", doCdr)
	def("rest", doCdr)
	def("null?", doNull)
	def("empty?", doNull)
	def("length", doLength)
	def("append", doAppend)
	def("reverse", doReverse)

	def("number?", isType(ValueNumber))
	def("string?", isType(ValueString))
	def("symbol?", isType(ValueSymbol))
	def("list?", isType(ValueList))
	def("boolean?", isType(ValueBool))
	def("void?", isType(ValueVoid))
	def("procedure?", isType(ValuePrimitive, ValueClosure))

	def("string-append", doStringAppend)
	def("string-length", doStringLength)
	def("number->string", doNumberToString)
	def("symbol->string", doSymbolToString)
	def("string->symbol", doStringToSymbol)

	def("display", func(args []Value) (Value, error) {
		if err := checkArity("display", args, 1); err != nil {
			return Void, err
		}
		if s, ok := args[0].Str(); ok {
			fmt.Fprint(out, s)
		} else {
			fmt.Fprint(out, args[0].Repr())
		}
		return Void, nil
	})
	def("newline", func(args []Value) (Value, error) {
		if err := checkArity("newline", args, 0); err != nil {
			return Void, err
		}
		fmt.Fprintln(out)
		return Void, nil
	})
	def("void", func(args []Value) (Value, error) {
		return Void, nil
	})
	def("assert!", doAssert)

	def("box", doBox)
	def("unbox", doUnbox)
	def("set-box!", doSetBox)

	def("future-ready", doFutureReady)
	def("future-sleep", doFutureSleep)
	def("future-read-file", doFutureReadFile)
	def("exec-async", doExecAsync)

	def("anko-env", doAnkoEnv)
	def("anko-define", doAnkoDefine)
	def("anko-eval", doAnkoEval)
	return m
}

func doPlus(args []Value) (Value, error) {
	fs, err := numbers("+", args)
	if err != nil {
		return Void, err
	}
	var ret float64
	for _, f := range fs {
		ret += f
	}
	return NewNumber(ret), nil
}

func doMinus(args []Value) (Value, error) {
	if err := checkMinArity("-", args, 1); err != nil {
		return Void, err
	}
	fs, err := numbers("-", args)
	if err != nil {
		return Void, err
	}
	if len(fs) == 1 {
		return NewNumber(-fs[0]), nil
	}
	ret := fs[0]
	for _, f := range fs[1:] {
		ret -= f
	}
	return NewNumber(ret), nil
}

func doMul(args []Value) (Value, error) {
	fs, err := numbers("*", args)
	if err != nil {
		return Void, err
	}
	ret := 1.0
	for _, f := range fs {
		ret *= f
	}
	return NewNumber(ret), nil
}

func doDiv(args []Value) (Value, error) {
	if err := checkMinArity("/", args, 1); err != nil {
		return Void, err
	}
	fs, err := numbers("/", args)
	if err != nil {
		return Void, err
	}
	if len(fs) == 1 {
		return NewNumber(1 / fs[0]), nil
	}
	ret := fs[0]
	for _, f := range fs[1:] {
		ret /= f
	}
	return NewNumber(ret), nil
}

func doNumEqual(args []Value) (Value, error) {
	if err := checkMinArity("=", args, 2); err != nil {
		return Void, err
	}
	fs, err := numbers("=", args)
	if err != nil {
		return Void, err
	}
	for _, f := range fs[1:] {
		if f != fs[0] {
			return False, nil
		}
	}
	return True, nil
}

func ordering(name string, ok func(int) bool) Primitive {
	return func(args []Value) (Value, error) {
		if err := checkMinArity(name, args, 2); err != nil {
			return Void, err
		}
		ret := true
		for i := 1; i < len(args); i++ {
			c, err := Compare(args[i-1], args[i])
			if err != nil {
				return Void, err
			}
			if !ok(c) {
				ret = false
			}
		}
		return NewBool(ret), nil
	}
}

func doEqual(args []Value) (Value, error) {
	if err := checkArity("equal?", args, 2); err != nil {
		return Void, err
	}
	return NewBool(Equals(args[0], args[1])), nil
}

func doNot(args []Value) (Value, error) {
	if err := checkArity("not", args, 1); err != nil {
		return Void, err
	}
	return NewBool(!args[0].Truthy()), nil
}

func doList(args []Value) (Value, error) {
	items := make([]Value, len(args))
	copy(items, args)
	return NewList(items...), nil
}

func doCons(args []Value) (Value, error) {
	if err := checkArity("cons", args, 2); err != nil {
		return Void, err
	}
	l, err := listArg("cons", args[1])
	if err != nil {
		return Void, err
	}
	items := make([]Value, 0, len(l)+1)
	items = append(items, args[0])
	items = append(items, l...)
	return NewList(items...), nil
}

func doCar(args []Value) (Value, error) {
	if err := checkArity("car", args, 1); err != nil {
		return Void, err
	}
	l, err := listArg("car", args[0])
	if err != nil {
		return Void, err
	}
	if len(l) == 0 {
		return Void, Errorf(EvalError, "car of empty list")
	}
	return l[0], nil
}

func doCdr(args []Value) (Value, error) {
	if err := checkArity("cdr", args, 1); err != nil {
		return Void, err
	}
	l, err := listArg("cdr", args[0])
	if err != nil {
		return Void, err
	}
	if len(l) == 0 {
		return Void, Errorf(EvalError, "cdr of empty list")
	}
	return NewList(l[1:]...), nil
}

func doNull(args []Value) (Value, error) {
	if err := checkArity("null?", args, 1); err != nil {
		return Void, err
	}
	l, ok := args[0].List()
	return NewBool(ok && len(l) == 0), nil
}

func doLength(args []Value) (Value, error) {
	if err := checkArity("length", args, 1); err != nil {
		return Void, err
	}
	if s, ok := args[0].Str(); ok {
		return NewNumber(float64(len([]rune(s)))), nil
	}
	l, err := listArg("length", args[0])
	if err != nil {
		return Void, err
	}
	return NewNumber(float64(len(l))), nil
}

func doAppend(args []Value) (Value, error) {
	var items []Value
	for _, arg := range args {
		l, err := listArg("append", arg)
		if err != nil {
			return Void, err
		}
		items = append(items, l...)
	}
	return NewList(items...), nil
}

func doReverse(args []Value) (Value, error) {
	if err := checkArity("reverse", args, 1); err != nil {
		return Void, err
	}
	l, err := listArg("reverse", args[0])
	if err != nil {
		return Void, err
	}
	items := make([]Value, len(l))
	for i, v := range l {
		items[len(l)-1-i] = v
	}
	return NewList(items...), nil
}

func isType(types ...ValueType) Primitive {
	return func(args []Value) (Value, error) {
		if len(args) != 1 {
			return Void, arityError("type predicate", "1", len(args))
		}
		for _, t := range types {
			if args[0].Type() == t {
				return True, nil
			}
		}
		return False, nil
	}
}

func doStringAppend(args []Value) (Value, error) {
	var buf bytes.Buffer
	for _, arg := range args {
		s, err := stringArg("string-append", arg)
		if err != nil {
			return Void, err
		}
		buf.WriteString(s)
	}
	return NewString(buf.String()), nil
}

func doStringLength(args []Value) (Value, error) {
	if err := checkArity("string-length", args, 1); err != nil {
		return Void, err
	}
	s, err := stringArg("string-length", args[0])
	if err != nil {
		return Void, err
	}
	return NewNumber(float64(len([]rune(s)))), nil
}

func doNumberToString(args []Value) (Value, error) {
	if err := checkArity("number->string", args, 1); err != nil {
		return Void, err
	}
	f, err := numberArg("number->string", args[0])
	if err != nil {
		return Void, err
	}
	return NewString(formatNumber(f)), nil
}

func doSymbolToString(args []Value) (Value, error) {
	if err := checkArity("symbol->string", args, 1); err != nil {
		return Void, err
	}
	s, ok := args[0].Symbol()
	if !ok {
		return Void, Errorf(TypeMismatch, "invalid arguments for symbol->string: expected symbol, got %v", args[0].Type())
	}
	return NewString(s), nil
}

func doStringToSymbol(args []Value) (Value, error) {
	if err := checkArity("string->symbol", args, 1); err != nil {
		return Void, err
	}
	s, err := stringArg("string->symbol", args[0])
	if err != nil {
		return Void, err
	}
	if strings.TrimSpace(s) == "" {
		return Void, Errorf(EvalError, "empty symbol name")
	}
	return NewSymbol(s), nil
}

func doAssert(args []Value) (Value, error) {
	if err := checkArity("assert!", args, 1); err != nil {
		return Void, err
	}
	if b, ok := args[0].Bool(); !ok || !b {
		return Void, Errorf(EvalError, "assertion failed: %v", args[0])
	}
	return Void, nil
}
