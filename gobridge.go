package goscheme

import (
	"fmt"
	"path"
	"reflect"

	"github.com/mattn/goscheme/gopkg"
)

// GoValue holds a Go value that has no Scheme counterpart, such as a
// *regexp.Regexp returned from a Go function.
type GoValue struct {
	rv reflect.Value
}

func (g GoValue) Clone() CustomType {
	return GoValue{rv: g.rv}
}

func (g GoValue) TypeName() string {
	if !g.rv.IsValid() {
		return "nil"
	}
	return g.rv.Type().String()
}

// Interface returns the wrapped Go value.
func (g GoValue) Interface() interface{} {
	if !g.rv.IsValid() || !g.rv.CanInterface() {
		return nil
	}
	return g.rv.Interface()
}

func (g GoValue) Equal(other CustomType) bool {
	o, ok := other.(GoValue)
	return ok && reflect.DeepEqual(g.Interface(), o.Interface())
}

var (
	valueType = reflect.TypeOf(Value{})
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// FromGo converts a Go value into a Value. Numbers, strings, booleans, byte
// slices and slices convert structurally, nil becomes Void and anything else
// is wrapped as a GoValue.
func FromGo(x interface{}) Value {
	return fromReflect(reflect.ValueOf(x))
}

func fromReflect(rv reflect.Value) Value {
	if !rv.IsValid() {
		return Void
	}
	if rv.Type() == valueType {
		return rv.Interface().(Value)
	}
	if rv.CanInterface() {
		if c, ok := rv.Interface().(CustomType); ok {
			return Wrap(c)
		}
	}
	switch rv.Kind() {
	case reflect.Bool:
		return NewBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewNumber(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewNumber(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NewNumber(rv.Float())
	case reflect.String:
		return NewString(rv.String())
	case reflect.Slice:
		if rv.IsNil() {
			return NewList()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return NewString(string(rv.Bytes()))
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = fromReflect(rv.Index(i))
		}
		return NewList(items...)
	case reflect.Interface:
		if rv.IsNil() {
			return Void
		}
		return fromReflect(rv.Elem())
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return Void
		}
	}
	return Wrap(GoValue{rv: rv})
}

// ToGo converts v to a Go value of type t, failing with a ConversionError
// when no conversion exists.
func ToGo(v Value, t reflect.Type) (reflect.Value, error) {
	if t == valueType {
		return reflect.ValueOf(v), nil
	}
	if c, ok := v.Custom(); ok {
		rv := reflect.ValueOf(c)
		if g, ok := c.(GoValue); ok {
			rv = g.rv
		}
		if rv.IsValid() && rv.Type().AssignableTo(t) {
			return rv, nil
		}
		return reflect.Value{}, Errorf(ConversionError, "cannot use %s as %v", c.TypeName(), t)
	}

	switch t.Kind() {
	case reflect.Bool:
		if b, ok := v.Bool(); ok {
			return reflect.ValueOf(b).Convert(t), nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if f, ok := v.Number(); ok {
			return reflect.ValueOf(f).Convert(t), nil
		}
	case reflect.String:
		if s, ok := v.Str(); ok {
			return reflect.ValueOf(s).Convert(t), nil
		}
		if s, ok := v.Symbol(); ok {
			return reflect.ValueOf(s).Convert(t), nil
		}
	case reflect.Slice:
		if s, ok := v.Str(); ok && t.Elem().Kind() == reflect.Uint8 {
			return reflect.ValueOf([]byte(s)).Convert(t), nil
		}
		if l, ok := v.List(); ok {
			rv := reflect.MakeSlice(t, len(l), len(l))
			for i, item := range l {
				e, err := ToGo(item, t.Elem())
				if err != nil {
					return reflect.Value{}, err
				}
				rv.Index(i).Set(e)
			}
			return rv, nil
		}
	case reflect.Interface:
		if t.NumMethod() == 0 {
			x, err := toNative(v)
			if err != nil {
				return reflect.Value{}, err
			}
			if x == nil {
				return reflect.Zero(t), nil
			}
			return reflect.ValueOf(x), nil
		}
	}
	return reflect.Value{}, Errorf(ConversionError, "cannot use %v as %v", v.Type(), t)
}

// toNative converts v into plain Go data: bool, float64, string,
// []interface{} or nil. Procedures have no Go form.
func toNative(v Value) (interface{}, error) {
	switch v.Type() {
	case ValueBool:
		b, _ := v.Bool()
		return b, nil
	case ValueNumber:
		f, _ := v.Number()
		return f, nil
	case ValueString:
		s, _ := v.Str()
		return s, nil
	case ValueSymbol:
		s, _ := v.Symbol()
		return s, nil
	case ValueList:
		l, _ := v.List()
		xs := make([]interface{}, len(l))
		for i, item := range l {
			x, err := toNative(item)
			if err != nil {
				return nil, err
			}
			xs[i] = x
		}
		return xs, nil
	case ValueCustom:
		c, _ := v.Custom()
		if g, ok := c.(GoValue); ok {
			return g.Interface(), nil
		}
		return c, nil
	case ValueVoid:
		return nil, nil
	}
	return nil, Errorf(ConversionError, "cannot use %v as a Go value", v.Type())
}

// GoFunc exposes a Go function as a primitive. A trailing error result
// becomes the primitive's error; other results convert with FromGo, several
// of them as a list.
func GoFunc(name string, fn reflect.Value) Value {
	ft := fn.Type()
	return NewPrimitive(name, func(args []Value) (ret Value, err error) {
		n := ft.NumIn()
		if ft.IsVariadic() {
			if len(args) < n-1 {
				return Void, arityError(name, fmt.Sprintf("at least %d", n-1), len(args))
			}
		} else if len(args) != n {
			return Void, arityError(name, fmt.Sprint(n), len(args))
		}

		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			t := ft.In(min(i, n-1))
			if ft.IsVariadic() && i >= n-1 {
				t = t.Elem()
			}
			rv, err := ToGo(arg, t)
			if err != nil {
				return Void, err
			}
			in[i] = rv
		}

		defer func() {
			if r := recover(); r != nil {
				ret, err = Void, Errorf(EvalError, "%s: %v", name, r)
			}
		}()
		out := fn.Call(in)

		if len(out) > 0 && ft.Out(len(out)-1) == errorType {
			if e := out[len(out)-1]; !e.IsNil() {
				return Void, wrapError(name, e.Interface().(error))
			}
			out = out[:len(out)-1]
		}
		switch len(out) {
		case 0:
			return Void, nil
		case 1:
			return fromReflect(out[0]), nil
		}
		items := make([]Value, len(out))
		for i, o := range out {
			items[i] = fromReflect(o)
		}
		return NewList(items...), nil
	})
}

// ImportPackage binds the members of a registered Go package in env as
// "name.Member", where name is the last element of the import path.
func ImportPackage(env *Env, importPath string) error {
	pkg, ok := gopkg.Packages[importPath]
	if !ok {
		return Errorf(EvalError, "unknown package: %s", importPath)
	}
	prefix := path.Base(importPath) + "."
	for member, rv := range pkg {
		name := prefix + member
		var v Value
		if rv.Kind() == reflect.Func {
			v = GoFunc(name, rv)
		} else {
			v = fromReflect(rv)
		}
		if err := env.Define(name, v); err != nil {
			return err
		}
	}
	return nil
}

// ImportPackages imports every registered Go package.
func ImportPackages(env *Env) error {
	for _, name := range gopkg.Names() {
		if err := ImportPackage(env, name); err != nil {
			return err
		}
	}
	return nil
}
