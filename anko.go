package goscheme

import (
	"reflect"

	"github.com/mattn/anko/env"
	"github.com/mattn/anko/vm"
)

// AnkoEnv is an anko scripting environment carried as a value, so Scheme
// code can hand work to anko scripts.
type AnkoEnv struct {
	e *env.Env
}

func NewAnkoEnv() *AnkoEnv {
	return &AnkoEnv{e: env.NewEnv()}
}

// Clone copies the anko variable table; later definitions in the copy do
// not leak back.
func (a *AnkoEnv) Clone() CustomType {
	return &AnkoEnv{e: a.e.Copy()}
}

func (a *AnkoEnv) TypeName() string {
	return "anko-env"
}

// Define sets name in the anko environment to the Go form of v.
func (a *AnkoEnv) Define(name string, v Value) error {
	rv, err := ToGo(v, reflect.TypeOf((*interface{})(nil)).Elem())
	if err != nil {
		return err
	}
	var x interface{}
	if rv.IsValid() && !(rv.Kind() == reflect.Interface && rv.IsNil()) {
		x = rv.Interface()
	}
	return a.e.Define(name, x)
}

// Execute runs script and converts its result back into a Value.
func (a *AnkoEnv) Execute(script string) (Value, error) {
	ret, err := vm.Execute(a.e, nil, script)
	if err != nil {
		return Void, Errorf(EvalError, "anko: %v", err)
	}
	return FromGo(ret), nil
}

func ankoArg(name string, v Value) (*AnkoEnv, error) {
	c, ok := v.Custom()
	if !ok {
		return nil, Errorf(TypeMismatch, "invalid arguments for %s: expected anko-env, got %v", name, v.Type())
	}
	// Not Unwrap: definitions must land in the caller's environment, not a
	// copy of it.
	a, ok := c.(*AnkoEnv)
	if !ok {
		return nil, Errorf(ConversionError, "invalid arguments for %s: expected anko-env, got %s", name, c.TypeName())
	}
	return a, nil
}

func doAnkoEnv(args []Value) (Value, error) {
	if err := checkArity("anko-env", args, 0); err != nil {
		return Void, err
	}
	return Wrap(NewAnkoEnv()), nil
}

func doAnkoDefine(args []Value) (Value, error) {
	if err := checkArity("anko-define", args, 3); err != nil {
		return Void, err
	}
	a, err := ankoArg("anko-define", args[0])
	if err != nil {
		return Void, err
	}
	name, err := stringArg("anko-define", args[1])
	if err != nil {
		return Void, err
	}
	if err := a.Define(name, args[2]); err != nil {
		return Void, wrapError("anko-define", err)
	}
	return Void, nil
}

func doAnkoEval(args []Value) (Value, error) {
	if err := checkArity("anko-eval", args, 2); err != nil {
		return Void, err
	}
	a, err := ankoArg("anko-eval", args[0])
	if err != nil {
		return Void, err
	}
	script, err := stringArg("anko-eval", args[1])
	if err != nil {
		return Void, err
	}
	return a.Execute(script)
}
