package goscheme

import (
	"io"
	"strconv"
	"strings"
)

// step is the outcome of a special form: either a final value, or an
// expression left to evaluate in tail position.
type step struct {
	value Value
	tail  bool
	expr  Expr
	env   *Env
}

func done(v Value) (step, error) {
	return step{value: v}, nil
}

func tail(env *Env, expr Expr) (step, error) {
	return step{tail: true, expr: expr, env: env}, nil
}

type special func(env *Env, args []Expr) (step, error)

var specials map[string]special

func init() {
	specials = map[string]special{
		"quote":  doQuote,
		"if":     doIf,
		"define": doDefine,
		"lambda": doLambda,
		"set!":   doSet,
		"begin":  doBegin,
		"let":    doLet,
		"and":    doAnd,
		"or":     doOr,
		"cond":   doCond,
	}
}

// IsSpecialForm reports whether name is one of the reserved keywords.
func IsSpecialForm(name string) bool {
	_, ok := specials[name]
	return ok
}

// Eval evaluates expr in env.
//
// Only the returned value is kept alive by the collection that may run when
// Eval returns. A closure, or a value holding one, that the caller keeps
// outside env after later evaluations must be pinned with Arena.Retain;
// otherwise calling it can fail with a stale frame EvalError.
func Eval(expr Expr, env *Env) (Value, error) {
	env.arena.enter()
	ret, err := eval(env, expr)
	env.arena.leave(env.ref, ret)
	return ret, err
}

func (e *Env) Eval(expr Expr) (Value, error) {
	return Eval(expr, e)
}

// EvalAll evaluates exprs in order and returns the last result. An empty
// sequence yields Void.
func (e *Env) EvalAll(exprs []Expr) (Value, error) {
	ret := Void
	var err error
	for _, expr := range exprs {
		ret, err = Eval(expr, e)
		if err != nil {
			return Void, err
		}
	}
	return ret, nil
}

// EvalReader parses and evaluates everything in r.
func (e *Env) EvalReader(r io.Reader) (Value, error) {
	exprs, err := NewParser(r).Parse()
	if err != nil {
		return Void, err
	}
	return e.EvalAll(exprs)
}

func (e *Env) EvalString(src string) (Value, error) {
	return e.EvalReader(strings.NewReader(src))
}

func evalAtom(env *Env, tok Token) (Value, error) {
	switch tok.Type {
	case TokenBoolean:
		return NewBool(tok.Bool), nil
	case TokenNumber:
		return NewNumber(tok.Num), nil
	case TokenString:
		return NewString(tok.Text), nil
	case TokenIdent:
		return env.Lookup(tok.Text)
	}
	return Void, Errorf(UnexpectedToken, "%v", tok)
}

func eval(env *Env, expr Expr) (Value, error) {
	a := env.arena
	a.calls++
	defer func() {
		a.calls--
	}()
	if a.maxDepth > 0 && a.calls > a.maxDepth {
		return Void, Errorf(EvalError, "maximum recursion depth exceeded")
	}

	for {
		if !expr.IsList() {
			return evalAtom(env, expr.tok)
		}
		items := expr.items
		if len(items) == 0 {
			return Void, Errorf(TypeMismatch, "cannot apply empty list")
		}

		if name, ok := items[0].Ident(); ok {
			if fn, ok := specials[name]; ok {
				s, err := fn(env, items[1:])
				if err != nil {
					return Void, err
				}
				if !s.tail {
					return s.value, nil
				}
				env, expr = s.env, s.expr
				continue
			}
		}

		fn, err := eval(env, items[0])
		if err != nil {
			return Void, err
		}
		args := make([]Value, 0, len(items)-1)
		for _, item := range items[1:] {
			v, err := eval(env, item)
			if err != nil {
				return Void, err
			}
			args = append(args, v)
		}

		switch fn.Type() {
		case ValuePrimitive:
			p := fn.v.(*primitive)
			ret, err := p.fn(args)
			if err != nil {
				return Void, wrapError(p.name, err)
			}
			return ret, nil
		case ValueClosure:
			c := fn.v.(*Closure)
			if len(args) != len(c.params) {
				return Void, arityError("lambda", strconv.Itoa(len(c.params)), len(args))
			}
			if _, err := a.frame(c.env); err != nil {
				return Void, err
			}
			bindings := make(map[string]Value, len(args))
			for i, name := range c.params {
				bindings[name] = args[i]
			}
			env = &Env{arena: a, ref: a.alloc(c.env, bindings)}
			expr = c.body
		default:
			return Void, Errorf(TypeMismatch, "application not a procedure: %v", fn)
		}
	}
}

func doQuote(env *Env, args []Expr) (step, error) {
	if len(args) != 1 {
		return step{}, arityError("quote", "1", len(args))
	}
	v, err := FromExpr(args[0])
	if err != nil {
		return step{}, err
	}
	return done(v)
}

func doIf(env *Env, args []Expr) (step, error) {
	if len(args) != 3 {
		return step{}, arityError("if", "3", len(args))
	}
	test, err := eval(env, args[0])
	if err != nil {
		return step{}, err
	}
	if test.Truthy() {
		return tail(env, args[1])
	}
	return tail(env, args[2])
}

func identifier(form string, e Expr) (string, error) {
	name, ok := e.Ident()
	if !ok {
		return "", Errorf(TypeMismatch, "%s expects an identifier, got %v", form, e)
	}
	return name, nil
}

func parameters(form string, e Expr) ([]string, error) {
	if !e.IsList() {
		return nil, Errorf(TypeMismatch, "%s expects a parameter list, got %v", form, e)
	}
	params := make([]string, 0, len(e.items))
	for _, item := range e.items {
		name, err := identifier(form, item)
		if err != nil {
			return nil, err
		}
		params = append(params, name)
	}
	return params, nil
}

func doDefine(env *Env, args []Expr) (step, error) {
	if len(args) != 2 {
		return step{}, arityError("define", "2", len(args))
	}

	// (define (name params...) body)
	if args[0].IsList() {
		sig := args[0].items
		if len(sig) == 0 {
			return step{}, Errorf(TypeMismatch, "define expects a name")
		}
		name, err := identifier("define", sig[0])
		if err != nil {
			return step{}, err
		}
		params, err := parameters("define", ListExpr(sig[1:]...))
		if err != nil {
			return step{}, err
		}
		if err := env.Define(name, newClosure(params, args[1], env.ref)); err != nil {
			return step{}, err
		}
		return done(Void)
	}

	name, err := identifier("define", args[0])
	if err != nil {
		return step{}, err
	}
	v, err := eval(env, args[1])
	if err != nil {
		return step{}, err
	}
	if err := env.Define(name, v); err != nil {
		return step{}, err
	}
	return done(Void)
}

func doLambda(env *Env, args []Expr) (step, error) {
	if len(args) != 2 {
		return step{}, arityError("lambda", "2", len(args))
	}
	params, err := parameters("lambda", args[0])
	if err != nil {
		return step{}, err
	}
	return done(newClosure(params, args[1], env.ref))
}

func doSet(env *Env, args []Expr) (step, error) {
	if len(args) != 2 {
		return step{}, arityError("set!", "2", len(args))
	}
	name, err := identifier("set!", args[0])
	if err != nil {
		return step{}, err
	}
	v, err := eval(env, args[1])
	if err != nil {
		return step{}, err
	}
	if err := env.Assign(name, v); err != nil {
		return step{}, err
	}
	return done(Void)
}

func doBegin(env *Env, args []Expr) (step, error) {
	if len(args) == 0 {
		return done(Void)
	}
	for _, arg := range args[:len(args)-1] {
		if _, err := eval(env, arg); err != nil {
			return step{}, err
		}
	}
	return tail(env, args[len(args)-1])
}

func doLet(env *Env, args []Expr) (step, error) {
	if len(args) != 2 {
		return step{}, arityError("let", "2", len(args))
	}
	if !args[0].IsList() {
		return step{}, Errorf(TypeMismatch, "let expects a binding list, got %v", args[0])
	}
	bindings := make(map[string]Value, len(args[0].items))
	for _, b := range args[0].items {
		if !b.IsList() {
			return step{}, Errorf(TypeMismatch, "let expects (name value), got %v", b)
		}
		if len(b.items) != 2 {
			return step{}, arityError("let binding", "2", len(b.items))
		}
		name, err := identifier("let", b.items[0])
		if err != nil {
			return step{}, err
		}
		v, err := eval(env, b.items[1])
		if err != nil {
			return step{}, err
		}
		bindings[name] = v
	}
	return tail(env.Child(bindings), args[1])
}

func doAnd(env *Env, args []Expr) (step, error) {
	if len(args) == 0 {
		return done(True)
	}
	for _, arg := range args[:len(args)-1] {
		v, err := eval(env, arg)
		if err != nil {
			return step{}, err
		}
		if !v.Truthy() {
			return done(v)
		}
	}
	return tail(env, args[len(args)-1])
}

func doOr(env *Env, args []Expr) (step, error) {
	if len(args) == 0 {
		return done(False)
	}
	for _, arg := range args[:len(args)-1] {
		v, err := eval(env, arg)
		if err != nil {
			return step{}, err
		}
		if v.Truthy() {
			return done(v)
		}
	}
	return tail(env, args[len(args)-1])
}

func doCond(env *Env, args []Expr) (step, error) {
	for _, clause := range args {
		if !clause.IsList() {
			return step{}, Errorf(TypeMismatch, "cond expects (test body), got %v", clause)
		}
		if len(clause.items) != 2 {
			return step{}, arityError("cond clause", "2", len(clause.items))
		}
		if name, ok := clause.items[0].Ident(); ok && name == "else" {
			return tail(env, clause.items[1])
		}
		v, err := eval(env, clause.items[0])
		if err != nil {
			return step{}, err
		}
		if v.Truthy() {
			return tail(env, clause.items[1])
		}
	}
	return done(Void)
}
