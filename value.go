package goscheme

import (
	"bytes"
	"math"
	"reflect"
	"strconv"
	"strings"
)

type ValueType int

const (
	ValueVoid ValueType = iota
	ValueBool
	ValueNumber
	ValueString
	ValueSymbol
	ValueList
	ValuePrimitive
	ValueClosure
	ValueCustom
)

var valueTypeNames = [...]string{
	ValueVoid:      "void",
	ValueBool:      "boolean",
	ValueNumber:    "number",
	ValueString:    "string",
	ValueSymbol:    "symbol",
	ValueList:      "list",
	ValuePrimitive: "function",
	ValueClosure:   "lambda",
	ValueCustom:    "custom",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return "unknown"
}

// Value is a runtime value. The zero Value is Void.
//
// A closure addresses its frame inside the Arena of the environment that
// created it. Hosts holding such a Value across evaluations pin it with
// Arena.Retain.
//
// v holds bool, float64, string (String and Symbol), []Value, *primitive,
// *Closure or CustomType depending on t.
type Value struct {
	t ValueType
	v interface{}
}

// Primitive is a host function callable from Scheme.
type Primitive func(args []Value) (Value, error)

type primitive struct {
	name string
	fn   Primitive
}

// Closure is a lambda paired with the frame it was created in. The frame is
// addressed by reference into the owning arena, not held.
type Closure struct {
	params []string
	body   Expr
	env    FrameRef
}

func (c *Closure) Params() []string {
	return c.params
}

func (c *Closure) Body() Expr {
	return c.body
}

func (c *Closure) Frame() FrameRef {
	return c.env
}

var (
	Void  = Value{t: ValueVoid}
	True  = Value{t: ValueBool, v: true}
	False = Value{t: ValueBool, v: false}
)

func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

func NewNumber(f float64) Value {
	return Value{t: ValueNumber, v: f}
}

func NewString(s string) Value {
	return Value{t: ValueString, v: s}
}

func NewSymbol(s string) Value {
	return Value{t: ValueSymbol, v: s}
}

// NewList returns a list holding items. The slice is not copied and must not
// be modified afterwards.
func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{t: ValueList, v: items}
}

// NewPrimitive wraps fn as a callable value. name is only used in error
// messages.
func NewPrimitive(name string, fn Primitive) Value {
	return Value{t: ValuePrimitive, v: &primitive{name: name, fn: fn}}
}

func newClosure(params []string, body Expr, env FrameRef) Value {
	return Value{t: ValueClosure, v: &Closure{params: params, body: body, env: env}}
}

func (v Value) Type() ValueType {
	return v.t
}

func (v Value) IsVoid() bool {
	return v.Type() == ValueVoid
}

// Truthy reports whether v counts as true in conditional position. Only
// #false is false.
func (v Value) Truthy() bool {
	b, ok := v.v.(bool)
	return !(ok && v.t == ValueBool && !b)
}

func (v Value) Bool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok && v.t == ValueBool
}

func (v Value) Number() (float64, bool) {
	f, ok := v.v.(float64)
	return f, ok && v.t == ValueNumber
}

func (v Value) Str() (string, bool) {
	s, ok := v.v.(string)
	return s, ok && v.t == ValueString
}

func (v Value) Symbol() (string, bool) {
	s, ok := v.v.(string)
	return s, ok && v.t == ValueSymbol
}

// List returns the items of a list value. The result must not be modified.
func (v Value) List() ([]Value, bool) {
	l, ok := v.v.([]Value)
	return l, ok && v.t == ValueList
}

func (v Value) Closure() (*Closure, bool) {
	c, ok := v.v.(*Closure)
	return c, ok && v.t == ValueClosure
}

func (v Value) Custom() (CustomType, bool) {
	c, ok := v.v.(CustomType)
	return c, ok && v.t == ValueCustom
}

// Equals reports structural equality. Values of different types are never
// equal. Functions are never equal to anything.
func Equals(a, b Value) bool {
	return equals(a, b, nil)
}

// pairs holds the custom payload pairs whose comparison is in progress.
// Meeting one again means the values are cyclic along the same path, and
// the pair is taken as equal.
type pairs map[[2]interface{}]bool

func equals(a, b Value, seen pairs) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Type() {
	case ValueBool, ValueString, ValueSymbol:
		return a.v == b.v
	case ValueNumber:
		return a.v.(float64) == b.v.(float64)
	case ValueVoid:
		return true
	case ValueList:
		l, r := a.v.([]Value), b.v.([]Value)
		if len(l) != len(r) {
			return false
		}
		for i := range l {
			if !equals(l[i], r[i], seen) {
				return false
			}
		}
		return true
	case ValueCustom:
		return customEquals(a.v.(CustomType), b.v.(CustomType), seen)
	}
	return false
}

// Compare orders two numbers or two strings. It returns -1, 0 or 1. Any
// other pair, and NaN, is a TypeMismatch.
func Compare(a, b Value) (int, error) {
	switch {
	case a.Type() == ValueNumber && b.Type() == ValueNumber:
		l, r := a.v.(float64), b.v.(float64)
		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		case l == r:
			return 0, nil
		}
		return 0, Errorf(TypeMismatch, "cannot order %v and %v", a.Repr(), b.Repr())
	case a.Type() == ValueString && b.Type() == ValueString:
		return strings.Compare(a.v.(string), b.v.(string)), nil
	}
	return 0, Errorf(TypeMismatch, "cannot compare %v with %v", a.Type(), b.Type())
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// String renders v as a top-level result: symbols and lists get a leading
// quote.
func (v Value) String() string {
	switch v.Type() {
	case ValueSymbol, ValueList:
		return "'" + v.Repr()
	}
	return v.Repr()
}

// Repr renders v as it appears nested inside a list.
func (v Value) Repr() string {
	var buf bytes.Buffer
	v.write(&buf)
	return buf.String()
}

func (v Value) write(buf *bytes.Buffer) {
	switch v.Type() {
	case ValueBool:
		if v.v.(bool) {
			buf.WriteString("#true")
		} else {
			buf.WriteString("#false")
		}
	case ValueNumber:
		buf.WriteString(formatNumber(v.v.(float64)))
	case ValueString:
		buf.WriteString(strconv.Quote(v.v.(string)))
	case ValueSymbol:
		buf.WriteString(v.v.(string))
	case ValueList:
		buf.WriteByte('(')
		for i, item := range v.v.([]Value) {
			if i > 0 {
				buf.WriteByte(' ')
			}
			item.write(buf)
		}
		buf.WriteByte(')')
	case ValueVoid:
		buf.WriteString("Void")
	case ValuePrimitive:
		buf.WriteString("Function")
	case ValueClosure:
		buf.WriteString("Lambda Function")
	case ValueCustom:
		buf.WriteString("Custom Type: ")
		buf.WriteString(v.v.(CustomType).TypeName())
	}
}

// FromExpr converts an unevaluated expression into the corresponding value
// tree. Identifiers become symbols.
func FromExpr(e Expr) (Value, error) {
	if e.IsList() {
		items := make([]Value, 0, len(e.items))
		for _, item := range e.items {
			v, err := FromExpr(item)
			if err != nil {
				return Void, err
			}
			items = append(items, v)
		}
		return NewList(items...), nil
	}
	tok := e.tok
	switch tok.Type {
	case TokenBoolean:
		return NewBool(tok.Bool), nil
	case TokenNumber:
		return NewNumber(tok.Num), nil
	case TokenString:
		return NewString(tok.Text), nil
	case TokenIdent:
		return NewSymbol(tok.Text), nil
	}
	return Void, Errorf(UnexpectedToken, "%v", tok)
}

// cyclicEqualer is implemented by payloads that hold Values and may
// therefore reach themselves.
type cyclicEqualer interface {
	equalWith(other CustomType, eq func(x, y Value) bool) bool
}

func customEquals(a, b CustomType, seen pairs) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ce, ok := a.(cyclicEqualer); ok {
		ka, oka := identity(a)
		kb, okb := identity(b)
		if oka && okb {
			k := [2]interface{}{ka, kb}
			if seen[k] {
				return true
			}
			if seen == nil {
				seen = make(pairs)
			}
			seen[k] = true
		}
		return ce.equalWith(b, func(x, y Value) bool {
			return equals(x, y, seen)
		})
	}
	if eq, ok := a.(Equaler); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
