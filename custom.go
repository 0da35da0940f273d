package goscheme

import (
	"fmt"
)

// CustomType is implemented by host types that want to travel through the
// interpreter as values.
type CustomType interface {
	// Clone returns an independent copy.
	Clone() CustomType
	// TypeName returns a stable label used when printing.
	TypeName() string
}

// Equaler may be implemented by a CustomType to define payload equality.
// Equal is only called with a value of the same concrete type. An Equal
// that compares held Values must stop on its own when the payload can reach
// itself.
type Equaler interface {
	Equal(other CustomType) bool
}

// Tracer must be implemented by a CustomType that holds Values, so that the
// frames reachable from those values survive collection.
type Tracer interface {
	TraceValues(visit func(Value))
}

// Wrap returns a Value holding c.
func Wrap(c CustomType) Value {
	return Value{t: ValueCustom, v: c}
}

// Unwrap recovers a copy of the payload of v as T. It fails with a
// ConversionError when v is not a custom value or holds another type.
func Unwrap[T CustomType](v Value) (T, error) {
	var zero T
	c, ok := v.Custom()
	if !ok {
		return zero, Errorf(ConversionError, "expected %s, got %v", typeLabel[T](), v.Type())
	}
	if _, ok := c.(T); !ok {
		return zero, Errorf(ConversionError, "expected %s, got %s", typeLabel[T](), c.TypeName())
	}
	t, ok := c.Clone().(T)
	if !ok {
		return zero, Errorf(ConversionError, "%s clone changed type", c.TypeName())
	}
	return t, nil
}

func typeLabel[T any]() string {
	return fmt.Sprintf("%T", *new(T))
}
