package goscheme

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnboundIdentifier
	ArityMismatch
	TypeMismatch
	ConversionError
	EvalError
)

var kindNames = [...]string{
	UnexpectedToken:   "unexpected token",
	UnboundIdentifier: "unbound identifier",
	ArityMismatch:     "arity mismatch",
	TypeMismatch:      "type mismatch",
	ConversionError:   "conversion error",
	EvalError:         "evaluation error",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by the evaluator and the builtins.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg == "" && e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an *Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func wrapError(name string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{
		Kind: EvalError,
		Msg:  fmt.Sprintf("%s: %v", name, err),
		Err:  err,
	}
}

func arityError(name string, want string, got int) error {
	return Errorf(ArityMismatch, "%s expects %s argument(s), got %d", name, want, got)
}
