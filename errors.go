package mathgen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported marks known gaps: fractional powers without an exact
	// root, exponents containing the unknown, and anything needing a
	// trigonometric value or inverse.
	ErrUnsupported = errors.New("unsupported operation")

	ErrDivisionByZero  = errors.New("division by zero")
	ErrTooManyUnknowns = errors.New("too many unknowns")
	ErrNoUnknowns      = errors.New("no unknowns")
	ErrFailedToEval    = errors.New("failed to evaluate")

	// ErrInvariant means a tree did not match its own unknown count.
	ErrInvariant = errors.New("internal invariant violated")
)

// UnknownError is returned by Evaluate when it reaches a Variable.
type UnknownError struct{ Name string }

func (e *UnknownError) Error() string { return fmt.Sprintf("encountered unknown %s", e.Name) }

// FuncError is returned by Evaluate when it reaches a Func node.
type FuncError struct{ Kind FuncKind }

func (e *FuncError) Error() string {
	return fmt.Sprintf("cannot evaluate %s exactly", e.Kind)
}

func (e *FuncError) Unwrap() error { return ErrUnsupported }
