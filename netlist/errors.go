package netlist

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every *ParseError caused by malformed input.
	ErrSyntax = errors.New("netlist: syntax error")

	// ErrDuplicateName is returned when a name is declared twice in the same scope.
	ErrDuplicateName = errors.New("netlist: duplicate name")

	// ErrInvalidName is returned for empty names.
	ErrInvalidName = errors.New("netlist: invalid name")

	// ErrUndeclaredNet is reported by Validate for nets that gates connect to
	// but the module never declares.
	ErrUndeclaredNet = errors.New("netlist: undeclared net")

	// ErrNotFound is returned when a named element does not exist.
	ErrNotFound = errors.New("netlist: not found")
)

// ParseError describes a problem in netlist source text.
type ParseError struct {
	Line int    // 1-based line of the offending token
	Msg  string // human readable description
	Err  error  // ErrSyntax unless a more specific sentinel applies
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("netlist: line %d: %s", e.Line, e.Msg)
}

// Unwrap returns the sentinel error, ErrSyntax by default.
func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return ErrSyntax
	}
	return e.Err
}
