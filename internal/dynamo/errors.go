package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors. Callers match them with errors.Is.
var (
	// ErrConfiguration indicates invalid input caught before any computation:
	// mismatched vector lengths, non-positive mass or timestep, negative
	// duration, bad coordinate lists or a missing potential.
	ErrConfiguration = errors.New("dynamo: configuration error")

	// ErrSymbolicState indicates a symbolic operation that needs a Hamiltonian
	// was invoked before one was set.
	ErrSymbolicState = errors.New("dynamo: hamiltonian not defined")

	// ErrUnknownMethod indicates an integration method name with no stepper.
	ErrUnknownMethod = fmt.Errorf("%w: unknown integration method", ErrConfiguration)

	// ErrUnknownSystem indicates a catalog lookup for a system that does not exist.
	ErrUnknownSystem = fmt.Errorf("%w: unknown system", ErrConfiguration)
)

// Error tags a failure with the operation that produced it.
type Error struct {
	Op     string
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Configf returns an ErrConfiguration tagged with op.
func Configf(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrConfiguration, Detail: fmt.Sprintf(format, args...)}
}

// Statef returns an ErrSymbolicState tagged with op.
func Statef(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrSymbolicState, Detail: fmt.Sprintf(format, args...)}
}

// Wrapf tags an arbitrary kind, typically one of the derived sentinels.
func Wrapf(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
