package algebra

import "errors"

var (
	// ErrUnboundSymbol is returned when evaluation or compilation meets a
	// symbol with no value or index.
	ErrUnboundSymbol = errors.New("algebra: unbound symbol")

	// ErrDuplicateSymbol is returned when a variable list names a symbol twice.
	ErrDuplicateSymbol = errors.New("algebra: duplicate symbol")

	// ErrSyntax is returned by Parse.
	ErrSyntax = errors.New("algebra: syntax error")

	// ErrDomain is returned when a numeric evaluation leaves the real domain,
	// e.g. log of a non-positive number or division by zero.
	ErrDomain = errors.New("algebra: domain error")
)
