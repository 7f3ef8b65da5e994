package gocriteria

import "errors"

var (
	// ErrInvalidOperator is returned for an operator symbol outside the known set.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrMalformedBetween is returned when fewer than two bounds are available
	// for a BETWEEN predicate.
	ErrMalformedBetween = errors.New("malformed between")

	// ErrMismatchedCriteria is returned when parallel keys/operators/values
	// sequences cannot be zipped together.
	ErrMismatchedCriteria = errors.New("mismatched criteria")

	// ErrInvalidOrdering is returned for a sort entry with a bad direction or
	// forbidden symbols in the column name.
	ErrInvalidOrdering = errors.New("invalid ordering")

	// ErrPageOutOfRange is returned when the requested page is past the last one.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrInvalidProperty is returned for a filter property that is empty or is
	// not a plain dotted path of letters, digits and underscores.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrInvalidConfig is returned when a Config or an option holds a value
	// outside its allowed range.
	ErrInvalidConfig = errors.New("invalid config")
)
