package vecdb

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyID is returned when an insert carries an empty id.
	ErrEmptyID = errors.New("id must not be empty")

	// ErrCapacityExceeded is returned when an insert would grow the store
	// beyond its configured maximum.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an invalid configured dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrInvalidIndexStrategy indicates an index strategy that is declared as a
// configuration value but has no implementation.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidIndexStrategy struct {
	Strategy IndexStrategy
	cause    error
}

func (e *ErrInvalidIndexStrategy) Error() string {
	return fmt.Sprintf("index strategy %q is not implemented", e.Strategy)
}

func (e *ErrInvalidIndexStrategy) Unwrap() error { return e.cause }
