package vec

import "errors"

var (
	// ErrElemSize indicates a zero or negative element size.
	ErrElemSize = errors.New("vec: element size must be positive")

	// ErrOutOfRange indicates an index outside the live elements.
	ErrOutOfRange = errors.New("vec: index out of range")

	// ErrElemSizeMismatch indicates a value or slice whose element size differs
	// from the vector's.
	ErrElemSizeMismatch = errors.New("vec: element size mismatch")

	// ErrShrinkingReserve indicates Reserve was asked for less than the current capacity.
	ErrShrinkingReserve = errors.New("vec: reserve below current capacity")

	// ErrCapacity indicates a capacity whose byte size cannot be represented.
	ErrCapacity = errors.New("vec: capacity overflow")
)
