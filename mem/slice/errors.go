package slice

import "errors"

var (
	// ErrElemSize indicates a zero or negative element size.
	ErrElemSize = errors.New("slice: element size must be positive")

	// ErrBounds indicates the backing memory is too small for count elements.
	ErrBounds = errors.New("slice: backing memory out of bounds")

	// ErrOutOfRange indicates an element index or range outside the slice.
	ErrOutOfRange = errors.New("slice: index out of range")

	// ErrElemSizeMismatch indicates a value or slice with a different element size.
	ErrElemSizeMismatch = errors.New("slice: element size mismatch")

	// ErrLengthMismatch indicates two slices with different total byte lengths.
	ErrLengthMismatch = errors.New("slice: byte length mismatch")
)
