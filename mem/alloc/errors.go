package alloc

import "errors"

var (
	// ErrOutOfMemory indicates the allocator could not satisfy the request.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrInvalidSize indicates a negative or otherwise unrepresentable size.
	ErrInvalidSize = errors.New("alloc: invalid size")

	// ErrNilBlock indicates a nil block pointer was passed to Realloc or Free.
	ErrNilBlock = errors.New("alloc: nil block pointer")

	// ErrDoubleFree indicates a block was freed after it had already been released.
	ErrDoubleFree = errors.New("alloc: double free")

	// ErrUnknownBlock indicates a block that this allocator never handed out.
	ErrUnknownBlock = errors.New("alloc: block not owned by allocator")

	// ErrIncomplete indicates a Descriptor without an allocation function.
	ErrIncomplete = errors.New("alloc: descriptor has no allocation function")
)
