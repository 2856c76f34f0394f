package alloc

import (
	"fmt"
	"unsafe"
)

// Allocator defines the interface for raw block allocation.
//
// Implementations:
//   - Heap: Go-heap backed process default
//   - Descriptor: owner-bound function table
//   - Tracking: instrumented wrapper
//   - Limited: budget-enforcing wrapper
//   - Mmap: page-mapped blocks outside the Go heap
type Allocator interface {
	// Alloc returns a block of exactly size bytes. Contents are unspecified.
	Alloc(size int) ([]byte, error)

	// AllocZeroed returns a zero-filled block of exactly size bytes.
	AllocZeroed(size int) ([]byte, error)

	// Realloc resizes *block to newSize bytes, in place when possible.
	// The first min(len(*block), newSize) bytes are preserved.
	// On error *block is left untouched and remains valid.
	Realloc(block *[]byte, newSize int) error

	// Free releases *block and sets it to nil.
	Free(block *[]byte) error
}

var defaultHeap = &Heap{}

// Default returns the process-wide allocator used when a caller supplies none.
func Default() Allocator {
	return defaultHeap
}

// Or returns a, or the process default when a is nil.
func Or(a Allocator) Allocator {
	if a == nil {
		return defaultHeap
	}
	return a
}

// Addr returns the address of the first byte of b's backing array, or 0 for a
// nil block.
func Addr(b []byte) uintptr {
	if cap(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

func checkSize(size int) error {
	if size < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return nil
}

// Descriptor is an allocator expressed as a table of functions bound to an
// opaque owner handle. A collection built on a Descriptor delegates its memory
// strategy to whatever Owner refers to.
//
// AllocFn is required. AllocZeroedFn defaults to AllocFn followed by clear,
// ReallocFn defaults to allocate+copy+free, and FreeFn defaults to dropping the
// reference.
type Descriptor struct {
	Owner         any
	AllocFn       func(owner any, size int) ([]byte, error)
	AllocZeroedFn func(owner any, size int) ([]byte, error)
	ReallocFn     func(owner any, block *[]byte, newSize int) error
	FreeFn        func(owner any, block *[]byte) error
}

// Alloc calls AllocFn with the bound owner.
func (d *Descriptor) Alloc(size int) ([]byte, error) {
	if d.AllocFn == nil {
		return nil, ErrIncomplete
	}
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return d.AllocFn(d.Owner, size)
}

// AllocZeroed calls AllocZeroedFn, or AllocFn and clears the result.
func (d *Descriptor) AllocZeroed(size int) ([]byte, error) {
	if d.AllocZeroedFn != nil {
		if err := checkSize(size); err != nil {
			return nil, err
		}
		if size == 0 {
			return nil, nil
		}
		return d.AllocZeroedFn(d.Owner, size)
	}
	b, err := d.Alloc(size)
	if err != nil {
		return nil, err
	}
	clear(b)
	return b, nil
}

// Realloc calls ReallocFn, or moves the block through Alloc, copy and Free.
func (d *Descriptor) Realloc(block *[]byte, newSize int) error {
	if block == nil {
		return ErrNilBlock
	}
	if err := checkSize(newSize); err != nil {
		return err
	}
	if d.ReallocFn != nil {
		return d.ReallocFn(d.Owner, block, newSize)
	}
	if newSize == 0 {
		return d.Free(block)
	}
	nb, err := d.Alloc(newSize)
	if err != nil {
		return err
	}
	copy(nb, *block)
	old := *block
	if err := d.Free(&old); err != nil {
		// The new block is dropped; the caller still holds the original.
		_ = d.Free(&nb)
		return err
	}
	*block = nb
	return nil
}

// Free calls FreeFn, or drops the reference.
func (d *Descriptor) Free(block *[]byte) error {
	if block == nil {
		return ErrNilBlock
	}
	if *block == nil {
		return nil
	}
	if d.FreeFn != nil {
		return d.FreeFn(d.Owner, block)
	}
	*block = nil
	return nil
}

// Compile-time interface checks
var (
	_ Allocator = (*Heap)(nil)
	_ Allocator = (*Descriptor)(nil)
	_ Allocator = (*Tracking)(nil)
	_ Allocator = (*Limited)(nil)
)
