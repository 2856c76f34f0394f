package alloc

import (
	"fmt"
	"math"
)

// DefaultMaxBlock caps a single Heap block when Heap.MaxBlock is zero.
// Requests above it fail with ErrOutOfMemory instead of crashing the runtime.
const DefaultMaxBlock = min(1<<36, math.MaxInt)

// Heap allocates from the Go heap. The zero value is ready to use.
type Heap struct {
	// MaxBlock is the largest block Heap will hand out. Zero means DefaultMaxBlock.
	MaxBlock int
}

func (h *Heap) limit() int {
	if h.MaxBlock > 0 {
		return h.MaxBlock
	}
	return DefaultMaxBlock
}

func (h *Heap) check(size int) error {
	if err := checkSize(size); err != nil {
		return err
	}
	if size > h.limit() {
		return fmt.Errorf("%w: %d bytes exceeds block limit %d", ErrOutOfMemory, size, h.limit())
	}
	return nil
}

// Alloc returns a new heap block. The Go runtime zeroes it, but callers must
// not rely on that.
func (h *Heap) Alloc(size int) ([]byte, error) {
	if err := h.check(size); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return make([]byte, size), nil
}

// AllocZeroed returns a new zero-filled heap block.
func (h *Heap) AllocZeroed(size int) ([]byte, error) {
	return h.Alloc(size)
}

// Realloc grows in place while the block's capacity allows, otherwise copies
// into a fresh block. Shrinking always copies into a block of exactly newSize
// so the old backing array can be collected.
func (h *Heap) Realloc(block *[]byte, newSize int) error {
	if block == nil {
		return ErrNilBlock
	}
	if err := h.check(newSize); err != nil {
		return err
	}
	old := *block
	if newSize == 0 {
		*block = nil
		return nil
	}
	if newSize < len(old) {
		nb := make([]byte, newSize)
		copy(nb, old)
		*block = nb
		return nil
	}
	if newSize <= cap(old) {
		grown := old[:newSize]
		if newSize > len(old) {
			clear(grown[len(old):])
		}
		*block = grown
		return nil
	}
	nb := make([]byte, newSize)
	copy(nb, old)
	*block = nb
	return nil
}

// Free drops the reference and lets the garbage collector reclaim the block.
func (h *Heap) Free(block *[]byte) error {
	if block == nil {
		return ErrNilBlock
	}
	*block = nil
	return nil
}
