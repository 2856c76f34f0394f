//go:build unix

package alloc

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Mmap hands out anonymous private page mappings. Every block occupies a whole
// number of pages; the slice returned to the caller has the requested length
// and the mapped length as capacity. Callers must not reslice a block's
// capacity, since Free unmaps block[:cap(block)].
type Mmap struct {
	pageSize int
}

// NewMmap returns a page-mapping allocator.
func NewMmap() Allocator {
	return &Mmap{pageSize: unix.Getpagesize()}
}

func (m *Mmap) roundUp(size int) int {
	return (size + m.pageSize - 1) / m.pageSize * m.pageSize
}

// Alloc maps a fresh region. Anonymous mappings are always zero-filled.
func (m *Mmap) Alloc(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	n := m.roundUp(size)
	mem, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrOutOfMemory, n, err)
	}
	return mem[:size], nil
}

// AllocZeroed is Alloc; fresh anonymous pages are zero.
func (m *Mmap) AllocZeroed(size int) ([]byte, error) {
	return m.Alloc(size)
}

// Realloc resizes within the existing mapping when it is large enough,
// otherwise maps a new region, copies and unmaps the old one.
func (m *Mmap) Realloc(block *[]byte, newSize int) error {
	if block == nil {
		return ErrNilBlock
	}
	if err := checkSize(newSize); err != nil {
		return err
	}
	old := *block
	if newSize == 0 {
		return m.Free(block)
	}
	if old != nil && newSize <= cap(old) {
		grown := old[:newSize]
		if newSize > len(old) {
			clear(grown[len(old):])
		}
		*block = grown
		return nil
	}
	nb, err := m.Alloc(newSize)
	if err != nil {
		return err
	}
	copy(nb, old)
	if old != nil {
		if err := unix.Munmap(old[:cap(old)]); err != nil {
			_ = unix.Munmap(nb[:cap(nb)])
			return fmt.Errorf("alloc: munmap: %w", err)
		}
	}
	*block = nb
	return nil
}

// Free unmaps the block's whole mapping.
func (m *Mmap) Free(block *[]byte) error {
	if block == nil {
		return ErrNilBlock
	}
	b := *block
	if b == nil {
		return nil
	}
	if err := unix.Munmap(b[:cap(b)]); err != nil {
		if errors.Is(err, unix.EINVAL) {
			return fmt.Errorf("%w: munmap rejected block %#x", ErrUnknownBlock, Addr(b))
		}
		return fmt.Errorf("alloc: munmap: %w", err)
	}
	*block = nil
	return nil
}

var _ Allocator = (*Mmap)(nil)
