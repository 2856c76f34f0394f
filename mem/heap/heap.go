// Package heap implements Box, a single-owner heap allocation that is built by
// copying an existing value and released exactly once.
package heap

import (
	"errors"
	"fmt"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/view"
)

var (
	// ErrDoubleFree indicates Free was called on a box that was already freed.
	ErrDoubleFree = errors.New("heap: box already freed")

	// ErrNullValue indicates New was given a null view.
	ErrNullValue = errors.New("heap: cannot box a null view")
)

// Box owns one allocation of ElemSize bytes. Copying a *Box shares it; only
// one holder may call Free. Zero-sized values are boxed without an allocation.
type Box struct {
	view  view.View
	block []byte
	alloc alloc.Allocator
	freed bool
}

// New copies v's bytes into a fresh allocation from a (nil selects the
// default allocator).
func New(a alloc.Allocator, v view.View) (*Box, error) {
	if v.IsNull() {
		return nil, ErrNullValue
	}
	a = alloc.Or(a)
	if v.ElemSize() == 0 {
		return &Box{view: view.New([]byte{}, 0), alloc: a}, nil
	}
	block, err := a.Alloc(v.ElemSize())
	if err != nil {
		return nil, fmt.Errorf("heap: box %d bytes: %w", v.ElemSize(), err)
	}
	copy(block, v.Bytes())
	return &Box{
		view:  view.New(block, v.ElemSize()),
		block: block,
		alloc: a,
	}, nil
}

// NewValue boxes a copy of x. T must be plain data (see view.Of).
func NewValue[T any](a alloc.Allocator, x T) (*Box, error) {
	return New(a, view.Of(&x))
}

// View returns a view of the boxed value, or a null view after Free.
// Ownership is not transferred.
func (b *Box) View() view.View {
	if b.freed {
		return view.Null(b.view.ElemSize())
	}
	return b.view
}

// Bytes returns the boxed bytes, or nil after Free.
func (b *Box) Bytes() []byte {
	return b.View().Bytes()
}

// ElemSize returns the boxed value's size in bytes.
func (b *Box) ElemSize() int { return b.view.ElemSize() }

// Freed reports whether Free has succeeded on this box.
func (b *Box) Freed() bool { return b.freed }

// Free releases the allocation. A second call returns ErrDoubleFree and does
// not reach the allocator.
func (b *Box) Free() error {
	if b.freed {
		return ErrDoubleFree
	}
	if err := b.alloc.Free(&b.block); err != nil {
		return fmt.Errorf("heap: free box: %w", err)
	}
	b.freed = true
	b.block = nil
	return nil
}
