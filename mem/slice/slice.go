// Package slice implements Slice, a non-owning view of count contiguous
// elements that all share one runtime element size.
//
// Element lookups return view.View values that alias the slice's memory. Like
// the slice itself, they go stale when the owner of that memory reallocates
// or frees it.
//
// Operations that need two operands of matching shape (CopyFrom, SwapWith,
// Fill) check the shape and return an error instead of touching memory when
// it does not match.
package slice

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/mem/view"
)

// Slice is a (count, View) pair. The view's element size is the stride and
// its address is the first element. The zero value is an empty slice with
// element size zero; use New or Empty to get a usable empty slice.
type Slice struct {
	count int
	view  view.View
}

// New describes count elements of elemSize bytes at the start of mem.
func New(count, elemSize int, mem []byte) (Slice, error) {
	if elemSize <= 0 {
		return Slice{}, fmt.Errorf("%w: %d", ErrElemSize, elemSize)
	}
	end, err := buf.CheckListBounds(len(mem), 0, count, elemSize)
	if err != nil {
		return Slice{}, fmt.Errorf("%w: %v", ErrBounds, err)
	}
	return Slice{count: count, view: view.New(mem[:end:end], elemSize)}, nil
}

// Empty returns a slice with no elements of the given element size.
func Empty(elemSize int) Slice {
	return Slice{view: view.Null(elemSize)}
}

// FromBytes treats b as len(b)/elemSize elements. len(b) must be a multiple
// of elemSize.
func FromBytes(b []byte, elemSize int) (Slice, error) {
	if elemSize <= 0 {
		return Slice{}, fmt.Errorf("%w: %d", ErrElemSize, elemSize)
	}
	if len(b)%elemSize != 0 {
		return Slice{}, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrBounds, len(b), elemSize)
	}
	return New(len(b)/elemSize, elemSize, b)
}

// FromCString returns a byte slice over b up to, not including, the first NUL.
// Without a NUL the whole of b is used.
func FromCString(b []byte) Slice {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s, _ := New(len(b), 1, b)
	return s
}

// Len returns the number of elements.
func (s Slice) Len() int { return s.count }

// IsEmpty reports whether the slice has no elements.
func (s Slice) IsEmpty() bool { return s.count == 0 }

// ElemSize returns the per-element stride in bytes.
func (s Slice) ElemSize() int { return s.view.ElemSize() }

// View returns the view of the first element, whose extent covers the whole
// slice. It is null for an empty slice.
func (s Slice) View() view.View { return s.view }

// Bytes returns the slice's memory. Writes through it modify the elements.
func (s Slice) Bytes() []byte {
	n := s.count * s.view.ElemSize()
	if n == 0 {
		return nil
	}
	return s.view.Extent()[:n:n]
}

func (s Slice) elem(i int) []byte {
	size := s.view.ElemSize()
	off := i * size
	return s.view.Extent()[off : off+size : off+size]
}

// Get returns a view of element i, or a null view when i is out of range.
func (s Slice) Get(i int) view.View {
	if i < 0 || i >= s.count {
		return view.Null(s.ElemSize())
	}
	size := s.view.ElemSize()
	return view.New(s.Bytes()[i*size:], size)
}

// At is the checked form of Get.
func (s Slice) At(i int) (view.View, error) {
	if i < 0 || i >= s.count {
		return view.Null(s.ElemSize()), fmt.Errorf("%w: index %d, len %d", ErrOutOfRange, i, s.count)
	}
	return s.Get(i), nil
}

// First returns element 0, or a null view when empty.
func (s Slice) First() view.View { return s.Get(0) }

// Last returns the final element, or a null view when empty.
func (s Slice) Last() view.View { return s.Get(s.count - 1) }

// Sub returns elements [from, to) as a new slice sharing memory with s.
func (s Slice) Sub(from, to int) (Slice, error) {
	if from < 0 || to < from || to > s.count {
		return Slice{}, fmt.Errorf("%w: [%d:%d] of %d", ErrOutOfRange, from, to, s.count)
	}
	size := s.ElemSize()
	if from == to {
		return Empty(size), nil
	}
	return New(to-from, size, s.Bytes()[from*size:to*size])
}

// All iterates over (index, element view) pairs.
func (s Slice) All() iter.Seq2[int, view.View] {
	return func(yield func(int, view.View) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, s.Get(i)) {
				return
			}
		}
	}
}
