package vec

import (
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/view"
)

// Of is a typed facade over a Vector whose elements are T values. T must be
// plain data (see view.Of).
type Of[T any] struct {
	v *Vector
}

// NewOf returns an empty typed vector.
func NewOf[T any](a alloc.Allocator) (*Of[T], error) {
	v, err := New(a, view.SizeOf[T]())
	if err != nil {
		return nil, err
	}
	return &Of[T]{v: v}, nil
}

// Vector returns the untyped vector underneath.
func (o *Of[T]) Vector() *Vector { return o.v }

// Len returns the number of live elements.
func (o *Of[T]) Len() int { return o.v.Len() }

// Cap returns the number of elements storage can hold without growing.
func (o *Of[T]) Cap() int { return o.v.Cap() }

// Push appends x, growing storage when full.
func (o *Of[T]) Push(x T) error { return o.v.Push(view.Of(&x)) }

// Pop removes and returns the last element. It reports false when the
// vector is empty.
func (o *Of[T]) Pop() (T, bool) {
	x, ok := o.v.Pop()
	if !ok {
		var zero T
		return zero, false
	}
	return view.Load[T](x)
}

// Get returns element i, or false when i is out of range.
func (o *Of[T]) Get(i int) (T, bool) { return view.Load[T](o.v.Get(i)) }

// Set overwrites element i with x.
func (o *Of[T]) Set(i int, x T) error { return o.v.Set(i, view.Of(&x)) }

// Insert places x at index i, shifting later elements up. i may equal Len.
func (o *Of[T]) Insert(x T, i int) error { return o.v.Insert(view.Of(&x), i) }

// Remove deletes element i, shifting later elements down.
func (o *Of[T]) Remove(i int) error { return o.v.Remove(i) }

// Reserve grows capacity to exactly n elements. See Vector.Reserve.
func (o *Of[T]) Reserve(n int) error { return o.v.Reserve(n) }

// Values copies the live elements out.
func (o *Of[T]) Values() []T {
	out := make([]T, o.v.Len())
	for i := range out {
		out[i], _ = view.Load[T](o.v.Get(i))
	}
	return out
}

// Free returns storage to the allocator. The vector is empty afterwards.
func (o *Of[T]) Free() error { return o.v.Free() }
