package vec

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/slice"
	"github.com/joshuapare/memkit/mem/view"
)

// MinCapacity is the smallest capacity a growing vector allocates.
const MinCapacity = 4

// Vector is a growable array of ElemSize-byte elements. storage describes the
// whole allocation (its Len is the capacity); only the first length elements
// are live.
type Vector struct {
	length  int
	storage slice.Slice

	// block is the allocation exactly as the allocator returned it.
	block []byte
	alloc alloc.Allocator
}

// New returns an empty vector with no backing allocation. A nil allocator
// selects alloc.Default().
func New(a alloc.Allocator, elemSize int) (*Vector, error) {
	if elemSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrElemSize, elemSize)
	}
	return &Vector{
		storage: slice.Empty(elemSize),
		alloc:   alloc.Or(a),
	}, nil
}

// WithCapacity returns an empty vector with room for n elements. A negative
// n is rejected with ErrCapacity.
func WithCapacity(a alloc.Allocator, elemSize, n int) (*Vector, error) {
	v, err := New(a, elemSize)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d elements", ErrCapacity, n)
	}
	if n > 0 {
		if err := v.setCap(n); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// FromSlice returns a vector holding a copy of s's elements.
func FromSlice(a alloc.Allocator, s slice.Slice) (*Vector, error) {
	v, err := WithCapacity(a, s.ElemSize(), s.Len())
	if err != nil {
		return nil, err
	}
	if err := v.Extend(s); err != nil {
		_ = v.Free()
		return nil, err
	}
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector) Len() int { return v.length }

// Cap returns the number of elements the current allocation can hold.
func (v *Vector) Cap() int { return v.storage.Len() }

// ElemSize returns the element size in bytes.
func (v *Vector) ElemSize() int { return v.storage.ElemSize() }

// IsEmpty reports whether the vector has no live elements.
func (v *Vector) IsEmpty() bool { return v.length == 0 }

// Allocator returns the allocator backing the vector.
func (v *Vector) Allocator() alloc.Allocator { return v.alloc }

// Storage describes the whole allocation, live or not.
func (v *Vector) Storage() slice.Slice { return v.storage }

// Slice returns the live elements.
func (v *Vector) Slice() slice.Slice {
	s, _ := v.storage.Sub(0, v.length)
	return s
}

// Get returns a view of element i, or a null view when i is out of range.
func (v *Vector) Get(i int) view.View {
	if i < 0 || i >= v.length {
		return view.Null(v.ElemSize())
	}
	return v.storage.Get(i)
}

// At is the checked form of Get.
func (v *Vector) At(i int) (view.View, error) {
	if i < 0 || i >= v.length {
		return view.Null(v.ElemSize()), fmt.Errorf("%w: index %d, len %d", ErrOutOfRange, i, v.length)
	}
	return v.storage.Get(i), nil
}

// First returns element 0, or a null view when empty.
func (v *Vector) First() view.View { return v.Get(0) }

// Last returns the final live element, or a null view when empty.
func (v *Vector) Last() view.View { return v.Get(v.length - 1) }

// setCap moves the allocation to exactly n elements. On failure nothing changes.
func (v *Vector) setCap(n int) error {
	size := v.ElemSize()
	nbytes, err := buf.SpanBytes(n, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCapacity, err)
	}

	block := v.block
	switch {
	case nbytes == 0:
		err = v.alloc.Free(&block)
	case block == nil:
		block, err = v.alloc.Alloc(nbytes)
	default:
		err = v.alloc.Realloc(&block, nbytes)
	}
	if err != nil {
		return fmt.Errorf("vec: resize storage to %d elements: %w", n, err)
	}

	v.block = block
	if nbytes == 0 {
		v.storage = slice.Empty(size)
		return nil
	}
	v.storage, _ = slice.New(n, size, block)
	return nil
}

// grow ensures room for required elements using the doubling policy.
func (v *Vector) grow(required int) error {
	if required <= v.Cap() {
		return nil
	}
	return v.setCap(buf.Grow(v.Cap(), required, MinCapacity))
}

// aliases reports whether b lies inside the vector's allocation.
func (v *Vector) aliases(b []byte) bool {
	if len(b) == 0 || len(v.block) == 0 {
		return false
	}
	lo := alloc.Addr(v.block)
	hi := lo + uintptr(len(v.block))
	p := alloc.Addr(b)
	return p >= lo && p < hi
}

// stable returns b, copied out first when a reallocation could pull it from
// under us.
func (v *Vector) stable(b []byte) []byte {
	if v.aliases(b) {
		return append([]byte(nil), b...)
	}
	return b
}

func (v *Vector) checkValue(x view.View) error {
	if x.IsNull() || x.ElemSize() != v.ElemSize() {
		return fmt.Errorf("%w: value %d, vector %d", ErrElemSizeMismatch, x.ElemSize(), v.ElemSize())
	}
	return nil
}

// slot returns the bytes of element i of the allocation.
func (v *Vector) slot(i int) []byte {
	return v.storage.Get(i).Bytes()
}

// Push appends a copy of x.
func (v *Vector) Push(x view.View) error {
	if err := v.checkValue(x); err != nil {
		return err
	}
	src := v.stable(x.Bytes())
	if err := v.grow(v.length + 1); err != nil {
		return err
	}
	copy(v.slot(v.length), src)
	v.length++
	return nil
}

// Pop removes the last element and returns a view of the slot it occupied.
// The view is valid until the next call that writes to the vector.
func (v *Vector) Pop() (view.View, bool) {
	if v.length == 0 {
		return view.Null(v.ElemSize()), false
	}
	v.length--
	return v.storage.Get(v.length), true
}

// Set overwrites element i with x.
func (v *Vector) Set(i int, x view.View) error {
	if err := v.checkValue(x); err != nil {
		return err
	}
	if i < 0 || i >= v.length {
		return fmt.Errorf("%w: index %d, len %d", ErrOutOfRange, i, v.length)
	}
	copy(v.slot(i), x.Bytes())
	return nil
}

// Insert places a copy of x at index i, shifting later elements up by one.
// i may equal Len.
func (v *Vector) Insert(x view.View, i int) error {
	if err := v.checkValue(x); err != nil {
		return err
	}
	if i < 0 || i > v.length {
		return fmt.Errorf("%w: insert at %d, len %d", ErrOutOfRange, i, v.length)
	}
	src := v.stable(x.Bytes())
	if err := v.grow(v.length + 1); err != nil {
		return err
	}
	size := v.ElemSize()
	b := v.storage.Bytes()
	copy(b[(i+1)*size:(v.length+1)*size], b[i*size:v.length*size])
	copy(v.slot(i), src)
	v.length++
	return nil
}

// Remove deletes element i, shifting later elements down by one.
func (v *Vector) Remove(i int) error {
	if i < 0 || i >= v.length {
		return fmt.Errorf("%w: remove at %d, len %d", ErrOutOfRange, i, v.length)
	}
	size := v.ElemSize()
	b := v.storage.Bytes()
	copy(b[i*size:], b[(i+1)*size:v.length*size])
	v.length--
	return nil
}

// SwapRemove deletes element i by moving the last element into its place.
// Order is not preserved.
func (v *Vector) SwapRemove(i int) error {
	if i < 0 || i >= v.length {
		return fmt.Errorf("%w: remove at %d, len %d", ErrOutOfRange, i, v.length)
	}
	last := v.length - 1
	if i != last {
		copy(v.slot(i), v.slot(last))
	}
	v.length--
	return nil
}

// Resize sets the live length to n. Growing past capacity reallocates to
// exactly n; every newly exposed element is zeroed. Shrinking keeps capacity.
func (v *Vector) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: resize to %d", ErrOutOfRange, n)
	}
	if n > v.Cap() {
		if err := v.setCap(n); err != nil {
			return err
		}
	}
	if n > v.length {
		size := v.ElemSize()
		clear(v.storage.Bytes()[v.length*size : n*size])
	}
	v.length = n
	return nil
}

// Reserve grows capacity to exactly n without changing Len. Asking for less
// than the current capacity is an error; asking for the same is a no-op.
func (v *Vector) Reserve(n int) error {
	if n < v.Cap() {
		return fmt.Errorf("%w: %d < %d", ErrShrinkingReserve, n, v.Cap())
	}
	if n == v.Cap() {
		return nil
	}
	return v.setCap(n)
}

// Shrink releases unused capacity so that Cap equals Len.
func (v *Vector) Shrink() error {
	if v.Cap() == v.length {
		return nil
	}
	return v.setCap(v.length)
}

// Extend appends copies of every element of s.
func (v *Vector) Extend(s slice.Slice) error {
	if s.IsEmpty() {
		return nil
	}
	if s.ElemSize() != v.ElemSize() {
		return fmt.Errorf("%w: slice %d, vector %d", ErrElemSizeMismatch, s.ElemSize(), v.ElemSize())
	}
	src := v.stable(s.Bytes())
	if err := v.grow(v.length + s.Len()); err != nil {
		return err
	}
	size := v.ElemSize()
	copy(v.storage.Bytes()[v.length*size:], src)
	v.length += s.Len()
	return nil
}

// Clear drops every element but keeps the allocation.
func (v *Vector) Clear() {
	v.length = 0
}

// Free releases the allocation. The vector is left empty and may be reused.
func (v *Vector) Free() error {
	if v.block == nil {
		v.length = 0
		return nil
	}
	if err := v.alloc.Free(&v.block); err != nil {
		return fmt.Errorf("vec: free storage: %w", err)
	}
	v.length = 0
	v.block = nil
	v.storage = slice.Empty(v.ElemSize())
	return nil
}
