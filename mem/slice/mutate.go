package slice

import (
	"fmt"

	"github.com/joshuapare/memkit/mem/view"
)

// Fill overwrites every element with v.
func (s Slice) Fill(v view.View) error {
	return s.FillRange(v, 0, s.count)
}

// FillRange overwrites elements [from, to) with v.
func (s Slice) FillRange(v view.View, from, to int) error {
	if v.IsNull() || v.ElemSize() != s.ElemSize() {
		return fmt.Errorf("%w: value %d, slice %d", ErrElemSizeMismatch, v.ElemSize(), s.ElemSize())
	}
	if from < 0 || to < from || to > s.count {
		return fmt.Errorf("%w: [%d:%d] of %d", ErrOutOfRange, from, to, s.count)
	}
	src := v.Bytes()
	for i := from; i < to; i++ {
		copy(s.elem(i), src)
	}
	return nil
}

func swapBytes(a, b []byte) {
	for k := range a {
		a[k], b[k] = b[k], a[k]
	}
}

// Swap exchanges elements i and j.
func (s Slice) Swap(i, j int) error {
	if i < 0 || i >= s.count || j < 0 || j >= s.count {
		return fmt.Errorf("%w: swap %d,%d of %d", ErrOutOfRange, i, j, s.count)
	}
	if i != j {
		swapBytes(s.elem(i), s.elem(j))
	}
	return nil
}

func (s Slice) reverseRange(lo, hi int) {
	for hi--; lo < hi; lo, hi = lo+1, hi-1 {
		swapBytes(s.elem(lo), s.elem(hi))
	}
}

// Reverse reverses the element order in place.
func (s Slice) Reverse() {
	s.reverseRange(0, s.count)
}

// ShiftLeft rotates elements n places towards index 0; the first n wrap
// around to the end. n is taken modulo Len.
func (s Slice) ShiftLeft(n int) {
	if s.count == 0 {
		return
	}
	n %= s.count
	if n < 0 {
		n += s.count
	}
	if n == 0 {
		return
	}
	s.reverseRange(0, n)
	s.reverseRange(n, s.count)
	s.reverseRange(0, s.count)
}

// ShiftRight rotates elements n places towards the end; the last n wrap
// around to the front. n is taken modulo Len.
func (s Slice) ShiftRight(n int) {
	if s.count == 0 {
		return
	}
	s.ShiftLeft(s.count - n%s.count)
}

// CopyFrom copies src into s. Both must span the same number of bytes;
// overlapping memory is handled.
func (s Slice) CopyFrom(src Slice) error {
	dst := s.Bytes()
	from := src.Bytes()
	if len(dst) != len(from) {
		return fmt.Errorf("%w: dst %d bytes, src %d bytes", ErrLengthMismatch, len(dst), len(from))
	}
	copy(dst, from)
	return nil
}

// SwapWith exchanges the contents of s and other. Both must span the same
// number of bytes. Swapping a slice with itself leaves it unchanged; the
// result for partially overlapping slices is unspecified.
func (s Slice) SwapWith(other Slice) error {
	a := s.Bytes()
	b := other.Bytes()
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d bytes vs %d bytes", ErrLengthMismatch, len(a), len(b))
	}
	swapBytes(a, b)
	return nil
}
