package slice

import (
	"bytes"

	"github.com/joshuapare/memkit/mem/view"
)

// Compare orders a and b element by element, byte-wise, with a shorter
// prefix ordering first. Slices of different element sizes compare by their
// raw bytes.
func Compare(a, b Slice) int {
	return bytes.Compare(a.Bytes(), b.Bytes())
}

// Equal reports whether a and b have the same element size, count and bytes.
func Equal(a, b Slice) bool {
	return a.ElemSize() == b.ElemSize() && a.count == b.count && bytes.Equal(a.Bytes(), b.Bytes())
}

func (s Slice) matches(i int, v view.View) bool {
	return bytes.Equal(s.elem(i), v.Bytes())
}

func (s Slice) comparable(v view.View) bool {
	return !v.IsNull() && v.ElemSize() == s.ElemSize()
}

// FindFirst returns the index of the first element equal to v.
func (s Slice) FindFirst(v view.View) (int, bool) {
	if !s.comparable(v) {
		return 0, false
	}
	for i := 0; i < s.count; i++ {
		if s.matches(i, v) {
			return i, true
		}
	}
	return 0, false
}

// FindLast returns the index of the last element equal to v.
func (s Slice) FindLast(v view.View) (int, bool) {
	if !s.comparable(v) {
		return 0, false
	}
	for i := s.count - 1; i >= 0; i-- {
		if s.matches(i, v) {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether any element equals v.
func (s Slice) Contains(v view.View) bool {
	_, ok := s.FindFirst(v)
	return ok
}

// CountOf returns how many elements equal v.
func (s Slice) CountOf(v view.View) int {
	if !s.comparable(v) {
		return 0
	}
	n := 0
	for i := 0; i < s.count; i++ {
		if s.matches(i, v) {
			n++
		}
	}
	return n
}

// StartsWith reports whether s begins with the elements of prefix.
func (s Slice) StartsWith(prefix Slice) bool {
	if prefix.count == 0 {
		return true
	}
	if prefix.ElemSize() != s.ElemSize() || prefix.count > s.count {
		return false
	}
	return bytes.HasPrefix(s.Bytes(), prefix.Bytes())
}

// EndsWith reports whether s ends with the elements of suffix.
func (s Slice) EndsWith(suffix Slice) bool {
	if suffix.count == 0 {
		return true
	}
	if suffix.ElemSize() != s.ElemSize() || suffix.count > s.count {
		return false
	}
	return bytes.HasSuffix(s.Bytes(), suffix.Bytes())
}
