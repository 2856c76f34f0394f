// Package stack provides a LIFO stack over vec.Vector.
package stack

import (
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/vec"
	"github.com/joshuapare/memkit/mem/view"
)

// Stack keeps its top at buffer[Len()-1].
type Stack struct {
	buffer *vec.Vector
}

// New returns an empty stack of elemSize-byte elements.
func New(a alloc.Allocator, elemSize int) (*Stack, error) {
	v, err := vec.New(a, elemSize)
	if err != nil {
		return nil, err
	}
	return &Stack{buffer: v}, nil
}

// Push copies x onto the top.
func (s *Stack) Push(x view.View) error { return s.buffer.Push(x) }

// Pop removes the top element and returns a view of its former slot, valid
// until the next Push.
func (s *Stack) Pop() (view.View, bool) { return s.buffer.Pop() }

// Top returns the top element without removing it, or a null view when empty.
func (s *Stack) Top() view.View { return s.buffer.Last() }

// Clear removes every element but keeps the allocation.
func (s *Stack) Clear() { s.buffer.Clear() }

func (s *Stack) Len() int { return s.buffer.Len() }

func (s *Stack) IsEmpty() bool { return s.buffer.IsEmpty() }

// Vector exposes the underlying buffer, bottom first.
func (s *Stack) Vector() *vec.Vector { return s.buffer }

// Free releases the allocation.
func (s *Stack) Free() error { return s.buffer.Free() }
