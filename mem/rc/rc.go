// Package rc implements Rc, a reference-counted box: several owners alias one
// heap value and the last owner to free it releases it.
//
// The count is a plain read-modify-write on ordinary memory. Rc is not safe
// for concurrent use: two goroutines sharing or freeing instances of the same
// origin race on the count, which can free the value early or leak it. Guard
// every instance derived from one origin with a single mutex when it must
// cross goroutines.
package rc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/heap"
	"github.com/joshuapare/memkit/mem/view"
)

var (
	// ErrDoubleFree indicates Free on an instance that was already freed.
	ErrDoubleFree = errors.New("rc: instance already freed")

	// ErrReleased indicates Share on an instance that was already freed.
	ErrReleased = errors.New("rc: instance released")
)

// state is shared by every instance derived from one New call. The count
// lives in its own heap box, allocated from the same allocator as the data.
type state struct {
	count *heap.Box // uint64
	data  *heap.Box
}

func (s *state) load() uint64 {
	n, _ := view.Load[uint64](s.count.View())
	return n
}

func (s *state) store(n uint64) {
	view.Store(s.count.View(), n)
}

// Rc is one owning instance.
type Rc struct {
	st       *state
	released bool
}

// New boxes a copy of v with a count of one.
func New(a alloc.Allocator, v view.View) (*Rc, error) {
	data, err := heap.New(a, v)
	if err != nil {
		return nil, fmt.Errorf("rc: box value: %w", err)
	}
	count, err := heap.NewValue(a, uint64(1))
	if err != nil {
		_ = data.Free()
		return nil, fmt.Errorf("rc: box count: %w", err)
	}
	return &Rc{st: &state{count: count, data: data}}, nil
}

// NewValue boxes a copy of x. T must be plain data (see view.Of).
func NewValue[T any](a alloc.Allocator, x T) (*Rc, error) {
	return New(a, view.Of(&x))
}

// Share returns a new instance aliasing the same value and bumps the count.
func (r *Rc) Share() (*Rc, error) {
	if r.released {
		return nil, ErrReleased
	}
	r.st.store(r.st.load() + 1)
	return &Rc{st: r.st}, nil
}

// Get returns a view of the shared value. Ownership is not transferred; do
// not free through it. A freed instance returns a null view.
func (r *Rc) Get() view.View {
	if r.released {
		return view.Null(r.st.data.ElemSize())
	}
	return r.st.data.View()
}

// Count returns the number of live instances sharing the value, or zero once
// the value has been released.
func (r *Rc) Count() int {
	if r.st.count.Freed() {
		return 0
	}
	return int(r.st.load())
}

// Released reports whether this instance has been freed.
func (r *Rc) Released() bool { return r.released }

// Free drops this instance. When it was the last one the value is freed,
// then the count. released reports whether that happened. If the allocator
// fails, the instance stays live and Free may be called again; a value that
// was already freed is not freed twice.
func (r *Rc) Free() (released bool, err error) {
	if r.released {
		return false, ErrDoubleFree
	}

	n := r.st.load() - 1
	if n > 0 {
		r.st.store(n)
		r.released = true
		return false, nil
	}
	if !r.st.data.Freed() {
		if err := r.st.data.Free(); err != nil {
			return false, fmt.Errorf("rc: free value: %w", err)
		}
	}
	if err := r.st.count.Free(); err != nil {
		return false, fmt.Errorf("rc: free count: %w", err)
	}
	r.released = true
	return true, nil
}
