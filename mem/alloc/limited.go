package alloc

import "fmt"

// Limited enforces a byte budget on top of another allocator. Sizes are
// accounted by block length as seen by the caller.
type Limited struct {
	inner  Allocator
	budget int
	used   int
}

// NewLimited wraps inner (nil means the default allocator) with a budget in bytes.
func NewLimited(inner Allocator, budget int) *Limited {
	return &Limited{inner: Or(inner), budget: budget}
}

// Used returns the bytes currently charged against the budget.
func (l *Limited) Used() int { return l.used }

// Budget returns the configured budget.
func (l *Limited) Budget() int { return l.budget }

// SetBudget replaces the budget. Blocks already handed out stay valid even if
// they now exceed it.
func (l *Limited) SetBudget(n int) { l.budget = n }

func (l *Limited) charge(delta int) error {
	if delta > 0 && l.used+delta > l.budget {
		return fmt.Errorf("%w: budget %d, used %d, requested %d more",
			ErrOutOfMemory, l.budget, l.used, delta)
	}
	return nil
}

func (l *Limited) Alloc(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if err := l.charge(size); err != nil {
		return nil, err
	}
	b, err := l.inner.Alloc(size)
	if err != nil {
		return nil, err
	}
	l.used += len(b)
	return b, nil
}

func (l *Limited) AllocZeroed(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if err := l.charge(size); err != nil {
		return nil, err
	}
	b, err := l.inner.AllocZeroed(size)
	if err != nil {
		return nil, err
	}
	l.used += len(b)
	return b, nil
}

func (l *Limited) Realloc(block *[]byte, newSize int) error {
	if block == nil {
		return ErrNilBlock
	}
	if err := checkSize(newSize); err != nil {
		return err
	}
	oldSize := len(*block)
	if err := l.charge(newSize - oldSize); err != nil {
		return err
	}
	if err := l.inner.Realloc(block, newSize); err != nil {
		return err
	}
	l.used += len(*block) - oldSize
	return nil
}

func (l *Limited) Free(block *[]byte) error {
	if block == nil {
		return ErrNilBlock
	}
	size := len(*block)
	if err := l.inner.Free(block); err != nil {
		return err
	}
	l.used -= size
	return nil
}
