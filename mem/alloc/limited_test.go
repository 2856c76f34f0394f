package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimited_Budget(t *testing.T) {
	l := NewLimited(nil, 16)

	a, err := l.Alloc(10)
	require.NoError(t, err)
	require.Equal(t, 10, l.Used())

	_, err = l.Alloc(7)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, 10, l.Used())

	require.NoError(t, l.Free(&a))
	require.Zero(t, l.Used())

	b, err := l.AllocZeroed(16)
	require.NoError(t, err)
	require.Equal(t, 16, l.Used())
	require.NoError(t, l.Free(&b))
}

func TestLimited_ReallocFailureKeepsBlock(t *testing.T) {
	l := NewLimited(nil, 8)
	b, err := l.Alloc(8)
	require.NoError(t, err)
	copy(b, "12345678")

	err = l.Realloc(&b, 9)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, "12345678", string(b))
	require.Equal(t, 8, l.Used())

	require.NoError(t, l.Realloc(&b, 4))
	require.Equal(t, 4, l.Used())

	l.SetBudget(100)
	require.Equal(t, 100, l.Budget())
	require.NoError(t, l.Realloc(&b, 50))
	require.Equal(t, 50, l.Used())
}
