package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem/alloc"
)

type recorder struct {
	errors []string
	logs   int
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Logf(string, ...any) { r.logs++ }

func TestNewTracker_Balanced(t *testing.T) {
	a := NewTracker(t)

	b, err := a.Alloc(32)
	require.NoError(t, err)
	require.NoError(t, a.Free(&b))

	assert.Equal(t, 0, a.Stats().LiveBlocks)
}

func TestAssertNoLeaks(t *testing.T) {
	tr := alloc.NewTracking(alloc.Default(), HistoryCap)
	b, err := tr.Alloc(16)
	require.NoError(t, err)

	r := &recorder{}
	AssertNoLeaks(r, tr)
	require.Len(t, r.errors, 1)
	assert.Equal(t, "leaked 1 blocks (16 bytes)", r.errors[0])
	assert.Equal(t, 1, r.logs)

	stale := b
	require.NoError(t, tr.Free(&b))
	assert.ErrorIs(t, tr.Free(&stale), alloc.ErrDoubleFree)

	r = &recorder{}
	AssertNoLeaks(r, tr)
	assert.Equal(t, []string{"1 rejected frees"}, r.errors)
}
