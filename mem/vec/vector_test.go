package vec

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/testutil"
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/slice"
	"github.com/joshuapare/memkit/mem/view"
)

func u32(v uint32) view.View { return view.Of(&v) }

func load(t testing.TB, v view.View) uint32 {
	t.Helper()
	x, ok := view.Load[uint32](v)
	require.True(t, ok, "expected a 4-byte view")
	return x
}

func contents(t testing.TB, v *Vector) []uint32 {
	t.Helper()
	out := make([]uint32, v.Len())
	for i := range out {
		out[i] = load(t, v.Get(i))
	}
	return out
}

func pushAll(t testing.TB, v *Vector, vals ...uint32) {
	t.Helper()
	for _, x := range vals {
		require.NoError(t, v.Push(u32(x)))
	}
}

func TestNew_RejectsBadElemSize(t *testing.T) {
	_, err := New(nil, 0)
	require.ErrorIs(t, err, ErrElemSize)
	_, err = WithCapacity(nil, -4, 3)
	require.ErrorIs(t, err, ErrElemSize)
}

func TestWithCapacity_RejectsNegative(t *testing.T) {
	_, err := WithCapacity(nil, 4, -1)
	require.ErrorIs(t, err, ErrCapacity)

	v, err := WithCapacity(nil, 4, 0)
	require.NoError(t, err)
	require.Zero(t, v.Cap())
}

func TestNew_Empty(t *testing.T) {
	v, err := New(nil, 4)
	require.NoError(t, err)
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())
	require.True(t, v.IsEmpty())
	require.Same(t, alloc.Default(), v.Allocator())
	require.True(t, v.First().IsNull())
	require.True(t, v.Last().IsNull())
	_, ok := v.Pop()
	require.False(t, ok)
}

// Push five 4-byte values, pop one, insert at 1.
func TestScenario_PushPopInsert(t *testing.T) {
	v, err := New(nil, 4)
	require.NoError(t, err)
	pushAll(t, v, 1, 2, 3, 4, 5)

	require.Equal(t, 5, v.Len())
	require.Equal(t, uint32(1), load(t, v.Get(0)))
	require.Equal(t, uint32(5), load(t, v.Get(4)))

	popped, ok := v.Pop()
	require.True(t, ok)
	require.Equal(t, uint32(5), load(t, popped))
	require.Equal(t, 4, v.Len())

	require.NoError(t, v.Insert(u32(99), 1))
	require.Equal(t, []uint32{1, 99, 2, 3, 4}, contents(t, v))
}

func TestGrowthPolicy(t *testing.T) {
	v, err := New(nil, 4)
	require.NoError(t, err)

	var caps []int
	for i := 0; i < 17; i++ {
		require.NoError(t, v.Push(u32(uint32(i))))
		caps = append(caps, v.Cap())
	}
	require.Equal(t, []int{4, 4, 4, 4, 8, 8, 8, 8, 16, 16, 16, 16, 16, 16, 16, 16, 32}, caps)
}

func TestPushPop_StackOrder(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 20; round++ {
		v, err := New(nil, 4)
		require.NoError(t, err)

		var model []uint32
		pushes, pops := 0, 0
		for step := 0; step < 200; step++ {
			if r.IntN(3) > 0 || len(model) == 0 {
				x := r.Uint32()
				require.NoError(t, v.Push(u32(x)))
				model = append(model, x)
				pushes++
				continue
			}
			got, ok := v.Pop()
			require.True(t, ok)
			require.Equal(t, model[len(model)-1], load(t, got))
			model = model[:len(model)-1]
			pops++
		}
		require.Equal(t, pushes-pops, v.Len())
		require.Equal(t, model, contents(t, v))
		require.NoError(t, v.Free())
	}
}

func TestReserve(t *testing.T) {
	tr := alloc.NewTracking(nil, 0)
	v, err := New(tr, 4)
	require.NoError(t, err)

	require.NoError(t, v.Reserve(100))
	require.Equal(t, 100, v.Cap())
	before := tr.Stats()

	for i := 0; i < 100; i++ {
		require.NoError(t, v.Push(u32(uint32(i))))
	}
	after := tr.Stats()
	require.Equal(t, before.Allocs, after.Allocs, "no allocation while within reserve")
	require.Equal(t, before.Reallocs, after.Reallocs, "no reallocation while within reserve")
	require.Equal(t, 100, v.Cap())

	err = v.Reserve(50)
	require.ErrorIs(t, err, ErrShrinkingReserve)
	require.Equal(t, 100, v.Cap())

	require.NoError(t, v.Reserve(100))
	require.NoError(t, v.Free())
	require.Zero(t, tr.Stats().LiveBlocks)
}

func TestShrink(t *testing.T) {
	v, err := WithCapacity(nil, 4, 16)
	require.NoError(t, err)
	pushAll(t, v, 1, 2, 3, 4, 5, 6)
	require.NoError(t, v.Remove(0))
	require.NoError(t, v.Remove(0))
	before := v.Storage().View().Pointer()

	require.NoError(t, v.Shrink())
	require.Equal(t, v.Len(), v.Cap())
	require.NotEqual(t, before, v.Storage().View().Pointer(), "shrinking should move to a smaller block")
	require.Equal(t, []uint32{3, 4, 5, 6}, contents(t, v))

	v.Clear()
	require.NoError(t, v.Shrink())
	require.Zero(t, v.Cap())
}

func TestInsertRemove(t *testing.T) {
	v, err := New(nil, 4)
	require.NoError(t, err)

	require.NoError(t, v.Insert(u32(2), 0))
	require.NoError(t, v.Insert(u32(0), 0))
	require.NoError(t, v.Insert(u32(3), 2))
	require.NoError(t, v.Insert(u32(1), 1))
	require.Equal(t, []uint32{0, 1, 2, 3}, contents(t, v))

	require.ErrorIs(t, v.Insert(u32(9), 5), ErrOutOfRange)
	require.ErrorIs(t, v.Remove(4), ErrOutOfRange)

	require.NoError(t, v.Remove(3))
	require.NoError(t, v.Remove(1))
	require.Equal(t, []uint32{0, 2}, contents(t, v))

	pushAll(t, v, 7, 8)
	require.NoError(t, v.SwapRemove(0))
	require.Equal(t, []uint32{8, 2, 7}, contents(t, v))
	require.ErrorIs(t, v.SwapRemove(3), ErrOutOfRange)
}

func TestSetAndAt(t *testing.T) {
	v, err := New(nil, 4)
	require.NoError(t, err)
	pushAll(t, v, 1, 2)

	require.NoError(t, v.Set(1, u32(20)))
	require.Equal(t, []uint32{1, 20}, contents(t, v))
	require.ErrorIs(t, v.Set(2, u32(0)), ErrOutOfRange)

	_, err = v.At(2)
	require.ErrorIs(t, err, ErrOutOfRange)
	x, err := v.At(0)
	require.NoError(t, err)
	require.Equal(t, uint32(1), load(t, x))

	// Slots past Len are not reachable through Get.
	require.True(t, v.Get(2).IsNull())
}

func TestElemSizeMismatch(t *testing.T) {
	v, err := New(nil, 4)
	require.NoError(t, err)
	b := byte(1)

	require.ErrorIs(t, v.Push(view.Of(&b)), ErrElemSizeMismatch)
	require.ErrorIs(t, v.Insert(view.Null(4), 0), ErrElemSizeMismatch)

	s, err := slice.FromBytes([]byte{1, 2}, 1)
	require.NoError(t, err)
	require.ErrorIs(t, v.Extend(s), ErrElemSizeMismatch)
	require.Zero(t, v.Len())
}

func TestResize(t *testing.T) {
	v, err := New(nil, 4)
	require.NoError(t, err)
	pushAll(t, v, 1, 2, 3, 4)

	// Dirty the tail, then shrink and regrow: exposed slots read as zero.
	require.NoError(t, v.Resize(2))
	require.Equal(t, 4, v.Cap())
	require.NoError(t, v.Resize(3))
	require.Equal(t, []uint32{1, 2, 0}, contents(t, v))

	require.NoError(t, v.Resize(10))
	require.Equal(t, 10, v.Cap())
	require.Equal(t, []uint32{1, 2, 0, 0, 0, 0, 0, 0, 0, 0}, contents(t, v))

	require.ErrorIs(t, v.Resize(-1), ErrOutOfRange)
	require.NoError(t, v.Resize(0))
	require.True(t, v.IsEmpty())
}

func TestExtend(t *testing.T) {
	src, err := New(nil, 4)
	require.NoError(t, err)
	pushAll(t, src, 5, 6, 7)

	dst, err := New(nil, 4)
	require.NoError(t, err)
	pushAll(t, dst, 1)
	require.NoError(t, dst.Extend(src.Slice()))
	require.Equal(t, []uint32{1, 5, 6, 7}, contents(t, dst))

	// Self-extension reallocates while reading from the old block.
	require.NoError(t, dst.Extend(dst.Slice()))
	require.Equal(t, []uint32{1, 5, 6, 7, 1, 5, 6, 7}, contents(t, dst))

	require.NoError(t, dst.Extend(slice.Empty(4)))
	require.Equal(t, 8, dst.Len())
}

func TestPush_SelfAliasAcrossGrowth(t *testing.T) {
	v, err := New(alloc.NewMmap(), 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = v.Free() })

	pushAll(t, v, 1, 2, 3, 4)
	require.Equal(t, v.Len(), v.Cap())

	// The pushed value lives in the block that the push reallocates.
	require.NoError(t, v.Push(v.Get(0)))
	require.Equal(t, []uint32{1, 2, 3, 4, 1}, contents(t, v))
	require.NoError(t, v.Insert(v.Get(4), 0))
	require.Equal(t, uint32(1), load(t, v.First()))
}

func TestFromSlice(t *testing.T) {
	mem := []byte{1, 0, 2, 0, 3, 0}
	s, err := slice.FromBytes(mem, 2)
	require.NoError(t, err)

	v, err := FromSlice(nil, s)
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())
	require.Equal(t, 3, v.Cap())

	// It is a copy.
	mem[0] = 9
	require.Equal(t, []byte{1, 0}, v.First().Bytes())
}

func TestAllocationFailure_LeavesVectorIntact(t *testing.T) {
	lim := alloc.NewLimited(nil, 16)
	v, err := New(lim, 4)
	require.NoError(t, err)
	pushAll(t, v, 1, 2, 3, 4)
	require.Equal(t, 4, v.Cap())

	err = v.Push(u32(5))
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, 4, v.Cap())
	assert.Equal(t, []uint32{1, 2, 3, 4}, contents(t, v))

	require.ErrorIs(t, v.Insert(u32(0), 0), alloc.ErrOutOfMemory)
	require.ErrorIs(t, v.Reserve(5), alloc.ErrOutOfMemory)
	require.ErrorIs(t, v.Resize(5), alloc.ErrOutOfMemory)
	assert.Equal(t, []uint32{1, 2, 3, 4}, contents(t, v))

	lim.SetBudget(64)
	require.NoError(t, v.Push(u32(5)))
	assert.Equal(t, []uint32{1, 2, 3, 4, 5}, contents(t, v))
}

func TestFree(t *testing.T) {
	tr := testutil.NewTracker(t)
	v, err := WithCapacity(tr, 8, 3)
	require.NoError(t, err)
	require.Equal(t, 1, tr.Stats().LiveBlocks)

	require.NoError(t, v.Free())
	require.Zero(t, tr.Stats().LiveBlocks)
	require.Zero(t, v.Cap())
	require.Equal(t, 8, v.ElemSize())

	// Freeing again is a no-op, and the vector is reusable.
	require.NoError(t, v.Free())
	var x uint64 = 42
	require.NoError(t, v.Push(view.Of(&x)))
	require.NoError(t, v.Free())
	require.Zero(t, tr.Stats().Violations)
	require.Zero(t, tr.Stats().LiveBlocks)
}

func TestWorksWithDescriptor(t *testing.T) {
	type owner struct{ calls int }
	o := &owner{}
	d := &alloc.Descriptor{
		Owner: o,
		AllocFn: func(own any, size int) ([]byte, error) {
			own.(*owner).calls++
			return make([]byte, size), nil
		},
	}

	v, err := New(d, 4)
	require.NoError(t, err)
	pushAll(t, v, 1, 2, 3, 4, 5)
	require.Equal(t, []uint32{1, 2, 3, 4, 5}, contents(t, v))
	require.Equal(t, 2, o.calls, "one alloc, one realloc through the fallback")
	require.NoError(t, v.Free())
}
