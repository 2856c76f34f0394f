package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Bounds(t *testing.T) {
	mem := []byte{1, 2, 3, 4, 5}

	v := New(mem, 4)
	require.False(t, v.IsNull())
	require.Equal(t, 4, v.ElemSize())
	require.Equal(t, []byte{1, 2, 3, 4}, v.Bytes())
	require.Len(t, v.Extent(), 5)

	short := New(mem, 6)
	require.True(t, short.IsNull())
	require.Equal(t, 6, short.ElemSize())
	require.Nil(t, short.Bytes())

	require.True(t, New(mem, -1).IsNull())
}

func TestBytes_CappedAgainstAppend(t *testing.T) {
	mem := []byte{1, 2, 3, 4}
	v := New(mem, 2)
	b := append(v.Bytes(), 9)
	require.Equal(t, []byte{1, 2, 9}, b)
	require.Equal(t, []byte{1, 2, 3, 4}, mem, "append must not clobber the neighbour")
}

func TestEqual(t *testing.T) {
	a := New([]byte{1, 2}, 2)
	b := New([]byte{1, 2, 3}, 2)
	c := New([]byte{1, 3}, 2)

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, New([]byte{1, 2}, 1)))
	assert.True(t, Equal(Null(2), Null(2)))
	assert.False(t, Equal(a, Null(2)))
}

func TestCopyTo(t *testing.T) {
	src := New([]byte{7, 8}, 2)
	dstMem := []byte{0, 0, 0}
	require.True(t, src.CopyTo(New(dstMem, 2)))
	require.Equal(t, []byte{7, 8, 0}, dstMem)

	require.False(t, src.CopyTo(New(dstMem, 3)))
	require.False(t, Null(2).CopyTo(New(dstMem, 2)))
}

func TestPointer(t *testing.T) {
	mem := []byte{1}
	require.NotNil(t, New(mem, 1).Pointer())
	require.Nil(t, Null(4).Pointer())
	require.Nil(t, New(mem, 0).Pointer())
}

func TestTypedRoundTrip(t *testing.T) {
	type pair struct {
		A uint32
		B int16
	}
	x := pair{A: 0xdeadbeef, B: -3}
	v := Of(&x)
	require.Equal(t, SizeOf[pair](), v.ElemSize())

	got, ok := Load[pair](v)
	require.True(t, ok)
	require.Equal(t, x, got)

	// Writes through the view land in x.
	require.True(t, Store(v, pair{A: 1, B: 2}))
	require.Equal(t, pair{A: 1, B: 2}, x)

	_, ok = Load[uint32](v)
	require.False(t, ok, "size mismatch")
	_, ok = Load[[3]byte](v)
	require.False(t, ok, "size mismatch")
	require.False(t, Store(Null(8), uint64(1)))

	var np *uint32
	require.True(t, Of(np).IsNull())
	require.Equal(t, 4, Of(np).ElemSize())
}
