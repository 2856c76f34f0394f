package str

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/testutil"
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/slice"
)

func TestAppend(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	require.Zero(t, s.Len())

	require.NoError(t, s.Append("héllo"))
	require.NoError(t, s.AppendRune(' '))
	require.NoError(t, s.AppendRune('世'))
	require.NoError(t, s.AppendBytes([]byte("!")))
	require.NoError(t, s.AppendBytes(nil))

	require.Equal(t, "héllo 世!", s.String())
	require.Equal(t, len("héllo 世!"), s.Len())
	require.Equal(t, 1, s.Slice().ElemSize())
}

func TestSelfAppend(t *testing.T) {
	s, err := FromString(nil, "ab")
	require.NoError(t, err)
	require.NoError(t, s.AppendBytes(s.Bytes()))
	require.NoError(t, s.AppendBytes(s.Bytes()))
	require.Equal(t, "abababab", s.String())
}

func TestTruncate(t *testing.T) {
	s, err := FromString(nil, "abcdef")
	require.NoError(t, err)
	require.NoError(t, s.Truncate(3))
	require.Equal(t, "abc", s.String())
	require.ErrorIs(t, s.Truncate(4), ErrOutOfRange)
	require.ErrorIs(t, s.Truncate(-1), ErrOutOfRange)
}

func TestCString(t *testing.T) {
	s, err := FromString(nil, "path")
	require.NoError(t, err)
	c, err := s.CString()
	require.NoError(t, err)
	require.Equal(t, []byte("path\x00"), c)

	// Round trip through the C-string slice constructor.
	require.Equal(t, "path", string(slice.FromCString(c).Bytes()))

	require.NoError(t, s.AppendRune(0))
	_, err = s.CString()
	require.ErrorIs(t, err, ErrEmbeddedNUL)
}

func TestEncodeDecode(t *testing.T) {
	s, err := FromString(nil, "café")
	require.NoError(t, err)

	cp, err := s.Encode(Windows1252)
	require.NoError(t, err)
	require.Equal(t, []byte{'c', 'a', 'f', 0xe9}, cp)

	u16, err := s.Encode(UTF16LE)
	require.NoError(t, err)
	require.Equal(t, []byte{'c', 0, 'a', 0, 'f', 0, 0xe9, 0}, u16)

	back, err := Decode(nil, UTF16LE, u16)
	require.NoError(t, err)
	require.Equal(t, "café", back.String())

	latin, err := Decode(nil, Latin1, []byte{0x41, 0xff})
	require.NoError(t, err)
	require.Equal(t, "Aÿ", latin.String())
}

func TestEncode_Unrepresentable(t *testing.T) {
	s, err := FromString(nil, "世")
	require.NoError(t, err)
	_, err = s.Encode(Windows1252)
	require.Error(t, err)
}

func TestFree(t *testing.T) {
	tr := testutil.NewTracker(t)
	s, err := FromString(tr, "x")
	require.NoError(t, err)
	require.NoError(t, s.Free())
	require.Zero(t, tr.Stats().LiveBlocks)
	require.Zero(t, s.Len())
}

func TestAllocationFailure(t *testing.T) {
	_, err := FromString(alloc.NewLimited(nil, 2), "toolong")
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
}
