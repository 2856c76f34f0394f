// Package bitmask provides a fixed-length bit set stored in a byte vector.
// Bit i lives in byte i/8 at position i%8 (least significant first).
package bitmask

import (
	"errors"
	"fmt"
	"math/bits"

	kbitmap "github.com/kelindar/bitmap"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/vec"
)

// ErrOutOfRange indicates a bit position outside the mask, or a mask too
// large to express.
var ErrOutOfRange = errors.New("bitmask: bit out of range")

// BitMask is n bits backed by ceil(n/8) zero-initialized bytes.
type BitMask struct {
	bits *vec.Vector
	n    int
}

// New returns a mask of nBits cleared bits.
func New(a alloc.Allocator, nBits int) (*BitMask, error) {
	if nBits < 0 {
		return nil, fmt.Errorf("%w: %d bits", ErrOutOfRange, nBits)
	}
	v, err := vec.New(a, 1)
	if err != nil {
		return nil, err
	}
	if err := v.Resize((nBits + 7) / 8); err != nil {
		return nil, fmt.Errorf("bitmask: allocate %d bits: %w", nBits, err)
	}
	return &BitMask{bits: v, n: nBits}, nil
}

// FromBitmap builds a mask of nBits from the members of bm below nBits.
func FromBitmap(a alloc.Allocator, bm kbitmap.Bitmap, nBits int) (*BitMask, error) {
	m, err := New(a, nBits)
	if err != nil {
		return nil, err
	}
	bm.Range(func(x uint32) {
		if int(x) < nBits {
			_ = m.Set(int(x), true)
		}
	})
	return m, nil
}

// Len returns the number of bits.
func (m *BitMask) Len() int { return m.n }

// Bytes returns the backing bytes. Writes through it modify the mask.
func (m *BitMask) Bytes() []byte { return m.bits.Slice().Bytes() }

func (m *BitMask) locate(pos int) (byteIndex int, bit byte, err error) {
	if pos < 0 || pos >= m.n {
		return 0, 0, fmt.Errorf("%w: %d of %d", ErrOutOfRange, pos, m.n)
	}
	return pos / 8, 1 << (pos % 8), nil
}

// Set turns bit pos on or off.
func (m *BitMask) Set(pos int, on bool) error {
	i, bit, err := m.locate(pos)
	if err != nil {
		return err
	}
	b := m.Bytes()
	if on {
		b[i] |= bit
	} else {
		b[i] &^= bit
	}
	return nil
}

// Toggle flips bit pos.
func (m *BitMask) Toggle(pos int) error {
	i, bit, err := m.locate(pos)
	if err != nil {
		return err
	}
	m.Bytes()[i] ^= bit
	return nil
}

// Get reports whether bit pos is set. Out-of-range positions read as false.
func (m *BitMask) Get(pos int) bool {
	i, bit, err := m.locate(pos)
	if err != nil {
		return false
	}
	return m.Bytes()[i]&bit != 0
}

// Count returns the number of set bits.
func (m *BitMask) Count() int {
	n := 0
	for _, b := range m.Bytes() {
		n += bits.OnesCount8(b)
	}
	return n
}

// Reset clears every bit.
func (m *BitMask) Reset() {
	clear(m.Bytes())
}

// Bitmap copies the set bits into a kelindar bitmap for set algebra. The
// bitmap indexes with uint32, so a mask longer than 1<<32 bits is rejected
// with ErrOutOfRange.
func (m *BitMask) Bitmap() (kbitmap.Bitmap, error) {
	var bm kbitmap.Bitmap
	if uint64(m.n) > 1<<32 {
		return nil, fmt.Errorf("%w: %d bits exceed bitmap range", ErrOutOfRange, m.n)
	}
	for i, b := range m.Bytes() {
		for b != 0 {
			k := bits.TrailingZeros8(b)
			bm.Set(uint32(i*8 + k))
			b &^= 1 << k
		}
	}
	return bm, nil
}

// String renders the mask as '0'/'1' characters, bit 0 first.
func (m *BitMask) String() string {
	out := make([]byte, m.n)
	for i := range out {
		out[i] = '0'
		if m.Get(i) {
			out[i] = '1'
		}
	}
	return string(out)
}

// Free releases the backing bytes. The mask is left with zero bits.
func (m *BitMask) Free() error {
	if err := m.bits.Free(); err != nil {
		return err
	}
	m.n = 0
	return nil
}
