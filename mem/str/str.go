// Package str provides growable byte strings built on a byte vector, with
// conversion to and from legacy code pages and UTF-16 for foreign callers.
//
// Contents are UTF-8 by convention but not validated.
package str

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/mem/slice"
	"github.com/joshuapare/memkit/mem/vec"
)

// Encodings commonly needed at a C or Win32 boundary.
var (
	Windows1252 encoding.Encoding = charmap.Windows1252
	Latin1      encoding.Encoding = charmap.ISO8859_1
	UTF16LE     encoding.Encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

var (
	// ErrEmbeddedNUL indicates a string that cannot become a C string.
	ErrEmbeddedNUL = errors.New("str: embedded NUL byte")

	// ErrOutOfRange indicates a truncation length beyond the string.
	ErrOutOfRange = errors.New("str: length out of range")
)

// String is a byte vector with text helpers.
type String struct {
	buf *vec.Vector
}

// New returns an empty string.
func New(a alloc.Allocator) (*String, error) {
	v, err := vec.New(a, 1)
	if err != nil {
		return nil, err
	}
	return &String{buf: v}, nil
}

// FromString copies s into a new String.
func FromString(a alloc.Allocator, s string) (*String, error) {
	out, err := New(a)
	if err != nil {
		return nil, err
	}
	if err := out.Append(s); err != nil {
		_ = out.Free()
		return nil, err
	}
	return out, nil
}

// Decode converts b from enc to UTF-8 and stores it in a new String.
func Decode(a alloc.Allocator, enc encoding.Encoding, b []byte) (*String, error) {
	utf, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("str: decode: %w", err)
	}
	out, err := New(a)
	if err != nil {
		return nil, err
	}
	if err := out.AppendBytes(utf); err != nil {
		_ = out.Free()
		return nil, err
	}
	return out, nil
}

// Len returns the length in bytes.
func (s *String) Len() int { return s.buf.Len() }

// Bytes returns the contents. The result aliases the string's storage and is
// invalidated by the next append.
func (s *String) Bytes() []byte { return s.buf.Slice().Bytes() }

// String returns a Go copy of the contents.
func (s *String) String() string { return string(s.Bytes()) }

// Slice returns the contents as a byte slice view.
func (s *String) Slice() slice.Slice { return s.buf.Slice() }

// AppendBytes appends a copy of b.
func (s *String) AppendBytes(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	src, err := slice.FromBytes(b, 1)
	if err != nil {
		return err
	}
	return s.buf.Extend(src)
}

// Append appends s2.
func (s *String) Append(s2 string) error {
	return s.AppendBytes([]byte(s2))
}

// AppendRune appends the UTF-8 encoding of r.
func (s *String) AppendRune(r rune) error {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	return s.AppendBytes(tmp[:n])
}

// Truncate shortens the string to n bytes.
func (s *String) Truncate(n int) error {
	if n < 0 || n > s.Len() {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, n, s.Len())
	}
	return s.buf.Resize(n)
}

// CString returns a NUL-terminated copy suitable for a C caller.
func (s *String) CString() ([]byte, error) {
	b := s.Bytes()
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return nil, fmt.Errorf("%w at offset %d", ErrEmbeddedNUL, i)
	}
	out := make([]byte, len(b)+1)
	copy(out, b)
	return out, nil
}

// Encode converts the contents from UTF-8 to enc.
func (s *String) Encode(enc encoding.Encoding) ([]byte, error) {
	out, err := enc.NewEncoder().Bytes(s.Bytes())
	if err != nil {
		return nil, fmt.Errorf("str: encode: %w", err)
	}
	return out, nil
}

// Free releases the storage.
func (s *String) Free() error { return s.buf.Free() }
