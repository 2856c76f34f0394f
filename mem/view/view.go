// Package view defines View, a non-owning reference to a single object of
// runtime-known size.
//
// A View never owns memory. It stays meaningful only while the memory it
// refers to does: a View taken from a vector element goes stale as soon as
// the vector reallocates, and nothing detects that.
package view

import (
	"bytes"
	"unsafe"
)

// View is an (address, element size) pair. The zero value is a null view of
// size zero.
type View struct {
	// mem starts at the object's address. For views carved out of a slice it
	// may extend past size; only mem[:size] belongs to the object.
	mem  []byte
	size int
}

// New returns a view of the first size bytes of mem. It returns a null view
// when mem is too short or size is negative.
func New(mem []byte, size int) View {
	if size < 0 || len(mem) < size {
		return Null(size)
	}
	return View{mem: mem, size: size}
}

// Null returns a view that refers to nothing but still records size.
func Null(size int) View {
	if size < 0 {
		size = 0
	}
	return View{size: size}
}

// IsNull reports whether v refers to no memory.
func (v View) IsNull() bool {
	return v.mem == nil
}

// ElemSize returns the referenced object's size in bytes.
func (v View) ElemSize() int {
	return v.size
}

// Bytes returns the object's bytes, capped so appends cannot spill into
// neighbouring memory. Writes through the result modify the object.
func (v View) Bytes() []byte {
	if v.mem == nil {
		return nil
	}
	return v.mem[:v.size:v.size]
}

// Extent returns everything from the object's address to the end of the
// memory the view was built from.
func (v View) Extent() []byte {
	return v.mem
}

// Pointer returns the object's address for use across an FFI boundary, or nil
// for a null or zero-sized view.
func (v View) Pointer() unsafe.Pointer {
	if v.mem == nil || v.size == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(v.mem))
}

// Equal reports whether a and b have the same size and the same bytes.
// Two null views of the same size are equal.
func Equal(a, b View) bool {
	if a.size != b.size || a.IsNull() != b.IsNull() {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// CopyTo copies v's bytes into dst. It reports false when either view is
// null or the sizes differ.
func (v View) CopyTo(dst View) bool {
	if v.IsNull() || dst.IsNull() || v.size != dst.size {
		return false
	}
	copy(dst.Bytes(), v.Bytes())
	return true
}
