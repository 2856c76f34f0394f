package view

import "unsafe"

// Of returns a view over the memory of *p. T must be plain data: no pointers,
// slices, maps, strings, interfaces or channels, because the bytes may be
// copied into memory the garbage collector does not scan.
func Of[T any](p *T) View {
	if p == nil {
		var zero T
		return Null(int(unsafe.Sizeof(zero)))
	}
	n := int(unsafe.Sizeof(*p))
	return View{mem: unsafe.Slice((*byte)(unsafe.Pointer(p)), n), size: n}
}

// SizeOf returns the element size a View of T would carry.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Load reads a T out of v. It reports false when v is null or its size does
// not match T.
func Load[T any](v View) (T, bool) {
	var out T
	if v.IsNull() || v.size != int(unsafe.Sizeof(out)) {
		return out, false
	}
	copy(Of(&out).Bytes(), v.Bytes())
	return out, true
}

// Store writes x into v. It reports false when v is null or its size does not
// match T.
func Store[T any](v View, x T) bool {
	if v.IsNull() || v.size != int(unsafe.Sizeof(x)) {
		return false
	}
	copy(v.Bytes(), Of(&x).Bytes())
	return true
}
