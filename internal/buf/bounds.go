package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// either is negative or the product would overflow int.
// This guards every count * elemSize computation in the collections.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// SpanBytes returns count * elemSize, or an error describing why it cannot be
// represented.
func SpanBytes(count, elemSize int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	if elemSize < 0 {
		return 0, fmt.Errorf("negative element size: %d", elemSize)
	}
	total, ok := MulOverflowSafe(count, elemSize)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	return total, nil
}

// CheckListBounds validates that count elements of elementSize bytes fit in a
// buffer of bufLen bytes starting at offset. Returns the end offset if valid,
// or an error describing the specific failure (overflow or out of bounds).
//
//	end, err := buf.CheckListBounds(len(mem), 0, count, elemSize)
//	if err != nil {
//	    return fmt.Errorf("slice: %w", err)
//	}
func CheckListBounds(bufLen, offset, count, elementSize int) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("negative offset: %d", offset)
	}
	totalSize, err := SpanBytes(count, elementSize)
	if err != nil {
		return 0, err
	}

	endOffset, ok := AddOverflowSafe(offset, totalSize)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", offset, totalSize)
	}

	if endOffset > bufLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", endOffset, bufLen)
	}

	return endOffset, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// Grow returns the capacity a collection should move to when it needs room
// for required elements: the larger of required, twice current, and minCap.
// When doubling would overflow, required wins.
func Grow(current, required, minCap int) int {
	next := minCap
	if doubled, ok := MulOverflowSafe(current, 2); ok && doubled > next {
		next = doubled
	}
	if required > next {
		next = required
	}
	return next
}
