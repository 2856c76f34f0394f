package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(6, 7); !ok || p != 42 {
		t.Fatalf("MulOverflowSafe(6,7)=%d,%v want 42,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("zero operand should yield 0,true")
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 2); ok {
		t.Fatalf("negative operand should be rejected")
	}
}

func TestCheckListBounds(t *testing.T) {
	end, err := CheckListBounds(16, 4, 3, 4)
	if err != nil || end != 16 {
		t.Fatalf("CheckListBounds = %d,%v want 16,nil", end, err)
	}
	if _, err := CheckListBounds(15, 4, 3, 4); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckListBounds(16, -1, 1, 1); err == nil {
		t.Fatalf("expected negative offset error")
	}
	if _, err := CheckListBounds(16, 0, -1, 1); err == nil {
		t.Fatalf("expected negative count error")
	}
	if _, err := CheckListBounds(16, 0, math.MaxInt, 2); err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
}

func TestGrow(t *testing.T) {
	cases := []struct {
		current, required, minCap, want int
	}{
		{0, 1, 4, 4},
		{4, 5, 4, 8},
		{8, 9, 4, 16},
		{4, 100, 4, 100},
		{math.MaxInt/2 + 1, math.MaxInt/2 + 2, 4, math.MaxInt/2 + 2},
	}
	for _, tc := range cases {
		if got := Grow(tc.current, tc.required, tc.minCap); got != tc.want {
			t.Fatalf("Grow(%d,%d,%d)=%d want %d", tc.current, tc.required, tc.minCap, got, tc.want)
		}
	}
}
