package wire

import (
	"math"
	"testing"
)

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want int
	}{
		{0, 1, 0},
		{1, 1, 1},
		{1, 2, 2},
		{2, 2, 2},
		{3, 4, 4},
		{8, 4, 8},
		{9, 8, 16},
		{5, 0, 5},
	}
	for _, tt := range tests {
		if got := AlignTo(tt.offset, tt.align); got != tt.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
		}
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		offset, align, want int
	}{
		{0, 8, 0},
		{1, 2, 1},
		{1, 4, 3},
		{6, 4, 2},
		{7, 8, 1},
		{7, 1, 0},
	}
	for _, tt := range tests {
		if got := Padding(tt.offset, tt.align); got != tt.want {
			t.Errorf("Padding(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
		}
		if AlignTo(tt.offset, tt.align) != tt.offset+tt.want {
			t.Errorf("Padding and AlignTo disagree at (%d, %d)", tt.offset, tt.align)
		}
	}
}

func TestSafeMul(t *testing.T) {
	if v, ok := SafeMul(4, 8); !ok || v != 32 {
		t.Errorf("SafeMul(4, 8) = %d, %v", v, ok)
	}
	if _, ok := SafeMul(math.MaxInt, 2); ok {
		t.Error("SafeMul should report overflow")
	}
	if _, ok := SafeMul(-1, 2); ok {
		t.Error("SafeMul should reject negative operands")
	}
	if v, ok := SafeMul(math.MaxInt, 0); !ok || v != 0 {
		t.Errorf("SafeMul(max, 0) = %d, %v", v, ok)
	}
}

func TestSafeAdd(t *testing.T) {
	if v, ok := SafeAdd(1, 2); !ok || v != 3 {
		t.Errorf("SafeAdd(1, 2) = %d, %v", v, ok)
	}
	if _, ok := SafeAdd(math.MaxInt, 1); ok {
		t.Error("SafeAdd should report overflow")
	}
	if _, ok := SafeAdd(math.MinInt, -1); ok {
		t.Error("SafeAdd should report underflow")
	}
	if v, ok := SafeAdd(5, -7); !ok || v != -2 {
		t.Errorf("SafeAdd(5, -7) = %d, %v", v, ok)
	}
}

func TestSafeSub(t *testing.T) {
	if v, ok := SafeSub(3, 5); !ok || v != -2 {
		t.Errorf("SafeSub(3, 5) = %d, %v", v, ok)
	}
	if _, ok := SafeSub(math.MaxInt, -1); ok {
		t.Error("SafeSub should report overflow")
	}
	if _, ok := SafeSub(math.MinInt, 1); ok {
		t.Error("SafeSub should report underflow")
	}
}

func TestRangeLen(t *testing.T) {
	tests := []struct {
		lower, upper int
		want         int
		ok           bool
	}{
		{0, 0, 1, true},
		{1, 4, 4, true},
		{-2, 2, 5, true},
		{3, 2, 0, false},
		{0, math.MaxInt, 0, false},
		{-1, math.MaxInt, 0, false},
		{math.MinInt, 0, 0, false},
	}
	for _, tt := range tests {
		n, ok := RangeLen(tt.lower, tt.upper)
		if n != tt.want || ok != tt.ok {
			t.Errorf("RangeLen(%d, %d) = %d, %v, want %d, %v", tt.lower, tt.upper, n, ok, tt.want, tt.ok)
		}
	}
}
