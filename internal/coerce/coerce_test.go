package coerce

import (
	"math"
	"testing"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   int64
		wantOK bool
	}{
		{int64(-5), "int64", -5, true},
		{int8(-128), "int8 min", -128, true},
		{int16(300), "int16", 300, true},
		{int32(-7), "int32", -7, true},
		{int(42), "int", 42, true},
		{uint8(255), "uint8", 255, true},
		{uint32(math.MaxUint32), "uint32 max", math.MaxUint32, true},
		{uint64(math.MaxInt64), "uint64 max int64", math.MaxInt64, true},
		{uint64(math.MaxInt64 + 1), "uint64 too large", 0, false},
		{float64(12), "float64 integral", 12, true},
		{float64(1.5), "float64 fractional", 0, false},
		{float32(-3), "float32 integral", -3, true},
		{"12", "string", 0, false},
		{nil, "nil", 0, false},
		{true, "bool", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt64(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ToInt64(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ToInt64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToUint64(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   uint64
		wantOK bool
	}{
		{uint64(math.MaxUint64), "uint64 max", math.MaxUint64, true},
		{uint(7), "uint", 7, true},
		{int(9), "int", 9, true},
		{int(-1), "int negative", 0, false},
		{int8(-1), "int8 negative", 0, false},
		{int64(1 << 40), "int64 large", 1 << 40, true},
		{float64(3), "float64 integral", 3, true},
		{float64(-3), "float64 negative", 0, false},
		{float64(0.25), "float64 fractional", 0, false},
		{"x", "string", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToUint64(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ToUint64(%v) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ToUint64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToFloat64(t *testing.T) {
	if v, ok := ToFloat64(float32(1.5)); !ok || v != 1.5 {
		t.Errorf("float32: %v %v", v, ok)
	}
	if v, ok := ToFloat64(int(-2)); !ok || v != -2 {
		t.Errorf("int: %v %v", v, ok)
	}
	if v, ok := ToFloat64(uint64(math.MaxUint64)); !ok || v != float64(math.MaxUint64) {
		t.Errorf("uint64: %v %v", v, ok)
	}
	if _, ok := ToFloat64("1.0"); ok {
		t.Error("string should not coerce")
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		v    int64
		bits int
		want bool
	}{
		{127, 8, true},
		{128, 8, false},
		{-128, 8, true},
		{-129, 8, false},
		{32767, 16, true},
		{-32769, 16, false},
		{math.MaxInt32, 32, true},
		{math.MaxInt32 + 1, 32, false},
		{math.MinInt64, 64, true},
	}
	for _, tt := range tests {
		if got := IntFits(tt.v, tt.bits); got != tt.want {
			t.Errorf("IntFits(%d, %d) = %v, want %v", tt.v, tt.bits, got, tt.want)
		}
	}

	if !UintFits(255, 8) || UintFits(256, 8) {
		t.Error("UintFits 8-bit boundary wrong")
	}
	if !UintFits(math.MaxUint64, 64) {
		t.Error("UintFits 64-bit should accept max")
	}
}

func TestTypeName(t *testing.T) {
	if TypeName(nil) != "nil" {
		t.Error("nil type name")
	}
	if TypeName(int16(1)) != "int16" {
		t.Error("int16 type name")
	}
}
