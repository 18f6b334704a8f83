package wire

import "math"

// Safety limits to bound allocations driven by untrusted length prefixes.
const (
	MaxStringSize     = 1 << 24 // 16 MB
	MaxSequenceLength = 1 << 20 // 1M elements
	MaxArrayLength    = 1 << 20 // per dimension of a fixed array
)

// LengthPrefix is the width of the uint32 count written before strings and sequences.
const LengthPrefix = 4

// AlignTo rounds offset up to the next multiple of align.
// align must be a power of two; 0 and 1 leave offset unchanged.
func AlignTo(offset, align int) int {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// Padding returns the number of bytes inserted before a value of width align at offset.
func Padding(offset, align int) int {
	if align <= 1 {
		return 0
	}
	return (align - offset%align) % align
}

func SafeMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b int) (int, bool) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}
	return a + b, true
}

func SafeSub(a, b int) (int, bool) {
	if (b < 0 && a > math.MaxInt+b) || (b > 0 && a < math.MinInt+b) {
		return 0, false
	}
	return a - b, true
}

// RangeLen returns the element count of the inclusive range lower..upper.
// ok is false for an empty range or one whose length does not fit in an int.
func RangeLen(lower, upper int) (n int, ok bool) {
	if upper < lower {
		return 0, false
	}
	if n, ok = SafeSub(upper, lower); !ok {
		return 0, false
	}
	return SafeAdd(n, 1)
}
