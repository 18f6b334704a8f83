package value

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/msgcodec/errors"
)

func TestPrimitiveSet(t *testing.T) {
	tests := []struct {
		in      any
		want    any
		typ     *Type
		name    string
		wantErr errors.Kind
	}{
		{name: "bool", typ: Bool, in: true, want: true},
		{name: "int8 from int", typ: Int8, in: -5, want: int8(-5)},
		{name: "int8 overflow", typ: Int8, in: 200, wantErr: errors.KindOverflow},
		{name: "uint8 negative", typ: Uint8, in: -1, wantErr: errors.KindOverflow},
		{name: "uint16 from float64", typ: Uint16, in: float64(65535), want: uint16(65535)},
		{name: "int32 from fractional", typ: Int32, in: 1.5, wantErr: errors.KindTypeMismatch},
		{name: "uint64 max", typ: Uint64, in: uint64(math.MaxUint64), want: uint64(math.MaxUint64)},
		{name: "int64 from uint64 max", typ: Int64, in: uint64(math.MaxUint64), wantErr: errors.KindOverflow},
		{name: "float32 from int", typ: Float32, in: 3, want: float32(3)},
		{name: "float32 overflow", typ: Float32, in: 1e300, wantErr: errors.KindOverflow},
		{name: "float64", typ: Float64, in: 2.25, want: 2.25},
		{name: "char from string", typ: Char, in: "A", want: uint8('A')},
		{name: "char from number", typ: Char, in: 66, want: uint8('B')},
		{name: "char from long string", typ: Char, in: "AB", wantErr: errors.KindInvalidData},
		{name: "wchar", typ: WChar, in: "é", want: rune('é')},
		{name: "string", typ: String, in: "hello", want: "hello"},
		{name: "string from int", typ: String, in: 1, wantErr: errors.KindTypeMismatch},
		{name: "bool from int", typ: Bool, in: 1, wantErr: errors.KindTypeMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPrimitive(tc.typ)
			err := p.Set(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				var e *errors.Error
				require.True(t, stderrors.As(err, &e))
				assert.Equal(t, tc.wantErr, e.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Interface())
		})
	}
}

func TestPrimitiveSetFailureLeavesValue(t *testing.T) {
	p := NewInt8(7)
	require.Error(t, p.SetInt(1000))
	assert.Equal(t, int64(7), p.Int())
}

func TestBoundedStringTruncation(t *testing.T) {
	s := NewPrimitive(StringOf(4))
	require.NoError(t, s.SetString("abcdefgh"))
	assert.Equal(t, "abcd", s.Text())

	again := NewPrimitive(StringOf(4))
	require.NoError(t, again.SetString("abcdefgh"))
	assert.True(t, s.Equal(again), "truncation must be deterministic")

	w := NewPrimitive(WStringOf(2))
	require.NoError(t, w.SetString("ÄÖÜ"))
	assert.Equal(t, "ÄÖ", w.Text())

	short := NewPrimitive(StringOf(4))
	require.NoError(t, short.SetString("ab"))
	assert.Equal(t, "ab", short.Text())
}

func TestPrimitiveAssign(t *testing.T) {
	dst := NewPrimitive(StringOf(3))
	require.NoError(t, dst.Assign(NewString("abcdef")))
	assert.Equal(t, "abc", dst.Text())

	n := NewInt16(0)
	err := n.Assign(NewInt32(1))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Kind: errors.KindTypeMismatch}))
	assert.Equal(t, int64(0), n.Int())

	require.NoError(t, n.Assign(NewInt16(-3)))
	assert.Equal(t, int64(-3), n.Int())
}

func TestPrimitiveEqualAndClone(t *testing.T) {
	a := NewFloat64(1.5)
	b := a.Clone().(*Primitive)
	assert.True(t, a.Equal(b))

	require.NoError(t, b.SetFloat(2))
	assert.False(t, a.Equal(b))
	assert.Equal(t, 1.5, a.Float())

	assert.False(t, NewInt32(1).Equal(NewInt64(1)), "different kinds are never equal")
	assert.False(t, NewInt32(1).Equal(nil))
}

func TestPrimitiveString(t *testing.T) {
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "-12", NewInt16(-12).String())
	assert.Equal(t, "42", NewUint32(42).String())
	assert.Equal(t, "0.5", NewFloat32(0.5).String())
	assert.Equal(t, "'a'", NewChar('a').String())
	assert.Equal(t, `"hi"`, NewString("hi").String())
}

func TestPrimitiveReset(t *testing.T) {
	p := NewString("x")
	p.Reset()
	assert.Equal(t, "", p.Text())

	n := NewUint64(9)
	n.Reset()
	assert.Equal(t, uint64(0), n.Uint())
}
