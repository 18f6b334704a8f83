package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	point := mustDescriptor(t, 7, "geometry/Point", []Field{{Name: "x", Type: Float64}})

	tests := []struct {
		typ  *Type
		want string
	}{
		{Int16, "int16"},
		{StringOf(8), "string<=8"},
		{WStringOf(3), "wstring<=3"},
		{ArrayOf(Int16, 3), "int16[3]"},
		{ArrayRange(Uint8, 1, 4), "uint8[1..4]"},
		{SequenceOf(Int8, 4), "int8[<=4]"},
		{SequenceOf(Float64, 0), "float64[]"},
		{SequenceOf(StringOf(5), 2), "string<=5[<=2]"},
		{StructOf(point), "geometry/Point"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.typ.String())
		})
	}
}

func TestTypeEqual(t *testing.T) {
	a := mustDescriptor(t, 1, "A", nil)
	aAgain := mustDescriptor(t, 1, "A", []Field{{Name: "x", Type: Int8}})
	b := mustDescriptor(t, 2, "B", nil)

	assert.True(t, ArrayOf(Int16, 3).Equal(ArrayOf(Int16, 3)))
	assert.False(t, ArrayOf(Int16, 3).Equal(ArrayOf(Int16, 4)))
	assert.False(t, ArrayOf(Int16, 3).Equal(ArrayRange(Int16, 1, 3)))
	assert.True(t, SequenceOf(Int8, 4).Equal(SequenceOf(Int8, 4)))
	assert.False(t, SequenceOf(Int8, 4).Equal(SequenceOf(Int8, 0)))
	assert.False(t, StringOf(4).Equal(String))
	assert.True(t, StringOf(0).Equal(String))
	assert.True(t, StructOf(a).Equal(StructOf(aAgain)), "structs compare by identity")
	assert.False(t, StructOf(a).Equal(StructOf(b)))
	assert.False(t, Int8.Equal(nil))
}

func TestTypeAlign(t *testing.T) {
	empty := mustDescriptor(t, 1, "Empty", nil)
	nested := mustDescriptor(t, 2, "Nested", []Field{
		{Name: "a", Type: Float64},
		{Name: "b", Type: Int8},
	})

	assert.Equal(t, 2, ArrayOf(Int16, 3).Align())
	assert.Equal(t, 4, SequenceOf(Int8, 0).Align())
	assert.Equal(t, 4, String.Align())
	assert.Equal(t, 1, StructOf(empty).Align())
	assert.Equal(t, 8, StructOf(nested).Align())
}

func TestTypeBounded(t *testing.T) {
	assert.True(t, ArrayOf(Int16, 3).Bounded())
	assert.True(t, SequenceOf(StringOf(4), 2).Bounded())
	assert.False(t, SequenceOf(Int8, 0).Bounded())
	assert.False(t, SequenceOf(String, 2).Bounded())
	assert.False(t, String.Bounded())
}

func TestTypeConstructorsPanic(t *testing.T) {
	assert.Panics(t, func() { ArrayOf(Int8, 0) })
	assert.Panics(t, func() { ArrayOf(nil, 2) })
	assert.Panics(t, func() { SequenceOf(Int8, -1) })
	assert.Panics(t, func() { StringOf(-1) })
	assert.Panics(t, func() { StructOf(nil) })
	assert.Panics(t, func() { ArrayOf(Int8, math.MaxInt) })
	assert.Panics(t, func() { ArrayRange(Int8, 0, math.MaxInt) }, "length wraps")
	assert.Panics(t, func() { ArrayRange(Int8, -1, math.MaxInt-1) })
	assert.Panics(t, func() { ArrayOf(Int8, 1<<20+1) })
	assert.NotPanics(t, func() { ArrayRange(Int8, -2, 1<<20-3) })
}

func TestTypeNew(t *testing.T) {
	arr := ArrayOf(Int16, 3).New().(*Array)
	assert.Equal(t, 3, arr.Len())

	seq := SequenceOf(Int8, 4).New().(*Sequence)
	assert.Equal(t, 0, seq.Len())
	assert.Equal(t, 4, seq.Bound())

	p := Float32.New().(*Primitive)
	assert.Equal(t, KindFloat32, p.Kind())
	assert.Zero(t, p.Float())

	assert.Same(t, Uint16, PrimitiveOf(KindUint16))
	assert.Nil(t, PrimitiveOf(KindStruct))
}

func mustDescriptor(t testing.TB, id Identity, name string, fields []Field, opts ...DescriptorOption) *Descriptor {
	t.Helper()
	d, err := NewDescriptor(id, name, fields, opts...)
	if err != nil {
		t.Fatalf("NewDescriptor(%s): %v", name, err)
	}
	return d
}
