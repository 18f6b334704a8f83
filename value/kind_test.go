package value

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"bool", KindBool},
		{"byte", KindByte},
		{"char", KindChar},
		{"int8", KindInt8},
		{"uint8", KindUint8},
		{"int16", KindInt16},
		{"uint16", KindUint16},
		{"int32", KindInt32},
		{"uint32", KindUint32},
		{"int64", KindInt64},
		{"uint64", KindUint64},
		{"float32", KindFloat32},
		{"float64", KindFloat64},
		{"wchar", KindWChar},
		{"string", KindString},
		{"wstring", KindWString},
		{"array", KindArray},
		{"sequence", KindSequence},
		{"struct", KindStruct},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindIsPrimitive(t *testing.T) {
	primitives := []Kind{
		KindBool, KindByte, KindChar, KindInt8, KindUint8, KindInt16, KindUint16,
		KindInt32, KindUint32, KindInt64, KindUint64, KindFloat32, KindFloat64,
		KindWChar, KindString, KindWString,
	}
	for _, k := range primitives {
		if !k.IsPrimitive() {
			t.Errorf("%s should be primitive", k)
		}
	}

	for _, k := range []Kind{KindArray, KindSequence, KindStruct} {
		if k.IsPrimitive() {
			t.Errorf("%s should not be primitive", k)
		}
	}

	if KindString.IsScalar() || !KindWChar.IsScalar() {
		t.Error("IsScalar boundary wrong")
	}
}

func TestKindWidth(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindBool, 1},
		{KindChar, 1},
		{KindUint8, 1},
		{KindInt16, 2},
		{KindUint32, 4},
		{KindFloat32, 4},
		{KindWChar, 4},
		{KindString, 4},
		{KindSequence, 4},
		{KindInt64, 8},
		{KindFloat64, 8},
		{KindArray, 0},
		{KindStruct, 0},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.Width(); got != tc.want {
				t.Errorf("Width() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKindSignedness(t *testing.T) {
	if !KindInt32.IsSigned() || KindInt32.IsUnsigned() {
		t.Error("int32 should be signed")
	}
	if !KindByte.IsUnsigned() || KindByte.IsSigned() {
		t.Error("byte should be unsigned")
	}
	if KindFloat64.IsSigned() || KindFloat64.IsUnsigned() || !KindFloat64.IsFloat() {
		t.Error("float64 is neither signed nor unsigned integer")
	}
}
