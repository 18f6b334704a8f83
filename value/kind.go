package value

// Kind is the closed set of value categories. Primitive kinds come first so
// that IsPrimitive is a single comparison.
type Kind uint8

const (
	KindBool Kind = iota
	KindByte
	KindChar
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindWChar
	KindString
	KindWString
	KindArray
	KindSequence
	KindStruct
)

var kindNames = [...]string{
	KindBool:     "bool",
	KindByte:     "byte",
	KindChar:     "char",
	KindInt8:     "int8",
	KindUint8:    "uint8",
	KindInt16:    "int16",
	KindUint16:   "uint16",
	KindInt32:    "int32",
	KindUint32:   "uint32",
	KindInt64:    "int64",
	KindUint64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindWChar:    "wchar",
	KindString:   "string",
	KindWString:  "wstring",
	KindArray:    "array",
	KindSequence: "sequence",
	KindStruct:   "struct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether k is a scalar or string kind.
func (k Kind) IsPrimitive() bool {
	return k <= KindWString
}

// IsScalar reports whether k has a fixed wire width.
func (k Kind) IsScalar() bool {
	return k <= KindWChar
}

func (k Kind) IsString() bool {
	return k == KindString || k == KindWString
}

func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
	return false
}

func (k Kind) IsUnsigned() bool {
	switch k {
	case KindByte, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
	return false
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// Width returns the natural wire width of a scalar in bytes, which is also its
// alignment. String and sequence kinds report the width of their uint32 length
// prefix. Arrays and structs have no width of their own and report 0.
func (k Kind) Width() int {
	switch k {
	case KindBool, KindByte, KindChar, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32, KindWChar, KindString, KindWString, KindSequence:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// Bits returns the integer bit size of numeric kinds, 0 otherwise.
func (k Kind) Bits() int {
	switch k {
	case KindByte, KindInt8, KindUint8, KindChar:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32, KindWChar:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	default:
		return 0
	}
}
