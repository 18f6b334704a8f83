package value

import (
	"strconv"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/internal/wire"
)

var errNilValue = errors.InvalidInput(errors.PhaseAccess, "nil value")

// Type is the immutable shape of a value. Primitive types are shared
// singletons; composite types are built with the constructors below.
type Type struct {
	elem  *Type
	desc  *Descriptor
	n     int // array length, string or sequence bound (0 = unbounded)
	lower int // first declared array index
	kind  Kind
}

// Primitive type singletons.
var (
	Bool    = &Type{kind: KindBool}
	Byte    = &Type{kind: KindByte}
	Char    = &Type{kind: KindChar}
	Int8    = &Type{kind: KindInt8}
	Uint8   = &Type{kind: KindUint8}
	Int16   = &Type{kind: KindInt16}
	Uint16  = &Type{kind: KindUint16}
	Int32   = &Type{kind: KindInt32}
	Uint32  = &Type{kind: KindUint32}
	Int64   = &Type{kind: KindInt64}
	Uint64  = &Type{kind: KindUint64}
	Float32 = &Type{kind: KindFloat32}
	Float64 = &Type{kind: KindFloat64}
	WChar   = &Type{kind: KindWChar}
	String  = &Type{kind: KindString}
	WString = &Type{kind: KindWString}
)

var primitives = [...]*Type{
	KindBool:    Bool,
	KindByte:    Byte,
	KindChar:    Char,
	KindInt8:    Int8,
	KindUint8:   Uint8,
	KindInt16:   Int16,
	KindUint16:  Uint16,
	KindInt32:   Int32,
	KindUint32:  Uint32,
	KindInt64:   Int64,
	KindUint64:  Uint64,
	KindFloat32: Float32,
	KindFloat64: Float64,
	KindWChar:   WChar,
	KindString:  String,
	KindWString: WString,
}

// PrimitiveOf returns the singleton for a primitive kind, or nil.
func PrimitiveOf(k Kind) *Type {
	if !k.IsPrimitive() {
		return nil
	}
	return primitives[k]
}

// StringOf returns a string type holding at most bound bytes. A bound of 0
// means unbounded.
func StringOf(bound int) *Type {
	if bound < 0 {
		panic("value: negative string bound")
	}
	if bound == 0 {
		return String
	}
	return &Type{kind: KindString, n: bound}
}

// WStringOf returns a wide string type holding at most bound characters.
func WStringOf(bound int) *Type {
	if bound < 0 {
		panic("value: negative wstring bound")
	}
	if bound == 0 {
		return WString
	}
	return &Type{kind: KindWString, n: bound}
}

// ArrayOf returns a fixed-size array of n elements indexed from 0.
func ArrayOf(elem *Type, n int) *Type {
	return ArrayRange(elem, 0, n-1)
}

// ArrayRange returns a fixed-size array whose declared indices run from lower
// to upper inclusive. Storage is always 0-based. It panics when the range
// holds more than wire.MaxArrayLength elements; schema readers check first.
func ArrayRange(elem *Type, lower, upper int) *Type {
	if elem == nil {
		panic("value: nil array element type")
	}
	if upper < lower {
		panic("value: empty array range")
	}
	n, ok := wire.RangeLen(lower, upper)
	if !ok || n > wire.MaxArrayLength {
		panic("value: array range " + strconv.Itoa(lower) + ".." + strconv.Itoa(upper) + " too long")
	}
	return &Type{kind: KindArray, elem: elem, n: n, lower: lower}
}

// SequenceOf returns a variable-length sequence type. A bound of 0 means
// unbounded.
func SequenceOf(elem *Type, bound int) *Type {
	if elem == nil {
		panic("value: nil sequence element type")
	}
	if bound < 0 {
		panic("value: negative sequence bound")
	}
	return &Type{kind: KindSequence, elem: elem, n: bound}
}

// StructOf returns the struct type described by desc.
func StructOf(desc *Descriptor) *Type {
	if desc == nil {
		panic("value: nil descriptor")
	}
	return desc.typ
}

func (t *Type) Kind() Kind { return t.kind }

// Elem returns the element type of arrays and sequences.
func (t *Type) Elem() *Type { return t.elem }

// Len returns the fixed element count of an array.
func (t *Type) Len() int {
	if t.kind != KindArray {
		return 0
	}
	return t.n
}

// Bound returns the maximum length of a string or sequence, 0 when unbounded.
func (t *Type) Bound() int {
	if t.kind == KindArray {
		return 0
	}
	return t.n
}

func (t *Type) Lower() int { return t.lower }

func (t *Type) Upper() int { return t.lower + t.n - 1 }

// Descriptor returns the descriptor of a struct type.
func (t *Type) Descriptor() *Descriptor { return t.desc }

// Align returns the alignment of the first byte the type writes on the wire.
func (t *Type) Align() int {
	switch t.kind {
	case KindArray:
		return t.elem.Align()
	case KindStruct:
		if t.desc.FieldCount() == 0 {
			return 1
		}
		return t.desc.fields[0].Type.Align()
	default:
		return t.kind.Width()
	}
}

// Bounded reports whether every string and sequence in the type tree has a bound.
func (t *Type) Bounded() bool {
	switch t.kind {
	case KindString, KindWString:
		return t.n > 0
	case KindSequence:
		return t.n > 0 && t.elem.Bounded()
	case KindArray:
		return t.elem.Bounded()
	case KindStruct:
		for _, f := range t.desc.fields {
			if !f.Type.Bounded() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Equal reports whether t and other describe the same shape. Structs compare
// by identity.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindArray:
		return t.n == other.n && t.lower == other.lower && t.elem.Equal(other.elem)
	case KindSequence:
		return t.n == other.n && t.elem.Equal(other.elem)
	case KindStruct:
		return t.desc.id == other.desc.id
	default:
		return t.n == other.n
	}
}

// New returns a default-initialized value of this type.
func (t *Type) New() Value {
	switch t.kind {
	case KindArray:
		return newArray(t)
	case KindSequence:
		return &Sequence{typ: t}
	case KindStruct:
		return t.desc.New()
	default:
		return &Primitive{typ: t}
	}
}

func (t *Type) String() string {
	switch t.kind {
	case KindString, KindWString:
		if t.n > 0 {
			return t.kind.String() + "<=" + strconv.Itoa(t.n)
		}
		return t.kind.String()
	case KindArray:
		if t.lower != 0 {
			return t.elem.String() + "[" + strconv.Itoa(t.lower) + ".." + strconv.Itoa(t.Upper()) + "]"
		}
		return t.elem.String() + "[" + strconv.Itoa(t.n) + "]"
	case KindSequence:
		if t.n > 0 {
			return t.elem.String() + "[<=" + strconv.Itoa(t.n) + "]"
		}
		return t.elem.String() + "[]"
	case KindStruct:
		return t.desc.name
	default:
		return t.kind.String()
	}
}

// compatible reports whether a value of type src can be assigned to a value
// of type dst. Strings and sequences accept any bound; the length check
// happens on assignment.
func compatible(dst, src *Type) bool {
	if dst.kind != src.kind {
		return false
	}
	switch dst.kind {
	case KindArray:
		return dst.n == src.n && compatible(dst.elem, src.elem)
	case KindSequence:
		return compatible(dst.elem, src.elem)
	case KindStruct:
		return dst.desc.id == src.desc.id
	default:
		return true
	}
}
