package value

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/internal/coerce"
)

// Primitive holds a scalar or a string.
//
// Integers are stored sign-extended in bits, floats as float64 bits (float32
// values are rounded on assignment), chars as their code point.
type Primitive struct {
	typ  *Type
	s    string
	bits uint64
}

// NewPrimitive returns a default-initialized primitive of type t.
// It panics if t is not a primitive type.
func NewPrimitive(t *Type) *Primitive {
	if t == nil || !t.kind.IsPrimitive() {
		panic("value: NewPrimitive with non-primitive type")
	}
	return &Primitive{typ: t}
}

func NewBool(v bool) *Primitive {
	p := &Primitive{typ: Bool}
	if v {
		p.bits = 1
	}
	return p
}

func NewInt8(v int8) *Primitive   { return &Primitive{typ: Int8, bits: uint64(int64(v))} }
func NewInt16(v int16) *Primitive { return &Primitive{typ: Int16, bits: uint64(int64(v))} }
func NewInt32(v int32) *Primitive { return &Primitive{typ: Int32, bits: uint64(int64(v))} }
func NewInt64(v int64) *Primitive { return &Primitive{typ: Int64, bits: uint64(v)} }

func NewByte(v byte) *Primitive     { return &Primitive{typ: Byte, bits: uint64(v)} }
func NewUint8(v uint8) *Primitive   { return &Primitive{typ: Uint8, bits: uint64(v)} }
func NewUint16(v uint16) *Primitive { return &Primitive{typ: Uint16, bits: uint64(v)} }
func NewUint32(v uint32) *Primitive { return &Primitive{typ: Uint32, bits: uint64(v)} }
func NewUint64(v uint64) *Primitive { return &Primitive{typ: Uint64, bits: v} }

func NewFloat32(v float32) *Primitive {
	return &Primitive{typ: Float32, bits: math.Float64bits(float64(v))}
}

func NewFloat64(v float64) *Primitive {
	return &Primitive{typ: Float64, bits: math.Float64bits(v)}
}

func NewChar(v byte) *Primitive  { return &Primitive{typ: Char, bits: uint64(v)} }
func NewWChar(v rune) *Primitive { return &Primitive{typ: WChar, bits: uint64(uint32(v))} }

func NewString(s string) *Primitive  { return &Primitive{typ: String, s: s} }
func NewWString(s string) *Primitive { return &Primitive{typ: WString, s: s} }

func (p *Primitive) Type() *Type { return p.typ }

func (p *Primitive) Kind() Kind { return p.typ.kind }

func (p *Primitive) Bool() bool { return p.bits != 0 }

// Int returns integer kinds as int64. Floats are truncated toward zero.
func (p *Primitive) Int() int64 {
	if p.typ.kind.IsFloat() {
		return int64(p.Float())
	}
	return int64(p.bits)
}

// Uint returns integer kinds as uint64.
func (p *Primitive) Uint() uint64 {
	if p.typ.kind.IsFloat() {
		return uint64(p.Float())
	}
	return p.bits
}

func (p *Primitive) Float() float64 {
	switch {
	case p.typ.kind.IsFloat():
		return math.Float64frombits(p.bits)
	case p.typ.kind.IsSigned():
		return float64(int64(p.bits))
	default:
		return float64(p.bits)
	}
}

func (p *Primitive) Text() string { return p.s }

func (p *Primitive) Rune() rune { return rune(uint32(p.bits)) }

// Bits returns the raw storage word: sign-extended integers, float64 bits
// for floats, code points for chars.
func (p *Primitive) Bits() uint64 { return p.bits }

// Interface returns the value as its natural Go type.
func (p *Primitive) Interface() any {
	switch p.typ.kind {
	case KindBool:
		return p.bits != 0
	case KindByte, KindChar, KindUint8:
		return uint8(p.bits)
	case KindInt8:
		return int8(p.bits)
	case KindInt16:
		return int16(p.bits)
	case KindUint16:
		return uint16(p.bits)
	case KindInt32:
		return int32(p.bits)
	case KindUint32:
		return uint32(p.bits)
	case KindInt64:
		return int64(p.bits)
	case KindUint64:
		return p.bits
	case KindFloat32:
		return float32(math.Float64frombits(p.bits))
	case KindFloat64:
		return math.Float64frombits(p.bits)
	case KindWChar:
		return rune(uint32(p.bits))
	default:
		return p.s
	}
}

func (p *Primitive) mismatch(got string) error {
	return errors.TypeMismatch(errors.PhaseAccess, nil, got, p.typ.String())
}

func (p *Primitive) SetBool(v bool) error {
	if p.typ.kind != KindBool {
		return p.mismatch("bool")
	}
	p.bits = 0
	if v {
		p.bits = 1
	}
	return nil
}

// SetInt stores v into any integer or float kind, failing when v does not fit.
func (p *Primitive) SetInt(v int64) error {
	k := p.typ.kind
	switch {
	case k.IsSigned():
		if !coerce.IntFits(v, k.Bits()) {
			return errors.Overflow(errors.PhaseAccess, nil, v, p.typ.String())
		}
		p.bits = uint64(v)
	case k.IsUnsigned(), k == KindChar, k == KindWChar:
		if v < 0 || !coerce.UintFits(uint64(v), k.Bits()) {
			return errors.Overflow(errors.PhaseAccess, nil, v, p.typ.String())
		}
		p.bits = uint64(v)
	case k.IsFloat():
		return p.SetFloat(float64(v))
	default:
		return p.mismatch("int64")
	}
	return nil
}

func (p *Primitive) SetUint(v uint64) error {
	k := p.typ.kind
	switch {
	case k.IsSigned():
		if v > math.MaxInt64 || !coerce.IntFits(int64(v), k.Bits()) {
			return errors.Overflow(errors.PhaseAccess, nil, v, p.typ.String())
		}
		p.bits = v
	case k.IsUnsigned(), k == KindChar, k == KindWChar:
		if !coerce.UintFits(v, k.Bits()) {
			return errors.Overflow(errors.PhaseAccess, nil, v, p.typ.String())
		}
		p.bits = v
	case k.IsFloat():
		return p.SetFloat(float64(v))
	default:
		return p.mismatch("uint64")
	}
	return nil
}

// SetFloat stores v into a float kind. float32 targets round to the nearest
// representable value; finite values beyond the float32 range overflow.
func (p *Primitive) SetFloat(v float64) error {
	switch p.typ.kind {
	case KindFloat32:
		if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
			return errors.Overflow(errors.PhaseAccess, nil, v, p.typ.String())
		}
		p.bits = math.Float64bits(float64(float32(v)))
	case KindFloat64:
		p.bits = math.Float64bits(v)
	default:
		return p.mismatch("float64")
	}
	return nil
}

// SetString stores s into a string kind, truncating it to the type bound.
// string bounds count bytes, wstring bounds count characters.
func (p *Primitive) SetString(s string) error {
	switch p.typ.kind {
	case KindString:
		if p.typ.n > 0 && len(s) > p.typ.n {
			s = s[:p.typ.n]
		}
	case KindWString:
		if p.typ.n > 0 && utf8.RuneCountInString(s) > p.typ.n {
			s = truncateRunes(s, p.typ.n)
		}
	default:
		return p.mismatch("string")
	}
	p.s = s
	return nil
}

// SetRune stores a character into a char or wchar.
func (p *Primitive) SetRune(r rune) error {
	switch p.typ.kind {
	case KindChar:
		if r < 0 || r > math.MaxUint8 {
			return errors.Overflow(errors.PhaseAccess, nil, r, "char")
		}
	case KindWChar:
		if r < 0 {
			return errors.Overflow(errors.PhaseAccess, nil, r, "wchar")
		}
	default:
		return p.mismatch("rune")
	}
	p.bits = uint64(uint32(r))
	return nil
}

// Set stores a Go value, converting between numeric types when the value fits.
// Chars accept one-character strings as well as numbers.
func (p *Primitive) Set(v any) error {
	if src, ok := v.(Value); ok {
		return p.assign(src)
	}
	k := p.typ.kind
	switch {
	case k == KindBool:
		b, ok := v.(bool)
		if !ok {
			return p.mismatch(coerce.TypeName(v))
		}
		return p.SetBool(b)
	case k.IsString():
		s, ok := v.(string)
		if !ok {
			return p.mismatch(coerce.TypeName(v))
		}
		return p.SetString(s)
	case k == KindChar || k == KindWChar:
		if s, ok := v.(string); ok {
			r, size := utf8.DecodeRuneInString(s)
			if size == 0 || size != len(s) {
				return errors.InvalidData(errors.PhaseAccess, nil, "char needs exactly one character, got "+strconv.Quote(s))
			}
			return p.SetRune(r)
		}
	case k.IsFloat():
		f, ok := coerce.ToFloat64(v)
		if !ok {
			return p.mismatch(coerce.TypeName(v))
		}
		return p.SetFloat(f)
	}
	if i, ok := coerce.ToInt64(v); ok {
		return p.SetInt(i)
	}
	if u, ok := coerce.ToUint64(v); ok {
		return p.SetUint(u)
	}
	return p.mismatch(coerce.TypeName(v))
}

// Assign copies src, which must be a primitive of the same kind.
func (p *Primitive) Assign(src Value) error {
	return p.assign(src)
}

func (p *Primitive) assign(src Value) error {
	o, ok := src.(*Primitive)
	if !ok || o == nil || o.typ.kind != p.typ.kind {
		return errors.TypeMismatch(errors.PhaseAccess, nil, typeString(src), p.typ.String())
	}
	if p.typ.kind.IsString() {
		return p.SetString(o.s)
	}
	p.bits = o.bits
	return nil
}

func (p *Primitive) Equal(other Value) bool {
	o, ok := other.(*Primitive)
	if !ok || o == nil {
		return false
	}
	return p.typ.Equal(o.typ) && p.bits == o.bits && p.s == o.s
}

func (p *Primitive) Clone() Value {
	cp := *p
	return &cp
}

func (p *Primitive) Reset() {
	p.bits = 0
	p.s = ""
}

func (p *Primitive) String() string {
	switch p.typ.kind {
	case KindBool:
		return strconv.FormatBool(p.bits != 0)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(int64(p.bits), 10)
	case KindFloat32:
		return strconv.FormatFloat(math.Float64frombits(p.bits), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(math.Float64frombits(p.bits), 'g', -1, 64)
	case KindChar, KindWChar:
		return strconv.QuoteRune(rune(uint32(p.bits)))
	case KindString, KindWString:
		return strconv.Quote(p.s)
	default:
		return strconv.FormatUint(p.bits, 10)
	}
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func typeString(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type().String()
}
