package cdr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/wippyai/msgcodec/cdr/internal/layout"
	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/internal/wire"
	"github.com/wippyai/msgcodec/value"
)

// Codec serializes and deserializes value trees.
type Codec struct {
	order     binary.ByteOrder
	layout    *layout.Calculator
	maxString int
	maxSeq    int
	bigEndian bool
}

type Option func(*Codec)

// WithByteOrder sets the byte order of multi-byte values. The default is
// little endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(c *Codec) {
		if order != nil {
			c.order = order
		}
	}
}

// WithLimits caps decoded string sizes in bytes and sequence lengths in
// elements. Zero keeps the default.
func WithLimits(maxString, maxSequence int) Option {
	return func(c *Codec) {
		if maxString > 0 {
			c.maxString = maxString
		}
		if maxSequence > 0 {
			c.maxSeq = maxSequence
		}
	}
}

func New(opts ...Option) *Codec {
	c := &Codec{
		order:     binary.LittleEndian,
		layout:    layout.NewCalculator(),
		maxString: wire.MaxStringSize,
		maxSeq:    wire.MaxSequenceLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	var probe [2]byte
	c.order.PutUint16(probe[:], 1)
	c.bigEndian = probe[0] == 0
	return c
}

func (c *Codec) ByteOrder() binary.ByteOrder {
	return c.order
}

// Marshal returns the CDR encoding of v.
func (c *Codec) Marshal(v value.Value) ([]byte, error) {
	w := getWriter(c.order)
	defer putWriter(w)

	if err := c.Serialize(w, v); err != nil {
		return nil, err
	}
	out := bytes.Clone(w.Bytes())
	if out == nil {
		out = []byte{}
	}

	Logger().Debug("marshal",
		zap.Stringer("type", v.Type()),
		zap.Int("size", len(out)))
	return out, nil
}

// Serialize appends the encoding of v to w.
func (c *Codec) Serialize(w *Writer, v value.Value) error {
	if v == nil {
		return errors.InvalidInput(errors.PhaseEncode, "nil value")
	}
	return c.encode(w, v)
}

func (c *Codec) encode(w *Writer, v value.Value) error {
	switch x := v.(type) {
	case *value.Primitive:
		return c.encodePrimitive(w, x)
	case *value.Array:
		for i, e := range x.All() {
			if err := c.encode(w, e); err != nil {
				return errors.WithPath(err, index(i))
			}
		}
		return nil
	case *value.Sequence:
		if b := x.Bound(); b > 0 && x.Len() > b {
			return errors.BoundExceeded(errors.PhaseEncode, nil, x.Len(), b)
		}
		if uint64(x.Len()) > math.MaxUint32 {
			return errors.Overflow(errors.PhaseEncode, nil, x.Len(), "uint32 length")
		}
		w.WriteUint32(uint32(x.Len()))
		for i, e := range x.All() {
			if err := c.encode(w, e); err != nil {
				return errors.WithPath(err, index(i))
			}
		}
		return nil
	case *value.Struct:
		for name, f := range x.All() {
			if err := c.encode(w, f); err != nil {
				return errors.WithPath(err, name)
			}
		}
		return nil
	default:
		return errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("value %T", v))
	}
}

func (c *Codec) encodePrimitive(w *Writer, p *value.Primitive) error {
	switch p.Kind() {
	case value.KindBool:
		w.WriteBool(p.Bool())
	case value.KindByte, value.KindChar, value.KindInt8, value.KindUint8:
		w.WriteUint8(uint8(p.Bits()))
	case value.KindInt16, value.KindUint16:
		w.WriteUint16(uint16(p.Bits()))
	case value.KindInt32, value.KindUint32, value.KindWChar:
		w.WriteUint32(uint32(p.Bits()))
	case value.KindInt64, value.KindUint64:
		w.WriteUint64(p.Bits())
	case value.KindFloat32:
		w.WriteFloat32(float32(p.Float()))
	case value.KindFloat64:
		w.WriteFloat64(p.Float())
	case value.KindString:
		s := p.Text()
		if uint64(len(s)) >= math.MaxUint32 {
			return errors.Overflow(errors.PhaseEncode, nil, len(s), "uint32 length")
		}
		w.WriteString(s)
	case value.KindWString:
		runes := []rune(p.Text())
		if uint64(len(runes)) > math.MaxUint32 {
			return errors.Overflow(errors.PhaseEncode, nil, len(runes), "uint32 length")
		}
		w.WriteWString(runes)
	default:
		return errors.Unsupported(errors.PhaseEncode, "primitive kind "+p.Kind().String())
	}
	return nil
}

// Unmarshal decodes data into target, which must already have the expected
// type (for example a struct created with Descriptor.New). Trailing bytes
// after the value are ignored. On error target may be partially updated.
func (c *Codec) Unmarshal(data []byte, target value.Value) error {
	r := NewReader(data, c.order)
	if err := c.Deserialize(r, target); err != nil {
		return err
	}
	if r.Remaining() > 0 {
		Logger().Debug("unmarshal left trailing bytes",
			zap.Stringer("type", target.Type()),
			zap.Int("trailing", r.Remaining()))
	}
	return nil
}

// Deserialize reads one value of target's type from r into target.
func (c *Codec) Deserialize(r *Reader, target value.Value) error {
	if target == nil {
		return errors.InvalidInput(errors.PhaseDecode, "nil target")
	}
	return c.decode(r, target)
}

func (c *Codec) decode(r *Reader, v value.Value) error {
	switch x := v.(type) {
	case *value.Primitive:
		return c.decodePrimitive(r, x)
	case *value.Array:
		for i, e := range x.All() {
			if err := c.decode(r, e); err != nil {
				return errors.WithPath(err, index(i))
			}
		}
		return nil
	case *value.Sequence:
		return c.decodeSequence(r, x)
	case *value.Struct:
		for name, f := range x.All() {
			if err := c.decode(r, f); err != nil {
				return errors.WithPath(err, name)
			}
		}
		return nil
	default:
		return errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("value %T", v))
	}
}

func (c *Codec) decodeSequence(r *Reader, s *value.Sequence) error {
	n32, err := r.ReadUint32()
	if err != nil {
		return err
	}
	n := int(n32)
	if b := s.Bound(); b > 0 && n > b {
		return errors.BoundExceeded(errors.PhaseDecode, nil, n, b)
	}
	if n > c.maxSeq {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Value(n).
			Detail("sequence length %d exceeds limit %d", n, c.maxSeq).
			Build()
	}
	// Every element takes at least one byte except empty structs, so a count
	// larger than the rest of the input cannot be valid.
	if least := minElemSize(s.Type().Elem()); least > 0 {
		if need, ok := wire.SafeMul(n, least); !ok || need > r.Remaining() {
			return errors.Underrun(errors.PhaseDecode, nil, r.Offset(), need, r.Remaining())
		}
	}
	if err := s.Resize(n); err != nil {
		return err
	}
	for i, e := range s.All() {
		if err := c.decode(r, e); err != nil {
			return errors.WithPath(err, index(i))
		}
	}
	return nil
}

func (c *Codec) decodePrimitive(r *Reader, p *value.Primitive) error {
	var err error
	switch p.Kind() {
	case value.KindBool:
		var b bool
		if b, err = r.ReadBool(); err == nil {
			err = p.SetBool(b)
		}
	case value.KindInt8:
		var b uint8
		if b, err = r.ReadUint8(); err == nil {
			err = p.SetInt(int64(int8(b)))
		}
	case value.KindByte, value.KindChar, value.KindUint8:
		var b uint8
		if b, err = r.ReadUint8(); err == nil {
			err = p.SetUint(uint64(b))
		}
	case value.KindInt16:
		var u uint16
		if u, err = r.ReadUint16(); err == nil {
			err = p.SetInt(int64(int16(u)))
		}
	case value.KindUint16:
		var u uint16
		if u, err = r.ReadUint16(); err == nil {
			err = p.SetUint(uint64(u))
		}
	case value.KindInt32:
		var u uint32
		if u, err = r.ReadUint32(); err == nil {
			err = p.SetInt(int64(int32(u)))
		}
	case value.KindUint32, value.KindWChar:
		var u uint32
		if u, err = r.ReadUint32(); err == nil {
			err = p.SetUint(uint64(u))
		}
	case value.KindInt64:
		var u uint64
		if u, err = r.ReadUint64(); err == nil {
			err = p.SetInt(int64(u))
		}
	case value.KindUint64:
		var u uint64
		if u, err = r.ReadUint64(); err == nil {
			err = p.SetUint(u)
		}
	case value.KindFloat32:
		var f float32
		if f, err = r.ReadFloat32(); err == nil {
			err = p.SetFloat(float64(f))
		}
	case value.KindFloat64:
		var f float64
		if f, err = r.ReadFloat64(); err == nil {
			err = p.SetFloat(f)
		}
	case value.KindString:
		var s string
		if s, err = c.readString(r); err == nil {
			err = p.SetString(s)
		}
	case value.KindWString:
		var s string
		if s, err = c.readWString(r); err == nil {
			err = p.SetString(s)
		}
	default:
		err = errors.Unsupported(errors.PhaseDecode, "primitive kind "+p.Kind().String())
	}
	return err
}

func (c *Codec) readString(r *Reader) (string, error) {
	n32, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	// A zero length is written by some encoders for the empty string.
	if n32 == 0 {
		return "", nil
	}
	n := int(n32)
	if n-1 > c.maxString {
		return "", errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Value(n - 1).
			Detail("string length %d exceeds limit %d", n-1, c.maxString).
			Build()
	}
	b, err := r.ReadRaw(n)
	if err != nil {
		return "", err
	}
	if b[n-1] != 0 {
		return "", errors.InvalidData(errors.PhaseDecode, nil, "string is missing its NUL terminator")
	}
	return string(b[:n-1]), nil
}

func (c *Codec) readWString(r *Reader) (string, error) {
	n32, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	n := int(n32)
	if n > c.maxString {
		return "", errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Value(n).
			Detail("wstring length %d exceeds limit %d", n, c.maxString).
			Build()
	}
	raw, err := r.ReadRaw(n * 4)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		ch := rune(c.order.Uint32(raw[i*4:]))
		if !utf8.ValidRune(ch) {
			return "", errors.InvalidData(errors.PhaseDecode, nil, "invalid character U+"+strconv.FormatUint(uint64(uint32(ch)), 16))
		}
		buf = utf8.AppendRune(buf, ch)
	}
	return string(buf), nil
}

// minElemSize returns the fewest bytes one element of t can occupy.
func minElemSize(t *value.Type) int {
	switch k := t.Kind(); {
	case k.IsScalar():
		return k.Width()
	case k.IsString(), k == value.KindSequence:
		return wire.LengthPrefix
	case k == value.KindArray:
		return t.Len() * minElemSize(t.Elem())
	case k == value.KindStruct:
		d := t.Descriptor()
		total := 0
		for i := range d.FieldCount() {
			f, _ := d.Field(i)
			total += minElemSize(f.Type)
		}
		return total
	default:
		return 0
	}
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
