package cdr

import (
	"unicode/utf8"

	"github.com/wippyai/msgcodec/internal/wire"
	"github.com/wippyai/msgcodec/value"
)

// ExactSize returns the number of bytes Marshal produces for v.
func (c *Codec) ExactSize(v value.Value) int {
	return c.ExactSizeAt(v, 0)
}

// ExactSizeAt returns the number of bytes v occupies when serialized at the
// given body offset, padding included.
func (c *Codec) ExactSizeAt(v value.Value, offset int) int {
	if v == nil {
		return 0
	}
	return c.sizeOf(v, offset) - offset
}

// sizeOf returns the offset just past v when serialized at offset.
func (c *Codec) sizeOf(v value.Value, offset int) int {
	if info := c.layout.At(v.Type(), offset); info.Fixed {
		return offset + info.Size
	}
	switch x := v.(type) {
	case *value.Primitive:
		switch x.Kind() {
		case value.KindString:
			return wire.AlignTo(offset, 4) + wire.LengthPrefix + len(x.Text()) + 1
		case value.KindWString:
			return wire.AlignTo(offset, 4) + wire.LengthPrefix + 4*utf8.RuneCountInString(x.Text())
		default:
			w := x.Kind().Width()
			return wire.AlignTo(offset, w) + w
		}
	case *value.Array:
		for _, e := range x.All() {
			offset = c.sizeOf(e, offset)
		}
		return offset
	case *value.Sequence:
		offset = wire.AlignTo(offset, 4) + wire.LengthPrefix
		for _, e := range x.All() {
			offset = c.sizeOf(e, offset)
		}
		return offset
	case *value.Struct:
		for _, f := range x.All() {
			offset = c.sizeOf(f, offset)
		}
		return offset
	default:
		return offset
	}
}

// MaxSize returns the largest encoding of any value of type t. When bounded
// is false the type contains an unbounded string or sequence and n is only
// the size of its fixed part: bounded parts at their maximum plus the length
// prefix of every unbounded part.
func (c *Codec) MaxSize(t *value.Type) (n int, bounded bool) {
	return c.MaxSizeAt(t, 0)
}

// MaxSizeAt is MaxSize for a value starting at the given body offset.
func (c *Codec) MaxSizeAt(t *value.Type, offset int) (n int, bounded bool) {
	if t == nil {
		return 0, true
	}
	info := c.layout.At(t, offset)
	return info.Size, info.Bounded
}
