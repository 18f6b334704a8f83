package cdr

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/msgcodec/errors"
)

// Reader consumes CDR primitives from a byte slice. Sized reads skip the
// padding their alignment requires; running past the end yields an
// errors.KindUnderrun error.
type Reader struct {
	order binary.ByteOrder
	data  []byte
	pos   int
}

// NewReader reads data with its alignment origin at data[0].
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	return &Reader{order: order, data: data}
}

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) need(n int) error {
	if n < 0 || r.Remaining() < n {
		return errors.Underrun(errors.PhaseDecode, nil, r.pos, n, r.Remaining())
	}
	return nil
}

// Align skips padding until the offset is a multiple of n.
func (r *Reader) Align(n int) error {
	if n <= 1 {
		return nil
	}
	pad := (n - r.pos%n) % n
	if err := r.need(pad); err != nil {
		return err
	}
	r.pos += pad
	return nil
}

// ReadRaw returns the next n bytes without alignment. The slice aliases the input.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// ReadBool treats any non-zero byte as true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.Align(2); err != nil {
		return 0, err
	}
	b, err := r.ReadRaw(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(b), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.Align(4); err != nil {
		return 0, err
	}
	b, err := r.ReadRaw(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.Align(8); err != nil {
		return 0, err
	}
	b, err := r.ReadRaw(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(b), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}
