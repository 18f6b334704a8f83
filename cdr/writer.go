package cdr

import (
	"encoding/binary"
	"math"
)

// Writer appends CDR primitives to a byte buffer. Every sized write first
// pads the buffer to the width of the value, measured from the body origin.
type Writer struct {
	order binary.ByteOrder
	buf   []byte
	base  int // index of the body origin in buf
}

// NewWriter creates a Writer with an empty buffer.
func NewWriter(order binary.ByteOrder) *Writer {
	return &Writer{order: order}
}

// Bytes returns everything written so far, including any header before the
// body origin. The slice aliases the internal buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Offset returns the current position relative to the body origin.
func (w *Writer) Offset() int {
	return len(w.buf) - w.base
}

// Reset discards the buffer contents and moves the origin to the start.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.base = 0
}

// StartBody marks the current position as the alignment origin.
func (w *Writer) StartBody() {
	w.base = len(w.buf)
}

// Align writes zero bytes until the offset is a multiple of n.
func (w *Writer) Align(n int) {
	if n <= 1 {
		return
	}
	for pad := (n - w.Offset()%n) % n; pad > 0; pad-- {
		w.buf = append(w.buf, 0)
	}
}

func (w *Writer) grow(n int) []byte {
	l := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return w.buf[l:]
}

// WriteRaw appends data without alignment.
func (w *Writer) WriteRaw(data []byte) {
	w.buf = append(w.buf, data...)
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

func (w *Writer) WriteUint16(v uint16) {
	w.Align(2)
	w.order.PutUint16(w.grow(2), v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.Align(4)
	w.order.PutUint32(w.grow(4), v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.Align(8)
	w.order.PutUint64(w.grow(8), v)
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteString writes a length prefix counting the terminator, the bytes and a NUL.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s) + 1))
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

// WriteWString writes a character count followed by one uint32 per character.
func (w *Writer) WriteWString(runes []rune) {
	w.WriteUint32(uint32(len(runes)))
	for _, r := range runes {
		w.order.PutUint32(w.grow(4), uint32(r))
	}
}
