package cdr

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/msgcodec/errors"
)

func TestWriterAlign(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	w.WriteUint8(1)
	w.WriteUint16(2)
	w.WriteUint8(3)
	w.WriteUint64(4)

	assert.Equal(t, []byte{
		1, 0, 2, 0,
		3, 0, 0, 0,
		4, 0, 0, 0, 0, 0, 0, 0,
	}, w.Bytes())
	assert.Equal(t, 16, w.Offset())
}

func TestWriterStartBody(t *testing.T) {
	w := NewWriter(binary.LittleEndian)
	w.WriteRaw([]byte{0xAA, 0xBB})
	w.StartBody()
	w.WriteUint32(1)

	assert.Equal(t, []byte{0xAA, 0xBB, 1, 0, 0, 0}, w.Bytes(), "alignment is relative to the body")
	assert.Equal(t, 4, w.Offset())

	w.Reset()
	assert.Empty(t, w.Bytes())
	assert.Equal(t, 0, w.Offset())
}

func TestReaderAlign(t *testing.T) {
	r := NewReader([]byte{1, 0xFF, 2, 0, 3, 0, 0, 0}, binary.LittleEndian)

	b, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(1), b)

	h, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), h)

	w, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(3), w)
	assert.Equal(t, 0, r.Remaining())

	_, err = r.ReadUint8()
	assert.True(t, isKind(err, errors.KindUnderrun))
}

func TestReaderUnderrunOnPadding(t *testing.T) {
	r := NewReader([]byte{1, 0}, binary.LittleEndian)
	_, err := r.ReadUint8()
	require.NoError(t, err)

	_, err = r.ReadUint64()
	assert.True(t, isKind(err, errors.KindUnderrun))
	assert.Equal(t, 1, r.Offset(), "failed reads do not advance")
}

func TestWriterPool(t *testing.T) {
	w := getWriter(binary.BigEndian)
	w.WriteUint16(1)
	putWriter(w)

	again := getWriter(binary.LittleEndian)
	assert.Equal(t, 0, again.Offset())
	putWriter(again)

	big := &Writer{buf: make([]byte, 0, poolMaxCap+1)}
	putWriter(big)
}
