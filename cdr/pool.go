package cdr

import (
	"encoding/binary"
	"sync"
)

const (
	// Pool limits to prevent memory bloat
	poolMaxCap  = 64 << 10
	poolInitCap = 256
)

var writerPool = sync.Pool{
	New: func() any {
		return &Writer{buf: make([]byte, 0, poolInitCap)}
	},
}

func getWriter(order binary.ByteOrder) *Writer {
	w := writerPool.Get().(*Writer)
	w.order = order
	return w
}

func putWriter(w *Writer) {
	if w == nil || cap(w.buf) > poolMaxCap {
		return // reject oversized
	}
	w.Reset()
	w.order = nil
	writerPool.Put(w)
}
