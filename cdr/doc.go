// Package cdr encodes value trees in the OMG Common Data Representation.
//
// Every primitive is aligned to its own width, measured from the start of the
// CDR body, and alignment is cumulative across the whole value tree:
//
//	bool/byte/char/int8/uint8   1 byte
//	int16/uint16                2 bytes, 2-aligned
//	int32/uint32/float32/wchar  4 bytes, 4-aligned
//	int64/uint64/float64        8 bytes, 8-aligned
//	string                      uint32 length (bytes+1), bytes, NUL
//	wstring                     uint32 length (characters), uint32 per character
//	array                       elements in order
//	sequence                    uint32 count, elements in order
//	struct                      fields in order, no framing
//
// A Codec is immutable after New and safe for concurrent use. Writers and
// Readers are per call.
//
//	c := cdr.New(cdr.WithByteOrder(binary.BigEndian))
//	data, err := c.Marshal(msg)
//	...
//	out := desc.New()
//	err = c.Unmarshal(data, out)
//
// ExactSize returns the length Marshal would produce without writing, and
// MaxSize bounds the encoding of any value of a type.
//
// MarshalPayload and UnmarshalPayload add the 4-byte RTPS encapsulation
// header that names the byte order. The alignment origin follows the header.
package cdr
