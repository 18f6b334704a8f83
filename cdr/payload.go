package cdr

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/value"
)

// Representation identifiers of the RTPS serialized payload header.
const (
	ReprCDRBE uint16 = 0x0000
	ReprCDRLE uint16 = 0x0001
)

// HeaderSize is the length of the encapsulation header.
const HeaderSize = 4

// MarshalPayload returns the encoding of v behind an encapsulation header
// naming the codec's byte order.
func (c *Codec) MarshalPayload(v value.Value) ([]byte, error) {
	w := getWriter(c.order)
	defer putWriter(w)

	repr := ReprCDRLE
	if c.bigEndian {
		repr = ReprCDRBE
	}
	var header [HeaderSize]byte
	binary.BigEndian.PutUint16(header[:2], repr)
	w.WriteRaw(header[:])
	w.StartBody()

	if err := c.Serialize(w, v); err != nil {
		return nil, err
	}
	out := make([]byte, len(w.Bytes()))
	copy(out, w.Bytes())

	Logger().Debug("marshal payload",
		zap.Stringer("type", v.Type()),
		zap.Uint16("representation", repr),
		zap.Int("size", len(out)))
	return out, nil
}

// UnmarshalPayload decodes a payload written by MarshalPayload or any CDR
// encapsulation, taking the byte order from the header rather than the codec.
func (c *Codec) UnmarshalPayload(data []byte, target value.Value) error {
	order, err := PayloadByteOrder(data)
	if err != nil {
		return err
	}
	body := *c
	body.order = order
	body.bigEndian = order == binary.ByteOrder(binary.BigEndian)
	return body.Unmarshal(data[HeaderSize:], target)
}

// PayloadByteOrder reads the encapsulation header of data.
func PayloadByteOrder(data []byte) (binary.ByteOrder, error) {
	if len(data) < HeaderSize {
		return nil, errors.Underrun(errors.PhaseDecode, []string{"header"}, 0, HeaderSize, len(data))
	}
	switch repr := binary.BigEndian.Uint16(data[:2]); repr {
	case ReprCDRBE:
		return binary.BigEndian, nil
	case ReprCDRLE:
		return binary.LittleEndian, nil
	default:
		return nil, errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("representation identifier 0x%04x", repr))
	}
}
