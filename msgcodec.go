package msgcodec

import (
	"github.com/wippyai/msgcodec/cdr"
	"github.com/wippyai/msgcodec/value"
)

// defaultCodec is little endian with the default safety limits.
var defaultCodec = cdr.New()

// Marshal encodes v as a little-endian CDR body.
func Marshal(v value.Value) ([]byte, error) {
	return defaultCodec.Marshal(v)
}

// Unmarshal decodes a little-endian CDR body into target.
func Unmarshal(data []byte, target value.Value) error {
	return defaultCodec.Unmarshal(data, target)
}

// MarshalPayload encodes v behind the 4-byte encapsulation header.
func MarshalPayload(v value.Value) ([]byte, error) {
	return defaultCodec.MarshalPayload(v)
}

// UnmarshalPayload decodes a payload, taking the byte order from its header.
func UnmarshalPayload(data []byte, target value.Value) error {
	return defaultCodec.UnmarshalPayload(data, target)
}

// Size returns the number of bytes Marshal would produce for v.
func Size(v value.Value) int {
	return defaultCodec.ExactSize(v)
}
