package msgcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/msgcodec/registry"
	"github.com/wippyai/msgcodec/value"
)

func TestRoundTrip(t *testing.T) {
	reg := registry.New()
	d, err := reg.Register("demo/Sample", []value.Field{
		{Name: "id", Type: value.Uint8},
		{Name: "x", Type: value.Float64},
		{Name: "label", Type: value.String},
	})
	require.NoError(t, err)

	v := d.New()
	id, _ := v.Field("id")
	require.NoError(t, id.(*value.Primitive).SetUint(7))
	x, _ := v.Field("x")
	require.NoError(t, x.(*value.Primitive).SetFloat(2.5))
	label, _ := v.Field("label")
	require.NoError(t, label.(*value.Primitive).SetString("ok"))

	data, err := Marshal(v)
	require.NoError(t, err)
	// id, 7 pad, x, count, "ok\x00"
	assert.Len(t, data, 1+7+8+4+3)
	assert.Equal(t, len(data), Size(v))

	got := d.New()
	require.NoError(t, Unmarshal(data, got))
	assert.True(t, v.Equal(got))

	payload, err := MarshalPayload(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, payload[:4])
	assert.Equal(t, data, payload[4:])

	got = d.New()
	require.NoError(t, UnmarshalPayload(payload, got))
	assert.True(t, v.Equal(got))
}
