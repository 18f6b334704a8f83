package yamlvalue

import (
	stderrors "errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/value"
)

func descriptors(t *testing.T) *value.Descriptor {
	t.Helper()
	point, err := value.NewDescriptor(1, "geo/Point", []value.Field{
		{Name: "x", Type: value.Float64},
		{Name: "y", Type: value.Float64},
	})
	require.NoError(t, err)
	d, err := value.NewDescriptor(2, "geo/Shape", []value.Field{
		{Name: "name", Type: value.StringOf(8)},
		{Name: "visible", Type: value.Bool},
		{Name: "level", Type: value.Int8},
		{Name: "mask", Type: value.Uint32},
		{Name: "scale", Type: value.Float32, Default: value.NewFloat32(1)},
		{Name: "tag", Type: value.Char},
		{Name: "glyph", Type: value.WChar},
		{Name: "origin", Type: value.StructOf(point)},
		{Name: "corners", Type: value.ArrayOf(value.Int16, 2)},
		{Name: "path", Type: value.SequenceOf(value.StructOf(point), 3)},
	})
	require.NoError(t, err)
	return d
}

const shapeYAML = `name: square
visible: true
level: -3
mask: 0xff
tag: s
glyph: é
origin:
  x: 1.5
  y: -2
corners: [4, 5]
path:
  - x: 0
    y: 0
  - {x: 1, y: 1e2}
`

func TestUnmarshal(t *testing.T) {
	s := descriptors(t).New()
	require.NoError(t, Unmarshal([]byte(shapeYAML), s))

	prim := func(name string) *value.Primitive {
		v, ok := s.Field(name)
		require.True(t, ok)
		return v.(*value.Primitive)
	}
	assert.Equal(t, "square", prim("name").Text())
	assert.True(t, prim("visible").Bool())
	assert.Equal(t, int64(-3), prim("level").Int())
	assert.Equal(t, uint64(255), prim("mask").Uint())
	assert.Equal(t, 1.0, prim("scale").Float(), "missing fields keep defaults")
	assert.Equal(t, 's', prim("tag").Rune())
	assert.Equal(t, 'é', prim("glyph").Rune())

	origin, _ := s.Field("origin")
	y, _ := origin.(*value.Struct).Field("y")
	assert.Equal(t, -2.0, y.(*value.Primitive).Float())

	path, _ := s.Field("path")
	seq := path.(*value.Sequence)
	require.Equal(t, 2, seq.Len())
	second, _ := seq.At(1)
	py, _ := second.(*value.Struct).Field("y")
	assert.Equal(t, 100.0, py.(*value.Primitive).Float())
}

func TestRoundTrip(t *testing.T) {
	s := descriptors(t).New()
	require.NoError(t, Unmarshal([]byte(shapeYAML), s))

	data, err := Marshal(s)
	require.NoError(t, err)

	out := s.Descriptor().New()
	require.NoError(t, Unmarshal(data, out))
	assert.True(t, out.Equal(s), "yaml:\n%s", data)
}

func TestMarshalLayout(t *testing.T) {
	s := descriptors(t).New()
	require.NoError(t, Unmarshal([]byte("name: a\ncorners: [1, 2]\n"), s))

	data, err := Marshal(s)
	require.NoError(t, err)
	out := string(data)
	for _, line := range []string{
		"name: a\n",
		"visible: false\n",
		"level: 0\n",
		"scale: 1.0\n",
		"origin:\n  x: 0.0\n  y: 0.0\n",
		"corners: [1, 2]\n",
		"path: []\n",
	} {
		assert.Contains(t, out, line)
	}

	keys := []string{"name:", "visible:", "level:", "mask:", "scale:", "tag:", "glyph:", "origin:", "corners:", "path:"}
	last := -1
	for _, k := range keys {
		i := strings.Index(out, "\n"+k)
		if k == "name:" {
			i = strings.Index(out, k)
		}
		assert.Greater(t, i, last, "%s out of order in\n%s", k, out)
		last = i
	}
}

func TestMarshalSpecialFloats(t *testing.T) {
	seq := value.SequenceOf(value.Float64, 0).New().(*value.Sequence)
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 0.25} {
		require.NoError(t, seq.Push(value.NewFloat64(f)))
	}
	data, err := Marshal(seq)
	require.NoError(t, err)
	assert.Equal(t, "[.inf, -.inf, .nan, 0.25]\n", string(data))
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind errors.Kind
		path []string
	}{
		{"unknown field", "color: red\n", errors.KindFieldUnknown, []string{"color"}},
		{"nested unknown", "origin: {z: 1}\n", errors.KindFieldUnknown, []string{"origin", "z"}},
		{"bound exceeded", "path: [{}, {}, {}, {}]\n", errors.KindBoundExceeded, []string{"path"}},
		{"array length", "corners: [1]\n", errors.KindInvalidData, []string{"corners"}},
		{"overflow", "level: 300\n", errors.KindOverflow, []string{"level"}},
		{"negative unsigned", "mask: -1\n", errors.KindOverflow, []string{"mask"}},
		{"bad bool", "visible: maybe\n", errors.KindInvalidData, []string{"visible"}},
		{"not a mapping", "origin: [1, 2]\n", errors.KindInvalidData, []string{"origin"}},
		{"long char", "tag: ab\n", errors.KindInvalidData, []string{"tag"}},
		{"element error", "corners: [1, x]\n", errors.KindInvalidData, []string{"corners", "[1]"}},
		{"duplicate key", "level: 1\nlevel: 2\n", errors.KindInvalidData, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal([]byte(tt.doc), descriptors(t).New())
			require.Error(t, err)
			var e *errors.Error
			require.True(t, stderrors.As(err, &e), "%T %v", err, err)
			assert.Equal(t, tt.kind, e.Kind, err.Error())
			if tt.path != nil {
				assert.Equal(t, tt.path, e.Path)
			}
		})
	}
}

func TestUnmarshalEmptyAndNull(t *testing.T) {
	s := descriptors(t).New()
	require.NoError(t, Unmarshal(nil, s))
	require.NoError(t, Unmarshal([]byte("origin: ~\n"), s))
	assert.True(t, s.Equal(descriptors(t).New()))
}

func TestStringTruncation(t *testing.T) {
	s := descriptors(t).New()
	require.NoError(t, Unmarshal([]byte("name: abcdefghijkl\n"), s))
	v, _ := s.Field("name")
	assert.Equal(t, "abcdefgh", v.(*value.Primitive).Text())
}
