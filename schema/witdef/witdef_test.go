package witdef

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/registry"
	"github.com/wippyai/msgcodec/value"
)

func ptr(s string) *string { return &s }

func record(name string, fields ...wit.Field) *wit.TypeDef {
	return &wit.TypeDef{Name: ptr(name), Kind: &wit.Record{Fields: fields}}
}

func TestRecordPrimitives(t *testing.T) {
	td := record("sample",
		wit.Field{Name: "flag", Type: wit.Bool{}},
		wit.Field{Name: "u8", Type: wit.U8{}},
		wit.Field{Name: "s8", Type: wit.S8{}},
		wit.Field{Name: "u16", Type: wit.U16{}},
		wit.Field{Name: "s16", Type: wit.S16{}},
		wit.Field{Name: "u32", Type: wit.U32{}},
		wit.Field{Name: "s32", Type: wit.S32{}},
		wit.Field{Name: "u64", Type: wit.U64{}},
		wit.Field{Name: "s64", Type: wit.S64{}},
		wit.Field{Name: "f32", Type: wit.F32{}},
		wit.Field{Name: "max-speed", Type: wit.F64{}},
		wit.Field{Name: "letter", Type: wit.Char{}},
		wit.Field{Name: "label", Type: wit.String{}},
	)

	reg := registry.New()
	d, err := NewImporter(reg, "demo").Record(td)
	require.NoError(t, err)

	assert.Equal(t, "demo/sample", d.Name())
	want := []string{"bool", "uint8", "int8", "uint16", "int16", "uint32", "int32",
		"uint64", "int64", "float32", "float64", "wchar", "string"}
	require.Equal(t, len(want), d.FieldCount())
	for i, w := range want {
		f, _ := d.Field(i)
		assert.Equal(t, w, f.Type.String(), f.Name)
	}
	_, ok := d.Index("max_speed")
	assert.True(t, ok)

	again, err := NewImporter(reg, "other").Record(record("sample"))
	require.NoError(t, err)
	assert.Equal(t, "other/sample", again.Name())
}

func TestNestedRecordsAndLists(t *testing.T) {
	point := record("point",
		wit.Field{Name: "x", Type: wit.F64{}},
		wit.Field{Name: "y", Type: wit.F64{}},
	)
	meters := &wit.TypeDef{Name: ptr("meters"), Kind: wit.F32{}}
	alias := &wit.TypeDef{Name: ptr("location"), Kind: point}
	path := record("path",
		wit.Field{Name: "start", Type: alias},
		wit.Field{Name: "points", Type: &wit.TypeDef{Kind: &wit.List{Type: point}}},
		wit.Field{Name: "length", Type: meters},
		wit.Field{Name: "mode", Type: &wit.TypeDef{Name: ptr("mode"), Kind: &wit.Enum{}}},
	)

	reg := registry.New()
	got, err := NewImporter(reg, "").Resolve(&wit.Resolve{
		TypeDefs: []*wit.TypeDef{meters, path, point, alias},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "path", got[0].Name())
	assert.Equal(t, "point", got[1].Name())

	p, ok := reg.Lookup("point")
	require.True(t, ok)
	assert.Same(t, p, got[1])

	start, _ := got[0].Field(0)
	assert.Same(t, p, start.Type.Descriptor())
	points, _ := got[0].Field(1)
	assert.Equal(t, "point[]", points.Type.String())
	length, _ := got[0].Field(2)
	assert.Equal(t, value.Float32, length.Type)
	mode, _ := got[0].Field(3)
	assert.Equal(t, value.Uint32, mode.Type)
}

func TestUnsupported(t *testing.T) {
	tests := []struct {
		name string
		kind wit.TypeDefKind
		want string
	}{
		{"option", &wit.Option{Type: wit.U8{}}, "option"},
		{"result", &wit.Result{}, "result"},
		{"variant", &wit.Variant{}, "variant"},
		{"tuple", &wit.Tuple{Types: []wit.Type{wit.U8{}}}, "tuple"},
		{"flags", &wit.Flags{}, "flags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := record("holder", wit.Field{Name: "inner", Type: &wit.TypeDef{Kind: tt.kind}})
			_, err := NewImporter(registry.New(), "").Record(td)
			require.Error(t, err)

			var e *errors.Error
			require.True(t, stderrors.As(err, &e))
			assert.Equal(t, errors.KindUnsupported, e.Kind)
			assert.Equal(t, []string{"holder", "inner"}, e.Path)
			assert.Contains(t, e.Detail, tt.want)
		})
	}
}

func TestNotARecord(t *testing.T) {
	td := &wit.TypeDef{Name: ptr("choice"), Kind: &wit.Variant{}}
	_, err := NewImporter(registry.New(), "").Record(td)
	assert.True(t, stderrors.Is(err, &errors.Error{Kind: errors.KindUnsupported}))
}

func TestDuplicateRegistration(t *testing.T) {
	reg := registry.New()
	_, err := reg.Register("point", nil)
	require.NoError(t, err)

	_, err = NewImporter(reg, "").Record(record("point"))
	assert.True(t, stderrors.Is(err, &errors.Error{Kind: errors.KindDuplicate}))
}

func TestImportJSONMalformed(t *testing.T) {
	_, err := ImportJSON(strings.NewReader("{not json"), registry.New(), "")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidData}))
}
