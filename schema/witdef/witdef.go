package witdef

import (
	"fmt"
	"io"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/registry"
	"github.com/wippyai/msgcodec/value"
)

// Importer converts WIT type definitions into registered descriptors.
// Each record is registered once, under Package/snake_name when a package
// is set.
type Importer struct {
	reg     *registry.Registry
	pkg     string
	done    map[*wit.TypeDef]*value.Descriptor
	pending map[*wit.TypeDef]bool
}

// NewImporter returns an importer registering into reg.
func NewImporter(reg *registry.Registry, pkg string) *Importer {
	return &Importer{
		reg:     reg,
		pkg:     pkg,
		done:    make(map[*wit.TypeDef]*value.Descriptor),
		pending: make(map[*wit.TypeDef]bool),
	}
}

// ImportJSON decodes a resolved WIT package in the JSON form produced by
// wasm-tools and imports all its records.
func ImportJSON(r io.Reader, reg *registry.Registry, pkg string) ([]*value.Descriptor, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.Load("decode WIT JSON", err)
	}
	return NewImporter(reg, pkg).Resolve(res)
}

// Resolve imports every named record of res, in declaration order.
func (im *Importer) Resolve(res *wit.Resolve) ([]*value.Descriptor, error) {
	var out []*value.Descriptor
	for _, td := range res.TypeDefs {
		if _, ok := td.Kind.(*wit.Record); !ok || td.Name == nil {
			continue
		}
		d, err := im.Record(td)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Record imports the record td, after any records it references.
func (im *Importer) Record(td *wit.TypeDef) (*value.Descriptor, error) {
	if d, ok := im.done[td]; ok {
		return d, nil
	}
	rec, ok := td.Kind.(*wit.Record)
	if !ok {
		return nil, unsupported([]string{typeDefName(td)}, fmt.Sprintf("%T is not a record", td.Kind))
	}
	if td.Name == nil {
		return nil, errors.InvalidInput(errors.PhaseLoad, "anonymous record")
	}
	name := im.registryName(*td.Name)
	if im.pending[td] {
		return nil, errors.New(errors.PhaseLoad, errors.KindCycle).
			Path(name).Detail("record refers to itself").Build()
	}
	im.pending[td] = true
	defer delete(im.pending, td)

	fields := make([]value.Field, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		fname := snakeCase(f.Name)
		typ, err := im.typeOf(f.Type, []string{name, fname})
		if err != nil {
			return nil, err
		}
		fields = append(fields, value.Field{Name: fname, Type: typ, Comment: f.Docs.Contents})
	}

	d, err := im.reg.Register(name, fields, value.WithComment(td.Docs.Contents))
	if err != nil {
		return nil, err
	}
	im.done[td] = d
	return d, nil
}

func (im *Importer) registryName(witName string) string {
	name := snakeCase(witName)
	if im.pkg == "" {
		return name
	}
	return im.pkg + "/" + name
}

func (im *Importer) typeOf(t wit.Type, path []string) (*value.Type, error) {
	switch t := t.(type) {
	case wit.Bool:
		return value.Bool, nil
	case wit.U8:
		return value.Uint8, nil
	case wit.S8:
		return value.Int8, nil
	case wit.U16:
		return value.Uint16, nil
	case wit.S16:
		return value.Int16, nil
	case wit.U32:
		return value.Uint32, nil
	case wit.S32:
		return value.Int32, nil
	case wit.U64:
		return value.Uint64, nil
	case wit.S64:
		return value.Int64, nil
	case wit.F32:
		return value.Float32, nil
	case wit.F64:
		return value.Float64, nil
	case wit.Char:
		return value.WChar, nil
	case wit.String:
		return value.String, nil
	case *wit.TypeDef:
		return im.typeDef(t, path)
	default:
		return nil, unsupported(path, fmt.Sprintf("WIT type %T", t))
	}
}

func (im *Importer) typeDef(td *wit.TypeDef, path []string) (*value.Type, error) {
	switch kind := td.Kind.(type) {
	case *wit.Record:
		d, err := im.Record(td)
		if err != nil {
			return nil, err
		}
		return value.StructOf(d), nil
	case *wit.List:
		elem, err := im.typeOf(kind.Type, append(append([]string{}, path...), "[elem]"))
		if err != nil {
			return nil, err
		}
		return value.SequenceOf(elem, 0), nil
	case *wit.Enum:
		return value.Uint32, nil
	case wit.Type:
		return im.typeOf(kind, path)
	default:
		return nil, unsupported(path, fmt.Sprintf("WIT %s %s", kindName(kind), typeDefName(td)))
	}
}

func unsupported(path []string, what string) error {
	return errors.New(errors.PhaseLoad, errors.KindUnsupported).
		Path(path...).Detail("%s", what).Build()
}

func typeDefName(td *wit.TypeDef) string {
	if td.Name == nil {
		return "(anonymous)"
	}
	return *td.Name
}

func kindName(k wit.TypeDefKind) string {
	switch k.(type) {
	case *wit.Variant:
		return "variant"
	case *wit.Option:
		return "option"
	case *wit.Result:
		return "result"
	case *wit.Tuple:
		return "tuple"
	case *wit.Flags:
		return "flags"
	case *wit.Own, *wit.Borrow:
		return "resource"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", k), "*wit.")
	}
}

func snakeCase(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}
