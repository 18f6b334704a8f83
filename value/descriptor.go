package value

import (
	"github.com/wippyai/msgcodec/errors"
)

// Field declares one slot of a struct.
type Field struct {
	// Default, when set, replaces the type's zero value in new structs.
	Default Value
	Type    *Type
	Name    string
	Comment string
}

// Constant is a named primitive attached to a descriptor. Constants take no
// space in struct instances.
type Constant struct {
	Value   *Primitive
	Name    string
	Comment string
}

// Descriptor is the immutable schema of a struct type.
type Descriptor struct {
	typ       *Type
	index     map[string]int
	name      string
	comment   string
	fields    []Field
	constants []Constant
	id        Identity
}

type DescriptorOption func(*Descriptor)

func WithConstants(c ...Constant) DescriptorOption {
	return func(d *Descriptor) {
		d.constants = append(d.constants, c...)
	}
}

func WithComment(comment string) DescriptorOption {
	return func(d *Descriptor) {
		d.comment = comment
	}
}

// NewDescriptor validates fields and builds a descriptor. Defaults are copied
// and converted to the field type, so later changes to the caller's values do
// not leak into the schema.
func NewDescriptor(id Identity, name string, fields []Field, opts ...DescriptorOption) (*Descriptor, error) {
	if !id.Valid() {
		return nil, errors.InvalidInput(errors.PhaseRegister, "descriptor "+name+": invalid identity")
	}
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseRegister, "descriptor name is empty")
	}

	d := &Descriptor{
		id:     id,
		name:   name,
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	d.typ = &Type{kind: KindStruct, desc: d}

	for i, f := range fields {
		if f.Name == "" {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Path(name).
				Detail("field %d has no name", i).
				Build()
		}
		if _, dup := d.index[f.Name]; dup {
			return nil, errors.Duplicate(errors.PhaseRegister, "field", name+"."+f.Name)
		}
		if f.Type == nil {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Path(name, f.Name).
				Detail("field has no type").
				Build()
		}
		if f.Default != nil {
			def := f.Type.New()
			if err := def.assign(f.Default); err != nil {
				return nil, errors.WithPath(err, name, f.Name)
			}
			f.Default = def
		}
		d.fields[i] = f
		d.index[f.Name] = i
	}

	for _, opt := range opts {
		opt(d)
	}
	seen := make(map[string]struct{}, len(d.constants))
	for i, c := range d.constants {
		if c.Name == "" || c.Value == nil {
			return nil, errors.InvalidInput(errors.PhaseRegister, "constant in "+name+" needs a name and a value")
		}
		if _, dup := seen[c.Name]; dup {
			return nil, errors.Duplicate(errors.PhaseRegister, "constant", name+"."+c.Name)
		}
		seen[c.Name] = struct{}{}
		d.constants[i].Value = c.Value.Clone().(*Primitive)
	}
	return d, nil
}

func (d *Descriptor) Identity() Identity { return d.id }

func (d *Descriptor) Name() string { return d.name }

func (d *Descriptor) Comment() string { return d.comment }

// Type returns the struct type for this descriptor.
func (d *Descriptor) Type() *Type { return d.typ }

func (d *Descriptor) FieldCount() int { return len(d.fields) }

// Field returns the declaration at ordinal i.
func (d *Descriptor) Field(i int) (Field, bool) {
	if i < 0 || i >= len(d.fields) {
		return Field{}, false
	}
	return d.fields[i], true
}

// Index returns the ordinal of the named field.
func (d *Descriptor) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

func (d *Descriptor) FieldNames() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

func (d *Descriptor) Constants() []Constant {
	out := make([]Constant, len(d.constants))
	copy(out, d.constants)
	return out
}

func (d *Descriptor) Constant(name string) (*Primitive, bool) {
	for _, c := range d.constants {
		if c.Name == name {
			return c.Value.Clone().(*Primitive), true
		}
	}
	return nil, false
}

// New returns a struct with every field at its declared default.
func (d *Descriptor) New() *Struct {
	s := &Struct{desc: d, fields: make([]Value, len(d.fields))}
	for i := range d.fields {
		s.fields[i] = d.newField(i)
	}
	return s
}

func (d *Descriptor) newField(i int) Value {
	f := &d.fields[i]
	if f.Default != nil {
		return f.Default.Clone()
	}
	return f.Type.New()
}
