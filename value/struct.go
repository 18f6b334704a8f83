package value

import (
	"iter"
	"strings"

	"github.com/wippyai/msgcodec/errors"
)

// Struct is a record whose fields are addressed by ordinal or by name.
type Struct struct {
	desc   *Descriptor
	fields []Value
}

func (s *Struct) Type() *Type { return s.desc.typ }

func (s *Struct) Descriptor() *Descriptor { return s.desc }

func (s *Struct) TypeIdentity() Identity { return s.desc.id }

func (s *Struct) FieldCount() int { return len(s.fields) }

// Get returns the live field at ordinal i, or false when i is out of range.
func (s *Struct) Get(i int) (Value, bool) {
	if i < 0 || i >= len(s.fields) {
		return nil, false
	}
	return s.fields[i], true
}

// Field returns the live field with the given name.
func (s *Struct) Field(name string) (Value, bool) {
	i, ok := s.desc.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Set copies v into the field at ordinal i.
func (s *Struct) Set(i int, v Value) error {
	if i < 0 || i >= len(s.fields) {
		return errors.OutOfBounds(errors.PhaseAccess, []string{s.desc.name}, i, len(s.fields))
	}
	if v == nil {
		return errNilValue
	}
	if err := s.fields[i].assign(v); err != nil {
		return errors.WithPath(err, s.desc.fields[i].Name)
	}
	return nil
}

// SetField copies v into the named field.
func (s *Struct) SetField(name string, v Value) error {
	i, ok := s.desc.index[name]
	if !ok {
		return errors.FieldUnknown(errors.PhaseAccess, []string{s.desc.name}, name)
	}
	return s.Set(i, v)
}

// Assign copies every field of src when src is a struct of the same type.
// Any other source leaves s untouched and Assign returns false.
func (s *Struct) Assign(src Value) bool {
	return s.assign(src) == nil
}

func (s *Struct) assign(src Value) error {
	o, ok := src.(*Struct)
	if !ok || o == nil || o.desc.id != s.desc.id || len(o.fields) != len(s.fields) {
		return errors.TypeMismatch(errors.PhaseAccess, nil, typeString(src), s.desc.name)
	}
	if o == s {
		return nil
	}
	for i, f := range o.fields {
		if err := s.fields[i].assign(f); err != nil {
			return errors.WithPath(err, s.desc.fields[i].Name)
		}
	}
	return nil
}

func (s *Struct) Equal(other Value) bool {
	o, ok := other.(*Struct)
	if !ok || o == nil || o.desc.id != s.desc.id || len(o.fields) != len(s.fields) {
		return false
	}
	for i := range s.fields {
		if !s.fields[i].Equal(o.fields[i]) {
			return false
		}
	}
	return true
}

func (s *Struct) Clone() Value {
	cp := &Struct{desc: s.desc, fields: make([]Value, len(s.fields))}
	for i, f := range s.fields {
		cp.fields[i] = f.Clone()
	}
	return cp
}

// Take moves the contents of s into a new struct and leaves s at its
// defaults. References previously obtained from s now belong to the result.
func (s *Struct) Take() *Struct {
	out := &Struct{desc: s.desc, fields: s.fields}
	s.fields = make([]Value, len(out.fields))
	for i := range s.fields {
		s.fields[i] = s.desc.newField(i)
	}
	return out
}

// Reset restores every field to its declared default in place.
func (s *Struct) Reset() {
	for i, f := range s.fields {
		f.Reset()
		if def := s.desc.fields[i].Default; def != nil {
			_ = f.assign(def)
		}
	}
}

// All yields field names and live values in declaration order.
func (s *Struct) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, f := range s.fields {
			if !yield(s.desc.fields[i].Name, f) {
				return
			}
		}
	}
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString(s.desc.name)
	b.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.desc.fields[i].Name)
		b.WriteString(": ")
		b.WriteString(f.String())
	}
	b.WriteByte('}')
	return b.String()
}
