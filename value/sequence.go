package value

import (
	"iter"

	"github.com/wippyai/msgcodec/errors"
)

// Sequence is a variable-length list with an optional upper bound.
// The bound is enforced by every mutating operation.
type Sequence struct {
	typ   *Type
	elems []Value
}

func (s *Sequence) Type() *Type { return s.typ }

func (s *Sequence) Len() int { return len(s.elems) }

// Bound returns the maximum length, 0 when unbounded.
func (s *Sequence) Bound() int { return s.typ.n }

func (s *Sequence) full(n int) bool {
	return s.typ.n > 0 && n > s.typ.n
}

func (s *Sequence) At(i int) (Value, error) {
	if i < 0 || i >= len(s.elems) {
		return nil, errors.OutOfBounds(errors.PhaseAccess, []string{indexPath(i)}, i, len(s.elems))
	}
	return s.elems[i], nil
}

// Set copies v into position i, which must be below Len.
func (s *Sequence) Set(i int, v Value) error {
	if i < 0 || i >= len(s.elems) {
		return errors.OutOfBounds(errors.PhaseAccess, []string{indexPath(i)}, i, len(s.elems))
	}
	if v == nil {
		return errNilValue
	}
	if err := s.elems[i].assign(v); err != nil {
		return errors.WithPath(err, indexPath(i))
	}
	return nil
}

// Push appends a copy of v.
func (s *Sequence) Push(v Value) error {
	if s.full(len(s.elems) + 1) {
		return errors.BoundExceeded(errors.PhaseAccess, nil, len(s.elems)+1, s.typ.n)
	}
	if v == nil {
		return errNilValue
	}
	e := s.typ.elem.New()
	if err := e.assign(v); err != nil {
		return errors.WithPath(err, indexPath(len(s.elems)))
	}
	s.elems = append(s.elems, e)
	return nil
}

// PushNew appends a default element and returns it for in-place population.
func (s *Sequence) PushNew() (Value, error) {
	if s.full(len(s.elems) + 1) {
		return nil, errors.BoundExceeded(errors.PhaseAccess, nil, len(s.elems)+1, s.typ.n)
	}
	e := s.typ.elem.New()
	s.elems = append(s.elems, e)
	return e, nil
}

// Resize sets the length to n, default-filling new elements.
func (s *Sequence) Resize(n int) error {
	if n < 0 {
		return errors.InvalidInput(errors.PhaseAccess, "negative sequence length")
	}
	if s.full(n) {
		return errors.BoundExceeded(errors.PhaseAccess, nil, n, s.typ.n)
	}
	if n <= len(s.elems) {
		s.Truncate(n)
		return nil
	}
	if n > cap(s.elems) {
		grown := make([]Value, len(s.elems), n)
		copy(grown, s.elems)
		s.elems = grown
	}
	for len(s.elems) < n {
		s.elems = append(s.elems, s.typ.elem.New())
	}
	return nil
}

// Truncate shortens the sequence to n elements. It is a no-op when n >= Len.
func (s *Sequence) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(s.elems) {
		return
	}
	clear(s.elems[n:])
	s.elems = s.elems[:n]
}

func (s *Sequence) Clear() {
	s.Truncate(0)
}

func (s *Sequence) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, e := range s.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Assign replaces the contents with copies of src's elements. Sources with a
// different bound are accepted as long as their length fits.
func (s *Sequence) Assign(src Value) error {
	return s.assign(src)
}

func (s *Sequence) assign(src Value) error {
	o, ok := src.(*Sequence)
	if !ok || o == nil || !compatible(s.typ, o.typ) {
		return errors.TypeMismatch(errors.PhaseAccess, nil, typeString(src), s.typ.String())
	}
	if o == s {
		return nil
	}
	if s.full(len(o.elems)) {
		return errors.BoundExceeded(errors.PhaseAccess, nil, len(o.elems), s.typ.n)
	}
	elems := make([]Value, len(o.elems))
	for i, e := range o.elems {
		elems[i] = s.typ.elem.New()
		if err := elems[i].assign(e); err != nil {
			return errors.WithPath(err, indexPath(i))
		}
	}
	s.elems = elems
	return nil
}

func (s *Sequence) Equal(other Value) bool {
	o, ok := other.(*Sequence)
	if !ok || o == nil || !s.typ.Equal(o.typ) || len(s.elems) != len(o.elems) {
		return false
	}
	for i := range s.elems {
		if !s.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (s *Sequence) Clone() Value {
	cp := &Sequence{typ: s.typ}
	if len(s.elems) > 0 {
		cp.elems = make([]Value, len(s.elems))
		for i, e := range s.elems {
			cp.elems[i] = e.Clone()
		}
	}
	return cp
}

func (s *Sequence) Reset() {
	s.Clear()
}

func (s *Sequence) String() string {
	return formatList(s.elems)
}
