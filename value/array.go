package value

import (
	"iter"
	"strconv"
	"strings"

	"github.com/wippyai/msgcodec/errors"
)

// Array is a fixed-capacity list of elements of one type.
type Array struct {
	typ   *Type
	elems []Value
}

func newArray(t *Type) *Array {
	a := &Array{typ: t, elems: make([]Value, t.n)}
	for i := range a.elems {
		a.elems[i] = t.elem.New()
	}
	return a
}

func (a *Array) Type() *Type { return a.typ }

func (a *Array) Len() int { return len(a.elems) }

// Lower returns the first declared index.
func (a *Array) Lower() int { return a.typ.lower }

// Upper returns the last declared index.
func (a *Array) Upper() int { return a.typ.Upper() }

// At returns the live element at storage position i.
func (a *Array) At(i int) (Value, error) {
	if i < 0 || i >= len(a.elems) {
		return nil, errors.OutOfBounds(errors.PhaseAccess, []string{indexPath(i)}, i, len(a.elems))
	}
	return a.elems[i], nil
}

// AtIndex returns the element at a declared index in [Lower, Upper].
func (a *Array) AtIndex(idx int) (Value, error) {
	return a.At(idx - a.typ.lower)
}

// Set copies v into position i. The array is unchanged on error.
func (a *Array) Set(i int, v Value) error {
	if i < 0 || i >= len(a.elems) {
		return errors.OutOfBounds(errors.PhaseAccess, []string{indexPath(i)}, i, len(a.elems))
	}
	if v == nil {
		return errNilValue
	}
	if err := a.elems[i].assign(v); err != nil {
		return errors.WithPath(err, indexPath(i))
	}
	return nil
}

// All yields storage positions and live elements in order.
func (a *Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, e := range a.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

func (a *Array) Assign(src Value) error {
	return a.assign(src)
}

func (a *Array) assign(src Value) error {
	o, ok := src.(*Array)
	if !ok || o == nil || !compatible(a.typ, o.typ) {
		return errors.TypeMismatch(errors.PhaseAccess, nil, typeString(src), a.typ.String())
	}
	if o == a {
		return nil
	}
	for i, e := range o.elems {
		if err := a.elems[i].assign(e); err != nil {
			return errors.WithPath(err, indexPath(i))
		}
	}
	return nil
}

func (a *Array) Equal(other Value) bool {
	o, ok := other.(*Array)
	if !ok || o == nil || !a.typ.Equal(o.typ) || len(a.elems) != len(o.elems) {
		return false
	}
	for i := range a.elems {
		if !a.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (a *Array) Clone() Value {
	cp := &Array{typ: a.typ, elems: make([]Value, len(a.elems))}
	for i, e := range a.elems {
		cp.elems[i] = e.Clone()
	}
	return cp
}

func (a *Array) Reset() {
	for _, e := range a.elems {
		e.Reset()
	}
}

func (a *Array) String() string {
	return formatList(a.elems)
}

func indexPath(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func formatList(elems []Value) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}
