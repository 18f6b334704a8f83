package layout

import (
	"math"
	"sync"

	"github.com/wippyai/msgcodec/internal/wire"
	"github.com/wippyai/msgcodec/value"
)

// Info is the static size of a type placed at a given alignment phase.
type Info struct {
	// Size is the number of bytes from the start offset, padding included.
	Size int
	// Bounded is false when the type contains an unbounded string or sequence.
	Bounded bool
	// Fixed is true when every value of the type has exactly Size bytes.
	Fixed bool
}

type key struct {
	t     *value.Type
	phase int
}

// Calculator caches size information. It is safe for concurrent use.
type Calculator struct {
	cache sync.Map // key -> Info
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// At returns size information for t starting at offset.
func (c *Calculator) At(t *value.Type, offset int) Info {
	k := key{t: t, phase: offset & 7}
	if cached, ok := c.cache.Load(k); ok {
		return cached.(Info)
	}
	info := c.calculate(t, k.phase)
	c.cache.Store(k, info)
	return info
}

func (c *Calculator) calculate(t *value.Type, phase int) Info {
	k := t.Kind()
	switch {
	case k.IsScalar():
		w := k.Width()
		return Info{Size: wire.Padding(phase, w) + w, Bounded: true, Fixed: true}
	case k == value.KindString:
		size := wire.Padding(phase, 4) + wire.LengthPrefix + 1
		if t.Bound() == 0 {
			return Info{Size: size}
		}
		return Info{Size: add(size, t.Bound()), Bounded: true}
	case k == value.KindWString:
		size := wire.Padding(phase, 4) + wire.LengthPrefix
		if t.Bound() == 0 {
			return Info{Size: size}
		}
		return Info{Size: add(size, mul(t.Bound(), 4)), Bounded: true}
	case k == value.KindArray:
		return c.repeat(t.Elem(), t.Len(), phase, Info{Bounded: true, Fixed: true})
	case k == value.KindSequence:
		start := Info{Size: wire.Padding(phase, 4) + wire.LengthPrefix}
		if t.Bound() == 0 {
			return start
		}
		start.Bounded = true
		info := c.repeat(t.Elem(), t.Bound(), phase+start.Size, start)
		info.Fixed = false
		return info
	case k == value.KindStruct:
		return c.calculateStruct(t.Descriptor(), phase)
	default:
		return Info{Bounded: true, Fixed: true}
	}
}

// repeat lays out n elements of elem after acc, starting at phase+acc.Size.
func (c *Calculator) repeat(elem *value.Type, n, phase int, acc Info) Info {
	if n == 0 {
		return acc
	}
	if ek := elem.Kind(); ek.IsScalar() {
		w := ek.Width()
		pad := wire.Padding(phase, w)
		acc.Size = add(acc.Size, add(pad, mul(n, w)))
		return acc
	}

	// Element sizes depend only on the phase, which cycles with period at
	// most 8; once the phase repeats, the remaining elements are a multiple
	// of one full cycle.
	off := phase
	seen := make(map[int]int, 8) // phase -> element index
	sizes := make([]int, 0, 8)
	for i := 0; i < n; i++ {
		p := off & 7
		if first, ok := seen[p]; ok {
			cycle := 0
			for _, s := range sizes[first:] {
				cycle += s
			}
			per := len(sizes) - first
			rest := n - i
			acc.Size = add(acc.Size, mul(rest/per, cycle))
			for _, s := range sizes[first : first+rest%per] {
				acc.Size = add(acc.Size, s)
			}
			return acc
		}
		seen[p] = i
		info := c.At(elem, p)
		acc.Bounded = acc.Bounded && info.Bounded
		acc.Fixed = acc.Fixed && info.Fixed
		sizes = append(sizes, info.Size)
		acc.Size = add(acc.Size, info.Size)
		off += info.Size
	}
	return acc
}

func (c *Calculator) calculateStruct(d *value.Descriptor, phase int) Info {
	acc := Info{Bounded: true, Fixed: true}
	for i := range d.FieldCount() {
		f, _ := d.Field(i)
		info := c.At(f.Type, phase+acc.Size)
		acc.Size = add(acc.Size, info.Size)
		acc.Bounded = acc.Bounded && info.Bounded
		acc.Fixed = acc.Fixed && info.Fixed
	}
	return acc
}

func add(a, b int) int {
	if s, ok := wire.SafeAdd(a, b); ok {
		return s
	}
	return math.MaxInt
}

func mul(a, b int) int {
	if p, ok := wire.SafeMul(a, b); ok {
		return p
	}
	return math.MaxInt
}
