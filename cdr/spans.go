package cdr

import (
	"strconv"

	"github.com/wippyai/msgcodec/internal/wire"
	"github.com/wippyai/msgcodec/value"
)

// Span locates one node of a value inside its encoding. Offset is where the
// node's own bytes start, after any alignment padding.
type Span struct {
	Path   string
	Type   string
	Offset int
	Size   int
	Depth  int
}

// Spans lists every node of v in encoding order, parents before children.
// The root has an empty path.
func (c *Codec) Spans(v value.Value) []Span {
	if v == nil {
		return nil
	}
	var out []Span
	c.spans(&out, v, "", 0, 0)
	return out
}

func join(parent, child string) string {
	if parent == "" || child[0] == '[' {
		return parent + child
	}
	return parent + "." + child
}

// spans appends the span of v serialized at offset and returns its end.
func (c *Codec) spans(out *[]Span, v value.Value, path string, depth, offset int) int {
	i := len(*out)
	*out = append(*out, Span{Path: path, Type: v.Type().String(), Depth: depth})

	start := wire.AlignTo(offset, max(v.Type().Align(), 1))
	end := offset
	switch x := v.(type) {
	case *value.Struct:
		for name, f := range x.All() {
			end = c.spans(out, f, join(path, name), depth+1, end)
		}
	case *value.Array:
		for j, e := range x.All() {
			end = c.spans(out, e, join(path, "["+strconv.Itoa(x.Lower()+j)+"]"), depth+1, end)
		}
	case *value.Sequence:
		end = start + wire.LengthPrefix
		for j, e := range x.All() {
			end = c.spans(out, e, join(path, "["+strconv.Itoa(j)+"]"), depth+1, end)
		}
	default:
		end = c.sizeOf(v, offset)
	}
	if end < start {
		start = end
	}
	(*out)[i].Offset = start
	(*out)[i].Size = end - start
	return end
}
