package yamlvalue

import (
	"bytes"
	"iter"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/value"
)

// Marshal renders v as a YAML document.
func Marshal(v value.Value) ([]byte, error) {
	node, err := Node(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "yaml encode")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "yaml encode")
	}
	return buf.Bytes(), nil
}

// Node converts v into a YAML node tree.
func Node(v value.Value) (*yaml.Node, error) {
	switch x := v.(type) {
	case *value.Struct:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for name, f := range x.All() {
			child, err := Node(f)
			if err != nil {
				return nil, errors.WithPath(err, name)
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
			n.Content = append(n.Content, key, child)
		}
		return n, nil
	case *value.Array:
		return list(x.Type(), x.All())
	case *value.Sequence:
		return list(x.Type(), x.All())
	case *value.Primitive:
		return scalar(x), nil
	case nil:
		return nil, errors.InvalidInput(errors.PhaseEncode, "nil value")
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, "value type "+v.Type().String())
	}
}

func list(t *value.Type, elems iter.Seq2[int, value.Value]) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if t.Elem().Kind().IsScalar() {
		n.Style = yaml.FlowStyle
	}
	for i, e := range elems {
		child, err := Node(e)
		if err != nil {
			return nil, errors.WithPath(err, "["+strconv.Itoa(i)+"]")
		}
		n.Content = append(n.Content, child)
	}
	return n, nil
}

func scalar(p *value.Primitive) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch k := p.Kind(); {
	case k == value.KindBool:
		n.Tag = "!!bool"
		n.Value = strconv.FormatBool(p.Bool())
	case k.IsSigned():
		n.Tag = "!!int"
		n.Value = strconv.FormatInt(p.Int(), 10)
	case k.IsUnsigned():
		n.Tag = "!!int"
		n.Value = strconv.FormatUint(p.Uint(), 10)
	case k.IsFloat():
		n.Tag = "!!float"
		n.Value = formatFloat(p.Float(), k.Bits())
	case k == value.KindChar, k == value.KindWChar:
		n.Tag = "!!str"
		n.Value = string(p.Rune())
	default:
		n.Tag = "!!str"
		n.Value = p.Text()
	}
	return n
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		s += ".0"
	}
	return s
}
