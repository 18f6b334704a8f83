package yamlvalue

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/value"
)

// Unmarshal parses a YAML document into target.
func Unmarshal(data []byte, target value.Value) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "yaml")
	}
	if doc.Kind == 0 {
		return nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return Decode(doc.Content[0], target)
	}
	return Decode(&doc, target)
}

// Decode fills target from a YAML node.
func Decode(n *yaml.Node, target value.Value) error {
	if target == nil {
		return errors.InvalidInput(errors.PhaseParse, "nil target")
	}
	for n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	switch x := target.(type) {
	case *value.Struct:
		return decodeStruct(n, x)
	case *value.Array:
		if err := expect(n, yaml.SequenceNode, "sequence"); err != nil {
			return err
		}
		if len(n.Content) != x.Len() {
			return invalid(n, "array %s needs %d elements, got %d", x.Type(), x.Len(), len(n.Content))
		}
		for i, c := range n.Content {
			e, _ := x.At(i)
			if err := Decode(c, e); err != nil {
				return errors.WithPath(err, index(i))
			}
		}
		return nil
	case *value.Sequence:
		if err := expect(n, yaml.SequenceNode, "sequence"); err != nil {
			return err
		}
		if err := x.Resize(len(n.Content)); err != nil {
			return err
		}
		for i, c := range n.Content {
			e, _ := x.At(i)
			if err := Decode(c, e); err != nil {
				return errors.WithPath(err, index(i))
			}
		}
		return nil
	case *value.Primitive:
		if err := expect(n, yaml.ScalarNode, "scalar"); err != nil {
			return err
		}
		return decodeScalar(n, x)
	default:
		return errors.Unsupported(errors.PhaseParse, "value type "+target.Type().String())
	}
}

func decodeStruct(n *yaml.Node, s *value.Struct) error {
	if err := expect(n, yaml.MappingNode, "mapping"); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		f, ok := s.Field(key)
		if !ok {
			e := errors.FieldUnknown(errors.PhaseParse, []string{key}, key)
			e.Detail += " in " + s.Descriptor().Name() + lineSuffix(n.Content[i])
			return e
		}
		if _, dup := seen[key]; dup {
			return errors.WithPath(invalid(n.Content[i], "duplicate key"), key)
		}
		seen[key] = struct{}{}
		if err := Decode(n.Content[i+1], f); err != nil {
			return errors.WithPath(err, key)
		}
	}
	return nil
}

func decodeScalar(n *yaml.Node, p *value.Primitive) error {
	var err error
	switch k := p.Kind(); {
	case k == value.KindBool:
		var b bool
		if n.Decode(&b) != nil {
			return invalid(n, "expected a bool, got %q", n.Value)
		}
		err = p.SetBool(b)
	case k.IsString():
		err = p.SetString(n.Value)
	case k == value.KindChar || k == value.KindWChar:
		if n.Tag == "!!int" {
			err = setInteger(n, p)
			break
		}
		r, size := utf8.DecodeRuneInString(n.Value)
		if size == 0 || size != len(n.Value) {
			return invalid(n, "expected one character, got %q", n.Value)
		}
		err = p.SetRune(r)
	case k.IsFloat():
		var f float64
		if n.Decode(&f) != nil {
			return invalid(n, "expected a number, got %q", n.Value)
		}
		err = p.SetFloat(f)
	default:
		err = setInteger(n, p)
	}
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			cp := *e
			cp.Phase = errors.PhaseParse
			cp.Detail += lineSuffix(n)
			return &cp
		}
	}
	return err
}

func setInteger(n *yaml.Node, p *value.Primitive) error {
	if strings.HasPrefix(n.Value, "-") {
		var i int64
		if n.Decode(&i) != nil {
			return invalid(n, "expected an integer, got %q", n.Value)
		}
		return p.SetInt(i)
	}
	var u uint64
	if n.Decode(&u) != nil {
		var f float64
		if n.Decode(&f) == nil && f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 {
			return p.SetUint(uint64(f))
		}
		return invalid(n, "expected an integer, got %q", n.Value)
	}
	return p.SetUint(u)
}

func expect(n *yaml.Node, kind yaml.Kind, what string) error {
	if n.Kind != kind {
		return invalid(n, "expected a %s", what)
	}
	return nil
}

func invalid(n *yaml.Node, format string, args ...any) error {
	e := errors.New(errors.PhaseParse, errors.KindInvalidData).Detail(format, args...).Build()
	e.Detail += lineSuffix(n)
	return e
}

func lineSuffix(n *yaml.Node) string {
	if n.Line == 0 {
		return ""
	}
	return " (line " + strconv.Itoa(n.Line) + ")"
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
