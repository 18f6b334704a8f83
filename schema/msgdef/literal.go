package msgdef

import (
	"strconv"
	"strings"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/value"
)

func invalid(format string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidData).Detail(format, args...).Build()
}

// parseInt accepts decimal with an optional sign, and unsigned 0x, 0o and 0b
// forms with optional underscores. A leading zero does not mean octal.
func parseInt(lit string) (any, error) {
	if len(lit) > 2 && lit[0] == '0' {
		base := 0
		switch lit[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(strings.ReplaceAll(lit[2:], "_", ""), base, 64)
			if err != nil {
				return nil, invalid("bad integer literal %q", lit)
			}
			return u, nil
		}
	}
	if strings.HasPrefix(lit, "-") {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, invalid("bad integer literal %q", lit)
		}
		return i, nil
	}
	u, err := strconv.ParseUint(strings.TrimPrefix(lit, "+"), 10, 64)
	if err != nil {
		return nil, invalid("bad integer literal %q", lit)
	}
	return u, nil
}

func isQuoted(lit string) bool {
	return len(lit) >= 2 && (lit[0] == '"' || lit[0] == '\'') && lit[len(lit)-1] == lit[0]
}

// unquote strips matching quotes and resolves backslash escapes. Unknown
// escapes stand for the escaped character itself.
func unquote(lit string) (string, error) {
	if !isQuoted(lit) {
		return "", invalid("expected a quoted string, got %s", lit)
	}
	quote := lit[0]
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == quote {
			return "", invalid("unescaped quote in %s", lit)
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return "", invalid("dangling escape in %s", lit)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}

// setScalar parses lit into p. Constants may spell strings without quotes.
func setScalar(p *value.Primitive, lit string, constant bool) error {
	switch k := p.Kind(); {
	case k == value.KindBool:
		switch lit {
		case "true", "1":
			return p.SetBool(true)
		case "false", "0":
			return p.SetBool(false)
		}
		return invalid("bad bool literal %q", lit)
	case k.IsString():
		if !isQuoted(lit) {
			if !constant {
				return invalid("string default must be quoted: %s", lit)
			}
			return p.SetString(lit)
		}
		s, err := unquote(lit)
		if err != nil {
			return err
		}
		return p.SetString(s)
	case k.IsFloat():
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return invalid("bad float literal %q", lit)
		}
		return p.SetFloat(f)
	case (k == value.KindChar || k == value.KindWChar) && isQuoted(lit):
		s, err := unquote(lit)
		if err != nil {
			return err
		}
		return p.Set(s)
	default:
		n, err := parseInt(lit)
		if err != nil {
			return err
		}
		return p.Set(n)
	}
}

// buildDefault parses a default value literal for a field of type t.
func buildDefault(t *value.Type, lit string) (value.Value, error) {
	switch t.Kind() {
	case value.KindStruct:
		return nil, invalid("fields of message type cannot have defaults")
	case value.KindArray, value.KindSequence:
		items, err := listItems(lit)
		if err != nil {
			return nil, err
		}
		elem := t.Elem()
		if !elem.Kind().IsPrimitive() {
			return nil, invalid("defaults are only supported for arrays of primitives")
		}
		v := t.New()
		switch x := v.(type) {
		case *value.Array:
			if len(items) != x.Len() {
				return nil, invalid("array default has %d elements, want %d", len(items), x.Len())
			}
		case *value.Sequence:
			if err := x.Resize(len(items)); err != nil {
				return nil, err
			}
		}
		for i, item := range items {
			var e value.Value
			if a, ok := v.(*value.Array); ok {
				e, _ = a.At(i)
			} else {
				e, _ = v.(*value.Sequence).At(i)
			}
			if err := setScalar(e.(*value.Primitive), item, false); err != nil {
				return nil, errors.WithPath(err, "["+strconv.Itoa(i)+"]")
			}
		}
		return v, nil
	default:
		p := value.NewPrimitive(t)
		if err := setScalar(p, lit, false); err != nil {
			return nil, err
		}
		return p, nil
	}
}

func listItems(lit string) ([]string, error) {
	if len(lit) < 2 || lit[0] != '[' || lit[len(lit)-1] != ']' {
		return nil, invalid("array default must be written as [a, b, ...]: %s", lit)
	}
	items := splitList(lit[1 : len(lit)-1])
	for _, item := range items {
		if item == "" {
			return nil, invalid("empty element in %s", lit)
		}
	}
	return items, nil
}
