package dtpdef

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/value"
)

func invalid(format string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidData).Detail(format, args...).Build()
}

// parseInt reads IEC integer literals: signed decimals and unsigned based
// literals 16#FF, 8#17 and 2#1010. Underscores separate digits.
func parseInt(lit string) (any, error) {
	for _, base := range []int{16, 8, 2} {
		prefix := strconv.Itoa(base) + "#"
		if digits, ok := strings.CutPrefix(lit, prefix); ok {
			u, err := strconv.ParseUint(strings.ReplaceAll(digits, "_", ""), base, 64)
			if err != nil || digits == "" || digits[0] == '_' {
				return nil, invalid("bad integer literal %q", lit)
			}
			return u, nil
		}
	}
	digits := strings.TrimLeft(lit, "+-")
	if digits == "" || digits[0] == '_' || len(lit)-len(digits) > 1 {
		return nil, invalid("bad integer literal %q", lit)
	}
	clean := strings.ReplaceAll(lit, "_", "")
	if lit[0] == '-' {
		i, err := strconv.ParseInt(clean, 10, 64)
		if err != nil {
			return nil, invalid("bad integer literal %q", lit)
		}
		return i, nil
	}
	u, err := strconv.ParseUint(strings.TrimPrefix(clean, "+"), 10, 64)
	if err != nil {
		return nil, invalid("bad integer literal %q", lit)
	}
	return u, nil
}

// unquoteIEC decodes a character string literal. Single-byte strings use
// single quotes and $XX escapes; double-byte strings use double quotes and
// $XXXX escapes. $$, $', $" and the control escapes $L $N $P $R $T are
// accepted in both.
func unquoteIEC(lit string, wide bool) (string, error) {
	quote := byte('\'')
	hexDigits := 2
	if wide {
		quote = '"'
		hexDigits = 4
	}
	if len(lit) < 2 || lit[0] != quote || lit[len(lit)-1] != quote {
		return "", invalid("string literal must be delimited with %c: %s", quote, lit)
	}
	body := lit[1 : len(lit)-1]
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c == quote {
			return "", invalid("unescaped quote in %s", lit)
		}
		if c != '$' {
			r, size := utf8.DecodeRuneInString(body[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		i++
		if i == len(body) {
			return "", invalid("dangling $ in %s", lit)
		}
		switch e := body[i]; e {
		case '$', '\'', '"':
			b.WriteByte(e)
			i++
		case 'L', 'l', 'N', 'n':
			b.WriteByte('\n')
			i++
		case 'P', 'p':
			b.WriteByte('\f')
			i++
		case 'R', 'r':
			b.WriteByte('\r')
			i++
		case 'T', 't':
			b.WriteByte('\t')
			i++
		default:
			if i+hexDigits > len(body) {
				return "", invalid("short $ escape in %s", lit)
			}
			n, err := strconv.ParseUint(body[i:i+hexDigits], 16, 32)
			if err != nil {
				return "", invalid("bad $ escape in %s", lit)
			}
			if wide {
				if !utf8.ValidRune(rune(n)) {
					return "", invalid("invalid character $%s in %s", body[i:i+hexDigits], lit)
				}
				b.WriteRune(rune(n))
			} else {
				b.WriteByte(byte(n))
			}
			i += hexDigits
		}
	}
	return b.String(), nil
}

func setScalar(p *value.Primitive, lit string) error {
	switch k := p.Kind(); {
	case k == value.KindBool:
		switch lit {
		case "TRUE", "1":
			return p.SetBool(true)
		case "FALSE", "0":
			return p.SetBool(false)
		}
		return invalid("bad BOOL literal %q", lit)
	case k == value.KindString:
		s, err := unquoteIEC(lit, false)
		if err != nil {
			return err
		}
		return p.SetString(s)
	case k == value.KindWString:
		s, err := unquoteIEC(lit, true)
		if err != nil {
			return err
		}
		return p.SetString(s)
	case k == value.KindChar:
		s, err := unquoteIEC(lit, false)
		if err != nil {
			return err
		}
		if len(s) != 1 {
			return invalid("CHAR literal must hold one character: %s", lit)
		}
		return p.SetUint(uint64(s[0]))
	case k.IsFloat():
		f, err := strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
		if err != nil {
			return invalid("bad REAL literal %q", lit)
		}
		return p.SetFloat(f)
	default:
		n, err := parseInt(lit)
		if err != nil {
			return err
		}
		return p.Set(n)
	}
}

// buildInitial parses an InitialValue for a field of type t. Array values
// are written [a, b, ...] and may initialise a prefix of the array.
func buildInitial(t *value.Type, lit string) (value.Value, error) {
	switch t.Kind() {
	case value.KindStruct:
		return nil, invalid("structured fields cannot have an InitialValue")
	case value.KindArray:
		if t.Elem().Kind() == value.KindStruct {
			return nil, invalid("arrays of structured types cannot have an InitialValue")
		}
		items, err := listItems(lit)
		if err != nil {
			return nil, err
		}
		arr := t.New().(*value.Array)
		if len(items) > arr.Len() {
			return nil, invalid("%d initial values for %d elements", len(items), arr.Len())
		}
		for i, item := range items {
			e, _ := arr.At(i)
			if err := setScalar(e.(*value.Primitive), item); err != nil {
				return nil, errors.WithPath(err, "["+strconv.Itoa(t.Lower()+i)+"]")
			}
		}
		return arr, nil
	default:
		p := value.NewPrimitive(t)
		if err := setScalar(p, lit); err != nil {
			return nil, err
		}
		return p, nil
	}
}

// listItems splits [a, b, ...] at commas outside quoted strings.
func listItems(lit string) ([]string, error) {
	if len(lit) < 2 || lit[0] != '[' || lit[len(lit)-1] != ']' {
		return nil, invalid("array values must be written as [a, b, ...]: %s", lit)
	}
	body := lit[1 : len(lit)-1]
	var items []string
	var quote byte
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0 && c == '$':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote == 0 && c == ',':
			items = append(items, strings.TrimSpace(body[start:i]))
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, invalid("unterminated string in %s", lit)
	}
	items = append(items, strings.TrimSpace(body[start:]))
	for _, item := range items {
		if item == "" {
			return nil, invalid("empty element in %s", lit)
		}
	}
	return items, nil
}
