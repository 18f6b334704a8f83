package dtpdef

import (
	"bytes"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/internal/wire"
	"github.com/wippyai/msgcodec/registry"
	"github.com/wippyai/msgcodec/value"
)

// Resolver returns the descriptor of a referenced data type.
type Resolver func(name string) (*value.Descriptor, error)

// Definition is a parsed data type.
type Definition struct {
	Name    string
	Comment string
	Fields  []value.Field
	// Refs lists referenced data types in order of first use.
	Refs []string
}

// Register adds the data type to reg under its own name.
func (d *Definition) Register(reg *registry.Registry) (*value.Descriptor, error) {
	return reg.Register(d.Name, d.Fields, value.WithComment(d.Comment))
}

type dataType struct {
	XMLName    xml.Name        `xml:"DataType"`
	Name       string          `xml:"Name,attr"`
	Comment    string          `xml:"Comment,attr"`
	Structured *structuredType `xml:"StructuredType"`
}

type structuredType struct {
	Comment string           `xml:"Comment,attr"`
	Vars    []varDeclaration `xml:"VarDeclaration"`
}

type varDeclaration struct {
	Name         string  `xml:"Name,attr"`
	Type         string  `xml:"Type,attr"`
	ArraySize    string  `xml:"ArraySize,attr"`
	InitialValue *string `xml:"InitialValue,attr"`
	Comment      string  `xml:"Comment,attr"`
}

var elementaryTypes = map[string]*value.Type{
	"BOOL":  value.Bool,
	"SINT":  value.Int8,
	"INT":   value.Int16,
	"DINT":  value.Int32,
	"LINT":  value.Int64,
	"USINT": value.Uint8,
	"UINT":  value.Uint16,
	"UDINT": value.Uint32,
	"ULINT": value.Uint64,
	"BYTE":  value.Byte,
	"WORD":  value.Uint16,
	"DWORD": value.Uint32,
	"LWORD": value.Uint64,
	"REAL":  value.Float32,
	"LREAL": value.Float64,
	"CHAR":  value.Char,
}

// Date and time types have no portable wire form.
var temporalTypes = map[string]bool{
	"TIME":          true,
	"DATE":          true,
	"TIME_OF_DAY":   true,
	"TOD":           true,
	"DATE_AND_TIME": true,
	"DT":            true,
}

type reader struct {
	resolve Resolver
	def     *Definition
	refs    map[string]struct{}
	file    string
}

// Parse reads a data type from the XML document data. file names the source
// in errors. resolve may be nil when no other data types are referenced.
func Parse(file string, data []byte, resolve Resolver) (*Definition, error) {
	var dt dataType
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&dt); err != nil {
		var syn *xml.SyntaxError
		if stderrors.As(err, &syn) {
			e := errors.ParseFailed(file, syn.Line, syn.Msg)
			e.Cause = err
			return nil, e
		}
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path(file).Cause(err).Detail("malformed data type").Build()
	}

	r := &reader{
		resolve: resolve,
		def:     &Definition{Name: dt.Name, Comment: dt.Comment},
		refs:    make(map[string]struct{}),
		file:    file,
	}
	if !validIdentifier(dt.Name) {
		return nil, r.fail(nil, "", "invalid data type name %q", dt.Name)
	}
	if dt.Structured == nil {
		return nil, r.fail(nil, "", "DataType %s has no StructuredType", dt.Name)
	}
	if r.def.Comment == "" {
		r.def.Comment = dt.Structured.Comment
	}

	seen := make(map[string]struct{}, len(dt.Structured.Vars))
	for _, v := range dt.Structured.Vars {
		if !validIdentifier(v.Name) {
			return nil, r.fail(nil, "", "invalid variable name %q", v.Name)
		}
		if _, dup := seen[v.Name]; dup {
			return nil, r.fail(nil, v.Name, "duplicate variable")
		}
		seen[v.Name] = struct{}{}

		f, err := r.field(v)
		if err != nil {
			return nil, err
		}
		r.def.Fields = append(r.def.Fields, f)
	}
	return r.def, nil
}

func (r *reader) fail(cause error, field, format string, args ...any) error {
	path := []string{r.file}
	if field != "" {
		path = append(path, field)
	}
	return errors.New(errors.PhaseParse, errors.KindInvalidData).
		Path(path...).Cause(cause).Detail(format, args...).Build()
}

func (r *reader) field(v varDeclaration) (value.Field, error) {
	if v.Type == "" {
		return value.Field{}, r.fail(nil, v.Name, "missing Type attribute")
	}
	typ, err := r.baseType(v.Name, v.Type)
	if err != nil {
		return value.Field{}, err
	}
	if v.ArraySize != "" {
		lower, upper, err := parseArraySize(v.ArraySize)
		if err != nil {
			return value.Field{}, r.fail(err, v.Name, "ArraySize %q", v.ArraySize)
		}
		typ = value.ArrayRange(typ, lower, upper)
	}

	f := value.Field{Name: v.Name, Type: typ, Comment: v.Comment}
	if v.InitialValue != nil {
		def, err := buildInitial(typ, strings.TrimSpace(*v.InitialValue))
		if err != nil {
			return value.Field{}, r.fail(err, v.Name, "InitialValue %q", *v.InitialValue)
		}
		f.Default = def
	}
	return f, nil
}

func (r *reader) baseType(field, name string) (*value.Type, error) {
	if t, ok := elementaryTypes[name]; ok {
		return t, nil
	}
	if temporalTypes[name] {
		e := errors.Unsupported(errors.PhaseParse, "IEC type "+name)
		e.Path = []string{r.file, field}
		return nil, e
	}
	for _, kw := range []string{"WSTRING", "STRING"} {
		rest, ok := strings.CutPrefix(name, kw)
		if !ok || (rest != "" && rest[0] != '[') {
			continue
		}
		bound := 0
		if rest != "" {
			inner, ok := strings.CutPrefix(rest, "[")
			inner, ok2 := strings.CutSuffix(inner, "]")
			n, err := strconv.Atoi(inner)
			if !ok || !ok2 || err != nil || n <= 0 {
				return nil, r.fail(err, field, "bad string type %q", name)
			}
			bound = n
		}
		if kw == "STRING" {
			return value.StringOf(bound), nil
		}
		return value.WStringOf(bound), nil
	}

	if !validIdentifier(name) {
		return nil, r.fail(nil, field, "invalid type %q", name)
	}
	if r.resolve == nil {
		return nil, r.fail(errors.NotFound(errors.PhaseParse, "type", name), field, "unresolved type %s", name)
	}
	desc, err := r.resolve(name)
	if err != nil {
		return nil, r.fail(err, field, "resolve %s", name)
	}
	if _, seen := r.refs[name]; !seen {
		r.refs[name] = struct{}{}
		r.def.Refs = append(r.def.Refs, name)
	}
	return value.StructOf(desc), nil
}

// parseArraySize accepts a capacity N, meaning indices 0..N-1, or an
// inclusive range lo..hi.
func parseArraySize(s string) (lower, upper int, err error) {
	s = strings.TrimSpace(s)
	if lo, hi, ok := strings.Cut(s, ".."); ok {
		lower, err = strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return 0, 0, err
		}
		upper, err = strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return 0, 0, err
		}
		if lower > upper {
			return 0, 0, fmt.Errorf("start %d after end %d", lower, upper)
		}
	} else {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, err
		}
		if n <= 0 {
			return 0, 0, fmt.Errorf("capacity must be positive, got %d", n)
		}
		upper = n - 1
	}
	if n, ok := wire.RangeLen(lower, upper); !ok || n > wire.MaxArrayLength {
		return 0, 0, fmt.Errorf("range %d..%d exceeds %d elements", lower, upper, wire.MaxArrayLength)
	}
	return lower, upper, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// validIdentifier: a letter or underscore first, then letters, digits and
// underscores.
func validIdentifier(s string) bool {
	if s == "" || (!isLetter(s[0]) && s[0] != '_') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '_' {
			return false
		}
	}
	return true
}
