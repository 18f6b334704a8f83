package msgdef

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/internal/wire"
	"github.com/wippyai/msgcodec/registry"
	"github.com/wippyai/msgcodec/value"
)

// Ref names another message type.
type Ref struct {
	Package string
	Name    string
}

func (r Ref) String() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "/" + r.Name
}

// Resolver returns the descriptor of a referenced message.
type Resolver func(ref Ref) (*value.Descriptor, error)

// Definition is a parsed message.
type Definition struct {
	Package   string
	Name      string
	Comment   string
	Fields    []value.Field
	Constants []value.Constant
	// Refs lists referenced messages in order of first use.
	Refs []Ref
}

// FullName returns the registry name, package/Name.
func (d *Definition) FullName() string {
	return Ref{Package: d.Package, Name: d.Name}.String()
}

// Register adds the message to reg.
func (d *Definition) Register(reg *registry.Registry) (*value.Descriptor, error) {
	return reg.Register(d.FullName(), d.Fields,
		value.WithConstants(d.Constants...),
		value.WithComment(d.Comment))
}

var primitiveTypes = map[string]*value.Type{
	"bool":    value.Bool,
	"byte":    value.Byte,
	"char":    value.Char,
	"float32": value.Float32,
	"float64": value.Float64,
	"int8":    value.Int8,
	"uint8":   value.Uint8,
	"int16":   value.Int16,
	"uint16":  value.Uint16,
	"int32":   value.Int32,
	"uint32":  value.Uint32,
	"int64":   value.Int64,
	"uint64":  value.Uint64,
	"string":  value.String,
	"wstring": value.WString,
}

type parser struct {
	resolve Resolver
	def     *Definition
	names   map[string]struct{}
	refs    map[Ref]struct{}
	file    string
	line    int
}

// Parse reads the definition of message pkg/name from src. resolve may be nil
// when the message references no other types.
func Parse(pkg, name string, src []byte, resolve Resolver) (*Definition, error) {
	p := &parser{
		resolve: resolve,
		def:     &Definition{Package: pkg, Name: name},
		names:   make(map[string]struct{}),
		refs:    make(map[Ref]struct{}),
		file:    name + ".msg",
	}
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseParse, "message name is empty")
	}

	var docs []string
	body := false
	for i, raw := range strings.Split(string(src), "\n") {
		p.line = i + 1
		code, comment := splitComment(raw)
		code = strings.TrimSpace(code)
		if code == "" {
			if !body && comment != "" {
				docs = append(docs, comment)
			}
			continue
		}
		body = true
		if err := p.parseLine(code, comment); err != nil {
			return nil, err
		}
	}
	p.def.Comment = strings.Join(docs, "\n")
	return p.def, nil
}

func (p *parser) fail(cause error, format string, args ...any) error {
	e := errors.ParseFailed(p.file, p.line, fmt.Sprintf(format, args...))
	e.Cause = cause
	return e
}

func (p *parser) parseLine(code, comment string) error {
	sc := scanner{s: code}
	typeTok := sc.until("")
	sc.skipSpace()
	name := sc.until("=")
	sc.skipSpace()
	constant := false
	if sc.peek() == '=' {
		constant = true
		sc.pos++
		sc.skipSpace()
	}
	rest := strings.TrimSpace(sc.rest())

	if typeTok == "" || name == "" {
		return p.fail(nil, "expected TYPE NAME, got %q", code)
	}
	if _, dup := p.names[name]; dup {
		return p.fail(nil, "duplicate name %q", name)
	}
	p.names[name] = struct{}{}

	typ, err := p.parseType(typeTok)
	if err != nil {
		return err
	}

	if constant {
		return p.addConstant(typ, name, rest, comment)
	}

	if !validFieldName(name) {
		return p.fail(nil, "invalid field name %q", name)
	}
	f := value.Field{Name: name, Type: typ, Comment: comment}
	if rest != "" {
		def, err := buildDefault(typ, rest)
		if err != nil {
			return p.fail(err, "default of %s", name)
		}
		f.Default = def
	}
	p.def.Fields = append(p.def.Fields, f)
	return nil
}

func (p *parser) addConstant(typ *value.Type, name, lit, comment string) error {
	if !typ.Kind().IsPrimitive() {
		return p.fail(nil, "constant %s must have a primitive type, got %s", name, typ)
	}
	if !validConstantName(name) {
		return p.fail(nil, "invalid constant name %q", name)
	}
	if lit == "" {
		return p.fail(nil, "constant %s has no value", name)
	}
	v := value.NewPrimitive(typ)
	if err := setScalar(v, lit, true); err != nil {
		return p.fail(err, "value of %s", name)
	}
	p.def.Constants = append(p.def.Constants, value.Constant{Name: name, Value: v, Comment: comment})
	return nil
}

func (p *parser) parseType(tok string) (*value.Type, error) {
	base, suffix := tok, ""
	if i := strings.IndexByte(tok, '['); i >= 0 {
		base, suffix = tok[:i], tok[i:]
	}

	elem, err := p.parseBase(base)
	if err != nil {
		return nil, err
	}
	if suffix == "" {
		return elem, nil
	}

	if len(suffix) < 2 || suffix[len(suffix)-1] != ']' {
		return nil, p.fail(nil, "malformed array suffix %q", suffix)
	}
	inner := suffix[1 : len(suffix)-1]
	switch {
	case inner == "":
		return value.SequenceOf(elem, 0), nil
	case strings.HasPrefix(inner, "<="):
		n, err := p.parseSize(inner[2:])
		if err != nil {
			return nil, err
		}
		return value.SequenceOf(elem, n), nil
	default:
		n, err := p.parseSize(inner)
		if err != nil {
			return nil, err
		}
		if n > wire.MaxArrayLength {
			return nil, p.fail(nil, "array size %d exceeds limit %d", n, wire.MaxArrayLength)
		}
		return value.ArrayOf(elem, n), nil
	}
}

func (p *parser) parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, p.fail(err, "bad size %q", s)
	}
	return n, nil
}

func (p *parser) parseBase(base string) (*value.Type, error) {
	if t, ok := primitiveTypes[base]; ok {
		return t, nil
	}
	for _, kw := range []string{"string", "wstring"} {
		if bound, ok := strings.CutPrefix(base, kw+"<="); ok {
			n, err := p.parseSize(bound)
			if err != nil {
				return nil, err
			}
			if kw == "string" {
				return value.StringOf(n), nil
			}
			return value.WStringOf(n), nil
		}
	}

	ref, err := p.parseRef(base)
	if err != nil {
		return nil, err
	}
	if p.resolve == nil {
		return nil, p.fail(errors.NotFound(errors.PhaseParse, "type", ref.String()), "unresolved type %s", ref)
	}
	desc, err := p.resolve(ref)
	if err != nil {
		return nil, p.fail(err, "resolve %s", ref)
	}
	if _, seen := p.refs[ref]; !seen {
		p.refs[ref] = struct{}{}
		p.def.Refs = append(p.def.Refs, ref)
	}
	return value.StructOf(desc), nil
}

// parseRef accepts Type, pkg/Type and pkg/msg/Type.
func (p *parser) parseRef(s string) (Ref, error) {
	parts := strings.Split(s, "/")
	var ref Ref
	switch {
	case len(parts) == 1:
		ref = Ref{Package: p.def.Package, Name: parts[0]}
	case len(parts) == 2:
		ref = Ref{Package: parts[0], Name: parts[1]}
	case len(parts) == 3 && parts[1] == "msg":
		ref = Ref{Package: parts[0], Name: parts[2]}
	default:
		return Ref{}, p.fail(nil, "invalid type %q", s)
	}
	if !validTypeName(ref.Name) || (ref.Package != "" && !validPackageName(ref.Package)) {
		return Ref{}, p.fail(nil, "invalid type %q", s)
	}
	return ref, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; !isLetter(c) && !isDigit(c) && c != '_' {
			return false
		}
	}
	return s != ""
}

// validFieldName: a letter first, then letters, digits and single
// underscores, not ending in an underscore.
func validFieldName(s string) bool {
	return isWord(s) && isLetter(s[0]) && !strings.Contains(s, "__") && !strings.HasSuffix(s, "_")
}

func validConstantName(s string) bool {
	if !isWord(s) || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	return strings.ToUpper(s) == s
}

func validTypeName(s string) bool {
	return isWord(s) && isLetter(s[0])
}

func validPackageName(s string) bool {
	return isWord(s) && isLetter(s[0])
}
