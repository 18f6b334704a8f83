package schema

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/registry"
	"github.com/wippyai/msgcodec/schema/dtpdef"
	"github.com/wippyai/msgcodec/schema/msgdef"
	"github.com/wippyai/msgcodec/value"
)

const (
	extMsg = ".msg"
	extDtp = ".dtp"
)

// Loader reads schema files into a registry.
type Loader struct {
	reg     *registry.Registry
	dirs    []string
	loading []string
}

// NewLoader returns a loader registering into reg and searching dirs for
// referenced types.
func NewLoader(reg *registry.Registry, dirs ...string) *Loader {
	return &Loader{reg: reg, dirs: dirs}
}

// Registry returns the registry types are loaded into.
func (l *Loader) Registry() *registry.Registry {
	return l.reg
}

// LoadFile loads a .msg or .dtp file and everything it references. A .msg
// file inside <pkg>/msg/ is registered as pkg/Type, otherwise as Type.
func (l *Loader) LoadFile(path string) (*value.Descriptor, error) {
	switch filepath.Ext(path) {
	case extMsg:
		return l.loadMsg(path, packageOf(path))
	case extDtp:
		return l.loadDtp(path)
	default:
		return nil, errors.Unsupported(errors.PhaseLoad, "schema file "+path)
	}
}

// LoadDir loads every schema file below dir.
func (l *Loader) LoadDir(dir string) ([]*value.Descriptor, error) {
	var out []*value.Descriptor
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != extMsg && ext != extDtp {
			return nil
		}
		desc, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		out = append(out, desc)
		return nil
	})
	if err != nil {
		if _, ok := err.(*errors.Error); ok {
			return nil, err
		}
		return nil, errors.Load("walk "+dir, err)
	}
	return out, nil
}

// Resolve returns the descriptor registered under name, loading it from the
// source directories if needed. Names take the forms Type, pkg/Type and
// pkg/msg/Type.
func (l *Loader) Resolve(name string) (*value.Descriptor, error) {
	if d, ok := l.reg.Lookup(name); ok {
		return d, nil
	}
	parts := strings.Split(name, "/")
	switch {
	case len(parts) == 1:
		return l.resolveDataType(name, "")
	case len(parts) == 2:
		return l.resolveRef(msgdef.Ref{Package: parts[0], Name: parts[1]}, "")
	case len(parts) == 3 && parts[1] == "msg":
		return l.resolveRef(msgdef.Ref{Package: parts[0], Name: parts[2]}, "")
	default:
		return nil, errors.InvalidInput(errors.PhaseLoad, "malformed type name "+name)
	}
}

func packageOf(path string) string {
	dir := filepath.Dir(path)
	if filepath.Base(dir) != "msg" {
		return ""
	}
	pkg := filepath.Base(filepath.Dir(dir))
	if pkg == "." || pkg == string(filepath.Separator) {
		return ""
	}
	return pkg
}

func (l *Loader) enter(name string) error {
	for i, n := range l.loading {
		if n == name {
			chain := append(append([]string{}, l.loading[i:]...), name)
			return errors.New(errors.PhaseLoad, errors.KindCycle).
				Path(name).
				Detail("reference cycle %s", strings.Join(chain, " -> ")).
				Build()
		}
	}
	l.loading = append(l.loading, name)
	return nil
}

func (l *Loader) leave() {
	l.loading = l.loading[:len(l.loading)-1]
}

func (l *Loader) loadMsg(path, pkg string) (*value.Descriptor, error) {
	name := strings.TrimSuffix(filepath.Base(path), extMsg)
	full := msgdef.Ref{Package: pkg, Name: name}.String()
	if d, ok := l.reg.Lookup(full); ok {
		return d, nil
	}
	if err := l.enter(full); err != nil {
		return nil, err
	}
	defer l.leave()

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	near := filepath.Dir(path)
	def, err := msgdef.Parse(pkg, name, src, func(ref msgdef.Ref) (*value.Descriptor, error) {
		return l.resolveRef(ref, near)
	})
	if err != nil {
		return nil, err
	}
	d, err := def.Register(l.reg)
	if err != nil {
		return nil, err
	}
	Logger().Info("loaded message",
		zap.String("type", full),
		zap.String("file", path),
		zap.Int("fields", d.FieldCount()),
		zap.Int("constants", len(def.Constants)))
	return d, nil
}

func (l *Loader) loadDtp(path string) (*value.Descriptor, error) {
	file := filepath.Base(path)
	name := strings.TrimSuffix(file, extDtp)
	if d, ok := l.reg.Lookup(name); ok {
		return d, nil
	}
	if err := l.enter(name); err != nil {
		return nil, err
	}
	defer l.leave()

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	near := filepath.Dir(path)
	def, err := dtpdef.Parse(file, src, func(ref string) (*value.Descriptor, error) {
		return l.resolveDataType(ref, near)
	})
	if err != nil {
		return nil, err
	}
	if def.Name != name {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Path(file).
			Detail("file defines data type %s, want %s", def.Name, name).
			Build()
	}
	d, err := def.Register(l.reg)
	if err != nil {
		return nil, err
	}
	Logger().Info("loaded data type",
		zap.String("type", name),
		zap.String("file", path),
		zap.Int("fields", d.FieldCount()))
	return d, nil
}

func (l *Loader) searchDirs(near string) []string {
	if near == "" {
		return l.dirs
	}
	return append([]string{near}, l.dirs...)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (l *Loader) resolveRef(ref msgdef.Ref, near string) (*value.Descriptor, error) {
	if d, ok := l.reg.Lookup(ref.String()); ok {
		return d, nil
	}
	for _, dir := range l.searchDirs(near) {
		if ref.Package != "" {
			if p := filepath.Join(dir, ref.Package, "msg", ref.Name+extMsg); exists(p) {
				return l.loadMsg(p, ref.Package)
			}
		}
		if p := filepath.Join(dir, ref.Name+extMsg); exists(p) {
			return l.loadMsg(p, ref.Package)
		}
		if ref.Package == "" {
			if p := filepath.Join(dir, ref.Name+extDtp); exists(p) {
				return l.loadDtp(p)
			}
		}
	}
	return nil, errors.NotFound(errors.PhaseLoad, "message", ref.String())
}

func (l *Loader) resolveDataType(name, near string) (*value.Descriptor, error) {
	if d, ok := l.reg.Lookup(name); ok {
		return d, nil
	}
	for _, dir := range l.searchDirs(near) {
		if p := filepath.Join(dir, name+extDtp); exists(p) {
			return l.loadDtp(p)
		}
		if p := filepath.Join(dir, name+extMsg); exists(p) {
			return l.loadMsg(p, "")
		}
	}
	if pkg, typ, ok := rosName(name); ok {
		return l.resolveROS(pkg, typ, near)
	}
	return nil, errors.NotFound(errors.PhaseLoad, "data type", name)
}

// rosName splits ROS2_<pkg>_msg_<Type>. The package part has its
// underscores removed.
func rosName(name string) (pkg, typ string, ok bool) {
	rest, ok := strings.CutPrefix(name, "ROS2_")
	if !ok {
		return "", "", false
	}
	pkg, typ, ok = strings.Cut(rest, "_msg_")
	if !ok || pkg == "" || typ == "" {
		return "", "", false
	}
	return pkg, typ, true
}

func squash(pkg string) string {
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(pkg)
}

func (l *Loader) resolveROS(pkg, typ, near string) (*value.Descriptor, error) {
	for _, n := range l.reg.Names() {
		p, t, ok := strings.Cut(n, "/")
		if ok && t == typ && squash(p) == pkg {
			d, _ := l.reg.Lookup(n)
			return d, nil
		}
	}
	for _, dir := range l.searchDirs(near) {
		matches, err := filepath.Glob(filepath.Join(dir, "*", "msg", typ+extMsg))
		if err != nil {
			return nil, errors.Load("search "+dir, err)
		}
		for _, m := range matches {
			if p := packageOf(m); squash(p) == pkg {
				return l.loadMsg(m, p)
			}
		}
	}
	return nil, errors.NotFound(errors.PhaseLoad, "message", "ROS2_"+pkg+"_msg_"+typ)
}
