package registry

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/msgcodec/errors"
	"github.com/wippyai/msgcodec/value"
)

// Registry maps type names to identities and identities to descriptors.
type Registry struct {
	ids    map[string]value.Identity
	descs  map[value.Identity]*value.Descriptor
	names  map[value.Identity]string
	mu     sync.RWMutex
	frozen atomic.Bool
}

func New() *Registry {
	return &Registry{
		ids:   make(map[string]value.Identity),
		descs: make(map[value.Identity]*value.Descriptor),
		names: make(map[value.Identity]string),
	}
}

func errFrozen(what string) error {
	return errors.New(errors.PhaseRegister, errors.KindFrozen).
		Detail("registry is frozen: cannot %s", what).
		Build()
}

// Intern returns the identity for name, allocating a new token on first use.
func (r *Registry) Intern(name string) (value.Identity, error) {
	if name == "" {
		return value.InvalidIdentity, errors.InvalidInput(errors.PhaseRegister, "empty type name")
	}
	if id, ok := r.Identity(name); ok {
		return id, nil
	}
	if r.frozen.Load() {
		return value.InvalidIdentity, errFrozen("intern " + name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Freeze may have won the race for the lock.
	if r.frozen.Load() {
		return value.InvalidIdentity, errFrozen("intern " + name)
	}
	return r.internLocked(name)
}

func (r *Registry) internLocked(name string) (value.Identity, error) {
	if id, ok := r.ids[name]; ok {
		return id, nil
	}
	id, ok := value.NewIdentity()
	if !ok {
		return value.InvalidIdentity, errors.New(errors.PhaseRegister, errors.KindOverflow).
			Detail("identity space exhausted").
			Build()
	}
	r.names[id] = name
	r.ids[name] = id
	return id, nil
}

// Identity returns the identity interned for name.
func (r *Registry) Identity(name string) (value.Identity, bool) {
	if r.frozen.Load() {
		id, ok := r.ids[name]
		return id, ok
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[name]
	return id, ok
}

// Name returns the name interned under id.
func (r *Registry) Name(id value.Identity) (string, bool) {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	name, ok := r.names[id]
	return name, ok
}

// Register interns name and stores a descriptor built from fields.
// Registering the same name twice fails with errors.KindDuplicate.
func (r *Registry) Register(name string, fields []value.Field, opts ...value.DescriptorOption) (*value.Descriptor, error) {
	if r.frozen.Load() {
		return nil, errFrozen("register " + name)
	}
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseRegister, "empty type name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() {
		return nil, errFrozen("register " + name)
	}

	if id, ok := r.ids[name]; ok {
		if _, exists := r.descs[id]; exists {
			return nil, errors.Duplicate(errors.PhaseRegister, "type", name)
		}
	}
	id, err := r.internLocked(name)
	if err != nil {
		return nil, err
	}
	desc, err := value.NewDescriptor(id, name, fields, opts...)
	if err != nil {
		return nil, err
	}
	r.descs[id] = desc

	Logger().Debug("registered type",
		zap.String("name", name),
		zap.Uint32("identity", uint32(id)),
		zap.Int("fields", desc.FieldCount()))
	return desc, nil
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*value.Descriptor, bool) {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	id, ok := r.ids[name]
	if !ok {
		return nil, false
	}
	d, ok := r.descs[id]
	return d, ok
}

// Descriptor returns the descriptor registered under id.
func (r *Registry) Descriptor(id value.Identity) (*value.Descriptor, bool) {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	d, ok := r.descs[id]
	return d, ok
}

// New returns a default-initialized struct of the named type.
func (r *Registry) New(name string) (*value.Struct, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return nil, errors.NotFound(errors.PhaseAccess, "type", name)
	}
	return d.New(), nil
}

// Names returns the sorted names of all registered types.
func (r *Registry) Names() []string {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	names := make([]string, 0, len(r.descs))
	for _, d := range r.descs {
		names = append(names, d.Name())
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	if !r.frozen.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	return len(r.descs)
}

// Freeze ends the registration phase. It is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Swap(true) {
		return
	}
	Logger().Info("registry frozen",
		zap.Int("types", len(r.descs)),
		zap.Int("names", len(r.names)))
}

func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}
