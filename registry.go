package resns

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/resns/errors"
)

// Registry is an append-only ordered collection of resource descriptors. Its
// length fixes the width of every namespace built from it, so it freezes
// permanently when the first namespace is constructed; registering a resource
// after that point is a fatal fault.
//
// Most programs use the process-wide Default registry through Define and
// never touch this type directly. Isolated registries exist for tests and for
// embedding multiple independent resource sets in one process.
type Registry struct {
	mu      sync.RWMutex
	entries []*Descriptor
	byName  map[string]*Descriptor
	frozen  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Descriptor),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that Define registers into.
func Default() *Registry {
	return defaultRegistry
}

// register inserts a fully constructed descriptor, assigning its index.
// Called by Define/DefineWith; panics on misuse per the error policy.
func (r *Registry) register(d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		panic(errors.RegistryFrozen(d.name))
	}
	if _, exists := r.byName[d.name]; exists {
		panic(errors.DuplicateResource(d.name))
	}

	d.registry = r
	d.index = len(r.entries)
	r.entries = append(r.entries, d)
	r.byName[d.name] = d

	Logger().Debug("resource registered",
		zap.String("name", d.name),
		zap.Int("index", d.index),
		zap.Stringer("type", d.typ),
	)
}

// freeze marks the registry immutable. Invoked by namespace construction;
// idempotent.
func (r *Registry) freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frozen {
		r.frozen = true
		Logger().Debug("registry frozen", zap.Int("resources", len(r.entries)))
	}
}

// Frozen reports whether the registry still accepts registrations.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Descriptor returns the descriptor at index i.
func (r *Registry) Descriptor(i int) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[i]
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	return d, ok
}

// Each iterates descriptors in index order. Returning false stops iteration.
func (r *Registry) Each(fn func(int, *Descriptor) bool) {
	r.mu.RLock()
	entries := r.entries
	r.mu.RUnlock()

	for i, d := range entries {
		if !fn(i, d) {
			break
		}
	}
}

// snapshot returns the descriptor list as of now. Once frozen the slice never
// changes, so namespaces built from it keep a stable view.
func (r *Registry) snapshot() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries
}
