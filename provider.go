package resns

import (
	"sync"
	"sync/atomic"
)

// Provider resolves which namespace "current" means at a call site. The two
// standard strategies are a process-wide singleton (GlobalProvider) and one
// namespace per caller identity (KeyedProvider). Select one at startup with
// SetProvider; call sites then stay oblivious to the isolation model.
type Provider interface {
	Current() *Namespace
}

var currentProvider atomic.Value // of provider

// wrapper so atomic.Value tolerates differing concrete Provider types.
type provider struct {
	p Provider
}

// SetProvider installs the strategy used by CurrentNamespace and
// Resource.Current. Intended for startup configuration; the default is a
// GlobalProvider over the Default registry.
func SetProvider(p Provider) {
	currentProvider.Store(provider{p: p})
}

// CurrentNamespace resolves the current-context namespace through the
// installed provider.
func CurrentNamespace() *Namespace {
	if v := currentProvider.Load(); v != nil {
		return v.(provider).p.Current()
	}
	return defaultGlobal.Current()
}

var defaultGlobal = NewGlobalProvider(Default())

// GlobalProvider resolves every caller to the same lazily built namespace.
// This is the unikernel-style model: one namespace shared by the whole
// process.
type GlobalProvider struct {
	registry *Registry
	once     sync.Once
	ns       *Namespace
}

// NewGlobalProvider creates a global provider over r. The namespace is built
// on first resolution, not up front, so resources may still be declared
// until then.
func NewGlobalProvider(r *Registry) *GlobalProvider {
	return &GlobalProvider{registry: r}
}

// Current returns the process-wide namespace, building it on first call.
func (g *GlobalProvider) Current() *Namespace {
	g.once.Do(func() {
		g.ns = NewFromRegistry(g.registry)
	})
	return g.ns
}

// KeyedProvider resolves each caller identity to its own namespace, built on
// first resolution by that identity. The identity function is supplied by
// the embedding environment (a thread ID, an execution-context ID, a shard
// number); the provider only requires that it is stable for a caller's
// lifetime. Distinct keys never observe each other's namespace.
type KeyedProvider struct {
	Key      func() uint64
	registry *Registry
	mu       sync.Mutex
	spaces   map[uint64]*Namespace
}

// NewKeyedProvider creates a keyed provider over r using the given identity
// function.
func NewKeyedProvider(r *Registry, key func() uint64) *KeyedProvider {
	return &KeyedProvider{
		Key:      key,
		registry: r,
		spaces:   make(map[uint64]*Namespace),
	}
}

// Current returns the calling identity's namespace, building it on first use.
func (k *KeyedProvider) Current() *Namespace {
	id := k.Key()

	k.mu.Lock()
	defer k.mu.Unlock()

	ns, ok := k.spaces[id]
	if !ok {
		ns = NewFromRegistry(k.registry)
		k.spaces[id] = ns
	}
	return ns
}

// Drop closes and forgets the namespace for a caller identity, typically
// when that execution context exits. No-op for unknown keys.
func (k *KeyedProvider) Drop(id uint64) {
	k.mu.Lock()
	ns, ok := k.spaces[id]
	delete(k.spaces, id)
	k.mu.Unlock()

	if ok {
		ns.Close()
	}
}

// Len returns the number of live per-identity namespaces.
func (k *KeyedProvider) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.spaces)
}
