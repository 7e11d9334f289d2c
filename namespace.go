package resns

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/resns/errors"
)

// Namespace owns one cell per registered resource, indexed by descriptor
// index. It is the unit of isolation: two namespaces hold independent
// instances of every resource until a slot is explicitly shared.
//
// Slot reads take the read lock; slot replacement (share/reset) takes the
// write lock, so concurrent share/reset against the same namespace serialize
// on the namespace itself. Mutating a payload obtained from GetMut while
// another goroutine shares the same slot away is still a caller-level race;
// callers coordinate mutation and sharing of one namespace the same way they
// would any other non-synchronized value.
type Namespace struct {
	mu        sync.RWMutex
	slots     []*Cell
	registry  *Registry
	closed    bool
	observers []Observer
	obsMu     sync.RWMutex
}

// New builds a namespace over the Default registry. Every slot is populated
// with a fresh default-valued cell before New returns; there is no lazy
// initialization. The first construction freezes the registry.
func New() *Namespace {
	return NewFromRegistry(Default())
}

// NewFromRegistry builds a namespace over an explicit registry.
func NewFromRegistry(r *Registry) *Namespace {
	r.freeze()

	entries := r.snapshot()
	slots := make([]*Cell, len(entries))
	for i, d := range entries {
		slots[i] = d.newCell()
	}

	Logger().Debug("namespace created", zap.Int("slots", len(slots)))

	return &Namespace{
		slots:    slots,
		registry: r,
	}
}

// Registry returns the registry this namespace was built from.
func (ns *Namespace) Registry() *Registry {
	return ns.registry
}

// Len returns the number of slots.
func (ns *Namespace) Len() int {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	return len(ns.slots)
}

// cell returns the slot's current cell for a descriptor.
func (ns *Namespace) cell(d *Descriptor) *Cell {
	if ns == nil {
		panic(errors.NilNamespace(d.name))
	}
	if d.registry != ns.registry {
		panic(errors.ForeignDescriptor(d.name))
	}

	ns.mu.RLock()
	defer ns.mu.RUnlock()

	if ns.closed {
		panic(errors.Closed("namespace"))
	}
	return ns.slots[d.index]
}

// retainCell returns the slot's current cell with its strong count already
// incremented. The retain happens under the read lock: replacement needs the
// write lock, so the slot's own reference keeps the cell alive (count >= 1)
// until the retain lands, and a concurrent reset can never release it to
// zero first.
func (ns *Namespace) retainCell(d *Descriptor) *Cell {
	if ns == nil {
		panic(errors.NilNamespace(d.name))
	}
	if d.registry != ns.registry {
		panic(errors.ForeignDescriptor(d.name))
	}

	ns.mu.RLock()
	defer ns.mu.RUnlock()

	if ns.closed {
		panic(errors.Closed("namespace"))
	}
	return ns.slots[d.index].Retain()
}

// install replaces the slot's cell with c, releasing the previous cell.
// The replaced cell's teardown runs here if this namespace held the last
// reference. A slot is replaced, never emptied.
func (ns *Namespace) install(d *Descriptor, c *Cell, ev EventType) {
	if ns == nil {
		panic(errors.NilNamespace(d.name))
	}
	if d.registry != ns.registry {
		panic(errors.ForeignDescriptor(d.name))
	}

	ns.mu.Lock()
	if ns.closed {
		ns.mu.Unlock()
		panic(errors.Closed("namespace"))
	}
	old := ns.slots[d.index]
	ns.slots[d.index] = c
	ns.mu.Unlock()

	old.Release()

	ns.notify(Event{Type: ev, Resource: d, Strong: c.Strong()})
}

// Each iterates slots in index order with each cell's current strong count.
// Returning false stops iteration. Each is a diagnostics snapshot, not an
// accessor: a closed namespace has no slots, so Each visits nothing instead
// of panicking, letting inspection tooling overlap with shutdown.
func (ns *Namespace) Each(fn func(*Descriptor, int64) bool) {
	ns.mu.RLock()
	slots := make([]*Cell, len(ns.slots))
	copy(slots, ns.slots)
	ns.mu.RUnlock()

	for _, c := range slots {
		if !fn(c.desc, c.Strong()) {
			break
		}
	}
}

// Close releases every slot's cell, running teardown for any instance this
// namespace held the last reference to. Idempotent. The namespace rejects
// all further access once closed.
func (ns *Namespace) Close() error {
	ns.mu.Lock()
	if ns.closed {
		ns.mu.Unlock()
		return nil
	}
	ns.closed = true
	slots := ns.slots
	ns.slots = nil
	ns.mu.Unlock()

	for _, c := range slots {
		c.Release()
	}

	Logger().Debug("namespace closed", zap.Int("slots", len(slots)))
	ns.notify(Event{Type: EventClosed})
	return nil
}

// Subscribe adds an observer for slot change events.
func (ns *Namespace) Subscribe(o Observer) {
	ns.obsMu.Lock()
	defer ns.obsMu.Unlock()
	ns.observers = append(ns.observers, o)
}

// Unsubscribe removes an observer.
func (ns *Namespace) Unsubscribe(o Observer) {
	ns.obsMu.Lock()
	defer ns.obsMu.Unlock()
	for i, obs := range ns.observers {
		if obs == o {
			ns.observers = append(ns.observers[:i], ns.observers[i+1:]...)
			return
		}
	}
}

func (ns *Namespace) notify(e Event) {
	ns.obsMu.RLock()
	defer ns.obsMu.RUnlock()
	for _, o := range ns.observers {
		o.OnNamespaceEvent(e)
	}
}
