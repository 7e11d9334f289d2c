package resns

import (
	"fmt"
	"reflect"
)

// Descriptor is the static metadata for one declared resource type: its
// payload layout, how to build a default-valued cell, and how to tear an
// instance down. Descriptors are immutable once registered and live for the
// rest of the process.
type Descriptor struct {
	name     string
	typ      reflect.Type
	layout   Layout
	alloc    func(*Descriptor) *Cell
	fini     func(any)
	registry *Registry
	index    int
}

// Name returns the resource's declared name.
func (d *Descriptor) Name() string {
	return d.name
}

// Type returns the payload's Go type.
func (d *Descriptor) Type() reflect.Type {
	return d.typ
}

// Layout returns the payload's size and alignment.
func (d *Descriptor) Layout() Layout {
	return d.layout
}

// Index returns the descriptor's position in its registry. Indexes are
// zero-based, assigned at registration, and stable for the process lifetime.
func (d *Descriptor) Index() int {
	return d.index
}

// Registry returns the registry this descriptor belongs to.
func (d *Descriptor) Registry() *Registry {
	return d.registry
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s#%d (%s, %d bytes)", d.name, d.index, d.typ, d.layout.Size)
}

// newCell builds a fresh exclusive cell holding the type's default value.
func (d *Descriptor) newCell() *Cell {
	return d.alloc(d)
}
