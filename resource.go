package resns

import (
	"context"
	"reflect"

	"github.com/wippyai/resns/errors"
)

// Resource is the typed accessor for one declared resource. It is stateless:
// a key (the descriptor) plus an API. All operations index into a namespace's
// slot array by the descriptor's registry index.
//
// The usual shape is one package-level accessor per resource:
//
//	var requestCount = resns.Define[int64]("request-count")
//
//	func handle(ns *resns.Namespace) {
//		if n, ok := requestCount.GetMut(ns); ok {
//			*n++
//		}
//	}
type Resource[T any] struct {
	desc *Descriptor
}

// Define declares a resource in the Default registry whose instances start
// at T's zero value and need no teardown. Panics if T is zero-sized, the
// name is already taken, or a namespace has already been built.
func Define[T any](name string) *Resource[T] {
	return DefineIn[T](Default(), name)
}

// DefineWith declares a resource in the Default registry with an explicit
// default constructor and teardown. Either may be nil.
func DefineWith[T any](name string, init func() T, fini func(*T)) *Resource[T] {
	return DefineInWith[T](Default(), name, init, fini)
}

// DefineIn declares a zero-valued resource in an explicit registry.
func DefineIn[T any](r *Registry, name string) *Resource[T] {
	return DefineInWith[T](r, name, nil, nil)
}

// DefineInWith declares a resource in an explicit registry with an explicit
// default constructor and teardown.
func DefineInWith[T any](r *Registry, name string, init func() T, fini func(*T)) *Resource[T] {
	layout := LayoutOf[T]()
	if layout.Size == 0 {
		panic(errors.ZeroSizePayload(name, reflect.TypeOf((*T)(nil)).Elem().String()))
	}

	d := &Descriptor{
		name:   name,
		typ:    reflect.TypeOf((*T)(nil)).Elem(),
		layout: layout,
		alloc: func(d *Descriptor) *Cell {
			return newBox[T](d, init)
		},
	}
	if fini != nil {
		d.fini = func(p any) {
			fini(p.(*T))
		}
	}

	r.register(d)
	return &Resource[T]{desc: d}
}

// Descriptor returns the underlying descriptor.
func (r *Resource[T]) Descriptor() *Descriptor {
	return r.desc
}

// Get returns the resource's current value in ns. It always succeeds. The
// returned pointer is a shared view: treat it as read-only unless T is
// internally synchronized.
func (r *Resource[T]) Get(ns *Namespace) *T {
	return ns.cell(r.desc).payload.(*T)
}

// GetMut returns a mutable view of the resource in ns, or false if the slot's
// cell is shared with another namespace. The check is read-only: a miss does
// not change any state. Callers branch on the miss and either read instead or
// Reset to regain exclusivity.
func (r *Resource[T]) GetMut(ns *Namespace) (*T, bool) {
	p, ok := ns.cell(r.desc).ValueMut()
	if !ok {
		return nil, false
	}
	return p.(*T), true
}

// Shared reports whether the resource's cell in ns is aliased by another
// holder.
func (r *Resource[T]) Shared(ns *Namespace) bool {
	return !ns.cell(r.desc).Exclusive()
}

// Strong returns the strong count of the resource's cell in ns.
func (r *Resource[T]) Strong(ns *Namespace) int64 {
	return ns.cell(r.desc).Strong()
}

// Share makes dst observe the same instance as src: src's cell is retained
// and installed into dst's slot, releasing (and possibly tearing down) the
// instance dst held before. Afterwards mutation is blocked in both
// namespaces until one of them resets. Sharing a namespace with itself is a
// no-op.
func (r *Resource[T]) Share(dst, src *Namespace) {
	if dst == src {
		return
	}
	c := src.retainCell(r.desc)
	dst.install(r.desc, c, EventShared)
}

// Reset installs a brand-new default-valued cell into ns's slot, releasing
// the previous one. The namespace ends up with an exclusively owned default
// instance regardless of prior sharing; other holders of the old instance
// are unaffected except that the old cell may regain exclusivity for them.
func (r *Resource[T]) Reset(ns *Namespace) {
	ns.install(r.desc, r.desc.newCell(), EventReset)
}

// Current returns the resource's value in the current-context namespace, as
// resolved by the installed Provider.
func (r *Resource[T]) Current() *T {
	return r.Get(CurrentNamespace())
}

// FromContext returns the resource's value in the namespace carried by ctx,
// or false if ctx carries none.
func (r *Resource[T]) FromContext(ctx context.Context) (*T, bool) {
	ns, ok := NamespaceFromContext(ctx)
	if !ok {
		return nil, false
	}
	return r.Get(ns), true
}
