package resns

import (
	"sync/atomic"

	"github.com/wippyai/resns/errors"
)

// maxStrong caps the strong count well below the int64 range so that a
// runaway retain loop faults before the counter can wrap.
const maxStrong = int64(1) << 62

// Cell is a reference-counted container for exactly one resource instance.
// It is the target of a namespace slot; after sharing, several namespaces
// may point at the same cell. The payload is torn down exactly once, when
// the last reference is released.
//
// Header and payload live in a single allocation (see box); payload points
// into that block as a *T for the descriptor's payload type T.
type Cell struct {
	desc    *Descriptor
	payload any
	strong  atomic.Int64
}

// box combines the cell header and the payload in one heap block, mirroring
// the single-allocation scheme namespaces rely on: constructing a namespace
// allocates one block per registered resource, not two.
type box[T any] struct {
	cell Cell
	val  T
}

func newBox[T any](d *Descriptor, init func() T) *Cell {
	b := new(box[T])
	b.cell.desc = d
	b.cell.strong.Store(1)
	if init != nil {
		b.val = init()
	}
	b.cell.payload = &b.val
	return &b.cell
}

// Descriptor returns the cell's owning descriptor.
func (c *Cell) Descriptor() *Descriptor {
	return c.desc
}

// Strong returns the current strong count.
func (c *Cell) Strong() int64 {
	return c.strong.Load()
}

// Exclusive reports whether this cell has exactly one holder. Only an
// exclusive cell may hand out mutable payload access.
func (c *Cell) Exclusive() bool {
	return c.strong.Load() == 1
}

// Retain increments the strong count and returns the same cell. The holder
// performing the increment already keeps the cell alive, so no further
// synchronization is needed beyond the atomic add itself.
func (c *Cell) Retain() *Cell {
	n := c.strong.Add(1)
	if n > maxStrong {
		panic(errors.CountOverflow(c.desc.name, n))
	}
	return c
}

// Release decrements the strong count. On the transition to zero it runs the
// descriptor's teardown on the payload; the block itself is reclaimed by the
// garbage collector once unreachable. Go's atomics are sequentially
// consistent, which subsumes the release/acquire ordering teardown requires:
// the releasing goroutine observes every prior holder's writes.
func (c *Cell) Release() {
	n := c.strong.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic(errors.CountUnderflow(c.desc.name))
	}
	if f := c.desc.fini; f != nil {
		f(c.payload)
	}
}

// Value returns the payload pointer. Reads through it are always safe;
// mutation requires exclusivity, see ValueMut.
func (c *Cell) Value() any {
	return c.payload
}

// ValueMut returns the payload pointer only while this cell is exclusive.
// This is the gate that prevents aliased mutation across namespaces.
func (c *Cell) ValueMut() (any, bool) {
	if !c.Exclusive() {
		return nil, false
	}
	return c.payload, true
}
