package resns

import "reflect"

// Layout describes the size and alignment of a resource payload type.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf computes the layout of T.
func LayoutOf[T any]() Layout {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return Layout{
		Size:  t.Size(),
		Align: uintptr(t.Align()),
	}
}
