package resns

import (
	"sync"
	"testing"
)

func TestCell_RetainRelease(t *testing.T) {
	r := NewRegistry()
	res := DefineIn[int](r, "counter")

	c := res.Descriptor().newCell()
	if c.Strong() != 1 {
		t.Fatalf("fresh cell strong = %d, want 1", c.Strong())
	}
	if !c.Exclusive() {
		t.Fatal("fresh cell should be exclusive")
	}

	c.Retain()
	if c.Strong() != 2 {
		t.Fatalf("strong after retain = %d, want 2", c.Strong())
	}
	if c.Exclusive() {
		t.Fatal("retained cell should not be exclusive")
	}

	c.Release()
	if c.Strong() != 1 {
		t.Fatalf("strong after release = %d, want 1", c.Strong())
	}
	if !c.Exclusive() {
		t.Fatal("cell should be exclusive again")
	}
}

func TestCell_TeardownExactlyOnce(t *testing.T) {
	r := NewRegistry()
	teardowns := 0
	res := DefineInWith[int](r, "teardown", nil, func(*int) { teardowns++ })

	c := res.Descriptor().newCell()
	c.Retain()
	c.Retain()

	c.Release()
	c.Release()
	if teardowns != 0 {
		t.Fatalf("teardown ran with %d holders remaining", c.Strong())
	}

	c.Release()
	if teardowns != 1 {
		t.Fatalf("teardowns = %d, want 1", teardowns)
	}
}

func TestCell_ConcurrentRelease(t *testing.T) {
	r := NewRegistry()
	var mu sync.Mutex
	teardowns := 0
	res := DefineInWith[int](r, "concurrent", nil, func(*int) {
		mu.Lock()
		teardowns++
		mu.Unlock()
	})

	const holders = 64
	c := res.Descriptor().newCell()
	for i := 1; i < holders; i++ {
		c.Retain()
	}

	var wg sync.WaitGroup
	for i := 0; i < holders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Release()
		}()
	}
	wg.Wait()

	if teardowns != 1 {
		t.Fatalf("teardowns = %d, want exactly 1", teardowns)
	}
}

func TestCell_ValueMutGate(t *testing.T) {
	r := NewRegistry()
	res := DefineIn[string](r, "gated")

	c := res.Descriptor().newCell()
	if _, ok := c.ValueMut(); !ok {
		t.Fatal("exclusive cell should allow mutation")
	}

	c.Retain()
	if _, ok := c.ValueMut(); ok {
		t.Fatal("shared cell should block mutation")
	}

	// Reads stay available regardless of the count.
	if c.Value() == nil {
		t.Fatal("Value should always succeed")
	}

	c.Release()
	if _, ok := c.ValueMut(); !ok {
		t.Fatal("cell should allow mutation once exclusive again")
	}
}

func TestCell_OverflowGuard(t *testing.T) {
	r := NewRegistry()
	res := DefineIn[int](r, "overflow")

	c := res.Descriptor().newCell()
	c.strong.Store(maxStrong)

	defer func() {
		if recover() == nil {
			t.Fatal("Retain past the cap should panic")
		}
	}()
	c.Retain()
}

func TestCell_UnderflowGuard(t *testing.T) {
	r := NewRegistry()
	res := DefineIn[int](r, "underflow")

	c := res.Descriptor().newCell()
	c.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("releasing a dead cell should panic")
		}
	}()
	c.Release()
}

func TestCell_CombinedAllocation(t *testing.T) {
	r := NewRegistry()
	res := DefineInWith[int64](r, "combined", func() int64 { return 7 }, nil)

	c := res.Descriptor().newCell()
	p, ok := c.Value().(*int64)
	if !ok {
		t.Fatalf("payload is %T, want *int64", c.Value())
	}
	if *p != 7 {
		t.Fatalf("default value = %d, want 7", *p)
	}
}
