package resns

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestResource_SharingBlocksMutation(t *testing.T) {
	r := NewRegistry()
	counter := DefineIn[int](r, "counter")

	a := NewFromRegistry(r)
	b := NewFromRegistry(r)
	defer a.Close()
	defer b.Close()

	n, _ := counter.GetMut(a)
	*n = 5

	counter.Share(b, a)

	if _, ok := counter.GetMut(a); ok {
		t.Fatal("GetMut on a should fail while shared")
	}
	if _, ok := counter.GetMut(b); ok {
		t.Fatal("GetMut on b should fail while shared")
	}
	if !counter.Shared(a) || !counter.Shared(b) {
		t.Fatal("Shared should report true in both namespaces")
	}

	// Pre-share mutation is visible through both.
	if *counter.Get(a) != 5 || *counter.Get(b) != 5 {
		t.Fatalf("values = %d/%d, want 5/5", *counter.Get(a), *counter.Get(b))
	}
	if counter.Get(a) != counter.Get(b) {
		t.Fatal("both namespaces should observe the same instance")
	}
}

func TestResource_ResetRestoresExclusivity(t *testing.T) {
	r := NewRegistry()
	counter := DefineIn[int](r, "counter")

	a := NewFromRegistry(r)
	b := NewFromRegistry(r)
	defer a.Close()
	defer b.Close()

	n, _ := counter.GetMut(a)
	*n = 5
	counter.Share(b, a)

	counter.Reset(b)

	if _, ok := counter.GetMut(b); !ok {
		t.Fatal("GetMut on b should succeed after reset")
	}
	if got := *counter.Get(b); got != 0 {
		t.Fatalf("b after reset = %d, want default 0", got)
	}
	// a keeps its value and regains exclusivity.
	if got := *counter.Get(a); got != 5 {
		t.Fatalf("a after b's reset = %d, want 5", got)
	}
	if _, ok := counter.GetMut(a); !ok {
		t.Fatal("GetMut on a should succeed once b reset")
	}
}

func TestResource_ShareSelfNoop(t *testing.T) {
	r := NewRegistry()
	counter := DefineIn[int](r, "counter")

	ns := NewFromRegistry(r)
	defer ns.Close()

	counter.Share(ns, ns)
	if counter.Strong(ns) != 1 {
		t.Fatalf("strong after self-share = %d, want 1", counter.Strong(ns))
	}
}

func TestResource_ShareChain(t *testing.T) {
	r := NewRegistry()
	counter := DefineIn[int](r, "counter")

	a := NewFromRegistry(r)
	b := NewFromRegistry(r)
	c := NewFromRegistry(r)
	defer a.Close()
	defer b.Close()
	defer c.Close()

	counter.Share(b, a)
	counter.Share(c, b)

	if counter.Strong(a) != 3 {
		t.Fatalf("strong across three namespaces = %d, want 3", counter.Strong(a))
	}
	if counter.Get(a) != counter.Get(c) {
		t.Fatal("a and c should observe the same instance")
	}
}

// The end-to-end scenario: counter declared with default 0, mutated in one
// namespace, shared into a second, reset back apart.
func TestResource_Scenario(t *testing.T) {
	r := NewRegistry()
	counter := DefineIn[int](r, "counter")

	ns1 := NewFromRegistry(r)
	defer ns1.Close()
	if *counter.Get(ns1) != 0 {
		t.Fatal("fresh counter should be 0")
	}

	n, ok := counter.GetMut(ns1)
	if !ok {
		t.Fatal("GetMut on fresh namespace failed")
	}
	*n = 42

	ns2 := NewFromRegistry(r)
	defer ns2.Close()
	if *counter.Get(ns2) != 0 {
		t.Fatal("ns2 should hold an independent default instance")
	}

	counter.Share(ns2, ns1)
	if *counter.Get(ns2) != 42 {
		t.Fatalf("ns2 after share = %d, want 42", *counter.Get(ns2))
	}
	if _, ok := counter.GetMut(ns1); ok {
		t.Fatal("GetMut on ns1 should fail while shared")
	}

	counter.Reset(ns2)
	if *counter.Get(ns2) != 0 {
		t.Fatalf("ns2 after reset = %d, want 0", *counter.Get(ns2))
	}
	if _, ok := counter.GetMut(ns1); !ok {
		t.Fatal("GetMut on ns1 should succeed again after ns2 reset")
	}
	if counter.Strong(ns1) != 1 {
		t.Fatalf("ns1 strong = %d, want 1", counter.Strong(ns1))
	}
}

func TestResource_ShareReplacementTeardown(t *testing.T) {
	r := NewRegistry()
	teardowns := 0
	res := DefineInWith[int](r, "replaced", nil, func(*int) { teardowns++ })

	a := NewFromRegistry(r)
	b := NewFromRegistry(r)
	defer a.Close()
	defer b.Close()

	// b's original instance loses its only reference during Share.
	res.Share(b, a)
	if teardowns != 1 {
		t.Fatalf("teardowns after share = %d, want 1", teardowns)
	}
}

func TestResource_StructPayload(t *testing.T) {
	type config struct {
		Name  string
		Limit int
	}

	r := NewRegistry()
	cfg := DefineInWith[config](r, "config", func() config {
		return config{Name: "default", Limit: 10}
	}, nil)

	ns := NewFromRegistry(r)
	defer ns.Close()

	if got := cfg.Get(ns); got.Name != "default" || got.Limit != 10 {
		t.Fatalf("default config = %+v", got)
	}

	c, ok := cfg.GetMut(ns)
	if !ok {
		t.Fatal("GetMut failed")
	}
	c.Limit = 99
	if cfg.Get(ns).Limit != 99 {
		t.Fatal("struct mutation not visible through Get")
	}
}

// Sharing out of a namespace while another goroutine resets the same slot
// must never tear an instance down twice: the retain happens under the source
// namespace's lock, so the reset's release can only see a count above zero.
func TestResource_ShareDuringSourceReset(t *testing.T) {
	r := NewRegistry()
	var inits, teardowns atomic.Int64
	res := DefineInWith[int](r, "churned",
		func() int { inits.Add(1); return 0 },
		func(*int) { teardowns.Add(1) },
	)

	src := NewFromRegistry(r)
	dsts := make([]*Namespace, 16)
	for i := range dsts {
		dsts[i] = NewFromRegistry(r)
	}

	var wg sync.WaitGroup
	for _, dst := range dsts {
		wg.Add(1)
		go func(dst *Namespace) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				res.Share(dst, src)
			}
		}(dst)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			res.Reset(src)
		}
	}()
	wg.Wait()

	src.Close()
	for _, dst := range dsts {
		dst.Close()
	}

	if inits.Load() != teardowns.Load() {
		t.Fatalf("teardowns = %d for %d constructed instances", teardowns.Load(), inits.Load())
	}
}

func TestResource_ConcurrentShareReset(t *testing.T) {
	r := NewRegistry()
	res := DefineIn[int](r, "contended")

	src := NewFromRegistry(r)
	dst := NewFromRegistry(r)
	defer src.Close()
	defer dst.Close()

	// Hammer share/reset against one namespace; slot writes serialize on the
	// namespace lock, counts must stay conserved.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				res.Share(dst, src)
				res.Reset(dst)
			}
		}()
	}
	wg.Wait()

	if res.Strong(src) != 1 {
		t.Fatalf("src strong after churn = %d, want 1", res.Strong(src))
	}
	if res.Strong(dst) != 1 {
		t.Fatalf("dst strong after churn = %d, want 1", res.Strong(dst))
	}
}
