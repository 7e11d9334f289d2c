// Package resns provides a namespace-scoped resource registry.
//
// A resource is any typed value (a counter, a configuration block, a handle
// table) whose default construction and teardown are declared once, while its
// instances live inside per-namespace containers. Namespaces support a
// spectrum of isolation models: a single process-wide namespace shared by
// every caller, one namespace per execution context, or anything in between.
//
// # Architecture Overview
//
//	resns/           Core: descriptors, registry, cells, namespaces, accessors
//	├── errors/      Structured error types (Phase + Kind taxonomy)
//	└── cmd/nsdemo/  Demo CLI with an interactive namespace inspector
//
// # Quick Start
//
// Declare resources at package level, then build namespaces:
//
//	var counter = resns.Define[int64]("counter")
//
//	ns1 := resns.New()
//	defer ns1.Close()
//
//	if n, ok := counter.GetMut(ns1); ok {
//		*n = 42
//	}
//	fmt.Println(*counter.Get(ns1)) // 42
//
// All resources must be declared before the first namespace is built; the
// registry freezes permanently at that point so every descriptor's index
// stays stable for the process lifetime.
//
// # Sharing and Exclusivity
//
// Every namespace slot holds a reference-counted cell. A cell with exactly
// one holder is exclusive and may be mutated; after Share the cell is aliased
// and GetMut reports unavailable in every namespace that holds it:
//
//	ns2 := resns.New()
//	counter.Share(ns2, ns1)        // ns2 now aliases ns1's instance
//	_, ok := counter.GetMut(ns1)   // ok == false: shared
//	counter.Reset(ns2)             // ns2 gets a fresh exclusive default
//	_, ok = counter.GetMut(ns1)    // ok == true again
//
// The exclusivity gate is the only mutation discipline the library enforces.
// It makes aliased mutation impossible without locks, at the cost that a
// shared slot can only regain exclusivity through Reset. Payload types that
// need concurrent mutation should be internally synchronized; the library
// guarantees safe sharing of the container, not of arbitrary payloads.
//
// # Current-Context Resolution
//
// Call sites that should not care which namespace is active resolve it
// through a Provider installed at startup:
//
//	resns.SetProvider(resns.NewGlobalProvider(resns.Default()))
//	n := counter.Current() // same instance for every caller
//
// NewKeyedProvider gives each caller identity (thread ID, context ID) its
// own namespace instead. Context plumbing is also supported via
// WithNamespace / Resource.FromContext.
//
// # Error Policy
//
// The only recoverable, caller-visible outcome is the exclusivity miss on
// GetMut, reported as a boolean. Everything else — declaring a zero-sized
// payload, registering after the freeze, crossing registries, releasing a
// dead cell, strong-count overflow — is a programming fault and panics with
// a structured error from the errors package.
package resns
