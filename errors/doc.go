// Package errors provides structured error types for the resns library.
//
// Errors are categorized by Phase (where in the resource lifecycle the error
// occurred) and Kind (error category). The Error type includes rich context:
// resource name, Go type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDeclare, errors.KindZeroSize).
//		Resource("counter").
//		GoType("struct{}").
//		Detail("payload types must occupy at least one byte").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ZeroSizePayload("counter", "struct{}")
//	err := errors.RegistryFrozen("counter")
//
// All errors implement the standard error interface and support errors.Is/As.
//
// Most conditions described here are fatal by the library's error policy:
// they indicate programming faults (declaring resources after a namespace
// exists, releasing a dead cell, crossing registries) and surface as panics
// carrying one of these structured errors. The only non-fatal, caller-visible
// outcome in the library is the exclusivity miss on mutable access, which is
// reported as a boolean, not an error.
package errors
