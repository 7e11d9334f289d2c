package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the resource lifecycle the error occurred
type Phase string

const (
	PhaseDeclare  Phase = "declare"  // resource declaration / registration
	PhaseBuild    Phase = "build"    // namespace construction
	PhaseAccess   Phase = "access"   // slot access (get/share/reset)
	PhaseTeardown Phase = "teardown" // cell release and finalization
)

// Kind categorizes the error
type Kind string

const (
	KindZeroSize   Kind = "zero_size"   // payload type has zero size
	KindDuplicate  Kind = "duplicate"   // resource name already registered
	KindFrozen     Kind = "frozen"      // registration after first namespace
	KindOverflow   Kind = "overflow"    // strong count exceeded the cap
	KindUnderflow  Kind = "underflow"   // release of an already-dead cell
	KindForeign    Kind = "foreign"     // descriptor from another registry
	KindClosed     Kind = "closed"      // operation on a closed namespace
	KindNilPointer Kind = "nil_pointer" // nil namespace or descriptor
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Resource string
	GoType   string
	Detail   string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Resource != "" {
		b.WriteString(" at ")
		b.WriteString(e.Resource)
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Resource sets the resource name
func (b *Builder) Resource(name string) *Builder {
	b.err.Resource = name
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ZeroSizePayload creates a zero-size payload rejection error
func ZeroSizePayload(resource, goType string) *Error {
	return &Error{
		Phase:    PhaseDeclare,
		Kind:     KindZeroSize,
		Resource: resource,
		GoType:   goType,
		Detail:   "payload types must occupy at least one byte",
	}
}

// DuplicateResource creates a duplicate registration error
func DuplicateResource(resource string) *Error {
	return &Error{
		Phase:    PhaseDeclare,
		Kind:     KindDuplicate,
		Resource: resource,
		Detail:   "resource name already registered",
	}
}

// RegistryFrozen creates a registration-after-freeze error
func RegistryFrozen(resource string) *Error {
	return &Error{
		Phase:    PhaseDeclare,
		Kind:     KindFrozen,
		Resource: resource,
		Detail:   "all resources must be declared before the first namespace is built",
	}
}

// CountOverflow creates a strong-count overflow error
func CountOverflow(resource string, count int64) *Error {
	return &Error{
		Phase:    PhaseAccess,
		Kind:     KindOverflow,
		Resource: resource,
		Detail:   fmt.Sprintf("strong count %d exceeds the cap", count),
	}
}

// CountUnderflow creates a release-after-death error
func CountUnderflow(resource string) *Error {
	return &Error{
		Phase:    PhaseTeardown,
		Kind:     KindUnderflow,
		Resource: resource,
		Detail:   "cell released more times than it was retained",
	}
}

// ForeignDescriptor creates a registry mismatch error
func ForeignDescriptor(resource string) *Error {
	return &Error{
		Phase:    PhaseAccess,
		Kind:     KindForeign,
		Resource: resource,
		Detail:   "descriptor belongs to a different registry than the namespace",
	}
}

// Closed creates a use-after-close error
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseAccess,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// NilNamespace creates a nil namespace error
func NilNamespace(resource string) *Error {
	return &Error{
		Phase:    PhaseAccess,
		Kind:     KindNilPointer,
		Resource: resource,
		Detail:   "nil namespace",
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
