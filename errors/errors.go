package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which lifecycle operation the error occurred in
type Phase string

const (
	PhaseAcquire Phase = "acquire" // taking ownership of a value
	PhaseRelease Phase = "release" // dropping ownership
	PhasePromote Phase = "promote" // weak to strong promotion
	PhaseAlloc   Phase = "alloc"   // control block / combined allocation
	PhaseTrack   Phase = "track"   // diagnostic tracking
)

// Kind categorizes the error
type Kind string

const (
	KindDanglingWeak  Kind = "dangling_weak"
	KindDoubleRelease Kind = "double_release"
	KindNilPointer    Kind = "nil_pointer"
	KindOverflow      Kind = "overflow"
	KindUnderflow     Kind = "underflow"
	KindInvalidInput  Kind = "invalid_input"
	KindConstruction  Kind = "construction"
	KindClosed        Kind = "closed"
)

// Error is the structured error type used throughout refkit
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
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

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// DanglingWeak creates the error raised when promoting an expired weak handle
func DanglingWeak() *Error {
	return &Error{
		Phase:  PhasePromote,
		Kind:   KindDanglingWeak,
		Detail: "dangling weak reference",
	}
}

// DoubleRelease creates a double release error
func DoubleRelease(what string) *Error {
	return &Error{
		Phase:  PhaseRelease,
		Kind:   KindDoubleRelease,
		Detail: fmt.Sprintf("%s released more than once", what),
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: fmt.Sprintf("%s is nil", what),
	}
}

// Overflow creates a counter overflow error
func Overflow(phase Phase, count int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("reference count %d overflows", count),
		Value:  count,
	}
}

// Underflow creates a counter underflow error
func Underflow(phase Phase, count int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnderflow,
		Detail: fmt.Sprintf("reference count %d below zero", count),
		Value:  count,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Construction creates an in-place construction failure error
func Construction(cause error) *Error {
	return &Error{
		Phase:  PhaseAlloc,
		Kind:   KindConstruction,
		Detail: "construct value in place",
		Cause:  cause,
	}
}

// Closed creates an error for operations on a closed tracker
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseTrack,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s closed", what),
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
