// Package errors provides structured error types for the refkit library.
//
// Errors are categorized by Phase (which lifecycle operation failed) and
// Kind (error category). The Error type carries a detail message, the
// offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePromote, errors.KindDanglingWeak).
//		Detail("weak handle outlived all owners").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DanglingWeak()
//	err := errors.NilPointer(errors.PhaseAcquire, "managed value")
//
// All errors implement the standard error interface and support errors.Is/As.
// Matching with errors.Is compares Phase and Kind, so sentinel values like
// shared.ErrDangling match every dangling-weak error regardless of detail.
package errors
