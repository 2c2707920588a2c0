// Package apperrors defines structured application error types, allowing for
// a clear distinction between error classes (configuration, buffer layout,
// verification mismatch, etc.) and for carrying the underlying cause.
//
// Kernels themselves never return errors. These types are produced by the
// layers around them: configuration parsing, the parallel executor's layout
// checks and the verification harness.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping types implement the Unwrap() method to support errors.Is() and errors.As().
package apperrors
