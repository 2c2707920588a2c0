package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a kernel disagreed with a reference backend.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// KernelError wraps a failure raised while running a kernel through the
// harness, preserving the original cause and the kernel that raised it.
type KernelError struct {
	// Kernel names the kernel being run.
	Kernel string
	// Cause is the underlying error.
	Cause error
}

// Error returns the kernel name followed by the cause.
func (e KernelError) Error() string { return e.Kernel + ": " + e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e KernelError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its deadline. It captures the
// operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// LayoutError reports a buffer region that does not fit its buffer: the
// region needs Count elements of Stride bytes from Offset but the buffer
// only has Len bytes.
type LayoutError struct {
	// Region names the operand ("a", "b", "dst", "src").
	Region string
	Offset int
	Stride int
	Count  int
	Len    int
}

// Error returns a formatted message describing the layout violation.
func (e LayoutError) Error() string {
	return fmt.Sprintf("region %s needs %d elements of %d bytes from offset %d, buffer has %d bytes",
		e.Region, e.Count, e.Stride, e.Offset, e.Len)
}

// MismatchError reports a kernel result that differs from a reference
// backend for one element of a batch.
type MismatchError struct {
	// Kernel is the kernel under test.
	Kernel string
	// Backend is the reference that disagreed.
	Backend string
	// Element is the batch index of the first differing element.
	Element int
	// Got and Want are the hex encodings of the two results.
	Got, Want string
}

// Error returns a formatted message describing the mismatch.
func (e MismatchError) Error() string {
	return fmt.Sprintf("%s disagrees with %s at element %d: got %s, want %s",
		e.Kernel, e.Backend, e.Element, e.Got, e.Want)
}

// AllocationError reports a kernel that allocated on the heap during a
// batched call.
type AllocationError struct {
	// Kernel is the kernel under test.
	Kernel string
	// Allocs is the average number of allocations per call.
	Allocs float64
}

// Error returns a formatted message describing the allocation.
func (e AllocationError) Error() string {
	return fmt.Sprintf("%s allocated %.1f objects per call", e.Kernel, e.Allocs)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
//
// Parameters:
//   - err: The error to classify. A nil error maps to ExitSuccess.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		layoutErr     LayoutError
		mismatchErr   MismatchError
		timeoutErr    TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &configErr), errors.As(err, &validationErr), errors.As(err, &layoutErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleError writes a one-line diagnostic for err to out and returns the
// matching exit code. Nothing is written for a nil error.
//
// Parameters:
//   - err: The error to report.
//   - timeout: The configured run timeout, quoted in deadline messages.
//   - out: The destination of the diagnostic.
//
// Returns:
//   - int: The exit code from ExitCode.
func HandleError(err error, timeout time.Duration, out io.Writer) int {
	code := ExitCode(err)
	switch code {
	case ExitSuccess:
	case ExitErrorTimeout:
		fmt.Fprintf(out, "Run exceeded its timeout (%s): %v\n", timeout, err)
	case ExitErrorCanceled:
		fmt.Fprintln(out, "Run canceled by user.")
	case ExitErrorMismatch:
		fmt.Fprintf(out, "Verification failed: %v\n", err)
	case ExitErrorConfig:
		fmt.Fprintf(out, "Configuration error: %v\n", err)
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return code
}
