// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the codebase.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// The transport layer relies on the sentinels to map failures onto HTTP
// status codes without inspecting message text: not-found, validation,
// precondition, transition and permission failures each unwrap to their
// own sentinel, while anything else is treated as an opaque infrastructure
// error and surfaced without internal detail.
package errs
