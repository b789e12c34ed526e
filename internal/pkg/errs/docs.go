// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced object does not exist
//   - StateIsInvalidError: a well-formed command is not permitted in the current state
//   - ConcurrencyConflictError: a record changed between read and write
//   - StoreUnavailableError: the backing store failed to respond
//   - AccessIsDeniedError: the caller's roles do not permit an operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels and extract details
// with errors.As against the struct types.
package errs
