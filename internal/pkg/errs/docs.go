// Package errs provides standardized error types for the order management application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error family per failure class:
//   - ValidationError: malformed or missing input, the caller's fault
//   - AuthorizationError: an authenticated caller acting outside its permissions
//   - ObjectNotFoundError: a referenced entity is absent
//   - ConflictError: a state-transition precondition or uniqueness constraint violated
//   - PersistenceError: the underlying store failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify errors with errors.Is against the sentinels, which is how the
// HTTP adapter maps failures to status codes. The sentinel set is closed on purpose:
// anything that does not match one of the five families is treated as unexpected.
package errs
