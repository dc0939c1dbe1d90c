package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each failure class. Wrapped by the typed errors below so
// callers can classify with errors.Is without knowing the concrete type.
var (
	ErrValidation     = errors.New("value is invalid")
	ErrAuthorization  = errors.New("not permitted")
	ErrObjectNotFound = errors.New("object not found")
	ErrConflict       = errors.New("conflict")
	ErrPersistence    = errors.New("persistence failure")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ValidationError indicates malformed or missing input. It is always detected
// before any write and never leaves partial state behind.
type ValidationError struct {
	ParamName string
	Cause     error
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName}
}

// NewValidationErrorWithCause creates a ValidationError carrying the underlying cause.
func NewValidationErrorWithCause(paramName string, cause error) *ValidationError {
	return &ValidationError{ParamName: paramName, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValidation, e.ParamName))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AuthorizationError indicates an authenticated caller attempted an action it
// is not permitted to perform.
type AuthorizationError struct {
	Action string
	Cause  error
}

// NewAuthorizationError creates an AuthorizationError for the given action.
func NewAuthorizationError(action string) *AuthorizationError {
	return &AuthorizationError{Action: action}
}

// NewAuthorizationErrorWithCause creates an AuthorizationError carrying the underlying cause.
func NewAuthorizationErrorWithCause(action string, cause error) *AuthorizationError {
	return &AuthorizationError{Action: action, Cause: cause}
}

func (e *AuthorizationError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrAuthorization, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrAuthorization, e.Action))
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// ObjectNotFoundError indicates a referenced entity is absent from the store.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError carrying the underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf(
			"%s: param is: %s, ID is: %s (cause: %s)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError indicates a state-transition precondition was violated or a
// uniqueness constraint clashed.
type ConflictError struct {
	ParamName string
	Detail    string
	Cause     error
}

// NewConflictError creates a ConflictError for the given parameter with detail.
func NewConflictError(paramName, detail string) *ConflictError {
	return &ConflictError{ParamName: paramName, Detail: detail}
}

// NewConflictErrorWithCause creates a ConflictError carrying the underlying cause.
func NewConflictErrorWithCause(paramName, detail string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Detail: detail, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s: %s (cause: %s)", ErrConflict, e.ParamName, e.Detail, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrConflict, e.ParamName, e.Detail))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PersistenceError indicates the underlying store failed mid-operation. The
// transaction that hit it must be rolled back before the error is re-raised.
type PersistenceError struct {
	Op    string
	Cause error
}

// NewPersistenceError creates a PersistenceError for the given operation and cause.
func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrPersistence, e.Op, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrPersistence, e.Op))
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}
