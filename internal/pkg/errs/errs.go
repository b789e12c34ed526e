package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrStateIsInvalid      = errors.New("state is invalid")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrStoreUnavailable    = errors.New("store is unavailable")
	ErrAccessIsDenied      = errors.New("access is denied")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a missing object identified by ParamName and ID.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

// Error formats the error message.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound.Error(), e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound.Error(), fmt.Sprintf("%s", e.ID))
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed input value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

// Error formats the error message.
func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid.Error(), e.ParamName), e.Cause)
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

// Error formats the error message.
func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid.Error(), sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

// Error formats the error message.
func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired.Error(), e.ParamName), e.Cause)
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports a malformed version token.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// Error formats the error message.
func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid.Error(), e.ParamName), e.Cause)
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// StateIsInvalidError reports a well-formed command rejected by the current
// state of an aggregate. Precondition names the rule that failed.
type StateIsInvalidError struct {
	ParamName    string
	Precondition string
	Cause        error
}

// NewStateIsInvalidError creates a StateIsInvalidError.
func NewStateIsInvalidError(paramName, precondition string) *StateIsInvalidError {
	return &StateIsInvalidError{ParamName: paramName, Precondition: precondition}
}

// NewStateIsInvalidErrorWithCause creates a StateIsInvalidError wrapping cause.
func NewStateIsInvalidErrorWithCause(paramName, precondition string, cause error) *StateIsInvalidError {
	return &StateIsInvalidError{ParamName: paramName, Precondition: precondition, Cause: cause}
}

// Error formats the error message.
func (e *StateIsInvalidError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", ErrStateIsInvalid.Error(), e.ParamName, sanitize(e.Precondition))
	return withCause(msg, e.Cause)
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *StateIsInvalidError) Unwrap() error {
	return ErrStateIsInvalid
}

// ConcurrencyConflictError reports that a record changed between read and write.
type ConcurrencyConflictError struct {
	ParamName       string
	ID              any
	ExpectedVersion int
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError.
func NewConcurrencyConflictError(paramName string, id any, expectedVersion int) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ParamName: paramName, ID: id, ExpectedVersion: expectedVersion}
}

// Error formats the error message.
func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified since version %d",
		ErrConcurrencyConflict.Error(), e.ParamName, sanitize(e.ID), e.ExpectedVersion)
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// StoreUnavailableError wraps a failure of the backing store.
type StoreUnavailableError struct {
	Operation string
	Cause     error
}

// NewStoreUnavailableError creates a StoreUnavailableError wrapping cause.
func NewStoreUnavailableError(operation string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{Operation: operation, Cause: cause}
}

// Error formats the error message.
func (e *StoreUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStoreUnavailable.Error(), e.Operation), e.Cause)
}

// Unwrap exposes both the sentinel and the driver error to errors.Is.
func (e *StoreUnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStoreUnavailable}
	}
	return []error{ErrStoreUnavailable, e.Cause}
}

// AccessIsDeniedError reports an operation the caller's roles do not permit.
type AccessIsDeniedError struct {
	Operation string
	Roles     []string
}

// NewAccessIsDeniedError creates an AccessIsDeniedError.
func NewAccessIsDeniedError(operation string, roles []string) *AccessIsDeniedError {
	return &AccessIsDeniedError{Operation: operation, Roles: roles}
}

// Error formats the error message.
func (e *AccessIsDeniedError) Error() string {
	return fmt.Sprintf("%s: %s is not permitted for roles [%s]",
		ErrAccessIsDenied.Error(), e.Operation, strings.Join(e.Roles, ", "))
}

// Unwrap returns the sentinel matched by errors.Is.
func (e *AccessIsDeniedError) Unwrap() error {
	return ErrAccessIsDenied
}
