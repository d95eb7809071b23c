package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound = errors.New("resource not found")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrSessionInvalid     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Storage errors
	ErrStorage = errors.New("storage failure")
)

// Registration errors
var (
	ErrUsernameTaken   = errors.New("username already registered")
	ErrEmailTaken      = errors.New("email already registered")
	ErrRollNumberTaken = errors.New("roll number already registered")
)

// ValidationError carries per-field messages so a form can be re-rendered
// with inline errors. Fields is keyed by the form field name.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return field + ": " + msg
	}
	return "validation failed"
}

// NewValidationError creates a ValidationError from a field error map
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// FieldError creates a ValidationError for a single field
func FieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// FieldErrors extracts the field error map when err is (or wraps) a
// ValidationError.
func FieldErrors(err error) (map[string]string, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields, true
	}
	return nil, false
}

// CustomError wraps a sentinel error with a user-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewStorageError wraps an unexpected persistence failure
func NewStorageError(message string) error {
	return &CustomError{Err: ErrStorage, Message: message}
}
