package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Store errors
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// User errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrInvalidRole    = errors.New("invalid role")
)

// Module errors
var (
	ErrModuleNotFound = errors.New("module not found")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrNoModulesSelected  = errors.New("no module codes provided")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
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

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}
