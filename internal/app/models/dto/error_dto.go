package dto

import (
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidPassword    ErrorCode = "AUTH_002"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_003"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
	ErrorCodeStoreError     ErrorCode = "SRV_002"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// Severity levels
const (
	ErrorSeverityInfo     ErrorSeverity = "INFO"
	ErrorSeverityWarning  ErrorSeverity = "WARNING"
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"AUTH_001"`
	Message  string        `json:"message" example:"Invalid credentials"`
	Field    string        `json:"field,omitempty" example:"username"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// HandleValidationError converts a request binding error into an
// ErrorDetail without leaking binding internals to the caller.
func HandleValidationError(err error) *ErrorDetail {
	detail := NewErrorDetail(ErrorCodeValidationFailed, "Invalid request payload")
	if err != nil {
		detail = detail.WithDetails(err.Error())
	}
	return detail
}
