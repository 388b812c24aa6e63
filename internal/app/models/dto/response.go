package dto

import "time"

// APIResponse is the standard envelope for successful responses
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Message   string       `json:"message,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// SuccessResponse represents a plain confirmation message
type SuccessResponse struct {
	Message string `json:"message"`
}
