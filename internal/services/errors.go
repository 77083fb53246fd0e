// Package services provides the business logic layer between the HTTP handlers
// and the resample engine.
package services

import "github.com/gofiber/fiber/v2"

// Service error codes
const (
	CodeInvalidAggregator = "INVALID_AGGREGATOR"
	CodeNonIntegerValue   = "NON_INTEGER_VALUE"
	CodeTooManyPoints     = "TOO_MANY_POINTS"
	CodeCanceled          = "CANCELED"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Status maps the error code to an HTTP status
func (e *ServiceError) Status() int {
	switch e.Code {
	case CodeInvalidAggregator, CodeNonIntegerValue:
		return fiber.StatusBadRequest
	case CodeTooManyPoints, CodeBatchTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case CodeCanceled:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
