package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRouting    ErrorType = "routing"
	ErrorTypeCredential ErrorType = "credential"
	ErrorTypeUpstream   ErrorType = "upstream"
	ErrorTypeInternal   ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Domain error variables

var (
	// Validation errors
	ErrInvalidInput = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrEmptyMessage = NewDomainError(ErrorTypeValidation, "message cannot be empty", nil)

	// Routing errors
	ErrModelNotConfigured = NewDomainError(ErrorTypeRouting, "Selected model not configured", nil)

	// Credential errors
	ErrCredentialMissing = NewDomainError(ErrorTypeCredential, "credential for selected model is not configured", nil)

	// Upstream errors
	ErrUpstreamUnavailable = NewDomainError(ErrorTypeUpstream, "upstream provider unavailable", nil)

	// Internal errors
	ErrInternal = NewDomainError(ErrorTypeInternal, "internal server error", nil)
)

// Error type checking helper functions

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsRoutingError checks if an error is an unconfigured-model error
func IsRoutingError(err error) bool {
	return hasType(err, ErrorTypeRouting)
}

// IsCredentialError checks if an error is a missing-credential error
func IsCredentialError(err error) bool {
	return hasType(err, ErrorTypeCredential)
}

// IsUpstreamError checks if an error is an upstream provider error
func IsUpstreamError(err error) bool {
	return hasType(err, ErrorTypeUpstream)
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return hasType(err, ErrorTypeInternal)
}

// GetErrorType returns the error type, or ErrorTypeInternal for unknown errors
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal
}

func hasType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}
