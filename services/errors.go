package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeUnauthenticated ErrorType = "unauthenticated"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeSigning         ErrorType = "signing"
	ErrorTypeStore           ErrorType = "store"
	ErrorTypeInternal        ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
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

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Authentication Errors
	ErrUnauthenticated = NewDomainError(ErrorTypeUnauthenticated, "Invalid or missing credentials", nil)

	// Permission Errors
	ErrForbidden = NewDomainError(ErrorTypeForbidden, "access forbidden", nil)

	// Not Found Errors
	ErrProductNotFound  = NewDomainError(ErrorTypeNotFound, "product not found", nil)
	ErrCartItemNotFound = NewDomainError(ErrorTypeNotFound, "cart item not found", nil)

	// Validation Errors
	ErrInvalidID         = NewDomainError(ErrorTypeValidation, "invalid document id", nil)
	ErrNoUpdatableFields = NewDomainError(ErrorTypeValidation, "no updatable fields supplied", nil)
	ErrEmptyDocument     = NewDomainError(ErrorTypeValidation, "document body cannot be empty", nil)
	ErrIdentityRequired  = NewDomainError(ErrorTypeValidation, "identity is required", nil)

	// Signing Errors
	ErrSigning = NewDomainError(ErrorTypeSigning, "failed to sign credential", nil)

	// Store Errors
	ErrStore = NewDomainError(ErrorTypeStore, "resource store error", nil)
)

// Error type checking helper functions

// IsUnauthenticatedError checks if an error is an authentication error
func IsUnauthenticatedError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnauthenticated
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return GetErrorType(err) == ErrorTypeForbidden
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return GetErrorType(err) == ErrorTypeNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return GetErrorType(err) == ErrorTypeValidation
}

// IsSigningError checks if an error is a credential signing error
func IsSigningError(err error) bool {
	return GetErrorType(err) == ErrorTypeSigning
}

// IsStoreError checks if an error is a resource store error
func IsStoreError(err error) bool {
	return GetErrorType(err) == ErrorTypeStore
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return GetErrorType(err) == ErrorTypeInternal
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapStore wraps a resource store failure
func WrapStore(message string, err error) error {
	return NewDomainError(ErrorTypeStore, message, err)
}

// WrapSigning wraps a credential signing failure
func WrapSigning(err error) error {
	return NewDomainError(ErrorTypeSigning, ErrSigning.Message, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
