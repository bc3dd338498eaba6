package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/learning-analytics-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Subject specific errors
	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")

	// Progress specific errors
	ErrProgressNotFound = errors.New("course progress not found")

	// Rollup specific errors
	ErrNoGroupMembers = errors.New("no students found for the requested groups")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared error types from the errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type DataIntegrityError = apperrors.DataIntegrityError

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// NewDataIntegrityError creates a new data integrity error using the shared type
func NewDataIntegrityError(invariant, message string, value interface{}) *DataIntegrityError {
	return apperrors.NewDataIntegrityError(invariant, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrProgressNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var ves ValidationErrors
	return errors.As(err, &ves)
}

// IsDataIntegrity checks if error represents an invariant violation on
// fetched rows
func IsDataIntegrity(err error) bool {
	return apperrors.IsDataIntegrity(err)
}
