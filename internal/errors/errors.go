package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrFAQNotFound is returned when a FAQ record is not found
	ErrFAQNotFound = errors.New("faq not found")

	// ErrFAQAlreadyExists is returned when creating a FAQ whose ID is taken
	ErrFAQAlreadyExists = errors.New("faq already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable is returned when the backing store cannot be reached
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FAQNotFoundError represents a FAQ not found error with context
type FAQNotFoundError struct {
	FAQID string
}

func (e *FAQNotFoundError) Error() string {
	return fmt.Sprintf("faq with ID '%s' not found", e.FAQID)
}

func (e *FAQNotFoundError) Is(target error) bool {
	return target == ErrFAQNotFound
}

// NewFAQNotFoundError creates a new FAQNotFoundError
func NewFAQNotFoundError(faqID string) *FAQNotFoundError {
	return &FAQNotFoundError{FAQID: faqID}
}

// FAQAlreadyExistsError represents a duplicate FAQ ID error with context
type FAQAlreadyExistsError struct {
	FAQID string
}

func (e *FAQAlreadyExistsError) Error() string {
	return fmt.Sprintf("faq with ID '%s' already exists", e.FAQID)
}

func (e *FAQAlreadyExistsError) Is(target error) bool {
	return target == ErrFAQAlreadyExists
}

// NewFAQAlreadyExistsError creates a new FAQAlreadyExistsError
func NewFAQAlreadyExistsError(faqID string) *FAQAlreadyExistsError {
	return &FAQAlreadyExistsError{FAQID: faqID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps a failure of the backing store
type StorageError struct {
	Operation string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Operation, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(operation string, err error) *StorageError {
	return &StorageError{Operation: operation, Err: err}
}
