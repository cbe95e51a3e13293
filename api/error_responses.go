package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/faq-assistant/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeFAQNotFound      ErrorCode = "FAQ_NOT_FOUND"
	ErrorCodeFAQExists        ErrorCode = "FAQ_ALREADY_EXISTS"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeRequestTooLarge  ErrorCode = "REQUEST_TOO_LARGE"

	// Server Error Codes (5xx)
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeSearchFailed       ErrorCode = "SEARCH_FAILED"
	ErrorCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrorCodeNotConfigured      ErrorCode = "NOT_CONFIGURED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendFAQNotFoundError sends a standardized FAQ not found error
func SendFAQNotFoundError(c *gin.Context, faqID string) {
	SendError(c, http.StatusNotFound, ErrorCodeFAQNotFound,
		"FAQ '"+faqID+"' not found")
}

// SendFAQExistsError sends a standardized FAQ already exists error
func SendFAQExistsError(c *gin.Context, faqID string) {
	SendError(c, http.StatusConflict, ErrorCodeFAQExists,
		"FAQ '"+faqID+"' already exists")
}

// SendInvalidJSONError sends a standardized invalid JSON error, or a 413 when
// the body exceeded the size limit
func SendInvalidJSONError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		SendError(c, http.StatusRequestEntityTooLarge, ErrorCodeRequestTooLarge,
			"Request body exceeds the limit")
		return
	}
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendSearchError sends a standardized search error
func SendSearchError(c *gin.Context, err error) {
	if errors.Is(err, internalErrors.ErrStorageUnavailable) {
		SendError(c, http.StatusServiceUnavailable, ErrorCodeStorageUnavailable,
			"Search failed: "+err.Error())
		return
	}
	SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed,
		"Search failed: "+err.Error())
}

// SendManagerError maps an error from the FAQ manager to a response.
func SendManagerError(c *gin.Context, operation, faqID string, err error) {
	var vErr *internalErrors.ValidationError
	switch {
	case errors.Is(err, internalErrors.ErrFAQNotFound):
		SendFAQNotFoundError(c, faqID)
	case errors.Is(err, internalErrors.ErrFAQAlreadyExists):
		SendFAQExistsError(c, faqID)
	case errors.As(err, &vErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: vErr.Field, Message: vErr.Message, Code: "VALIDATION_ERROR"})
	case errors.Is(err, internalErrors.ErrStorageUnavailable):
		SendError(c, http.StatusServiceUnavailable, ErrorCodeStorageUnavailable,
			"Storage unavailable during "+operation+": "+err.Error())
	default:
		SendInternalError(c, operation, err)
	}
}
