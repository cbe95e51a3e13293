// Package api provides the HTTP surface of the FAQ assistant.
package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/faq-assistant/model"
)

const (
	maxQueryLength    = 500
	maxQuestionLength = 500
	maxAnswerLength   = 10000
	maxKeywordsLength = 1000
	maxFAQIDLength    = 128
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateFAQID validates a FAQ ID path parameter or body field
func ValidateFAQID(faqID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if faqID == "" {
		result.AddError("faqId", "FAQ ID is required")
		return result
	}

	if strings.TrimSpace(faqID) != faqID {
		result.AddError("faqId", "FAQ ID cannot have leading or trailing whitespace")
		return result
	}

	if len(faqID) > maxFAQIDLength {
		result.AddError("faqId", fmt.Sprintf("FAQ ID cannot be longer than %d characters", maxFAQIDLength))
	}

	return result
}

// ValidateFAQRequest validates a FAQ body for creation or replacement
func ValidateFAQRequest(req *FAQRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("faq", "FAQ body is required")
		return result
	}

	if req.ID != "" {
		for _, e := range ValidateFAQID(req.ID).Errors {
			result.AddError("id", e.Message)
		}
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		result.AddError("question", "Question is required")
	} else if utf8.RuneCountInString(question) > maxQuestionLength {
		result.AddError("question", fmt.Sprintf("Question cannot be longer than %d characters", maxQuestionLength))
	}

	answer := strings.TrimSpace(req.Answer)
	if answer == "" {
		result.AddError("answer", "Answer is required")
	} else if utf8.RuneCountInString(answer) > maxAnswerLength {
		result.AddError("answer", fmt.Sprintf("Answer cannot be longer than %d characters", maxAnswerLength))
	}

	if utf8.RuneCountInString(req.Keywords) > maxKeywordsLength {
		result.AddError("keywords", fmt.Sprintf("Keywords cannot be longer than %d characters", maxKeywordsLength))
	}

	if req.Category != "" && !model.IsKnownCategory(strings.TrimSpace(req.Category)) {
		result.AddError("category", "Category must be one of: "+strings.Join(model.Categories, ", "))
	}

	if req.Priority != nil && *req.Priority < 0 {
		result.AddError("priority", "Priority cannot be negative")
	}

	return result
}

// ValidateSearchRequest validates a relevance search request
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if utf8.RuneCountInString(req.Query) > maxQueryLength {
		result.AddError("query", fmt.Sprintf("Query cannot be longer than %d characters", maxQueryLength))
	}

	return result
}

// ValidateChatRequest validates a chat message
func ValidateChatRequest(req *ChatRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		result.AddError("message", "Message is required")
	} else if utf8.RuneCountInString(message) > maxQueryLength {
		result.AddError("message", fmt.Sprintf("Message cannot be longer than %d characters", maxQueryLength))
	}

	return result
}

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	// Set defaults
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	// Validate limits
	if pageSize > 100 {
		pageSize = 100 // Maximum page size
	}

	return page, pageSize, result
}

// ValidateListRequest validates FAQ listing filters
func ValidateListRequest(req *FAQListRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Category != "" && !model.IsKnownCategory(req.Category) {
		result.AddError("category", "Category must be one of: "+strings.Join(model.Categories, ", "))
	}

	if utf8.RuneCountInString(req.Query) > maxQueryLength {
		result.AddError("q", fmt.Sprintf("Text filter cannot be longer than %d characters", maxQueryLength))
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
