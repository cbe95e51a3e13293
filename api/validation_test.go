package api

import (
	"strings"
	"testing"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Errorf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}

	if result.Errors[0].Message != "error message" {
		t.Errorf("Expected message 'error message', got '%s'", result.Errors[0].Message)
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field", "message")

	if !result.HasErrors() {
		t.Error("Expected HasErrors to be true after adding error")
	}
}

func TestValidateFAQID(t *testing.T) {
	tests := []struct {
		name      string
		faqID     string
		wantValid bool
		wantError string
	}{
		{
			name:      "valid id",
			faqID:     "faq-deuce",
			wantValid: true,
		},
		{
			name:      "empty id",
			faqID:     "",
			wantValid: false,
			wantError: "FAQ ID is required",
		},
		{
			name:      "leading whitespace",
			faqID:     " faq",
			wantValid: false,
			wantError: "FAQ ID cannot have leading or trailing whitespace",
		},
		{
			name:      "too long",
			faqID:     strings.Repeat("x", maxFAQIDLength+1),
			wantValid: false,
			wantError: "FAQ ID cannot be longer than 128 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateFAQID(tt.faqID)

			if result.Valid != tt.wantValid {
				t.Errorf("ValidateFAQID() Valid = %v, want %v", result.Valid, tt.wantValid)
			}

			if !tt.wantValid && (len(result.Errors) == 0 || result.Errors[0].Message != tt.wantError) {
				t.Errorf("ValidateFAQID() errors = %v, want %q", result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidateFAQRequest(t *testing.T) {
	negative := -3
	zero := 0

	tests := []struct {
		name       string
		req        *FAQRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req:  &FAQRequest{Question: "What is a let?", Answer: "A replayed serve.", Category: "general", Priority: &zero},
		},
		{
			name:       "nil request",
			req:        nil,
			wantFields: []string{"faq"},
		},
		{
			name:       "blank question and answer",
			req:        &FAQRequest{Question: "  ", Answer: "\t"},
			wantFields: []string{"question", "answer"},
		},
		{
			name:       "unknown category",
			req:        &FAQRequest{Question: "q", Answer: "a", Category: "Weather"},
			wantFields: []string{"category"},
		},
		{
			name:       "negative priority",
			req:        &FAQRequest{Question: "q", Answer: "a", Priority: &negative},
			wantFields: []string{"priority"},
		},
		{
			name:       "bad id",
			req:        &FAQRequest{ID: " padded ", Question: "q", Answer: "a"},
			wantFields: []string{"id"},
		},
		{
			name:       "oversized fields",
			req:        &FAQRequest{Question: strings.Repeat("q", maxQuestionLength+1), Answer: strings.Repeat("a", maxAnswerLength+1), Keywords: strings.Repeat("k", maxKeywordsLength+1)},
			wantFields: []string{"question", "answer", "keywords"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateFAQRequest(tt.req)

			if len(result.Errors) != len(tt.wantFields) {
				t.Fatalf("ValidateFAQRequest() errors = %v, want fields %v", result.Errors, tt.wantFields)
			}
			for i, field := range tt.wantFields {
				if result.Errors[i].Field != field {
					t.Errorf("error %d field = %q, want %q", i, result.Errors[i].Field, field)
				}
			}
			if result.Valid != (len(tt.wantFields) == 0) {
				t.Errorf("ValidateFAQRequest() Valid = %v", result.Valid)
			}
		})
	}
}

func TestValidateChatRequest(t *testing.T) {
	if result := ValidateChatRequest(&ChatRequest{Message: "What is deuce?"}); result.HasErrors() {
		t.Errorf("Expected valid message, got %v", result.Errors)
	}
	if result := ValidateChatRequest(&ChatRequest{Message: "   "}); !result.HasErrors() {
		t.Error("Expected blank message to be rejected")
	}
	if result := ValidateChatRequest(&ChatRequest{Message: strings.Repeat("a", maxQueryLength+1)}); !result.HasErrors() {
		t.Error("Expected long message to be rejected")
	}
}

func TestValidateSearchRequest(t *testing.T) {
	if result := ValidateSearchRequest(&SearchRequest{Query: ""}); result.HasErrors() {
		t.Errorf("Expected empty query to be accepted, got %v", result.Errors)
	}
	// Length is counted in characters, not bytes.
	if result := ValidateSearchRequest(&SearchRequest{Query: strings.Repeat("é", maxQueryLength)}); result.HasErrors() {
		t.Errorf("Expected %d multi-byte characters to be accepted", maxQueryLength)
	}
	if result := ValidateSearchRequest(&SearchRequest{Query: strings.Repeat("a", maxQueryLength+1)}); !result.HasErrors() {
		t.Error("Expected long query to be rejected")
	}
}

func TestValidateListRequest(t *testing.T) {
	if result := ValidateListRequest(&FAQListRequest{Category: "PAYMENTS"}); result.HasErrors() {
		t.Errorf("Expected category match to ignore case, got %v", result.Errors)
	}
	if result := ValidateListRequest(&FAQListRequest{Category: "Weather"}); !result.HasErrors() {
		t.Error("Expected unknown category to be rejected")
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
		wantValid    bool
	}{
		{
			name:         "valid pagination",
			page:         2,
			pageSize:     20,
			wantPage:     2,
			wantPageSize: 20,
			wantValid:    true,
		},
		{
			name:         "zero page defaults to 1",
			page:         0,
			pageSize:     20,
			wantPage:     1,
			wantPageSize: 20,
			wantValid:    true,
		},
		{
			name:         "zero page size defaults to 10",
			page:         1,
			pageSize:     0,
			wantPage:     1,
			wantPageSize: 10,
			wantValid:    true,
		},
		{
			name:         "page size over 100 capped to 100",
			page:         1,
			pageSize:     150,
			wantPage:     1,
			wantPageSize: 100,
			wantValid:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPage, gotPageSize, result := ValidatePagination(tt.page, tt.pageSize)

			if gotPage != tt.wantPage {
				t.Errorf("ValidatePagination() page = %v, want %v", gotPage, tt.wantPage)
			}

			if gotPageSize != tt.wantPageSize {
				t.Errorf("ValidatePagination() pageSize = %v, want %v", gotPageSize, tt.wantPageSize)
			}

			if result.Valid != tt.wantValid {
				t.Errorf("ValidatePagination() Valid = %v, want %v", result.Valid, tt.wantValid)
			}
		})
	}
}
