// Package tokenizer splits free text into the word lists used for matching.
package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Tokenize lower-cases text and splits it on runs of whitespace.
// Punctuation stays attached to its word, so "work?" is one token.
func Tokenize(text string) []string {
	tokens := strings.Fields(strings.ToLower(text))
	if tokens == nil {
		return make([]string, 0) // Return empty slice instead of nil
	}
	return tokens
}

// Length returns the number of characters in token.
func Length(token string) int {
	return utf8.RuneCountInString(token)
}

// FilterTokens keeps tokens that are at least minLength characters long and
// not in stopWords, preserving their relative order.
func FilterTokens(tokens []string, minLength int, stopWords map[string]struct{}) []string {
	filtered := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if Length(token) < minLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		filtered = append(filtered, token)
	}
	return filtered
}

// ContainsAny reports whether any token contains term, or term contains the token.
// Empty tokens never match.
func ContainsAny(tokens []string, term string) bool {
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if strings.Contains(token, term) || strings.Contains(term, token) {
			return true
		}
	}
	return false
}
