package relevance

import (
	"strings"

	"github.com/gcbaptista/faq-assistant/config"
	"github.com/gcbaptista/faq-assistant/internal/tokenizer"
)

// Query holds the three forms of a user query that the feature signals read.
type Query struct {
	// Lowered is the raw query, lower-cased and otherwise untouched.
	Lowered string
	// Normalized is the stop-word-filtered form.
	Normalized string
	// Expanded is Lowered with domain synonym phrases appended.
	Expanded string

	expandedTokens []string
}

// IsEmpty reports whether the query has no non-whitespace content.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Lowered) == ""
}

// Normalize lower-cases raw, splits it on whitespace and joins the tokens that are
// at least minLength characters long and not stop words.
func Normalize(raw string, minLength int, stopWords map[string]struct{}) string {
	return strings.Join(tokenizer.FilterTokens(tokenizer.Tokenize(raw), minLength, stopWords), " ")
}

// Expand appends the phrase of every expansion whose trigger occurs in query.
// Triggers are checked in order against the growing string, so an earlier phrase
// can fire a later trigger.
func Expand(query string, expansions []config.Expansion) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(query))

	for _, e := range expansions {
		if containsTerm(b.String(), e.Trigger) {
			b.WriteByte(' ')
			b.WriteString(e.Phrase)
		}
	}
	return b.String()
}

// Prepare builds every form of raw used by the scorer.
func (s *Scorer) Prepare(raw string) Query {
	lowered := strings.ToLower(raw)
	expanded := Expand(lowered, s.lexicon.Expansions)
	return Query{
		Lowered:        lowered,
		Normalized:     Normalize(raw, s.settings.MinQueryTokenLength, s.stopWords),
		Expanded:       expanded,
		expandedTokens: tokenizer.Tokenize(expanded),
	}
}
