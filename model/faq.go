package model

import (
	"strings"
	"time"
)

// Category names used to group FAQ records.
const (
	CategoryGeneral    = "General"
	CategoryChallenges = "Challenges"
	CategoryEvents     = "Events"
	CategoryPayments   = "Payments"
	CategoryAccount    = "Account"
	CategoryTechnical  = "Technical"
)

// Categories lists every category a FAQ record may belong to, in display order.
var Categories = []string{
	CategoryGeneral,
	CategoryChallenges,
	CategoryEvents,
	CategoryPayments,
	CategoryAccount,
	CategoryTechnical,
}

// IsKnownCategory reports whether name is one of Categories, ignoring case.
func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// CanonicalCategory returns the display spelling of a known category,
// or name unchanged when it is not known.
func CanonicalCategory(name string) string {
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return name
}

// FaqRecord is a stored question/answer pair with its matching metadata.
// Zero-valued string fields are treated as empty text by the scorer.
type FaqRecord struct {
	ID        string    `json:"id" yaml:"id"`
	Category  string    `json:"category" yaml:"category"`
	Question  string    `json:"question" yaml:"question"`
	Answer    string    `json:"answer" yaml:"answer"`
	Keywords  string    `json:"keywords" yaml:"keywords"` // comma-separated
	Priority  int       `json:"priority" yaml:"priority"`
	IsActive  bool      `json:"is_active" yaml:"is_active"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// KeywordList splits Keywords on commas, lower-cases and trims each term,
// and drops empty terms.
func (r FaqRecord) KeywordList() []string {
	if r.Keywords == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(r.Keywords), ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}

// ScoreBreakdown holds the contribution of each relevance signal.
// The contributions sum to ScoredCandidate.RelevanceScore.
type ScoreBreakdown struct {
	Keyword            float64 `json:"keyword"`
	QuestionSimilarity float64 `json:"question_similarity"`
	ScoringTerms       float64 `json:"scoring_terms"`
	TennisTerms        float64 `json:"tennis_terms"`
	ChallengeTerms     float64 `json:"challenge_terms"`
	Category           float64 `json:"category"`
	AnswerSimilarity   float64 `json:"answer_similarity"`
	Priority           float64 `json:"priority"`
	ExactPhrase        float64 `json:"exact_phrase"`
}

// Total returns the sum of all contributions.
func (b ScoreBreakdown) Total() float64 {
	return b.Keyword + b.QuestionSimilarity + b.ScoringTerms + b.TennisTerms +
		b.ChallengeTerms + b.Category + b.AnswerSimilarity + b.Priority + b.ExactPhrase
}

// ScoredCandidate is a copy of a FaqRecord annotated with its relevance for one query.
type ScoredCandidate struct {
	FaqRecord
	RelevanceScore float64         `json:"relevance_score"`
	Breakdown      *ScoreBreakdown `json:"breakdown,omitempty"`
}

// ChatReply is the assistant's answer to one chat message.
// Primary is nil and Fallback is true when no FAQ matched.
type ChatReply struct {
	ID        string            `json:"id"`
	QueryID   string            `json:"query_id"`
	Content   string            `json:"content"`
	Primary   *ScoredCandidate  `json:"primary,omitempty"`
	Related   []ScoredCandidate `json:"related"`
	Fallback  bool              `json:"fallback"`
	Timestamp time.Time         `json:"timestamp"`
}
