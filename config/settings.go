// Package config provides configuration structures for the FAQ assistant.
// It defines scorer weights, the matching lexicon, server and storage options.
package config

import "fmt"

// ScorerSettings contains every tunable weight and limit used by the relevance scorer.
// The defaults were chosen empirically; changing any of them changes ranking behavior.
//
// Keyword sub-scores (KeywordExactHit, KeywordPartialHit) are averaged over the
// record's keywords before KeywordWeight is applied. Normalized query tokens shorter
// than MinQueryTokenLength are dropped. Candidates must score strictly above Threshold.
type ScorerSettings struct {
	KeywordWeight          float64 `yaml:"keyword_weight" json:"keyword_weight"`
	KeywordExactHit        float64 `yaml:"keyword_exact_hit" json:"keyword_exact_hit"`
	KeywordPartialHit      float64 `yaml:"keyword_partial_hit" json:"keyword_partial_hit"`
	KeywordMinExactLength  int     `yaml:"keyword_min_exact_length" json:"keyword_min_exact_length"`
	KeywordMinPartialLen   int     `yaml:"keyword_min_partial_length" json:"keyword_min_partial_length"`
	QuestionSimilarity     float64 `yaml:"question_similarity_weight" json:"question_similarity_weight"`
	AnswerSimilarity       float64 `yaml:"answer_similarity_weight" json:"answer_similarity_weight"`
	ScoringTermQuestion    float64 `yaml:"scoring_term_question_boost" json:"scoring_term_question_boost"`
	ScoringTermAnswer      float64 `yaml:"scoring_term_answer_boost" json:"scoring_term_answer_boost"`
	TennisTermBoost        float64 `yaml:"tennis_term_boost" json:"tennis_term_boost"`
	ChallengeTermBoost     float64 `yaml:"challenge_term_boost" json:"challenge_term_boost"`
	CategoryBoost          float64 `yaml:"category_boost" json:"category_boost"`
	PriorityWeight         float64 `yaml:"priority_weight" json:"priority_weight"`
	ExactPhraseBonus       float64 `yaml:"exact_phrase_bonus" json:"exact_phrase_bonus"`
	MinQueryTokenLength    int     `yaml:"min_query_token_length" json:"min_query_token_length"`
	Threshold              float64 `yaml:"threshold" json:"threshold"`
	MaxResults             int     `yaml:"max_results" json:"max_results"`
	SimilarityExactMatch   float64 `yaml:"similarity_exact_match" json:"similarity_exact_match"`
	SimilarityPartialMatch float64 `yaml:"similarity_partial_match" json:"similarity_partial_match"`
	SimilarityMinWordLen   int     `yaml:"similarity_min_word_length" json:"similarity_min_word_length"`
}

// DefaultScorerSettings returns the production weights.
func DefaultScorerSettings() ScorerSettings {
	return ScorerSettings{
		KeywordWeight:          15,
		KeywordExactHit:        3,
		KeywordPartialHit:      1,
		KeywordMinExactLength:  3,
		KeywordMinPartialLen:   4,
		QuestionSimilarity:     12,
		AnswerSimilarity:       8,
		ScoringTermQuestion:    20,
		ScoringTermAnswer:      15,
		TennisTermBoost:        10,
		ChallengeTermBoost:     12,
		CategoryBoost:          10,
		PriorityWeight:         1,
		ExactPhraseBonus:       8,
		MinQueryTokenLength:    3,
		Threshold:              0.5,
		MaxResults:             3,
		SimilarityExactMatch:   2,
		SimilarityPartialMatch: 1,
		SimilarityMinWordLen:   3,
	}
}

// Validate returns a description of every invalid setting.
func (s *ScorerSettings) Validate() []string {
	var problems []string

	if s.MaxResults <= 0 {
		problems = append(problems, fmt.Sprintf("max_results must be positive, got %d", s.MaxResults))
	}
	if s.Threshold < 0 {
		problems = append(problems, fmt.Sprintf("threshold cannot be negative, got %g", s.Threshold))
	}

	lengths := []struct {
		name  string
		value int
	}{
		{"keyword_min_exact_length", s.KeywordMinExactLength},
		{"keyword_min_partial_length", s.KeywordMinPartialLen},
		{"min_query_token_length", s.MinQueryTokenLength},
		{"similarity_min_word_length", s.SimilarityMinWordLen},
	}
	for _, l := range lengths {
		if l.value < 0 {
			problems = append(problems, fmt.Sprintf("%s cannot be negative, got %d", l.name, l.value))
		}
	}

	return problems
}
