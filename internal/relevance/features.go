package relevance

import (
	"strings"

	"github.com/gcbaptista/faq-assistant/internal/tokenizer"
	"github.com/gcbaptista/faq-assistant/model"
)

// candidateText is the lower-cased text of one record, computed once per record.
type candidateText struct {
	question string
	answer   string
	category string
	keywords []string
}

func newCandidateText(rec model.FaqRecord) candidateText {
	return candidateText{
		question: strings.ToLower(rec.Question),
		answer:   strings.ToLower(rec.Answer),
		category: strings.ToLower(rec.Category),
		keywords: rec.KeywordList(),
	}
}

// keywordOverlap returns the average per-keyword hit score of keywords against the
// expanded query, before the keyword weight is applied.
func (s *Scorer) keywordOverlap(q Query, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	var total float64
	for _, kw := range keywords {
		length := tokenizer.Length(kw)
		switch {
		case length >= s.settings.KeywordMinExactLength && containsTerm(q.Expanded, kw):
			total += s.settings.KeywordExactHit
		case length >= s.settings.KeywordMinPartialLen && tokenizer.ContainsAny(q.expandedTokens, kw):
			total += s.settings.KeywordPartialHit
		}
	}
	return total / float64(len(keywords))
}

// scoringTermBoost rewards tennis scoring vocabulary shared by the query and the
// question, and separately by the query and the answer.
func (s *Scorer) scoringTermBoost(q Query, c candidateText) float64 {
	var boost float64
	for _, term := range s.lexicon.ScoringTerms {
		if !containsTerm(q.Lowered, term) {
			continue
		}
		if containsTerm(c.question, term) {
			boost += s.settings.ScoringTermQuestion
		}
		if containsTerm(c.answer, term) {
			boost += s.settings.ScoringTermAnswer
		}
	}
	return boost
}

// sharedTermBoost adds weight for every term found in the query and in either
// the question or the answer.
func sharedTermBoost(q Query, c candidateText, terms []string, weight float64) float64 {
	var boost float64
	for _, term := range terms {
		if containsTerm(q.Lowered, term) && (containsTerm(c.question, term) || containsTerm(c.answer, term)) {
			boost += weight
		}
	}
	return boost
}

func (s *Scorer) categoryBoost(q Query, c candidateText) float64 {
	var boost float64
	for _, cb := range s.lexicon.CategoryBoosts {
		if containsTerm(q.Lowered, cb.QueryTerm) && c.category == strings.ToLower(cb.Category) {
			boost += s.settings.CategoryBoost
		}
	}
	return boost
}

// exactPhraseBonus rewards a question that contains the normalized query, or is
// contained by it. An empty normalized query is contained by every non-empty question.
func (s *Scorer) exactPhraseBonus(q Query, c candidateText) float64 {
	if c.question == "" {
		return 0
	}
	if q.Normalized == "" || mutuallyContains(c.question, q.Normalized) {
		return s.settings.ExactPhraseBonus
	}
	return 0
}

// Score computes every signal for one record. The record is not modified.
func (s *Scorer) Score(q Query, rec model.FaqRecord) model.ScoreBreakdown {
	c := newCandidateText(rec)

	return model.ScoreBreakdown{
		Keyword:            s.keywordOverlap(q, c.keywords) * s.settings.KeywordWeight,
		QuestionSimilarity: similarity(q.Expanded, c.question, s.similarity) * s.settings.QuestionSimilarity,
		ScoringTerms:       s.scoringTermBoost(q, c),
		TennisTerms:        sharedTermBoost(q, c, s.lexicon.TennisTerms, s.settings.TennisTermBoost),
		ChallengeTerms:     sharedTermBoost(q, c, s.lexicon.ChallengeTerms, s.settings.ChallengeTermBoost),
		Category:           s.categoryBoost(q, c),
		AnswerSimilarity:   similarity(q.Expanded, c.answer, s.similarity) * s.settings.AnswerSimilarity,
		Priority:           float64(rec.Priority) * s.settings.PriorityWeight,
		ExactPhrase:        s.exactPhraseBonus(q, c),
	}
}
