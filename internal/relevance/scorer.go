// Package relevance ranks FAQ records against a free-text question.
//
// A search normalizes and expands the query, scores every candidate with a
// weighted sum of independent text signals, keeps the candidates above the
// configured threshold and returns the best few in descending score order.
// Scorers hold only immutable configuration and are safe for concurrent use.
package relevance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gcbaptista/faq-assistant/config"
	"github.com/gcbaptista/faq-assistant/model"
)

// Scorer ranks FAQ records for a query.
type Scorer struct {
	settings   config.ScorerSettings
	lexicon    config.Lexicon
	stopWords  map[string]struct{}
	similarity similarityWeights
}

// NewScorer creates a scorer from settings and lexicon, which are copied.
func NewScorer(settings config.ScorerSettings, lexicon config.Lexicon) (*Scorer, error) {
	problems := settings.Validate()
	problems = append(problems, lexicon.Validate()...)
	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid scorer configuration: %s", strings.Join(problems, "; "))
	}

	lexicon = cloneLexicon(lexicon)
	return &Scorer{
		settings:  settings,
		lexicon:   lexicon,
		stopWords: lexicon.StopWordSet(),
		similarity: similarityWeights{
			exact:      settings.SimilarityExactMatch,
			partial:    settings.SimilarityPartialMatch,
			minWordLen: settings.SimilarityMinWordLen,
		},
	}, nil
}

// NewDefaultScorer creates a scorer with the production weights and lexicon.
func NewDefaultScorer() *Scorer {
	s, err := NewScorer(config.DefaultScorerSettings(), config.DefaultLexicon())
	if err != nil {
		panic(err) // defaults are validated by tests
	}
	return s
}

// Settings returns the scorer's weights.
func (s *Scorer) Settings() config.ScorerSettings {
	return s.settings
}

// Search scores candidates against query and returns at most MaxResults of them
// with a score above Threshold, best first. Equal scores keep their input order.
// Blank queries and empty candidate lists yield an empty, non-nil result.
func (s *Scorer) Search(query string, candidates []model.FaqRecord) []model.ScoredCandidate {
	q := s.Prepare(query)
	if q.IsEmpty() || len(candidates) == 0 {
		return []model.ScoredCandidate{}
	}
	return s.Rank(q, candidates)
}

// Rank scores every candidate for a prepared query and finalizes the result set.
func (s *Scorer) Rank(q Query, candidates []model.FaqRecord) []model.ScoredCandidate {
	scored := make([]model.ScoredCandidate, 0, len(candidates))
	for _, rec := range candidates {
		breakdown := s.Score(q, rec)
		total := breakdown.Total()
		if total <= s.settings.Threshold {
			continue
		}
		scored = append(scored, model.ScoredCandidate{
			FaqRecord:      rec,
			RelevanceScore: total,
			Breakdown:      &breakdown,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if len(scored) > s.settings.MaxResults {
		scored = scored[:s.settings.MaxResults]
	}
	return scored
}

func cloneLexicon(l config.Lexicon) config.Lexicon {
	return config.Lexicon{
		StopWords:      append([]string(nil), l.StopWords...),
		Expansions:     append([]config.Expansion(nil), l.Expansions...),
		ScoringTerms:   append([]string(nil), l.ScoringTerms...),
		TennisTerms:    append([]string(nil), l.TennisTerms...),
		ChallengeTerms: append([]string(nil), l.ChallengeTerms...),
		CategoryBoosts: append([]config.CategoryBoost(nil), l.CategoryBoosts...),
	}
}
