package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Expansion appends Phrase to a query that contains Trigger.
type Expansion struct {
	Trigger string `yaml:"trigger" json:"trigger"`
	Phrase  string `yaml:"phrase" json:"phrase"`
}

// CategoryBoost rewards records in Category when the query contains QueryTerm.
type CategoryBoost struct {
	QueryTerm string `yaml:"query_term" json:"query_term"`
	Category  string `yaml:"category" json:"category"`
}

// Lexicon is the vocabulary the scorer matches against.
// Expansions are applied in order, and later triggers see the phrases
// appended by earlier ones.
type Lexicon struct {
	StopWords      []string        `yaml:"stop_words" json:"stop_words"`
	Expansions     []Expansion     `yaml:"expansions" json:"expansions"`
	ScoringTerms   []string        `yaml:"scoring_terms" json:"scoring_terms"`
	TennisTerms    []string        `yaml:"tennis_terms" json:"tennis_terms"`
	ChallengeTerms []string        `yaml:"challenge_terms" json:"challenge_terms"`
	CategoryBoosts []CategoryBoost `yaml:"category_boosts" json:"category_boosts"`
}

// DefaultLexicon returns the tennis-community vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		StopWords: []string{
			"how", "do", "does", "can", "what", "where", "when", "why", "is", "are",
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
		},
		Expansions: []Expansion{
			{Trigger: "score", Phrase: "scoring point deuce advantage game set match"},
			{Trigger: "scoring", Phrase: "score point deuce advantage game set match tiebreak"},
			{Trigger: "deuce", Phrase: "deuce advantage scoring tennis game"},
			{Trigger: "tiebreak", Phrase: "tiebreak tie-break scoring tennis set"},
			{Trigger: "match", Phrase: "match game set scoring tennis"},
			{Trigger: "challenge", Phrase: "challenge opponent player create accept"},
			{Trigger: "event", Phrase: "event tournament registration location"},
			{Trigger: "payment", Phrase: "payment subscription fee billing"},
			{Trigger: "location", Phrase: "location address map nearby"},
			{Trigger: "profile", Phrase: "profile account settings user"},
		},
		// "scor" matches score, scoring and scored.
		ScoringTerms:   []string{"scor", "deuce", "tiebreak", "advantage", "point", "game", "set"},
		TennisTerms:    []string{"tennis", "racket", "court", "serve", "volley"},
		ChallengeTerms: []string{"challenge", "opponent", "match", "accept", "create"},
		CategoryBoosts: []CategoryBoost{
			{QueryTerm: "pay", Category: "payments"},
			{QueryTerm: "event", Category: "events"},
			{QueryTerm: "challenge", Category: "challenges"},
			{QueryTerm: "account", Category: "account"},
			{QueryTerm: "technical", Category: "technical"},
		},
	}
}

// StopWordSet returns the stop words as a lookup set.
func (l Lexicon) StopWordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(l.StopWords))
	for _, w := range l.StopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// Validate returns a description of every malformed lexicon entry.
func (l Lexicon) Validate() []string {
	var problems []string

	for i, e := range l.Expansions {
		if strings.TrimSpace(e.Trigger) == "" {
			problems = append(problems, fmt.Sprintf("expansions[%d]: trigger cannot be empty", i))
		}
		if strings.ToLower(e.Trigger) != e.Trigger {
			problems = append(problems, fmt.Sprintf("expansions[%d]: trigger '%s' must be lower-case", i, e.Trigger))
		}
	}
	for i, b := range l.CategoryBoosts {
		if strings.TrimSpace(b.QueryTerm) == "" || strings.TrimSpace(b.Category) == "" {
			problems = append(problems, fmt.Sprintf("category_boosts[%d]: query_term and category are required", i))
		}
	}
	problems = append(problems, checkTerms("scoring_terms", l.ScoringTerms)...)
	problems = append(problems, checkTerms("tennis_terms", l.TennisTerms)...)
	problems = append(problems, checkTerms("challenge_terms", l.ChallengeTerms)...)

	return problems
}

func checkTerms(listName string, terms []string) []string {
	var problems []string
	seen := make(map[string]bool)
	for _, t := range terms {
		if strings.TrimSpace(t) == "" {
			problems = append(problems, "Empty term found in "+listName)
			continue
		}
		if seen[t] {
			problems = append(problems, "Duplicate term '"+t+"' found in "+listName)
		}
		seen[t] = true
	}
	return problems
}

// LoadLexicon reads a YAML lexicon file. Lists present in the file replace the
// corresponding default lists; absent lists keep their defaults.
func LoadLexicon(path string) (Lexicon, error) {
	lex := DefaultLexicon()

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return lex, fmt.Errorf("failed to read lexicon %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return lex, fmt.Errorf("failed to parse lexicon %s: %w", path, err)
	}
	if problems := lex.Validate(); len(problems) > 0 {
		return lex, fmt.Errorf("invalid lexicon %s: %s", path, strings.Join(problems, "; "))
	}
	return lex, nil
}
