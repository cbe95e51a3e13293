package relevance

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/faq-assistant/config"
	testutil "github.com/gcbaptista/faq-assistant/internal/testing"
	"github.com/gcbaptista/faq-assistant/model"
)

const delta = 1e-9

func TestNormalize(t *testing.T) {
	stop := config.DefaultLexicon().StopWordSet()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"question form", "How does tennis scoring work?", "tennis scoring work?"},
		{"case and padding", "  How DO I pay  ", "pay"},
		{"only stop words", "what is the", ""},
		{"keeps order", "court for serve practice", "court serve practice"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input, 3, stop))
		})
	}
}

func TestExpand(t *testing.T) {
	expansions := config.DefaultLexicon().Expansions

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single trigger", "deuce", "deuce deuce advantage scoring tennis game"},
		{"no trigger", "how do i pay", "how do i pay"},
		{"lower-cases", "My Profile", "my profile profile account settings user"},
		{"substring trigger", "payments help", "payments help payment subscription fee billing"},
		{
			name:  "earlier phrases fire later triggers",
			input: "score",
			expected: "score scoring point deuce advantage game set match" +
				" score point deuce advantage game set match tiebreak" +
				" deuce advantage scoring tennis game" +
				" tiebreak tie-break scoring tennis set" +
				" match game set scoring tennis",
		},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Expand(tt.input, expansions))
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"b inside a", "tennis score", "score", 1},
		{"a inside b", "score", "tennis score", 1},
		{"containment ignores case", "Deuce Rules", "deuce", 1},
		{"identical", "How does tennis scoring work?", "How does tennis scoring work?", 1},
		{"exact word matches", "serve volley", "volley practice serve", 4.0 / 3.0},
		{"partial word match", "refunds policy", "refund rules", 0.5},
		{"short words only match exactly", "go on", "going now", 0},
		{"short exact words still count", "at it", "at be", 1},
		{"blank side", "", "anything", 0},
		{"whitespace side", "   ", "anything", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), delta)
		})
	}
}

func TestScore_Breakdown(t *testing.T) {
	s := NewDefaultScorer()
	rec := testutil.NewFAQ("d", "What is deuce?").
		Answer("Both players at forty.").
		Keywords("deuce, 40-40, tied").
		Priority(2).Build()

	b := s.Score(s.Prepare("deuce"), rec)

	assert.InDelta(t, 15, b.Keyword, delta)
	assert.InDelta(t, 4, b.QuestionSimilarity, delta)
	assert.InDelta(t, 20, b.ScoringTerms, delta)
	assert.Zero(t, b.TennisTerms)
	assert.Zero(t, b.ChallengeTerms)
	assert.Zero(t, b.Category)
	assert.Zero(t, b.AnswerSimilarity)
	assert.InDelta(t, 2, b.Priority, delta)
	assert.InDelta(t, 8, b.ExactPhrase, delta)
	assert.InDelta(t, 49, b.Total(), delta)
}

func TestKeywordOverlap(t *testing.T) {
	s := NewDefaultScorer()

	tests := []struct {
		name     string
		query    string
		keywords string
		expected float64
	}{
		{"exact hit", "deuce", "deuce", 3},
		{"partial hit by containing token", "tiebreak", "tiebreaker, refunds", 0.5},
		{"short keyword cannot hit", "40 all", "40", 0},
		{"three letter exact hit", "set", "set", 3},
		{"empty terms ignored", "deuce", " , Deuce ,,", 3},
		{"no keywords", "deuce", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := model.FaqRecord{Keywords: tt.keywords}
			got := s.keywordOverlap(s.Prepare(tt.query), rec.KeywordList())
			assert.InDelta(t, tt.expected, got, delta)
		})
	}
}

func TestScoringTermBoost_QuestionAndAnswerAreIndependent(t *testing.T) {
	s := NewDefaultScorer()
	rec := testutil.NewFAQ("sp", "What is a set point?").
		Answer("A set point can win the set.").Build()

	b := s.Score(s.Prepare("how many points in a set"), rec)
	// point and set each match in question (20) and answer (15)
	assert.InDelta(t, 70, b.ScoringTerms, delta)
}

func TestSharedTermBoosts(t *testing.T) {
	s := NewDefaultScorer()

	t.Run("tennis terms in question or answer", func(t *testing.T) {
		rec := testutil.NewFAQ("r", "Choosing a racket").Answer("Any court works.").Build()
		b := s.Score(s.Prepare("which racket for clay court"), rec)
		assert.InDelta(t, 20, b.TennisTerms, delta)
	})

	t.Run("challenge terms and category", func(t *testing.T) {
		rec := testutil.NewFAQ("c", "How do I accept a challenge?").
			Category(model.CategoryChallenges).Build()
		b := s.Score(s.Prepare("accept a challenge"), rec)
		assert.InDelta(t, 24, b.ChallengeTerms, delta)
		assert.InDelta(t, 10, b.Category, delta)
	})
}

func TestCategoryBoost(t *testing.T) {
	s := NewDefaultScorer()
	base := testutil.NewFAQ("p", "Billing options").Answer("Cards and wallets.").Keywords("billing")

	payments := base.Category("Payments").Build()
	general := base.Category("General").Build()

	q := s.Prepare("how do I pay")
	bp := s.Score(q, payments)
	bg := s.Score(q, general)

	assert.InDelta(t, 10, bp.Category, delta)
	assert.Zero(t, bg.Category)
	assert.InDelta(t, 10, bp.Total()-bg.Total(), delta)

	lower := base.Category("payments").Build()
	assert.InDelta(t, 10, s.Score(q, lower).Category, delta)
}

func TestExactPhraseBonus(t *testing.T) {
	s := NewDefaultScorer()

	t.Run("question contains normalized query", func(t *testing.T) {
		rec := testutil.NewFAQ("x", "Where is the nearest court?").Build()
		assert.InDelta(t, 8, s.Score(s.Prepare("nearest court?"), rec).ExactPhrase, delta)
	})

	t.Run("normalized query contains question", func(t *testing.T) {
		rec := testutil.NewFAQ("x", "court surfaces").Build()
		assert.InDelta(t, 8, s.Score(s.Prepare("please explain court surfaces in detail"), rec).ExactPhrase, delta)
	})

	t.Run("empty normalized query matches every question", func(t *testing.T) {
		rec := testutil.NewFAQ("x", "How do I get started?").Build()
		q := s.Prepare("how do I")
		require.Empty(t, q.Normalized)
		assert.InDelta(t, 8, s.Score(q, rec).ExactPhrase, delta)
	})

	t.Run("empty normalized query skips a blank question", func(t *testing.T) {
		assert.Zero(t, s.Score(s.Prepare("is it ok"), model.FaqRecord{}).ExactPhrase)
	})
}

func TestSearch_StopWordOnlyQuery(t *testing.T) {
	s := NewDefaultScorer()
	rec := testutil.NewFAQ("faq-unrelated", "Unrelated").Answer("Nope").Build()

	hits := s.Search("is it ok", []model.FaqRecord{rec})
	require.Len(t, hits, 1)
	assert.Equal(t, "faq-unrelated", hits[0].ID)
	assert.InDelta(t, 8, hits[0].RelevanceScore, delta)
}

func TestScore_EmptyFieldsContributeNothing(t *testing.T) {
	s := NewDefaultScorer()
	b := s.Score(s.Prepare("how does tennis scoring work"), model.FaqRecord{})
	assert.Zero(t, b.Total())
}

func TestSearch_EmptyInputs(t *testing.T) {
	s := NewDefaultScorer()

	hits := s.Search("", nil)
	require.NotNil(t, hits)
	assert.Empty(t, hits)

	assert.Empty(t, s.Search("anything", []model.FaqRecord{}))
	assert.Empty(t, s.Search("   ", testutil.SampleFAQs()))
}

func TestSearch_ExactKeywordHit(t *testing.T) {
	s := NewDefaultScorer()
	scoring := testutil.NewFAQ("scoring", "How does tennis scoring work?").
		Keywords("scoring, score, points, games").
		Category("General").Priority(10).Build()
	payment := testutil.NewFAQ("payment", "What payment methods do you accept?").
		Keywords("payment methods").Category("Payments").Build()

	hits := s.Search("How does tennis scoring work?", []model.FaqRecord{payment, scoring})

	require.NotEmpty(t, hits)
	assert.Equal(t, "scoring", hits[0].ID)
	assert.Greater(t, hits[0].RelevanceScore, 0.5)
	if len(hits) > 1 {
		assert.Greater(t, hits[0].RelevanceScore, hits[1].RelevanceScore)
	}
}

func TestSearch_PriorityContributesDifference(t *testing.T) {
	s := NewDefaultScorer()
	low := testutil.NewFAQ("low", "How do refunds work?").Keywords("refund").Priority(1).Build()
	high := testutil.NewFAQ("high", "How do refunds work?").Keywords("refund").Priority(10).Build()

	hits := s.Search("refund request", []model.FaqRecord{low, high})

	require.Len(t, hits, 2)
	assert.Equal(t, []string{"high", "low"}, testutil.IDs(hits))
	assert.InDelta(t, 9, hits[0].RelevanceScore-hits[1].RelevanceScore, delta)
}

func TestSearch_NoMatch(t *testing.T) {
	s := NewDefaultScorer()
	hits := s.Search("xyzabc nonsense query", testutil.ZeroPriority(testutil.SampleFAQs()))
	assert.Empty(t, hits)
}

func TestSearch_Invariants(t *testing.T) {
	s := NewDefaultScorer()
	corpus := testutil.SampleFAQs()

	queries := []string{
		"How does tennis scoring work?",
		"what is deuce",
		"how do I create a challenge",
		"events near me",
		"how do I pay",
		"delete my account",
		"xyzabc nonsense query",
		"tennis",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			hits := s.Search(q, corpus)
			testutil.AssertRanked(t, hits, 0.5, 3)
			assert.LessOrEqual(t, len(hits), len(corpus))

			again := s.Search(q, corpus)
			assert.Equal(t, hits, again, "search must be deterministic")
		})
	}
}

func TestSearch_TopAnswers(t *testing.T) {
	s := NewDefaultScorer()
	corpus := testutil.SampleFAQs()

	tests := []struct {
		query    string
		expected string
	}{
		{"How does tennis scoring work?", "faq-scoring"},
		{"How do I create a challenge?", "faq-create-challenge"},
		{"What payment methods do you accept?", "faq-payment-methods"},
		{"Can I delete my account?", "faq-delete-account"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			hits := s.Search(tt.query, corpus)
			require.NotEmpty(t, hits)
			assert.Equal(t, tt.expected, hits[0].ID)
		})
	}
}

func TestSearch_SmallCorpusBound(t *testing.T) {
	s := NewDefaultScorer()
	corpus := testutil.SampleFAQs()[:2]
	hits := s.Search("tennis scoring deuce", corpus)
	assert.LessOrEqual(t, len(hits), 2)
}

func TestSearch_ThresholdExcludesLowScores(t *testing.T) {
	settings := config.DefaultScorerSettings()
	settings.Threshold = 5
	s, err := NewScorer(settings, config.DefaultLexicon())
	require.NoError(t, err)

	weak := testutil.NewFAQ("weak", "Unrelated question").Priority(5).Build()
	strong := testutil.NewFAQ("strong", "Unrelated question").Priority(6).Build()

	hits := s.Search("xyzabc", []model.FaqRecord{weak, strong})
	assert.Equal(t, []string{"strong"}, testutil.IDs(hits))
}

func TestSearch_TiesKeepInputOrder(t *testing.T) {
	s := NewDefaultScorer()
	var corpus []model.FaqRecord
	for _, id := range []string{"first", "second", "third", "fourth"} {
		corpus = append(corpus, testutil.NewFAQ(id, "How do refunds work?").Keywords("refund").Build())
	}

	hits := s.Search("refund", corpus)
	assert.Equal(t, []string{"first", "second", "third"}, testutil.IDs(hits))
}

func TestSearch_DoesNotMutateCandidates(t *testing.T) {
	s := NewDefaultScorer()
	corpus := testutil.SampleFAQs()
	snapshot := testutil.SampleFAQs()

	hits := s.Search("How does tennis scoring work?", corpus)
	require.NotEmpty(t, hits)
	hits[0].Question = "changed"

	assert.Equal(t, snapshot, corpus)
}

func TestSearch_BreakdownSumsToScore(t *testing.T) {
	s := NewDefaultScorer()
	for _, h := range s.Search("what is deuce in tennis", testutil.SampleFAQs()) {
		require.NotNil(t, h.Breakdown)
		assert.InDelta(t, h.RelevanceScore, h.Breakdown.Total(), delta)
	}
}

func TestSearch_AlternateLexicon(t *testing.T) {
	lex := config.DefaultLexicon()
	lex.Expansions = []config.Expansion{{Trigger: "racquet", Phrase: "racket"}}
	s, err := NewScorer(config.DefaultScorerSettings(), lex)
	require.NoError(t, err)

	rec := testutil.NewFAQ("gear", "Which racket should I buy?").Keywords("racket").Build()
	hits := s.Search("racquet advice", []model.FaqRecord{rec})

	require.Len(t, hits, 1)
	assert.InDelta(t, 45, hits[0].Breakdown.Keyword, delta)

	// the default lexicon has no such expansion
	assert.Empty(t, NewDefaultScorer().Search("racquet advice", []model.FaqRecord{rec}))
}

func TestSearch_ConcurrentCallers(t *testing.T) {
	s := NewDefaultScorer()
	corpus := testutil.SampleFAQs()
	expected := s.Search("what is deuce", corpus)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, expected, s.Search("what is deuce", corpus))
		}()
	}
	wg.Wait()
}

func TestNewScorer_InvalidConfiguration(t *testing.T) {
	settings := config.DefaultScorerSettings()
	settings.MaxResults = 0
	_, err := NewScorer(settings, config.DefaultLexicon())
	assert.ErrorContains(t, err, "max_results must be positive")

	lex := config.DefaultLexicon()
	lex.TennisTerms = []string{""}
	_, err = NewScorer(config.DefaultScorerSettings(), lex)
	assert.Error(t, err)
}
