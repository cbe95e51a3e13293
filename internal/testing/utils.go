// Package testing provides fixtures and assertions shared by the FAQ assistant tests.
package testing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/faq-assistant/model"
)

// FAQBuilder builds FAQ records for tests
type FAQBuilder struct {
	rec model.FaqRecord
}

// NewFAQ starts a builder for an active General record
func NewFAQ(id, question string) *FAQBuilder {
	return &FAQBuilder{rec: model.FaqRecord{
		ID:       id,
		Category: model.CategoryGeneral,
		Question: question,
		IsActive: true,
	}}
}

// Answer sets the answer text
func (b *FAQBuilder) Answer(answer string) *FAQBuilder {
	b.rec.Answer = answer
	return b
}

// Keywords sets the comma-separated keywords
func (b *FAQBuilder) Keywords(keywords string) *FAQBuilder {
	b.rec.Keywords = keywords
	return b
}

// Category sets the category
func (b *FAQBuilder) Category(category string) *FAQBuilder {
	b.rec.Category = category
	return b
}

// Priority sets the priority
func (b *FAQBuilder) Priority(priority int) *FAQBuilder {
	b.rec.Priority = priority
	return b
}

// Inactive marks the record inactive
func (b *FAQBuilder) Inactive() *FAQBuilder {
	b.rec.IsActive = false
	return b
}

// Build returns the record
func (b *FAQBuilder) Build() model.FaqRecord {
	return b.rec
}

// SampleFAQs returns a small corpus modelled on the production FAQ table
func SampleFAQs() []model.FaqRecord {
	return []model.FaqRecord{
		NewFAQ("faq-scoring", "How does tennis scoring work?").
			Answer("Points in a game go love, 15, 30, 40. At 40-40 the score is deuce and a player must win by two points. Six games win a set.").
			Keywords("scoring, how does scoring work, tennis score, points, games, sets, match, love, deuce, tiebreak").
			Priority(10).Build(),
		NewFAQ("faq-deuce", "What is deuce in tennis?").
			Answer("Deuce occurs when both players have won three points each. The next point gives advantage.").
			Keywords("deuce, 40-40, advantage, tied, tennis rules").
			Priority(8).Build(),
		NewFAQ("faq-create-challenge", "How do I create a challenge?").
			Category(model.CategoryChallenges).
			Answer("Go to your dashboard and click Create Challenge, then choose the match type and publish it.").
			Keywords("create challenge, how to make, new match, challenge someone").
			Priority(9).Build(),
		NewFAQ("faq-find-events", "How do I find tennis events near me?").
			Category(model.CategoryEvents).
			Answer("Use the Events Near Me feature on your dashboard and filter by distance and date.").
			Keywords("find events, near me, location, tournaments, local events").
			Priority(8).Build(),
		NewFAQ("faq-payment-methods", "What payment methods do you accept?").
			Category(model.CategoryPayments).
			Answer("We accept major credit cards, PayPal and digital wallets.").
			Keywords("payment methods, credit card, paypal, accepted payments, how to pay").
			Priority(7).Build(),
		NewFAQ("faq-delete-account", "Can I delete my account?").
			Category(model.CategoryAccount).
			Answer("Yes, you can delete your account from the settings page. This cannot be undone.").
			Keywords("delete account, remove profile, close account, deactivate").
			Priority(5).Build(),
	}
}

// ZeroPriority returns a copy of records with every priority set to zero
func ZeroPriority(records []model.FaqRecord) []model.FaqRecord {
	out := make([]model.FaqRecord, len(records))
	for i, r := range records {
		r.Priority = 0
		out[i] = r
	}
	return out
}

// IDs returns the record IDs of hits in order
func IDs(hits []model.ScoredCandidate) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return ids
}

// RecordIDs returns the IDs of records in order
func RecordIDs(records []model.FaqRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// AssertRanked checks the invariants every search result must satisfy
func AssertRanked(t *testing.T, hits []model.ScoredCandidate, threshold float64, maxResults int) {
	t.Helper()
	require.NotNil(t, hits)
	assert.LessOrEqual(t, len(hits), maxResults, "too many results")
	for i, h := range hits {
		assert.Greater(t, h.RelevanceScore, threshold, fmt.Sprintf("hit %d (%s) at or below threshold", i, h.ID))
		if i > 0 {
			assert.GreaterOrEqual(t, hits[i-1].RelevanceScore, h.RelevanceScore, fmt.Sprintf("hits %d and %d out of order", i-1, i))
		}
	}
}
