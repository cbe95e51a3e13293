// Package assistant turns FAQ search results into chat replies.
package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	internalErrors "github.com/gcbaptista/faq-assistant/internal/errors"
	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

// SourceChat labels searches made on behalf of the chat.
const SourceChat = "chat"

// Greeting opens every conversation.
const Greeting = "Hello! I'm your tennis assistant. I can help you find answers to common questions about challenges, events, payments, and more. What would you like to know?"

// FallbackMessage is sent when no FAQ matches the question.
const FallbackMessage = "I couldn't find a specific answer to your question in our FAQ database. Here are some things you can try:\n\n" +
	"• Try rephrasing your question with different keywords\n" +
	"• Browse our FAQ categories: General, Challenges, Events, Payments, Account, or Technical\n" +
	"• Ask about common topics like:\n" +
	"  - Tennis scoring rules (deuce, advantage, tiebreak)\n" +
	"  - How to create or accept challenges\n" +
	"  - Finding events near you\n" +
	"  - Payment and subscription information\n" +
	"  - Account and profile settings\n\n" +
	"• Contact our support team for personalized assistance\n\n" +
	"What specific aspect would you like to know more about?"

var quickQuestions = []string{
	"How does tennis scoring work?",
	"What is deuce in tennis?",
	"How do I create a challenge?",
	"What are the subscription plans?",
	"How do I find events near me?",
	"How to update my profile?",
}

// QuickQuestions returns the starter questions offered before the first message.
func QuickQuestions() []string {
	return append([]string(nil), quickQuestions...)
}

// Assistant answers chat messages from the FAQ corpus.
type Assistant struct {
	searcher services.Searcher
	now      func() time.Time
}

// New creates an assistant backed by searcher.
func New(searcher services.Searcher) *Assistant {
	return &Assistant{searcher: searcher, now: time.Now}
}

// Reply answers one message. The best hit's answer becomes the reply content and
// the remaining hits are offered as related questions.
func (a *Assistant) Reply(ctx context.Context, message string) (model.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return model.ChatReply{}, internalErrors.NewValidationError("message", "cannot be empty")
	}

	result, err := a.searcher.Search(ctx, services.SearchQuery{Query: message, Source: SourceChat})
	if err != nil {
		return model.ChatReply{}, err
	}

	reply := model.ChatReply{
		ID:        uuid.New().String(),
		QueryID:   result.QueryID,
		Related:   []model.ScoredCandidate{},
		Timestamp: a.now(),
	}

	if len(result.Hits) == 0 {
		reply.Content = FallbackMessage
		reply.Fallback = true
		return reply, nil
	}

	primary := result.Hits[0]
	reply.Primary = &primary
	reply.Content = primary.Answer
	reply.Related = append(reply.Related, result.Hits[1:]...)
	return reply, nil
}
