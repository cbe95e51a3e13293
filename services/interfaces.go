package services

import (
	"context"

	"github.com/gcbaptista/faq-assistant/model"
)

// ListOptions narrows a repository listing.
// Text matches question, answer or keywords case-insensitively; Category matches
// exactly, ignoring case. ActiveOnly and InactiveOnly select by IsActive.
// A zero Limit means no limit.
type ListOptions struct {
	ActiveOnly   bool
	InactiveOnly bool
	Category     string
	Text         string
	Offset       int
	Limit        int
}

// FAQRepository stores FAQ records. List returns records ordered by priority
// descending, then by insertion order.
type FAQRepository interface {
	List(ctx context.Context, opts ListOptions) ([]model.FaqRecord, error)
	Count(ctx context.Context, opts ListOptions) (int, error)
	Get(ctx context.Context, id string) (model.FaqRecord, error)
	Create(ctx context.Context, rec model.FaqRecord) (model.FaqRecord, error)
	Update(ctx context.Context, rec model.FaqRecord) (model.FaqRecord, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Persister is implemented by repositories that keep snapshots on disk.
type Persister interface {
	Persist() error
}

// SearchQuery is one relevance search request.
type SearchQuery struct {
	Query   string `json:"query"`
	Explain bool   `json:"explain,omitempty"` // include per-signal score breakdowns
	Source  string `json:"-"`                 // analytics label: "search", "chat" or "cli"
}

// SearchResult is the ranked answer set for one query.
type SearchResult struct {
	Hits    []model.ScoredCandidate `json:"hits"`
	Total   int                     `json:"total"`
	Took    int64                   `json:"took"`     // milliseconds
	QueryID string                  `json:"query_id"` // unique UUID for this search query
}

// Searcher answers relevance queries.
type Searcher interface {
	Search(ctx context.Context, query SearchQuery) (SearchResult, error)
}

// FAQManager is the full surface the API needs.
type FAQManager interface {
	Searcher
	FAQRepository
}
