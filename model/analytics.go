package model

import "time"

// SearchEvent represents a single FAQ search for analytics tracking
type SearchEvent struct {
	QueryID      string        `json:"query_id"`
	Query        string        `json:"query"`
	Source       string        `json:"source"` // "search", "chat" or "cli"
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	TopFAQID     string        `json:"top_faq_id,omitempty"`
	TopCategory  string        `json:"top_category,omitempty"`
	TopScore     float64       `json:"top_score"`
	Timestamp    time.Time     `json:"timestamp"`
}

// Matched reports whether the search produced at least one answer.
func (e SearchEvent) Matched() bool {
	return e.ResultCount > 0
}

// PopularSearch represents aggregated data for a normalized query string
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// ServedAnswer counts how often a FAQ was returned as the top answer
type ServedAnswer struct {
	FAQID    string  `json:"faq_id"`
	Category string  `json:"category"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics, last 24 hours
	TotalSearches   int     `json:"total_searches"`
	NoMatchSearches int     `json:"no_match_searches"`
	NoMatchRate     float64 `json:"no_match_rate"`
	AvgResponseTime float64 `json:"avg_response_time_ms"`
	TotalFAQs       int     `json:"total_faqs"`

	// Detailed analytics, last 7 days
	PopularSearches   []PopularSearch `json:"popular_searches"`
	UnansweredQueries []PopularSearch `json:"unanswered_queries"`
	TopAnswers        []ServedAnswer  `json:"top_answers"`
	CategoryHits      map[string]int  `json:"category_hits"`
}
