package analytics

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

// mockCounter is a simple mock for testing
type mockCounter struct {
	count int
	err   error
}

func (m *mockCounter) Count(_ context.Context, _ services.ListOptions) (int, error) {
	return m.count, m.err
}

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	service := NewService(&mockCounter{}, "", nil)

	service.TrackSearchEvent(model.SearchEvent{
		Query:        "  deuce ",
		Source:       "search",
		ResponseTime: 50 * time.Millisecond,
		ResultCount:  2,
	})

	if service.EventCount() != 1 {
		t.Fatalf("Expected 1 event, got %d", service.EventCount())
	}

	storedEvent := service.events[0]
	if storedEvent.Query != "deuce" {
		t.Errorf("Expected trimmed query 'deuce', got %q", storedEvent.Query)
	}
	if storedEvent.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestAnalyticsService_BoundedBuffer(t *testing.T) {
	service := NewService(&mockCounter{}, "", nil)
	for i := 0; i < maxEventsToKeep+25; i++ {
		service.TrackSearchEvent(model.SearchEvent{Query: "q", ResultCount: i})
	}

	if service.EventCount() != maxEventsToKeep {
		t.Fatalf("Expected %d events, got %d", maxEventsToKeep, service.EventCount())
	}
	if service.events[0].ResultCount != 25 {
		t.Errorf("Expected oldest events to be dropped, first ResultCount = %d", service.events[0].ResultCount)
	}
}

func TestAnalyticsService_GetDashboardData(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(&mockCounter{count: 24}, "", nil)
	service.now = func() time.Time { return now }

	events := []model.SearchEvent{
		{Query: "Deuce", ResponseTime: 2 * time.Millisecond, ResultCount: 2, TopFAQID: "faq-deuce", TopCategory: "General", TopScore: 40, Timestamp: now.Add(-time.Hour)},
		{Query: "deuce", ResponseTime: 4 * time.Millisecond, ResultCount: 1, TopFAQID: "faq-deuce", TopCategory: "General", TopScore: 50, Timestamp: now.Add(-2 * time.Hour)},
		{Query: "refund", ResponseTime: 3 * time.Millisecond, ResultCount: 1, TopFAQID: "faq-refunds", TopCategory: "Payments", TopScore: 20, Timestamp: now.Add(-3 * time.Hour)},
		{Query: "weather", ResponseTime: 3 * time.Millisecond, ResultCount: 0, Timestamp: now.Add(-4 * time.Hour)},
		// Older than 24h but inside the week
		{Query: "weather", ResponseTime: 100 * time.Millisecond, ResultCount: 0, Timestamp: now.Add(-48 * time.Hour)},
		// Outside the week
		{Query: "ancient", ResultCount: 0, Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, event := range events {
		service.TrackSearchEvent(event)
	}

	dashboard, err := service.GetDashboardData(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if dashboard.TotalSearches != 4 {
		t.Errorf("Expected 4 searches in last 24h, got %d", dashboard.TotalSearches)
	}
	if dashboard.NoMatchSearches != 1 {
		t.Errorf("Expected 1 no-match search, got %d", dashboard.NoMatchSearches)
	}
	if dashboard.NoMatchRate != 0.25 {
		t.Errorf("Expected no-match rate 0.25, got %v", dashboard.NoMatchRate)
	}
	if dashboard.AvgResponseTime != 3 {
		t.Errorf("Expected avg response time 3ms, got %v", dashboard.AvgResponseTime)
	}
	if dashboard.TotalFAQs != 24 {
		t.Errorf("Expected 24 FAQs, got %d", dashboard.TotalFAQs)
	}

	wantPopular := []model.PopularSearch{{Query: "deuce", SearchCount: 2}, {Query: "weather", SearchCount: 2}, {Query: "refund", SearchCount: 1}}
	if len(dashboard.PopularSearches) != len(wantPopular) {
		t.Fatalf("Expected %d popular searches, got %v", len(wantPopular), dashboard.PopularSearches)
	}
	for i, want := range wantPopular {
		if dashboard.PopularSearches[i] != want {
			t.Errorf("PopularSearches[%d] = %v, want %v", i, dashboard.PopularSearches[i], want)
		}
	}

	if len(dashboard.UnansweredQueries) != 1 || dashboard.UnansweredQueries[0].Query != "weather" {
		t.Errorf("Expected only 'weather' unanswered, got %v", dashboard.UnansweredQueries)
	}

	if len(dashboard.TopAnswers) != 2 {
		t.Fatalf("Expected 2 top answers, got %v", dashboard.TopAnswers)
	}
	if dashboard.TopAnswers[0].FAQID != "faq-deuce" || dashboard.TopAnswers[0].Count != 2 || dashboard.TopAnswers[0].AvgScore != 45 {
		t.Errorf("Unexpected top answer %+v", dashboard.TopAnswers[0])
	}

	if dashboard.CategoryHits["General"] != 2 || dashboard.CategoryHits["Payments"] != 1 {
		t.Errorf("Unexpected category hits %v", dashboard.CategoryHits)
	}
}

func TestAnalyticsService_EmptyDashboard(t *testing.T) {
	service := NewService(&mockCounter{}, "", nil)

	dashboard, err := service.GetDashboardData(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if dashboard.NoMatchRate != 0 || dashboard.AvgResponseTime != 0 {
		t.Errorf("Expected zero rates on empty dashboard, got %+v", dashboard)
	}
	if dashboard.PopularSearches == nil || dashboard.TopAnswers == nil || dashboard.CategoryHits == nil {
		t.Error("Expected empty, non-nil collections")
	}
}

func TestAnalyticsService_CounterError(t *testing.T) {
	service := NewService(&mockCounter{err: errors.New("db down")}, "", nil)
	if _, err := service.GetDashboardData(context.Background()); err == nil {
		t.Error("Expected counter error to propagate")
	}
}

func TestAnalyticsService_PersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics", "events.json")

	service := NewService(&mockCounter{}, path, nil)
	service.TrackSearchEvent(model.SearchEvent{Query: "deuce", ResultCount: 1})
	service.TrackSearchEvent(model.SearchEvent{Query: "refund", ResultCount: 0})
	if err := service.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reloaded := NewService(&mockCounter{}, path, nil)
	if reloaded.EventCount() != 2 {
		t.Fatalf("Expected 2 events after reload, got %d", reloaded.EventCount())
	}
	if reloaded.events[1].Query != "refund" {
		t.Errorf("Expected events in order, got %v", reloaded.events)
	}
}
