package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	topListSize     = 5
)

// Counter reports how many FAQ records exist.
type Counter interface {
	Count(ctx context.Context, opts services.ListOptions) (int, error)
}

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.SearchEvent
	counter      Counter
	dataFilePath string
	logger       *zap.Logger
	now          func() time.Time

	saveMu sync.Mutex
	saves  sync.WaitGroup
}

// NewService creates a new analytics service. Events are kept in memory only
// when dataFilePath is empty.
func NewService(counter Counter, dataFilePath string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	service := &Service{
		events:       make([]model.SearchEvent, 0),
		counter:      counter,
		dataFilePath: dataFilePath,
		logger:       logger,
		now:          time.Now,
	}

	if err := service.loadData(); err != nil {
		logger.Warn("Failed to load analytics data", zap.String("path", dataFilePath), zap.Error(err))
	}

	return service
}

// TrackSearchEvent records a new search event
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	event.Query = strings.TrimSpace(event.Query)
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
	s.mutex.Unlock()

	if s.dataFilePath == "" {
		return
	}
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		if err := s.saveData(); err != nil {
			s.logger.Warn("Failed to save analytics data", zap.Error(err))
		}
	}()
}

// Close waits for pending saves to finish.
func (s *Service) Close() error {
	s.saves.Wait()
	return nil
}

// EventCount returns the number of buffered events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData(ctx context.Context) (model.AnalyticsDashboard, error) {
	total, err := s.counter.Count(ctx, services.ListOptions{})
	if err != nil {
		return model.AnalyticsDashboard{}, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	last24hEvents := filterEventsByTime(s.events, now.Add(-24*time.Hour))
	lastWeekEvents := filterEventsByTime(s.events, now.Add(-7*24*time.Hour))

	noMatch := 0
	for _, event := range last24hEvents {
		if !event.Matched() {
			noMatch++
		}
	}

	dashboard := model.AnalyticsDashboard{
		TotalSearches:     len(last24hEvents),
		NoMatchSearches:   noMatch,
		NoMatchRate:       rate(noMatch, len(last24hEvents)),
		AvgResponseTime:   avgResponseTime(last24hEvents),
		TotalFAQs:         total,
		PopularSearches:   popularSearches(lastWeekEvents, func(model.SearchEvent) bool { return true }),
		UnansweredQueries: popularSearches(lastWeekEvents, func(e model.SearchEvent) bool { return !e.Matched() }),
		TopAnswers:        topAnswers(lastWeekEvents),
		CategoryHits:      categoryHits(lastWeekEvents),
	}

	return dashboard, nil
}

// filterEventsByTime returns events after the given time
func filterEventsByTime(events []model.SearchEvent, after time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// avgResponseTime returns the mean response time in milliseconds
func avgResponseTime(events []model.SearchEvent) float64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return float64(total) / float64(len(events)) / float64(time.Millisecond)
}

// popularSearches returns the most frequent normalized queries among events accepted by keep
func popularSearches(events []model.SearchEvent, keep func(model.SearchEvent) bool) []model.PopularSearch {
	queryCounts := make(map[string]int)
	for _, event := range events {
		q := strings.ToLower(event.Query)
		if q != "" && keep(event) {
			queryCounts[q]++
		}
	}

	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}

	// Sort by count descending, then alphabetically for stable output
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > topListSize {
		popular = popular[:topListSize]
	}
	return popular
}

// topAnswers returns the FAQs most often served as the best answer
func topAnswers(events []model.SearchEvent) []model.ServedAnswer {
	byID := make(map[string]*model.ServedAnswer)
	sums := make(map[string]float64)
	for _, event := range events {
		if event.TopFAQID == "" {
			continue
		}
		a, ok := byID[event.TopFAQID]
		if !ok {
			a = &model.ServedAnswer{FAQID: event.TopFAQID, Category: event.TopCategory}
			byID[event.TopFAQID] = a
		}
		a.Count++
		sums[event.TopFAQID] += event.TopScore
	}

	answers := make([]model.ServedAnswer, 0, len(byID))
	for id, a := range byID {
		a.AvgScore = sums[id] / float64(a.Count)
		answers = append(answers, *a)
	}

	sort.Slice(answers, func(i, j int) bool {
		if answers[i].Count != answers[j].Count {
			return answers[i].Count > answers[j].Count
		}
		return answers[i].FAQID < answers[j].FAQID
	})

	if len(answers) > topListSize {
		answers = answers[:topListSize]
	}
	return answers
}

// categoryHits counts top answers per category
func categoryHits(events []model.SearchEvent) map[string]int {
	hits := make(map[string]int)
	for _, event := range events {
		if event.TopCategory != "" {
			hits[event.TopCategory]++
		}
	}
	return hits
}

// loadData loads analytics data from file
func (s *Service) loadData() error {
	if s.dataFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(s.dataFilePath)
	if os.IsNotExist(err) {
		return nil // File doesn't exist yet, that's okay
	}
	if err != nil {
		return fmt.Errorf("failed to read analytics file: %w", err)
	}

	var events []model.SearchEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("failed to unmarshal analytics data: %w", err)
	}
	if len(events) > maxEventsToKeep {
		events = events[len(events)-maxEventsToKeep:]
	}
	s.events = events
	return nil
}

// saveData saves analytics data to file
func (s *Service) saveData() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mutex.RLock()
	data, err := json.MarshalIndent(s.events, "", "  ")
	s.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal analytics data: %w", err)
	}

	dir := filepath.Dir(s.dataFilePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create analytics directory: %w", err)
	}

	if err := os.WriteFile(s.dataFilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write analytics file: %w", err)
	}

	return nil
}
