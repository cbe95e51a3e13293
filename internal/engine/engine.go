package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	internalErrors "github.com/gcbaptista/faq-assistant/internal/errors"
	"github.com/gcbaptista/faq-assistant/internal/metrics"
	"github.com/gcbaptista/faq-assistant/internal/relevance"
	"github.com/gcbaptista/faq-assistant/internal/seed"
	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

const defaultCorpusLimit = 100

// Tracker receives one event per completed search.
type Tracker interface {
	TrackSearchEvent(event model.SearchEvent)
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Scorer      *relevance.Scorer
	Tracker     Tracker
	Metrics     *metrics.Collector
	Logger      *zap.Logger
	CorpusLimit int
}

// Engine answers FAQ searches over a repository.
// It implements the services.FAQManager interface.
type Engine struct {
	repo        services.FAQRepository
	scorer      *relevance.Scorer
	tracker     Tracker
	metrics     *metrics.Collector
	logger      *zap.Logger
	corpusLimit int
	now         func() time.Time
}

// New creates an engine over repo.
func New(repo services.FAQRepository, opts Options) *Engine {
	if opts.Scorer == nil {
		opts.Scorer = relevance.NewDefaultScorer()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.CorpusLimit <= 0 {
		opts.CorpusLimit = defaultCorpusLimit
	}
	return &Engine{
		repo:        repo,
		scorer:      opts.Scorer,
		tracker:     opts.Tracker,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		corpusLimit: opts.CorpusLimit,
		now:         time.Now,
	}
}

// Search ranks the active FAQ records for query.Query.
func (e *Engine) Search(ctx context.Context, query services.SearchQuery) (services.SearchResult, error) {
	start := e.now()
	result := services.SearchResult{
		Hits:    []model.ScoredCandidate{},
		QueryID: uuid.New().String(),
	}

	q := e.scorer.Prepare(query.Query)
	if q.IsEmpty() {
		return result, nil
	}

	candidates, err := e.repo.List(ctx, services.ListOptions{ActiveOnly: true, Limit: e.corpusLimit})
	if err != nil {
		return services.SearchResult{}, err
	}

	hits := e.scorer.Rank(q, candidates)
	if !query.Explain {
		for i := range hits {
			hits[i].Breakdown = nil
		}
	}

	took := e.now().Sub(start)
	result.Hits = hits
	result.Total = len(hits)
	result.Took = took.Milliseconds()

	e.record(query, result, took, len(candidates))
	return result, nil
}

func (e *Engine) record(query services.SearchQuery, result services.SearchResult, took time.Duration, corpusSize int) {
	source := query.Source
	if source == "" {
		source = "search"
	}

	event := model.SearchEvent{
		QueryID:      result.QueryID,
		Query:        query.Query,
		Source:       source,
		ResponseTime: took,
		ResultCount:  result.Total,
		Timestamp:    e.now(),
	}
	if len(result.Hits) > 0 {
		top := result.Hits[0]
		event.TopFAQID = top.ID
		event.TopCategory = top.Category
		event.TopScore = top.RelevanceScore
	}

	if e.tracker != nil {
		e.tracker.TrackSearchEvent(event)
	}
	e.metrics.SetCorpusSize(corpusSize)
	e.metrics.ObserveSearch(source, took, result.Total, event.TopScore)

	e.logger.Debug("Search completed",
		zap.String("query_id", result.QueryID),
		zap.String("source", source),
		zap.Int("candidates", corpusSize),
		zap.Int("hits", result.Total),
		zap.String("faq_id", event.TopFAQID),
		zap.Duration("took", took))
}

// List passes through to the repository.
func (e *Engine) List(ctx context.Context, opts services.ListOptions) ([]model.FaqRecord, error) {
	return e.repo.List(ctx, opts)
}

// Count passes through to the repository.
func (e *Engine) Count(ctx context.Context, opts services.ListOptions) (int, error) {
	return e.repo.Count(ctx, opts)
}

// Get passes through to the repository.
func (e *Engine) Get(ctx context.Context, id string) (model.FaqRecord, error) {
	return e.repo.Get(ctx, id)
}

// Create validates and stores a new record.
func (e *Engine) Create(ctx context.Context, rec model.FaqRecord) (model.FaqRecord, error) {
	rec, err := NormalizeRecord(rec)
	if err != nil {
		return model.FaqRecord{}, err
	}
	created, err := e.repo.Create(ctx, rec)
	if err != nil {
		return model.FaqRecord{}, err
	}
	e.logger.Info("FAQ created", zap.String("faq_id", created.ID))
	return created, e.persist()
}

// Update validates and replaces an existing record.
func (e *Engine) Update(ctx context.Context, rec model.FaqRecord) (model.FaqRecord, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return model.FaqRecord{}, internalErrors.NewValidationError("id", "cannot be empty")
	}
	rec, err := NormalizeRecord(rec)
	if err != nil {
		return model.FaqRecord{}, err
	}
	updated, err := e.repo.Update(ctx, rec)
	if err != nil {
		return model.FaqRecord{}, err
	}
	e.logger.Info("FAQ updated", zap.String("faq_id", updated.ID))
	return updated, e.persist()
}

// Delete removes a record.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if err := e.repo.Delete(ctx, id); err != nil {
		return err
	}
	e.logger.Info("FAQ deleted", zap.String("faq_id", id))
	return e.persist()
}

// Seed loads the embedded corpus into the repository.
func (e *Engine) Seed(ctx context.Context) (seed.Result, error) {
	records, err := seed.Records()
	if err != nil {
		return seed.Result{}, err
	}
	res, err := seed.Into(ctx, e.repo, records)
	if err != nil {
		return res, err
	}
	e.logger.Info("FAQ corpus seeded", zap.Int("created", res.Created), zap.Int("updated", res.Updated))
	return res, nil
}

// SeedIfEmpty seeds only when the repository holds no records.
func (e *Engine) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := e.repo.Count(ctx, services.ListOptions{})
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := e.Seed(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the repository and the tracker when it supports closing.
func (e *Engine) Close() error {
	var errs []error
	if c, ok := e.tracker.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	errs = append(errs, e.repo.Close())
	return errors.Join(errs...)
}

func (e *Engine) persist() error {
	p, ok := e.repo.(services.Persister)
	if !ok {
		return nil
	}
	if err := p.Persist(); err != nil {
		e.logger.Error("Failed to persist FAQ store", zap.Error(err))
		return err
	}
	return nil
}

// NormalizeRecord trims text fields, canonicalizes the category and rejects
// records that cannot be served.
func NormalizeRecord(rec model.FaqRecord) (model.FaqRecord, error) {
	rec.ID = strings.TrimSpace(rec.ID)
	rec.Question = strings.TrimSpace(rec.Question)
	rec.Answer = strings.TrimSpace(rec.Answer)
	rec.Keywords = strings.TrimSpace(rec.Keywords)
	rec.Category = strings.TrimSpace(rec.Category)

	if rec.Question == "" {
		return model.FaqRecord{}, internalErrors.NewValidationError("question", "cannot be empty")
	}
	if rec.Answer == "" {
		return model.FaqRecord{}, internalErrors.NewValidationError("answer", "cannot be empty")
	}
	if rec.Category == "" {
		rec.Category = model.CategoryGeneral
	}
	if !model.IsKnownCategory(rec.Category) {
		return model.FaqRecord{}, internalErrors.NewValidationError("category", "must be one of "+strings.Join(model.Categories, ", "))
	}
	rec.Category = model.CanonicalCategory(rec.Category)
	if rec.Priority < 0 {
		return model.FaqRecord{}, internalErrors.NewValidationError("priority", "cannot be negative")
	}
	return rec, nil
}
