package main

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gcbaptista/faq-assistant/config"
	"github.com/gcbaptista/faq-assistant/internal/analytics"
	"github.com/gcbaptista/faq-assistant/internal/engine"
	"github.com/gcbaptista/faq-assistant/internal/logger"
	"github.com/gcbaptista/faq-assistant/internal/metrics"
	"github.com/gcbaptista/faq-assistant/internal/relevance"
	"github.com/gcbaptista/faq-assistant/services"
	"github.com/gcbaptista/faq-assistant/store"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *metrics.Collector
	analytics *analytics.Service
	engine    *engine.Engine
}

func newApp(path string) (*app, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	log, err := logger.New("faq-assistant")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := openRepository(cfg.Storage)
	if err != nil {
		return nil, err
	}

	scorer, err := relevance.NewScorer(cfg.Scorer, cfg.Lexicon)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("failed to create scorer: %w", err)
	}

	collector := metrics.New()
	tracker := analytics.NewService(repo, filepath.Join(cfg.Storage.DataDir, "analytics.json"), log)

	eng := engine.New(repo, engine.Options{
		Scorer:      scorer,
		Tracker:     tracker,
		Metrics:     collector,
		Logger:      log,
		CorpusLimit: cfg.Storage.CorpusLimit,
	})

	log.Info("FAQ assistant initialized",
		zap.String("driver", cfg.Storage.Driver),
		zap.String("data_dir", cfg.Storage.DataDir))

	return &app{cfg: cfg, logger: log, metrics: collector, analytics: tracker, engine: eng}, nil
}

func openRepository(cfg config.StorageConfig) (services.FAQRepository, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return store.NewSQLiteStore(cfg.SQLitePath)
	default:
		return store.NewMemoryStore(filepath.Join(cfg.DataDir, "faqs.gob"))
	}
}

func (a *app) close() {
	if err := a.engine.Close(); err != nil {
		a.logger.Warn("Shutdown finished with errors", zap.Error(err))
	}
	_ = a.logger.Sync()
}
