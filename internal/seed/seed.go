// Package seed holds the initial FAQ corpus.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	internalErrors "github.com/gcbaptista/faq-assistant/internal/errors"
	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

//go:embed faqs.yaml
var faqsYAML []byte

// Records returns a fresh copy of the embedded corpus.
func Records() ([]model.FaqRecord, error) {
	return Parse(faqsYAML)
}

// Parse decodes a YAML list of FAQ records.
func Parse(data []byte) ([]model.FaqRecord, error) {
	var records []model.FaqRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed faqs: %w", err)
	}
	for i, rec := range records {
		if rec.ID == "" {
			return nil, fmt.Errorf("seed faq at position %d has no id", i)
		}
	}
	return records, nil
}

// Result counts what Into did.
type Result struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Into writes records into repo. Existing records with the same ID are
// overwritten, so seeding twice leaves the same corpus.
func Into(ctx context.Context, repo services.FAQRepository, records []model.FaqRecord) (Result, error) {
	var res Result
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		_, err := repo.Create(ctx, rec)
		if err == nil {
			res.Created++
			continue
		}
		if !errors.Is(err, internalErrors.ErrFAQAlreadyExists) {
			return res, fmt.Errorf("failed to seed faq '%s': %w", rec.ID, err)
		}
		if _, err := repo.Update(ctx, rec); err != nil {
			return res, fmt.Errorf("failed to refresh faq '%s': %w", rec.ID, err)
		}
		res.Updated++
	}

	if p, ok := repo.(services.Persister); ok {
		if err := p.Persist(); err != nil {
			return res, err
		}
	}
	return res, nil
}
