// pkg/enrich/factory.go
package enrich

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/config"
)

// SourceFactory creates enrichment sources from configuration.
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSources creates all configured enrichment sources in priority
// order: the structured-data API first, then the professional-network
// API, then the generic website fetch.
func (f *SourceFactory) CreateSources() ([]Source, error) {
	f.logger.Info("Creating enrichment sources")

	crunchbase, err := NewCrunchbase(&CrunchbaseConfig{
		BaseURL: f.cfg.CrunchbaseBaseURL,
		APIKey:  f.cfg.CrunchbaseAPIKey,
		Timeout: f.cfg.FetchTimeout,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Crunchbase source: %w", err)
	}

	linkedin, err := NewLinkedIn(&LinkedInConfig{
		BaseURL: f.cfg.LinkedInBaseURL,
		APIKey:  f.cfg.LinkedInAPIKey,
		Timeout: f.cfg.FetchTimeout,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create LinkedIn source: %w", err)
	}

	webscrape, err := NewWebScrape(&WebScrapeConfig{
		Timeout:   f.cfg.FetchTimeout,
		UserAgent: f.cfg.ScrapeUserAgent,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create web scrape source: %w", err)
	}

	return []Source{crunchbase, linkedin, webscrape}, nil
}
