// pkg/enrich/linkedin.go
package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
)

// LinkedInConfig holds connection parameters for the
// professional-network API.
type LinkedInConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Fields this source is allowed to contribute to a record.
var linkedinFields = []string{
	"employee_count",
	"recent_hires",
	"company_size",
	"key_personnel",
	"recent_activities",
}

// LinkedIn fetches headcount and personnel data by company or
// investor name.
type LinkedIn struct {
	cfg    *LinkedInConfig
	client *http.Client
	logger *zap.Logger
}

// NewLinkedIn creates a LinkedIn source.
func NewLinkedIn(cfg *LinkedInConfig, logger *zap.Logger) (*LinkedIn, error) {
	if cfg == nil {
		return nil, errors.New("linkedin configuration cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("linkedin base URL is required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &LinkedIn{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.With(zap.String("source", "linkedin")),
	}, nil
}

// Name returns the source identifier.
func (l *LinkedIn) Name() string {
	return "linkedin"
}

// Fetch looks up a company profile by name.
func (l *LinkedIn) Fetch(ctx context.Context, id Identity) (model.Fields, error) {
	if id.Name == "" {
		return nil, errors.New("record has no name to look up")
	}

	endpoint := fmt.Sprintf("%s/companies?name=%s", l.cfg.BaseURL, url.QueryEscape(id.Name))
	fields, err := fetchJSON(ctx, l.client, endpoint, l.cfg.APIKey, linkedinFields)
	if err != nil {
		return nil, fmt.Errorf("linkedin lookup for %q failed: %w", id.Name, err)
	}

	l.logger.Debug("Fetched company data",
		zap.String("name", id.Name),
		zap.Int("fields", len(fields)))

	return fields, nil
}
