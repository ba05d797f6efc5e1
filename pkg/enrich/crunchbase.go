// pkg/enrich/crunchbase.go
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

// CrunchbaseConfig holds connection parameters for the structured
// funding-data API.
type CrunchbaseConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Fields this source is allowed to contribute to a record.
var crunchbaseFields = []string{
	"funding_rounds",
	"total_funding",
	"investors",
	"portfolio_companies",
	"investment_history",
}

// Crunchbase fetches funding and investor history data by company or
// investor name.
type Crunchbase struct {
	cfg    *CrunchbaseConfig
	client *http.Client
	logger *zap.Logger
}

// NewCrunchbase creates a Crunchbase source.
func NewCrunchbase(cfg *CrunchbaseConfig, logger *zap.Logger) (*Crunchbase, error) {
	if cfg == nil {
		return nil, errors.New("crunchbase configuration cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("crunchbase base URL is required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Crunchbase{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.With(zap.String("source", "crunchbase")),
	}, nil
}

// Name returns the source identifier.
func (c *Crunchbase) Name() string {
	return "crunchbase"
}

// Fetch looks up an organization by name.
func (c *Crunchbase) Fetch(ctx context.Context, id Identity) (model.Fields, error) {
	if id.Name == "" {
		return nil, errors.New("record has no name to look up")
	}

	endpoint := fmt.Sprintf("%s/organizations?name=%s", c.cfg.BaseURL, url.QueryEscape(id.Name))
	fields, err := fetchJSON(ctx, c.client, endpoint, c.cfg.APIKey, crunchbaseFields)
	if err != nil {
		return nil, fmt.Errorf("crunchbase lookup for %q failed: %w", id.Name, err)
	}

	c.logger.Debug("Fetched organization data",
		zap.String("name", id.Name),
		zap.Int("fields", len(fields)))

	return fields, nil
}
