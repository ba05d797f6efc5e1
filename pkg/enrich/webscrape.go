// pkg/enrich/webscrape.go
package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
)

// WebScrapeConfig holds settings for the generic website fetch.
type WebScrapeConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// WebScrape fetches a record's own website and extracts the meta
// description and any team-member listings from the page.
type WebScrape struct {
	cfg    *WebScrapeConfig
	client *http.Client
	logger *zap.Logger
}

// NewWebScrape creates a website-scraping source.
func NewWebScrape(cfg *WebScrapeConfig, logger *zap.Logger) (*WebScrape, error) {
	if cfg == nil {
		return nil, errors.New("web scrape configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &WebScrape{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger.With(zap.String("source", "webscrape")),
	}, nil
}

// Name returns the source identifier.
func (w *WebScrape) Name() string {
	return "webscrape"
}

// Fetch downloads the record's website and extracts supplementary
// fields from the HTML.
func (w *WebScrape) Fetch(ctx context.Context, id Identity) (model.Fields, error) {
	if id.Website == "" {
		return nil, errors.New("record has no website to scrape")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, id.Website, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", id.Website, err)
	}
	if w.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", w.cfg.UserAgent)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", id.Website, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, id.Website)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", id.Website, err)
	}

	fields := make(model.Fields)

	if description, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		description = strings.TrimSpace(description)
		if description != "" {
			fields["website_description"] = description
		}
	}

	var team []string
	doc.Find("div.team-member").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if name != "" {
			team = append(team, name)
		}
	})
	if len(team) > 0 {
		fields["team_members"] = team
	}

	w.logger.Debug("Scraped website",
		zap.String("website", id.Website),
		zap.Int("fields", len(fields)))

	return fields, nil
}
