// pkg/enrich/source.go
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/startuppulse/ecosystem-ingress/pkg/model"
)

// Identity carries the natural key a source uses to look a record up.
type Identity struct {
	Name    string
	Website string
}

// Source defines the interface for enrichment data sources. A source
// exposes one operation: fetch supplementary fields for one record.
// Transport concerns (HTTP, scraping) stay behind this interface.
type Source interface {
	// Name returns the source identifier used in logs and reports.
	Name() string

	// Fetch returns supplementary field values for the identified
	// record, or an error. A failed fetch contributes nothing to the
	// record's merge; it never aborts the batch.
	Fetch(ctx context.Context, id Identity) (model.Fields, error)
}

// fetchJSON performs a GET request and decodes the JSON response,
// keeping only the allow-listed fields. Arbitrary extra fields from a
// source are dropped rather than injected into records.
func fetchJSON(ctx context.Context, client *http.Client, url, apiKey string, allowed []string) (model.Fields, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("X-Api-Key", apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}

	fields := make(model.Fields)
	for _, field := range allowed {
		if v, ok := payload[field]; ok && !model.IsNull(v) {
			fields[field] = v
		}
	}

	return fields, nil
}
