package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestCrunchbaseFetchAllowListsFields(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		if got := r.URL.Query().Get("name"); got != "Acme" {
			t.Errorf("name query = %q, want %q", got, "Acme")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"total_funding": 1500000,
			"investors": ["Sequoia"],
			"internal_notes": "should never reach a record",
			"funding_rounds": null
		}`))
	}))
	defer server.Close()

	src, err := NewCrunchbase(&CrunchbaseConfig{BaseURL: server.URL, APIKey: "secret"}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCrunchbase failed: %v", err)
	}

	fields, err := src.Fetch(context.Background(), Identity{Name: "Acme"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("X-Api-Key = %q, want %q", gotKey, "secret")
	}
	if v := fields["total_funding"]; v != 1500000.0 {
		t.Errorf("total_funding = %v, want 1500000", v)
	}
	if _, ok := fields["internal_notes"]; ok {
		t.Error("field outside the allow-list leaked into the result")
	}
	if _, ok := fields["funding_rounds"]; ok {
		t.Error("null field should be dropped")
	}
}

func TestCrunchbaseFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	src, err := NewCrunchbase(&CrunchbaseConfig{BaseURL: server.URL}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCrunchbase failed: %v", err)
	}

	if _, err := src.Fetch(context.Background(), Identity{Name: "Acme"}); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestCrunchbaseFetchRequiresName(t *testing.T) {
	src, err := NewCrunchbase(&CrunchbaseConfig{BaseURL: "http://unused"}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewCrunchbase failed: %v", err)
	}

	if _, err := src.Fetch(context.Background(), Identity{}); err == nil {
		t.Error("expected error for record without a name")
	}
}

func TestWebScrapeFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "ingress-bot/1.0" {
			t.Errorf("User-Agent = %q, want %q", got, "ingress-bot/1.0")
		}
		w.Write([]byte(`<html><head>
			<meta name="description" content=" Builds rockets. ">
		</head><body>
			<div class="team-member">Ada Lovelace</div>
			<div class="team-member">Alan Turing</div>
		</body></html>`))
	}))
	defer server.Close()

	src, err := NewWebScrape(&WebScrapeConfig{UserAgent: "ingress-bot/1.0"}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewWebScrape failed: %v", err)
	}

	fields, err := src.Fetch(context.Background(), Identity{Website: server.URL})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if v := fields["website_description"]; v != "Builds rockets." {
		t.Errorf("website_description = %v, want %q", v, "Builds rockets.")
	}
	team, ok := fields["team_members"].([]string)
	if !ok || len(team) != 2 || team[0] != "Ada Lovelace" || team[1] != "Alan Turing" {
		t.Errorf("team_members = %v, want both listed members", fields["team_members"])
	}
}

func TestWebScrapeFetchRequiresWebsite(t *testing.T) {
	src, err := NewWebScrape(&WebScrapeConfig{}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewWebScrape failed: %v", err)
	}

	if _, err := src.Fetch(context.Background(), Identity{Name: "Acme"}); err == nil {
		t.Error("expected error for record without a website")
	}
}
