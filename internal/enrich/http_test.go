package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scandocs/pipeline/internal/entity"
)

func TestHTTPExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/entities" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Text != "Oswald in Dallas" {
			t.Errorf("text = %q", req.Text)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"entities": []entity.Entity{
				{Text: "Oswald", Label: "PERSON"},
				{Text: "Dallas", Label: "GPE"},
			},
		})
	}))
	defer srv.Close()

	x := NewHTTPExtractor(srv.URL, srv.Client(), nil)
	ents, err := x.Extract(context.Background(), "Oswald in Dallas")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(ents) != 2 || ents[0].Label != "PERSON" || ents[1].Text != "Dallas" {
		t.Errorf("entities = %+v", ents)
	}
}

func TestHTTPExtractorNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	x := NewHTTPExtractor(srv.URL, srv.Client(), nil)
	if _, err := x.Extract(context.Background(), "text"); err == nil {
		t.Fatal("non-2xx must surface as an error")
	}
}

func TestHTTPExtractorBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	x := NewHTTPExtractor(srv.URL, srv.Client(), nil)
	if _, err := x.Extract(context.Background(), "text"); err == nil {
		t.Fatal("undecodable body must surface as an error")
	}
}
