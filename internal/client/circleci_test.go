package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/build-pulse/backend/internal/config"
)

func TestFetchWorkflowInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/insights/gh/acme/widgets/workflows/build" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Circle-Token") != "secret" {
			t.Errorf("expected Circle-Token header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": "run-1", "branch": "main", "duration": 120, "created_at": "2024-05-01T12:00:00Z", "stopped_at": "2024-05-01T12:02:00Z", "credits_used": 7, "status": "success", "is_approval": false},
				{"id": "run-2", "branch": "main", "duration": 95, "created_at": "2024-05-01T13:00:00Z", "stopped_at": null, "credits_used": 5, "status": "running", "is_approval": false}
			],
			"next_page_token": ""
		}`))
	}))
	defer srv.Close()

	c := NewCircleCIClient(config.CircleCIConfig{
		BaseURL:  srv.URL,
		VCS:      "gh",
		Username: "acme",
		Project:  "widgets",
		Workflow: "build",
		Token:    "secret",
	})

	page, err := c.FetchWorkflowInsights(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.Items[0].ID != "run-1" || page.Items[0].Duration != 120 {
		t.Fatalf("unexpected first item: %+v", page.Items[0])
	}
	if page.Items[1].StoppedAt != nil {
		t.Fatalf("expected null stopped_at to stay nil")
	}
}

func TestFetchWorkflowInsightsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "unauthorized"}`))
	}))
	defer srv.Close()

	c := NewCircleCIClient(config.CircleCIConfig{BaseURL: srv.URL, Workflow: "build"})

	if _, err := c.FetchWorkflowInsights(context.Background()); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
