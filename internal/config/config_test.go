package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "CIRCLECI_BASE_URL", "INSIGHT_POLL_INTERVAL", "ALERT_POLL_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Port != "3080" {
		t.Fatalf("expected default port 3080, got %s", cfg.Server.Port)
	}
	if cfg.Poll.InsightInterval != 30*time.Second {
		t.Fatalf("expected 30s insight interval, got %s", cfg.Poll.InsightInterval)
	}
	if cfg.Poll.AlertInterval != 180*time.Second {
		t.Fatalf("expected 180s alert interval, got %s", cfg.Poll.AlertInterval)
	}
	if cfg.CircleCI.BaseURL != "https://circleci.com/api/v2" {
		t.Fatalf("unexpected circleci base url: %s", cfg.CircleCI.BaseURL)
	}
}

func TestGetenvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "duration-string", value: "45s", want: 45 * time.Second},
		{name: "plain-seconds", value: "60", want: 60 * time.Second},
		{name: "invalid-falls-back", value: "soon", want: 30 * time.Second},
		{name: "empty-falls-back", value: "", want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_POLL_INTERVAL", tt.value)
			if got := getenvDuration("TEST_POLL_INTERVAL", 30*time.Second); got != tt.want {
				t.Fatalf("getenvDuration() = %s, want %s", got, tt.want)
			}
		})
	}
}
