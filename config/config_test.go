package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected default listen :8080, got %q", cfg.Server.Listen)
	}

	if cfg.Scrape.Timeout != 5*time.Second {
		t.Errorf("expected default scrape timeout 5s, got %v", cfg.Scrape.Timeout)
	}

	if cfg.Dossier.MaxLegalPages != 5 {
		t.Errorf("expected default max legal pages 5, got %d", cfg.Dossier.MaxLegalPages)
	}

	if cfg.Dossier.MaxCandidates != 6 {
		t.Errorf("expected default max candidates 6, got %d", cfg.Dossier.MaxCandidates)
	}

	if cfg.Dossier.MaxCompanies != 3 {
		t.Errorf("expected default max companies 3, got %d", cfg.Dossier.MaxCompanies)
	}

	if cfg.Dossier.HomeTextLimit != 8000 {
		t.Errorf("expected default home text limit 8000, got %d", cfg.Dossier.HomeTextLimit)
	}

	if cfg.Registry.BaseURL != "" {
		t.Errorf("expected empty registry base URL by default, got %q", cfg.Registry.BaseURL)
	}
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	path := "/nonexistent/.config.yaml"

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("expected missing config file to be ignored, got %v", err)
	}

	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected defaults with missing file, got %q", cfg.Server.Listen)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".config.yaml")

	yaml := `server:
  listen: ":9090"
  max_body_size: 2048
dossier:
  max_legal_pages: 2
  analyze_timeout: 20s
slack:
  webhook_url: https://hooks.slack.com/services/T/B/X
`

	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Listen != ":9090" {
		t.Errorf("expected listen :9090, got %q", cfg.Server.Listen)
	}

	if cfg.Server.MaxBodySize != 2048 {
		t.Errorf("expected max body size 2048, got %d", cfg.Server.MaxBodySize)
	}

	if cfg.Dossier.MaxLegalPages != 2 {
		t.Errorf("expected max legal pages 2, got %d", cfg.Dossier.MaxLegalPages)
	}

	if cfg.Dossier.AnalyzeTimeout != 20*time.Second {
		t.Errorf("expected analyze timeout 20s, got %v", cfg.Dossier.AnalyzeTimeout)
	}

	if cfg.Slack.WebhookURL != "https://hooks.slack.com/services/T/B/X" {
		t.Errorf("unexpected webhook URL %q", cfg.Slack.WebhookURL)
	}

	// untouched sections keep their defaults
	if cfg.Scrape.Timeout != 5*time.Second {
		t.Errorf("expected scrape defaults preserved, got %v", cfg.Scrape.Timeout)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOSSIER_SERVER_LISTEN", ":7070")
	t.Setenv("DOSSIER_REGISTRY_BASE_URL", "http://localhost:9999")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Listen != ":7070" {
		t.Errorf("expected env override :7070, got %q", cfg.Server.Listen)
	}

	if cfg.Registry.BaseURL != "http://localhost:9999" {
		t.Errorf("expected env override for registry base URL, got %q", cfg.Registry.BaseURL)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".config.yaml")

	if err := os.WriteFile(path, []byte("server:\n  listen: \":9090\"\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("DOSSIER_SERVER_LISTEN", ":6060")

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Listen != ":6060" {
		t.Errorf("expected env to override file, got %q", cfg.Server.Listen)
	}
}

func TestEnvToKey(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"DOSSIER_SERVER_LISTEN", "server.listen"},
		{"DOSSIER_DOSSIER_MAX_LEGAL_PAGES", "dossier.max_legal_pages"},
		{"DOSSIER_SLACK_WEBHOOK_URL", "slack.webhook_url"},
	}

	for _, tc := range tests {
		if got := envToKey(tc.in); got != tc.expected {
			t.Errorf("envToKey(%q): expected %q, got %q", tc.in, tc.expected, got)
		}
	}
}
