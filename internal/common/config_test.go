package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", config.Server.Port)
	}
	if config.Clients.EODHD.BaseURL != "https://eodhd.com/api" {
		t.Errorf("base URL = %q", config.Clients.EODHD.BaseURL)
	}
	if config.Debate.NewsMaxBytes != 24*1024 {
		t.Errorf("news cap = %d, want %d", config.Debate.NewsMaxBytes, 24*1024)
	}
	if len(config.Debate.CatalystRules) == 0 {
		t.Errorf("no default catalyst rules")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "council.toml")
	content := `
environment = "production"

[server]
port = 9090

[clients.gemini]
model = "gemini-2.5-pro"

[debate]
news_max_bytes = 4096

[[debate.catalyst_rules]]
phrase = "fda approval"
min_confidence = 90
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !config.IsProduction() {
		t.Errorf("environment = %q, want production", config.Environment)
	}
	if config.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", config.Server.Port)
	}
	// Unset fields keep their defaults.
	if config.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", config.Server.Host)
	}
	if config.Clients.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("model = %q", config.Clients.Gemini.Model)
	}
	if config.Debate.NewsMaxBytes != 4096 {
		t.Errorf("news cap = %d, want 4096", config.Debate.NewsMaxBytes)
	}
	if len(config.Debate.CatalystRules) != 1 || config.Debate.CatalystRules[0].Phrase != "fda approval" {
		t.Errorf("catalyst rules = %+v", config.Debate.CatalystRules)
	}
}

func TestLoadConfigMissingFileIsSkipped(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed on a missing file: %v", err)
	}
	if config.Server.Port != 8080 {
		t.Errorf("port = %d, want default", config.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COUNCIL_PORT", "7070")
	t.Setenv("COUNCIL_LOG_LEVEL", "debug")
	t.Setenv("GEMINI_API_KEY", "env-key")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", config.Server.Port)
	}
	if config.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", config.Logging.Level)
	}
	if config.Clients.Gemini.APIKey != "env-key" {
		t.Errorf("gemini key = %q, want env-key", config.Clients.Gemini.APIKey)
	}
}

func TestEODHDTimeout(t *testing.T) {
	cfg := EODHDConfig{Timeout: "45s"}
	if got := cfg.GetTimeout(); got != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", got)
	}

	cfg = EODHDConfig{Timeout: "bogus"}
	if got := cfg.GetTimeout(); got != 30*time.Second {
		t.Errorf("fallback timeout = %v, want 30s", got)
	}
}
