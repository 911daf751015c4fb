package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"METALS_API_KEY", "METALSTACK_PROVIDER", "METALS_CACHE_TTL",
		"METALSTACK_DATA_DIR", "METALSTACK_LOG_LEVEL", "HTTPS_PROXY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source.Provider != ProviderMetalsDev {
		t.Errorf("expected default provider, got %q", cfg.Source.Provider)
	}
	if cfg.CacheTTL() != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.CacheTTL())
	}
	if cfg.Source.BaseURL != DefaultBaseURL {
		t.Errorf("unexpected base url %q", cfg.Source.BaseURL)
	}
	if !strings.HasSuffix(cfg.Log.File, "metalstack.log") {
		t.Errorf("unexpected log file %q", cfg.Log.File)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "source:\n  provider: yahoo\n  api_key: from-file\ncache:\n  ttl_seconds: 120\ndata:\n  dir: " + dir + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	t.Setenv("METALS_API_KEY", "from-env")
	t.Setenv("METALS_CACHE_TTL", "60")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source.Provider != ProviderYahoo {
		t.Errorf("expected yahoo provider, got %q", cfg.Source.Provider)
	}
	if cfg.Source.APIKey != "from-env" {
		t.Errorf("env should override file api key, got %q", cfg.Source.APIKey)
	}
	if cfg.CacheTTL() != time.Minute {
		t.Errorf("expected env ttl of 1m, got %v", cfg.CacheTTL())
	}
	if cfg.CollectionPath() != filepath.Join(dir, "collection.json") {
		t.Errorf("unexpected collection path %q", cfg.CollectionPath())
	}
}

func TestLoad_BadTTLEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("METALS_CACHE_TTL", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Fatal("expected error for non-numeric METALS_CACHE_TTL")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("source: [unclosed"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		ttl      int
		wantErr  string
	}{
		{"metalsdev needs key", ProviderMetalsDev, "", 3600, "METALS_API_KEY"},
		{"metalsdev with key", ProviderMetalsDev, "k", 3600, ""},
		{"yahoo without key", ProviderYahoo, "", 3600, ""},
		{"unknown provider", "kitco", "", 3600, "not one of"},
		{"non-positive ttl", ProviderMock, "", -5, "ttl_seconds"},
	}
	for _, tt := range tests {
		cfg := &Config{}
		cfg.Source.Provider = tt.provider
		cfg.Source.APIKey = tt.key
		cfg.Source.TimeoutSeconds = 30
		cfg.Cache.TTLSeconds = tt.ttl
		err := cfg.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.wantErr, err)
		}
	}
}
