package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Providers understood by Source.Provider.
const (
	ProviderMetalsDev = "metalsdev"
	ProviderYahoo     = "yahoo"
	ProviderMock      = "mock"
)

const (
	DefaultBaseURL         = "https://api.metals.dev/v1"
	DefaultCacheTTLSeconds = 3600
	DefaultTimeoutSeconds  = 30
)

// Config holds all application configuration.
type Config struct {
	Source struct {
		Provider       string `yaml:"provider"`
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"source"`
	Cache struct {
		TTLSeconds int    `yaml:"ttl_seconds"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(dir, "metalstack", "config.yaml")
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("METALS_API_KEY"); v != "" {
		cfg.Source.APIKey = v
	}
	if v := os.Getenv("METALSTACK_PROVIDER"); v != "" {
		cfg.Source.Provider = v
	}
	if v := os.Getenv("METALS_CACHE_TTL"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("METALS_CACHE_TTL: %w", err)
		}
		cfg.Cache.TTLSeconds = ttl
	}
	if v := os.Getenv("METALSTACK_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("METALSTACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Source.Provider == "" {
		cfg.Source.Provider = ProviderMetalsDev
	}
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = DefaultBaseURL
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = defaultDataDir()
	}
	if cfg.Cache.SQLitePath == "" {
		cfg.Cache.SQLitePath = filepath.Join(defaultCacheDir(), "cache.db")
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Data.Dir, "metalstack.log")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Source.Provider {
	case ProviderMetalsDev:
		if c.Source.APIKey == "" {
			return fmt.Errorf("source.api_key is required for %s: set METALS_API_KEY (get a free key at https://metals.dev)", ProviderMetalsDev)
		}
	case ProviderYahoo, ProviderMock:
	default:
		return fmt.Errorf("source.provider %q is not one of %s, %s, %s",
			c.Source.Provider, ProviderMetalsDev, ProviderYahoo, ProviderMock)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive")
	}
	if c.Source.TimeoutSeconds <= 0 {
		return fmt.Errorf("source.timeout_seconds must be positive")
	}
	return nil
}

// CacheTTL is the price refresh interval and response cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Timeout bounds a single HTTP request.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// CollectionPath is the holdings file.
func (c *Config) CollectionPath() string {
	return filepath.Join(c.Data.Dir, "collection.json")
}

// SettingsPath is the UI settings file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Data.Dir, "settings.json")
}

func defaultDataDir() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "metalstack")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data")
	}
	return filepath.Join(home, ".local", "share", "metalstack")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", "cache")
	}
	return filepath.Join(dir, "metalstack")
}
