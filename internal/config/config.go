// Package config loads homearr configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Config is the full application configuration. A service is enabled when
// its section (or env pair) supplies both a URL and an API key.
type Config struct {
	Sonarr *ServiceConfig `yaml:"sonarr,omitempty"`
	Radarr *ServiceConfig `yaml:"radarr,omitempty"`
	App    AppConfig      `yaml:"app"`
}

// ServiceConfig is the connection configuration for one service.
type ServiceConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// ReadOnly disables every tool that mutates upstream state.
	ReadOnly bool `yaml:"read_only"`
	// MaxSummaryFields caps the scalar fields per item in list summaries.
	MaxSummaryFields int `yaml:"max_summary_fields"`
}

// Load reads the YAML file at path, applies environment overrides, and
// validates. A missing file is not an error: the original deployment style
// is environment-only, so the file is optional as long as the env supplies
// at least one service.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case os.IsNotExist(err):
		// env-only operation
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Sonarr = overrideService(c.Sonarr, "HOMEARR_SONARR_URL", "HOMEARR_SONARR_API_KEY")
	c.Radarr = overrideService(c.Radarr, "HOMEARR_RADARR_URL", "HOMEARR_RADARR_API_KEY")

	if v := os.Getenv("HOMEARR_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv("HOMEARR_READ_ONLY"); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes":
			c.App.ReadOnly = true
		}
	}
	if v := os.Getenv("HOMEARR_MAX_SUMMARY_FIELDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.App.MaxSummaryFields = n
		}
	}
}

func overrideService(sc *ServiceConfig, urlVar, keyVar string) *ServiceConfig {
	urlEnv := strings.TrimSpace(os.Getenv(urlVar))
	keyEnv := strings.TrimSpace(os.Getenv(keyVar))
	if urlEnv == "" && keyEnv == "" {
		return sc
	}
	if sc == nil {
		sc = &ServiceConfig{}
	}
	if urlEnv != "" {
		sc.URL = urlEnv
	}
	if keyEnv != "" {
		sc.APIKey = keyEnv
	}
	return sc
}

// Validate checks service sections, drops incomplete ones with an error,
// and fills defaults.
func (c *Config) Validate() error {
	for name, sc := range map[string]*ServiceConfig{"sonarr": c.Sonarr, "radarr": c.Radarr} {
		if sc == nil {
			continue
		}
		if sc.URL == "" || sc.APIKey == "" {
			return fmt.Errorf("%s is partially configured: both url and api_key are required", name)
		}
		sc.URL = strings.TrimRight(sc.URL, "/")
	}

	if c.Sonarr == nil && c.Radarr == nil {
		return fmt.Errorf("at least one service (sonarr, radarr) must be configured")
	}

	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.MaxSummaryFields <= 0 {
		c.App.MaxSummaryFields = 10
	}
	return nil
}
