package main

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/charmbracelet/lipgloss"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/config"
	mcpserver "github.com/avelasquez/homearr/internal/mcp"
)

// Lipgloss styles used across commands.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5")).
			MarginBottom(1)
)

// loadConfig loads and validates the configuration.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// initClients creates an upstream client per configured service.
func initClients(cfg *config.Config, logger *slog.Logger) mcpserver.Deps {
	var deps mcpserver.Deps
	if cfg.Sonarr != nil {
		deps.Sonarr = arr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey, logger)
		logger.Info("Sonarr client initialized", slog.String("url", sanitizeURL(cfg.Sonarr.URL)))
	}
	if cfg.Radarr != nil {
		deps.Radarr = arr.New(cfg.Radarr.URL, cfg.Radarr.APIKey, logger)
		logger.Info("Radarr client initialized", slog.String("url", sanitizeURL(cfg.Radarr.URL)))
	}
	return deps
}

// sanitizeURL strips credentials, query params, and fragment from a URL for safe logging.
func sanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
