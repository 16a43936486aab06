package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/config"
	mcpserver "github.com/avelasquez/homearr/internal/mcp"
)

const probeTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: "Start the MCP server, speaking the protocol on stdin/stdout.\n" +
			"Logs go to stderr so they never corrupt the protocol stream.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := config.SetupLogger(cfg.App.LogLevel)
			deps := initClients(cfg, logger)

			// Probing at startup surfaces a bad URL or API key early, but
			// an unreachable service is not fatal: it may come up later.
			probe(cmd.Context(), "sonarr", deps.Sonarr, logger)
			probe(cmd.Context(), "radarr", deps.Radarr, logger)

			srv := mcpserver.NewServer(deps, mcpserver.Options{
				ReadOnly:         cfg.App.ReadOnly,
				MaxSummaryFields: cfg.App.MaxSummaryFields,
			}, logger)
			return srv.ServeStdio(cmd.Context())
		},
	}
}

func probe(ctx context.Context, name string, c *arr.Client, logger *slog.Logger) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	ver, err := c.Version(ctx)
	if err != nil {
		logger.Warn("service unreachable, continuing anyway",
			slog.String("service", name), slog.String("error", err.Error()))
		return
	}
	logger.Info("service reachable", slog.String("service", name), slog.String("version", ver))
}
