package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avelasquez/homearr/internal/arr"
	"github.com/avelasquez/homearr/internal/config"
	"github.com/avelasquez/homearr/internal/shape"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check connectivity and health of configured services",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := config.SetupLogger(cfg.App.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println(styleHeader.Render("Services"))
	if cfg.Sonarr != nil {
		printService(ctx, "Sonarr", arr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey, logger))
	}
	if cfg.Radarr != nil {
		printService(ctx, "Radarr", arr.New(cfg.Radarr.URL, cfg.Radarr.APIKey, logger))
	}
	if cfg.App.ReadOnly {
		fmt.Println(styleDim.Render("Read-only mode: write tools disabled."))
	}
	return nil
}

func printService(ctx context.Context, name string, c *arr.Client) {
	ver, err := c.Version(ctx)
	if err != nil {
		fmt.Printf("%s %s\n", name, styleError.Render("unreachable: "+err.Error()))
		return
	}
	fmt.Printf("%s %s\n", name, styleSuccess.Render("v"+ver))

	var checks []*shape.Object
	if err := c.Get(ctx, "/api/v3/health", nil, &checks); err != nil {
		fmt.Println(styleDim.Render("   health unavailable: " + err.Error()))
		return
	}
	if len(checks) == 0 {
		fmt.Println(styleDim.Render("   no health issues"))
		return
	}
	for _, check := range checks {
		typ, _ := check.Get("type")
		msg, _ := check.Get("message")
		fmt.Printf("   %v: %v\n", typ, msg)
	}
}
