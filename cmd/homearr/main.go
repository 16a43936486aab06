package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "homearr",
		Short: "MCP server for Sonarr and Radarr",
		Long: "Homearr exposes a Sonarr and Radarr home media library as MCP tools\n" +
			"over stdio, so AI agents can browse, search, and manage it.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (optional, environment variables alone work too)")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newStatusCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("homearr v%s\n", version)
		},
	}
}
