// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for WorldPulse. The default command runs
// the web server with the trend poller and the editorial desk; generate and
// trends run a single pipeline step from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"worldpulse/internal/config"
	"worldpulse/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "worldpulse",
	Short: "AI-driven global news desk",
	Long: `WorldPulse serves an automatically curated news site.

Running without a subcommand is the same as "worldpulse serve".`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file (overrides "+config.FileEnv+")")
	rootCmd.AddCommand(serveCmd, generateCmd, trendsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the default logger.
// Logs go to stderr so one-shot commands keep stdout for their JSON output.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		if err := os.Setenv(config.FileEnv, configPath); err != nil {
			return nil, fmt.Errorf("set %s: %w", config.FileEnv, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, !cfg.IsDev()))
	return cfg, nil
}
