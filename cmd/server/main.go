// Package main implements the entry point for the Saarthi API server, which
// generates English-learning game content and relays practice conversations
// to a large language model.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/platform/logger"
)

// main is the entry point for the saarthi-api server.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml when present)")
	flag.Parse()

	if err := run(context.Background(), *configPath); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run loads configuration, builds the application and serves until a
// shutdown signal arrives.
func run(ctx context.Context, configPath string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	app, err := newApplication(ctx, cfg, l, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadAppConfig loads the application configuration from environment
// variables and an optional config file.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.ModelName)

	return cfg, nil
}
