package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/content"
	"github.com/storyspire/saarthi-api/internal/conversation"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/platform/llm"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator generation.TextGenerator
	extractor *content.Extractor
	relay     *conversation.Relay
}

// newApplication creates a new application instance with all dependencies
// initialized. A nil generator is built from cfg.LLM; tests pass a mock.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.TextGenerator,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	if generator == nil {
		generator, err = llm.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
		}
		logger.Info("LLM generator initialized successfully",
			"provider", cfg.LLM.Provider,
			"model", cfg.LLM.ModelName)
	}
	app.generator = generator

	timeout := time.Duration(cfg.LLM.RequestTimeoutSeconds) * time.Second

	app.extractor, err = content.NewExtractor(generator, logger, cfg.Content, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create content extractor: %w", err)
	}

	app.relay, err = conversation.NewRelay(generator, logger, cfg.Conversation, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation relay: %w", err)
	}

	logger.Info("Application initialized successfully",
		"max_count", cfg.Content.MaxCount,
		"dedupe_in_flight", cfg.Content.DedupeInFlight)
	return app, nil
}

// Run starts the HTTP server and blocks until it has shut down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
