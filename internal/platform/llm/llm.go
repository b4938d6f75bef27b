// Package llm selects the text generation adapter named by the configuration.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/platform/gemini"
	"github.com/storyspire/saarthi-api/internal/platform/openai"
)

// NewGenerator builds the generator for cfg.Provider. An empty provider
// selects Gemini.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (generation.TextGenerator, error) {
	var (
		gen generation.TextGenerator
		err error
	)
	switch cfg.Provider {
	case config.ProviderGemini, "":
		gen, err = gemini.NewGenerator(ctx, logger, cfg)
	case config.ProviderOpenAI:
		gen, err = openai.NewGenerator(logger, cfg)
	default:
		err = fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}
