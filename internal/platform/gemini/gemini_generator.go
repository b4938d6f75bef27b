package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/redact"
)

const providerName = "gemini"

// modelsAPI is the subset of *genai.Models the generator uses.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.TextGenerator using the Gemini API.
type Generator struct {
	logger *slog.Logger
	models modelsAPI
	model  string
}

var _ generation.TextGenerator = (*Generator)(nil)

// NewGenerator creates the Gemini client and returns a ready Generator.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %s",
			generation.ErrInvalidConfig, redact.Error(err))
	}

	return newGenerator(logger, client.Models, cfg.ModelName), nil
}

func newGenerator(logger *slog.Logger, models modelsAPI, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		logger: logger.With("component", "gemini_generator", "model", model),
		models: models,
		model:  model,
	}
}

// GenerateText sends one prompt to the model and returns the concatenated
// text of the first candidate.
func (g *Generator) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), contentConfig(req.Sampling))
	if err != nil {
		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"duration_ms", time.Since(start).Milliseconds(),
			"error", redact.Error(err))
		return "", generation.Unavailable(providerName, errors.New(redact.Error(err)))
	}

	text, err := responseText(resp)
	if err != nil {
		g.logger.WarnContext(ctx, "unusable Gemini response", "error", err)
		return "", err
	}

	g.logger.DebugContext(ctx, "Gemini API call succeeded",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(text))
	return text, nil
}

// contentConfig maps sampling settings onto the request config. Zero values
// are left unset so the model default applies.
func contentConfig(s generation.Sampling) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if s.Temperature > 0 {
		cfg.Temperature = genai.Ptr(s.Temperature)
	}
	if s.TopP > 0 {
		cfg.TopP = genai.Ptr(s.TopP)
	}
	if s.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(s.TopK))
	}
	if s.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(s.MaxOutputTokens)
	}
	return cfg
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: stopped by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: no text in response", generation.ErrInvalidResponse)
	}
	return b.String(), nil
}
