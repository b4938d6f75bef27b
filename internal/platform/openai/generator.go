package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/redact"
)

const providerName = "openai"

// chatAPI is the subset of *gopenai.Client the generator uses.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req gopenai.ChatCompletionRequest) (gopenai.ChatCompletionResponse, error)
}

// Generator implements generation.TextGenerator for OpenAI-compatible servers.
type Generator struct {
	logger *slog.Logger
	client chatAPI
	model  string
}

var _ generation.TextGenerator = (*Generator)(nil)

// NewGenerator builds a chat completions client from cfg.
func NewGenerator(logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	transportCfg := gopenai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		transportCfg.BaseURL = strings.TrimRight(cfg.OpenAIBaseURL, "/")
	}
	if cfg.RequestTimeoutSeconds > 0 {
		transportCfg.HTTPClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}
	}

	return &Generator{
		logger: logger.With("component", "openai_generator", "model", cfg.ModelName),
		client: gopenai.NewClientWithConfig(transportCfg),
		model:  cfg.ModelName,
	}, nil
}

// GenerateText sends the prompt as a single user message.
func (g *Generator) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []gopenai.ChatCompletionMessage{
			{Role: gopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Sampling.Temperature,
		TopP:        req.Sampling.TopP,
		MaxTokens:   req.Sampling.MaxOutputTokens,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "chat completion failed",
			"duration_ms", time.Since(start).Milliseconds(),
			"error", redact.Error(err))
		return "", generation.Unavailable(providerName, errors.New(redact.Error(err)))
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", generation.ErrInvalidResponse)
	}
	choice := resp.Choices[0]
	if choice.FinishReason == gopenai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: stopped by content filter", generation.ErrContentBlocked)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("%w: no text in response", generation.ErrInvalidResponse)
	}

	g.logger.DebugContext(ctx, "chat completion succeeded",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_length", len(choice.Message.Content))
	return choice.Message.Content, nil
}
