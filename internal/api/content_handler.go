package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storyspire/saarthi-api/internal/api/shared"
	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/content"
	"github.com/storyspire/saarthi-api/internal/domain"
	"github.com/storyspire/saarthi-api/internal/extract"
)

// ContentGenerator produces batches of game content.
type ContentGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (content.Result, error)
}

// ContentHandler serves the game content endpoint.
type ContentHandler struct {
	generator ContentGenerator
	defaults  config.ContentConfig
	logger    *slog.Logger
}

// NewContentHandler creates a new ContentHandler. Defaults and the debug
// switch come from cfg.
func NewContentHandler(generator ContentGenerator, cfg config.ContentConfig, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentHandler{
		generator: generator,
		defaults:  cfg,
		logger:    logger.With("component", "content_handler"),
	}
}

// GenerateContent handles POST /api/games/generate-content.
//
// A batch produced from static content still answers 200; the front end
// reads success=false and shows the fallback items.
func (h *ContentHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req GenerateContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = h.defaults.DefaultDifficulty
	}
	count := h.defaults.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}

	genReq, err := domain.NewGenerationRequest(req.GameType, difficulty, count)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.generator.Generate(r.Context(), genReq)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate content")
		return
	}

	batch := result.Batch
	if !result.IsFallback() {
		shared.RespondWithJSON(w, r, http.StatusOK, GenerateContentResponse{
			Success: true,
			Content: &batch,
			Source:  string(result.Source),
		})
		return
	}

	resp := GenerateContentResponse{
		Success:  false,
		Fallback: &batch,
		Source:   string(result.Source),
		Error:    fallbackMessage(result.Reason),
	}
	if h.defaults.DebugResponses {
		resp.Debug = &DebugInfo{Raw: result.Raw, Cleaned: result.Cleaned}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// fallbackMessage describes why static content was served.
func fallbackMessage(reason error) string {
	if errors.Is(reason, extract.ErrUnparseableOutput) {
		return "Failed to parse generated content"
	}
	return GetSafeErrorMessage(reason)
}
