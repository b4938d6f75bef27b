package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/storyspire/saarthi-api/internal/api/shared"
	"github.com/storyspire/saarthi-api/internal/conversation"
	"github.com/storyspire/saarthi-api/internal/redact"
)

// ConversationService is the set of relay operations the handlers expose.
type ConversationService interface {
	Reply(ctx context.Context, req conversation.ChatRequest) (conversation.Reply, error)
	Translate(ctx context.Context, req conversation.TranslateRequest) (conversation.Reply, error)
	CorrectGrammar(ctx context.Context, text string) (conversation.Reply, error)
	AnalyzeGrammar(ctx context.Context, text string) (conversation.Analysis, error)
	Ping(ctx context.Context) (string, error)
}

// ConversationHandler serves the chat, translation and grammar endpoints.
type ConversationHandler struct {
	relay  ConversationService
	logger *slog.Logger
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(relay ConversationService, logger *slog.Logger) *ConversationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConversationHandler{
		relay:  relay,
		logger: logger.With("component", "conversation_handler"),
	}
}

// decodeAndValidate reads the body into v and runs its validation rules. It
// writes the error response itself and reports whether the caller may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

// Chat handles POST /api/chat.
func (h *ConversationHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reply, err := h.relay.Reply(r.Context(), req.toRelay())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate a reply")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChatResponse{
		Response: reply.Text,
		Fallback: reply.Fallback,
	})
}

// Translate handles POST /api/translate.
func (h *ConversationHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reply, err := h.relay.Translate(r.Context(), conversation.TranslateRequest{
		Text: req.Text,
		From: req.FromLang,
		To:   req.ToLang,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to translate text")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TranslateResponse{
		Translation: reply.Text,
		Fallback:    reply.Fallback,
	})
}

// CorrectGrammar handles POST /api/grammar/correct.
func (h *ConversationHandler) CorrectGrammar(w http.ResponseWriter, r *http.Request) {
	var req GrammarRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reply, err := h.relay.CorrectGrammar(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to correct text")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GrammarCorrectionResponse{
		CorrectedText: reply.Text,
		Fallback:      reply.Fallback,
	})
}

// AnalyzeGrammar handles POST /api/grammar/analyze.
func (h *ConversationHandler) AnalyzeGrammar(w http.ResponseWriter, r *http.Request) {
	var req GrammarRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	analysis, err := h.relay.AnalyzeGrammar(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to analyze text")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GrammarAnalysisResponse{
		Analysis: analysis,
		Fallback: analysis.Fallback,
	})
}

// Topics handles GET /api/chat/topics.
func (h *ConversationHandler) Topics(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, TopicsResponse{Topics: conversation.Topics()})
}

// Ping handles GET /api/llm/ping. An unreachable model is reported in the
// body with the status its error maps to.
func (h *ConversationHandler) Ping(w http.ResponseWriter, r *http.Request) {
	text, err := h.relay.Ping(r.Context())
	if err != nil {
		status := MapErrorToStatusCode(err)
		h.logger.WarnContext(r.Context(), "llm ping failed",
			"status_code", status,
			"error", redact.Error(err),
			"trace_id", shared.GetTraceID(r.Context()))
		shared.RespondWithJSON(w, r, status, PingResponse{
			Success: false,
			Error:   GetSafeErrorMessage(err),
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PingResponse{Success: true, Response: text})
}
