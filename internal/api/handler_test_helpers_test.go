package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/storyspire/saarthi-api/internal/api/middleware"
	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/content"
	"github.com/storyspire/saarthi-api/internal/conversation"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/platform/logger"
)

func testContentConfig() config.ContentConfig {
	return config.ContentConfig{
		MaxCount:          20,
		DefaultCount:      5,
		DefaultDifficulty: "intermediate",
		Sampling: config.SamplingConfig{
			Temperature:     0.9,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2000,
		},
	}
}

func testConversationConfig() config.ConversationConfig {
	return config.ConversationConfig{
		Sampling: config.SamplingConfig{
			Temperature:     0.8,
			TopP:            0.9,
			TopK:            40,
			MaxOutputTokens: 512,
		},
		MaxHistoryTurns: 10,
		DefaultLanguage: "en",
	}
}

// newTestRouter wires the handlers to a real extractor and relay that share gen.
func newTestRouter(t *testing.T, gen generation.TextGenerator, contentCfg config.ContentConfig) http.Handler {
	t.Helper()
	log := logger.Discard()

	extractor, err := content.NewExtractor(gen, log, contentCfg, time.Second)
	require.NoError(t, err)
	relay, err := conversation.NewRelay(gen, log, testConversationConfig(), time.Second)
	require.NoError(t, err)

	contentHandler := NewContentHandler(extractor, contentCfg, log)
	conversationHandler := NewConversationHandler(relay, log)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Post("/api/games/generate-content", contentHandler.GenerateContent)
	r.Post("/api/chat", conversationHandler.Chat)
	r.Get("/api/chat/topics", conversationHandler.Topics)
	r.Post("/api/translate", conversationHandler.Translate)
	r.Post("/api/grammar/correct", conversationHandler.CorrectGrammar)
	r.Post("/api/grammar/analyze", conversationHandler.AnalyzeGrammar)
	r.Get("/api/llm/ping", conversationHandler.Ping)
	r.Get("/health", Health)
	return r
}

// doJSON sends body (a string or a value to marshal) and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the response into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// decodeInto unmarshals the response into v.
func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}
