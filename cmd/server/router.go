package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/storyspire/saarthi-api/internal/api"
	apiMiddleware "github.com/storyspire/saarthi-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	contentHandler := api.NewContentHandler(app.extractor, app.config.Content, app.logger)
	conversationHandler := api.NewConversationHandler(app.relay, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/games/generate-content", contentHandler.GenerateContent)

		r.Post("/chat", conversationHandler.Chat)
		r.Get("/chat/topics", conversationHandler.Topics)
		r.Post("/translate", conversationHandler.Translate)
		r.Post("/grammar/correct", conversationHandler.CorrectGrammar)
		r.Post("/grammar/analyze", conversationHandler.AnalyzeGrammar)

		r.Get("/llm/ping", conversationHandler.Ping)
	})

	r.Get("/health", api.Health)

	return r
}
