package api

import (
	"github.com/storyspire/saarthi-api/internal/conversation"
	"github.com/storyspire/saarthi-api/internal/domain"
)

// Common request/response structures

// GenerateContentRequest defines the payload for the game content endpoint.
// Difficulty and Count fall back to the configured defaults when omitted.
type GenerateContentRequest struct {
	GameType   string `json:"gameType"   validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,max=40"`
	Count      *int   `json:"count"      validate:"omitempty,gte=1"`
}

// DebugInfo exposes the model text around a failed extraction. It is only
// sent when debug responses are enabled.
type DebugInfo struct {
	Raw     string `json:"raw"`
	Cleaned string `json:"cleaned"`
}

// GenerateContentResponse is returned by the game content endpoint. On
// success Content holds the generated batch; when generation was absorbed
// Success is false, Error names the reason and Fallback holds static content.
type GenerateContentResponse struct {
	Success  bool                 `json:"success"`
	Content  *domain.ContentBatch `json:"content,omitempty"`
	Fallback *domain.ContentBatch `json:"fallback,omitempty"`
	Source   string               `json:"source"`
	Error    string               `json:"error,omitempty"`
	Debug    *DebugInfo           `json:"debug,omitempty"`
}

// HistoryTurn is one earlier message sent with a chat request.
type HistoryTurn struct {
	Role string `json:"role" validate:"required,oneof=user assistant"`
	Text string `json:"text" validate:"required"`
}

// ChatRequest defines the payload for the chat endpoint.
type ChatRequest struct {
	Topic    string        `json:"topic"    validate:"omitempty,max=64"`
	Context  string        `json:"context"  validate:"omitempty,max=2000"`
	History  []HistoryTurn `json:"history"  validate:"omitempty,max=100,dive"`
	Message  string        `json:"message"  validate:"required,max=4000"`
	Language string        `json:"language" validate:"omitempty,bcp47_language_tag"`
}

// toRelay converts the payload into the relay's request type.
func (r ChatRequest) toRelay() conversation.ChatRequest {
	history := make([]conversation.Turn, 0, len(r.History))
	for _, turn := range r.History {
		history = append(history, conversation.Turn{Role: turn.Role, Text: turn.Text})
	}
	return conversation.ChatRequest{
		Topic:    r.Topic,
		Context:  r.Context,
		History:  history,
		Message:  r.Message,
		Language: r.Language,
	}
}

// ChatResponse is returned by the chat endpoint.
type ChatResponse struct {
	Response string `json:"response"`
	Fallback bool   `json:"fallback"`
}

// TranslateRequest defines the payload for the translation endpoint. The
// languages may be BCP 47 codes or plain names.
type TranslateRequest struct {
	Text     string `json:"text"     validate:"required,max=4000"`
	FromLang string `json:"fromLang" validate:"omitempty,max=40"`
	ToLang   string `json:"toLang"   validate:"required,max=40"`
}

// TranslateResponse is returned by the translation endpoint.
type TranslateResponse struct {
	Translation string `json:"translation"`
	Fallback    bool   `json:"fallback"`
}

// GrammarRequest defines the payload for both grammar endpoints.
type GrammarRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// GrammarCorrectionResponse is returned by the grammar correction endpoint.
type GrammarCorrectionResponse struct {
	CorrectedText string `json:"correctedText"`
	Fallback      bool   `json:"fallback"`
}

// GrammarAnalysisResponse is returned by the grammar analysis endpoint.
type GrammarAnalysisResponse struct {
	conversation.Analysis
	Fallback bool `json:"fallback"`
}

// PingResponse is returned by the upstream connectivity check.
type PingResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}

// TopicsResponse lists the conversation topics with a dedicated persona.
type TopicsResponse struct {
	Topics []string `json:"topics"`
}
