package conversation

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/domain"
	"github.com/storyspire/saarthi-api/internal/extract"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/redact"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var templates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// Common errors
var (
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
)

// PingPrompt is the instruction sent by Ping.
const PingPrompt = "Say just 'CONNECTION TEST SUCCESS'"

// Sampling for the grammar operations, which need less creativity than chat.
var (
	correctionSampling = generation.Sampling{Temperature: 0.7, TopP: 0.8, TopK: 40}
	analysisSampling   = generation.Sampling{Temperature: 0.3}
	translateSampling  = generation.Sampling{Temperature: 0.3}
)

// Roles a history turn can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one earlier message in a conversation.
type Turn struct {
	Role string
	Text string
}

// ChatRequest is a learner message plus the scene it belongs to.
type ChatRequest struct {
	Topic    string
	Context  string
	History  []Turn
	Message  string
	Language string
}

// Reply is the text to show the learner.
type Reply struct {
	Text     string
	Fallback bool
	Reason   error
}

// TranslateRequest asks for text to be translated between two languages,
// given as BCP 47 codes or plain names.
type TranslateRequest struct {
	Text string
	From string
	To   string
}

// GrammarIssue is one correction found in a message.
type GrammarIssue struct {
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation"`
}

// Suggestion is a more natural way to say something.
type Suggestion struct {
	Message   string `json:"message"`
	BetterWay string `json:"betterWay"`
}

// Analysis is the structured grammar feedback for a message.
type Analysis struct {
	CorrectedText   string         `json:"correctedText"`
	GrammarAnalysis []GrammarIssue `json:"grammarAnalysis"`
	Suggestions     []Suggestion   `json:"suggestions"`

	Fallback bool  `json:"-"`
	Reason   error `json:"-"`
}

// Relay forwards conversation requests to the text generator.
type Relay struct {
	generator  generation.TextGenerator
	logger     *slog.Logger
	sampling   generation.Sampling
	maxHistory int
	language   language.Tag
	timeout    time.Duration
}

// NewRelay creates a Relay. A zero timeout leaves upstream calls bounded only
// by the caller's context.
func NewRelay(
	generator generation.TextGenerator,
	logger *slog.Logger,
	cfg config.ConversationConfig,
	timeout time.Duration,
) (*Relay, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	tag := language.English
	if cfg.DefaultLanguage != "" {
		parsed, err := language.Parse(cfg.DefaultLanguage)
		if err != nil {
			return nil, fmt.Errorf("%w: default language %q: %v", generation.ErrInvalidConfig, cfg.DefaultLanguage, err)
		}
		tag = parsed
	}

	return &Relay{
		generator: generator,
		logger:    logger.With("component", "conversation_relay"),
		sampling: generation.Sampling{
			Temperature:     cfg.Sampling.Temperature,
			TopP:            cfg.Sampling.TopP,
			TopK:            cfg.Sampling.TopK,
			MaxOutputTokens: cfg.Sampling.MaxOutputTokens,
		},
		maxHistory: cfg.MaxHistoryTurns,
		language:   tag,
		timeout:    timeout,
	}, nil
}

// Reply generates the next message in a role-play conversation. The only
// error is domain.ErrInvalidRequest for an empty message.
func (r *Relay) Reply(ctx context.Context, req ChatRequest) (Reply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Reply{}, fmt.Errorf("%w: message cannot be empty", domain.ErrInvalidRequest)
	}

	lang := req.Language
	if strings.TrimSpace(lang) == "" {
		lang = r.language.String()
	}

	history := req.History
	if r.maxHistory >= 0 && len(history) > r.maxHistory {
		history = history[len(history)-r.maxHistory:]
	}
	lines := make([]historyLine, 0, len(history))
	for _, turn := range history {
		text := strings.TrimSpace(turn.Text)
		if text == "" {
			continue
		}
		lines = append(lines, historyLine{Speaker: speakerFor(turn.Role), Text: text})
	}

	prompt, err := render("chat.tmpl", map[string]any{
		"Persona":  personaFor(req.Topic),
		"Context":  strings.TrimSpace(req.Context),
		"History":  lines,
		"Message":  message,
		"Language": languageName(lang),
	})
	if err != nil {
		return r.cannedReply(ctx, lang, len(req.History), err), nil
	}

	text, err := r.call(ctx, prompt, r.sampling)
	if err != nil {
		return r.cannedReply(ctx, lang, len(req.History), err), nil
	}
	return Reply{Text: text}, nil
}

// Translate translates req.Text. On failure the source text is returned and
// flagged as a fallback.
func (r *Relay) Translate(ctx context.Context, req TranslateRequest) (Reply, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Reply{}, fmt.Errorf("%w: text cannot be empty", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.To) == "" {
		return Reply{}, fmt.Errorf("%w: target language cannot be empty", domain.ErrInvalidRequest)
	}

	prompt, err := render("translate.tmpl", map[string]any{
		"Text": text,
		"From": languageName(req.From),
		"To":   languageName(req.To),
	})
	if err != nil {
		return r.passthrough(ctx, "translate", text, err), nil
	}

	out, err := r.call(ctx, prompt, r.withMaxTokens(translateSampling))
	if err != nil {
		return r.passthrough(ctx, "translate", text, err), nil
	}
	return Reply{Text: unquote(out)}, nil
}

// CorrectGrammar returns text with grammar and spelling fixed. On failure the
// original text is returned and flagged as a fallback.
func (r *Relay) CorrectGrammar(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, fmt.Errorf("%w: text cannot be empty", domain.ErrInvalidRequest)
	}

	prompt, err := render("correct.tmpl", map[string]any{"Text": text})
	if err != nil {
		return r.passthrough(ctx, "correct_grammar", text, err), nil
	}

	out, err := r.call(ctx, prompt, r.withMaxTokens(correctionSampling))
	if err != nil {
		return r.passthrough(ctx, "correct_grammar", text, err), nil
	}
	return Reply{Text: unquote(out)}, nil
}

// AnalyzeGrammar returns structured feedback on text. When the model answers
// but its analysis cannot be recovered, a plain correction is requested
// instead; when the model cannot be reached the text comes back unchanged.
// Either way the lists are empty and the result is flagged as a fallback.
func (r *Relay) AnalyzeGrammar(ctx context.Context, text string) (Analysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Analysis{}, fmt.Errorf("%w: text cannot be empty", domain.ErrInvalidRequest)
	}

	prompt, err := render("analyze.tmpl", map[string]any{"Text": text})
	if err != nil {
		return r.analysisFallback(ctx, text, err, false), nil
	}

	raw, err := r.call(ctx, prompt, r.withMaxTokens(analysisSampling))
	if err != nil {
		return r.analysisFallback(ctx, text, err, false), nil
	}

	obj, err := extract.Object(raw, func(stage, cleaned string) {
		r.logger.DebugContext(ctx, "extraction stage", "operation", "analyze_grammar", "stage", stage, "text", cleaned)
	})
	if err != nil {
		return r.analysisFallback(ctx, text, err, true), nil
	}
	analysis, err := decodeAnalysis(obj)
	if err != nil {
		return r.analysisFallback(ctx, text, err, true), nil
	}
	return analysis, nil
}

// Ping makes one short call to prove the generator is reachable and the
// credentials are accepted.
func (r *Relay) Ping(ctx context.Context) (string, error) {
	return r.call(ctx, PingPrompt, generation.Sampling{})
}

// call runs one upstream request and returns its trimmed, non-empty text.
func (r *Relay) call(ctx context.Context, prompt string, sampling generation.Sampling) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.generator.GenerateText(ctx, generation.TextRequest{Prompt: prompt, Sampling: sampling})
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty reply", generation.ErrInvalidResponse)
	}
	return out, nil
}

func (r *Relay) withMaxTokens(s generation.Sampling) generation.Sampling {
	s.MaxOutputTokens = r.sampling.MaxOutputTokens
	return s
}

func (r *Relay) cannedReply(ctx context.Context, lang string, turn int, reason error) Reply {
	r.logger.WarnContext(ctx, "serving canned reply",
		"language", lang,
		"reason", redact.Error(reason))
	return Reply{Text: cannedReply(lang, r.language, turn), Fallback: true, Reason: reason}
}

func (r *Relay) passthrough(ctx context.Context, operation, text string, reason error) Reply {
	r.logger.WarnContext(ctx, "returning source text unchanged",
		"operation", operation,
		"reason", redact.Error(reason))
	return Reply{Text: text, Fallback: true, Reason: reason}
}

func (r *Relay) analysisFallback(ctx context.Context, text string, reason error, reachable bool) Analysis {
	r.logger.WarnContext(ctx, "grammar analysis unavailable",
		"upstream_failure", !reachable,
		"reason", redact.Error(reason))

	corrected := text
	if reachable {
		if c, err := r.CorrectGrammar(ctx, text); err == nil {
			corrected = c.Text
		}
	}
	return Analysis{
		CorrectedText:   corrected,
		GrammarAnalysis: []GrammarIssue{},
		Suggestions:     []Suggestion{},
		Fallback:        true,
		Reason:          reason,
	}
}

func decodeAnalysis(obj gjson.Result) (Analysis, error) {
	corrected := obj.Get("correctedText")
	if corrected.Type != gjson.String || strings.TrimSpace(corrected.Str) == "" {
		return Analysis{}, fmt.Errorf("%w: missing correctedText", extract.ErrWrongShape)
	}

	a := Analysis{
		CorrectedText:   strings.TrimSpace(corrected.Str),
		GrammarAnalysis: []GrammarIssue{},
		Suggestions:     []Suggestion{},
	}
	obj.Get("grammarAnalysis").ForEach(func(_, v gjson.Result) bool {
		issue := GrammarIssue{
			Original:    v.Get("original").String(),
			Corrected:   v.Get("corrected").String(),
			Explanation: v.Get("explanation").String(),
		}
		if v.IsObject() && issue.Original != "" && issue.Corrected != "" {
			a.GrammarAnalysis = append(a.GrammarAnalysis, issue)
		}
		return true
	})
	obj.Get("suggestions").ForEach(func(_, v gjson.Result) bool {
		s := Suggestion{
			Message:   v.Get("message").String(),
			BetterWay: v.Get("betterWay").String(),
		}
		if v.IsObject() && s.Message != "" {
			a.Suggestions = append(a.Suggestions, s)
		}
		return true
	})
	return a, nil
}

type historyLine struct {
	Speaker string
	Text    string
}

func speakerFor(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleUser) {
		return "Student"
	}
	return "You"
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", name, err)
	}
	return buf.String(), nil
}

// unquote removes one pair of double quotes wrapping the whole text, which
// models often add when echoing a quoted sentence.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
