package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/storyspire/saarthi-api/internal/config"
	"github.com/storyspire/saarthi-api/internal/domain"
	"github.com/storyspire/saarthi-api/internal/extract"
	"github.com/storyspire/saarthi-api/internal/generation"
	"github.com/storyspire/saarthi-api/internal/redact"
)

// Common errors
var (
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")

	// ErrNoValidRecords is the fallback reason when the list parsed but every
	// record failed validation.
	ErrNoValidRecords = fmt.Errorf("%w: no valid records", extract.ErrUnparseableOutput)
)

// Source tells where the items of a Result came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Result is the outcome of one Generate call.
type Result struct {
	Batch  domain.ContentBatch
	Source Source

	// Reason is the absorbed failure when Source is SourceFallback.
	Reason error

	// Raw and Cleaned are the model text before and after recovery. Both are
	// empty when no model output was received.
	Raw     string
	Cleaned string
}

// IsFallback reports whether the batch is static fallback content.
func (r Result) IsFallback() bool {
	return r.Source == SourceFallback
}

// Extractor produces batches of learning content.
type Extractor struct {
	generator generation.TextGenerator
	logger    *slog.Logger
	prompts   *prompts
	fallbacks fallbacks
	sampling  generation.Sampling
	maxCount  int
	timeout   time.Duration
	dedupe    bool
	group     singleflight.Group
}

// NewExtractor creates an Extractor. It loads and validates the prompt
// templates and the fallback content, so a broken deployment fails here
// rather than on the first request. A zero timeout leaves upstream calls
// bounded only by the caller's context.
func NewExtractor(
	generator generation.TextGenerator,
	logger *slog.Logger,
	cfg config.ContentConfig,
	timeout time.Duration,
) (*Extractor, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if cfg.MaxCount < 1 {
		return nil, fmt.Errorf("%w: max count must be at least 1", generation.ErrInvalidConfig)
	}

	p, err := loadPrompts(cfg.PromptDir)
	if err != nil {
		return nil, err
	}
	fb, err := loadFallbacks(fallbackYAML)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		generator: generator,
		logger:    logger.With("component", "content_extractor"),
		prompts:   p,
		fallbacks: fb,
		sampling: generation.Sampling{
			Temperature:     cfg.Sampling.Temperature,
			TopP:            cfg.Sampling.TopP,
			TopK:            cfg.Sampling.TopK,
			MaxOutputTokens: cfg.Sampling.MaxOutputTokens,
		},
		maxCount: cfg.MaxCount,
		timeout:  timeout,
		dedupe:   cfg.DedupeInFlight,
	}, nil
}

// MaxCount returns the largest batch size Generate will produce.
func (e *Extractor) MaxCount() int {
	return e.maxCount
}

// Generate returns a batch of at most req.Count items of req.Kind. Counts
// above MaxCount are clamped. The only error is domain.ErrInvalidRequest,
// returned before any upstream call; every other failure is absorbed into a
// fallback Result.
func (e *Extractor) Generate(ctx context.Context, req domain.GenerationRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if req.Count > e.maxCount {
		e.logger.DebugContext(ctx, "clamping requested count",
			"requested", req.Count, "max", e.maxCount)
		req.Count = e.maxCount
	}

	if !e.dedupe {
		return e.run(ctx, req), nil
	}

	// Shared calls are detached from any single caller so that one client
	// going away does not cancel the others.
	ch := e.group.DoChan(req.Signature(), func() (any, error) {
		return e.run(context.WithoutCancel(ctx), req), nil
	})
	select {
	case res := <-ch:
		if res.Shared {
			e.logger.DebugContext(ctx, "shared in-flight generation", "signature", req.Signature())
		}
		return res.Val.(Result), nil
	case <-ctx.Done():
		return e.fallback(ctx, req, fmt.Errorf("%w: %w", generation.ErrUpstreamUnavailable, ctx.Err()), "", ""), nil
	}
}

// run performs one prompt, call and recovery cycle.
func (e *Extractor) run(ctx context.Context, req domain.GenerationRequest) Result {
	log := e.logger.With("kind", req.Kind, "difficulty", req.Difficulty, "count", req.Count)

	prompt, err := e.prompts.render(req)
	if err != nil {
		return e.fallback(ctx, req, err, "", "")
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := e.generator.GenerateText(ctx, generation.TextRequest{Prompt: prompt, Sampling: e.sampling})
	if err != nil {
		return e.fallback(ctx, req, err, "", "")
	}
	log.DebugContext(ctx, "received model output",
		"duration_ms", time.Since(start).Milliseconds(),
		"raw", raw)

	list, err := extract.List(raw, func(stage, text string) {
		log.DebugContext(ctx, "extraction stage", "stage", stage, "text", text)
	})
	if err != nil {
		return e.fallback(ctx, req, err, raw, list.Cleaned)
	}
	if list.Recovered {
		log.InfoContext(ctx, "model output needed permissive recovery")
	}

	items := make([]domain.ContentItem, 0, min(len(list.Records), req.Count))
	for i, rec := range list.Records {
		if len(items) == req.Count {
			break
		}
		item, err := decodeRecord(req.Kind, rec)
		if err != nil {
			log.DebugContext(ctx, "dropping invalid record", "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return e.fallback(ctx, req, ErrNoValidRecords, raw, list.Cleaned)
	}

	log.InfoContext(ctx, "generated content",
		"records", len(list.Records),
		"items", len(items))

	return Result{
		Batch:   domain.ContentBatch{Kind: req.Kind, Items: items},
		Source:  SourceGenerated,
		Raw:     raw,
		Cleaned: list.Cleaned,
	}
}

func (e *Extractor) fallback(ctx context.Context, req domain.GenerationRequest, reason error, raw, cleaned string) Result {
	e.logger.WarnContext(ctx, "serving fallback content",
		"kind", req.Kind,
		"count", req.Count,
		"upstream_failure", generation.IsUpstreamFailure(reason),
		"reason", redact.Error(reason))

	return Result{
		Batch:   e.fallbacks.batch(req.Kind, req.Count),
		Source:  SourceFallback,
		Reason:  reason,
		Raw:     raw,
		Cleaned: cleaned,
	}
}
