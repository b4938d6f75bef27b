package generation

import (
	"context"
	"strings"
)

// Sampling holds the generation parameters sent with every request. Zero
// values leave the provider default in place.
type Sampling struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// TextRequest is a single instruction for the generation service.
type TextRequest struct {
	Prompt   string
	Sampling Sampling
}

// Validate checks that the request carries an instruction.
func (r TextRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// TextGenerator defines the interface for generating free-form text.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type TextGenerator interface {
	// GenerateText sends the prompt to the service and returns its text output.
	//
	// Implementations make exactly one call and never retry. Failures are
	// reported wrapped in ErrUpstreamUnavailable, ErrInvalidResponse or
	// ErrContentBlocked.
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}
