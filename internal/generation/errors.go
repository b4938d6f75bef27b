package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrUpstreamUnavailable is returned when the generation service cannot be
	// reached or rejects the call (timeout, non-2xx status, authentication).
	ErrUpstreamUnavailable = errors.New("generation service unavailable")

	// ErrInvalidResponse is returned when the service answers with a malformed
	// envelope, such as no candidates or no text.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrEmptyPrompt is returned when a request carries no instruction text.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// IsUpstreamFailure reports whether err means the service produced no usable
// text. Callers that must always show something treat all of these alike.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrContentBlocked)
}

// Unavailable wraps a transport-level error from a provider SDK.
func Unavailable(provider string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, provider, err)
}
