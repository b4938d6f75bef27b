// Package gemini implements generation.TextGenerator on top of Google's
// Gemini API using the google.golang.org/genai client.
//
// The adapter makes exactly one GenerateContent call per request and never
// retries. It maps the provider's outcomes onto the generation error
// taxonomy:
//
//   - transport and API errors wrap generation.ErrUpstreamUnavailable
//   - responses without candidates or text wrap generation.ErrInvalidResponse
//   - safety stops and blocked prompts wrap generation.ErrContentBlocked
//
// The genai client is created once at start-up by NewGenerator and is safe
// for concurrent use.
package gemini
