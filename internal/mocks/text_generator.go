package mocks

import (
	"context"
	"sync"

	"github.com/storyspire/saarthi-api/internal/generation"
)

// MockTextGenerator implements generation.TextGenerator for testing
type MockTextGenerator struct {
	// GenerateTextFn allows test cases to mock the GenerateText behavior
	GenerateTextFn func(ctx context.Context, req generation.TextRequest) (string, error)

	// Default response values
	Text string
	Err  error

	mu       sync.Mutex
	requests []generation.TextRequest
}

// GenerateText implements the generation.TextGenerator interface
func (m *MockTextGenerator) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateTextFn != nil {
		return m.GenerateTextFn(ctx, req)
	}
	return m.Text, m.Err
}

// CallCount returns how many times GenerateText was called.
func (m *MockTextGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every request received, in call order.
func (m *MockTextGenerator) Requests() []generation.TextRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]generation.TextRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastPrompt returns the prompt of the most recent call, or "" if there was none.
func (m *MockTextGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return ""
	}
	return m.requests[len(m.requests)-1].Prompt
}

// Reset clears the call tracking state.
func (m *MockTextGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

// NewMockTextGenerator creates a MockTextGenerator that always returns text.
func NewMockTextGenerator(text string) *MockTextGenerator {
	return &MockTextGenerator{Text: text}
}

// NewMockTextGeneratorWithError creates a MockTextGenerator that always fails with err.
func NewMockTextGeneratorWithError(err error) *MockTextGenerator {
	return &MockTextGenerator{Err: err}
}

// MockTextGeneratorUnavailable creates a MockTextGenerator that simulates an
// unreachable upstream service.
func MockTextGeneratorUnavailable() *MockTextGenerator {
	return NewMockTextGeneratorWithError(generation.ErrUpstreamUnavailable)
}

// MockTextGeneratorWithContentBlocked creates a MockTextGenerator that
// simulates a safety block.
func MockTextGeneratorWithContentBlocked() *MockTextGenerator {
	return NewMockTextGeneratorWithError(generation.ErrContentBlocked)
}
