package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyspire/saarthi-api/internal/api/shared"
	"github.com/storyspire/saarthi-api/internal/domain"
	"github.com/storyspire/saarthi-api/internal/generation"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid request", err: fmt.Errorf("%w: unknown content kind", domain.ErrInvalidRequest), want: http.StatusBadRequest},
		{name: "item validation", err: fmt.Errorf("%w: empty word", domain.ErrValidation), want: http.StatusBadRequest},
		{name: "empty body", err: shared.ErrEmptyBody, want: http.StatusBadRequest},
		{name: "content blocked", err: generation.ErrContentBlocked, want: http.StatusUnprocessableEntity},
		{name: "upstream unavailable", err: generation.Unavailable("gemini", errors.New("dial tcp")), want: http.StatusBadGateway},
		{name: "invalid response", err: generation.ErrInvalidResponse, want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestMapErrorToStatusCode_ValidationErrors(t *testing.T) {
	err := validator.New().Struct(&GrammarRequest{})
	require.Error(t, err)

	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(err))
	assert.Equal(t, "Invalid Text: required field", GetSafeErrorMessage(err))
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "An unexpected error occurred"},
		{name: "invalid request keeps detail", err: fmt.Errorf("%w: count must be at least 1, got 0", domain.ErrInvalidRequest), want: "Invalid request: count must be at least 1, got 0"},
		{name: "bare invalid request", err: domain.ErrInvalidRequest, want: "Invalid request"},
		{name: "empty body", err: shared.ErrEmptyBody, want: "Request body is required"},
		{name: "blocked", err: generation.ErrContentBlocked, want: "The request was blocked by the content filter"},
		{name: "bad response", err: generation.ErrInvalidResponse, want: "The language model returned an unusable response"},
		{name: "unavailable hides detail", err: generation.Unavailable("openai", errors.New("Bearer abc.def")), want: "The language model is unavailable"},
		{name: "unknown", err: errors.New("internal path /srv/app/secret.go"), want: "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	count := 0
	err := validator.New().Struct(&GenerateContentRequest{GameType: "flashcards", Count: &count})
	require.Error(t, err)
	assert.Equal(t, "Invalid Count: too small", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("not a validator error")))
}
