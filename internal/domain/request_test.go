package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    TaskKind
		wantErr bool
	}{
		{input: "flashcards", want: TaskKindFlashcards},
		{input: "Flashcards", want: TaskKindFlashcards},
		{input: "word-match", want: TaskKindWordPair},
		{input: "word-pair", want: TaskKindWordPair},
		{input: "sentence-builder", want: TaskKindSentenceScramble},
		{input: " sentence-scramble ", want: TaskKindSentenceScramble},
		{input: "unknown-kind", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTaskKind(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewGenerationRequest(t *testing.T) {
	t.Parallel()

	req, err := NewGenerationRequest("flashcards", " intermediate ", 4)
	require.NoError(t, err)
	assert.Equal(t, GenerationRequest{Kind: TaskKindFlashcards, Difficulty: "intermediate", Count: 4}, req)

	_, err = NewGenerationRequest("unknown-kind", "easy", 4)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewGenerationRequest("word-match", "easy", 0)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = NewGenerationRequest("word-match", "easy", -3)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerationRequest_Signature(t *testing.T) {
	t.Parallel()

	a := GenerationRequest{Kind: TaskKindWordPair, Difficulty: "Beginner", Count: 3}
	b := GenerationRequest{Kind: TaskKindWordPair, Difficulty: "beginner", Count: 3}
	c := GenerationRequest{Kind: TaskKindWordPair, Difficulty: "beginner", Count: 4}

	assert.Equal(t, a.Signature(), b.Signature())
	assert.NotEqual(t, b.Signature(), c.Signature())
}

func TestTaskKinds(t *testing.T) {
	t.Parallel()

	for _, k := range TaskKinds() {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, TaskKind("quiz").IsValid())
}
