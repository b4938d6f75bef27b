package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyspire/saarthi-api/internal/domain"
)

func TestLoadFallbacks_Embedded(t *testing.T) {
	t.Parallel()

	fb, err := loadFallbacks(fallbackYAML)
	require.NoError(t, err)

	for _, kind := range domain.TaskKinds() {
		batch := fb[kind]
		assert.Equal(t, kind, batch.Kind)
		assert.NotZero(t, batch.Len(), "fallback for %s must not be empty", kind)
		for _, item := range batch.Items {
			assert.Equal(t, kind, item.Kind())
		}
	}

	first := fb[domain.TaskKindFlashcards].Items[0].(domain.Flashcard)
	assert.Equal(t, "Adaptable", first.Term)
}

func TestFallbacks_Batch(t *testing.T) {
	t.Parallel()

	fb, err := loadFallbacks(fallbackYAML)
	require.NoError(t, err)

	total := fb[domain.TaskKindSentenceScramble].Len()

	assert.Equal(t, 1, fb.batch(domain.TaskKindSentenceScramble, 1).Len())
	assert.Equal(t, total, fb.batch(domain.TaskKindSentenceScramble, total+10).Len())
	assert.Equal(t,
		fb[domain.TaskKindSentenceScramble].Items[0],
		fb.batch(domain.TaskKindSentenceScramble, 2).Items[0],
		"fallback keeps document order")
}

func TestLoadFallbacks_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "flashcards: [unclosed",
		},
		{
			name: "missing kind",
			doc: `
flashcards:
  - word: A
    definition: B
    options: [B, C, D, E]
    correct: 0
word-match:
  - word: A
    meaning: B
`,
		},
		{
			name: "invalid item",
			doc: `
flashcards:
  - word: A
    definition: B
    options: [C, D, E, F]
    correct: 0
word-match:
  - word: A
    meaning: B
sentence-builder:
  - words: [b, a]
    correct: [a, b]
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadFallbacks([]byte(tc.doc))
			assert.ErrorIs(t, err, ErrInvalidFallback)
		})
	}
}
