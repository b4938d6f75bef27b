package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFlashcard() Flashcard {
	return Flashcard{
		Term:       "Resilient",
		Definition: "Able to recover quickly from difficulties",
		Distractors: []string{
			"Able to recover quickly from difficulties",
			"Very weak and fragile",
			"Always happy and cheerful",
			"Extremely intelligent",
		},
		CorrectIndex: 0,
		Example:      "She showed a resilient spirit after the setback.",
	}
}

func TestFlashcard_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Flashcard)
		wantErr error
	}{
		{name: "valid", mutate: func(*Flashcard) {}},
		{
			name: "correct option at another index",
			mutate: func(f *Flashcard) {
				f.Distractors[0], f.Distractors[2] = f.Distractors[2], f.Distractors[0]
				f.CorrectIndex = 2
			},
		},
		{
			name:   "definition differs only in case and spacing",
			mutate: func(f *Flashcard) { f.Distractors[0] = "able to recover  quickly from difficulties " },
		},
		{name: "missing term", mutate: func(f *Flashcard) { f.Term = "  " }, wantErr: ErrMissingTerm},
		{name: "missing definition", mutate: func(f *Flashcard) { f.Definition = "" }, wantErr: ErrMissingDefinition},
		{name: "three options", mutate: func(f *Flashcard) { f.Distractors = f.Distractors[:3] }, wantErr: ErrOptionCount},
		{name: "negative index", mutate: func(f *Flashcard) { f.CorrectIndex = -1 }, wantErr: ErrCorrectIndexOutOfRange},
		{name: "index past end", mutate: func(f *Flashcard) { f.CorrectIndex = 4 }, wantErr: ErrCorrectIndexOutOfRange},
		{name: "index points at distractor", mutate: func(f *Flashcard) { f.CorrectIndex = 1 }, wantErr: ErrCorrectOptionMismatch},
		{name: "empty option", mutate: func(f *Flashcard) { f.Distractors[3] = "" }, wantErr: ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			card := validFlashcard()
			tc.mutate(&card)

			err := card.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestWordPair_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WordPair{Term: "Innovative", Meaning: "Featuring new methods or ideas"}.Validate())
	assert.ErrorIs(t, WordPair{Meaning: "x"}.Validate(), ErrMissingTerm)
	assert.ErrorIs(t, WordPair{Term: "x"}.Validate(), ErrMissingDefinition)
}

func TestSentenceScramble_Validate(t *testing.T) {
	t.Parallel()

	ordered := []string{"They", "are", "planning", "a", "trip"}

	tests := []struct {
		name     string
		shuffled []string
		ordered  []string
		wantErr  error
	}{
		{name: "identical order", shuffled: ordered, ordered: ordered},
		{name: "shuffled", shuffled: []string{"trip", "a", "They", "planning", "are"}, ordered: ordered},
		{name: "no shuffled tokens", shuffled: nil, ordered: ordered, wantErr: ErrEmptyTokens},
		{name: "no ordered tokens", shuffled: ordered, ordered: []string{}, wantErr: ErrEmptyTokens},
		{name: "blank token", shuffled: []string{"a", " "}, ordered: []string{"a", " "}, wantErr: ErrEmptyTokens},
		{name: "different words", shuffled: []string{"They", "are", "planning", "a", "holiday"}, ordered: ordered, wantErr: ErrTokenMismatch},
		{name: "different length", shuffled: []string{"They", "are"}, ordered: ordered, wantErr: ErrTokenMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := SentenceScramble{ShuffledTokens: tc.shuffled, OrderedTokens: tc.ordered}.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestContentBatch_Truncate(t *testing.T) {
	t.Parallel()

	batch := ContentBatch{Kind: TaskKindWordPair, Items: []ContentItem{
		WordPair{Term: "a", Meaning: "1"},
		WordPair{Term: "b", Meaning: "2"},
		WordPair{Term: "c", Meaning: "3"},
	}}

	assert.Equal(t, 2, batch.Truncate(2).Len())
	assert.Equal(t, WordPair{Term: "b", Meaning: "2"}, batch.Truncate(2).Items[1])
	assert.Equal(t, 3, batch.Truncate(10).Len())
	assert.Equal(t, 0, batch.Truncate(-1).Len())
	assert.Equal(t, 3, batch.Len(), "truncate must not modify the receiver")
}

func TestContentBatch_MarshalJSON(t *testing.T) {
	t.Parallel()

	batch := ContentBatch{Kind: TaskKindWordPair, Items: []ContentItem{
		WordPair{Term: "Creative", Meaning: "Having the ability to create new ideas"},
	}}

	data, err := json.Marshal(batch)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"word":"Creative","meaning":"Having the ability to create new ideas"}]`, string(data))

	empty, err := json.Marshal(ContentBatch{Kind: TaskKindFlashcards})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
