package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Content item validation errors
var (
	// ErrMissingTerm is returned when an item has no word.
	ErrMissingTerm = errors.New("term cannot be empty")

	// ErrMissingDefinition is returned when a flashcard or pair has no definition.
	ErrMissingDefinition = errors.New("definition cannot be empty")

	// ErrOptionCount is returned when a flashcard does not carry exactly FlashcardOptionCount options.
	ErrOptionCount = errors.New("flashcard must have exactly 4 options")

	// ErrCorrectIndexOutOfRange is returned when the correct index does not point into the options.
	ErrCorrectIndexOutOfRange = errors.New("correct index out of range")

	// ErrCorrectOptionMismatch is returned when the option at the correct index is not the definition.
	ErrCorrectOptionMismatch = errors.New("correct option does not match definition")

	// ErrEmptyTokens is returned when a sentence scramble has no tokens.
	ErrEmptyTokens = errors.New("sentence tokens cannot be empty")

	// ErrTokenMismatch is returned when the shuffled tokens are not a permutation of the ordered ones.
	ErrTokenMismatch = errors.New("shuffled tokens must be a permutation of the sentence")
)

// FlashcardOptionCount is the number of choices shown on every flashcard.
const FlashcardOptionCount = 4

// ContentItem is one validated unit of learning content.
type ContentItem interface {
	// Kind returns the content kind the item belongs to.
	Kind() TaskKind

	// Validate checks the item's shape.
	Validate() error
}

// Flashcard is a vocabulary word with a multiple-choice definition question.
type Flashcard struct {
	Term         string   `json:"word"              yaml:"word"`
	Definition   string   `json:"definition"        yaml:"definition"`
	Distractors  []string `json:"options"           yaml:"options"`
	CorrectIndex int      `json:"correct"           yaml:"correct"`
	Example      string   `json:"example,omitempty" yaml:"example"`
}

// Kind implements ContentItem.
func (f Flashcard) Kind() TaskKind { return TaskKindFlashcards }

// Validate checks that the card has a word, a definition and four options whose
// correct entry is the definition itself.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Term) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingTerm)
	}
	if strings.TrimSpace(f.Definition) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingDefinition)
	}
	if len(f.Distractors) != FlashcardOptionCount {
		return fmt.Errorf("%w: %w (got %d)", ErrValidation, ErrOptionCount, len(f.Distractors))
	}
	for i, option := range f.Distractors {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrValidation, i)
		}
	}
	if f.CorrectIndex < 0 || f.CorrectIndex >= len(f.Distractors) {
		return fmt.Errorf("%w: %w (%d)", ErrValidation, ErrCorrectIndexOutOfRange, f.CorrectIndex)
	}
	if !sameText(f.Distractors[f.CorrectIndex], f.Definition) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrCorrectOptionMismatch)
	}
	return nil
}

// WordPair is a word and its meaning.
type WordPair struct {
	Term    string `json:"word"    yaml:"word"`
	Meaning string `json:"meaning" yaml:"meaning"`
}

// Kind implements ContentItem.
func (p WordPair) Kind() TaskKind { return TaskKindWordPair }

// Validate checks that both sides of the pair are present.
func (p WordPair) Validate() error {
	if strings.TrimSpace(p.Term) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingTerm)
	}
	if strings.TrimSpace(p.Meaning) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingDefinition)
	}
	return nil
}

// SentenceScramble is a sentence split into tokens. ShuffledTokens is what the
// learner sees, OrderedTokens is the answer.
type SentenceScramble struct {
	ShuffledTokens []string `json:"words"          yaml:"words"`
	OrderedTokens  []string `json:"correct"        yaml:"correct"`
	Hint           string   `json:"hint,omitempty" yaml:"hint"`
}

// Kind implements ContentItem.
func (s SentenceScramble) Kind() TaskKind { return TaskKindSentenceScramble }

// Validate checks that both token lists are non-empty and hold the same tokens.
func (s SentenceScramble) Validate() error {
	if len(s.ShuffledTokens) == 0 || len(s.OrderedTokens) == 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTokens)
	}
	for _, tok := range s.OrderedTokens {
		if strings.TrimSpace(tok) == "" {
			return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTokens)
		}
	}
	if !isPermutation(s.ShuffledTokens, s.OrderedTokens) {
		return fmt.Errorf("%w: %w", ErrValidation, ErrTokenMismatch)
	}
	return nil
}

// ContentBatch is an ordered list of items of a single kind.
type ContentBatch struct {
	Kind  TaskKind
	Items []ContentItem
}

// Len returns the number of items in the batch.
func (b ContentBatch) Len() int {
	return len(b.Items)
}

// Truncate returns a batch holding at most n items, preserving order.
func (b ContentBatch) Truncate(n int) ContentBatch {
	if n < 0 {
		n = 0
	}
	if len(b.Items) <= n {
		return b
	}
	items := make([]ContentItem, n)
	copy(items, b.Items[:n])
	return ContentBatch{Kind: b.Kind, Items: items}
}

// MarshalJSON encodes the batch as a bare array of items, which is the shape
// the front end consumes.
func (b ContentBatch) MarshalJSON() ([]byte, error) {
	if b.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.Items)
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}

func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, tok := range a {
		counts[strings.TrimSpace(tok)]++
	}
	for _, tok := range b {
		key := strings.TrimSpace(tok)
		if counts[key] == 0 {
			return false
		}
		counts[key]--
	}
	return true
}
