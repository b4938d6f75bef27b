package domain

import (
	"fmt"
	"strings"
)

// TaskKind identifies the kind of learning content a request asks for. The
// values are the game identifiers used by the front end.
type TaskKind string

const (
	// TaskKindFlashcards is a vocabulary card with a multiple-choice definition.
	TaskKindFlashcards TaskKind = "flashcards"

	// TaskKindWordPair is a word with its meaning, used by the word-match game.
	TaskKindWordPair TaskKind = "word-match"

	// TaskKindSentenceScramble is a shuffled sentence the learner puts back in order.
	TaskKindSentenceScramble TaskKind = "sentence-builder"
)

// taskKindAliases maps every accepted spelling to its canonical kind.
var taskKindAliases = map[string]TaskKind{
	"flashcards":        TaskKindFlashcards,
	"flashcard":         TaskKindFlashcards,
	"word-match":        TaskKindWordPair,
	"word-pair":         TaskKindWordPair,
	"sentence-builder":  TaskKindSentenceScramble,
	"sentence-scramble": TaskKindSentenceScramble,
}

// TaskKinds returns all supported kinds in a stable order.
func TaskKinds() []TaskKind {
	return []TaskKind{TaskKindFlashcards, TaskKindWordPair, TaskKindSentenceScramble}
}

// ParseTaskKind resolves a kind name, accepting both the front-end game
// identifiers and the descriptive aliases. Matching is case-insensitive.
func ParseTaskKind(s string) (TaskKind, error) {
	kind, ok := taskKindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: unknown content kind %q", ErrInvalidRequest, s)
	}
	return kind, nil
}

// IsValid reports whether k is one of the canonical kinds.
func (k TaskKind) IsValid() bool {
	switch k {
	case TaskKindFlashcards, TaskKindWordPair, TaskKindSentenceScramble:
		return true
	default:
		return false
	}
}

// String returns the wire name of the kind.
func (k TaskKind) String() string {
	return string(k)
}

// GenerationRequest is a caller's request for a batch of learning content.
// It is created per call and never persisted.
type GenerationRequest struct {
	Kind       TaskKind
	Difficulty string
	Count      int
}

// NewGenerationRequest builds a validated request. The difficulty is passed
// through to the prompt as-is; count limits are applied by the extractor.
func NewGenerationRequest(kind string, difficulty string, count int) (GenerationRequest, error) {
	k, err := ParseTaskKind(kind)
	if err != nil {
		return GenerationRequest{}, err
	}

	req := GenerationRequest{
		Kind:       k,
		Difficulty: strings.TrimSpace(difficulty),
		Count:      count,
	}
	if err := req.Validate(); err != nil {
		return GenerationRequest{}, err
	}
	return req, nil
}

// Validate checks the kind and the count.
func (r GenerationRequest) Validate() error {
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: unknown content kind %q", ErrInvalidRequest, r.Kind)
	}
	if r.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidRequest, r.Count)
	}
	return nil
}

// Signature identifies requests that would produce interchangeable batches.
func (r GenerationRequest) Signature() string {
	return fmt.Sprintf("%s|%s|%d", r.Kind, strings.ToLower(r.Difficulty), r.Count)
}
