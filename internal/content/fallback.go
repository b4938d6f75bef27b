package content

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/storyspire/saarthi-api/internal/domain"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// ErrInvalidFallback is returned when the fallback document is missing a
// kind, has an empty list, or holds an item that fails validation.
var ErrInvalidFallback = errors.New("invalid fallback content")

// fallbackDocument mirrors the layout of fallback.yaml.
type fallbackDocument struct {
	Flashcards []domain.Flashcard        `yaml:"flashcards"`
	WordPairs  []domain.WordPair         `yaml:"word-match"`
	Sentences  []domain.SentenceScramble `yaml:"sentence-builder"`
}

// fallbacks holds the static batch for every content kind.
type fallbacks map[domain.TaskKind]domain.ContentBatch

// loadFallbacks decodes and validates a fallback document.
func loadFallbacks(data []byte) (fallbacks, error) {
	var doc fallbackDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFallback, err)
	}

	out := fallbacks{
		domain.TaskKindFlashcards:       batchOf(domain.TaskKindFlashcards, doc.Flashcards),
		domain.TaskKindWordPair:         batchOf(domain.TaskKindWordPair, doc.WordPairs),
		domain.TaskKindSentenceScramble: batchOf(domain.TaskKindSentenceScramble, doc.Sentences),
	}

	for kind, batch := range out {
		if batch.Len() == 0 {
			return nil, fmt.Errorf("%w: no %s items", ErrInvalidFallback, kind)
		}
		for i, item := range batch.Items {
			if err := item.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %s item %d: %w", ErrInvalidFallback, kind, i, err)
			}
		}
	}
	return out, nil
}

// batch returns the first min(count, len) fallback items for kind.
func (f fallbacks) batch(kind domain.TaskKind, count int) domain.ContentBatch {
	return f[kind].Truncate(count)
}

func batchOf[T domain.ContentItem](kind domain.TaskKind, items []T) domain.ContentBatch {
	batch := domain.ContentBatch{Kind: kind, Items: make([]domain.ContentItem, 0, len(items))}
	for _, item := range items {
		batch.Items = append(batch.Items, item)
	}
	return batch
}
