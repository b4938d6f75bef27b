package content

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/storyspire/saarthi-api/internal/domain"
)

// ErrMalformedRecord is returned when a record is missing a field or a field
// has the wrong JSON type.
var ErrMalformedRecord = errors.New("malformed record")

// decodeRecord converts one untyped list element into an item of kind and
// validates it. Fields outside the schema are ignored.
func decodeRecord(kind domain.TaskKind, rec gjson.Result) (domain.ContentItem, error) {
	if !rec.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrMalformedRecord, rec.Type)
	}

	var (
		item domain.ContentItem
		err  error
	)
	switch kind {
	case domain.TaskKindFlashcards:
		item, err = decodeFlashcard(rec)
	case domain.TaskKindWordPair:
		item, err = decodeWordPair(rec)
	case domain.TaskKindSentenceScramble:
		item, err = decodeScramble(rec)
	default:
		return nil, fmt.Errorf("%w: unknown content kind %q", domain.ErrInvalidRequest, kind)
	}
	if err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func decodeFlashcard(rec gjson.Result) (domain.Flashcard, error) {
	word, err := stringField(rec, "word", true)
	if err != nil {
		return domain.Flashcard{}, err
	}
	definition, err := stringField(rec, "definition", true)
	if err != nil {
		return domain.Flashcard{}, err
	}
	options, err := stringList(rec, "options")
	if err != nil {
		return domain.Flashcard{}, err
	}
	correct := rec.Get("correct")
	if correct.Type != gjson.Number || correct.Num != float64(int(correct.Num)) {
		return domain.Flashcard{}, fmt.Errorf("%w: field %q must be an integer", ErrMalformedRecord, "correct")
	}
	example, err := stringField(rec, "example", false)
	if err != nil {
		return domain.Flashcard{}, err
	}

	return domain.Flashcard{
		Term:         word,
		Definition:   definition,
		Distractors:  options,
		CorrectIndex: int(correct.Num),
		Example:      example,
	}, nil
}

func decodeWordPair(rec gjson.Result) (domain.WordPair, error) {
	word, err := stringField(rec, "word", true)
	if err != nil {
		return domain.WordPair{}, err
	}
	meaning, err := stringField(rec, "meaning", true)
	if err != nil {
		return domain.WordPair{}, err
	}
	return domain.WordPair{Term: word, Meaning: meaning}, nil
}

func decodeScramble(rec gjson.Result) (domain.SentenceScramble, error) {
	words, err := stringList(rec, "words")
	if err != nil {
		return domain.SentenceScramble{}, err
	}
	correct, err := stringList(rec, "correct")
	if err != nil {
		return domain.SentenceScramble{}, err
	}
	hint, err := stringField(rec, "hint", false)
	if err != nil {
		return domain.SentenceScramble{}, err
	}
	return domain.SentenceScramble{ShuffledTokens: words, OrderedTokens: correct, Hint: hint}, nil
}

func stringField(rec gjson.Result, name string, required bool) (string, error) {
	v := rec.Get(name)
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		if required {
			return "", fmt.Errorf("%w: missing field %q", ErrMalformedRecord, name)
		}
		return "", nil
	case v.Type != gjson.String:
		return "", fmt.Errorf("%w: field %q must be a string", ErrMalformedRecord, name)
	}
	return v.Str, nil
}

func stringList(rec gjson.Result, name string) ([]string, error) {
	v := rec.Get(name)
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: field %q must be a list", ErrMalformedRecord, name)
	}
	elems := v.Array()
	out := make([]string, 0, len(elems))
	for i, e := range elems {
		if e.Type != gjson.String {
			return nil, fmt.Errorf("%w: %s[%d] must be a string", ErrMalformedRecord, name, i)
		}
		out = append(out, e.Str)
	}
	return out, nil
}
