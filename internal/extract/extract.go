package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Errors returned by the recovery stages.
var (
	// ErrUnparseableOutput is returned when no stage could turn the text into
	// the requested structure.
	ErrUnparseableOutput = errors.New("unparseable model output")

	// ErrNoDelimiters is returned when the text has no opening or closing
	// delimiter, or the last closing one comes before the first opening one.
	ErrNoDelimiters = errors.New("no delimited block found")

	// ErrInvalidJSON is returned when the text is not strict JSON.
	ErrInvalidJSON = errors.New("text is not valid JSON")

	// ErrWrongShape is returned when the JSON is valid but is not the expected
	// list or object.
	ErrWrongShape = errors.New("JSON has the wrong shape")
)

// Stage names reported to observers.
const (
	StageTrim           = "trim"
	StageStripFences    = "strip_fences"
	StageSlice          = "slice"
	StageTrailingCommas = "remove_trailing_commas"
	StageParse          = "parse"
	StageRecover        = "regex_recover"
)

var (
	fenceRegex         = regexp.MustCompile("```[A-Za-z0-9_+-]*")
	listCommaRegex     = regexp.MustCompile(`,\s*\]`)
	anyCommaRegex      = regexp.MustCompile(`,\s*([\]}])`)
	outermostListRegex = regexp.MustCompile(`(?s)\[.*\]`)
	outermostObjRegex  = regexp.MustCompile(`(?s)\{.*\}`)
)

// Observer receives the text produced by each stage. It is used for
// diagnostic logging while tuning prompts.
type Observer func(stage, text string)

// Step is one named text transformation in a recovery chain.
type Step struct {
	Name  string
	Apply func(string) (string, error)
}

// pure lifts an infallible transformation into a Step.
func pure(name string, f func(string) string) Step {
	return Step{Name: name, Apply: func(s string) (string, error) { return f(s), nil }}
}

// Chain applies steps in order, reporting every intermediate text to observe.
// It stops at the first failing step and returns the text that step received.
func Chain(text string, observe Observer, steps ...Step) (string, error) {
	for _, step := range steps {
		next, err := step.Apply(text)
		if err != nil {
			return text, fmt.Errorf("%s: %w", step.Name, err)
		}
		text = next
		if observe != nil {
			observe(step.Name, text)
		}
	}
	return text, nil
}

// StripFences removes markdown code-fence markers, with or without a language
// tag, wherever they occur, and trims the result.
func StripFences(text string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(text, ""))
}

// SliceBrackets returns the text from the first '[' to the last ']' inclusive.
func SliceBrackets(text string) (string, error) {
	return sliceBetween(text, "[", "]")
}

// SliceBraces returns the text from the first '{' to the last '}' inclusive.
func SliceBraces(text string) (string, error) {
	return sliceBetween(text, "{", "}")
}

func sliceBetween(text, open, closing string) (string, error) {
	first := strings.Index(text, open)
	last := strings.LastIndex(text, closing)
	if first == -1 || last == -1 || last < first {
		return "", fmt.Errorf("%w: %s...%s", ErrNoDelimiters, open, closing)
	}
	return text[first : last+1], nil
}

// RemoveTrailingCommas drops commas that directly precede a closing bracket.
func RemoveTrailingCommas(text string) string {
	return listCommaRegex.ReplaceAllString(text, "]")
}

// removeAllTrailingCommas also handles commas before a closing brace.
func removeAllTrailingCommas(text string) string {
	return anyCommaRegex.ReplaceAllString(text, "$1")
}

// ParseList strictly parses text as a JSON array and returns its elements in
// order. Elements are left untyped; callers check each one.
func ParseList(text string) ([]gjson.Result, error) {
	if !gjson.Valid(text) {
		return nil, ErrInvalidJSON
	}
	parsed := gjson.Parse(text)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: expected a list", ErrWrongShape)
	}
	return parsed.Array(), nil
}

// ParseObject strictly parses text as a JSON object.
func ParseObject(text string) (gjson.Result, error) {
	if !gjson.Valid(text) {
		return gjson.Result{}, ErrInvalidJSON
	}
	parsed := gjson.Parse(text)
	if !parsed.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected an object", ErrWrongShape)
	}
	return parsed, nil
}

// RecoverList extracts the outermost bracketed list from raw text without any
// fence handling.
func RecoverList(raw string) (string, error) {
	return recoverWith(outermostListRegex, raw)
}

// RecoverObject extracts the outermost braced object from raw text.
func RecoverObject(raw string) (string, error) {
	return recoverWith(outermostObjRegex, raw)
}

func recoverWith(re *regexp.Regexp, raw string) (string, error) {
	match := re.FindString(raw)
	if match == "" {
		return "", ErrNoDelimiters
	}
	return match, nil
}

// ListResult is the outcome of a list extraction.
type ListResult struct {
	// Records are the list elements in their original order.
	Records []gjson.Result

	// Cleaned is the text that finally parsed, or the last cleaned text when
	// extraction failed.
	Cleaned string

	// Recovered is true when the permissive stage was needed.
	Recovered bool
}

// List runs the full recovery pipeline for an ordered list of records:
// trim, strip fences, slice brackets, remove trailing commas and parse. If
// that fails it retries once with a permissive regex extraction from the raw
// text. On failure the result still carries the last cleaned text.
func List(raw string, observe Observer) (ListResult, error) {
	cleaned, err := Chain(raw, observe,
		pure(StageTrim, strings.TrimSpace),
		pure(StageStripFences, StripFences),
		Step{Name: StageSlice, Apply: SliceBrackets},
		pure(StageTrailingCommas, RemoveTrailingCommas),
	)
	if err == nil {
		records, parseErr := ParseList(cleaned)
		if parseErr == nil {
			return ListResult{Records: records, Cleaned: cleaned}, nil
		}
		err = fmt.Errorf("%s: %w", StageParse, parseErr)
	}
	firstErr := err

	recovered, err := Chain(strings.TrimSpace(raw), observe,
		Step{Name: StageRecover, Apply: RecoverList},
		pure(StageTrailingCommas, removeAllTrailingCommas),
	)
	if err != nil {
		return ListResult{Cleaned: cleaned}, fmt.Errorf("%w: %w; recovery %w", ErrUnparseableOutput, firstErr, err)
	}
	records, err := ParseList(recovered)
	if err != nil {
		return ListResult{Cleaned: recovered}, fmt.Errorf("%w: %w; recovery %s: %w", ErrUnparseableOutput, firstErr, StageParse, err)
	}
	return ListResult{Records: records, Cleaned: recovered, Recovered: true}, nil
}

// Object runs the same pipeline for a single JSON object.
func Object(raw string, observe Observer) (gjson.Result, error) {
	cleaned, err := Chain(raw, observe,
		pure(StageTrim, strings.TrimSpace),
		pure(StageStripFences, StripFences),
		Step{Name: StageSlice, Apply: SliceBraces},
		pure(StageTrailingCommas, removeAllTrailingCommas),
	)
	if err == nil {
		obj, parseErr := ParseObject(cleaned)
		if parseErr == nil {
			return obj, nil
		}
		err = fmt.Errorf("%s: %w", StageParse, parseErr)
	}
	firstErr := err

	recovered, err := Chain(strings.TrimSpace(raw), observe,
		Step{Name: StageRecover, Apply: RecoverObject},
		pure(StageTrailingCommas, removeAllTrailingCommas),
	)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w; recovery %w", ErrUnparseableOutput, firstErr, err)
	}
	obj, err := ParseObject(recovered)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w; recovery %s: %w", ErrUnparseableOutput, firstErr, StageParse, err)
	}
	return obj, nil
}
