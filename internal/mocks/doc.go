// Package mocks provides centralized mock implementations for testing.
//
// Mocks use function fields for behavior and record every call, so tests can
// both script the collaborator and assert on how it was used:
//
//	gen := &mocks.MockTextGenerator{
//	    GenerateTextFn: func(ctx context.Context, req generation.TextRequest) (string, error) {
//	        return `[{"word": "Brisk", "meaning": "Quick and energetic"}]`, nil
//	    },
//	}
//
// When adding a new mock to this package, name the file after the interface
// being mocked and keep the call tracking safe for concurrent use.
package mocks
