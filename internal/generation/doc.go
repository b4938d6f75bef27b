// Package generation defines the boundary between the application and the
// external AI/LLM text-generation service. The TextGenerator interface accepts a
// single instruction string plus sampling parameters and returns free-form text;
// adapters for Gemini and OpenAI-compatible endpoints live under
// internal/platform. Nothing in this package trusts the shape of the returned
// text: turning it into flashcards or other learning content is the job of the
// content extractor.
package generation
