// Package openai implements generation.TextGenerator against any
// OpenAI-compatible chat completions endpoint using
// github.com/sashabaranov/go-openai. It lets the service run on a local or
// self-hosted model server by pointing llm.openai_base_url at it.
//
// Top-k sampling has no equivalent in the chat completions API and is
// ignored.
package openai
