// Package content turns a request for learning content into a validated batch
// of items. It renders a per-kind prompt, makes one call to the text
// generator, recovers a JSON list from the free-form answer and checks every
// record. When any of that fails it serves hand-authored fallback items, so a
// well-formed request always yields a non-empty batch.
package content
