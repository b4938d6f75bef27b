// Package extract recovers structured JSON from free-form language model
// output. Each recovery stage is a pure function over text that either returns
// the transformed text or an error, and the stages compose with Chain.
//
// The list pipeline is: trim, strip code fences, slice from the first '[' to
// the last ']', drop trailing commas, strict parse. When that fails it tries
// once more with a permissive regex extraction over the raw text. Parsed
// elements are returned as untyped gjson values so that callers must check
// every field they rely on.
package extract
