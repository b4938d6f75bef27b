// Package domain contains the core learning-content entities of the application:
// the generation request a caller submits and the typed content items returned to
// it. It is independent of the language model that produces the content and of the
// HTTP layer that delivers it.
package domain
