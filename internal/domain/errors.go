// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrInvalidRequest is returned when a generation request names an unknown
	// content kind or asks for fewer than one item. It is the only error a caller
	// of the content extractor ever sees.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrValidation is returned when a content item fails its shape check.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyContent is returned when required content is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
